// ABOUTME: Common state store errors
// ABOUTME: Sentinels for callers to branch on with errors.Is

package state

import "errors"

// ErrValidation is returned when a mutation fails domain validation.
var ErrValidation = errors.New("validation failed")

// ErrNotFound is returned when a project or measurement id does not resolve.
var ErrNotFound = errors.New("not found")

// ErrNoCurrentProject is returned for measurement operations with no
// project selected.
var ErrNoCurrentProject = errors.New("no current project selected")
