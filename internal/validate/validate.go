// ABOUTME: Input validation for coordinate text, point sequences, and names
// ABOUTME: Pure functions; nil error means the input is acceptable

package validate

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/harper/parcel/internal/geometry"
)

// DefaultMaxMagnitude bounds |x| and |y| for coordinate input.
const DefaultMaxMagnitude = 1_000_000

// Project name length limits (after trimming).
const (
	MinNameLength = 3
	MaxNameLength = 50
)

// CoordinateText checks a single coordinate input field.
// Empty or whitespace-only text is valid: coordinate fields are optional
// until the user fills them in.
func CoordinateText(text string) error {
	return CoordinateTextMax(text, DefaultMaxMagnitude)
}

// CoordinateTextMax is CoordinateText with a caller-supplied magnitude bound.
func CoordinateTextMax(text string, maxMagnitude float64) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	if !strings.Contains(text, ",") {
		return fmt.Errorf("coordinates must be comma-separated, like \"10.5, 20.3\"")
	}

	p, err := geometry.ParsePoint(text)
	if err != nil {
		return err
	}

	if math.Abs(p.X) > maxMagnitude || math.Abs(p.Y) > maxMagnitude {
		return fmt.Errorf("coordinates must be within ±%.0f meters", maxMagnitude)
	}

	return nil
}

// PointSequence checks that a side has at least minCount points and no
// exact duplicates. Duplicate positions are reported 1-based, matching
// how the points are numbered for the user.
func PointSequence(points []geometry.Point, minCount int) error {
	if len(points) < minCount {
		return fmt.Errorf("need at least %d points, got %d", minCount, len(points))
	}

	seen := make(map[geometry.Point]int, len(points))
	var dups []string
	for i, p := range points {
		if first, ok := seen[p]; ok {
			dups = append(dups, fmt.Sprintf("%d (same as %d)", i+1, first+1))
			continue
		}
		seen[p] = i
	}

	if len(dups) > 0 {
		return fmt.Errorf("duplicate points at position %s", strings.Join(dups, ", "))
	}

	return nil
}

// ProjectName checks a proposed project name against its siblings.
// Uniqueness is case-insensitive; length limits apply after trimming.
func ProjectName(name string, siblings []string) error {
	trimmed := strings.TrimSpace(name)
	length := utf8.RuneCountInString(trimmed)
	if length < MinNameLength {
		return fmt.Errorf("project name must be at least %d characters", MinNameLength)
	}
	if length > MaxNameLength {
		return fmt.Errorf("project name must be at most %d characters", MaxNameLength)
	}

	for _, sibling := range siblings {
		if strings.EqualFold(strings.TrimSpace(sibling), trimmed) {
			return fmt.Errorf("a project named %q already exists", sibling)
		}
	}

	return nil
}

var displayTextEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

// SanitizeDisplayText escapes characters that are structurally significant
// in markup surfaces. Required wherever user-supplied names or notes are
// rendered downstream.
func SanitizeDisplayText(text string) string {
	return displayTextEscaper.Replace(text)
}
