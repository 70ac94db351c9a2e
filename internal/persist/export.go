// ABOUTME: Full-backup export and import of projects and settings
// ABOUTME: JSON is the canonical document; YAML is offered for portability

package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harper/parcel/internal/models"
	"github.com/harper/parcel/internal/state"
	"gopkg.in/yaml.v3"
)

// ApplicationTag identifies backup documents produced by this tool.
const ApplicationTag = "parcel"

// ErrInvalidFormat is returned when an import document fails shape
// validation. Existing state is left untouched in that case.
var ErrInvalidFormat = errors.New("invalid backup format")

// Backup is the versioned full-backup document.
type Backup struct {
	Version     string            `json:"version" yaml:"version"`
	ExportedAt  time.Time         `json:"exportedAt" yaml:"exported_at"`
	Application string            `json:"application" yaml:"application"`
	Projects    []*models.Project `json:"projects" yaml:"projects"`
	Settings    models.Settings   `json:"settings" yaml:"settings"`
}

// ExportAllData renders the whole state as a JSON backup document.
func ExportAllData(st *state.Store) ([]byte, error) {
	return json.MarshalIndent(buildBackup(st), "", "  ")
}

// ExportYAML renders the whole state as a YAML backup document.
func ExportYAML(st *state.Store) ([]byte, error) {
	return yaml.Marshal(buildBackup(st))
}

func buildBackup(st *state.Store) Backup {
	return Backup{
		Version:     SchemaVersion,
		ExportedAt:  time.Now().UTC(),
		Application: ApplicationTag,
		Projects:    st.Projects(),
		Settings:    st.Settings(),
	}
}

// ImportAllData replaces the whole state from a backup document.
// All-or-nothing: the document is shape-validated before any state is
// touched, and import clears the current-project selection (callers
// pick a fallback afterwards).
func ImportAllData(st *state.Store, data []byte) error {
	backup, err := parseBackup(data)
	if err != nil {
		return err
	}
	st.LoadState(backup.Projects, uuid.Nil, backup.Settings)
	return nil
}

// parseBackup validates and decodes a backup document, accepting JSON
// first and YAML as a fallback.
func parseBackup(data []byte) (*Backup, error) {
	var probe struct {
		Version  *string         `json:"version" yaml:"version"`
		Projects json.RawMessage `json:"projects"`
	}

	jsonErr := json.Unmarshal(data, &probe)
	if jsonErr == nil {
		if probe.Version == nil || probe.Projects == nil {
			return nil, fmt.Errorf("%w: missing version or projects", ErrInvalidFormat)
		}
		var backup Backup
		if err := json.Unmarshal(data, &backup); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		return &backup, nil
	}

	// Not JSON; try the YAML backup shape.
	var backup Backup
	if err := yaml.Unmarshal(data, &backup); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if backup.Version == "" || backup.Projects == nil {
		return nil, fmt.Errorf("%w: missing version or projects", ErrInvalidFormat)
	}
	return &backup, nil
}
