// ABOUTME: Application settings with documented defaults and shallow merge
// ABOUTME: Persisted under the settings key; transient UI flags live elsewhere

package models

// Settings holds user preferences. Zero values are never used directly;
// DefaultSettings supplies the documented defaults.
type Settings struct {
	DefaultUnit    string `json:"defaultUnit"`
	AutoSave       bool   `json:"autoSave"`
	ShowGrid       bool   `json:"showGrid"`
	ShowLabels     bool   `json:"showLabels"`
	Theme          string `json:"theme"`
	MaxHistorySize int    `json:"maxHistorySize"`
}

// SettingsUpdate carries a partial settings change. Nil pointers leave
// the existing value untouched.
type SettingsUpdate struct {
	DefaultUnit    *string
	AutoSave       *bool
	ShowGrid       *bool
	ShowLabels     *bool
	Theme          *string
	MaxHistorySize *int
}

// DefaultSettings returns the settings used when nothing is stored.
func DefaultSettings() Settings {
	return Settings{
		DefaultUnit:    "meters",
		AutoSave:       true,
		ShowGrid:       true,
		ShowLabels:     true,
		Theme:          "light",
		MaxHistorySize: 50,
	}
}

// Merge applies a partial update and returns the merged settings.
func (s Settings) Merge(upd SettingsUpdate) Settings {
	if upd.DefaultUnit != nil {
		s.DefaultUnit = *upd.DefaultUnit
	}
	if upd.AutoSave != nil {
		s.AutoSave = *upd.AutoSave
	}
	if upd.ShowGrid != nil {
		s.ShowGrid = *upd.ShowGrid
	}
	if upd.ShowLabels != nil {
		s.ShowLabels = *upd.ShowLabels
	}
	if upd.Theme != nil {
		s.Theme = *upd.Theme
	}
	if upd.MaxHistorySize != nil {
		s.MaxHistorySize = *upd.MaxHistorySize
	}
	return s
}
