// ABOUTME: Settings commands for viewing and changing preferences
// ABOUTME: Changes go through the state store and persist on exit

package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harper/parcel/internal/models"
	"github.com/harper/parcel/internal/state"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := st.Settings()
		fmt.Printf("  unit:     %s\n", s.DefaultUnit)
		fmt.Printf("  autosave: %t\n", s.AutoSave)
		fmt.Printf("  grid:     %t\n", s.ShowGrid)
		fmt.Printf("  labels:   %t\n", s.ShowLabels)
		fmt.Printf("  theme:    %s\n", s.Theme)
		fmt.Printf("  history:  %d\n", s.MaxHistorySize)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting. Keys:

  unit      default display unit (meters, feet)
  autosave  save automatically after changes (true, false)
  grid      show the grid (true, false)
  labels    show point labels (true, false)
  theme     color theme (light, dark)
  history   maximum undo history entries (positive number)

Examples:
  parcel settings set unit feet
  parcel settings set history 100`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		upd, err := settingsUpdate(args[0], args[1])
		if err != nil {
			return err
		}

		st.UpdateSettings(upd)
		pushHistory(state.SettingsUpdated)

		color.Green("✓ Set %s to %s", args[0], args[1])
		return nil
	},
}

// settingsUpdate translates a key/value pair into a partial update.
func settingsUpdate(key, value string) (models.SettingsUpdate, error) {
	var upd models.SettingsUpdate

	switch key {
	case "unit":
		if value != "meters" && value != "feet" {
			return upd, fmt.Errorf("unit must be 'meters' or 'feet'")
		}
		upd.DefaultUnit = &value
	case "theme":
		if value != "light" && value != "dark" {
			return upd, fmt.Errorf("theme must be 'light' or 'dark'")
		}
		upd.Theme = &value
	case "autosave", "grid", "labels":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return upd, fmt.Errorf("%s must be true or false", key)
		}
		switch key {
		case "autosave":
			upd.AutoSave = &b
		case "grid":
			upd.ShowGrid = &b
		case "labels":
			upd.ShowLabels = &b
		}
	case "history":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return upd, fmt.Errorf("history must be a positive number")
		}
		upd.MaxHistorySize = &n
	default:
		return upd, fmt.Errorf("unknown setting: %s", key)
	}

	return upd, nil
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)

	rootCmd.AddCommand(settingsCmd)
}
