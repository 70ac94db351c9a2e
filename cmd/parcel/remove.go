// ABOUTME: Remove command deleting a measurement from the current project
// ABOUTME: Measurements are addressed by a unique id prefix

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/parcel/internal/models"
	"github.com/harper/parcel/internal/state"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <id-prefix>",
	Aliases: []string{"rm"},
	Short:   "Remove a measurement from the current project",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := findMeasurement(args[0])
		if err != nil {
			return err
		}

		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			name := m.Name
			if name == "" {
				name = m.ID.String()[:8]
			}
			fmt.Printf("Remove measurement '%s'? [y/N] ", name)
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := st.RemoveMeasurement(m.ID); err != nil {
			return fmt.Errorf("failed to remove measurement: %w", err)
		}
		pushHistory(state.MeasurementRemoved)

		color.Green("✓ Removed %s", m.ID.String()[:8])
		return nil
	},
}

// findMeasurement resolves an id prefix against the current project.
func findMeasurement(prefix string) (*models.Measurement, error) {
	p := st.CurrentProject()
	if p == nil {
		return nil, fmt.Errorf("no current project")
	}

	prefix = strings.ToLower(prefix)
	var found *models.Measurement
	for _, m := range p.Measurements {
		if strings.HasPrefix(m.ID.String(), prefix) {
			if found != nil {
				return nil, fmt.Errorf("id prefix '%s' is ambiguous", prefix)
			}
			found = m
		}
	}
	if found == nil {
		return nil, fmt.Errorf("no measurement matches '%s'", prefix)
	}
	return found, nil
}

func init() {
	removeCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	rootCmd.AddCommand(removeCmd)
}
