// ABOUTME: Import command restoring a backup document
// ABOUTME: Replaces all existing data after shape validation

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/parcel/internal/persist"
	"github.com/harper/parcel/internal/state"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import projects and settings from a backup",
	Long: `Import a backup document created with 'parcel export' or
'parcel backup'. JSON and YAML are both accepted.

WARNING: This replaces all existing projects and settings. An invalid
document leaves existing data untouched.

Examples:
  parcel import survey.json
  parcel import ~/backups/parcel-20260823.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			fmt.Printf("Replace all data with '%s'? [y/N] ", filename)
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := persist.ImportAllData(st, data); err != nil {
			return fmt.Errorf("failed to import: %w", err)
		}
		// Import clears the selection; pick a fallback and restart the
		// undo log from the imported state.
		if _, err := st.EnsureDefaultProject(); err != nil {
			return err
		}
		hist.Clear()
		pushHistory(state.StateLoaded)

		color.Green("✓ Import complete")
		fmt.Printf("  %d projects\n", len(st.Projects()))
		return nil
	},
}

func init() {
	importCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	rootCmd.AddCommand(importCmd)
}
