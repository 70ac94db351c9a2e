// ABOUTME: Backup command for writing a timestamped YAML backup file
// ABOUTME: Creates portable files for data migration

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harper/parcel/internal/persist"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create a YAML backup of all data",
	Long: `Create a YAML backup file containing every project and the settings.

The backup file can be used to:
- Migrate data between machines
- Restore after data loss
- Import into a fresh database

Examples:
  parcel backup --output survey.yaml
  parcel backup -o ~/backups/parcel-$(date +%Y%m%d).yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := persist.ExportYAML(st)
		if err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = fmt.Sprintf("parcel-%s.yaml", time.Now().Format("20060102-150405"))
		}

		if err := os.WriteFile(output, data, 0644); err != nil { //nolint:gosec // 0644 is intentional for backup files
			return fmt.Errorf("failed to write backup: %w", err)
		}

		color.Green("Backup created: %s", output)
		fmt.Printf("  %d projects\n", len(st.Projects()))
		return nil
	},
}

func init() {
	backupCmd.Flags().StringP("output", "o", "", "output file (default: parcel-YYYYMMDD-HHMMSS.yaml)")

	rootCmd.AddCommand(backupCmd)
}
