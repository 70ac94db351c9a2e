// ABOUTME: Export command for generating JSON and YAML backup documents
// ABOUTME: Writes to a file or stdout

package main

import (
	"fmt"
	"os"

	"github.com/harper/parcel/internal/persist"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:     "export",
	Aliases: []string{"e"},
	Short:   "Export all projects and settings",
	Long: `Export every project and the settings as a versioned backup document.

Examples:
  parcel export
  parcel export --format yaml
  parcel export --output survey.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		var data []byte
		var err error
		switch format {
		case "json":
			data, err = persist.ExportAllData(st)
		case "yaml":
			data, err = persist.ExportYAML(st)
		default:
			return fmt.Errorf("unsupported format: %s (use 'json' or 'yaml')", format)
		}
		if err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}

		output, _ := cmd.Flags().GetString("output")
		if output != "" {
			if err := os.WriteFile(output, data, 0644); err != nil { //nolint:gosec // 0644 is intentional for data export files
				return fmt.Errorf("failed to write file: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Wrote %d projects to %s\n", len(st.Projects()), output)
		} else {
			fmt.Println(string(data))
		}

		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "output format (json, yaml)")
	exportCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
}
