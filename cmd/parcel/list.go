// ABOUTME: List command for measurements in the current project
// ABOUTME: With --all, lists every project and its measurements

package main

import (
	"fmt"

	"github.com/harper/parcel/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List measurements in the current project",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		if all {
			for _, p := range st.Projects() {
				fmt.Println(ui.FormatProject(p, p.ID == st.CurrentProjectID()))
				for _, m := range p.Measurements {
					fmt.Printf("    %s\n", ui.FormatMeasurement(m))
				}
			}
			return nil
		}

		p := st.CurrentProject()
		if p == nil {
			return fmt.Errorf("no current project")
		}

		fmt.Println(ui.FormatProject(p, true))
		if len(p.Measurements) == 0 {
			fmt.Println("  No measurements yet. Use 'parcel calc --save' to add one.")
			return nil
		}
		for _, m := range p.Measurements {
			fmt.Printf("    %s\n", ui.FormatMeasurement(m))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().Bool("all", false, "list all projects and their measurements")

	rootCmd.AddCommand(listCmd)
}
