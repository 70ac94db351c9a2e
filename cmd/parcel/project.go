// ABOUTME: Project management commands: add, list, use, remove, clone
// ABOUTME: Projects are addressed by name, case-insensitively

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/parcel/internal/models"
	"github.com/harper/parcel/internal/state"
	"github.com/harper/parcel/internal/ui"
	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"p"},
	Short:   "Manage survey projects",
}

var projectAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a new project",
	Long: `Create a new project. Names must be 3-50 characters and unique
across all projects.

Examples:
  parcel project add "West Field"
  parcel project add "West Field" --description "beyond the creek" --use`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")

		p := models.NewProject(args[0], description)
		if err := st.AddProject(p); err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		if use, _ := cmd.Flags().GetBool("use"); use {
			if err := st.SetCurrentProject(p.ID); err != nil {
				return err
			}
		}
		pushHistory(state.ProjectAdded)

		color.Green("✓ Created project %s", p.Name)
		return nil
	},
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, p := range st.Projects() {
			fmt.Println(ui.FormatProject(p, p.ID == st.CurrentProjectID()))
		}
		return nil
	},
}

var projectUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Switch the current project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := findProject(args[0])
		if err != nil {
			return err
		}
		if err := st.SetCurrentProject(p.ID); err != nil {
			return err
		}
		pushHistory(state.CurrentProjectChanged)

		color.Green("✓ Now using %s", p.Name)
		return nil
	},
}

var projectRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a project and all its measurements",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := findProject(args[0])
		if err != nil {
			return err
		}

		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			fmt.Printf("Remove '%s' and its %d measurements? [y/N] ", p.Name, len(p.Measurements))
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := st.RemoveProject(p.ID); err != nil {
			return fmt.Errorf("failed to remove project: %w", err)
		}
		// Removing the current project clears the selection; fall back.
		if _, err := st.EnsureDefaultProject(); err != nil {
			return err
		}
		pushHistory(state.ProjectRemoved)

		color.Green("✓ Removed %s", p.Name)
		return nil
	},
}

var projectCloneCmd = &cobra.Command{
	Use:   "clone <name> <new-name>",
	Short: "Clone a project with fresh measurement ids",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := findProject(args[0])
		if err != nil {
			return err
		}

		clone := src.Clone(args[1])
		if err := st.AddProject(clone); err != nil {
			return fmt.Errorf("failed to clone project: %w", err)
		}
		pushHistory(state.ProjectAdded)

		color.Green("✓ Cloned %s to %s (%d measurements)",
			src.Name, clone.Name, len(clone.Measurements))
		return nil
	},
}

// findProject resolves a project by name, case-insensitively.
func findProject(name string) (*models.Project, error) {
	for _, p := range st.Projects() {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("project '%s' not found", name)
}

func init() {
	projectAddCmd.Flags().String("description", "", "project description")
	projectAddCmd.Flags().Bool("use", false, "make this the current project")
	projectRemoveCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectUseCmd)
	projectCmd.AddCommand(projectRemoveCmd)
	projectCmd.AddCommand(projectCloneCmd)

	rootCmd.AddCommand(projectCmd)
}
