// ABOUTME: Undo command restoring the previous state snapshot
// ABOUTME: Walks the persisted history cursor backward

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Undo the last change",
	RunE: func(cmd *cobra.Command, args []string) error {
		entry := hist.Undo()
		if entry == nil {
			fmt.Println("Nothing to undo.")
			return nil
		}
		if err := restoreSnapshot(entry); err != nil {
			return err
		}

		color.Green("✓ Undid %s", entry.Action)
		return nil
	},
}

var redoCmd = &cobra.Command{
	Use:   "redo",
	Short: "Redo a previously undone change",
	RunE: func(cmd *cobra.Command, args []string) error {
		entry := hist.Redo()
		if entry == nil {
			fmt.Println("Nothing to redo.")
			return nil
		}
		if err := restoreSnapshot(entry); err != nil {
			return err
		}

		color.Green("✓ Redid %s", entry.Action)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(redoCmd)
}
