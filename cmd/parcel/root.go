// ABOUTME: Root Cobra command and global wiring
// ABOUTME: Opens the KV store and loads state before any subcommand runs

package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/harper/parcel/internal/config"
	"github.com/harper/parcel/internal/history"
	"github.com/harper/parcel/internal/kvstore"
	"github.com/harper/parcel/internal/models"
	"github.com/harper/parcel/internal/persist"
	"github.com/harper/parcel/internal/state"
	"github.com/spf13/cobra"
)

var (
	cfg   *config.Config
	store kvstore.Store
	st    *state.Store
	hist  *history.Manager
	pm    *persist.Manager
)

var rootCmd = &cobra.Command{
	Use:   "parcel",
	Short: "Land survey measurements from boundary coordinates",
	Long: `
██████╗  █████╗ ██████╗  ██████╗███████╗██╗
██╔══██╗██╔══██╗██╔══██╗██╔════╝██╔════╝██║
██████╔╝███████║██████╔╝██║     █████╗  ██║
██╔═══╝ ██╔══██║██╔══██╗██║     ██╔══╝  ██║
██║     ██║  ██║██║  ██║╚██████╗███████╗███████╗
╚═╝     ╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝╚══════╝╚══════╝

     Measure land parcels from two boundary sides

Examples:
  parcel calc -l "0, 0" -l "100, 0" -r "0, 50" -r "100, 50"
  parcel calc -l "0, 0" -l "100, 0" -r "0, 50" -r "100, 50" --save --name "north plot"
  parcel list
  parcel project add "West Field" --use`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		store, err = cfg.OpenStore()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}

		st = state.NewStore()
		hist = history.NewManager(history.DefaultMaxHistory)
		pm = persist.NewManager(store, st, hist)

		if err := pm.LoadAll(); err != nil {
			return fmt.Errorf("failed to load state: %w", err)
		}
		if _, err := st.EnsureDefaultProject(); err != nil {
			return fmt.Errorf("failed to create default project: %w", err)
		}

		// Seed the undo baseline so the first change can be undone.
		if hist.Len() == 0 {
			pushHistory(state.StateLoaded)
		}

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if pm != nil {
			if err := pm.SaveAll(); err != nil {
				return fmt.Errorf("failed to save state: %w", err)
			}
		}
		if store != nil {
			return store.Close()
		}
		return nil
	},
}

// historySnapshot is the shape pushed onto the undo log after every
// mutating command.
type historySnapshot struct {
	Projects         []*models.Project `json:"projects"`
	CurrentProjectID uuid.UUID         `json:"currentProjectId"`
	Settings         models.Settings   `json:"settings"`
}

func currentSnapshot() historySnapshot {
	return historySnapshot{
		Projects:         st.Projects(),
		CurrentProjectID: st.CurrentProjectID(),
		Settings:         st.Settings(),
	}
}

// pushHistory records the post-mutation state. History failures never
// block the command that caused them.
func pushHistory(action state.Action) {
	if hist == nil {
		return
	}
	if err := hist.Push(currentSnapshot(), string(action)); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record history: %v\n", err)
	}
}

// restoreSnapshot loads a history entry back into the state store.
func restoreSnapshot(e *history.Entry) error {
	var snap historySnapshot
	if err := e.Decode(&snap); err != nil {
		return fmt.Errorf("corrupt history entry: %w", err)
	}
	st.LoadState(snap.Projects, snap.CurrentProjectID, snap.Settings)
	return nil
}
