// ABOUTME: Persistence manager mapping application state onto the KV store
// ABOUTME: Handles versioned load/save, quota recovery, and debounced auto-save

package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/bep/debounce"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/harper/parcel/internal/history"
	"github.com/harper/parcel/internal/kvstore"
	"github.com/harper/parcel/internal/models"
	"github.com/harper/parcel/internal/state"
)

// Storage keys. Each piece of state lives under its own key so a single
// corrupt value never takes down the whole load.
const (
	KeyProjects       = "projects"
	KeyCurrentProject = "currentProjectId"
	KeySettings       = "settings"
	KeyVersion        = "version"
	KeyUndoHistory    = "undoHistory"
)

// SchemaVersion tags stored data. Bump it when the stored shapes change
// and teach migrate about the transition.
const SchemaVersion = "1.0.0"

// DefaultAutoSaveDelay is the quiescence window for debounced saves.
const DefaultAutoSaveDelay = 2 * time.Second

// Manager serializes store state to and from the key-value store.
type Manager struct {
	store   kvstore.Store
	state   *state.Store
	history *history.Manager
	log     *log.Logger

	debounced func(func())
}

// NewManager wires a persistence manager over the given KV store.
func NewManager(store kvstore.Store, st *state.Store, hist *history.Manager) *Manager {
	return &Manager{
		store:     store,
		state:     st,
		history:   hist,
		log:       log.NewWithOptions(os.Stderr, log.Options{Prefix: "persist"}),
		debounced: debounce.New(DefaultAutoSaveDelay),
	}
}

// SaveAll writes every state key. On a quota failure it evicts the undo
// history first (cheapest to lose), warns, and retries once; the quota
// error itself is never propagated to the caller.
func (m *Manager) SaveAll() error {
	if err := m.saveHistory(); err != nil && !errors.Is(err, kvstore.ErrQuotaExceeded) {
		m.log.Warn("could not save undo history", "err", err)
	}

	projects, err := json.Marshal(m.state.Projects())
	if err != nil {
		return fmt.Errorf("marshal projects: %w", err)
	}
	settings, err := json.Marshal(m.state.Settings())
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	currentID := ""
	if id := m.state.CurrentProjectID(); id != uuid.Nil {
		currentID = id.String()
	}

	entries := []struct {
		key   string
		value []byte
	}{
		{KeyProjects, projects},
		{KeyCurrentProject, []byte(currentID)},
		{KeySettings, settings},
		{KeyVersion, []byte(SchemaVersion)},
	}

	for _, e := range entries {
		if err := m.setWithEviction(e.key, e.value); err != nil {
			return err
		}
	}
	return nil
}

// setWithEviction writes a key, recovering once from a quota failure by
// dropping the undo-history key.
func (m *Manager) setWithEviction(key string, value []byte) error {
	err := m.store.Set(key, value)
	if err == nil {
		return nil
	}
	if !errors.Is(err, kvstore.ErrQuotaExceeded) {
		return fmt.Errorf("save %q: %w", key, err)
	}

	m.log.Warn("storage quota exceeded, evicting undo history", "key", key)
	if delErr := m.store.Delete(KeyUndoHistory); delErr != nil {
		m.log.Warn("could not evict undo history", "err", delErr)
	}

	if retryErr := m.store.Set(key, value); retryErr != nil {
		m.log.Error("save failed after eviction", "key", key, "err", retryErr)
	}
	return nil
}

// LoadAll reads every key into the state store. A missing or corrupt
// key degrades to its default value; only the affected key is lost.
func (m *Manager) LoadAll() error {
	if version := m.loadVersion(); version != "" && version != SchemaVersion {
		if err := m.migrate(version); err != nil {
			return fmt.Errorf("migrate from %s: %w", version, err)
		}
	}

	var projects []*models.Project
	if data, err := m.store.Get(KeyProjects); err == nil {
		if err := json.Unmarshal(data, &projects); err != nil {
			m.log.Warn("stored projects are corrupt, starting empty", "err", err)
			projects = nil
		}
	} else if !errors.Is(err, kvstore.ErrNotFound) {
		return fmt.Errorf("load projects: %w", err)
	}

	currentID := uuid.Nil
	if data, err := m.store.Get(KeyCurrentProject); err == nil && len(data) > 0 {
		if id, err := uuid.Parse(string(data)); err == nil {
			currentID = id
		} else {
			m.log.Warn("stored current project id is corrupt, clearing selection")
		}
	}

	settings := models.DefaultSettings()
	if data, err := m.store.Get(KeySettings); err == nil {
		if err := json.Unmarshal(data, &settings); err != nil {
			m.log.Warn("stored settings are corrupt, using defaults", "err", err)
			settings = models.DefaultSettings()
		}
	}

	m.state.LoadState(projects, currentID, settings)
	m.loadHistory()

	// The persisted undo log carries whatever bound it was saved with;
	// the settings value is the one the user actually controls.
	if m.history != nil {
		m.history.SetMax(settings.MaxHistorySize)
	}
	return nil
}

// migrate upgrades stored data from an older schema version. The stored
// shapes have not changed since 1.0.0, so this only rewrites the tag.
func (m *Manager) migrate(from string) error {
	m.log.Info("migrating stored data", "from", from, "to", SchemaVersion)
	return m.store.Set(KeyVersion, []byte(SchemaVersion))
}

func (m *Manager) loadVersion() string {
	data, err := m.store.Get(KeyVersion)
	if err != nil {
		return ""
	}
	return string(data)
}

// saveHistory persists the undo log under its own evictable key.
func (m *Manager) saveHistory() error {
	if m.history == nil {
		return nil
	}
	data, err := m.history.Serialize()
	if err != nil {
		return fmt.Errorf("serialize history: %w", err)
	}
	return m.store.Set(KeyUndoHistory, data)
}

// loadHistory restores the undo log; a corrupt log starts fresh.
func (m *Manager) loadHistory() {
	if m.history == nil {
		return
	}
	data, err := m.store.Get(KeyUndoHistory)
	if err != nil {
		return
	}
	if err := m.history.Deserialize(data); err != nil {
		m.log.Warn("stored undo history is corrupt, starting fresh", "err", err)
		m.history.Clear()
	}
}

// ScheduleSave requests a save after the quiescence window. Rapid calls
// collapse into one write; each call resets the pending timer.
func (m *Manager) ScheduleSave() {
	m.debounced(func() {
		if err := m.SaveAll(); err != nil {
			m.log.Error("auto-save failed", "err", err)
		}
	})
}

// Attach subscribes to state changes and schedules a debounced save on
// each mutation while auto-save is enabled. Returns the unsubscribe
// function.
func (m *Manager) Attach() func() {
	return m.state.Subscribe(func(e state.Event) {
		if e.State.Settings.AutoSave {
			m.ScheduleSave()
		}
	})
}
