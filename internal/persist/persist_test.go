// ABOUTME: Unit tests for the persistence manager
// ABOUTME: Covers save/load round-trips, corrupt-key degradation, and quota recovery

package persist

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/harper/parcel/internal/geometry"
	"github.com/harper/parcel/internal/history"
	"github.com/harper/parcel/internal/kvstore"
	"github.com/harper/parcel/internal/models"
	"github.com/harper/parcel/internal/state"
)

var (
	testLeft  = []geometry.Point{{X: 0, Y: 0}, {X: 100, Y: 0}}
	testRight = []geometry.Point{{X: 0, Y: 50}, {X: 100, Y: 50}}
)

func seededState(t *testing.T) *state.Store {
	t.Helper()
	st := state.NewStore()
	p := models.NewProject("Survey", "river parcel")
	if err := st.AddProject(p); err != nil {
		t.Fatal(err)
	}
	if err := st.SetCurrentProject(p.ID); err != nil {
		t.Fatal(err)
	}
	if err := st.AddMeasurement(models.NewMeasurement(testLeft, testRight, "plot A")); err != nil {
		t.Fatal(err)
	}
	return st
}

func TestManager_SaveLoadRoundTrip(t *testing.T) {
	store := kvstore.NewMemoryStore()
	st := seededState(t)
	hist := history.NewManager(10)
	if err := hist.Push(map[string][]string{"left": {"0, 0"}}, "calculate"); err != nil {
		t.Fatal(err)
	}

	m := NewManager(store, st, hist)
	if err := m.SaveAll(); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Fresh state, same KV store.
	st2 := state.NewStore()
	hist2 := history.NewManager(10)
	m2 := NewManager(store, st2, hist2)
	if err := m2.LoadAll(); err != nil {
		t.Fatalf("load: %v", err)
	}

	projects := st2.Projects()
	if len(projects) != 1 || projects[0].Name != "Survey" {
		t.Fatalf("expected project 'Survey', got %+v", projects)
	}
	if len(projects[0].Measurements) != 1 {
		t.Fatalf("expected 1 measurement, got %d", len(projects[0].Measurements))
	}
	got := projects[0].Measurements[0].Calculations
	want := geometry.Compute(testLeft, testRight)
	if got != want {
		t.Errorf("aggregate did not survive the round trip: %+v vs %+v", got, want)
	}
	if st2.CurrentProjectID() != projects[0].ID {
		t.Error("current project selection should survive the round trip")
	}
	if hist2.Len() != 1 {
		t.Errorf("undo history should survive the round trip, got %d entries", hist2.Len())
	}
}

func TestManager_LoadAll_EmptyStore(t *testing.T) {
	st := state.NewStore()
	m := NewManager(kvstore.NewMemoryStore(), st, history.NewManager(10))

	if err := m.LoadAll(); err != nil {
		t.Fatalf("load from empty store: %v", err)
	}
	if len(st.Projects()) != 0 {
		t.Error("expected no projects")
	}
	if st.Settings() != models.DefaultSettings() {
		t.Error("expected default settings when no settings key exists")
	}
}

func TestManager_LoadAll_CorruptKeysDegrade(t *testing.T) {
	store := kvstore.NewMemoryStore()
	_ = store.Set(KeyProjects, []byte("not json"))
	_ = store.Set(KeyCurrentProject, []byte("not-a-uuid"))
	_ = store.Set(KeySettings, []byte("{broken"))
	_ = store.Set(KeyUndoHistory, []byte("busted"))

	st := state.NewStore()
	hist := history.NewManager(10)
	m := NewManager(store, st, hist)

	if err := m.LoadAll(); err != nil {
		t.Fatalf("corrupt keys must not abort the load: %v", err)
	}
	if len(st.Projects()) != 0 {
		t.Error("corrupt projects should degrade to empty")
	}
	if st.CurrentProjectID() != uuid.Nil {
		t.Error("corrupt current id should degrade to none")
	}
	if st.Settings() != models.DefaultSettings() {
		t.Error("corrupt settings should degrade to defaults")
	}
	if hist.Len() != 0 {
		t.Error("corrupt history should start fresh")
	}
}

func TestManager_LoadAll_MigratesOldVersion(t *testing.T) {
	store := kvstore.NewMemoryStore()
	_ = store.Set(KeyVersion, []byte("0.9.0"))

	m := NewManager(store, state.NewStore(), history.NewManager(10))
	if err := m.LoadAll(); err != nil {
		t.Fatalf("load: %v", err)
	}

	got, err := store.Get(KeyVersion)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != SchemaVersion {
		t.Errorf("version tag should be rewritten to %s, got %s", SchemaVersion, got)
	}
}

func TestManager_LoadAll_AppliesHistoryBoundFromSettings(t *testing.T) {
	store := kvstore.NewMemoryStore()

	st := state.NewStore()
	bound := 2
	st.UpdateSettings(models.SettingsUpdate{MaxHistorySize: &bound})
	hist := history.NewManager(10)
	for i := 0; i < 5; i++ {
		if err := hist.Push(map[string][]string{"left": {"0, 0"}}, "calculate"); err != nil {
			t.Fatal(err)
		}
	}
	m := NewManager(store, st, hist)
	if err := m.SaveAll(); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Fresh manager built with the stock bound; the stored preference
	// must win once the load completes.
	st2 := state.NewStore()
	hist2 := history.NewManager(history.DefaultMaxHistory)
	m2 := NewManager(store, st2, hist2)
	if err := m2.LoadAll(); err != nil {
		t.Fatalf("load: %v", err)
	}

	if st2.Settings().MaxHistorySize != bound {
		t.Fatalf("expected maxHistorySize %d, got %d", bound, st2.Settings().MaxHistorySize)
	}
	if hist2.Len() != bound {
		t.Errorf("loaded history should be trimmed to %d entries, got %d", bound, hist2.Len())
	}
	if err := hist2.Push(map[string][]string{"left": {"1, 1"}}, "calculate"); err != nil {
		t.Fatal(err)
	}
	if hist2.Len() != bound {
		t.Errorf("bound should hold on later pushes, got %d entries", hist2.Len())
	}
}

func TestManager_SaveAll_QuotaEvictsHistory(t *testing.T) {
	// Room for the history blob alone but not for history plus state.
	store := kvstore.NewBoundedMemoryStore(2500)
	st := state.NewStore()
	p := models.NewProject("Survey", "")
	if err := st.AddProject(p); err != nil {
		t.Fatal(err)
	}
	if err := st.SetCurrentProject(p.ID); err != nil {
		t.Fatal(err)
	}
	m1 := models.NewMeasurement(testLeft, testRight, "plot A")
	m1.Notes = strings.Repeat("x", 1200)
	if err := st.AddMeasurement(m1); err != nil {
		t.Fatal(err)
	}

	hist := history.NewManager(10)
	// Bulk up the history so evicting it frees real space.
	for i := 0; i < 10; i++ {
		_ = hist.Push(map[string][]string{"left": {"0, 0", "100, 0"}, "right": {"0, 50", "100, 50"}}, "calculate")
	}

	m := NewManager(store, st, hist)
	if err := m.SaveAll(); err != nil {
		t.Fatalf("quota errors must not propagate: %v", err)
	}

	if _, err := store.Get(KeyUndoHistory); !errors.Is(err, kvstore.ErrNotFound) {
		t.Error("undo history should have been evicted")
	}
	if _, err := store.Get(KeyProjects); err != nil {
		t.Errorf("projects should have been saved after eviction: %v", err)
	}
}

func TestManager_SaveAll_WritesVersionTag(t *testing.T) {
	store := kvstore.NewMemoryStore()
	m := NewManager(store, state.NewStore(), nil)

	if err := m.SaveAll(); err != nil {
		t.Fatal(err)
	}
	got, err := store.Get(KeyVersion)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != SchemaVersion {
		t.Errorf("expected version %s, got %s", SchemaVersion, got)
	}
}
