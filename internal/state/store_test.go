// ABOUTME: Unit tests for the application state store
// ABOUTME: Covers CRUD, selection invariants, notification, and re-entrancy

package state

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/harper/parcel/internal/geometry"
	"github.com/harper/parcel/internal/models"
)

var (
	testLeft  = []geometry.Point{{X: 0, Y: 0}, {X: 100, Y: 0}}
	testRight = []geometry.Point{{X: 0, Y: 50}, {X: 100, Y: 50}}
)

func newTestMeasurement() *models.Measurement {
	return models.NewMeasurement(testLeft, testRight, "plot")
}

func TestStore_AddProject(t *testing.T) {
	s := NewStore()

	if err := s.AddProject(models.NewProject("Survey", "")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Projects()) != 1 {
		t.Errorf("expected 1 project, got %d", len(s.Projects()))
	}
}

func TestStore_AddProject_DuplicateName(t *testing.T) {
	s := NewStore()
	_ = s.AddProject(models.NewProject("Survey", ""))

	for _, name := range []string{"Survey", "survey", "SURVEY"} {
		err := s.AddProject(models.NewProject(name, ""))
		if !errors.Is(err, ErrValidation) {
			t.Errorf("AddProject(%q) error = %v, want ErrValidation", name, err)
		}
	}
}

func TestStore_AddProject_BadName(t *testing.T) {
	s := NewStore()
	if err := s.AddProject(models.NewProject("ab", "")); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for short name, got %v", err)
	}
	if err := s.AddProject(nil); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for nil project, got %v", err)
	}
}

func TestStore_RemoveProject_ClearsCurrent(t *testing.T) {
	s := NewStore()
	p := models.NewProject("Survey", "")
	_ = s.AddProject(p)
	_ = s.SetCurrentProject(p.ID)

	if err := s.RemoveProject(p.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.CurrentProjectID() != uuid.Nil {
		t.Error("removing the current project should clear the selection")
	}
}

func TestStore_RemoveProject_NotFound(t *testing.T) {
	s := NewStore()
	if err := s.RemoveProject(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_SetCurrentProject(t *testing.T) {
	s := NewStore()
	p := models.NewProject("Survey", "")
	_ = s.AddProject(p)

	if err := s.SetCurrentProject(p.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.CurrentProject() != p {
		t.Error("expected current project to resolve")
	}

	// Clearing is always allowed.
	if err := s.SetCurrentProject(uuid.Nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.CurrentProject() != nil {
		t.Error("expected no current project")
	}

	if err := s.SetCurrentProject(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestStore_UpdateProject(t *testing.T) {
	s := NewStore()
	p1 := models.NewProject("Survey", "")
	p2 := models.NewProject("North Field", "")
	_ = s.AddProject(p1)
	_ = s.AddProject(p2)

	taken := "survey"
	if err := s.UpdateProject(p2.ID, models.ProjectUpdate{Name: &taken}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for duplicate rename, got %v", err)
	}

	// Renaming to its own name (case change aside) is not a conflict.
	same := "North Field"
	if err := s.UpdateProject(p2.ID, models.ProjectUpdate{Name: &same}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	fresh := "South Field"
	if err := s.UpdateProject(p2.ID, models.ProjectUpdate{Name: &fresh}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p2.Name != "South Field" {
		t.Errorf("expected renamed project, got %q", p2.Name)
	}
}

func TestStore_AddMeasurement_NoCurrentProject(t *testing.T) {
	s := NewStore()
	_ = s.AddProject(models.NewProject("Survey", ""))

	err := s.AddMeasurement(newTestMeasurement())
	if !errors.Is(err, ErrNoCurrentProject) {
		t.Errorf("expected ErrNoCurrentProject, got %v", err)
	}
}

func TestStore_MeasurementLifecycle(t *testing.T) {
	s := NewStore()
	p := models.NewProject("Survey", "")
	_ = s.AddProject(p)
	_ = s.SetCurrentProject(p.ID)

	m := newTestMeasurement()
	if err := s.AddMeasurement(m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Measurements) != 1 {
		t.Errorf("expected 1 measurement, got %d", len(p.Measurements))
	}

	if err := s.RemoveMeasurement(m.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.RemoveMeasurement(m.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second removal, got %v", err)
	}
}

func TestStore_UpdateSettings(t *testing.T) {
	s := NewStore()
	theme := "dark"
	s.UpdateSettings(models.SettingsUpdate{Theme: &theme})

	if s.Settings().Theme != "dark" {
		t.Errorf("expected theme 'dark', got %q", s.Settings().Theme)
	}
	if s.Settings().DefaultUnit != "meters" {
		t.Error("untouched settings should keep defaults")
	}
}

func TestStore_LoadState(t *testing.T) {
	s := NewStore()
	p := models.NewProject("Imported", "")

	s.LoadState([]*models.Project{p}, p.ID, models.DefaultSettings())

	if len(s.Projects()) != 1 || s.CurrentProjectID() != p.ID {
		t.Error("expected wholesale state replacement")
	}
}

func TestStore_LoadState_DropsDanglingCurrent(t *testing.T) {
	s := NewStore()
	p := models.NewProject("Imported", "")

	s.LoadState([]*models.Project{p}, uuid.New(), models.DefaultSettings())

	if s.CurrentProjectID() != uuid.Nil {
		t.Error("a current id that does not resolve must be dropped")
	}
}

func TestStore_ClearAll(t *testing.T) {
	s := NewStore()
	p := models.NewProject("Survey", "")
	_ = s.AddProject(p)
	_ = s.SetCurrentProject(p.ID)

	s.ClearAll()

	if len(s.Projects()) != 0 || s.CurrentProjectID() != uuid.Nil {
		t.Error("expected empty state after ClearAll")
	}
	if s.Settings() != models.DefaultSettings() {
		t.Error("expected default settings after ClearAll")
	}
}

func TestStore_EnsureDefaultProject(t *testing.T) {
	s := NewStore()

	p, err := s.EnsureDefaultProject()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p == nil || p.Name != DefaultProjectName {
		t.Fatalf("expected a default project, got %+v", p)
	}
	if s.CurrentProject() == nil {
		t.Error("default project should be selected")
	}

	// Second call is a no-op.
	again, err := s.EnsureDefaultProject()
	if err != nil {
		t.Fatal(err)
	}
	if again != nil {
		t.Error("expected no new project when one exists")
	}
}

func TestStore_EnsureDefaultProject_SelectsFirstExisting(t *testing.T) {
	s := NewStore()
	p := models.NewProject("Survey", "")
	_ = s.AddProject(p)

	if _, err := s.EnsureDefaultProject(); err != nil {
		t.Fatal(err)
	}
	if s.CurrentProjectID() != p.ID {
		t.Error("expected the first existing project to be selected")
	}
}

func TestStore_NotifiesSubscribers(t *testing.T) {
	s := NewStore()
	var got []Action
	s.Subscribe(func(e Event) { got = append(got, e.Action) })

	p := models.NewProject("Survey", "")
	_ = s.AddProject(p)
	_ = s.SetCurrentProject(p.ID)
	_ = s.AddMeasurement(newTestMeasurement())

	want := []Action{ProjectAdded, CurrentProjectChanged, MeasurementAdded}
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestStore_EventCarriesSnapshot(t *testing.T) {
	s := NewStore()
	var snap *Snapshot
	s.Subscribe(func(e Event) { snap = e.State })

	p := models.NewProject("Survey", "")
	_ = s.AddProject(p)

	if snap == nil || len(snap.Projects) != 1 {
		t.Fatal("expected snapshot with one project")
	}
	// Snapshot is a deep copy: mutating it must not touch the store.
	snap.Projects[0].Name = "mutated"
	if p.Name != "Survey" {
		t.Error("snapshot mutation leaked into live state")
	}
}

func TestStore_Unsubscribe(t *testing.T) {
	s := NewStore()
	calls := 0
	unsubscribe := s.Subscribe(func(Event) { calls++ })

	_ = s.AddProject(models.NewProject("Survey", ""))
	unsubscribe()
	_ = s.AddProject(models.NewProject("North Field", ""))

	if calls != 1 {
		t.Errorf("expected 1 call after unsubscribe, got %d", calls)
	}
}

func TestStore_ReentrantMutationDoesNotRecurse(t *testing.T) {
	s := NewStore()
	calls := 0
	s.Subscribe(func(e Event) {
		calls++
		if e.Action == ProjectAdded {
			// Nested mutation from inside a callback: allowed, but it
			// must not trigger another notification round.
			theme := "dark"
			s.UpdateSettings(models.SettingsUpdate{Theme: &theme})
		}
	})

	_ = s.AddProject(models.NewProject("Survey", ""))

	if calls != 1 {
		t.Errorf("expected exactly 1 notification, got %d", calls)
	}
	if s.Settings().Theme != "dark" {
		t.Error("nested mutation itself should still apply")
	}
}
