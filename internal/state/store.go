// ABOUTME: Application state store owning projects, selection, and settings
// ABOUTME: All writes go through its methods; subscribers get synchronous events

package state

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/harper/parcel/internal/models"
	"github.com/harper/parcel/internal/validate"
)

// DefaultProjectName is the fallback project created at startup when no
// projects exist.
const DefaultProjectName = "Default Project"

// Action tags a state change for subscribers.
type Action string

const (
	ProjectAdded          Action = "PROJECT_ADDED"
	ProjectRemoved        Action = "PROJECT_REMOVED"
	ProjectChanged        Action = "PROJECT_CHANGED"
	CurrentProjectChanged Action = "CURRENT_PROJECT_CHANGED"
	MeasurementAdded      Action = "MEASUREMENT_ADDED"
	MeasurementRemoved    Action = "MEASUREMENT_REMOVED"
	SettingsUpdated       Action = "SETTINGS_UPDATED"
	StateLoaded           Action = "STATE_LOADED"
	StateCleared          Action = "STATE_CLEARED"
)

// Snapshot is a deep copy of the store content at notification time.
// Subscribers may hold it without affecting the live state.
type Snapshot struct {
	Projects         []*models.Project
	CurrentProjectID uuid.UUID
	Settings         models.Settings
}

// Event is delivered synchronously to every subscriber after a mutation.
type Event struct {
	Action  Action
	Payload any
	State   *Snapshot
}

type subscriber struct {
	id int
	fn func(Event)
}

// Store is the single owner of projects, the current-project pointer,
// and settings. It is built for a single goroutine: mutations are
// synchronous and a re-entrancy guard suppresses nested notifications
// (a callback mutating the store will not trigger another notify round;
// callers must not depend on re-entrant propagation).
type Store struct {
	projects  []*models.Project
	currentID uuid.UUID
	settings  models.Settings

	subscribers []subscriber
	nextSubID   int
	notifying   bool
}

// NewStore creates an empty store with default settings.
func NewStore() *Store {
	return &Store{settings: models.DefaultSettings()}
}

// Subscribe registers a callback for state changes and returns its
// unsubscribe function.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.nextSubID++
	id := s.nextSubID
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})

	return func() {
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Projects returns the project list. The slice is a copy; the projects
// themselves are the live objects.
func (s *Store) Projects() []*models.Project {
	return append([]*models.Project{}, s.projects...)
}

// GetProject finds a project by id, or nil.
func (s *Store) GetProject(id uuid.UUID) *models.Project {
	for _, p := range s.projects {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// CurrentProject returns the selected project, or nil when none is set.
func (s *Store) CurrentProject() *models.Project {
	if s.currentID == uuid.Nil {
		return nil
	}
	return s.GetProject(s.currentID)
}

// CurrentProjectID returns the selection pointer (uuid.Nil when unset).
func (s *Store) CurrentProjectID() uuid.UUID {
	return s.currentID
}

// Settings returns the current settings value.
func (s *Store) Settings() models.Settings {
	return s.settings
}

// AddProject validates the project name against all existing projects
// and appends it on success.
func (s *Store) AddProject(p *models.Project) error {
	if p == nil {
		return fmt.Errorf("%w: project is nil", ErrValidation)
	}
	if err := validate.ProjectName(p.Name, s.projectNames()); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	s.projects = append(s.projects, p)
	s.notify(ProjectAdded, p)
	return nil
}

// RemoveProject deletes a project. If it was the current project the
// selection is cleared; picking a fallback is the caller's business.
func (s *Store) RemoveProject(id uuid.UUID) error {
	for i, p := range s.projects {
		if p.ID == id {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			if s.currentID == id {
				s.currentID = uuid.Nil
			}
			s.notify(ProjectRemoved, p)
			return nil
		}
	}
	return fmt.Errorf("%w: project %s", ErrNotFound, id)
}

// UpdateProject applies mutable fields to a project. A name change is
// validated against all other projects.
func (s *Store) UpdateProject(id uuid.UUID, upd models.ProjectUpdate) error {
	p := s.GetProject(id)
	if p == nil {
		return fmt.Errorf("%w: project %s", ErrNotFound, id)
	}

	if upd.Name != nil && *upd.Name != p.Name {
		if err := validate.ProjectName(*upd.Name, s.siblingNames(id)); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	p.Update(upd)
	s.notify(ProjectChanged, p)
	return nil
}

// SetCurrentProject selects a project by id. uuid.Nil clears the
// selection and is always allowed.
func (s *Store) SetCurrentProject(id uuid.UUID) error {
	if id != uuid.Nil && s.GetProject(id) == nil {
		return fmt.Errorf("%w: project %s", ErrNotFound, id)
	}
	s.currentID = id
	s.notify(CurrentProjectChanged, id)
	return nil
}

// AddMeasurement appends a measurement to the current project.
func (s *Store) AddMeasurement(m *models.Measurement) error {
	p := s.CurrentProject()
	if p == nil {
		return ErrNoCurrentProject
	}
	if err := p.AddMeasurement(m); err != nil {
		return err
	}
	s.notify(MeasurementAdded, m)
	return nil
}

// RemoveMeasurement deletes a measurement from the current project.
func (s *Store) RemoveMeasurement(id uuid.UUID) error {
	p := s.CurrentProject()
	if p == nil {
		return ErrNoCurrentProject
	}
	if !p.RemoveMeasurement(id) {
		return fmt.Errorf("%w: measurement %s", ErrNotFound, id)
	}
	s.notify(MeasurementRemoved, id)
	return nil
}

// UpdateSettings shallow-merges a partial update into the settings.
func (s *Store) UpdateSettings(upd models.SettingsUpdate) {
	s.settings = s.settings.Merge(upd)
	s.notify(SettingsUpdated, s.settings)
}

// LoadState replaces projects, selection, and settings wholesale. Used
// by persistence on startup and import. A current id that does not
// resolve is dropped rather than kept dangling.
func (s *Store) LoadState(projects []*models.Project, currentID uuid.UUID, settings models.Settings) {
	s.projects = projects
	s.settings = settings
	s.currentID = uuid.Nil
	if currentID != uuid.Nil && s.GetProject(currentID) != nil {
		s.currentID = currentID
	}
	s.notify(StateLoaded, nil)
}

// ClearAll resets the store to its empty default state.
func (s *Store) ClearAll() {
	s.projects = nil
	s.currentID = uuid.Nil
	s.settings = models.DefaultSettings()
	s.notify(StateCleared, nil)
}

// EnsureDefaultProject creates and selects the fallback project when no
// projects exist. Startup bootstrap only; nothing else creates projects
// as a side effect.
func (s *Store) EnsureDefaultProject() (*models.Project, error) {
	if len(s.projects) > 0 {
		if s.currentID == uuid.Nil {
			return nil, s.SetCurrentProject(s.projects[0].ID)
		}
		return nil, nil
	}

	p := models.NewProject(DefaultProjectName, "Created automatically")
	if err := s.AddProject(p); err != nil {
		return nil, err
	}
	return p, s.SetCurrentProject(p.ID)
}

// Snapshot deep-copies the current state.
func (s *Store) Snapshot() *Snapshot {
	projects := make([]*models.Project, len(s.projects))
	for i, p := range s.projects {
		projects[i] = p.Copy()
	}
	return &Snapshot{
		Projects:         projects,
		CurrentProjectID: s.currentID,
		Settings:         s.settings,
	}
}

// notify delivers an event to all subscribers. A single in-flight
// notification is allowed: mutations triggered from within a callback
// complete normally but do not re-notify.
func (s *Store) notify(action Action, payload any) {
	if s.notifying {
		return
	}
	s.notifying = true
	defer func() { s.notifying = false }()

	event := Event{Action: action, Payload: payload, State: s.Snapshot()}
	for _, sub := range append([]subscriber{}, s.subscribers...) {
		sub.fn(event)
	}
}

func (s *Store) projectNames() []string {
	names := make([]string, len(s.projects))
	for i, p := range s.projects {
		names[i] = p.Name
	}
	return names
}

func (s *Store) siblingNames(exclude uuid.UUID) []string {
	var names []string
	for _, p := range s.projects {
		if p.ID != exclude {
			names = append(names, p.Name)
		}
	}
	return names
}
