// ABOUTME: Project entity owning an ordered collection of measurements
// ABOUTME: Provides measurement CRUD, aggregation helpers, and deep cloning

package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidMeasurement is returned when a measurement lacks a usable id.
var ErrInvalidMeasurement = errors.New("measurement must have a valid id")

// Project groups measurements for one survey job. Measurements are kept
// in insertion order, which is also chronological order.
type Project struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description,omitempty"`
	Measurements []*Measurement    `json:"measurements"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// ProjectUpdate carries the fields mutable through Project.Update.
// Nil pointers leave the existing value untouched.
type ProjectUpdate struct {
	Name        *string
	Description *string
	Metadata    map[string]string
}

// NewProject creates a project with generated UUID and timestamps.
func NewProject(name, description string) *Project {
	now := time.Now()
	return &Project{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// AddMeasurement appends a measurement to the project.
func (p *Project) AddMeasurement(m *Measurement) error {
	if m == nil || m.ID == uuid.Nil {
		return ErrInvalidMeasurement
	}
	p.Measurements = append(p.Measurements, m)
	p.UpdatedAt = time.Now()
	return nil
}

// RemoveMeasurement deletes a measurement by id, reporting whether it existed.
func (p *Project) RemoveMeasurement(id uuid.UUID) bool {
	for i, m := range p.Measurements {
		if m.ID == id {
			p.Measurements = append(p.Measurements[:i], p.Measurements[i+1:]...)
			p.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

// GetMeasurement finds a measurement by id, or nil.
func (p *Project) GetMeasurement(id uuid.UUID) *Measurement {
	for _, m := range p.Measurements {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// Update applies the mutable fields. Metadata entries are merged in;
// measurement content is never touched this way.
func (p *Project) Update(upd ProjectUpdate) {
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Metadata != nil {
		if p.Metadata == nil {
			p.Metadata = make(map[string]string, len(upd.Metadata))
		}
		for k, v := range upd.Metadata {
			p.Metadata[k] = v
		}
	}
	p.UpdatedAt = time.Now()
}

// TotalArea sums member areas in square feet.
func (p *Project) TotalArea() float64 {
	var total float64
	for _, m := range p.Measurements {
		total += m.Calculations.AreaSquareFeet
	}
	return total
}

// LatestMeasurement returns the most recently updated measurement, or nil.
func (p *Project) LatestMeasurement() *Measurement {
	var latest *Measurement
	for _, m := range p.Measurements {
		if latest == nil || m.UpdatedAt.After(latest.UpdatedAt) {
			latest = m
		}
	}
	return latest
}

// Copy returns an identity-preserving deep copy, used for state
// snapshots handed to subscribers.
func (p *Project) Copy() *Project {
	c := *p
	if p.Metadata != nil {
		c.Metadata = make(map[string]string, len(p.Metadata))
		for k, v := range p.Metadata {
			c.Metadata[k] = v
		}
	}
	c.Measurements = make([]*Measurement, len(p.Measurements))
	for i, m := range p.Measurements {
		c.Measurements[i] = m.Copy()
	}
	return &c
}

// Clone produces a deep copy under a new name, with fresh ids and
// timestamps for the project and every measurement. Used for the
// duplicate-project workflow.
func (p *Project) Clone(newName string) *Project {
	clone := NewProject(newName, p.Description)
	if p.Metadata != nil {
		clone.Metadata = make(map[string]string, len(p.Metadata))
		for k, v := range p.Metadata {
			clone.Metadata[k] = v
		}
	}
	for _, m := range p.Measurements {
		clone.Measurements = append(clone.Measurements, m.Clone())
	}
	return clone
}
