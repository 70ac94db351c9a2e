// ABOUTME: Measurement entity wrapping two boundary sides and derived figures
// ABOUTME: Every mutation recomputes calculations and bumps the update timestamp

package models

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/harper/parcel/internal/geometry"
)

// MinPointsPerSide is the number of points each side needs before the
// measurement produces non-zero figures.
const MinPointsPerSide = 2

// MaxPointsPerSide bounds how many points one side accepts from input
// surfaces. The area formula only uses the first two, but every entered
// point is stored and plotted.
const MaxPointsPerSide = 10

// ErrInvalidPoint is returned for NaN or infinite coordinate values.
var ErrInvalidPoint = errors.New("point coordinates must be finite")

// ErrIndexOutOfRange is returned for out-of-bounds point indices.
var ErrIndexOutOfRange = errors.New("point index out of range")

// Side selects which boundary side an operation applies to.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Measurement is one saved survey calculation: two ordered point
// sequences plus the aggregate derived from them. Calculations are
// always the pure function of the current points; they are never edited
// independently.
type Measurement struct {
	ID           uuid.UUID          `json:"id"`
	Name         string             `json:"name,omitempty"`
	LeftPoints   []geometry.Point   `json:"leftPoints"`
	RightPoints  []geometry.Point   `json:"rightPoints"`
	Calculations geometry.Aggregate `json:"calculations"`
	Notes        string             `json:"notes,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// NewMeasurement creates a measurement with generated UUID and timestamps.
// The aggregate is computed immediately from the supplied sides.
func NewMeasurement(left, right []geometry.Point, name string) *Measurement {
	now := time.Now()
	m := &Measurement{
		ID:          uuid.New(),
		Name:        name,
		LeftPoints:  append([]geometry.Point{}, left...),
		RightPoints: append([]geometry.Point{}, right...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.Recalculate()
	return m
}

// Recalculate recomputes the aggregate from the current points.
// Idempotent: calling it twice in a row changes nothing.
func (m *Measurement) Recalculate() {
	m.Calculations = geometry.Compute(m.LeftPoints, m.RightPoints)
}

// IsValid reports whether both sides have enough points to measure.
func (m *Measurement) IsValid() bool {
	return len(m.LeftPoints) >= MinPointsPerSide && len(m.RightPoints) >= MinPointsPerSide
}

// AddPoint appends a point to the given side.
func (m *Measurement) AddPoint(side Side, p geometry.Point) error {
	if !finite(p) {
		return ErrInvalidPoint
	}
	points, err := m.side(side)
	if err != nil {
		return err
	}
	m.setSide(side, append(points, p))
	m.touch()
	return nil
}

// RemovePoint deletes the point at index from the given side.
func (m *Measurement) RemovePoint(side Side, index int) error {
	points, err := m.side(side)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(points) {
		return fmt.Errorf("%w: %d (side %s has %d points)", ErrIndexOutOfRange, index, side, len(points))
	}
	m.setSide(side, append(points[:index], points[index+1:]...))
	m.touch()
	return nil
}

// UpdatePoint replaces the point at index on the given side.
func (m *Measurement) UpdatePoint(side Side, index int, p geometry.Point) error {
	if !finite(p) {
		return ErrInvalidPoint
	}
	points, err := m.side(side)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(points) {
		return fmt.Errorf("%w: %d (side %s has %d points)", ErrIndexOutOfRange, index, side, len(points))
	}
	points[index] = p
	m.touch()
	return nil
}

// ClearPoints empties one side.
func (m *Measurement) ClearPoints(side Side) error {
	if _, err := m.side(side); err != nil {
		return err
	}
	m.setSide(side, nil)
	m.touch()
	return nil
}

// ClearAllPoints empties both sides.
func (m *Measurement) ClearAllPoints() {
	m.LeftPoints = nil
	m.RightPoints = nil
	m.touch()
}

// Clone returns a deep copy with a fresh id and fresh timestamps.
func (m *Measurement) Clone() *Measurement {
	c := NewMeasurement(m.LeftPoints, m.RightPoints, m.Name)
	c.Notes = m.Notes
	return c
}

// Copy returns an identity-preserving deep copy, used for state
// snapshots handed to subscribers.
func (m *Measurement) Copy() *Measurement {
	c := *m
	c.LeftPoints = append([]geometry.Point{}, m.LeftPoints...)
	c.RightPoints = append([]geometry.Point{}, m.RightPoints...)
	return &c
}

func (m *Measurement) side(side Side) ([]geometry.Point, error) {
	switch side {
	case SideLeft:
		return m.LeftPoints, nil
	case SideRight:
		return m.RightPoints, nil
	default:
		return nil, fmt.Errorf("unknown side %q", side)
	}
}

func (m *Measurement) setSide(side Side, points []geometry.Point) {
	if side == SideLeft {
		m.LeftPoints = points
	} else {
		m.RightPoints = points
	}
}

func (m *Measurement) touch() {
	m.Recalculate()
	m.UpdatedAt = time.Now()
}

func finite(p geometry.Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
