// ABOUTME: Bounded undo/redo history over opaque JSON-copied snapshots
// ABOUTME: Linear cursor-addressed log; pushing mid-history discards the redo branch

package history

import (
	"encoding/json"
	"fmt"
	"time"
)

// DefaultMaxHistory bounds the log when the caller passes no limit.
const DefaultMaxHistory = 50

// Entry is one history record. State is an opaque deep copy of whatever
// the caller pushed; this manager never interprets it.
type Entry struct {
	State     json.RawMessage `json:"state"`
	Action    string          `json:"action"`
	Timestamp time.Time       `json:"timestamp"`
}

// Decode unmarshals the snapshot into out.
func (e *Entry) Decode(out any) error {
	return json.Unmarshal(e.State, out)
}

// Manager is a linear undo/redo log with a cursor. It is not domain
// aware: callers decide what to snapshot and how to restore it.
// Not safe for concurrent use; the application is single-goroutine.
type Manager struct {
	entries []Entry
	current int
	max     int
}

// serialized is the persisted wire shape of a manager.
type serialized struct {
	History      []Entry `json:"history"`
	CurrentIndex int     `json:"currentIndex"`
	MaxHistory   int     `json:"maxHistory"`
}

// NewManager creates an empty history bounded at maxHistory entries.
// Non-positive bounds fall back to DefaultMaxHistory.
func NewManager(maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{current: -1, max: maxHistory}
}

// Push records a snapshot. The state is copied by value via JSON, so
// later mutation of caller-held structures cannot alter the entry.
// Entries after the cursor are discarded first; if the log would exceed
// the bound, the oldest entry is evicted and the cursor shifts with it.
func (m *Manager) Push(state any, action string) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("snapshot state: %w", err)
	}

	m.entries = m.entries[:m.current+1]
	m.entries = append(m.entries, Entry{
		State:     data,
		Action:    action,
		Timestamp: time.Now(),
	})
	m.current++

	if len(m.entries) > m.max {
		m.entries = m.entries[1:]
		m.current--
	}

	return nil
}

// Undo moves the cursor back one entry and returns it, or nil when there
// is nothing earlier to return to.
func (m *Manager) Undo() *Entry {
	if !m.CanUndo() {
		return nil
	}
	m.current--
	return &m.entries[m.current]
}

// Redo moves the cursor forward one entry and returns it, or nil when
// the cursor is already at the tail.
func (m *Manager) Redo() *Entry {
	if !m.CanRedo() {
		return nil
	}
	m.current++
	return &m.entries[m.current]
}

// CanUndo reports whether Undo would return an entry.
func (m *Manager) CanUndo() bool {
	return m.current > 0
}

// CanRedo reports whether Redo would return an entry.
func (m *Manager) CanRedo() bool {
	return m.current < len(m.entries)-1
}

// Current returns the entry at the cursor, or nil when empty.
func (m *Manager) Current() *Entry {
	if m.current < 0 || m.current >= len(m.entries) {
		return nil
	}
	return &m.entries[m.current]
}

// Len returns the number of entries in the log.
func (m *Manager) Len() int {
	return len(m.entries)
}

// SetMax changes the bound, evicting the oldest entries if the log is
// already over it. The cursor follows the surviving entries; if it
// pointed into the evicted prefix it lands on the oldest survivor.
// Non-positive bounds fall back to DefaultMaxHistory.
func (m *Manager) SetMax(maxHistory int) {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	m.max = maxHistory

	if excess := len(m.entries) - m.max; excess > 0 {
		m.entries = m.entries[excess:]
		m.current -= excess
		if m.current < 0 {
			m.current = 0
		}
	}
}

// Clear empties the log and resets the cursor.
func (m *Manager) Clear() {
	m.entries = nil
	m.current = -1
}

// Serialize renders the full log, cursor, and bound for persistence.
func (m *Manager) Serialize() ([]byte, error) {
	return json.Marshal(serialized{
		History:      m.entries,
		CurrentIndex: m.current,
		MaxHistory:   m.max,
	})
}

// Deserialize restores a previously serialized log. The cursor is
// clamped into valid bounds in case the stored log is shorter than the
// stored index claims.
func (m *Manager) Deserialize(data []byte) error {
	var s serialized
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("parse history: %w", err)
	}

	if s.MaxHistory <= 0 {
		s.MaxHistory = DefaultMaxHistory
	}
	if len(s.History) > s.MaxHistory {
		s.History = s.History[len(s.History)-s.MaxHistory:]
	}
	if s.CurrentIndex >= len(s.History) {
		s.CurrentIndex = len(s.History) - 1
	}
	if s.CurrentIndex < -1 {
		s.CurrentIndex = -1
	}

	m.entries = s.History
	m.current = s.CurrentIndex
	m.max = s.MaxHistory
	return nil
}
