// Package session tracks per-conversation ephemeral state: the mood and
// date a conversation last touched, whether an edit confirmation is
// pending, and a short history of schedule versions. State lives for the
// process only and is advisory — the durable schedule store always wins.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ameliedv/moodflow/internal/domain"
)

// historyLimit caps how many schedule versions a session remembers.
const historyLimit = 10

// Version is one remembered schedule snapshot.
type Version struct {
	Timestamp time.Time
	Date      string
	Schedule  []domain.ScheduleEntry
	Mood      domain.Mood
}

// State is the ephemeral conversation state for one session.
type State struct {
	SessionID string
	// PendingConfirmation is true when the user was just shown an
	// existing schedule and asked whether to edit or start fresh.
	PendingConfirmation bool
	LastMood            domain.Mood
	LastDate            string
	History             []Version
}

// Manager holds conversation state for all live sessions.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*State
}

// NewManager creates an empty session Manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*State)}
}

// NewSessionID returns a fresh session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// Snapshot returns a copy of the session's state, creating the session
// on first use.
func (m *Manager) Snapshot(sessionID string) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.get(sessionID)
	out := *st
	out.History = append([]Version(nil), st.History...)
	return out
}

// RecordTurn stores the outcome of a successful planning turn.
func (m *Manager) RecordTurn(sessionID, date string, mood domain.Mood, pending bool, schedule []domain.ScheduleEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.get(sessionID)
	st.LastDate = date
	st.LastMood = mood
	st.PendingConfirmation = pending
	st.History = append(st.History, Version{
		Timestamp: time.Now().UTC(),
		Date:      date,
		Schedule:  append([]domain.ScheduleEntry(nil), schedule...),
		Mood:      mood,
	})
	if len(st.History) > historyLimit {
		st.History = st.History[len(st.History)-historyLimit:]
	}
}

// Reset clears a session back to its initial empty state.
func (m *Manager) Reset(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = &State{SessionID: sessionID, LastMood: domain.MoodUnknown}
}

func (m *Manager) get(sessionID string) *State {
	st, ok := m.sessions[sessionID]
	if !ok {
		st = &State{SessionID: sessionID, LastMood: domain.MoodUnknown}
		m.sessions[sessionID] = st
	}
	return st
}
