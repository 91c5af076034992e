package planner

import (
	"time"

	"github.com/ameliedv/moodflow/internal/domain"
)

// Proposal is the structured payload the oracle is asked to emit. Every
// field is optional on the wire; the reconciler substitutes fallbacks
// for anything missing.
type Proposal struct {
	MoodDetected      string                   `json:"mood_detected"`
	ConversationState string                   `json:"conversation_state"`
	Schedule          []domain.ScheduleEntry   `json:"schedule"`
	UnscheduledTasks  []domain.UnscheduledTask `json:"unscheduled_tasks"`
	RescheduleForDate *RescheduleDirective     `json:"reschedule_for_date"`
	ResponseMessage   string                   `json:"response_message"`
}

// RescheduleDirective moves previously overflowed tasks to another date.
// It is a second, separate write target distinct from the current
// date's record.
type RescheduleDirective struct {
	Date  string                 `json:"date"` // YYYY-MM-DD
	Tasks []domain.ScheduleEntry `json:"tasks"`
}

// PlanRequest is one inbound chat turn.
type PlanRequest struct {
	SessionID string
	UserID    string
	// Message is the free text plus the boundary's planning annotation:
	// [Planning for <Weekday>, <Month> <Day>, <Year> | Start: <h:mm AM/PM> | End by: <h:mm AM/PM>]
	Message string
	// Now anchors "today" for date defaulting; zero means time.Now.
	Now time.Time
}

// PlanResponse is the structured result of one turn.
type PlanResponse struct {
	MoodDetected      domain.Mood              `json:"mood_detected"`
	ConversationState domain.ConversationState `json:"conversation_state"`
	Schedule          []domain.ScheduleEntry   `json:"schedule"`
	UnscheduledTasks  []domain.UnscheduledTask `json:"unscheduled_tasks"`
	RescheduleForDate *RescheduleDirective     `json:"reschedule_for_date,omitempty"`
	ResponseMessage   string                   `json:"response_message"`
	ScheduleDate      string                   `json:"schedule_date"`
	// Persisted is false when the turn's result could not be written to
	// the store; the computed result is still returned.
	Persisted bool `json:"persisted"`
}
