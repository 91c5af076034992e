package planner

import (
	"strings"

	"github.com/ameliedv/moodflow/internal/domain"
)

// PlanningContext gathers everything the oracle needs to propose a
// schedule for one turn: the resolved date and window, the persisted
// state being merged into, the carried-forward mood, the raw message,
// and any retrieved planning knowledge. Assembly does not enforce the
// scheduling constraints itself — it specifies them to the oracle, and
// the reconciler re-validates them afterwards.
type PlanningContext struct {
	Date             string
	Window           domain.WorkWindow
	ExistingSchedule []domain.ScheduleEntry
	Backlog          []domain.UnscheduledTask
	PriorMood        domain.Mood
	Message          string
	Knowledge        []string
	// Retrieval marks a view-only turn; the oracle is told to echo the
	// existing schedule rather than plan.
	Retrieval bool
}

// AvailableHours returns the window length in hours.
func (c PlanningContext) AvailableHours() float64 {
	return c.Window.AvailableHours()
}

// Assemble builds the planning context for one turn. A nil record means
// no schedule exists yet for the date; prior mood then defaults to
// unknown.
func Assemble(date string, window domain.WorkWindow, message string, record *domain.ScheduleRecord, snippets []string, retrieval bool) PlanningContext {
	ctx := PlanningContext{
		Date:      date,
		Window:    window,
		PriorMood: domain.MoodUnknown,
		Message:   message,
		Knowledge: snippets,
		Retrieval: retrieval,
	}
	if record != nil {
		ctx.ExistingSchedule = record.Schedule
		ctx.Backlog = record.Unscheduled
		ctx.PriorMood = record.Mood
	}
	return ctx
}

// knowledgeText joins retrieved snippets for prompt embedding.
func (c PlanningContext) knowledgeText() string {
	if len(c.Knowledge) == 0 {
		return "None"
	}
	return strings.Join(c.Knowledge, "\n\n")
}
