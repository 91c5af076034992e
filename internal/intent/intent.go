// Package intent labels an inbound chat turn with the scheduling action
// it asks for. Classification is a fixed, ordered rule list over the raw
// text plus two session signals, so behavior stays reproducible and
// testable without any model call.
package intent

import (
	"regexp"
	"strings"
)

// Intent is the scheduling action a turn asks for.
type Intent string

const (
	// Retrieve shows an existing schedule without changing it.
	Retrieve Intent = "retrieve"
	// ConfirmEdit continues editing after the user was shown an existing
	// schedule and asked whether to edit or start fresh.
	ConfirmEdit Intent = "confirm_edit"
	// NewPlanning plans a day from newly described tasks.
	NewPlanning Intent = "new_planning"
	// RescheduleOverflow moves previously overflowed backlog tasks to a
	// named date.
	RescheduleOverflow Intent = "reschedule_overflow"
	// RemoveTask drops a task from the schedule.
	RemoveTask Intent = "remove_task"
)

// Signals carries the session-side facts classification depends on.
type Signals struct {
	// PendingConfirmation is true when the previous turn showed an
	// existing schedule and asked whether to edit it.
	PendingConfirmation bool
	// HasBacklog is true when the date under discussion has unscheduled
	// overflow tasks.
	HasBacklog bool
	// MentionsDate is true when the free text names a bare month+day.
	MentionsDate bool
}

// viewingVerbs are mutually compatible retrieval markers; any substring
// hit classifies the turn as Retrieve, so no precedence among them is
// needed.
var viewingVerbs = []string{
	"show me", "show my", "what is my", "display", "view my", "see my",
	"show", "view", "display my", "what's my", "check my",
}

var removePattern = regexp.MustCompile(`(?i)\b(drop|remove)\s+\S`)

var affirmations = []string{"yes", "edit", "continue", "update", "change", "yeah", "sure"}

// Classify labels a turn. Rule order is the documented precedence:
// Retrieve, RemoveTask, ConfirmEdit, RescheduleOverflow, NewPlanning.
// Retrieve is evaluated independently of date detection; a retrieval
// turn that also names a date keeps its Retrieve label and the date acts
// as an override upstream.
func Classify(message string, sig Signals) Intent {
	lower := strings.ToLower(message)
	// Classification looks only at the free text, not the planning
	// annotation the boundary appends.
	if idx := strings.Index(lower, "[planning for"); idx >= 0 {
		lower = lower[:idx]
	}

	for _, verb := range viewingVerbs {
		if strings.Contains(lower, verb) {
			return Retrieve
		}
	}

	if removePattern.MatchString(lower) {
		return RemoveTask
	}

	if sig.PendingConfirmation {
		for _, word := range affirmations {
			if strings.Contains(lower, word) {
				return ConfirmEdit
			}
		}
	}

	if sig.MentionsDate && sig.HasBacklog {
		return RescheduleOverflow
	}

	return NewPlanning
}
