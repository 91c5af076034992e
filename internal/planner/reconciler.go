package planner

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/ameliedv/moodflow/internal/domain"
	"github.com/ameliedv/moodflow/internal/intent"
	"github.com/ameliedv/moodflow/internal/llm"
)

// Fallback user-facing messages for proposals missing them.
const (
	defaultResponseMessage  = "Your schedule has been updated."
	noScheduleMessage       = "No schedule found for this date."
	malformedResponseWarn   = "I couldn't read the planner's response, so your schedule was left unchanged. Please try again."
	editConfirmationMessage = "You have existing tasks for this day. Would you like to edit this schedule or start fresh?"
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Outcome is the reconciled result of one turn.
type Outcome struct {
	// Record is the merged record to persist for the current date, or
	// nil when the turn must not touch the store (malformed proposal).
	Record *domain.ScheduleRecord
	// Reschedule is an optional second write target for deferred
	// overflow tasks.
	Reschedule *domain.ScheduleRecord
	// Directive echoes the reschedule instruction back to the caller.
	Directive *RescheduleDirective

	Mood    domain.Mood
	State   domain.ConversationState
	Message string
}

// Reconciler validates, repairs, and merges oracle proposals with
// persisted state. It never returns an error: malformed input fails
// closed into an empty-schedule outcome with an explanatory message.
type Reconciler struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewReconciler creates a Reconciler. A nil logger discards diagnostics.
func NewReconciler(logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Reconciler{logger: logger, now: time.Now}
}

// Reconcile merges the oracle's raw proposal for one turn with the
// prior record for (userID, date). Retrieval turns are clamped to the
// prior record: the oracle never gets to invent entries for a view.
func (r *Reconciler) Reconcile(raw string, turn intent.Intent, userID, date string, window domain.WorkWindow, prior *domain.ScheduleRecord) Outcome {
	priorMood := domain.MoodUnknown
	if prior != nil {
		priorMood = prior.Mood
	}

	proposal, parseErr := llm.ExtractJSON[Proposal](raw, nil)

	if turn == intent.Retrieve {
		return r.reconcileRetrieval(proposal, parseErr == nil, userID, date, prior)
	}

	if parseErr != nil {
		// Fail closed: empty result, no store write, last successful
		// parse keeps winning.
		r.logger.Error("malformed proposal", "date", date, "error", parseErr)
		return Outcome{
			Mood:    domain.MoodUnknown,
			State:   domain.StateSchedulingNew,
			Message: malformedResponseWarn,
		}
	}

	mood := domain.ParseMood(proposal.MoodDetected)
	if mood == domain.MoodUnknown {
		// Mood continuity: an absent or unrecognized mood keeps the
		// previously detected one.
		mood = priorMood
	}

	schedule, demoted := r.repairSchedule(proposal.Schedule, window, date)

	backlog := append([]domain.UnscheduledTask{}, proposal.UnscheduledTasks...)
	backlog = append(backlog, demoted...)

	directive := r.validDirective(proposal.RescheduleForDate, date)
	var reschedule *domain.ScheduleRecord
	if directive != nil {
		backlog = removeTasks(backlog, directive.Tasks)
		reschedule = &domain.ScheduleRecord{
			UserID:      userID,
			Date:        directive.Date,
			Schedule:    directive.Tasks,
			Unscheduled: []domain.UnscheduledTask{},
			Mood:        mood,
			LastUpdated: r.now().UTC(),
		}
	}

	message := proposal.ResponseMessage
	if message == "" {
		message = defaultResponseMessage
	}

	return Outcome{
		Record: &domain.ScheduleRecord{
			UserID:      userID,
			Date:        date,
			Schedule:    schedule,
			Unscheduled: backlog,
			Mood:        mood,
			LastUpdated: r.now().UTC(),
		},
		Reschedule: reschedule,
		Directive:  directive,
		Mood:       mood,
		State:      domain.ParseConversationState(proposal.ConversationState),
		Message:    message,
	}
}

// reconcileRetrieval serves a view turn from the prior record. The
// proposal contributes at most its conversational response text; the
// schedule, backlog, and mood are the persisted ones, re-saved
// unchanged.
func (r *Reconciler) reconcileRetrieval(proposal Proposal, parsed bool, userID, date string, prior *domain.ScheduleRecord) Outcome {
	if prior == nil {
		return Outcome{
			Record:  domain.NewScheduleRecord(userID, date),
			Mood:    domain.MoodUnknown,
			State:   domain.StateSchedulingNew,
			Message: noScheduleMessage,
		}
	}

	message := editConfirmationMessage
	if parsed && proposal.ResponseMessage != "" {
		message = proposal.ResponseMessage
	}

	rec := *prior
	rec.LastUpdated = r.now().UTC()
	return Outcome{
		Record:  &rec,
		Mood:    prior.Mood,
		State:   domain.StateAwaitingConfirmation,
		Message: message,
	}
}

// repairSchedule enforces the window and ordering invariants on a
// proposed entry list. Parseable entries are sorted chronologically;
// entries that fall outside the window, run backwards, or overlap the
// previous entry are demoted to unscheduled tasks. Entries with
// unparseable times are kept at the tail as free-text tolerance.
func (r *Reconciler) repairSchedule(entries []domain.ScheduleEntry, window domain.WorkWindow, date string) ([]domain.ScheduleEntry, []domain.UnscheduledTask) {
	type timed struct {
		entry      domain.ScheduleEntry
		start, end int
	}

	var parseable []timed
	var freeText []domain.ScheduleEntry
	for _, e := range entries {
		start, end, err := e.Span()
		if err != nil {
			r.logger.Warn("keeping entry with unparseable time", "date", date, "time", e.Time, "task", e.Task)
			freeText = append(freeText, e)
			continue
		}
		parseable = append(parseable, timed{entry: e, start: start, end: end})
	}

	sort.SliceStable(parseable, func(i, j int) bool {
		return parseable[i].start < parseable[j].start
	})

	kept := make([]domain.ScheduleEntry, 0, len(entries))
	var demoted []domain.UnscheduledTask
	prevEnd := -1
	for _, t := range parseable {
		var reason string
		switch {
		case t.start >= t.end:
			reason = "runs backwards"
		case !window.Contains(t.start, t.end):
			reason = "outside work window"
		case t.start < prevEnd:
			reason = "overlaps previous entry"
		}
		if reason != "" {
			r.logger.Warn("demoting schedule entry", "date", date, "task", t.entry.Task, "time", t.entry.Time, "reason", reason)
			demoted = append(demoted, domain.UnscheduledTask{
				Task:              t.entry.Task,
				EstimatedDuration: spanDuration(t.start, t.end),
			})
			continue
		}
		kept = append(kept, t.entry)
		prevEnd = t.end
	}

	return append(kept, freeText...), demoted
}

// validDirective checks a reschedule instruction for a usable target
// date and task list; anything else is dropped with a diagnostic.
func (r *Reconciler) validDirective(d *RescheduleDirective, currentDate string) *RescheduleDirective {
	if d == nil {
		return nil
	}
	if !isoDatePattern.MatchString(d.Date) || len(d.Tasks) == 0 {
		r.logger.Warn("ignoring unusable reschedule directive", "target", d.Date, "tasks", len(d.Tasks))
		return nil
	}
	if d.Date == currentDate {
		r.logger.Warn("ignoring reschedule directive targeting the current date", "target", d.Date)
		return nil
	}
	return d
}

// removeTasks drops backlog tasks that were moved to another date, by
// case-insensitive task name.
func removeTasks(backlog []domain.UnscheduledTask, moved []domain.ScheduleEntry) []domain.UnscheduledTask {
	names := make(map[string]bool, len(moved))
	for _, m := range moved {
		names[strings.ToLower(strings.TrimSpace(m.Task))] = true
	}
	kept := make([]domain.UnscheduledTask, 0, len(backlog))
	for _, t := range backlog {
		if names[strings.ToLower(strings.TrimSpace(t.Task))] {
			continue
		}
		kept = append(kept, t)
	}
	return kept
}

// spanDuration renders a span length the way users write estimates.
func spanDuration(start, end int) string {
	min := end - start
	if min <= 0 {
		return "unknown"
	}
	switch {
	case min < 60:
		return fmt.Sprintf("%d minutes", min)
	case min%60 == 0:
		if min == 60 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", min/60)
	default:
		return fmt.Sprintf("%.1f hours", float64(min)/60)
	}
}
