package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ameliedv/moodflow/internal/domain"
	"github.com/ameliedv/moodflow/internal/intent"
	"github.com/ameliedv/moodflow/internal/repository"
	"github.com/ameliedv/moodflow/internal/resolver"
	"github.com/ameliedv/moodflow/internal/retrieval"
	"github.com/ameliedv/moodflow/internal/session"
)

// DefaultUserID backs single-user deployments where the boundary does
// not authenticate.
const DefaultUserID = "default_user"

// Service runs the turn pipeline: resolve date and window, load
// persisted state, classify intent, assemble the oracle context,
// propose, reconcile, persist, and update session state.
type Service struct {
	resolver   *resolver.Resolver
	schedules  repository.ScheduleRepo
	retriever  retrieval.Retriever
	oracle     ProposalOracle
	reconciler *Reconciler
	sessions   *session.Manager
	logger     *slog.Logger
}

// NewService wires a planner Service.
func NewService(schedules repository.ScheduleRepo, retriever retrieval.Retriever, oracle ProposalOracle, sessions *session.Manager, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if retriever == nil {
		retriever = retrieval.Noop{}
	}
	return &Service{
		resolver:   resolver.New(logger),
		schedules:  schedules,
		retriever:  retriever,
		oracle:     oracle,
		reconciler: NewReconciler(logger),
		sessions:   sessions,
		logger:     logger,
	}
}

// Plan handles one chat turn. It returns an error only when no usable
// response can be produced (the oracle call failed); every recoverable
// condition degrades inside the pipeline.
func (s *Service) Plan(ctx context.Context, req PlanRequest) (*PlanResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = DefaultUserID
	}
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	res := s.resolver.Resolve(req.Message, now)
	date := res.Date
	prior := s.load(ctx, userID, date)

	state := s.sessions.Snapshot(req.SessionID)
	turn := intent.Classify(req.Message, intent.Signals{
		PendingConfirmation: state.PendingConfirmation,
		HasBacklog:          prior != nil && len(prior.Unscheduled) > 0,
		MentionsDate:        res.MentionedDate != "",
	})

	// A bare month+day in a retrieval turn overrides the annotated
	// planning date; re-read persisted state for the date actually asked
	// about.
	if turn == intent.Retrieve && res.MentionedDate != "" && res.MentionedDate != date {
		date = res.MentionedDate
		prior = s.load(ctx, userID, date)
	}

	snippets, err := s.retriever.Retrieve(ctx, req.Message)
	if err != nil {
		s.logger.Warn("knowledge retrieval failed, planning without it", "error", err)
		snippets = nil
	}

	pctx := Assemble(date, res.Window, req.Message, prior, snippets, turn == intent.Retrieve)

	raw, err := s.oracle.Propose(ctx, pctx)
	if err != nil {
		// Fatal for the turn: no schedule change is persisted.
		return nil, fmt.Errorf("schedule proposal failed: %w", err)
	}

	out := s.reconciler.Reconcile(raw, turn, userID, date, res.Window, prior)

	persisted := false
	if out.Record != nil {
		if err := s.schedules.Put(ctx, out.Record); err != nil {
			// Surfaced, not fatal: the caller still gets the computed
			// result.
			s.logger.Error("persisting schedule failed", "date", date, "error", err)
		} else {
			persisted = true
		}
	}
	if out.Reschedule != nil {
		// The primary response already reflects the first write; a
		// failed second write is logged only, never rolled back.
		if err := s.schedules.Put(ctx, out.Reschedule); err != nil {
			s.logger.Error("persisting rescheduled tasks failed", "date", out.Reschedule.Date, "error", err)
		}
	}

	var schedule []domain.ScheduleEntry
	var backlog []domain.UnscheduledTask
	if out.Record != nil {
		schedule = out.Record.Schedule
		backlog = out.Record.Unscheduled
	}

	s.sessions.RecordTurn(req.SessionID, date, out.Mood, out.State == domain.StateAwaitingConfirmation, schedule)

	return &PlanResponse{
		MoodDetected:      out.Mood,
		ConversationState: out.State,
		Schedule:          emptyIfNil(schedule),
		UnscheduledTasks:  emptyIfNilTasks(backlog),
		RescheduleForDate: out.Directive,
		ResponseMessage:   out.Message,
		ScheduleDate:      date,
		Persisted:         persisted,
	}, nil
}

// Lookup returns the stored schedule for a date without consulting the
// oracle. Absence is a valid empty result, not an error.
func (s *Service) Lookup(ctx context.Context, userID, date string) (*domain.ScheduleRecord, error) {
	if userID == "" {
		userID = DefaultUserID
	}
	rec, err := s.schedules.Get(ctx, userID, date)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading schedule: %w", err)
	}
	return rec, nil
}

// ResetSession clears a conversation's ephemeral state.
func (s *Service) ResetSession(sessionID string) {
	s.sessions.Reset(sessionID)
}

/// load treats storage get failures as "no existing record": losing
// context degrades the turn but never crashes it.
func (s *Service) load(ctx context.Context, userID, date string) *domain.ScheduleRecord {
	rec, err := s.schedules.Get(ctx, userID, date)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("schedule load failed, treating as absent", "date", date, "error", err)
		}
		return nil
	}
	return rec
}

func emptyIfNil(e []domain.ScheduleEntry) []domain.ScheduleEntry {
	if e == nil {
		return []domain.ScheduleEntry{}
	}
	return e
}

func emptyIfNilTasks(t []domain.UnscheduledTask) []domain.UnscheduledTask {
	if t == nil {
		return []domain.UnscheduledTask{}
	}
	return t
}
