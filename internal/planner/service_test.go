package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ameliedv/moodflow/internal/domain"
	"github.com/ameliedv/moodflow/internal/repository"
	"github.com/ameliedv/moodflow/internal/session"
	"github.com/ameliedv/moodflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// oracleFunc adapts a function into a ProposalOracle for synthetic
// proposals.
type oracleFunc func(ctx context.Context, pctx PlanningContext) (string, error)

func (f oracleFunc) Propose(ctx context.Context, pctx PlanningContext) (string, error) {
	return f(ctx, pctx)
}

func staticOracle(t *testing.T, p Proposal) ProposalOracle {
	t.Helper()
	raw := proposalJSON(t, p)
	return oracleFunc(func(context.Context, PlanningContext) (string, error) {
		return raw, nil
	})
}

// failingRepo wraps a real repo and fails writes on demand.
type failingRepo struct {
	repository.ScheduleRepo
	failPut bool
}

func (r *failingRepo) Put(ctx context.Context, rec *domain.ScheduleRecord) error {
	if r.failPut {
		return errors.New("storage unavailable")
	}
	return r.ScheduleRepo.Put(ctx, rec)
}

func newTestService(t *testing.T, oracle ProposalOracle) (*Service, repository.ScheduleRepo) {
	t.Helper()
	repo := repository.NewSQLiteScheduleRepo(testutil.NewTestDB(t))
	svc := NewService(repo, nil, oracle, session.NewManager(), nil)
	return svc, repo
}

func planMessage(text string) string {
	return text + "\n\n[Planning for Sunday, October 05, 2025 | Start: 9:00 AM | End by: 5:00 PM]"
}

var testNow = time.Date(2025, time.October, 5, 8, 0, 0, 0, time.UTC)

func TestPlan_StressedScenario(t *testing.T) {
	svc, repo := newTestService(t, staticOracle(t, Proposal{
		MoodDetected:      "stressed",
		ConversationState: "scheduling_new",
		Schedule: []domain.ScheduleEntry{
			{Time: "9:00-11:00 AM", Task: "write report", Reasoning: "hardest first while fresh", WellnessNote: "short walk after"},
			{Time: "11:00-11:30 AM", Task: "email client", Reasoning: "quick win", WellnessNote: "stretch"},
		},
		ResponseMessage: "Both tasks fit comfortably before lunch.",
	}))

	resp, err := svc.Plan(context.Background(), PlanRequest{
		SessionID: "s1",
		Message:   planMessage("Plan my day, I'm stressed: write report (2h), email client (30m)"),
		Now:       testNow,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.MoodStressed, resp.MoodDetected)
	assert.Equal(t, "2025-10-05", resp.ScheduleDate)
	assert.Empty(t, resp.UnscheduledTasks)
	assert.True(t, resp.Persisted)

	// First entry at or after window start, total within the 8h window.
	total := 0
	prev := 0
	for i, e := range resp.Schedule {
		start, end, err := e.Span()
		require.NoError(t, err)
		if i == 0 {
			assert.GreaterOrEqual(t, start, 9*60)
		}
		assert.GreaterOrEqual(t, start, prev)
		total += end - start
		prev = end
	}
	assert.LessOrEqual(t, total, 8*60)

	stored, err := repo.Get(context.Background(), DefaultUserID, "2025-10-05")
	require.NoError(t, err)
	assert.Equal(t, resp.Schedule, stored.Schedule)
	assert.Equal(t, domain.MoodStressed, stored.Mood)
}

func TestPlan_TightWindowOverflows(t *testing.T) {
	// Same tasks, one available hour: the oracle schedules past the end
	// and reconciliation demotes the overflow.
	svc, _ := newTestService(t, staticOracle(t, Proposal{
		MoodDetected: "stressed",
		Schedule: []domain.ScheduleEntry{
			{Time: "9:00-11:00 AM", Task: "write report"},
			{Time: "11:00-11:30 AM", Task: "email client"},
		},
	}))

	resp, err := svc.Plan(context.Background(), PlanRequest{
		SessionID: "s1",
		Message:   "Plan my day, I'm stressed: write report (2h), email client (30m)\n\n[Planning for Sunday, October 05, 2025 | Start: 9:00 AM | End by: 10:00 AM]",
		Now:       testNow,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.UnscheduledTasks)
}

func TestPlan_RetrievalRoundTrip(t *testing.T) {
	planOracle := staticOracle(t, Proposal{
		MoodDetected: "stressed",
		Schedule: []domain.ScheduleEntry{
			{Time: "9:00-11:00 AM", Task: "write report", Reasoning: "deep work", WellnessNote: "hydrate"},
		},
		ResponseMessage: "Planned.",
	})
	svc, repo := newTestService(t, planOracle)
	ctx := context.Background()

	_, err := svc.Plan(ctx, PlanRequest{SessionID: "s1", Message: planMessage("plan my day, I'm stressed: write report"), Now: testNow})
	require.NoError(t, err)

	before, err := repo.Get(ctx, DefaultUserID, "2025-10-05")
	require.NoError(t, err)

	// Two identical view turns: same schedule both times, a
	// no-semantic-change rewrite of the record, no emotional drift.
	for i := 0; i < 2; i++ {
		resp, err := svc.Plan(ctx, PlanRequest{SessionID: "s1", Message: planMessage("show me my schedule"), Now: testNow})
		require.NoError(t, err)
		assert.Equal(t, before.Schedule, resp.Schedule)
		assert.Equal(t, domain.MoodStressed, resp.MoodDetected)
		assert.Equal(t, domain.StateAwaitingConfirmation, resp.ConversationState)
	}

	after, err := repo.Get(ctx, DefaultUserID, "2025-10-05")
	require.NoError(t, err)
	assert.Equal(t, before.Schedule, after.Schedule)
	assert.Equal(t, before.Unscheduled, after.Unscheduled)
	assert.Equal(t, before.Mood, after.Mood)
}

func TestPlan_RetrievalDateOverride(t *testing.T) {
	svc, repo := newTestService(t, staticOracle(t, Proposal{ResponseMessage: "Here is October 8."}))
	ctx := context.Background()

	oct8 := &domain.ScheduleRecord{
		UserID:      DefaultUserID,
		Date:        "2025-10-08",
		Schedule:    []domain.ScheduleEntry{{Time: "9:00-11:00 AM", Task: "demo"}},
		Unscheduled: []domain.UnscheduledTask{},
		Mood:        domain.MoodFocused,
		LastUpdated: testNow,
	}
	require.NoError(t, repo.Put(ctx, oct8))

	// The annotation still says October 5; the bare mention wins on a
	// view turn.
	resp, err := svc.Plan(ctx, PlanRequest{SessionID: "s1", Message: planMessage("show me schedule for October 8"), Now: testNow})
	require.NoError(t, err)

	assert.Equal(t, "2025-10-08", resp.ScheduleDate)
	assert.Equal(t, oct8.Schedule, resp.Schedule)
	assert.Equal(t, domain.MoodFocused, resp.MoodDetected)
}

func TestPlan_RetrievalUnknownDate(t *testing.T) {
	svc, _ := newTestService(t, staticOracle(t, Proposal{}))

	resp, err := svc.Plan(context.Background(), PlanRequest{SessionID: "s1", Message: planMessage("show me my schedule"), Now: testNow})
	require.NoError(t, err)

	assert.Empty(t, resp.Schedule)
	assert.Equal(t, noScheduleMessage, resp.ResponseMessage)
	assert.Equal(t, domain.MoodUnknown, resp.MoodDetected)
}

func TestPlan_OverflowReschedule(t *testing.T) {
	svc, repo := newTestService(t, staticOracle(t, Proposal{
		MoodDetected: "stressed",
		Schedule:     []domain.ScheduleEntry{{Time: "9:00-11:00 AM", Task: "write report"}},
		RescheduleForDate: &RescheduleDirective{
			Date:  "2025-10-08",
			Tasks: []domain.ScheduleEntry{{Time: "9:00-11:00 AM", Task: "documentation"}},
		},
		ResponseMessage: "Documentation moved to October 8.",
	}))
	ctx := context.Background()

	prior := &domain.ScheduleRecord{
		UserID:      DefaultUserID,
		Date:        "2025-10-05",
		Schedule:    []domain.ScheduleEntry{{Time: "9:00-11:00 AM", Task: "write report"}},
		Unscheduled: []domain.UnscheduledTask{{Task: "documentation", EstimatedDuration: "2 hours"}},
		Mood:        domain.MoodStressed,
		LastUpdated: testNow,
	}
	require.NoError(t, repo.Put(ctx, prior))

	resp, err := svc.Plan(ctx, PlanRequest{SessionID: "s1", Message: planMessage("schedule documentation for Oct 8"), Now: testNow})
	require.NoError(t, err)

	require.NotNil(t, resp.RescheduleForDate)
	assert.Empty(t, resp.UnscheduledTasks, "moved task leaves the current backlog")

	future, err := repo.Get(ctx, DefaultUserID, "2025-10-08")
	require.NoError(t, err)
	require.Len(t, future.Schedule, 1)
	assert.Equal(t, "documentation", future.Schedule[0].Task)
	assert.Empty(t, future.Unscheduled)
	assert.Equal(t, domain.MoodStressed, future.Mood)

	current, err := repo.Get(ctx, DefaultUserID, "2025-10-05")
	require.NoError(t, err)
	assert.Empty(t, current.Unscheduled)
}

func TestPlan_OracleFailureIsFatalAndUnpersisted(t *testing.T) {
	repo := repository.NewSQLiteScheduleRepo(testutil.NewTestDB(t))
	svc := NewService(repo, nil, oracleFunc(func(context.Context, PlanningContext) (string, error) {
		return "", errors.New("upstream timeout")
	}), session.NewManager(), nil)

	_, err := svc.Plan(context.Background(), PlanRequest{SessionID: "s1", Message: planMessage("plan my day"), Now: testNow})
	require.Error(t, err)

	_, err = repo.Get(context.Background(), DefaultUserID, "2025-10-05")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPlan_MalformedProposalDoesNotClobber(t *testing.T) {
	svc, repo := newTestService(t, oracleFunc(func(context.Context, PlanningContext) (string, error) {
		return "sorry, I cannot help with that", nil
	}))
	ctx := context.Background()

	prior := priorRecord()
	require.NoError(t, repo.Put(ctx, prior))

	resp, err := svc.Plan(ctx, PlanRequest{SessionID: "s1", Message: planMessage("plan my day"), Now: testNow})
	require.NoError(t, err)

	assert.Empty(t, resp.Schedule)
	assert.Equal(t, domain.MoodUnknown, resp.MoodDetected)
	assert.NotEmpty(t, resp.ResponseMessage)
	assert.False(t, resp.Persisted)

	stored, err := repo.Get(ctx, DefaultUserID, "2025-10-05")
	require.NoError(t, err)
	assert.Equal(t, prior.Schedule, stored.Schedule)
}

func TestPlan_PutFailureStillReturnsResult(t *testing.T) {
	repo := &failingRepo{
		ScheduleRepo: repository.NewSQLiteScheduleRepo(testutil.NewTestDB(t)),
		failPut:      true,
	}
	svc := NewService(repo, nil, staticOracle(t, Proposal{
		MoodDetected: "tired",
		Schedule:     []domain.ScheduleEntry{{Time: "9:00-10:00 AM", Task: "rest planning"}},
	}), session.NewManager(), nil)

	resp, err := svc.Plan(context.Background(), PlanRequest{SessionID: "s1", Message: planMessage("plan my day, I'm tired"), Now: testNow})
	require.NoError(t, err)

	assert.False(t, resp.Persisted)
	require.Len(t, resp.Schedule, 1)
	assert.Equal(t, domain.MoodTired, resp.MoodDetected)
}

func TestPlan_PendingConfirmationEnablesEdit(t *testing.T) {
	svc, repo := newTestService(t, staticOracle(t, Proposal{
		MoodDetected:      "stressed",
		ConversationState: "editing",
		Schedule: []domain.ScheduleEntry{
			{Time: "9:00-11:00 AM", Task: "write report"},
			{Time: "1:00-2:00 PM", Task: "plan sprint"},
		},
		ResponseMessage: "Added sprint planning after lunch.",
	}))
	ctx := context.Background()
	require.NoError(t, repo.Put(ctx, priorRecord()))

	// View turn arms the confirmation state.
	resp, err := svc.Plan(ctx, PlanRequest{SessionID: "s1", Message: planMessage("show me my schedule"), Now: testNow})
	require.NoError(t, err)
	assert.Equal(t, domain.StateAwaitingConfirmation, resp.ConversationState)

	// Affirmative follow-up is treated as a confirmed edit.
	resp, err = svc.Plan(ctx, PlanRequest{SessionID: "s1", Message: planMessage("yes, add sprint planning after lunch"), Now: testNow})
	require.NoError(t, err)
	assert.Equal(t, domain.StateEditing, resp.ConversationState)
	assert.Len(t, resp.Schedule, 2)
}

func TestLookup(t *testing.T) {
	svc, repo := newTestService(t, staticOracle(t, Proposal{}))
	ctx := context.Background()

	rec, err := svc.Lookup(ctx, "", "2025-10-05")
	require.NoError(t, err)
	assert.Nil(t, rec, "absence is a valid empty result")

	require.NoError(t, repo.Put(ctx, priorRecord()))
	rec, err = svc.Lookup(ctx, DefaultUserID, "2025-10-05")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Len(t, rec.Schedule, 1)
}

func TestResetSession(t *testing.T) {
	svc, _ := newTestService(t, staticOracle(t, Proposal{MoodDetected: "happy"}))
	ctx := context.Background()

	_, err := svc.Plan(ctx, PlanRequest{SessionID: "s1", Message: planMessage("plan my day, feeling happy"), Now: testNow})
	require.NoError(t, err)

	svc.ResetSession("s1")

	// After reset, an affirmation is fresh planning again, not an edit
	// confirmation.
	resp, err := svc.Plan(ctx, PlanRequest{SessionID: "s1", Message: planMessage("yes"), Now: testNow})
	require.NoError(t, err)
	assert.NotEqual(t, domain.StateEditing, resp.ConversationState)
}
