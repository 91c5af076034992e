package cli

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ameliedv/moodflow/internal/planner"
	"github.com/ameliedv/moodflow/internal/repository"
	"github.com/ameliedv/moodflow/internal/session"
	"github.com/ameliedv/moodflow/internal/testutil"
)

type oracleFunc func(ctx context.Context, pctx planner.PlanningContext) (string, error)

func (f oracleFunc) Propose(ctx context.Context, pctx planner.PlanningContext) (string, error) {
	return f(ctx, pctx)
}

func newTestApp(t *testing.T, oracle planner.ProposalOracle) *App {
	t.Helper()
	conn := testutil.NewTestDB(t)
	svc := planner.NewService(
		repository.NewSQLiteScheduleRepo(conn),
		nil,
		oracle,
		session.NewManager(),
		slog.New(slog.DiscardHandler),
	)
	return &App{
		Planner:       svc,
		Logger:        slog.New(slog.DiscardHandler),
		IsInteractive: func() bool { return false },
	}
}

func TestPlanAnnotation(t *testing.T) {
	date := time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC)
	got := planAnnotation(date, "9:00 AM", "5:00 PM")
	assert.Equal(t, "[Planning for Monday, October 6, 2025 | Start: 9:00 AM | End by: 5:00 PM]", got)
}

func TestResolvePlanDate(t *testing.T) {
	got, err := resolvePlanDate("2025-10-06")
	require.NoError(t, err)
	assert.Equal(t, "2025-10-06", got.Format("2006-01-02"))

	_, err = resolvePlanDate("10/06/2025")
	assert.Error(t, err)

	today, err := resolvePlanDate("")
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format("2006-01-02"), today.Format("2006-01-02"))
}

func TestChatCmd_SingleShot(t *testing.T) {
	proposal := `{
		"mood_detected": "energized",
		"conversation_state": "scheduling_new",
		"schedule": [{"time": "9:00 AM - 10:00 AM", "task": "Morning run", "reasoning": "Use the energy early", "wellness_note": ""}],
		"unscheduled_tasks": [],
		"response_message": "Let's ride that energy."
	}`
	app := newTestApp(t, oracleFunc(func(ctx context.Context, pctx planner.PlanningContext) (string, error) {
		return proposal, nil
	}))

	root := NewRootCmd(app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"chat", "--date", "2025-10-06", "feeling great, I want a morning run"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Let's ride that energy.")
	assert.Contains(t, out.String(), "Morning run")
}

func TestChatCmd_PipedMessage(t *testing.T) {
	app := newTestApp(t, oracleFunc(func(ctx context.Context, pctx planner.PlanningContext) (string, error) {
		return `{"mood_detected": "tired", "response_message": "Rest first."}`, nil
	}))

	root := NewRootCmd(app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetIn(strings.NewReader("exhausted today, keep it light\n"))
	root.SetArgs([]string{"chat", "--date", "2025-10-06"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Rest first.")
}

func TestChatCmd_EmptyPipedMessage(t *testing.T) {
	app := newTestApp(t, oracleFunc(func(ctx context.Context, pctx planner.PlanningContext) (string, error) {
		t.Fatal("oracle must not run without a message")
		return "", nil
	}))

	root := NewRootCmd(app)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader("   \n"))
	root.SetArgs([]string{"chat"})

	assert.Error(t, root.Execute())
}

func TestShowCmd(t *testing.T) {
	proposal := `{
		"mood_detected": "focused",
		"schedule": [{"time": "1:00 PM - 2:00 PM", "task": "Sprint planning", "reasoning": "", "wellness_note": ""}],
		"response_message": "Done."
	}`
	app := newTestApp(t, oracleFunc(func(ctx context.Context, pctx planner.PlanningContext) (string, error) {
		return proposal, nil
	}))

	root := NewRootCmd(app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"chat", "--date", "2025-10-06", "plan sprint planning after lunch"})
	require.NoError(t, root.Execute())

	out.Reset()
	root.SetArgs([]string{"show", "2025-10-06"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Sprint planning")
	assert.Contains(t, out.String(), "focused")
}

func TestShowCmd_NoRecord(t *testing.T) {
	app := newTestApp(t, oracleFunc(func(ctx context.Context, pctx planner.PlanningContext) (string, error) {
		return "{}", nil
	}))

	root := NewRootCmd(app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"show", "2031-01-01"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "No schedule found")
}

func TestShowCmd_BadDate(t *testing.T) {
	app := newTestApp(t, oracleFunc(func(ctx context.Context, pctx planner.PlanningContext) (string, error) {
		return "{}", nil
	}))

	root := NewRootCmd(app)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"show", "October 6"})

	assert.Error(t, root.Execute())
}
