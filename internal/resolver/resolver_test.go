package resolver

import (
	"fmt"
	"testing"
	"time"

	"github.com/ameliedv/moodflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2025, time.October, 5, 0, 0, 0, 0, time.UTC)

func annotated(text, date, start, end string) string {
	return fmt.Sprintf("%s\n\n[Planning for %s | Start: %s | End by: %s]", text, date, start, end)
}

func TestResolve_Annotation(t *testing.T) {
	msg := annotated("plan my day", "Sunday, October 05, 2025", "9:00 AM", "5:00 PM")

	res := New(nil).Resolve(msg, today)

	assert.Equal(t, "2025-10-05", res.Date)
	assert.Equal(t, domain.WorkWindow{Start: 9 * 60, End: 17 * 60}, res.Window)
	assert.False(t, res.WindowDefaulted)
	assert.Empty(t, res.MentionedDate)
}

func TestResolve_AvailableHoursExact(t *testing.T) {
	tests := []struct {
		start, end string
		hours      float64
	}{
		{"9:00 AM", "5:00 PM", 8},
		{"9:00 AM", "10:00 AM", 1},
		{"8:30 AM", "12:15 PM", 3.75},
		{"12:00 PM", "11:59 PM", 11.983333333333333},
		{"12:00 AM", "12:00 PM", 12},
		// Unmarked end time reads as PM.
		{"9:00 AM", "5:00", 8},
	}
	for _, tt := range tests {
		msg := annotated("tasks", "Monday, March 3, 2025", tt.start, tt.end)
		res := New(nil).Resolve(msg, today)
		require.False(t, res.WindowDefaulted, "%s-%s", tt.start, tt.end)
		assert.InDelta(t, tt.hours, res.Window.AvailableHours(), 1e-9, "%s-%s", tt.start, tt.end)
	}
}

func TestResolve_MissingAnnotationFallsBack(t *testing.T) {
	res := New(nil).Resolve("plan my day, write report", today)

	assert.Equal(t, "2025-10-05", res.Date)
	assert.Equal(t, domain.DefaultWindow(), res.Window)
	assert.True(t, res.WindowDefaulted)
}

func TestResolve_MalformedWindowFallsBack(t *testing.T) {
	tests := []string{
		annotated("tasks", "Sunday, October 05, 2025", "sometime", "5:00 PM"),
		annotated("tasks", "Sunday, October 05, 2025", "9:00 AM", "late"),
		// Start time without an AM/PM marker is ambiguous, unlike the end.
		annotated("tasks", "Sunday, October 05, 2025", "9:00", "5:00 PM"),
		"tasks\n\n[Planning for Sunday, October 05, 2025]",
	}
	for _, msg := range tests {
		res := New(nil).Resolve(msg, today)
		assert.True(t, res.WindowDefaulted, msg)
		assert.Equal(t, domain.DefaultWindow(), res.Window, msg)
		assert.Equal(t, "2025-10-05", res.Date, msg)
	}
}

func TestResolve_MalformedMonthFallsBackToDefaultDate(t *testing.T) {
	msg := annotated("tasks", "Sunday, Smarch 05, 2025", "9:00 AM", "5:00 PM")
	res := New(nil).Resolve(msg, today)
	assert.Equal(t, "2025-10-05", res.Date)
}

func TestResolve_MentionedDate(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"show me schedule for October 8", "2025-10-08"},
		{"show me schedule for Oct 8", "2025-10-08"},
		{"schedule documentation for jan 3", "2025-01-03"},
		{"show my schedule", ""},
		{"I have 5 tasks today", ""},
	}
	for _, tt := range tests {
		msg := annotated(tt.text, "Sunday, October 05, 2025", "9:00 AM", "5:00 PM")
		res := New(nil).Resolve(msg, today)
		assert.Equal(t, tt.want, res.MentionedDate, tt.text)
		// The mention never replaces the annotated date here; callers
		// decide when it overrides.
		assert.Equal(t, "2025-10-05", res.Date, tt.text)
	}
}

func TestResolve_AnnotationDateNotTreatedAsMention(t *testing.T) {
	msg := annotated("what should I do first?", "Wednesday, October 08, 2025", "9:00 AM", "5:00 PM")
	res := New(nil).Resolve(msg, today)
	assert.Equal(t, "2025-10-08", res.Date)
	assert.Empty(t, res.MentionedDate)
}
