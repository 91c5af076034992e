package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSchedule(t *testing.T) {
	window := DefaultWindow() // 9:00 AM - 5:00 PM

	tests := []struct {
		name    string
		entries []ScheduleEntry
		reasons []string
	}{
		{
			name: "clean schedule",
			entries: []ScheduleEntry{
				{Time: "9:00 AM - 10:30 AM", Task: "Write report"},
				{Time: "10:30 AM - 11:00 AM", Task: "Stand-up"},
				{Time: "1:00 PM - 3:00 PM", Task: "Code review"},
			},
		},
		{
			name:    "empty schedule",
			entries: nil,
		},
		{
			name: "backwards span",
			entries: []ScheduleEntry{
				{Time: "3:00 PM - 1:00 PM", Task: "Time travel"},
			},
			reasons: []string{"not before end"},
		},
		{
			name: "outside window",
			entries: []ScheduleEntry{
				{Time: "7:00 AM - 8:00 AM", Task: "Too early"},
			},
			reasons: []string{"outside window"},
		},
		{
			name: "overlapping entries",
			entries: []ScheduleEntry{
				{Time: "9:00 AM - 11:00 AM", Task: "Deep work"},
				{Time: "10:00 AM - 12:00 PM", Task: "Meeting"},
			},
			reasons: []string{"overlaps previous"},
		},
		{
			name: "unparseable time",
			entries: []ScheduleEntry{
				{Time: "whenever", Task: "Vague plans"},
			},
			reasons: []string{"unparseable time"},
		},
		{
			name: "violation does not poison later entries",
			entries: []ScheduleEntry{
				{Time: "9:00 AM - 10:00 AM", Task: "Okay"},
				{Time: "nonsense", Task: "Bad"},
				{Time: "10:00 AM - 11:00 AM", Task: "Also okay"},
			},
			reasons: []string{"unparseable time"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateSchedule(tt.entries, window)
			require.Len(t, got, len(tt.reasons))
			for i, reason := range tt.reasons {
				assert.Contains(t, got[i].Reason, reason)
			}
		})
	}
}
