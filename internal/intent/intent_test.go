package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		message string
		sig     Signals
		want    Intent
	}{
		{
			name:    "show schedule",
			message: "show me my schedule",
			want:    Retrieve,
		},
		{
			name:    "check my",
			message: "can you check my day?",
			want:    Retrieve,
		},
		{
			name:    "retrieve with date keeps retrieve label",
			message: "show me schedule for October 8",
			sig:     Signals{MentionsDate: true, HasBacklog: true},
			want:    Retrieve,
		},
		{
			name:    "drop task",
			message: "drop the gym session",
			want:    RemoveTask,
		},
		{
			name:    "remove task",
			message: "please remove email client",
			want:    RemoveTask,
		},
		{
			name:    "bare drop with nothing after is not a removal",
			message: "drop",
			want:    NewPlanning,
		},
		{
			name:    "confirm edit while pending",
			message: "yes, let's edit it",
			sig:     Signals{PendingConfirmation: true},
			want:    ConfirmEdit,
		},
		{
			name:    "affirmation without pending confirmation",
			message: "yes",
			want:    NewPlanning,
		},
		{
			name:    "reschedule overflow",
			message: "schedule documentation for Oct 8",
			sig:     Signals{MentionsDate: true, HasBacklog: true},
			want:    RescheduleOverflow,
		},
		{
			name:    "date without backlog is fresh planning",
			message: "schedule documentation for Oct 8",
			sig:     Signals{MentionsDate: true},
			want:    NewPlanning,
		},
		{
			name:    "fresh planning",
			message: "Plan my day, I'm stressed: write report (2h), email client (30m)",
			want:    NewPlanning,
		},
		{
			name:    "annotation text is ignored",
			message: "plan my tasks\n\n[Planning for Sunday, October 05, 2025 | Start: 9:00 AM | End by: 5:00 PM]",
			want:    NewPlanning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.message, tt.sig))
		})
	}
}
