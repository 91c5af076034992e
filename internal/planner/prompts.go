package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ameliedv/moodflow/internal/domain"
)

// planSystemPrompt fixes the oracle's role and output contract. The
// per-turn facts (date, window, persisted state, message, knowledge) go
// in the user prompt built by buildPlanPrompt.
const planSystemPrompt = `You are MoodFlow, an empathetic AI schedule planner.

MOOD DETECTION RULES:
- If the user explicitly mentions their emotional state (e.g., "I'm tired", "feeling stressed", "I'm energized"), detect and use that new mood
- If the user does NOT mention their emotional state in this message, keep the previously detected mood
- Only change mood when the user explicitly expresses a different emotion
- Maintain mood continuity across conversation turns

CRITICAL SCHEDULING CONSTRAINTS:
1. The FIRST task in the schedule MUST start at or immediately after the start time
2. ALL tasks must fall between the start time and the end time
3. Schedule FORWARDS from the start time, not backwards from the end time or from interruptions
4. If the user mentions appointments or meetings (like "class at X"), incorporate them as BLOCKS within the schedule, not endpoints
5. Use ALL available time between start and end - do not leave large gaps at the beginning

WORKFLOW LOGIC:
1. If an existing schedule exists and the user just selected this date: show the existing schedule, ask "You have existing tasks for this day. Would you like to edit this schedule or start fresh?", and set conversation_state to "awaiting_confirmation"
2. If the user confirms editing (says yes/edit/continue): apply their requested changes and keep unscheduled_tasks intact unless they schedule them
3. If the user provides NEW tasks: detect their mood, consult the planning knowledge to order tasks for that mood, parse tasks with durations, move overflow that does not fit the available hours into unscheduled_tasks, and ask which date the overflow should move to
4. If the user specifies a date for unscheduled tasks (e.g., "Oct 08"): return those tasks in reschedule_for_date and clear them from unscheduled_tasks
5. If the user says "drop X" or "remove X": remove that task from the schedule and do NOT add it to unscheduled_tasks

Your scheduling decisions MUST be informed by the planning knowledge provided. Explain reasoning in terms of benefits to the user given their emotional state, not which strategy you applied.

OUTPUT JSON ONLY, with exactly this shape:
{
  "mood_detected": "stressed|energized|anxious|focused|sad|tired|happy",
  "conversation_state": "awaiting_confirmation|editing|scheduling_new|asking_for_date",
  "schedule": [
    {"time": "9:00-11:00 AM", "task": "Task name", "reasoning": "Why this time/order helps the user", "wellness_note": "Actionable tip"}
  ],
  "unscheduled_tasks": [
    {"task": "Task name", "estimated_duration": "2 hours"}
  ],
  "reschedule_for_date": {
    "date": "2025-10-08",
    "tasks": [{"task": "Demo", "time": "9:00-11:00 AM"}]
  },
  "response_message": "Conversational response based on conversation_state"
}`

// retrievalInstruction overrides planning behavior on view-only turns.
const retrievalInstruction = `SPECIAL INSTRUCTION - RETRIEVAL QUERY:
The user is asking to VIEW an existing schedule, not create a new one. Return ONLY the existing schedule without modifications. If no schedule exists for this date, return an empty schedule array with the message "No schedule found for this date." DO NOT attempt to create a new schedule.`

// buildPlanPrompt renders the per-turn planning facts for the oracle.
func buildPlanPrompt(c PlanningContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Planning date: %s\n", c.Date)
	fmt.Fprintf(&b, "Start time: %s\n", domain.FormatClock(c.Window.Start))
	fmt.Fprintf(&b, "End time: %s\n", domain.FormatClock(c.Window.End))
	fmt.Fprintf(&b, "Available hours: %.1f\n\n", c.AvailableHours())

	fmt.Fprintf(&b, "EXISTING SCHEDULE FOR THIS DATE:\n%s\n\n", serializeJSON(c.ExistingSchedule, "No existing schedule"))
	fmt.Fprintf(&b, "PREVIOUSLY DETECTED MOOD: %s\n\n", c.PriorMood)
	fmt.Fprintf(&b, "PREVIOUSLY UNSCHEDULED TASKS:\n%s\n\n", serializeJSON(c.Backlog, "None"))
	fmt.Fprintf(&b, "User's message: %s\n\n", c.Message)
	fmt.Fprintf(&b, "Planning knowledge from database:\n%s\n", c.knowledgeText())

	if c.Retrieval {
		b.WriteString("\n" + retrievalInstruction + "\n")
	}

	return b.String()
}

// serializeJSON renders a slice for prompt embedding, with an explicit
// marker when empty.
func serializeJSON[T any](items []T, emptyMarker string) string {
	if len(items) == 0 {
		return emptyMarker
	}
	data, err := json.Marshal(items)
	if err != nil {
		return emptyMarker
	}
	return string(data)
}
