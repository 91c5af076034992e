package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ameliedv/moodflow/internal/domain"
	"github.com/ameliedv/moodflow/internal/planner"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		inner := StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content
		return boxStyle.Render(inner)
	}
	return boxStyle.Render(content)
}

// FormatTurn renders one planning turn: the assistant's message, the
// resulting schedule for the day, any overflow, and the reschedule
// notice when backlog moved to another date.
func FormatTurn(resp *planner.PlanResponse) string {
	var b strings.Builder

	b.WriteString("\n" + StyleFg.Render(resp.ResponseMessage) + "\n")

	header := fmt.Sprintf("%s  %s", HumanDate(resp.ScheduleDate), MoodBadge(resp.MoodDetected))
	body := header + "\n\n" + renderEntries(resp.Schedule)
	if overflow := renderUnscheduled(resp.UnscheduledTasks); overflow != "" {
		body += "\n" + overflow
	}
	b.WriteString(RenderBox("SCHEDULE", body) + "\n")

	if d := resp.RescheduleForDate; d != nil {
		b.WriteString(StyleGreen.Render(fmt.Sprintf("Moved %d task(s) to %s.", len(d.Tasks), HumanDate(d.Date))) + "\n")
	}
	if !resp.Persisted {
		b.WriteString(StyleYellow.Render("Warning: this schedule could not be saved.") + "\n")
	}

	return b.String()
}

// FormatRecord renders a stored day without a conversational turn
// around it.
func FormatRecord(rec *domain.ScheduleRecord) string {
	header := fmt.Sprintf("%s  %s", HumanDate(rec.Date), MoodBadge(rec.Mood))
	body := header + "\n\n" + renderEntries(rec.Schedule)
	if overflow := renderUnscheduled(rec.Unscheduled); overflow != "" {
		body += "\n" + overflow
	}
	if !rec.LastUpdated.IsZero() {
		body += "\n" + Dim("Updated "+rec.LastUpdated.Format("Jan 2 15:04"))
	}
	return RenderBox("SCHEDULE", body) + "\n"
}

func renderEntries(entries []domain.ScheduleEntry) string {
	if len(entries) == 0 {
		return Dim("Nothing scheduled.")
	}

	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(StyleBlue.Render(e.Time) + "  " + StyleBold.Render(e.Task) + "\n")
		if e.Reasoning != "" {
			b.WriteString("  " + Dim(e.Reasoning) + "\n")
		}
		if e.WellnessNote != "" {
			b.WriteString("  " + StyleGreen.Render("♥ "+e.WellnessNote) + "\n")
		}
	}
	return b.String()
}

func renderUnscheduled(tasks []domain.UnscheduledTask) string {
	if len(tasks) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleYellow.Render(fmt.Sprintf("Didn't fit (%d):", len(tasks))) + "\n")
	for _, t := range tasks {
		line := "  · " + t.Task
		if t.EstimatedDuration != "" && t.EstimatedDuration != "unknown" {
			line += Dim(" (~" + t.EstimatedDuration + ")")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// HumanDate renders an ISO date as "Today", "Tomorrow", or a short
// absolute form. Unparseable input is returned as-is.
func HumanDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	now := time.Now()
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	tomorrow := now.AddDate(0, 0, 1)
	y3, m3, d3 := tomorrow.Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Tomorrow"
	}
	return t.Format("Mon, Jan 2 2006")
}
