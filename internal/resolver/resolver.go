// Package resolver extracts the target calendar date and work-time
// window from a chat turn. The boundary stamps every message with a
// planning annotation of the form
//
//	[Planning for Sunday, October 05, 2025 | Start: 9:00 AM | End by: 5:00 PM]
//
// and users additionally name bare dates ("show me October 8") in free
// text. Parsing is best-effort: a malformed annotation degrades to
// today's date and a 9:00-17:00 window, never to a failed request.
package resolver

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ameliedv/moodflow/internal/domain"
)

var (
	annotationPattern = regexp.MustCompile(`Planning for [^,]+, ([A-Za-z]+) (\d{1,2}), (\d{4})`)
	startPattern      = regexp.MustCompile(`Start:\s+([^|]+)`)
	endPattern        = regexp.MustCompile(`End by:\s+([^\]]+)`)
	monthDayPattern   = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|oct|nov|dec)\s+(\d{1,2})\b`)
)

var monthNumbers = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// Resolution is the outcome of scanning one message for date and window
// information.
type Resolution struct {
	// Date is the annotated planning date (YYYY-MM-DD), falling back to
	// the caller's default when the annotation is absent or malformed.
	Date string

	// Window is the work-time window from the annotation's Start/End by
	// fields, or the 9:00-17:00 default.
	Window domain.WorkWindow

	// MentionedDate is a bare month+day named in the free text
	// (YYYY-MM-DD, reusing the annotation year), or empty. Callers apply
	// it as a date override on retrieval turns only.
	MentionedDate string

	// WindowDefaulted reports that the Start/End by fields could not be
	// parsed and Window is the fallback.
	WindowDefaulted bool
}

// Resolver scans messages for planning dates and work windows.
type Resolver struct {
	logger *slog.Logger
}

// New creates a Resolver. A nil logger discards diagnostics.
func New(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{logger: logger}
}

// Resolve extracts the planning date and work window from a message.
// It never fails: unparseable fields degrade to defaults with a logged
// diagnostic.
func (r *Resolver) Resolve(message string, defaultDate time.Time) Resolution {
	res := Resolution{
		Date:   defaultDate.Format("2006-01-02"),
		Window: domain.DefaultWindow(),
	}

	if m := annotationPattern.FindStringSubmatch(message); m != nil {
		if date, err := annotationDate(m[1], m[2], m[3]); err == nil {
			res.Date = date
		} else {
			r.logger.Warn("unparseable planning annotation, using default date",
				"month", m[1], "day", m[2], "year", m[3], "default", res.Date)
		}
	}

	window, defaulted := r.resolveWindow(message)
	res.Window = window
	res.WindowDefaulted = defaulted

	res.MentionedDate = r.mentionedDate(message, res.Date)
	return res
}

func annotationDate(monthName, dayStr, yearStr string) (string, error) {
	month, ok := monthNumbers[strings.ToLower(monthName)]
	if !ok {
		return "", fmt.Errorf("unknown month %q", monthName)
	}
	day, _ := strconv.Atoi(dayStr)
	if day < 1 || day > 31 {
		return "", fmt.Errorf("day %d out of range", day)
	}
	year, _ := strconv.Atoi(yearStr)
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), nil
}

func (r *Resolver) resolveWindow(message string) (domain.WorkWindow, bool) {
	startMatch := startPattern.FindStringSubmatch(message)
	endMatch := endPattern.FindStringSubmatch(message)
	if startMatch == nil || endMatch == nil {
		r.logger.Warn("planning annotation missing start or end time, using default window")
		return domain.DefaultWindow(), true
	}

	// The start time must carry its AM/PM marker; an unmarked end time
	// reads as PM.
	start, err := domain.ParseClock(strings.TrimSpace(startMatch[1]))
	if err != nil {
		r.logger.Warn("unparseable start time, using default window", "raw", startMatch[1], "error", err)
		return domain.DefaultWindow(), true
	}
	end, err := domain.ParseClockLenient(strings.TrimSpace(endMatch[1]))
	if err != nil {
		r.logger.Warn("unparseable end time, using default window", "raw", endMatch[1], "error", err)
		return domain.DefaultWindow(), true
	}
	return domain.WorkWindow{Start: start, End: end}, false
}

// mentionedDate finds a bare month+day in the free text outside the
// planning annotation, reusing annotationDate's year. Users ask "show me
// schedule for October 8" without repeating the year.
func (r *Resolver) mentionedDate(message, annotated string) string {
	freeText := message
	if idx := strings.Index(freeText, "[Planning for"); idx >= 0 {
		freeText = freeText[:idx]
	}
	m := monthDayPattern.FindStringSubmatch(freeText)
	if m == nil {
		return ""
	}
	month := monthNumbers[strings.ToLower(m[1])]
	day, _ := strconv.Atoi(m[2])
	if day < 1 || day > 31 {
		return ""
	}
	year := annotated[:4]
	return fmt.Sprintf("%s-%02d-%02d", year, month, day)
}
