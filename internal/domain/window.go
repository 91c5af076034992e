package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Wall-clock values are minutes since midnight. The wire format is the
// 12-hour clock the chat annotation and the oracle both use ("9:00 AM").

var clockPattern = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*([AaPp][Mm])?`)

// ParseClock parses a 12-hour clock string into minutes since midnight.
// The AM/PM marker is required.
func ParseClock(s string) (int, error) {
	min, hadMeridiem, err := parseClock(s)
	if err != nil {
		return 0, err
	}
	if !hadMeridiem {
		return 0, fmt.Errorf("missing AM/PM marker in %q", s)
	}
	return min, nil
}

// ParseClockLenient parses a 12-hour clock string, defaulting a missing
// AM/PM marker to PM. End-by times are routinely typed without a marker
// and an afternoon reading is the right guess for a workday.
func ParseClockLenient(s string) (int, error) {
	min, _, err := parseClock(s)
	return min, err
}

func parseClock(s string) (int, bool, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false, fmt.Errorf("no clock time in %q", s)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour < 1 || hour > 12 || minute > 59 {
		return 0, false, fmt.Errorf("clock time out of range in %q", s)
	}

	meridiem := strings.ToUpper(m[3])
	hadMeridiem := meridiem != ""
	if meridiem == "" {
		meridiem = "PM"
	}
	// Standard 12-hour convention: 12 AM is hour 0, 12 PM is hour 12.
	if meridiem == "PM" && hour != 12 {
		hour += 12
	} else if meridiem == "AM" && hour == 12 {
		hour = 0
	}
	return hour*60 + minute, hadMeridiem, nil
}

// FormatClock renders minutes since midnight as a 12-hour clock string.
func FormatClock(min int) string {
	hour := min / 60
	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, min%60, meridiem)
}

// ParseClockRange parses an entry time span such as "9:00-11:00 AM" or
// "1:00 PM - 2:30 PM". A side without its own AM/PM marker inherits the
// other side's; if neither side carries one, PM is assumed. An inherited
// marker that would put the start after the end is retried as AM, so
// "9:00-1:00 PM" reads as 9:00 AM through 1:00 PM.
func ParseClockRange(s string) (start, end int, err error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("no time range in %q", s)
	}

	startMin, startHad, err := parseClock(parts[0])
	if err != nil {
		return 0, 0, err
	}
	endMin, endHad, err := parseClock(parts[1])
	if err != nil {
		return 0, 0, err
	}

	if !startHad && endHad {
		// Re-read the start under the end's meridiem.
		startMin, _, _ = parseClock(strings.TrimSpace(parts[0]) + " " + meridiemOf(endMin))
	}
	if startMin >= endMin && !startHad {
		if flipped := startMin - 12*60; flipped >= 0 && flipped < endMin {
			startMin = flipped
		}
	}
	return startMin, endMin, nil
}

func meridiemOf(min int) string {
	if min >= 12*60 {
		return "PM"
	}
	return "AM"
}

// FormatClockRange renders a span in the compact wire form used by
// schedule entries, e.g. "9:00 AM-11:00 AM".
func FormatClockRange(start, end int) string {
	return FormatClock(start) + "-" + FormatClock(end)
}

// WorkWindow bounds the stretch of a day that scheduled tasks must fall
// inside. Supplied per request, never persisted on its own.
type WorkWindow struct {
	Start int // minutes since midnight
	End   int
}

// DefaultWindow is the 9:00-17:00 fallback used when a planning
// annotation cannot be parsed.
func DefaultWindow() WorkWindow {
	return WorkWindow{Start: 9 * 60, End: 17 * 60}
}

// AvailableHours returns the window length in hours.
func (w WorkWindow) AvailableHours() float64 {
	return float64(w.End-w.Start) / 60
}

// Contains reports whether the span [start, end) lies inside the window.
func (w WorkWindow) Contains(start, end int) bool {
	return start >= w.Start && end <= w.End
}

func (w WorkWindow) String() string {
	return FormatClock(w.Start) + " - " + FormatClock(w.End)
}
