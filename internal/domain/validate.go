package domain

import "fmt"

// EntryViolation describes one schedule entry that breaks a scheduling
// invariant for its date.
type EntryViolation struct {
	Index  int
	Reason string
}

func (v EntryViolation) String() string {
	return fmt.Sprintf("entry %d: %s", v.Index, v.Reason)
}

// ValidateSchedule checks the invariants a persisted schedule must hold:
// every entry span has start < end, lies inside the work window, and
// does not overlap the entry before it (insertion order is time order).
// Entries whose time strings cannot be parsed are reported as violations.
func ValidateSchedule(entries []ScheduleEntry, w WorkWindow) []EntryViolation {
	var violations []EntryViolation
	prevEnd := -1
	for i, e := range entries {
		start, end, err := e.Span()
		if err != nil {
			violations = append(violations, EntryViolation{i, fmt.Sprintf("unparseable time %q", e.Time)})
			continue
		}
		switch {
		case start >= end:
			violations = append(violations, EntryViolation{i, fmt.Sprintf("start %s is not before end %s", FormatClock(start), FormatClock(end))})
		case !w.Contains(start, end):
			violations = append(violations, EntryViolation{i, fmt.Sprintf("span %s outside window %s", e.Time, w)})
		case start < prevEnd:
			violations = append(violations, EntryViolation{i, fmt.Sprintf("span %s overlaps previous entry", e.Time)})
		default:
			prevEnd = end
		}
	}
	return violations
}
