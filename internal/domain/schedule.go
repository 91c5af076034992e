package domain

import "time"

// ScheduleEntry is one scheduled block of a day. Time carries the wire
// form the chat boundary and the oracle exchange, e.g. "9:00-11:00 AM".
type ScheduleEntry struct {
	Time         string `json:"time"`
	Task         string `json:"task"`
	Reasoning    string `json:"reasoning"`
	WellnessNote string `json:"wellness_note"`
}

// Span parses the entry's time range into minutes since midnight.
func (e ScheduleEntry) Span() (start, end int, err error) {
	return ParseClockRange(e.Time)
}

// UnscheduledTask is a task that did not fit inside its day's work
// window and is waiting to be deferred to another date.
type UnscheduledTask struct {
	Task              string `json:"task"`
	EstimatedDuration string `json:"estimated_duration"`
}

// ScheduleRecord is the durable snapshot for one (user, date) pair.
// Every successful planning turn overwrites the whole record; it is a
// last-write-wins snapshot, not an event log.
type ScheduleRecord struct {
	UserID      string            `json:"user_id"`
	Date        string            `json:"schedule_date"` // YYYY-MM-DD
	Schedule    []ScheduleEntry   `json:"schedule"`
	Unscheduled []UnscheduledTask `json:"unscheduled_tasks"`
	Mood        Mood              `json:"mood"`
	LastUpdated time.Time         `json:"last_updated"`
}

// NewScheduleRecord creates an empty record for a (user, date) key with
// mood unknown.
func NewScheduleRecord(userID, date string) *ScheduleRecord {
	return &ScheduleRecord{
		UserID:      userID,
		Date:        date,
		Schedule:    []ScheduleEntry{},
		Unscheduled: []UnscheduledTask{},
		Mood:        MoodUnknown,
		LastUpdated: time.Now().UTC(),
	}
}
