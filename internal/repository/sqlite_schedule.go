package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ameliedv/moodflow/internal/db"
	"github.com/ameliedv/moodflow/internal/domain"
)

// SQLiteScheduleRepo implements ScheduleRepo using a SQLite database.
// Entry and backlog lists are stored JSON-encoded; the table is a flat
// key-value namespace over (user_id, schedule_date).
type SQLiteScheduleRepo struct {
	db db.DBTX
}

// NewSQLiteScheduleRepo creates a new SQLiteScheduleRepo.
func NewSQLiteScheduleRepo(conn db.DBTX) *SQLiteScheduleRepo {
	return &SQLiteScheduleRepo{db: conn}
}

func (r *SQLiteScheduleRepo) Get(ctx context.Context, userID, date string) (*domain.ScheduleRecord, error) {
	query := `SELECT user_id, schedule_date, schedule, unscheduled, mood, last_updated
		FROM schedules WHERE user_id = ? AND schedule_date = ?`
	row := r.db.QueryRowContext(ctx, query, userID, date)

	var rec domain.ScheduleRecord
	var scheduleJSON, unscheduledJSON, mood, lastUpdated string
	err := row.Scan(&rec.UserID, &rec.Date, &scheduleJSON, &unscheduledJSON, &mood, &lastUpdated)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("schedule %s/%s: %w", userID, date, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning schedule: %w", err)
	}

	if err := json.Unmarshal([]byte(scheduleJSON), &rec.Schedule); err != nil {
		return nil, fmt.Errorf("decoding schedule entries: %w", err)
	}
	if err := json.Unmarshal([]byte(unscheduledJSON), &rec.Unscheduled); err != nil {
		return nil, fmt.Errorf("decoding unscheduled tasks: %w", err)
	}
	rec.Mood = domain.ParseMood(mood)
	if ts, err := time.Parse(time.RFC3339Nano, lastUpdated); err == nil {
		rec.LastUpdated = ts
	}
	return &rec, nil
}

func (r *SQLiteScheduleRepo) Put(ctx context.Context, rec *domain.ScheduleRecord) error {
	scheduleJSON, err := json.Marshal(emptyIfNilEntries(rec.Schedule))
	if err != nil {
		return fmt.Errorf("encoding schedule entries: %w", err)
	}
	unscheduledJSON, err := json.Marshal(emptyIfNilTasks(rec.Unscheduled))
	if err != nil {
		return fmt.Errorf("encoding unscheduled tasks: %w", err)
	}

	query := `INSERT OR REPLACE INTO schedules
		(user_id, schedule_date, schedule, unscheduled, mood, last_updated)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		rec.UserID,
		rec.Date,
		string(scheduleJSON),
		string(unscheduledJSON),
		string(rec.Mood),
		rec.LastUpdated.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upserting schedule %s/%s: %w", rec.UserID, rec.Date, err)
	}
	return nil
}

func emptyIfNilEntries(e []domain.ScheduleEntry) []domain.ScheduleEntry {
	if e == nil {
		return []domain.ScheduleEntry{}
	}
	return e
}

func emptyIfNilTasks(t []domain.UnscheduledTask) []domain.UnscheduledTask {
	if t == nil {
		return []domain.UnscheduledTask{}
	}
	return t
}
