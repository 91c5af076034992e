package repository

import (
	"context"
	"errors"

	"github.com/ameliedv/moodflow/internal/domain"
)

// ErrNotFound is returned when no record exists for a key.
var ErrNotFound = errors.New("not found")

// ScheduleRepo persists one ScheduleRecord per (user, date) key.
// Put is a full overwrite: last write wins, with no optimistic
// concurrency check. Concurrent turns for the same key can clobber each
// other; that is an accepted limitation of the single-record snapshot
// model, not something this layer coordinates.
type ScheduleRepo interface {
	// Get returns the record for the key, or ErrNotFound.
	Get(ctx context.Context, userID, date string) (*domain.ScheduleRecord, error)
	// Put overwrites the record for the key.
	Put(ctx context.Context, rec *domain.ScheduleRecord) error
}
