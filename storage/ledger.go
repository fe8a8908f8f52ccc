package storage

import (
	"context"
	"errors"
	"time"

	"challenge-tracker/models"
)

// ErrRecordNotFound is returned by SetPlatform when the target row is gone.
var ErrRecordNotFound = errors.New("submission record not found")

// Ledger is the durable, append-only store of submission records. The core
// services receive an instance at construction time; they never own the
// connection lifecycle.
type Ledger interface {
	// Latest returns the most recent record for a participant by submission
	// time, or nil when the participant has no records.
	Latest(ctx context.Context, participantID string) (*models.Submission, error)

	// Append durably persists a new record.
	Append(ctx context.Context, rec *models.Submission) error

	// SetPlatform replaces only the platform field of an existing record.
	// Used by the same-day resubmit correction; streak and eligibility are
	// never touched through this path.
	SetPlatform(ctx context.Context, recordID string, platform models.Platform) error

	// LatestPerParticipant returns one record per participant — the most
	// recent — optionally restricted to eligible participants.
	LatestPerParticipant(ctx context.Context, eligibleOnly bool) ([]models.Submission, error)

	// FindBetween returns records with SubmittedAt in [start, end),
	// ordered by submission time.
	FindBetween(ctx context.Context, start, end time.Time) ([]models.Submission, error)

	// Atomically runs fn against a transactional view of the ledger,
	// serialized per participant: two concurrent submit calls for the same
	// participant must not both read the same previous record and both
	// append. Row locks alone can't give this — a first-time participant
	// has no row to lock.
	Atomically(ctx context.Context, participantID string, fn func(tx Ledger) error) error
}
