package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"challenge-tracker/models"
	"challenge-tracker/storage"

	"github.com/google/uuid"
)

// User-correctable rejections. Anything else coming out of SubmissionService
// is a persistence failure and safe to retry (the write is the last step).
var (
	ErrInvalidLink           = errors.New("link does not match an accepted post format")
	ErrAlreadySubmittedToday = errors.New("already submitted within the last 24 hours")
)

// IsRejection reports whether err is a logical rejection rather than an
// infrastructure failure, so front-ends can word the reply accordingly.
func IsRejection(err error) bool {
	return errors.Is(err, ErrInvalidLink) || errors.Is(err, ErrAlreadySubmittedToday)
}

// SubmissionService orchestrates one submission: classify the link, consult
// the streak engine against the ledger's latest record, persist the outcome.
type SubmissionService struct {
	Ledger storage.Ledger
}

func NewSubmissionService(ledger storage.Ledger) *SubmissionService {
	return &SubmissionService{Ledger: ledger}
}

// Submit records a progress link for a participant. Link validation runs
// before any ledger access; the read-decide-write sequence runs atomically so
// two near-simultaneous submissions cannot both count as first of the day.
func (s *SubmissionService) Submit(ctx context.Context, participantID, displayName, rawLink string, now time.Time) (*models.Submission, error) {
	if !ValidateLink(rawLink) {
		return nil, ErrInvalidLink
	}

	var rec *models.Submission
	err := s.Ledger.Atomically(ctx, participantID, func(tx storage.Ledger) error {
		var err error
		rec, err = s.submitTx(ctx, tx, participantID, displayName, rawLink, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Resubmit corrects today's record: when the participant already has a record
// on the same UTC calendar day as now, only its platform is re-derived from
// the new link — streak and eligibility stay as decided. With no same-day
// record it falls through to a fresh Submit. Runs in the same per-participant
// transaction as Submit.
func (s *SubmissionService) Resubmit(ctx context.Context, participantID, displayName, rawLink string, now time.Time) (*models.Submission, error) {
	if !ValidateLink(rawLink) {
		return nil, ErrInvalidLink
	}

	var rec *models.Submission
	err := s.Ledger.Atomically(ctx, participantID, func(tx storage.Ledger) error {
		latest, err := tx.Latest(ctx, participantID)
		if err != nil {
			return fmt.Errorf("read latest submission for %s: %w", participantID, err)
		}

		if latest != nil && sameUTCDay(latest.SubmittedAt, now) {
			platform := ClassifyLink(rawLink)
			if err := tx.SetPlatform(ctx, latest.ID, platform); err != nil {
				return fmt.Errorf("update platform for %s: %w", participantID, err)
			}
			latest.Platform = platform
			rec = latest
			return nil
		}

		rec, err = s.submitTx(ctx, tx, participantID, displayName, rawLink, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// submitTx is the read-decide-write sequence; tx must be a transactional
// ledger view obtained through Atomically. The link is assumed validated.
func (s *SubmissionService) submitTx(ctx context.Context, tx storage.Ledger, participantID, displayName, rawLink string, now time.Time) (*models.Submission, error) {
	prev, err := tx.Latest(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("read latest submission for %s: %w", participantID, err)
	}

	verdict := Decide(prev, now)
	if !verdict.Accepted {
		return nil, ErrAlreadySubmittedToday
	}

	rec := &models.Submission{
		ID:            uuid.NewString(),
		ParticipantID: participantID,
		DisplayName:   displayName,
		SubmittedAt:   now.UTC(),
		Platform:      ClassifyLink(rawLink),
		Streak:        verdict.Streak,
		Eligible:      verdict.Eligible,
	}
	if err := tx.Append(ctx, rec); err != nil {
		return nil, fmt.Errorf("persist submission for %s: %w", participantID, err)
	}
	return rec, nil
}

// StreakOf returns the participant's current streak. A participant with no
// records is not an error — the streak is simply zero.
func (s *SubmissionService) StreakOf(ctx context.Context, participantID string) (int, error) {
	latest, err := s.Ledger.Latest(ctx, participantID)
	if err != nil {
		return 0, fmt.Errorf("read latest submission for %s: %w", participantID, err)
	}
	if latest == nil {
		return 0, nil
	}
	return latest.Streak, nil
}

func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
