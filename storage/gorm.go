package storage

import (
	"context"
	"errors"
	"time"

	"challenge-tracker/models"

	"gorm.io/gorm"
)

// GormLedger stores submissions in Postgres through GORM.
type GormLedger struct {
	DB *gorm.DB
}

func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{DB: db}
}

// Migrate creates the submissions table.
func (l *GormLedger) Migrate() error {
	return l.DB.AutoMigrate(&models.Submission{})
}

func (l *GormLedger) Latest(ctx context.Context, participantID string) (*models.Submission, error) {
	var rec models.Submission
	err := l.DB.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("submitted_at DESC").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (l *GormLedger) Append(ctx context.Context, rec *models.Submission) error {
	return l.DB.WithContext(ctx).Create(rec).Error
}

func (l *GormLedger) SetPlatform(ctx context.Context, recordID string, platform models.Platform) error {
	res := l.DB.WithContext(ctx).
		Model(&models.Submission{}).
		Where("id = ?", recordID).
		Update("platform", platform)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (l *GormLedger) LatestPerParticipant(ctx context.Context, eligibleOnly bool) ([]models.Submission, error) {
	query := `
		SELECT * FROM (
			SELECT DISTINCT ON (participant_id) *
			FROM submissions
			ORDER BY participant_id, submitted_at DESC
		) latest`
	if eligibleOnly {
		query += ` WHERE latest.eligible`
	}

	var recs []models.Submission
	if err := l.DB.WithContext(ctx).Raw(query).Scan(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (l *GormLedger) FindBetween(ctx context.Context, start, end time.Time) ([]models.Submission, error) {
	var recs []models.Submission
	err := l.DB.WithContext(ctx).
		Where("submitted_at >= ? AND submitted_at < ?", start, end).
		Order("submitted_at ASC").
		Find(&recs).Error
	return recs, err
}

// Atomically serializes the read-decide-write sequence per participant with a
// transaction-scoped advisory lock. A row lock on the latest record cannot do
// this: first-time participants have no row, and under READ COMMITTED a
// blocked FOR UPDATE re-returns the stale latest row after the winner commits.
func (l *GormLedger) Atomically(ctx context.Context, participantID string, fn func(tx Ledger) error) error {
	return l.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", participantID).Error; err != nil {
			return err
		}
		return fn(&GormLedger{DB: tx})
	})
}
