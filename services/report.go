package services

import (
	"context"
	"fmt"

	"challenge-tracker/models"
	"challenge-tracker/storage"
)

// ReportService flattens the ledger into one row per participant for export.
type ReportService struct {
	Ledger storage.Ledger
}

func NewReportService(ledger storage.Ledger) *ReportService {
	return &ReportService{Ledger: ledger}
}

// Report returns the latest state of each participant, optionally restricted
// to those still prize-eligible. Ordering is left to the export side.
func (s *ReportService) Report(ctx context.Context, eligibleOnly bool) ([]models.ParticipantSummary, error) {
	latest, err := s.Ledger.LatestPerParticipant(ctx, eligibleOnly)
	if err != nil {
		return nil, fmt.Errorf("load latest records per participant: %w", err)
	}

	summaries := make([]models.ParticipantSummary, 0, len(latest))
	for _, rec := range latest {
		summaries = append(summaries, rec.Summary())
	}
	return summaries, nil
}
