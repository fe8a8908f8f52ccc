package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"challenge-tracker/storage"
)

// ReminderService answers "who is about to break their streak?". Delivery of
// the actual reminder is the notifier's job.
type ReminderService struct {
	Ledger storage.Ledger
}

func NewReminderService(ledger storage.Ledger) *ReminderService {
	return &ReminderService{Ledger: ledger}
}

// Overdue returns the IDs of participants whose latest record falls in
// [now-48h, now-24h): they submitted yesterday but not yet today, and are
// still inside the grace window. Idempotent — same now and unchanged ledger
// yield the same result.
func (s *ReminderService) Overdue(ctx context.Context, now time.Time) ([]string, error) {
	windowStart := now.Add(-GraceWindow)
	windowEnd := now.Add(-CooldownWindow)

	inWindow, err := s.Ledger.FindBetween(ctx, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("find submissions in reminder window: %w", err)
	}
	if len(inWindow) == 0 {
		return nil, nil
	}

	// Anyone who submitted again since the window closed is covered for today.
	recent, err := s.Ledger.FindBetween(ctx, windowEnd, now.Add(time.Nanosecond))
	if err != nil {
		return nil, fmt.Errorf("find recent submissions: %w", err)
	}
	covered := make(map[string]bool, len(recent))
	for _, r := range recent {
		covered[r.ParticipantID] = true
	}

	seen := make(map[string]bool, len(inWindow))
	var ids []string
	for _, r := range inWindow {
		if covered[r.ParticipantID] || seen[r.ParticipantID] {
			continue
		}
		seen[r.ParticipantID] = true
		ids = append(ids, r.ParticipantID)
	}
	sort.Strings(ids)
	return ids, nil
}
