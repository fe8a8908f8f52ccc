package services

import (
	"context"
	"reflect"
	"testing"
	"time"

	"challenge-tracker/storage"
)

func TestOverdue(t *testing.T) {
	ctx := context.Background()
	ledger := storage.NewInMemoryLedger()
	svc := NewSubmissionService(ledger)
	reminders := NewReminderService(ledger)

	now := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)

	// lapsing: submitted 30h ago, nothing since
	mustSubmit(t, svc, "lapsing", twitterLink, now.Add(-30*time.Hour))

	// covered: submitted 30h ago and again 5h ago
	mustSubmit(t, svc, "covered", twitterLink, now.Add(-30*time.Hour))
	mustSubmit(t, svc, "covered", twitterLink, now.Add(-5*time.Hour))

	// fresh: submitted 5h ago only
	mustSubmit(t, svc, "fresh", twitterLink, now.Add(-5*time.Hour))

	// gone: last seen 3 days ago, already outside the grace window
	mustSubmit(t, svc, "gone", twitterLink, now.Add(-72*time.Hour))

	ids, err := reminders.Overdue(ctx, now)
	if err != nil {
		t.Fatalf("Overdue: %v", err)
	}
	if want := []string{"lapsing"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("Overdue = %v, want %v", ids, want)
	}
}

func TestOverdueWindowBoundaries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		age     time.Duration
		overdue bool
	}{
		{name: "exactly 48h ago is inside", age: 48 * time.Hour, overdue: true},
		{name: "just under 24h ago is outside", age: 24*time.Hour - time.Second, overdue: false},
		{name: "exactly 24h ago is outside", age: 24 * time.Hour, overdue: false},
		{name: "over 48h ago is outside", age: 48*time.Hour + time.Second, overdue: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := storage.NewInMemoryLedger()
			mustSubmit(t, NewSubmissionService(ledger), "p1", twitterLink, now.Add(-tt.age))

			ids, err := NewReminderService(ledger).Overdue(ctx, now)
			if err != nil {
				t.Fatalf("Overdue: %v", err)
			}
			if got := len(ids) == 1; got != tt.overdue {
				t.Errorf("overdue = %v, want %v (ids=%v)", got, tt.overdue, ids)
			}
		})
	}
}

func TestOverdueIsIdempotent(t *testing.T) {
	ctx := context.Background()
	ledger := storage.NewInMemoryLedger()
	now := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)

	svc := NewSubmissionService(ledger)
	mustSubmit(t, svc, "a", twitterLink, now.Add(-30*time.Hour))
	mustSubmit(t, svc, "b", twitterLink, now.Add(-26*time.Hour))

	reminders := NewReminderService(ledger)
	first, err := reminders.Overdue(ctx, now)
	if err != nil {
		t.Fatal(err)
	}
	second, err := reminders.Overdue(ctx, now)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated query diverged: %v then %v", first, second)
	}
}
