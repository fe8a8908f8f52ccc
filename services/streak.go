package services

import (
	"time"

	"challenge-tracker/models"
)

// Submission timing bands. A participant gets at most one accepted record per
// rolling 24h; the streak continues when the next submission lands within the
// following 24h, and resets after that.
const (
	CooldownWindow = 24 * time.Hour
	GraceWindow    = 48 * time.Hour
)

// Verdict is the streak engine's decision for one incoming submission.
// Accepted=false always means the cooldown was violated.
type Verdict struct {
	Accepted bool
	Streak   int
	Eligible bool
}

// Decide applies the three-band streak policy to a new submission at now,
// given the participant's most recent accepted record (nil for first-timers):
//
//	no previous record          → accept, streak 1, eligible
//	gap < 24h                   → reject (already submitted today)
//	24h ≤ gap ≤ 48h             → accept, streak+1, eligible
//	gap > 48h                   → accept, streak resets to 1, not eligible
//
// Deterministic and total; all I/O belongs to the caller.
func Decide(prev *models.Submission, now time.Time) Verdict {
	if prev == nil {
		return Verdict{Accepted: true, Streak: 1, Eligible: true}
	}

	gap := now.Sub(prev.SubmittedAt)
	switch {
	case gap < CooldownWindow:
		return Verdict{Accepted: false}
	case gap <= GraceWindow:
		return Verdict{Accepted: true, Streak: prev.Streak + 1, Eligible: true}
	default:
		return Verdict{Accepted: true, Streak: 1, Eligible: false}
	}
}
