package models

import (
	"time"
)

// Platform identifies which network a progress link was posted on.
type Platform string

const (
	PlatformTwitter  Platform = "Twitter"
	PlatformLinkedIn Platform = "LinkedIn"
	PlatformUnknown  Platform = "Unknown"
)

// Submission is one accepted daily progress entry. Rows are append-only:
// the only permitted update after creation is the platform correction done
// by the resubmit path.
type Submission struct {
	ID            string    `json:"id" gorm:"primaryKey;type:uuid"`
	ParticipantID string    `json:"participantId" gorm:"column:participant_id;index;not null"`
	DisplayName   string    `json:"displayName" gorm:"column:display_name"` // cached at submission time, may go stale
	SubmittedAt   time.Time `json:"submittedAt" gorm:"column:submitted_at;index;not null"`
	Platform      Platform  `json:"platform" gorm:"column:platform;type:varchar(16);not null"`
	Streak        int       `json:"streak" gorm:"not null;default:1"`
	Eligible      bool      `json:"eligible" gorm:"not null;default:true"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Submission) TableName() string {
	return "submissions"
}

// ParticipantSummary is the latest state per participant, derived from the
// ledger for reports and reminders — never stored.
type ParticipantSummary struct {
	ParticipantID string   `json:"participantId"`
	DisplayName   string   `json:"displayName"`
	Platform      Platform `json:"platform"`
	Streak        int      `json:"streak"`
	Eligible      bool     `json:"eligible"`
}

// Summary flattens a submission into its derived per-participant view.
func (s Submission) Summary() ParticipantSummary {
	return ParticipantSummary{
		ParticipantID: s.ParticipantID,
		DisplayName:   s.DisplayName,
		Platform:      s.Platform,
		Streak:        s.Streak,
		Eligible:      s.Eligible,
	}
}
