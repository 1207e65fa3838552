package models

import "time"

// Transcript message types.
const (
	TranscriptTypeArgument   = "argument"
	TranscriptTypeFactCheck  = "fact_check"
	TranscriptTypeModeration = "moderation"
)

// TranscriptEntry is one utterance in a debate's transcript, append-only.
type TranscriptEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	DebateID    uint      `gorm:"not null;index" json:"debate_id"`
	Speaker     string    `gorm:"size:255;not null" json:"speaker"`
	Role        string    `gorm:"size:32;not null" json:"role"`
	MessageType string    `gorm:"size:32;not null" json:"message_type"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Turn        int       `gorm:"not null" json:"turn"`
	CreatedAt   time.Time `json:"created_at"`
}
