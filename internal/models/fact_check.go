package models

import (
	"time"

	"gorm.io/datatypes"
)

// FactCheck records one fact-check call and its sources. Read-only after
// creation.
type FactCheck struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	DebateID  uint           `gorm:"not null;index" json:"debate_id"`
	Statement string         `gorm:"type:text;not null" json:"statement"`
	Turn      int            `gorm:"not null" json:"turn"`
	Sources   datatypes.JSON `json:"sources"`
	CreatedAt time.Time      `json:"created_at"`
}
