package models

import "time"

// Debate statuses.
const (
	DebateStatusActive    = "active"
	DebateStatusConcluded = "concluded"
)

// Debate represents one moderated debate session.
type Debate struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Topic        string    `gorm:"size:512;not null" json:"topic"`
	Style        string    `gorm:"size:64;default:neutral" json:"style"`
	FactChecking bool      `gorm:"not null;default:false" json:"fact_checking"`
	Status       string    `gorm:"size:32;not null;default:active" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Debaters     []Debater `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"debaters"`
}

// Debater is one registered speaker in a debate. Position records
// registration order, which breaks ranking ties.
type Debater struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DebateID  uint      `gorm:"not null;index" json:"debate_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Stance    string    `gorm:"size:64" json:"stance"`
	Position  int       `gorm:"not null" json:"position"`
	CreatedAt time.Time `json:"created_at"`
}
