package dto

import "time"

// DebaterRequest registers one speaker in a debate.
type DebaterRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=255"`
	Stance string `json:"stance" validate:"max=64"`
}

// CreateDebateRequest creates a debate session with its initial debaters.
type CreateDebateRequest struct {
	Topic        string           `json:"topic" validate:"required,min=3,max=512"`
	Style        string           `json:"style" validate:"max=64"`
	FactChecking bool             `json:"fact_checking"`
	Debaters     []DebaterRequest `json:"debaters" validate:"required,min=1,dive"`
}

// DebaterResponse describes one registered speaker.
type DebaterResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Stance   string `json:"stance,omitempty"`
	Position int    `json:"position"`
}

// DebateResponse describes a debate session.
type DebateResponse struct {
	ID           uint              `json:"id"`
	Topic        string            `json:"topic"`
	Style        string            `json:"style"`
	FactChecking bool              `json:"fact_checking"`
	Status       string            `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	Debaters     []DebaterResponse `json:"debaters"`
}

// RankingResponse is one row of a debate ranking.
type RankingResponse struct {
	Name        string  `json:"name"`
	Total       float64 `json:"total"`
	Evaluations int     `json:"evaluations"`
}

// DebateResultsResponse reports the rankings and winner of a debate.
type DebateResultsResponse struct {
	DebateID    uint              `json:"debate_id"`
	Topic       string            `json:"topic"`
	Winner      string            `json:"winner"`
	WinnerScore float64           `json:"winner_score"`
	Rankings    []RankingResponse `json:"rankings"`
}

// TranscriptEntryResponse is one transcript utterance.
type TranscriptEntryResponse struct {
	Speaker     string    `json:"speaker"`
	Role        string    `json:"role"`
	MessageType string    `json:"message_type"`
	Content     string    `json:"content"`
	Turn        int       `json:"turn"`
	CreatedAt   time.Time `json:"created_at"`
}
