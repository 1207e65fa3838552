package dto

import "time"

// EvaluateArgumentRequest submits one argument for scoring.
type EvaluateArgumentRequest struct {
	Speaker  string `json:"speaker" validate:"required,min=1,max=255"`
	Argument string `json:"argument" validate:"required,min=1"`
	Turn     int    `json:"turn" validate:"required,min=1"`
}

// EvaluationResponse is the scored assessment returned to the caller.
type EvaluationResponse struct {
	ID             uint               `json:"id,omitempty"`
	DebateID       uint               `json:"debate_id"`
	Speaker        string             `json:"speaker"`
	Turn           int                `json:"turn"`
	OverallScore   float64            `json:"overall_score"`
	CriteriaScores map[string]float64 `json:"criteria_scores"`
	Strengths      []string           `json:"strengths"`
	Weaknesses     []string           `json:"weaknesses"`
	Reasoning      string             `json:"reasoning"`
	FallbackReason string             `json:"fallback_reason,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}

// LiveEvent is pushed to websocket subscribers of a debate.
type LiveEvent struct {
	Type       string              `json:"type"`
	DebateID   uint                `json:"debate_id"`
	Evaluation *EvaluationResponse `json:"evaluation,omitempty"`
	SentAt     time.Time           `json:"sent_at"`
}
