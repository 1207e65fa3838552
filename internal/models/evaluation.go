package models

import (
	"time"

	"gorm.io/datatypes"
)

// Reasons an evaluation fell back to the placeholder path. Operators use
// these to tell "LLM down" apart from "LLM returned garbage".
const (
	FallbackNone           = ""
	FallbackLLMUnavailable = "llm_unavailable"
	FallbackLLMError       = "llm_error"
	FallbackParseError     = "parse_error"
)

// Evaluation captures the scored assessment of one argument in one turn.
type Evaluation struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	DebateID       uint              `gorm:"not null;index" json:"debate_id"`
	Speaker        string            `gorm:"size:255;not null" json:"speaker"`
	Turn           int               `gorm:"not null" json:"turn"`
	OverallScore   float64           `gorm:"not null" json:"overall_score"`
	CriteriaScores datatypes.JSONMap `json:"criteria_scores"`
	Strengths      datatypes.JSON    `json:"strengths"`
	Weaknesses     datatypes.JSON    `json:"weaknesses"`
	Reasoning      string            `gorm:"type:text" json:"reasoning"`
	FallbackReason string            `gorm:"size:32" json:"fallback_reason,omitempty"`
	Provider       string            `gorm:"size:32" json:"provider,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}
