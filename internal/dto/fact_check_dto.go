package dto

import "time"

// FactCheckRequest asks the moderator to fact-check a statement.
type FactCheckRequest struct {
	Statement string `json:"statement" validate:"required,min=1"`
	Turn      int    `json:"turn" validate:"required,min=1"`
}

// FactCheckSource is one cited search result.
type FactCheckSource struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// FactCheckResponse carries the formatted fact-check text and its sources.
type FactCheckResponse struct {
	Statement string            `json:"statement"`
	Turn      int               `json:"turn"`
	Summary   string            `json:"summary"`
	Sources   []FactCheckSource `json:"sources"`
	CreatedAt time.Time         `json:"created_at"`
}
