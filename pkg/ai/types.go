package ai

import "context"

// CompletionRequest carries one chat completion round trip to an LLM backend.
type CompletionRequest struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int
	TopP        float32
}

// Completer describes an LLM backend capable of answering moderation prompts.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
