// Package prompts builds the rubric and system texts sent to the LLM
// collaborator. The evaluation prompt pins the five scored criteria and
// requests a structured JSON response.
package prompts

import (
	"fmt"
	"strings"

	"github.com/noah-isme/arena-go-api/internal/scoring"
)

// EvaluationSystem returns the system instruction for argument evaluation.
func EvaluationSystem() string {
	return "You are an expert debate evaluator who analyzes arguments based on clarity, evidence, " +
		"reasoning, persuasiveness, and relevance. Always respond with numeric scores between 1-10."
}

// EvaluationRequest builds the user prompt asking the model to score one
// argument against the fixed rubric and answer in JSON.
func EvaluationRequest(topic, speaker, argument string, turn int) string {
	builder := strings.Builder{}

	builder.WriteString(fmt.Sprintf("You are an expert debate evaluator assessing an argument in a debate on the topic: %q\n", topic))
	builder.WriteString(fmt.Sprintf("Please evaluate the following argument made by %s in turn %d of the debate.\n\n", speaker, turn))
	builder.WriteString("ARGUMENT:\n")
	builder.WriteString(argument)
	builder.WriteString("\n\nEVALUATION CRITERIA:\n")
	for _, criterion := range scoring.Criteria() {
		builder.WriteString(fmt.Sprintf("- %s (1-10): %s\n", titleCase(string(criterion)), criterion.Description()))
	}
	builder.WriteString(`
For each criterion, provide:
1. A score from 1-10 (MUST be a numeric value, not text)
2. A brief explanation of the score

Finally, provide:
1. A list of key strengths (2-3 points)
2. A list of key weaknesses (1-2 points)
3. An overall score from 1-10 based on all criteria (MUST be a numeric value, not text)
4. A brief reasoning for the overall evaluation

Your response must be in the following JSON format:
{
  "criteria": {
`)
	criteria := scoring.Criteria()
	for i, criterion := range criteria {
		builder.WriteString(fmt.Sprintf("    %q: {\"score\": <score>, \"explanation\": \"<explanation>\"}", string(criterion)))
		if i < len(criteria)-1 {
			builder.WriteString(",")
		}
		builder.WriteString("\n")
	}
	builder.WriteString(`  },
  "strengths": ["<strength1>", "<strength2>", ...],
  "weaknesses": ["<weakness1>", "<weakness2>", ...],
  "overall_score": <overall_score>,
  "reasoning": "<reasoning>"
}

IMPORTANT: All scores MUST be numeric values between 1 and 10, not strings.
`)

	return builder.String()
}

func titleCase(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
