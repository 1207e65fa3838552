package scoring

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrParseFailure indicates the LLM response could not be decoded into an
// evaluation. Callers fall back to the placeholder evaluator on this error.
var ErrParseFailure = errors.New("evaluation response not parseable")

// evaluationSchema checks the coarse shape of a decoded response. Missing
// individual criteria are repaired rather than rejected, so the schema only
// requires the criteria object itself.
const evaluationSchema = `{
	"type": "object",
	"required": ["criteria"],
	"properties": {
		"criteria": {"type": "object"},
		"strengths": {"type": "array"},
		"weaknesses": {"type": "array"},
		"reasoning": {"type": "string"}
	}
}`

var outerBracesPattern = regexp.MustCompile(`(?s)\{.*\}`)

// Defaults substituted when a decodable response omits optional members.
const (
	defaultStrength  = "Good argumentation"
	defaultWeakness  = "Could be improved"
	defaultReasoning = "This is an automated evaluation."
)

// Parser turns raw LLM text into a structured Evaluation, tolerating prose
// and markdown fences around the JSON payload and repairing incomplete but
// decodable responses in place.
type Parser struct {
	schema *jsonschema.Schema
	logger zerolog.Logger
}

// NewParser constructs a parser. Repairs of incomplete responses are logged
// through the provided logger as data-quality warnings.
func NewParser(logger zerolog.Logger) *Parser {
	schema := jsonschema.MustCompileString("evaluation.json", evaluationSchema)
	return &Parser{
		schema: schema,
		logger: logger.With().Str("component", "evaluation_parser").Logger(),
	}
}

// Parse decodes the evaluation embedded in raw for the given speaker and
// turn. It returns ErrParseFailure when no structured payload can be located
// or the payload lacks the criteria object; every other deficiency is
// repaired with defaults so the returned evaluation is always complete.
func (p *Parser) Parse(raw, speaker string, turn int) (Evaluation, error) {
	decoded, err := p.decode(raw)
	if err != nil {
		return Evaluation{}, err
	}

	if err := p.schema.Validate(decoded); err != nil {
		p.logger.Warn().Err(err).Str("speaker", speaker).Msg("evaluation response failed schema validation")
		return Evaluation{}, ErrParseFailure
	}

	payload, ok := decoded.(map[string]interface{})
	if !ok {
		return Evaluation{}, ErrParseFailure
	}

	criteria, _ := payload["criteria"].(map[string]interface{})

	scores := make(map[Criterion]float64, len(Criteria()))
	for _, criterion := range Criteria() {
		entry, present := criteria[string(criterion)]
		if !present {
			p.logger.Warn().
				Str("speaker", speaker).
				Str("criterion", string(criterion)).
				Msg("criterion missing from evaluation response, using default score")
			scores[criterion] = DefaultScore
			continue
		}
		scores[criterion] = Round1(Normalize(criterionScore(entry)))
	}

	overall, ok := numericValue(payload["overall_score"])
	if !ok {
		p.logger.Warn().Str("speaker", speaker).Msg("overall score missing, computing from criteria")
		overall = meanScore(scores)
	}
	overall = Round1(Clamp(overall))

	strengths := stringList(payload["strengths"])
	if len(strengths) == 0 {
		strengths = []string{defaultStrength}
	}
	weaknesses := stringList(payload["weaknesses"])
	if len(weaknesses) == 0 {
		weaknesses = []string{defaultWeakness}
	}

	reasoning, _ := payload["reasoning"].(string)
	if strings.TrimSpace(reasoning) == "" {
		reasoning = defaultReasoning
	}

	return Evaluation{
		Speaker:        speaker,
		Turn:           turn,
		OverallScore:   overall,
		CriteriaScores: scores,
		Strengths:      strengths,
		Weaknesses:     weaknesses,
		Reasoning:      reasoning,
	}, nil
}

// decode extracts and unmarshals the JSON object embedded in raw. The
// payload may be preceded or followed by prose and may be wrapped in
// markdown code fences.
func (p *Parser) decode(raw string) (interface{}, error) {
	candidate := extractJSONBlock(raw)
	if candidate == "" {
		return nil, ErrParseFailure
	}

	var decoded interface{}
	if err := json.Unmarshal([]byte(candidate), &decoded); err == nil {
		return decoded, nil
	}

	// Second attempt on the outermost brace slice of the raw text.
	match := outerBracesPattern.FindString(raw)
	if match == "" {
		return nil, ErrParseFailure
	}
	if err := json.Unmarshal([]byte(match), &decoded); err != nil {
		return nil, ErrParseFailure
	}
	return decoded, nil
}

func extractJSONBlock(raw string) string {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, "```") {
		lines := strings.Split(text, "\n")
		if len(lines) > 1 {
			if strings.TrimSpace(lines[len(lines)-1]) == "```" {
				lines = lines[1 : len(lines)-1]
			} else {
				lines = lines[1:]
			}
			text = strings.Join(lines, "\n")
		}
	}

	start := strings.Index(text, "{")
	if start < 0 {
		return ""
	}
	end := strings.LastIndex(text, "}")
	if end < start {
		return ""
	}
	return text[start : end+1]
}

// criterionScore digs the score value out of a per-criterion entry, which is
// normally {"score": ..., "explanation": ...} but may be a bare number.
func criterionScore(entry interface{}) interface{} {
	if object, ok := entry.(map[string]interface{}); ok {
		return object["score"]
	}
	return entry
}

func meanScore(scores map[Criterion]float64) float64 {
	if len(scores) == 0 {
		return DefaultScore
	}
	var sum float64
	for _, score := range scores {
		sum += score
	}
	return sum / float64(len(scores))
}

func stringList(raw interface{}) []string {
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		text, ok := item.(string)
		if !ok {
			continue
		}
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			continue
		}
		result = append(result, trimmed)
	}
	return result
}
