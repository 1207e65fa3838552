package scoring

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Score bounds and the neutral default substituted for unusable input.
const (
	MinScore     = 1.0
	MaxScore     = 10.0
	DefaultScore = 5.0
)

// Normalize coerces an arbitrary value into a score within [MinScore, MaxScore].
// Numbers are used directly, numeric strings are parsed, and anything else
// resolves to DefaultScore. Normalize never panics and is idempotent.
func Normalize(raw interface{}) float64 {
	value, ok := numericValue(raw)
	if !ok {
		value = DefaultScore
	}
	return Clamp(value)
}

// Clamp bounds a score to the closed interval [MinScore, MaxScore].
func Clamp(value float64) float64 {
	return math.Min(math.Max(value, MinScore), MaxScore)
}

// Round1 rounds a score to one decimal place, the precision scores are
// reported and averaged at.
func Round1(value float64) float64 {
	return math.Round(value*10) / 10
}

// numericValue extracts a float from the shapes an LLM response (or a direct
// caller) can supply. The second return reports whether extraction succeeded.
func numericValue(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
