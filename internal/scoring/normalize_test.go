package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeNumericInput(t *testing.T) {
	require.Equal(t, 7.0, Normalize(7.0))
	require.Equal(t, 7.0, Normalize(7))
	require.Equal(t, 10.0, Normalize(15), "values above the range clamp to the maximum")
	require.Equal(t, 1.0, Normalize(-3), "values below the range clamp to the minimum")
}

func TestNormalizeStringInput(t *testing.T) {
	require.Equal(t, 7.0, Normalize("7"))
	require.Equal(t, 8.5, Normalize(" 8.5 "))
	require.Equal(t, DefaultScore, Normalize("banana"))
	require.Equal(t, DefaultScore, Normalize(""))
}

func TestNormalizeUnsupportedInput(t *testing.T) {
	require.Equal(t, DefaultScore, Normalize(nil))
	require.Equal(t, DefaultScore, Normalize(map[string]interface{}{"score": 7}))
	require.Equal(t, DefaultScore, Normalize([]interface{}{7}))
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []interface{}{7.0, "7", "banana", 15, -3, nil, 0.0, "9.9"}
	for _, input := range inputs {
		once := Normalize(input)
		require.Equal(t, once, Normalize(once))
	}
}

func TestClampBounds(t *testing.T) {
	require.Equal(t, MinScore, Clamp(0.2))
	require.Equal(t, MaxScore, Clamp(11.0))
	require.Equal(t, 5.5, Clamp(5.5))
}

func TestRound1(t *testing.T) {
	require.Equal(t, 7.3, Round1(7.349))
	require.Equal(t, 7.4, Round1(7.35))
}
