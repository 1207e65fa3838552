package scoring

import (
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func testLedger() *Ledger {
	return NewLedger(zerolog.New(io.Discard))
}

func evalWithScore(speaker string, turn int, score float64) Evaluation {
	return Evaluation{
		Speaker:      speaker,
		Turn:         turn,
		OverallScore: score,
		CriteriaScores: map[Criterion]float64{
			CriterionClarity:        score,
			CriterionEvidence:       score,
			CriterionReasoning:      score,
			CriterionPersuasiveness: score,
			CriterionRelevance:      score,
		},
		Strengths:  []string{"Clear argumentation"},
		Weaknesses: []string{"Could be more concise"},
		Reasoning:  "test",
	}
}

func TestLedgerRunningAverage(t *testing.T) {
	ledger := testLedger()
	ledger.Register("Bob")

	require.True(t, ledger.Record("Bob", evalWithScore("Bob", 1, 8.0)))
	require.True(t, ledger.Record("Bob", evalWithScore("Bob", 2, 6.0)))

	rankings := ledger.Rankings()
	require.Len(t, rankings, 1)
	require.Equal(t, 7.0, rankings[0].Total)
	require.Equal(t, 2, rankings[0].Evaluations)
}

func TestLedgerRunningAverageRoundsToOneDecimal(t *testing.T) {
	ledger := testLedger()
	ledger.Register("Bob")

	ledger.Record("Bob", evalWithScore("Bob", 1, 7.0))
	ledger.Record("Bob", evalWithScore("Bob", 2, 8.0))
	ledger.Record("Bob", evalWithScore("Bob", 3, 8.0))

	rankings := ledger.Rankings()
	require.Equal(t, 7.7, rankings[0].Total)
}

func TestLedgerRegisterIsIdempotent(t *testing.T) {
	ledger := testLedger()
	ledger.Register("Alice")
	ledger.Record("Alice", evalWithScore("Alice", 1, 9.0))
	ledger.Register("Alice")

	rankings := ledger.Rankings()
	require.Len(t, rankings, 1)
	require.Equal(t, 9.0, rankings[0].Total)
}

func TestLedgerIgnoresUnknownSpeaker(t *testing.T) {
	ledger := testLedger()
	ledger.Register("Alice")

	require.False(t, ledger.Record("Mallory", evalWithScore("Mallory", 1, 9.0)))
	rankings := ledger.Rankings()
	require.Len(t, rankings, 1)
	require.Equal(t, "Alice", rankings[0].Name)
	require.Zero(t, rankings[0].Evaluations)
}

func TestLedgerRankingsSortDescendingWithStableTies(t *testing.T) {
	ledger := testLedger()
	ledger.Register("Alice")
	ledger.Register("Bob")
	ledger.Register("Carol")

	ledger.Record("Alice", evalWithScore("Alice", 1, 7.0))
	ledger.Record("Bob", evalWithScore("Bob", 1, 9.0))
	ledger.Record("Carol", evalWithScore("Carol", 1, 7.0))

	rankings := ledger.Rankings()
	require.Equal(t, []string{"Bob", "Alice", "Carol"}, []string{rankings[0].Name, rankings[1].Name, rankings[2].Name})
}

func TestLedgerWinnerDeterministicWithZeroActivity(t *testing.T) {
	ledger := testLedger()
	ledger.Register("Alice")
	ledger.Register("Bob")

	winner, ok := ledger.Winner()
	require.True(t, ok)
	require.Equal(t, "Alice", winner.Name, "ties resolve by registration order")
	require.Zero(t, winner.Total)
}

func TestLedgerWinnerEmpty(t *testing.T) {
	_, ok := testLedger().Winner()
	require.False(t, ok)
}

func TestLedgerHistoryReturnsCopies(t *testing.T) {
	ledger := testLedger()
	ledger.Register("Alice")
	ledger.Record("Alice", evalWithScore("Alice", 1, 8.0))

	history, ok := ledger.History("Alice")
	require.True(t, ok)
	require.Len(t, history, 1)

	history[0].OverallScore = 1.0
	again, _ := ledger.History("Alice")
	require.Equal(t, 8.0, again[0].OverallScore)
}
