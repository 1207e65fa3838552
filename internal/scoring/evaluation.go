package scoring

// Evaluation is the full scored assessment of one argument in one turn.
// Instances are immutable once produced; the Ledger owns recorded copies.
type Evaluation struct {
	Speaker        string
	Turn           int
	OverallScore   float64
	CriteriaScores map[Criterion]float64
	Strengths      []string
	Weaknesses     []string
	Reasoning      string
}
