package scoring

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// RankingEntry is one row of a debate ranking.
type RankingEntry struct {
	Name        string  `json:"name"`
	Total       float64 `json:"total"`
	Evaluations int     `json:"evaluations"`
}

// Ledger owns the per-speaker evaluation history and running averages for a
// single debate session. All methods are safe for concurrent use; Record
// serialises the append-and-recompute step so the running-average invariant
// holds under concurrent evaluations.
type Ledger struct {
	mu       sync.Mutex
	order    []string
	speakers map[string]*speakerRecord
	logger   zerolog.Logger
}

type speakerRecord struct {
	evaluations []Evaluation
	total       float64
}

// NewLedger constructs an empty ledger.
func NewLedger(logger zerolog.Logger) *Ledger {
	return &Ledger{
		speakers: make(map[string]*speakerRecord),
		logger:   logger.With().Str("component", "score_ledger").Logger(),
	}
}

// Register creates an empty record for the speaker. Registration order is
// preserved and used to break ranking ties. Idempotent.
func (l *Ledger) Register(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.speakers[name]; exists {
		return
	}
	l.speakers[name] = &speakerRecord{}
	l.order = append(l.order, name)
}

// Record appends an evaluation to the speaker's history and recomputes the
// running average, rounded to one decimal place. Recording for an unknown
// speaker is a logged no-op; the return reports whether the record was kept.
func (l *Ledger) Record(name string, evaluation Evaluation) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	record, exists := l.speakers[name]
	if !exists {
		l.logger.Warn().Str("speaker", name).Msg("dropping evaluation for unregistered speaker")
		return false
	}

	record.evaluations = append(record.evaluations, evaluation)

	var sum float64
	for _, e := range record.evaluations {
		sum += e.OverallScore
	}
	record.total = Round1(sum / float64(len(record.evaluations)))
	return true
}

// Rankings returns all registered speakers sorted by total descending. Ties
// keep registration order thanks to the stable sort.
func (l *Ledger) Rankings() []RankingEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := make([]RankingEntry, 0, len(l.order))
	for _, name := range l.order {
		record := l.speakers[name]
		entries = append(entries, RankingEntry{
			Name:        name,
			Total:       record.total,
			Evaluations: len(record.evaluations),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Total > entries[j].Total
	})
	return entries
}

// Winner returns the top ranking entry. The second return is false when no
// speaker is registered.
func (l *Ledger) Winner() (RankingEntry, bool) {
	rankings := l.Rankings()
	if len(rankings) == 0 {
		return RankingEntry{}, false
	}
	return rankings[0], true
}

// History returns a copy of the speaker's recorded evaluations in call order.
func (l *Ledger) History(name string) ([]Evaluation, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	record, exists := l.speakers[name]
	if !exists {
		return nil, false
	}
	return append([]Evaluation(nil), record.evaluations...), true
}

// Registered reports whether the speaker has been registered.
func (l *Ledger) Registered(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, exists := l.speakers[name]
	return exists
}

// Speakers returns the registered speaker names in registration order.
func (l *Ledger) Speakers() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string(nil), l.order...)
}
