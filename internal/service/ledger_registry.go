package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/noah-isme/arena-go-api/internal/models"
	"github.com/noah-isme/arena-go-api/internal/repository"
	"github.com/noah-isme/arena-go-api/internal/scoring"
)

// LedgerRegistry maps debate sessions to their score ledgers. A ledger is
// created when a debate is created and rebuilt from persisted evaluations
// when a debate is first touched after a restart.
type LedgerRegistry struct {
	mu          sync.Mutex
	ledgers     map[uint]*scoring.Ledger
	debates     repository.DebateRepository
	evaluations repository.EvaluationRepository
	logger      zerolog.Logger
}

// NewLedgerRegistry constructs a registry backed by the given repositories.
func NewLedgerRegistry(debates repository.DebateRepository, evaluations repository.EvaluationRepository, logger zerolog.Logger) *LedgerRegistry {
	return &LedgerRegistry{
		ledgers:     make(map[uint]*scoring.Ledger),
		debates:     debates,
		evaluations: evaluations,
		logger:      logger.With().Str("component", "ledger_registry").Logger(),
	}
}

// Create installs a fresh ledger for a newly created debate with the given
// speakers registered in order.
func (r *LedgerRegistry) Create(debateID uint, speakers []string) *scoring.Ledger {
	ledger := scoring.NewLedger(r.logger)
	for _, speaker := range speakers {
		ledger.Register(speaker)
	}

	r.mu.Lock()
	r.ledgers[debateID] = ledger
	r.mu.Unlock()
	return ledger
}

// Get returns the ledger for a debate, rebuilding it from persisted state
// when the debate is not yet resident.
func (r *LedgerRegistry) Get(ctx context.Context, debateID uint) (*scoring.Ledger, error) {
	r.mu.Lock()
	if ledger, resident := r.ledgers[debateID]; resident {
		r.mu.Unlock()
		return ledger, nil
	}
	r.mu.Unlock()

	ledger, err := r.rebuild(ctx, debateID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another goroutine may have rebuilt the same debate in the meantime.
	if existing, resident := r.ledgers[debateID]; resident {
		return existing, nil
	}
	r.ledgers[debateID] = ledger
	return ledger, nil
}

// RegisterSpeaker adds a speaker to a resident ledger. The debate must
// already exist; missing ledgers are rebuilt first.
func (r *LedgerRegistry) RegisterSpeaker(ctx context.Context, debateID uint, name string) error {
	ledger, err := r.Get(ctx, debateID)
	if err != nil {
		return err
	}
	ledger.Register(name)
	return nil
}

// Release drops the ledger of a finished debate.
func (r *LedgerRegistry) Release(debateID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.ledgers, debateID)
}

func (r *LedgerRegistry) rebuild(ctx context.Context, debateID uint) (*scoring.Ledger, error) {
	debaters, err := r.debates.ListDebaters(ctx, debateID)
	if err != nil {
		return nil, err
	}

	ledger := scoring.NewLedger(r.logger)
	for _, debater := range debaters {
		ledger.Register(debater.Name)
	}

	persisted, err := r.evaluations.ListByDebate(ctx, debateID)
	if err != nil {
		return nil, err
	}
	for _, record := range persisted {
		ledger.Record(record.Speaker, evaluationFromModel(record))
	}

	if len(persisted) > 0 {
		r.logger.Info().
			Uint("debate_id", debateID).
			Int("evaluations", len(persisted)).
			Msg("rebuilt score ledger from persisted evaluations")
	}
	return ledger, nil
}

// evaluationFromModel converts a persisted evaluation back into its domain
// form for ledger replay.
func evaluationFromModel(record models.Evaluation) scoring.Evaluation {
	scores := make(map[scoring.Criterion]float64, len(scoring.Criteria()))
	for _, criterion := range scoring.Criteria() {
		scores[criterion] = scoring.Normalize(record.CriteriaScores[string(criterion)])
	}

	return scoring.Evaluation{
		Speaker:        record.Speaker,
		Turn:           record.Turn,
		OverallScore:   record.OverallScore,
		CriteriaScores: scores,
		Strengths:      decodeStringList(record.Strengths),
		Weaknesses:     decodeStringList(record.Weaknesses),
		Reasoning:      record.Reasoning,
	}
}

func decodeStringList(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}
