package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/arena-go-api/internal/dto"
	"github.com/noah-isme/arena-go-api/internal/models"
	"github.com/noah-isme/arena-go-api/internal/repository"
)

// DebateService manages debate sessions: creation, debater registration,
// results and transcript retrieval.
type DebateService interface {
	Create(ctx context.Context, req dto.CreateDebateRequest) (dto.DebateResponse, error)
	Get(ctx context.Context, debateID uint) (dto.DebateResponse, error)
	RegisterDebater(ctx context.Context, debateID uint, req dto.DebaterRequest) (dto.DebaterResponse, error)
	Results(ctx context.Context, debateID uint) (dto.DebateResultsResponse, error)
	Transcript(ctx context.Context, debateID uint) ([]dto.TranscriptEntryResponse, error)
}

type debateService struct {
	debates     repository.DebateRepository
	transcripts repository.TranscriptRepository
	ledgers     *LedgerRegistry
	results     *ResultsCache
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewDebateService constructs the debate service.
func NewDebateService(
	debates repository.DebateRepository,
	transcripts repository.TranscriptRepository,
	ledgers *LedgerRegistry,
	results *ResultsCache,
	validate *validator.Validate,
	logger zerolog.Logger,
) DebateService {
	return &debateService{
		debates:     debates,
		transcripts: transcripts,
		ledgers:     ledgers,
		results:     results,
		validator:   validate,
		logger:      logger.With().Str("component", "debate_service").Logger(),
	}
}

func (s *debateService) Create(ctx context.Context, req dto.CreateDebateRequest) (dto.DebateResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.DebateResponse{}, err
	}

	style := req.Style
	if style == "" {
		style = "neutral"
	}

	debate := models.Debate{
		Topic:        req.Topic,
		Style:        style,
		FactChecking: req.FactChecking,
		Status:       models.DebateStatusActive,
		Debaters:     make([]models.Debater, 0, len(req.Debaters)),
	}
	for position, debater := range req.Debaters {
		debate.Debaters = append(debate.Debaters, models.Debater{
			Name:     debater.Name,
			Stance:   debater.Stance,
			Position: position,
		})
	}

	if err := s.debates.Create(ctx, &debate); err != nil {
		return dto.DebateResponse{}, err
	}

	speakers := make([]string, 0, len(debate.Debaters))
	for _, debater := range debate.Debaters {
		speakers = append(speakers, debater.Name)
	}
	s.ledgers.Create(debate.ID, speakers)

	s.logger.Info().Uint("debate_id", debate.ID).Str("topic", debate.Topic).
		Int("debaters", len(speakers)).Msg("debate created")

	return debateResponse(debate), nil
}

func (s *debateService) Get(ctx context.Context, debateID uint) (dto.DebateResponse, error) {
	debate, err := s.debates.GetByID(ctx, debateID)
	if err != nil {
		return dto.DebateResponse{}, err
	}
	return debateResponse(debate), nil
}

func (s *debateService) RegisterDebater(ctx context.Context, debateID uint, req dto.DebaterRequest) (dto.DebaterResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.DebaterResponse{}, err
	}

	debate, err := s.debates.GetByID(ctx, debateID)
	if err != nil {
		return dto.DebaterResponse{}, err
	}

	debater := models.Debater{
		DebateID: debateID,
		Name:     req.Name,
		Stance:   req.Stance,
		Position: len(debate.Debaters),
	}
	if err := s.debates.AddDebater(ctx, &debater); err != nil {
		return dto.DebaterResponse{}, err
	}

	if err := s.ledgers.RegisterSpeaker(ctx, debateID, req.Name); err != nil {
		return dto.DebaterResponse{}, err
	}

	return dto.DebaterResponse{
		ID:       debater.ID,
		Name:     debater.Name,
		Stance:   debater.Stance,
		Position: debater.Position,
	}, nil
}

func (s *debateService) Results(ctx context.Context, debateID uint) (dto.DebateResultsResponse, error) {
	if cached, hit := s.results.Get(ctx, debateID); hit {
		s.logger.Debug().Uint("debate_id", debateID).Msg("results cache hit")
		return cached, nil
	}

	debate, err := s.debates.GetByID(ctx, debateID)
	if err != nil {
		return dto.DebateResultsResponse{}, err
	}

	ledger, err := s.ledgers.Get(ctx, debateID)
	if err != nil {
		return dto.DebateResultsResponse{}, err
	}

	rankings := ledger.Rankings()
	response := dto.DebateResultsResponse{
		DebateID: debateID,
		Topic:    debate.Topic,
		Rankings: make([]dto.RankingResponse, 0, len(rankings)),
	}
	for _, entry := range rankings {
		response.Rankings = append(response.Rankings, dto.RankingResponse{
			Name:        entry.Name,
			Total:       entry.Total,
			Evaluations: entry.Evaluations,
		})
	}
	if winner, ok := ledger.Winner(); ok {
		response.Winner = winner.Name
		response.WinnerScore = winner.Total
	}

	s.results.Set(ctx, debateID, response)
	return response, nil
}

func (s *debateService) Transcript(ctx context.Context, debateID uint) ([]dto.TranscriptEntryResponse, error) {
	if _, err := s.debates.GetByID(ctx, debateID); err != nil {
		return nil, err
	}

	entries, err := s.transcripts.ListByDebate(ctx, debateID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TranscriptEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, dto.TranscriptEntryResponse{
			Speaker:     entry.Speaker,
			Role:        entry.Role,
			MessageType: entry.MessageType,
			Content:     entry.Content,
			Turn:        entry.Turn,
			CreatedAt:   entry.CreatedAt,
		})
	}
	return responses, nil
}

func debateResponse(debate models.Debate) dto.DebateResponse {
	debaters := make([]dto.DebaterResponse, 0, len(debate.Debaters))
	for _, debater := range debate.Debaters {
		debaters = append(debaters, dto.DebaterResponse{
			ID:       debater.ID,
			Name:     debater.Name,
			Stance:   debater.Stance,
			Position: debater.Position,
		})
	}

	return dto.DebateResponse{
		ID:           debate.ID,
		Topic:        debate.Topic,
		Style:        debate.Style,
		FactChecking: debate.FactChecking,
		Status:       debate.Status,
		CreatedAt:    debate.CreatedAt,
		Debaters:     debaters,
	}
}
