package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/noah-isme/arena-go-api/internal/dto"
	"github.com/noah-isme/arena-go-api/internal/models"
	"github.com/noah-isme/arena-go-api/internal/observability"
	"github.com/noah-isme/arena-go-api/internal/prompts"
	"github.com/noah-isme/arena-go-api/internal/repository"
	"github.com/noah-isme/arena-go-api/internal/scoring"
	"github.com/noah-isme/arena-go-api/pkg/ai"
)

// LLM sampling parameters for argument evaluation. Low temperature keeps
// scores consistent between calls.
const (
	evalTemperature float32 = 0.2
	evalMaxTokens           = 1000
	evalTopP        float32 = 0.9
)

// ModeratorService runs the argument evaluation pipeline: prompt the LLM,
// parse defensively, fall back to a placeholder evaluation on any failure,
// and record the outcome into the debate's score ledger. Pipeline failures
// never propagate to the caller; only an unknown debate or an invalid
// request yields an error.
type ModeratorService interface {
	EvaluateArgument(ctx context.Context, debateID uint, req dto.EvaluateArgumentRequest) (dto.EvaluationResponse, error)
	ListEvaluations(ctx context.Context, debateID uint) ([]dto.EvaluationResponse, error)
}

type moderatorService struct {
	debates     repository.DebateRepository
	evaluations repository.EvaluationRepository
	transcripts repository.TranscriptRepository
	ledgers     *LedgerRegistry
	completer   ai.Completer
	parser      *scoring.Parser
	placeholder *scoring.Placeholder
	sanitizer   *bluemonday.Policy
	validator   *validator.Validate
	live        *LiveService
	results     *ResultsCache
	provider    string
	logger      zerolog.Logger
}

// NewModeratorService constructs the evaluation pipeline. A nil completer
// means no LLM credential is configured; every evaluation then takes the
// placeholder path.
func NewModeratorService(
	debates repository.DebateRepository,
	evaluations repository.EvaluationRepository,
	transcripts repository.TranscriptRepository,
	ledgers *LedgerRegistry,
	completer ai.Completer,
	provider string,
	live *LiveService,
	results *ResultsCache,
	validate *validator.Validate,
	logger zerolog.Logger,
) ModeratorService {
	componentLogger := logger.With().Str("component", "moderator_service").Logger()

	return &moderatorService{
		debates:     debates,
		evaluations: evaluations,
		transcripts: transcripts,
		ledgers:     ledgers,
		completer:   completer,
		parser:      scoring.NewParser(componentLogger),
		placeholder: scoring.NewPlaceholder(),
		sanitizer:   bluemonday.StrictPolicy(),
		validator:   validate,
		live:        live,
		results:     results,
		provider:    provider,
		logger:      componentLogger,
	}
}

func (s *moderatorService) EvaluateArgument(ctx context.Context, debateID uint, req dto.EvaluateArgumentRequest) (dto.EvaluationResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.EvaluationResponse{}, err
	}

	debate, err := s.debates.GetByID(ctx, debateID)
	if err != nil {
		return dto.EvaluationResponse{}, err
	}

	ledger, err := s.ledgers.Get(ctx, debateID)
	if err != nil {
		return dto.EvaluationResponse{}, err
	}

	argument := strings.TrimSpace(s.sanitizer.Sanitize(req.Argument))
	if argument == "" {
		argument = req.Argument
	}

	start := time.Now()
	evaluation, fallbackReason := s.runPipeline(ctx, debate.Topic, req.Speaker, argument, req.Turn)
	observability.EvaluationLatency().Observe(time.Since(start).Seconds())

	// Defensive double-check before recording.
	if evaluation.OverallScore <= 0 {
		s.logger.Warn().Str("speaker", req.Speaker).Float64("score", evaluation.OverallScore).
			Msg("invalid overall score, regenerating via placeholder")
		evaluation = s.placeholder.Evaluate(req.Speaker, req.Turn)
		if fallbackReason == models.FallbackNone {
			fallbackReason = models.FallbackParseError
		}
	}

	if fallbackReason == models.FallbackNone {
		observability.Evaluations().WithLabelValues("parsed").Inc()
	} else {
		observability.Evaluations().WithLabelValues("fallback").Inc()
		observability.EvaluationFallbacks().WithLabelValues(fallbackReason).Inc()
	}

	// Ledger update is a best-effort side effect keyed by membership: the
	// evaluation is returned either way.
	if recorded := ledger.Record(req.Speaker, evaluation); recorded {
		s.results.Invalidate(ctx, debateID)
	}

	record := s.persist(ctx, debateID, argument, evaluation, fallbackReason)
	response := evaluationResponse(debateID, record, evaluation, fallbackReason)

	if s.live != nil {
		s.live.PublishEvaluation(debateID, response)
	}

	return response, nil
}

// runPipeline produces an evaluation via the LLM or, on any failure, the
// placeholder evaluator. The second return names the fallback reason, empty
// when the LLM response parsed cleanly.
func (s *moderatorService) runPipeline(ctx context.Context, topic, speaker, argument string, turn int) (scoring.Evaluation, string) {
	if s.completer == nil {
		s.logger.Warn().Str("speaker", speaker).Msg("no LLM completer configured, using placeholder evaluation")
		return s.placeholder.Evaluate(speaker, turn), models.FallbackLLMUnavailable
	}

	request := ai.CompletionRequest{
		System:      prompts.EvaluationSystem(),
		User:        prompts.EvaluationRequest(topic, speaker, argument, turn),
		Temperature: evalTemperature,
		MaxTokens:   evalMaxTokens,
		TopP:        evalTopP,
	}

	raw, err := s.completer.Complete(ctx, request)
	if err != nil {
		s.logger.Error().Err(err).Str("speaker", speaker).Msg("LLM evaluation call failed, using placeholder")
		return s.placeholder.Evaluate(speaker, turn), models.FallbackLLMError
	}
	if strings.TrimSpace(raw) == "" {
		s.logger.Error().Str("speaker", speaker).Msg("LLM returned empty evaluation, using placeholder")
		return s.placeholder.Evaluate(speaker, turn), models.FallbackLLMError
	}

	evaluation, err := s.parser.Parse(raw, speaker, turn)
	if err != nil {
		s.logger.Warn().Err(err).Str("speaker", speaker).Str("response_head", head(raw, 200)).
			Msg("failed to parse evaluation response, using placeholder")
		return s.placeholder.Evaluate(speaker, turn), models.FallbackParseError
	}

	s.logger.Info().Str("speaker", speaker).Float64("score", evaluation.OverallScore).
		Msg("argument evaluated")
	return evaluation, models.FallbackNone
}

// persist stores the evaluation and its transcript entry. Persistence
// failures are logged but never surfaced: the debate must keep progressing.
func (s *moderatorService) persist(ctx context.Context, debateID uint, argument string, evaluation scoring.Evaluation, fallbackReason string) models.Evaluation {
	record := evaluationToModel(debateID, evaluation, fallbackReason, s.provider)
	if err := s.evaluations.Create(ctx, &record); err != nil {
		s.logger.Error().Err(err).Uint("debate_id", debateID).Msg("failed to persist evaluation")
	}

	entry := models.TranscriptEntry{
		DebateID:    debateID,
		Speaker:     evaluation.Speaker,
		Role:        "debater",
		MessageType: models.TranscriptTypeArgument,
		Content:     argument,
		Turn:        evaluation.Turn,
	}
	if err := s.transcripts.Append(ctx, &entry); err != nil {
		s.logger.Error().Err(err).Uint("debate_id", debateID).Msg("failed to append transcript entry")
	}

	return record
}

func (s *moderatorService) ListEvaluations(ctx context.Context, debateID uint) ([]dto.EvaluationResponse, error) {
	if _, err := s.debates.GetByID(ctx, debateID); err != nil {
		return nil, err
	}

	records, err := s.evaluations.ListByDebate(ctx, debateID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.EvaluationResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, evaluationResponseFromModel(record))
	}
	return responses, nil
}

func evaluationToModel(debateID uint, evaluation scoring.Evaluation, fallbackReason, provider string) models.Evaluation {
	scores := make(datatypes.JSONMap, len(evaluation.CriteriaScores))
	for criterion, score := range evaluation.CriteriaScores {
		scores[string(criterion)] = score
	}

	strengths, _ := json.Marshal(evaluation.Strengths)
	weaknesses, _ := json.Marshal(evaluation.Weaknesses)

	return models.Evaluation{
		DebateID:       debateID,
		Speaker:        evaluation.Speaker,
		Turn:           evaluation.Turn,
		OverallScore:   evaluation.OverallScore,
		CriteriaScores: scores,
		Strengths:      datatypes.JSON(strengths),
		Weaknesses:     datatypes.JSON(weaknesses),
		Reasoning:      evaluation.Reasoning,
		FallbackReason: fallbackReason,
		Provider:       provider,
	}
}

func evaluationResponse(debateID uint, record models.Evaluation, evaluation scoring.Evaluation, fallbackReason string) dto.EvaluationResponse {
	scores := make(map[string]float64, len(evaluation.CriteriaScores))
	for criterion, score := range evaluation.CriteriaScores {
		scores[string(criterion)] = score
	}

	return dto.EvaluationResponse{
		ID:             record.ID,
		DebateID:       debateID,
		Speaker:        evaluation.Speaker,
		Turn:           evaluation.Turn,
		OverallScore:   evaluation.OverallScore,
		CriteriaScores: scores,
		Strengths:      evaluation.Strengths,
		Weaknesses:     evaluation.Weaknesses,
		Reasoning:      evaluation.Reasoning,
		FallbackReason: fallbackReason,
		CreatedAt:      record.CreatedAt,
	}
}

func evaluationResponseFromModel(record models.Evaluation) dto.EvaluationResponse {
	scores := make(map[string]float64, len(record.CriteriaScores))
	for criterion, value := range record.CriteriaScores {
		scores[criterion] = scoring.Normalize(value)
	}

	return dto.EvaluationResponse{
		ID:             record.ID,
		DebateID:       record.DebateID,
		Speaker:        record.Speaker,
		Turn:           record.Turn,
		OverallScore:   record.OverallScore,
		CriteriaScores: scores,
		Strengths:      decodeStringList(record.Strengths),
		Weaknesses:     decodeStringList(record.Weaknesses),
		Reasoning:      record.Reasoning,
		FallbackReason: record.FallbackReason,
		CreatedAt:      record.CreatedAt,
	}
}

func head(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}
