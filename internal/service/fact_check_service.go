package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/noah-isme/arena-go-api/internal/dto"
	"github.com/noah-isme/arena-go-api/internal/models"
	"github.com/noah-isme/arena-go-api/internal/observability"
	"github.com/noah-isme/arena-go-api/internal/repository"
	"github.com/noah-isme/arena-go-api/pkg/tavily"
)

// Fixed degradation texts returned instead of an error. A flaky search
// backend must not interrupt a running debate.
const (
	factCheckNoResults = "I attempted to fact check this statement, but couldn't find relevant information."
	factCheckFailed    = "I attempted to fact check this statement, but encountered an error."
)

const (
	factCheckMaxResults = 3
	factCheckSnippetLen = 250
	researchMaxResults  = 3
	researchSnippetLen  = 500
)

// Searcher is the external search collaborator consumed by fact checking.
type Searcher interface {
	Search(ctx context.Context, query, depth string, maxResults int) ([]tavily.Result, error)
}

// FactCheckService wraps the search collaborator for moderator fact checks
// and topic research. A nil searcher means fact-checking is disabled.
type FactCheckService interface {
	FactCheck(ctx context.Context, debateID uint, req dto.FactCheckRequest) (dto.FactCheckResponse, bool, error)
	ListFactChecks(ctx context.Context, debateID uint) ([]dto.FactCheckResponse, error)
	ResearchContext(ctx context.Context, topic string) (string, error)
}

type factCheckService struct {
	debates     repository.DebateRepository
	records     repository.FactCheckRepository
	transcripts repository.TranscriptRepository
	searcher    Searcher
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewFactCheckService constructs the fact-check adapter.
func NewFactCheckService(
	debates repository.DebateRepository,
	records repository.FactCheckRepository,
	transcripts repository.TranscriptRepository,
	searcher Searcher,
	validate *validator.Validate,
	logger zerolog.Logger,
) FactCheckService {
	return &factCheckService{
		debates:     debates,
		records:     records,
		transcripts: transcripts,
		searcher:    searcher,
		validator:   validate,
		logger:      logger.With().Str("component", "fact_check_service").Logger(),
	}
}

// FactCheck searches for sources backing the statement. The boolean return
// is false when fact-checking is disabled for the debate or no searcher is
// configured; that is not an error. Search failures degrade to a fixed
// human-readable message rather than propagating.
func (s *factCheckService) FactCheck(ctx context.Context, debateID uint, req dto.FactCheckRequest) (dto.FactCheckResponse, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.FactCheckResponse{}, false, err
	}

	debate, err := s.debates.GetByID(ctx, debateID)
	if err != nil {
		return dto.FactCheckResponse{}, false, err
	}

	if s.searcher == nil || !debate.FactChecking {
		observability.FactCheckRequests().WithLabelValues("disabled").Inc()
		return dto.FactCheckResponse{}, false, nil
	}

	query := "fact check: " + req.Statement
	results, err := s.searcher.Search(ctx, query, tavily.DepthAdvanced, factCheckMaxResults)
	if err != nil {
		observability.FactCheckRequests().WithLabelValues("error").Inc()
		s.logger.Error().Err(err).Uint("debate_id", debateID).Msg("fact check search failed")
		return dto.FactCheckResponse{
			Statement: req.Statement,
			Turn:      req.Turn,
			Summary:   factCheckFailed,
			Sources:   []dto.FactCheckSource{},
		}, true, nil
	}

	if len(results) == 0 {
		observability.FactCheckRequests().WithLabelValues("empty").Inc()
		return dto.FactCheckResponse{
			Statement: req.Statement,
			Turn:      req.Turn,
			Summary:   factCheckNoResults,
			Sources:   []dto.FactCheckSource{},
		}, true, nil
	}

	sources := make([]dto.FactCheckSource, 0, len(results))
	for _, result := range results {
		sources = append(sources, dto.FactCheckSource{
			Title:   result.Title,
			URL:     result.URL,
			Content: snippet(result.Content, factCheckSnippetLen),
		})
	}

	record := models.FactCheck{
		DebateID:  debateID,
		Statement: req.Statement,
		Turn:      req.Turn,
		Sources:   marshalSources(sources),
	}
	if err := s.records.Create(ctx, &record); err != nil {
		s.logger.Error().Err(err).Uint("debate_id", debateID).Msg("failed to persist fact check")
	}

	summary := formatSources(sources)
	entry := models.TranscriptEntry{
		DebateID:    debateID,
		Speaker:     "Moderator",
		Role:        "moderator",
		MessageType: models.TranscriptTypeFactCheck,
		Content:     summary,
		Turn:        req.Turn,
	}
	if err := s.transcripts.Append(ctx, &entry); err != nil {
		s.logger.Error().Err(err).Uint("debate_id", debateID).Msg("failed to append fact check transcript entry")
	}

	observability.FactCheckRequests().WithLabelValues("ok").Inc()
	return dto.FactCheckResponse{
		Statement: req.Statement,
		Turn:      req.Turn,
		Summary:   summary,
		Sources:   sources,
		CreatedAt: record.CreatedAt,
	}, true, nil
}

func (s *factCheckService) ListFactChecks(ctx context.Context, debateID uint) ([]dto.FactCheckResponse, error) {
	if _, err := s.debates.GetByID(ctx, debateID); err != nil {
		return nil, err
	}

	records, err := s.records.ListByDebate(ctx, debateID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.FactCheckResponse, 0, len(records))
	for _, record := range records {
		var sources []dto.FactCheckSource
		if len(record.Sources) > 0 {
			_ = json.Unmarshal(record.Sources, &sources)
		}
		responses = append(responses, dto.FactCheckResponse{
			Statement: record.Statement,
			Turn:      record.Turn,
			Summary:   formatSources(sources),
			Sources:   sources,
			CreatedAt: record.CreatedAt,
		})
	}
	return responses, nil
}

// ResearchContext builds a formatted research summary for a debate topic.
// An unconfigured searcher yields an empty string, not an error.
func (s *factCheckService) ResearchContext(ctx context.Context, topic string) (string, error) {
	if s.searcher == nil {
		s.logger.Warn().Msg("search collaborator not configured, cannot generate research context")
		return "", nil
	}

	results, err := s.searcher.Search(ctx, topic, tavily.DepthAdvanced, researchMaxResults)
	if err != nil {
		s.logger.Error().Err(err).Str("topic", topic).Msg("research search failed")
		return fmt.Sprintf("Error generating research context: %v", err), nil
	}

	builder := strings.Builder{}
	builder.WriteString(fmt.Sprintf("## Research on: %s\n\n", topic))
	for i, result := range results {
		builder.WriteString(fmt.Sprintf("### Source %d: %s\n", i+1, orDefault(result.Title, "Unknown source")))
		builder.WriteString(fmt.Sprintf("URL: %s\n\n", orDefault(result.URL, "No URL")))
		builder.WriteString(snippet(result.Content, researchSnippetLen))
		builder.WriteString("\n\n")
	}
	return builder.String(), nil
}

func formatSources(sources []dto.FactCheckSource) string {
	if len(sources) == 0 {
		return factCheckNoResults
	}

	blocks := make([]string, 0, len(sources))
	for _, source := range sources {
		blocks = append(blocks, fmt.Sprintf("Source: %s\nURL: %s\nContent: %s", source.Title, source.URL, source.Content))
	}
	return strings.Join(blocks, "\n\n")
}

func marshalSources(sources []dto.FactCheckSource) datatypes.JSON {
	payload, err := json.Marshal(sources)
	if err != nil {
		return nil
	}
	return datatypes.JSON(payload)
}

func snippet(content string, limit int) string {
	if len(content) <= limit {
		return content
	}
	return content[:limit] + "..."
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
