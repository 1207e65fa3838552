package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/arena-go-api/internal/dto"
	"github.com/noah-isme/arena-go-api/internal/models"
	"github.com/noah-isme/arena-go-api/pkg/tavily"
)

type searcherStub struct {
	results   []tavily.Result
	err       error
	lastQuery string
	lastDepth string
	lastMax   int
	callCount int
}

func (s *searcherStub) Search(_ context.Context, query, depth string, maxResults int) ([]tavily.Result, error) {
	s.callCount++
	s.lastQuery = query
	s.lastDepth = depth
	s.lastMax = maxResults
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func newFactCheckFixture(t *testing.T, searcher Searcher, factChecking bool) (FactCheckService, *factCheckRepoStub, *transcriptRepoStub, uint) {
	t.Helper()

	debates := newDebateRepoStub()
	records := &factCheckRepoStub{}
	transcripts := &transcriptRepoStub{}
	validate := validator.New(validator.WithRequiredStructEnabled())

	debate := models.Debate{
		Topic:        "Does coffee improve productivity?",
		FactChecking: factChecking,
		Debaters:     []models.Debater{{Name: "Alice", Position: 0}},
	}
	require.NoError(t, debates.Create(context.Background(), &debate))

	service := NewFactCheckService(debates, records, transcripts, searcher, validate, testLogger())
	return service, records, transcripts, debate.ID
}

func TestFactCheckDisabledForDebate(t *testing.T) {
	searcher := &searcherStub{results: []tavily.Result{{Title: "t", URL: "u", Content: "c"}}}
	service, records, transcripts, debateID := newFactCheckFixture(t, searcher, false)

	_, ok, err := service.FactCheck(context.Background(), debateID, dto.FactCheckRequest{
		Statement: "Coffee doubles output.",
		Turn:      1,
	})
	require.NoError(t, err)
	require.False(t, ok)
	require.Zero(t, searcher.callCount)
	require.Empty(t, records.created)
	require.Empty(t, transcripts.entries)
}

func TestFactCheckWithoutSearcher(t *testing.T) {
	service, _, _, debateID := newFactCheckFixture(t, nil, true)

	_, ok, err := service.FactCheck(context.Background(), debateID, dto.FactCheckRequest{
		Statement: "Coffee doubles output.",
		Turn:      1,
	})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFactCheckFormatsAndPersistsSources(t *testing.T) {
	long := strings.Repeat("x", 300)
	searcher := &searcherStub{results: []tavily.Result{
		{Title: "Study A", URL: "https://example.com/a", Content: long},
		{Title: "Study B", URL: "https://example.com/b", Content: "short finding"},
	}}
	service, records, transcripts, debateID := newFactCheckFixture(t, searcher, true)

	resp, ok, err := service.FactCheck(context.Background(), debateID, dto.FactCheckRequest{
		Statement: "Coffee improves focus.",
		Turn:      2,
	})
	require.NoError(t, err)
	require.True(t, ok)

	require.Equal(t, "fact check: Coffee improves focus.", searcher.lastQuery)
	require.Equal(t, tavily.DepthAdvanced, searcher.lastDepth)
	require.Equal(t, 3, searcher.lastMax)

	require.Len(t, resp.Sources, 2)
	require.Equal(t, "Study A", resp.Sources[0].Title)
	require.Len(t, resp.Sources[0].Content, 253)
	require.True(t, strings.HasSuffix(resp.Sources[0].Content, "..."))
	require.Equal(t, "short finding", resp.Sources[1].Content)

	require.Contains(t, resp.Summary, "Source: Study A")
	require.Contains(t, resp.Summary, "URL: https://example.com/b")

	require.Len(t, records.created, 1)
	require.Equal(t, debateID, records.created[0].DebateID)
	require.Equal(t, 2, records.created[0].Turn)

	require.Len(t, transcripts.entries, 1)
	require.Equal(t, models.TranscriptTypeFactCheck, transcripts.entries[0].MessageType)
	require.Equal(t, "Moderator", transcripts.entries[0].Speaker)

	listed, err := service.ListFactChecks(context.Background(), debateID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Len(t, listed[0].Sources, 2)
}

func TestFactCheckNoResults(t *testing.T) {
	searcher := &searcherStub{}
	service, records, transcripts, debateID := newFactCheckFixture(t, searcher, true)

	resp, ok, err := service.FactCheck(context.Background(), debateID, dto.FactCheckRequest{
		Statement: "Unverifiable claim.",
		Turn:      1,
	})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, factCheckNoResults, resp.Summary)
	require.Empty(t, resp.Sources)
	require.Empty(t, records.created)
	require.Empty(t, transcripts.entries)
}

func TestFactCheckSearchErrorDegrades(t *testing.T) {
	searcher := &searcherStub{err: errors.New("rate limited")}
	service, records, transcripts, debateID := newFactCheckFixture(t, searcher, true)

	resp, ok, err := service.FactCheck(context.Background(), debateID, dto.FactCheckRequest{
		Statement: "Contested claim.",
		Turn:      3,
	})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, factCheckFailed, resp.Summary)
	require.Empty(t, records.created)
	require.Empty(t, transcripts.entries)
}

func TestFactCheckValidatesRequest(t *testing.T) {
	service, _, _, debateID := newFactCheckFixture(t, &searcherStub{}, true)

	_, _, err := service.FactCheck(context.Background(), debateID, dto.FactCheckRequest{Turn: 1})
	require.Error(t, err)
}

func TestResearchContextFormatsSources(t *testing.T) {
	long := strings.Repeat("y", 600)
	searcher := &searcherStub{results: []tavily.Result{
		{Title: "Overview", URL: "https://example.com/overview", Content: long},
		{Title: "", URL: "", Content: "brief"},
	}}
	service, _, _, _ := newFactCheckFixture(t, searcher, true)

	research, err := service.ResearchContext(context.Background(), "remote work")
	require.NoError(t, err)

	require.Equal(t, "remote work", searcher.lastQuery)
	require.Contains(t, research, "## Research on: remote work")
	require.Contains(t, research, "### Source 1: Overview")
	require.Contains(t, research, "### Source 2: Unknown source")
	require.Contains(t, research, "URL: No URL")
	require.Contains(t, research, strings.Repeat("y", 500)+"...")
}

func TestResearchContextWithoutSearcher(t *testing.T) {
	service, _, _, _ := newFactCheckFixture(t, nil, true)

	research, err := service.ResearchContext(context.Background(), "anything")
	require.NoError(t, err)
	require.Empty(t, research)
}
