package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/arena-go-api/internal/dto"
	"github.com/noah-isme/arena-go-api/internal/models"
	"github.com/noah-isme/arena-go-api/internal/scoring"
)

type debateFixture struct {
	service     DebateService
	debates     *debateRepoStub
	transcripts *transcriptRepoStub
	ledgers     *LedgerRegistry
	results     *ResultsCache
}

func newDebateFixture(t *testing.T, results *ResultsCache) *debateFixture {
	t.Helper()

	debates := newDebateRepoStub()
	transcripts := &transcriptRepoStub{}
	ledgers := NewLedgerRegistry(debates, &evaluationRepoStub{}, testLogger())
	validate := validator.New(validator.WithRequiredStructEnabled())

	return &debateFixture{
		service:     NewDebateService(debates, transcripts, ledgers, results, validate, testLogger()),
		debates:     debates,
		transcripts: transcripts,
		ledgers:     ledgers,
		results:     results,
	}
}

func createDebateRequest() dto.CreateDebateRequest {
	return dto.CreateDebateRequest{
		Topic: "Is remote work here to stay?",
		Debaters: []dto.DebaterRequest{
			{Name: "Alice", Stance: "pro"},
			{Name: "Bob", Stance: "con"},
		},
	}
}

func TestDebateServiceCreate(t *testing.T) {
	fixture := newDebateFixture(t, nil)

	created, err := fixture.service.Create(context.Background(), createDebateRequest())
	require.NoError(t, err)

	require.NotZero(t, created.ID)
	require.Equal(t, "neutral", created.Style)
	require.Equal(t, models.DebateStatusActive, created.Status)
	require.Len(t, created.Debaters, 2)
	require.Equal(t, 0, created.Debaters[0].Position)
	require.Equal(t, 1, created.Debaters[1].Position)

	ledger, err := fixture.ledgers.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"Alice", "Bob"}, ledger.Speakers())
}

func TestDebateServiceCreateRequiresDebaters(t *testing.T) {
	fixture := newDebateFixture(t, nil)

	_, err := fixture.service.Create(context.Background(), dto.CreateDebateRequest{Topic: "Empty panel"})
	require.Error(t, err)
}

func TestDebateServiceRegisterDebater(t *testing.T) {
	fixture := newDebateFixture(t, nil)

	created, err := fixture.service.Create(context.Background(), createDebateRequest())
	require.NoError(t, err)

	debater, err := fixture.service.RegisterDebater(context.Background(), created.ID, dto.DebaterRequest{
		Name:   "Carol",
		Stance: "neutral",
	})
	require.NoError(t, err)
	require.Equal(t, 2, debater.Position)

	ledger, err := fixture.ledgers.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"Alice", "Bob", "Carol"}, ledger.Speakers())
}

func TestDebateServiceGetUnknown(t *testing.T) {
	fixture := newDebateFixture(t, nil)

	_, err := fixture.service.Get(context.Background(), 404)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDebateServiceResultsRankingOrder(t *testing.T) {
	fixture := newDebateFixture(t, nil)

	created, err := fixture.service.Create(context.Background(), createDebateRequest())
	require.NoError(t, err)

	ledger, err := fixture.ledgers.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.True(t, ledger.Record("Alice", scoring.Evaluation{OverallScore: 6.0}))
	require.True(t, ledger.Record("Bob", scoring.Evaluation{OverallScore: 8.5}))

	results, err := fixture.service.Results(context.Background(), created.ID)
	require.NoError(t, err)

	require.Equal(t, created.ID, results.DebateID)
	require.Equal(t, "Bob", results.Winner)
	require.Equal(t, 8.5, results.WinnerScore)
	require.Len(t, results.Rankings, 2)
	require.Equal(t, "Bob", results.Rankings[0].Name)
	require.Equal(t, "Alice", results.Rankings[1].Name)
}

func TestDebateServiceResultsUsesCache(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	cache := NewResultsCache(client, time.Minute, testLogger())

	fixture := newDebateFixture(t, cache)

	created, err := fixture.service.Create(context.Background(), createDebateRequest())
	require.NoError(t, err)

	ledger, err := fixture.ledgers.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.True(t, ledger.Record("Alice", scoring.Evaluation{OverallScore: 7.0}))

	first, err := fixture.service.Results(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice", first.Winner)

	// A later ledger update is invisible until the cache is invalidated.
	require.True(t, ledger.Record("Bob", scoring.Evaluation{OverallScore: 9.0}))

	cached, err := fixture.service.Results(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice", cached.Winner)

	cache.Invalidate(context.Background(), created.ID)

	fresh, err := fixture.service.Results(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "Bob", fresh.Winner)
}

func TestDebateServiceTranscript(t *testing.T) {
	fixture := newDebateFixture(t, nil)

	created, err := fixture.service.Create(context.Background(), createDebateRequest())
	require.NoError(t, err)

	entry := models.TranscriptEntry{
		DebateID:    created.ID,
		Speaker:     "Alice",
		Role:        "debater",
		MessageType: models.TranscriptTypeArgument,
		Content:     "Opening statement.",
		Turn:        1,
	}
	require.NoError(t, fixture.transcripts.Append(context.Background(), &entry))

	entries, err := fixture.service.Transcript(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Alice", entries[0].Speaker)
	require.Equal(t, models.TranscriptTypeArgument, entries[0].MessageType)
}
