package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/arena-go-api/internal/dto"
	"github.com/noah-isme/arena-go-api/internal/handler"
)

type mockModeratorService struct {
	evaluation   dto.EvaluationResponse
	evaluations  []dto.EvaluationResponse
	err          error
	lastDebateID uint
	lastRequest  dto.EvaluateArgumentRequest
}

func (m *mockModeratorService) EvaluateArgument(_ context.Context, debateID uint, req dto.EvaluateArgumentRequest) (dto.EvaluationResponse, error) {
	m.lastDebateID = debateID
	m.lastRequest = req
	if m.err != nil {
		return dto.EvaluationResponse{}, m.err
	}
	return m.evaluation, nil
}

func (m *mockModeratorService) ListEvaluations(_ context.Context, debateID uint) ([]dto.EvaluationResponse, error) {
	m.lastDebateID = debateID
	if m.err != nil {
		return nil, m.err
	}
	return m.evaluations, nil
}

func newEvaluationApp(svc *mockModeratorService) *fiber.App {
	app := fiber.New()
	handler.NewEvaluationHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/debates"))
	return app
}

func TestEvaluationHandler_EvaluateSuccess(t *testing.T) {
	svc := &mockModeratorService{evaluation: dto.EvaluationResponse{
		DebateID:     3,
		Speaker:      "Alice",
		Turn:         1,
		OverallScore: 7.7,
		CriteriaScores: map[string]float64{
			"clarity": 8.0, "evidence": 7.5, "reasoning": 9.0, "persuasiveness": 6.0, "relevance": 8.0,
		},
	}}
	app := newEvaluationApp(svc)

	req := jsonRequest(t, http.MethodPost, "/api/v1/debates/3/arguments", dto.EvaluateArgumentRequest{
		Speaker:  "Alice",
		Argument: "Opening case.",
		Turn:     1,
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		Success bool                   `json:"success"`
		Data    dto.EvaluationResponse `json:"data"`
		Message string                 `json:"message"`
	}
	decodeResponse(t, resp, &body)

	require.True(t, body.Success)
	require.Equal(t, "argument evaluated", body.Message)
	require.Equal(t, 7.7, body.Data.OverallScore)
	require.Empty(t, body.Data.FallbackReason)
	require.Equal(t, uint(3), svc.lastDebateID)
	require.Equal(t, "Alice", svc.lastRequest.Speaker)
}

func TestEvaluationHandler_EvaluateUnknownDebate(t *testing.T) {
	svc := &mockModeratorService{err: gorm.ErrRecordNotFound}
	app := newEvaluationApp(svc)

	req := jsonRequest(t, http.MethodPost, "/api/v1/debates/99/arguments", dto.EvaluateArgumentRequest{
		Speaker:  "Alice",
		Argument: "Anything.",
		Turn:     1,
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestEvaluationHandler_EvaluateInvalidID(t *testing.T) {
	app := newEvaluationApp(&mockModeratorService{})

	req := jsonRequest(t, http.MethodPost, "/api/v1/debates/0/arguments", dto.EvaluateArgumentRequest{
		Speaker:  "Alice",
		Argument: "Anything.",
		Turn:     1,
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestEvaluationHandler_List(t *testing.T) {
	svc := &mockModeratorService{evaluations: []dto.EvaluationResponse{
		{Speaker: "Alice", Turn: 1, OverallScore: 7.7},
		{Speaker: "Bob", Turn: 1, OverallScore: 6.9, FallbackReason: "parse_error"},
	}}
	app := newEvaluationApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/debates/3/evaluations", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success bool                     `json:"success"`
		Data    []dto.EvaluationResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.Len(t, body.Data, 2)
	require.Equal(t, "parse_error", body.Data[1].FallbackReason)
}
