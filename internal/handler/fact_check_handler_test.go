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

	"github.com/noah-isme/arena-go-api/internal/dto"
	"github.com/noah-isme/arena-go-api/internal/handler"
)

type mockFactCheckService struct {
	response  dto.FactCheckResponse
	responses []dto.FactCheckResponse
	research  string
	enabled   bool
	err       error
	lastTopic string
}

func (m *mockFactCheckService) FactCheck(_ context.Context, _ uint, _ dto.FactCheckRequest) (dto.FactCheckResponse, bool, error) {
	if m.err != nil {
		return dto.FactCheckResponse{}, false, m.err
	}
	return m.response, m.enabled, nil
}

func (m *mockFactCheckService) ListFactChecks(_ context.Context, _ uint) ([]dto.FactCheckResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.responses, nil
}

func (m *mockFactCheckService) ResearchContext(_ context.Context, topic string) (string, error) {
	m.lastTopic = topic
	if m.err != nil {
		return "", m.err
	}
	return m.research, nil
}

func newFactCheckApp(svc *mockFactCheckService) *fiber.App {
	app := fiber.New()
	h := handler.NewFactCheckHandler(svc, zerolog.New(io.Discard))
	h.Register(app.Group("/api/v1/debates"))
	h.RegisterResearch(app.Group("/api/v1"))
	return app
}

func TestFactCheckHandler_Success(t *testing.T) {
	svc := &mockFactCheckService{
		enabled: true,
		response: dto.FactCheckResponse{
			Statement: "Claim.",
			Turn:      1,
			Summary:   "Source: Study\nURL: https://example.com\nContent: finding",
			Sources:   []dto.FactCheckSource{{Title: "Study", URL: "https://example.com", Content: "finding"}},
		},
	}
	app := newFactCheckApp(svc)

	req := jsonRequest(t, http.MethodPost, "/api/v1/debates/5/fact-checks", dto.FactCheckRequest{
		Statement: "Claim.",
		Turn:      1,
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		Success bool                  `json:"success"`
		Data    dto.FactCheckResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.Len(t, body.Data.Sources, 1)
	require.Equal(t, "Study", body.Data.Sources[0].Title)
}

func TestFactCheckHandler_Disabled(t *testing.T) {
	app := newFactCheckApp(&mockFactCheckService{enabled: false})

	req := jsonRequest(t, http.MethodPost, "/api/v1/debates/5/fact-checks", dto.FactCheckRequest{
		Statement: "Claim.",
		Turn:      1,
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestFactCheckHandler_List(t *testing.T) {
	svc := &mockFactCheckService{responses: []dto.FactCheckResponse{{Statement: "Claim."}}}
	app := newFactCheckApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/debates/5/fact-checks", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestFactCheckHandler_Research(t *testing.T) {
	svc := &mockFactCheckService{research: "## Research on: remote work\n"}
	app := newFactCheckApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/research?topic=remote+work", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "remote work", svc.lastTopic)
}

func TestFactCheckHandler_ResearchMissingTopic(t *testing.T) {
	app := newFactCheckApp(&mockFactCheckService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/research", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
