package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/arena-go-api/internal/dto"
	"github.com/noah-isme/arena-go-api/internal/service"
	"github.com/noah-isme/arena-go-api/internal/utils"
)

// FactCheckHandler exposes moderator fact-check and topic research endpoints.
type FactCheckHandler struct {
	service service.FactCheckService
	logger  zerolog.Logger
}

// NewFactCheckHandler constructs a fact-check handler.
func NewFactCheckHandler(service service.FactCheckService, logger zerolog.Logger) *FactCheckHandler {
	return &FactCheckHandler{
		service: service,
		logger:  logger.With().Str("component", "fact_check_handler").Logger(),
	}
}

// Register wires fact-check routes under the debates group.
func (h *FactCheckHandler) Register(router fiber.Router) {
	router.Post("/:id/fact-checks", h.factCheck)
	router.Get("/:id/fact-checks", h.list)
}

// RegisterResearch wires the standalone research endpoint.
func (h *FactCheckHandler) RegisterResearch(router fiber.Router) {
	router.Get("/research", h.research)
}

func (h *FactCheckHandler) factCheck(c *fiber.Ctx) error {
	debateID, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid debate id")
	}

	var payload dto.FactCheckRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, ok, err := h.service.FactCheck(c.Context(), debateID, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "debate not found")
		default:
			h.logger.Error().Err(err).Uint("debate_id", debateID).Msg("failed to fact check statement")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to fact check statement")
		}
	}
	if !ok {
		return utils.SendError(c, fiber.StatusConflict, "fact-checking is not enabled for this debate")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "statement fact checked", response)
}

func (h *FactCheckHandler) list(c *fiber.Ctx) error {
	debateID, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid debate id")
	}

	responses, err := h.service.ListFactChecks(c.Context(), debateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "debate not found")
		}
		h.logger.Error().Err(err).Uint("debate_id", debateID).Msg("failed to list fact checks")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list fact checks")
	}

	return utils.SendSuccess(c, "fact checks retrieved", responses)
}

func (h *FactCheckHandler) research(c *fiber.Ctx) error {
	topic := strings.TrimSpace(c.Query("topic"))
	if topic == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "topic is required")
	}

	research, err := h.service.ResearchContext(c.Context(), topic)
	if err != nil {
		h.logger.Error().Err(err).Str("topic", topic).Msg("failed to generate research context")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to generate research context")
	}

	return utils.SendSuccess(c, "research context generated", fiber.Map{
		"topic":    topic,
		"research": research,
	})
}
