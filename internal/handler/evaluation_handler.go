package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/arena-go-api/internal/dto"
	"github.com/noah-isme/arena-go-api/internal/service"
	"github.com/noah-isme/arena-go-api/internal/utils"
)

// EvaluationHandler exposes the argument evaluation endpoints.
type EvaluationHandler struct {
	service service.ModeratorService
	logger  zerolog.Logger
}

// NewEvaluationHandler constructs an evaluation handler.
func NewEvaluationHandler(service service.ModeratorService, logger zerolog.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		service: service,
		logger:  logger.With().Str("component", "evaluation_handler").Logger(),
	}
}

// Register wires evaluation routes.
func (h *EvaluationHandler) Register(router fiber.Router) {
	router.Post("/:id/arguments", h.evaluate)
	router.Get("/:id/evaluations", h.list)
}

func (h *EvaluationHandler) evaluate(c *fiber.Ctx) error {
	debateID, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid debate id")
	}

	var payload dto.EvaluateArgumentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.EvaluateArgument(c.Context(), debateID, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "debate not found")
		default:
			requestLogger(h.logger, c).Error().Err(err).Uint("debate_id", debateID).Msg("failed to evaluate argument")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to evaluate argument")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "argument evaluated", response)
}

func (h *EvaluationHandler) list(c *fiber.Ctx) error {
	debateID, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid debate id")
	}

	responses, err := h.service.ListEvaluations(c.Context(), debateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "debate not found")
		}
		h.logger.Error().Err(err).Uint("debate_id", debateID).Msg("failed to list evaluations")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list evaluations")
	}

	return utils.SendSuccess(c, "evaluations retrieved", responses)
}
