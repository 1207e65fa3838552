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

// DebateHandler exposes debate lifecycle endpoints.
type DebateHandler struct {
	service service.DebateService
	logger  zerolog.Logger
}

// NewDebateHandler constructs a debate handler.
func NewDebateHandler(service service.DebateService, logger zerolog.Logger) *DebateHandler {
	return &DebateHandler{
		service: service,
		logger:  logger.With().Str("component", "debate_handler").Logger(),
	}
}

// Register wires debate routes.
func (h *DebateHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Post("/:id/debaters", h.registerDebater)
	router.Get("/:id/results", h.results)
	router.Get("/:id/transcript", h.transcript)
}

func (h *DebateHandler) create(c *fiber.Ctx) error {
	var payload dto.CreateDebateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Create(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		}
		h.logger.Error().Err(err).Msg("failed to create debate")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create debate")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "debate created", response)
}

func (h *DebateHandler) get(c *fiber.Ctx) error {
	debateID, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid debate id")
	}

	response, err := h.service.Get(c.Context(), debateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "debate not found")
		}
		h.logger.Error().Err(err).Uint("debate_id", debateID).Msg("failed to load debate")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load debate")
	}

	return utils.SendSuccess(c, "debate retrieved", response)
}

func (h *DebateHandler) registerDebater(c *fiber.Ctx) error {
	debateID, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid debate id")
	}

	var payload dto.DebaterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.RegisterDebater(c.Context(), debateID, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "debate not found")
		default:
			h.logger.Error().Err(err).Uint("debate_id", debateID).Msg("failed to register debater")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to register debater")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "debater registered", response)
}

func (h *DebateHandler) results(c *fiber.Ctx) error {
	debateID, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid debate id")
	}

	response, err := h.service.Results(c.Context(), debateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "debate not found")
		}
		h.logger.Error().Err(err).Uint("debate_id", debateID).Msg("failed to compute debate results")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to compute debate results")
	}

	return utils.SendSuccess(c, "debate results retrieved", response)
}

func (h *DebateHandler) transcript(c *fiber.Ctx) error {
	debateID, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid debate id")
	}

	entries, err := h.service.Transcript(c.Context(), debateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "debate not found")
		}
		h.logger.Error().Err(err).Uint("debate_id", debateID).Msg("failed to load transcript")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load transcript")
	}

	return utils.SendSuccess(c, "transcript retrieved", entries)
}
