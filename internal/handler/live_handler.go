package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/arena-go-api/internal/service"
	"github.com/noah-isme/arena-go-api/internal/utils"
)

// LiveHandler upgrades subscribers onto the live evaluation feed.
type LiveHandler struct {
	live   *service.LiveService
	logger zerolog.Logger
}

// NewLiveHandler constructs a live feed handler.
func NewLiveHandler(live *service.LiveService, logger zerolog.Logger) *LiveHandler {
	return &LiveHandler{
		live:   live,
		logger: logger.With().Str("component", "live_handler").Logger(),
	}
}

// Register wires the websocket route under the debates group.
func (h *LiveHandler) Register(router fiber.Router) {
	router.Get("/:id/live", h.upgrade, websocket.New(h.serve))
}

// upgrade validates the request before the websocket handshake. The debate id
// is stashed in locals because path params are not available inside the
// websocket handler.
func (h *LiveHandler) upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return utils.SendError(c, fiber.StatusUpgradeRequired, "websocket upgrade required")
	}

	debateID, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid debate id")
	}

	c.Locals("debate_id", debateID)
	return c.Next()
}

func (h *LiveHandler) serve(conn *websocket.Conn) {
	debateID, ok := conn.Locals("debate_id").(uint)
	if !ok || debateID == 0 {
		_ = conn.Close()
		return
	}

	h.logger.Debug().Uint("debate_id", debateID).Msg("live subscriber connected")
	h.live.ServeConnection(conn, debateID)
	h.logger.Debug().Uint("debate_id", debateID).Msg("live subscriber disconnected")
}
