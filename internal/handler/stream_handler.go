package handler

import (
	"insightsmith-be/internal/pkg/logger"
	"insightsmith-be/internal/repository/memory"
	internalWS "insightsmith-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// StreamHandler upgrades clients to a one-way websocket feed of chat
// lifecycle events for a single session.
type StreamHandler struct {
	repo   *memory.SessionRepository
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewStreamHandler(repo *memory.SessionRepository, hub *internalWS.Hub, log logger.ILogger) *StreamHandler {
	return &StreamHandler{
		repo:   repo,
		hub:    hub,
		logger: log,
	}
}

func (h *StreamHandler) RegisterRoutes(r fiber.Router) {
	g := r.Group("/stream/v1")
	g.Get("session/:id", h.ServeWs)
}

func (h *StreamHandler) ServeWs(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID format"})
	}

	if _, ok := h.repo.Get(sessionID); !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("StreamHandler", "Starting WebSocket session", map[string]interface{}{"session_id": sessionID})
			internalWS.ServeWs(h.hub, conn, sessionID)
			h.logger.Info("StreamHandler", "WebSocket session ended", map[string]interface{}{"session_id": sessionID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}
