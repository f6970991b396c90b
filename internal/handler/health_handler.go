package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Pinger is an interface for health check ping operations.
type Pinger interface {
	Ping() error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	store Pinger
}

// NewHealthHandler creates a new HealthHandler with the given archive store.
func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// Check performs a health check by pinging the archive store.
// Returns 200 OK with {"status": "healthy"} when the store is usable.
// Returns 503 Service Unavailable with {"status": "unhealthy", "error": "..."} otherwise.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	if err := h.store.Ping(); err != nil {
		log.Error().Err(err).Msg("health check failed: archive store unavailable")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
			"error":  "archive store unavailable",
		})
	}
	return c.JSON(fiber.Map{
		"status": "healthy",
	})
}
