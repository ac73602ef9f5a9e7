package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclekeeper/internal/db"
	"go.uber.org/zap"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	if err := db.Ping(handler.database); err != nil {
		handler.log.Warn("health check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, "not found")
}
