package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclekeeper/internal/services"
	"go.uber.org/zap"
)

const invalidPayloadMessage = "invalid payload"

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// respondServiceError maps validation failures to 400 and missing records to
// 404. Anything else is logged and answered with failureMessage.
func (handler *Handler) respondServiceError(c *fiber.Ctx, err error, failureMessage string) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return apiError(c, fiber.StatusBadRequest, serviceErrorMessage(err))
	case errors.Is(err, services.ErrNotFound):
		return apiError(c, fiber.StatusNotFound, serviceErrorMessage(err))
	default:
		handler.log.Error(failureMessage, zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, failureMessage)
	}
}

// serviceErrorMessage drops the classification prefix from a sentinel.
func serviceErrorMessage(err error) string {
	message := err.Error()
	for _, kind := range []error{services.ErrInvalidInput, services.ErrNotFound} {
		prefix := kind.Error() + ": "
		if strings.HasPrefix(message, prefix) {
			return strings.TrimPrefix(message, prefix)
		}
	}
	return message
}

// decodeJSONBody treats an empty body as an empty object.
func decodeJSONBody(c *fiber.Ctx, target any) error {
	body := c.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	return c.App().Config().JSONDecoder(body, target)
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	parsed, err := services.ParseDateInput(*raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
