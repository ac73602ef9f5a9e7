package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclekeeper/internal/services"
)

type createCyclePayload struct {
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	Notes     string  `json:"notes"`
}

type updateCyclePayload struct {
	ID      uint    `json:"id"`
	EndDate *string `json:"endDate"`
	Notes   *string `json:"notes"`
}

func (handler *Handler) GetCycles(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	limit := handler.defaultCycleLimit
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return handler.respondServiceError(c, services.ErrInvalidCycleLimit, "failed to load cycles")
		}
		limit = parsed
	}

	cycles, prediction, err := handler.cycles.ListCyclesWithPrediction(userID, limit, handler.today())
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load cycles")
	}
	handler.metrics.PredictionServed(prediction.CurrentPhase)

	return c.JSON(fiber.Map{
		"cycles":      buildCycleViews(cycles),
		"predictions": buildPredictionView(prediction),
	})
}

func (handler *Handler) CreateCycle(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := createCyclePayload{}
	if err := decodeJSONBody(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, invalidPayloadMessage)
	}

	startDate, err := parseOptionalDate(payload.StartDate)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to create cycle")
	}
	endDate, err := parseOptionalDate(payload.EndDate)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to create cycle")
	}

	cycle, err := handler.cycles.CreateCycle(userID, services.CreateCycleInput{
		StartDate: startDate,
		EndDate:   endDate,
		Notes:     payload.Notes,
	})
	if err != nil {
		return handler.respondServiceError(c, err, "failed to create cycle")
	}
	handler.metrics.CycleCreated()

	return c.Status(fiber.StatusCreated).JSON(buildCycleView(cycle))
}

func (handler *Handler) UpdateCycle(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := updateCyclePayload{}
	if err := decodeJSONBody(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, invalidPayloadMessage)
	}

	endDate, err := parseOptionalDate(payload.EndDate)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to update cycle")
	}

	cycle, err := handler.cycles.UpdateCycle(userID, services.UpdateCycleInput{
		ID:      payload.ID,
		EndDate: endDate,
		Notes:   payload.Notes,
	})
	if err != nil {
		return handler.respondServiceError(c, err, "failed to update cycle")
	}
	handler.metrics.CycleUpdated()

	return c.JSON(buildCycleView(cycle))
}
