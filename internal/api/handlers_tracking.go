package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclekeeper/internal/services"
)

type trackingPayload struct {
	Date *string `json:"date"`
	services.DailyObservation
	Symptoms []services.SymptomInput `json:"symptoms"`
}

// GetTracking returns one day with its symptoms, or with range above 1 the
// logs of the trailing window without symptoms.
func (handler *Handler) GetTracking(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day, err := handler.resolveDay(c.Query("date"))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load daily log")
	}

	rangeDays := services.DefaultTrackingRange
	if raw := strings.TrimSpace(c.Query("range")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return handler.respondServiceError(c, services.ErrInvalidLogRange, "failed to load daily log")
		}
		rangeDays = parsed
	}

	if rangeDays == 1 {
		record, err := handler.tracking.FetchDay(userID, day)
		if err != nil {
			return handler.respondServiceError(c, err, "failed to load daily log")
		}
		return c.JSON(buildDayRecordView(record))
	}

	logs, err := handler.tracking.FetchRange(userID, day, rangeDays)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load daily logs")
	}
	return c.JSON(fiber.Map{"logs": buildDailyLogViews(logs)})
}

// SaveTracking merges a partial observation into the day and answers with the
// stored result. POST and PUT behave the same.
func (handler *Handler) SaveTracking(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := trackingPayload{}
	if err := decodeJSONBody(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, invalidPayloadMessage)
	}

	rawDate := ""
	if payload.Date != nil {
		rawDate = *payload.Date
	}
	day, err := handler.resolveDay(rawDate)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to save daily log")
	}

	result, err := handler.tracking.SaveObservation(userID, day, payload.DailyObservation, payload.Symptoms)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to save daily log")
	}
	handler.metrics.DailyLogSaved(result.Created)
	if result.SymptomsReplaced {
		handler.metrics.SymptomsReplaced()
	}

	return c.Status(fiber.StatusCreated).JSON(buildDayRecordView(result.Record))
}

// resolveDay reads a calendar date, falling back to today in the configured
// location.
func (handler *Handler) resolveDay(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return handler.today(), nil
	}
	return services.ParseDateInput(raw)
}
