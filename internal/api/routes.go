package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api", handler.AuthRequired)

	cycles := api.Group("/cycles")
	cycles.Get("", handler.GetCycles)
	cycles.Post("", handler.CreateCycle)
	cycles.Put("", handler.UpdateCycle)

	tracking := api.Group("/tracking")
	tracking.Get("", handler.GetTracking)
	tracking.Post("", handler.SaveTracking)
	tracking.Put("", handler.SaveTracking)
}
