package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)
	auth.Post("/password", handler.AuthRequired, handler.ChangePassword)

	days := api.Group("/days", handler.AuthRequired)
	days.Get("", handler.GetDays)
	days.Get("/:date", handler.GetDay)
	days.Put("/:date", handler.UpsertDay)
	days.Delete("/:date", handler.DeleteDay)

	api.Get("/cycles", handler.AuthRequired, handler.GetCycles)
	api.Get("/status", handler.AuthRequired, handler.GetStatus)
	api.Get("/calendar", handler.AuthRequired, handler.GetCalendar)
	api.Get("/stats", handler.AuthRequired, handler.GetStats)
	api.Get("/tags", handler.GetTags)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Get("", handler.GetSettings)
	settings.Put("/cycle", handler.UpdateCycleSettings)
	settings.Post("/clear-data", handler.ClearAllData)
	settings.Delete("/account", handler.DeleteAccount)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/json", handler.ExportJSON)
	export.Get("/csv", handler.ExportCSV)
}
