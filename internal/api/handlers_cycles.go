package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/flowcast/internal/dates"
	"github.com/terraincognita07/flowcast/internal/models"
)

func (handler *Handler) GetCycles(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	cycles, err := handler.predictionService.Cycles(c.UserContext(), user.ID)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load cycles")
	}
	return c.JSON(cycles)
}

func (handler *Handler) GetStatus(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	today, ok := handler.today(c)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid today date")
	}

	overview, err := handler.predictionService.Status(c.UserContext(), user.ID, today)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to build status")
	}
	return c.JSON(overview)
}

func (handler *Handler) GetCalendar(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	today, ok := handler.today(c)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid today date")
	}

	month := today.StartOfMonth()
	if raw := strings.TrimSpace(c.Query("month")); raw != "" {
		parsed, err := dates.ParseMonth(raw)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid month")
		}
		month = parsed
	}

	calendar, err := handler.predictionService.Calendar(c.UserContext(), user.ID, month, today)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to build calendar")
	}
	return c.JSON(calendar)
}

func (handler *Handler) GetStats(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	stats, err := handler.statsService.Stats(c.UserContext(), user.ID)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to build stats")
	}
	return c.JSON(stats)
}

func (handler *Handler) GetTags(c *fiber.Ctx) error {
	return c.JSON(models.DefaultTagCatalog())
}
