package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/flowcast/internal/models"
	"github.com/terraincognita07/flowcast/internal/services"
)

type dayResponse struct {
	Entry  models.DailyLog `json:"entry"`
	Exists bool            `json:"exists"`
}

type dayMutationResponse struct {
	Entry   models.DailyLog `json:"entry"`
	Deleted bool            `json:"deleted,omitempty"`
	Cycles  []models.Cycle  `json:"cycles"`
}

func (handler *Handler) GetDays(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, message := parseDateRange(c)
	if message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	logs, err := handler.dayService.FetchLogs(c.UserContext(), user.ID, from, to)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to fetch logs")
	}
	return c.JSON(logs)
}

func (handler *Handler) GetDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day, ok := parseDateParam(c.Params("date"))
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	entry, exists, err := handler.dayService.FetchDay(c.UserContext(), user.ID, day)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to fetch day")
	}
	return c.JSON(dayResponse{Entry: entry, Exists: exists})
}

func (handler *Handler) UpsertDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day, ok := parseDateParam(c.Params("date"))
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	var input services.DayEntryInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	entry, cycles, err := handler.dayService.UpsertDay(c.UserContext(), user.ID, day, input)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to save day")
	}
	return c.JSON(dayMutationResponse{Entry: entry, Cycles: cycles})
}

func (handler *Handler) DeleteDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day, ok := parseDateParam(c.Params("date"))
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	deleted, cycles, err := handler.dayService.DeleteDay(c.UserContext(), user.ID, day)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to delete day")
	}
	return c.JSON(dayMutationResponse{
		Entry:   models.DailyLog{Day: day},
		Deleted: deleted,
		Cycles:  cycles,
	})
}
