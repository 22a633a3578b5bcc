package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/flowcast/internal/models"
)

type deleteAccountInput struct {
	Password string `json:"password" form:"password"`
}

func (handler *Handler) GetSettings(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	settings, err := handler.settingsService.LoadSettings(c.UserContext(), user.ID)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load settings")
	}
	return c.JSON(settings)
}

func (handler *Handler) UpdateCycleSettings(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input models.CycleSettings
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	saved, err := handler.settingsService.SaveCycleSettings(c.UserContext(), user.ID, input)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to update settings")
	}
	return c.JSON(saved)
}

func (handler *Handler) ClearAllData(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.settingsService.ClearAllData(c.UserContext(), user.ID); err != nil {
		return handler.respondServiceError(c, err, "failed to clear data")
	}
	handler.log.Info("user data cleared", "user_id", user.ID)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) DeleteAccount(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input deleteAccountInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := handler.settingsService.DeleteAccount(c.UserContext(), user.ID, input.Password); err != nil {
		return handler.respondServiceError(c, err, "failed to delete account")
	}

	handler.clearAuthCookie(c)
	handler.log.Info("account deleted", "user_id", user.ID)
	return c.JSON(fiber.Map{"ok": true})
}
