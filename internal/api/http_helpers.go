package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/flowcast/internal/dates"
	"github.com/terraincognita07/flowcast/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// respondServiceError maps service sentinels onto HTTP statuses and logs the
// unexpected ones.
func (handler *Handler) respondServiceError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrInvalidDayFlow),
		errors.Is(err, services.ErrUnknownDayTag),
		errors.Is(err, services.ErrDayMetricInvalid):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidDayRange):
		return apiError(c, fiber.StatusBadRequest, "invalid date range")
	case errors.Is(err, services.ErrSettingsCycleLengthOutOfRange),
		errors.Is(err, services.ErrSettingsPeriodLengthOutOfRange),
		errors.Is(err, services.ErrSettingsPeriodLengthIncompatible),
		errors.Is(err, services.ErrSettingsPasswordMissing),
		errors.Is(err, services.ErrWeakPassword):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrSettingsPasswordInvalid),
		errors.Is(err, services.ErrAuthCredentialsInvalid):
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, services.ErrEmailAlreadyRegistered):
		return apiError(c, fiber.StatusConflict, "email already exists")
	case errors.Is(err, services.ErrUserNotFound):
		return apiError(c, fiber.StatusNotFound, "user not found")
	default:
		handler.log.Error(fallback, "path", c.Path(), "error", err)
		return apiError(c, fiber.StatusInternalServerError, fallback)
	}
}

func parseDateParam(raw string) (dates.Date, bool) {
	day, err := dates.Parse(strings.TrimSpace(raw))
	return day, err == nil
}

// parseOptionalDateQuery returns nil for an absent parameter.
func parseOptionalDateQuery(c *fiber.Ctx, key string) (*dates.Date, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	day, ok := parseDateParam(raw)
	if !ok {
		return nil, false
	}
	return &day, true
}

func (handler *Handler) today(c *fiber.Ctx) (dates.Date, bool) {
	raw := strings.TrimSpace(c.Query("today"))
	if raw == "" {
		return dates.Today(handler.location), true
	}
	return parseDateParam(raw)
}

func parseDateRange(c *fiber.Ctx) (*dates.Date, *dates.Date, string) {
	from, ok := parseOptionalDateQuery(c, "from")
	if !ok {
		return nil, nil, "invalid from date"
	}
	to, ok := parseOptionalDateQuery(c, "to")
	if !ok {
		return nil, nil, "invalid to date"
	}
	return from, to, ""
}
