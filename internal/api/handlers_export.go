package api

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/flowcast/internal/services"
)

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	from, to, message := parseDateRange(c)
	if message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	document, err := handler.exportService.BuildDocument(c.UserContext(), user.ID, from, to)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to fetch logs")
	}

	serialized, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	setExportAttachmentHeaders(c, fiber.MIMEApplicationJSON, buildExportFilename(time.Now().In(handler.location), "json"))
	return c.Send(serialized)
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	from, to, message := parseDateRange(c)
	if message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	rows, err := handler.exportService.BuildCSVRows(c.UserContext(), user.ID, from, to)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to fetch logs")
	}

	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(services.ExportCSVHeaders); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}
	if err := writer.WriteAll(rows); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	setExportAttachmentHeaders(c, "text/csv", buildExportFilename(time.Now().In(handler.location), "csv"))
	return c.Send(output.Bytes())
}

func buildExportFilename(now time.Time, extension string) string {
	return fmt.Sprintf("flowcast-export-%s.%s", now.Format("2006-01-02"), extension)
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
}
