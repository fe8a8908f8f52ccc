package handlers

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"challenge-tracker/services"

	"github.com/gofiber/fiber/v2"
)

func SetupReportRoutes(app *fiber.App, reports *services.ReportService, reminders *services.ReminderService) {
	app.Get("/report", func(c *fiber.Ctx) error {
		eligibleOnly := c.QueryBool("eligibleOnly", false)
		summaries, err := reports.Report(c.Context(), eligibleOnly)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to build report",
				"cause": err.Error(),
			})
		}
		return c.JSON(summaries)
	})

	// CSV download for the export collaborator. Any richer file format
	// (spreadsheet, PDF) is rendered downstream from these rows.
	app.Get("/report/export", func(c *fiber.Ctx) error {
		eligibleOnly := c.QueryBool("eligibleOnly", false)
		summaries, err := reports.Report(c.Context(), eligibleOnly)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to build report",
				"cause": err.Error(),
			})
		}

		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		_ = w.Write([]string{"User ID", "Username", "Submission Format", "Streak"})
		for _, s := range summaries {
			_ = w.Write([]string{s.ParticipantID, s.DisplayName, string(s.Platform), strconv.Itoa(s.Streak)})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to encode export",
				"cause": err.Error(),
			})
		}

		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="participants.csv"`)
		return c.Send(buf.Bytes())
	})

	app.Get("/overdue", func(c *fiber.Ctx) error {
		now := time.Now()
		if raw := c.Query("now"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "now must be RFC3339",
					"cause": err.Error(),
				})
			}
			now = parsed
		}

		ids, err := reminders.Overdue(c.Context(), now)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to query overdue participants",
				"cause": err.Error(),
			})
		}
		if ids == nil {
			ids = []string{}
		}
		return c.JSON(fiber.Map{"participantIds": ids})
	})
}
