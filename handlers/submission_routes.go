package handlers

import (
	"errors"
	"time"

	"challenge-tracker/middleware"
	"challenge-tracker/services"

	"github.com/gofiber/fiber/v2"
)

func SetupSubmissionRoutes(app *fiber.App, submissions *services.SubmissionService) {
	// Secured routes — participant identity comes from the gateway headers,
	// never from the body. Only the write paths need it; streak lookups,
	// reports and healthz stay open to any gateway-authenticated caller.
	securedGroup := app.Group("/submissions", middleware.UserContextMiddleware())

	type submitRequest struct {
		Link string `json:"link"`
	}

	securedGroup.Post("/", func(c *fiber.Ctx) error {
		participantID := c.Locals("participant_id").(string)
		displayName := c.Locals("display_name").(string)

		var req submitRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		rec, err := submissions.Submit(c.Context(), participantID, displayName, req.Link, time.Now())
		if err != nil {
			return submissionError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	})

	securedGroup.Put("/", func(c *fiber.Ctx) error {
		participantID := c.Locals("participant_id").(string)
		displayName := c.Locals("display_name").(string)

		var req submitRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		rec, err := submissions.Resubmit(c.Context(), participantID, displayName, req.Link, time.Now())
		if err != nil {
			return submissionError(c, err)
		}
		return c.JSON(rec)
	})

	app.Get("/participants/:id/streak", func(c *fiber.Ctx) error {
		participantID := c.Params("id")
		streak, err := submissions.StreakOf(c.Context(), participantID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to read streak",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"participantId": participantID,
			"streak":        streak,
		})
	})

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

// submissionError picks the status and wording for a failed submit: logical
// rejections are the user's to correct, everything else is a retryable
// persistence failure.
func submissionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidLink):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "invalid link format",
			"cause": err.Error(),
		})
	case errors.Is(err, services.ErrAlreadySubmittedToday):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "already submitted today",
			"cause": err.Error(),
		})
	default:
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "submission could not be saved, please retry",
			"cause": err.Error(),
		})
	}
}
