package handlers

import (
	"errors"

	applog "ecoloop/internal/log"
	"ecoloop/internal/services"
	"ecoloop/internal/validate"
	"ecoloop/internal/wizard"

	"github.com/gofiber/fiber/v2"
)

// statusOf maps domain errors to an HTTP status and a stable reason code.
func statusOf(err error) (int, string) {
	var fe validate.FieldErrors
	switch {
	case errors.Is(err, wizard.ErrIncomplete):
		return fiber.StatusConflict, "incomplete"
	case errors.Is(err, wizard.ErrNoTransition):
		return fiber.StatusConflict, "no_transition"
	case errors.Is(err, wizard.ErrTerminal):
		return fiber.StatusConflict, "submitted"
	case errors.Is(err, wizard.ErrWrongStep):
		return fiber.StatusConflict, "wrong_step"
	case errors.Is(err, wizard.ErrUnknownItemType),
		errors.Is(err, wizard.ErrInvalidOption),
		errors.Is(err, wizard.ErrPhotoIndex):
		return fiber.StatusUnprocessableEntity, "invalid_option"
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound, "not_found"
	case errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrCompanyRequired),
		errors.Is(err, services.ErrEmailRequired):
		return fiber.StatusBadRequest, "missing_fields"
	case errors.Is(err, services.ErrInvalidEmail):
		return fiber.StatusBadRequest, "invalid_email"
	case errors.As(err, &fe):
		return fiber.StatusBadRequest, "invalid_input"
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, "request"
	}
	return fiber.StatusInternalServerError, "internal"
}

// apiError writes err as JSON. Internal errors are logged and reported
// without detail.
func apiError(c *fiber.Ctx, action string, err error) error {
	code, reason := statusOf(err)
	if code >= fiber.StatusInternalServerError {
		applog.Error(c, action, err, nil)
		return c.Status(code).JSON(fiber.Map{"error": "internal error", "reason": reason})
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error(), "reason": reason})
}

// ErrorHandler is the application-wide fiber error handler: it logs the error
// and shows a friendly page without internal detail.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Something went wrong. Please try again."
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
		code = fiberErr.Code
		msg = "We couldn't handle that request."
		if code == fiber.StatusNotFound {
			msg = "Page not found"
		}
	}
	applog.Error(c, "server.error", err, map[string]any{"status": code})
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}
