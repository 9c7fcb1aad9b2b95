package handlers

import (
	applog "ecoloop/internal/log"
	"ecoloop/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// RequireUser gates a page on the session. While the session is still loading
// only the placeholder is shown; without a user the login prompt is rendered
// in place, carrying the requested URL as its redirect target. Role is never
// checked.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := sessionOf(c)
		if sess == nil || sess.Loading() {
			c.Set(fiber.HeaderRetryAfter, "1")
			c.Set("Refresh", "1")
			return render(c.Status(fiber.StatusServiceUnavailable), "loading", fiber.Map{
				"Redirect": c.OriginalURL(),
			})
		}
		if sess.User() == nil {
			applog.Security(c, "access.denied.anon", nil)
			return render(c.Status(fiber.StatusUnauthorized), "login", fiber.Map{
				"Mode":     "login",
				"Redirect": validate.LocalRedirect(c.OriginalURL()),
			})
		}
		return c.Next()
	}
}

// RequireUserAPI is RequireUser for JSON clients.
func RequireUserAPI() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := sessionOf(c)
		if sess == nil || sess.Loading() {
			c.Set(fiber.HeaderRetryAfter, "1")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "loading"})
		}
		if sess.User() == nil {
			applog.Security(c, "access.denied.anon", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":    "login required",
				"redirect": validate.LocalRedirect(c.OriginalURL()),
			})
		}
		return c.Next()
	}
}
