package handlers

import (
	"strings"

	applog "ecoloop/internal/log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
)

const (
	csrfContextKey = "csrf"
	csrfCookie     = "csrf_"
	csrfHeader     = "X-Csrf-Token"
)

// CSRF guards every unsafe request. Page forms post the token in the "csrf"
// field; JSON clients send it in the X-Csrf-Token header.
func CSRF(secure bool) fiber.Handler {
	fromHeader := csrf.CsrfFromHeader(csrfHeader)
	fromForm := csrf.CsrfFromForm("csrf")
	return csrf.New(csrf.Config{
		CookieName:     csrfCookie,
		CookieSameSite: "Lax",
		CookieSecure:   secure,
		ContextKey:     csrfContextKey,
		Extractor: func(c *fiber.Ctx) (string, error) {
			if c.Get(csrfHeader) != "" {
				return fromHeader(c)
			}
			return fromForm(c)
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"reason": err.Error()})
			if strings.HasPrefix(c.Path(), "/api/") {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "csrf check failed"})
			}
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	})
}
