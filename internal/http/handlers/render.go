package handlers

import (
	"ecoloop/internal/nav"
	"ecoloop/internal/validate"

	"github.com/gofiber/fiber/v2"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if u := userOf(c); u != nil {
		data["User"] = u
	}
	if s := savedOf(c); s != nil {
		data["SavedCount"] = s.Count()
	}
	data["Nav"] = nav.NavItems(c.Path())
	data["Page"] = string(nav.Resolve(c.Path()).Page)
	// Pick up the token the CSRF middleware put into Locals
	tok, _ := c.Locals(csrfContextKey).(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

// back returns a same-site path to send the browser to after a form post.
func back(c *fiber.Ctx, fallback string) string {
	to := c.FormValue("back")
	if to == "" {
		return fallback
	}
	return validate.LocalRedirect(to)
}
