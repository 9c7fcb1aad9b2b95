package handlers

import (
	"ecoloop/internal/domain"
	applog "ecoloop/internal/log"
	"ecoloop/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
)

const sidCookie = "sid"

// Sessions gives every request a sid cookie and hydrates that session's
// stores from local storage. Hydration failures are logged; the session store
// then stays in its loading state and gated pages show the placeholder.
func Sessions(storage StorageFunc, secure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := utils.CopyString(c.Cookies(sidCookie))
		if _, err := uuid.Parse(sid); err != nil {
			sid = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     sidCookie,
				Value:    sid,
				Path:     "/",
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
				Secure:   secure,
			})
		}
		c.Locals("sid", sid)

		st := storage(sid)
		sess := services.NewSessionStore(st)
		if err := sess.Hydrate(); err != nil {
			applog.Error(c, "session.hydrate.fail", err, nil)
		}
		saved := services.NewSavedItems(st)
		if err := saved.Hydrate(); err != nil {
			applog.Error(c, "wishlist.hydrate.fail", err, nil)
		}
		c.Locals("session", sess)
		c.Locals("saved", saved)
		if u := sess.User(); u != nil {
			c.Locals("user", u)
		}
		return c.Next()
	}
}

func sidOf(c *fiber.Ctx) string {
	sid, _ := c.Locals("sid").(string)
	return sid
}

func sessionOf(c *fiber.Ctx) *services.SessionStore {
	s, _ := c.Locals("session").(*services.SessionStore)
	return s
}

func savedOf(c *fiber.Ctx) *services.SavedItems {
	s, _ := c.Locals("saved").(*services.SavedItems)
	return s
}

func userOf(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}
