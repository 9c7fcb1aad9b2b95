package handlers

import (
	"time"

	"ecoloop/internal/log"
	"ecoloop/internal/nav"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Mount registers the session middleware and every page and API route. Unknown
// GET paths redirect to the landing page.
func (d *Deps) Mount(app *fiber.App) {
	app.Use(Sessions(d.Storage, d.CookieSecure))

	gate := RequireUser()

	// Public pages
	app.Get("/", d.MarketplaceHandler.Landing)
	app.Get("/marketplace", d.MarketplaceHandler.Page)
	app.Get("/wishlist", d.WishlistHandler.List)
	app.Get("/help", d.MarketplaceHandler.Help)
	app.Post("/wishlist/toggle", d.WishlistHandler.Toggle)
	app.Post("/wishlist/delete", d.WishlistHandler.Delete)

	// Auth (throttled)
	authLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			log.Security(c, "rate.auth.hit", nil)
			return render(c.Status(fiber.StatusTooManyRequests), "login", fiber.Map{
				"Mode": "login",
				"Err":  "Too many attempts. Please try again later.",
			})
		},
	})
	app.Get("/login", d.AuthHandler.LoginForm)
	app.Post("/login", authLimiter, d.AuthHandler.Login)
	app.Post("/signup", authLimiter, d.AuthHandler.Signup)
	app.Post("/logout", d.AuthHandler.Logout)

	// Gated pages
	app.Get("/sell", gate, d.SellHandler.Page)
	app.Post("/sell/:action", gate, d.SellHandler.Action)
	app.Get("/dashboard", gate, d.DashboardHandler.Dashboard)
	app.Get("/analytics", gate, d.DashboardHandler.Analytics)
	app.Get("/profile", gate, d.DashboardHandler.Profile)
	app.Get("/orders", gate, d.OrderHandler.Page)
	app.Get("/messages", gate, d.MessageHandler.Page)
	app.Post("/messages/:id", gate, d.MessageHandler.Send)

	// API
	api := app.Group("/api/v1")
	api.Get("/listings", d.MarketplaceHandler.List)
	api.Get("/listings/:id", d.MarketplaceHandler.Get)
	api.Get("/session", d.AuthHandler.Session)
	api.Get("/wishlist", d.WishlistHandler.APIList)
	api.Post("/wishlist/:id/toggle", d.WishlistHandler.APIToggle)
	api.Delete("/wishlist/:id", d.WishlistHandler.APIDelete)

	sell := api.Group("/sell", RequireUserAPI())
	sell.Get("/", d.SellHandler.APIGet)
	sell.Post("/type", d.SellHandler.APIType)
	sell.Patch("/draft", d.SellHandler.APIPatch)
	sell.Post("/photos", d.SellHandler.APIPhotos)
	sell.Delete("/photos/:idx", d.SellHandler.APIRemovePhoto)
	sell.Post("/next", d.SellHandler.APINext)
	sell.Post("/back", d.SellHandler.APIBack)
	sell.Post("/jump/:step", d.SellHandler.APIJump)
	sell.Post("/submit", d.SellHandler.APISubmit)
	sell.Delete("/", d.SellHandler.APIReset)

	// Health & fallback
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodGet {
			return c.Redirect(nav.LandingPath, fiber.StatusFound)
		}
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
	})
}
