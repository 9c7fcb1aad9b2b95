package handlers

import (
	"ecoloop/internal/log"
	"ecoloop/internal/nav"
	"ecoloop/internal/services"
	"ecoloop/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth     *services.AuthService
	Sell     *services.SellService
	Messages *services.MessageService
}

// LoginForm renders the prompt on its own page; ?mode=signup opens the
// signup tab.
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	mode := "login"
	if c.Query("mode") == "signup" {
		mode = "signup"
	}
	return render(c, "login", fiber.Map{
		"Mode":     mode,
		"Redirect": validate.LocalRedirect(c.Query("redirect")),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var f services.LoginForm
	if err := c.BodyParser(&f); err != nil {
		return fiber.ErrBadRequest
	}
	u, task, err := h.Auth.Login(sessionOf(c), f)
	if err != nil {
		return h.fail(c, "login", err, fiber.Map{"Email": f.Email, "Role": f.Role, "Redirect": validate.LocalRedirect(f.Redirect)})
	}
	log.Audit(c, "auth.login.success", map[string]any{"role": u.Role})
	to, err := task.Wait(c.UserContext())
	if err != nil {
		return err
	}
	return c.Redirect(to, fiber.StatusSeeOther)
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var f services.SignupForm
	if err := c.BodyParser(&f); err != nil {
		return fiber.ErrBadRequest
	}
	u, task, err := h.Auth.Signup(sessionOf(c), f)
	if err != nil {
		return h.fail(c, "signup", err, fiber.Map{
			"Email": f.Email, "Role": f.Role, "Company": f.Company, "Username": f.Username,
			"Redirect": validate.LocalRedirect(f.Redirect),
		})
	}
	log.Audit(c, "auth.signup.success", map[string]any{"role": u.Role})
	to, err := task.Wait(c.UserContext())
	if err != nil {
		return err
	}
	return c.Redirect(to, fiber.StatusSeeOther)
}

func (h *AuthHandler) fail(c *fiber.Ctx, mode string, err error, data fiber.Map) error {
	code, reason := statusOf(err)
	if code >= fiber.StatusInternalServerError {
		return err
	}
	log.Security(c, "auth."+mode+".fail", map[string]any{"reason": reason})
	data["Mode"] = mode
	data["Err"] = services.PromptMessage(err)
	return render(c.Status(code), "login", data)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	to, err := nav.Logout(sessionOf(c))
	if err != nil {
		return err
	}
	// the next account on this browser starts without the old draft or inbox
	sid := sidOf(c)
	h.Sell.Reset(sid)
	h.Messages.Drop(sid)
	c.Locals("user", nil)
	log.Audit(c, "auth.logout", nil)
	return c.Redirect(to, fiber.StatusSeeOther)
}

// Session reports the session state to JSON clients.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	sess := sessionOf(c)
	return c.JSON(fiber.Map{
		"loading": sess.Loading(),
		"user":    sess.User(),
	})
}
