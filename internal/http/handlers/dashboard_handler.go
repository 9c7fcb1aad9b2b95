package handlers

import (
	"ecoloop/internal/domain"
	"ecoloop/internal/services"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	Svc *services.DashboardService
}

func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	u := userOf(c)
	return render(c, "dashboard", fiber.Map{
		"D": h.Svc.For(*u, savedOf(c)),
	})
}

// Analytics always shows the seller figures; it is not role-gated.
func (h *DashboardHandler) Analytics(c *fiber.Ctx) error {
	u := *userOf(c)
	u.Role = domain.RoleSeller
	return render(c, "analytics", fiber.Map{
		"D": h.Svc.For(u, nil),
	})
}

func (h *DashboardHandler) Profile(c *fiber.Ctx) error {
	return render(c, "profile", nil)
}
