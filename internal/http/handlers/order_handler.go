package handlers

import (
	"ecoloop/internal/log"
	"ecoloop/internal/services"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Orders *services.OrderService
}

// Page is GET /orders?status=&id=.
func (h *OrderHandler) Page(c *fiber.Ctx) error {
	status := c.Query("status", services.All)
	if !services.ValidStatus(status) {
		log.Security(c, "validation.fail", map[string]any{"field": "status"})
		status = services.All
	}
	list := h.Orders.List(status)
	selected, ok := services.Select(list, c.Query("id"))
	data := fiber.Map{
		"Status": status,
		"Counts": h.Orders.Counts(),
		"Orders": list,
	}
	if ok {
		data["Selected"] = selected
	}
	return render(c, "orders", data)
}
