package handlers

import (
	applog "ecoloop/internal/log"
	"ecoloop/internal/services"
	"ecoloop/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type WishlistHandler struct {
	Wish *services.WishlistService
}

func (h *WishlistHandler) List(c *fiber.Ctx) error {
	v := h.Wish.View(savedOf(c))
	return render(c, "wishlist", fiber.Map{
		"Items":      cards(v.Items, savedOf(c)),
		"Count":      v.Count,
		"TotalValue": v.TotalValue,
	})
}

// Toggle is the heart button on listing cards.
func (h *WishlistHandler) Toggle(c *fiber.Ctx) error {
	id, ok := validate.ListingID(c.FormValue("listingId"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "listingId"})
		return c.Status(fiber.StatusBadRequest).SendString("missing listingId")
	}
	saved, err := savedOf(c).Toggle(id)
	if err != nil {
		applog.Error(c, "wishlist.toggle.fail", err, map[string]any{"listing": id})
		return err
	}
	applog.Audit(c, "wishlist.toggle", map[string]any{"listing": id, "saved": saved})
	return c.Redirect(back(c, "/marketplace"), fiber.StatusSeeOther)
}

func (h *WishlistHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ListingID(c.FormValue("listingId"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "listingId"})
		return c.Status(fiber.StatusBadRequest).SendString("missing listingId")
	}
	if err := savedOf(c).Remove(id); err != nil {
		applog.Error(c, "wishlist.remove.fail", err, map[string]any{"listing": id})
		return err
	}
	applog.Audit(c, "wishlist.remove", map[string]any{"listing": id})
	return c.Redirect(back(c, "/wishlist"), fiber.StatusSeeOther)
}

// API

func (h *WishlistHandler) APIList(c *fiber.Ctx) error {
	saved := savedOf(c)
	v := h.Wish.View(saved)
	return c.JSON(fiber.Map{
		"ids":        saved.IDs(),
		"items":      v.Items,
		"count":      saved.Count(),
		"totalValue": v.TotalValue,
	})
}

func (h *WishlistHandler) APIToggle(c *fiber.Ctx) error {
	id, ok := validate.ListingID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid listing id"})
	}
	saved := savedOf(c)
	on, err := saved.Toggle(id)
	if err != nil {
		return apiError(c, "wishlist.toggle.fail", err)
	}
	applog.Audit(c, "wishlist.toggle", map[string]any{"listing": id, "saved": on})
	return c.JSON(fiber.Map{"id": id, "saved": on, "count": saved.Count()})
}

func (h *WishlistHandler) APIDelete(c *fiber.Ctx) error {
	id, ok := validate.ListingID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid listing id"})
	}
	saved := savedOf(c)
	if err := saved.Remove(id); err != nil {
		return apiError(c, "wishlist.remove.fail", err)
	}
	applog.Audit(c, "wishlist.remove", map[string]any{"listing": id})
	return c.JSON(fiber.Map{"id": id, "saved": false, "count": saved.Count()})
}
