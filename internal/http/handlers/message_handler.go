package handlers

import (
	"strconv"

	applog "ecoloop/internal/log"
	"ecoloop/internal/services"

	"github.com/gofiber/fiber/v2"
)

type MessageHandler struct {
	Messages *services.MessageService
}

// Page is GET /messages. A ?seller= parameter is consumed once: it opens the
// conversation and the browser is sent back to the bare URL.
func (h *MessageHandler) Page(c *fiber.Ctx) error {
	inbox := h.Messages.Inbox(sidOf(c))

	if raw := c.Query("seller"); raw != "" {
		sc, err := services.ParseSellerParam(raw)
		if err != nil {
			applog.Error(c, "messages.seller.parse", err, nil)
		} else {
			id := inbox.Contact(sc)
			applog.Info(c, "messages.contact", map[string]any{"conversation": id})
		}
		return c.Redirect("/messages", fiber.StatusSeeOther)
	}

	if raw := c.Query("c"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err == nil {
			err = inbox.Select(id)
		}
		if err != nil {
			return c.Redirect("/messages", fiber.StatusSeeOther)
		}
	}

	q := c.Query("q")
	conv, msgs := inbox.Selected()
	return render(c, "messages", fiber.Map{
		"Q":             q,
		"Conversations": inbox.Conversations(q),
		"TotalUnread":   inbox.TotalUnread(),
		"Selected":      conv,
		"Messages":      msgs,
	})
}

// Send is POST /messages/:id.
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}
	inbox := h.Messages.Inbox(sidOf(c))
	if _, err := inbox.Send(id, c.FormValue("text")); err != nil {
		return fiber.ErrNotFound
	}
	return c.Redirect("/messages?c="+strconv.Itoa(id), fiber.StatusSeeOther)
}
