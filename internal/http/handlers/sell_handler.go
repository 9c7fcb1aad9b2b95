package handlers

import (
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	applog "ecoloop/internal/log"
	"ecoloop/internal/services"
	"ecoloop/internal/validate"
	"ecoloop/internal/wizard"

	"github.com/gofiber/fiber/v2"
)

const maxPhotoBytes = 5 << 20

type SellHandler struct {
	Sell *services.SellService
}

// draftPatch carries the editable draft fields. Absent fields are left alone;
// each present field must be editable on the current step.
type draftPatch struct {
	ItemSpec    *string `json:"itemSpec"`
	Condition   *string `json:"condition"`
	Quantity    *int    `json:"quantity"`
	Weight      *string `json:"weight" validate:"omitempty,max=50"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Price       *string `json:"price" validate:"omitempty,numeric,max=12"`
	Location    *string `json:"location" validate:"omitempty,max=100"`
	AcceptTerms *bool   `json:"acceptTerms"`
}

func (p draftPatch) apply(w *wizard.Wizard) error {
	steps := []struct {
		set bool
		fn  func() error
	}{
		{p.ItemSpec != nil, func() error { return w.SetSpec(*p.ItemSpec) }},
		{p.Condition != nil, func() error { return w.SetCondition(*p.Condition) }},
		{p.Quantity != nil, func() error { return w.SetQuantity(*p.Quantity) }},
		{p.Weight != nil, func() error { return w.SetWeight(*p.Weight) }},
		{p.Description != nil, func() error { return w.SetDescription(*p.Description) }},
		{p.Price != nil, func() error { return w.SetPrice(*p.Price) }},
		{p.Location != nil, func() error { return w.SetLocation(*p.Location) }},
		{p.AcceptTerms != nil, func() error { return w.SetAcceptTerms(*p.AcceptTerms) }},
	}
	for _, s := range steps {
		if !s.set {
			continue
		}
		if err := s.fn(); err != nil {
			return err
		}
	}
	return nil
}

func str(s string) *string { return &s }

var formSteps = map[string]wizard.Step{
	"details": wizard.StepDetails,
	"pricing": wizard.StepPricing,
}

// formPatch reads the fields of the step being posted from a page form.
func formPatch(c *fiber.Ctx, step wizard.Step) draftPatch {
	var p draftPatch
	switch step {
	case wizard.StepDetails:
		p.ItemSpec = str(c.FormValue("spec"))
		p.Condition = str(c.FormValue("condition"))
		q := validate.Qty(c.FormValue("quantity"))
		p.Quantity = &q
		p.Weight = str(c.FormValue("weight"))
		p.Description = str(c.FormValue("description"))
	case wizard.StepPricing:
		p.Price = str(c.FormValue("price"))
		p.Location = str(c.FormValue("location"))
	}
	// an unpicked radio group posts nothing; leave the draft's value alone
	if p.ItemSpec != nil && *p.ItemSpec == "" {
		p.ItemSpec = nil
	}
	if p.Condition != nil && *p.Condition == "" {
		p.Condition = nil
	}
	return p
}

// readPhotos collects image uploads from the "photos" field. Non-images and
// oversized files are skipped.
func readPhotos(c *fiber.Ctx) ([]wizard.Photo, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	var out []wizard.Photo
	for _, fh := range form.File["photos"] {
		if len(out) == wizard.MaxPhotos {
			break
		}
		ct := fh.Header.Get(fiber.HeaderContentType)
		if !strings.HasPrefix(ct, "image/") || fh.Size > maxPhotoBytes {
			applog.Security(c, "sell.photo.skip", map[string]any{"type": ct, "size": fh.Size})
			continue
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(io.LimitReader(f, maxPhotoBytes))
		f.Close()
		if err != nil {
			return nil, err
		}
		out = append(out, wizard.Photo{Filename: filepath.Base(fh.Filename), ContentType: ct, Data: data})
	}
	return out, nil
}

func (h *SellHandler) page(c *fiber.Ctx, w *wizard.Wizard, errMsg string) error {
	v := w.View()
	secs := (v.RedirectAfterMs + 999) / 1000
	if v.Submitted {
		c.Set("Refresh", strconv.FormatInt(secs, 10)+";url="+v.RedirectTo)
	}
	return render(c, "sell", fiber.Map{
		"W":               v,
		"Err":             errMsg,
		"RedirectSeconds": secs,
	})
}

func (h *SellHandler) Page(c *fiber.Ctx) error {
	return h.page(c, h.Sell.Wizard(sidOf(c)), "")
}

func stepMessage(err error) string {
	switch {
	case errors.Is(err, wizard.ErrIncomplete):
		return "Please complete the required fields to continue."
	case errors.Is(err, wizard.ErrTerminal):
		return "This listing has already been submitted."
	case errors.Is(err, wizard.ErrInvalidOption), errors.Is(err, wizard.ErrUnknownItemType):
		return "Please choose one of the offered options."
	}
	var fe validate.FieldErrors
	if errors.As(err, &fe) {
		return "Please check: " + strings.Join(fe.Fields(), ", ")
	}
	return "That step isn't available right now."
}

// Action handles the page form posts under /sell/:action.
func (h *SellHandler) Action(c *fiber.Ctx) error {
	sid := sidOf(c)
	w := h.Sell.Wizard(sid)
	action := c.Params("action")

	err := h.do(c, w, action)
	if err != nil {
		code, reason := statusOf(err)
		if code >= fiber.StatusInternalServerError {
			return err
		}
		applog.Info(c, "sell.action.rejected", map[string]any{"action": action, "reason": reason})
		return h.page(c.Status(code), w, stepMessage(err))
	}
	if action == "reset" {
		applog.Audit(c, "sell.reset", nil)
	}
	return c.Redirect("/sell", fiber.StatusSeeOther)
}

func (h *SellHandler) do(c *fiber.Ctx, w *wizard.Wizard, action string) error {
	switch action {
	case "type":
		return w.SelectItemType(c.FormValue("item_type"))
	case "details", "pricing":
		p := formPatch(c, formSteps[action])
		if err := validate.Struct(p); err != nil {
			return err
		}
		if err := p.apply(w); err != nil {
			return err
		}
		return h.move(c, w)
	case "photos":
		photos, err := readPhotos(c)
		if err == nil && len(photos) > 0 {
			if _, err := w.AttachPhotos(photos...); err != nil {
				return err
			}
		}
		return h.move(c, w)
	case "remove-photo":
		idx, err := strconv.Atoi(c.FormValue("idx"))
		if err != nil {
			return wizard.ErrPhotoIndex
		}
		return w.RemovePhoto(idx)
	case "back":
		return w.Back()
	case "jump":
		step, err := parseStep(c.FormValue("step"))
		if err != nil {
			return err
		}
		return w.JumpTo(step)
	case "submit":
		if err := w.SetAcceptTerms(validate.Bool(c.FormValue("accept_terms"))); err != nil {
			return err
		}
		return h.submit(c, w)
	case "reset":
		h.Sell.Reset(sidOf(c))
		return nil
	}
	return fiber.ErrNotFound
}

// move applies the nav button of a step form: back, stay, or (default) next.
func (h *SellHandler) move(c *fiber.Ctx, w *wizard.Wizard) error {
	switch c.FormValue("nav") {
	case "back":
		return w.Back()
	case "stay":
		return nil
	}
	return w.Next()
}

func (h *SellHandler) submit(c *fiber.Ctx, w *wizard.Wizard) error {
	if _, err := w.Submit(); err != nil {
		return err
	}
	d := w.Draft()
	applog.Audit(c, "sell.submit", map[string]any{
		"itemType": d.ItemType, "spec": d.ItemSpec, "condition": d.Condition,
		"quantity": d.Quantity, "photos": len(d.Photos),
	})
	return nil
}

func parseStep(s string) (wizard.Step, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, wizard.ErrNoTransition
	}
	step, err := wizard.ParseStep(n)
	if err != nil {
		return 0, wizard.ErrNoTransition
	}
	return step, nil
}

// JSON API

func (h *SellHandler) view(c *fiber.Ctx, w *wizard.Wizard) error {
	return c.JSON(w.View())
}

func (h *SellHandler) APIGet(c *fiber.Ctx) error {
	return h.view(c, h.Sell.Wizard(sidOf(c)))
}

func (h *SellHandler) APIType(c *fiber.Ctx) error {
	var body struct {
		ItemType string `json:"itemType" validate:"required"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.ErrBadRequest
	}
	if err := validate.Struct(body); err != nil {
		return apiError(c, "sell.type", err)
	}
	w := h.Sell.Wizard(sidOf(c))
	if err := w.SelectItemType(body.ItemType); err != nil {
		return apiError(c, "sell.type", err)
	}
	return h.view(c, w)
}

func (h *SellHandler) APIPatch(c *fiber.Ctx) error {
	var p draftPatch
	if err := c.BodyParser(&p); err != nil {
		return fiber.ErrBadRequest
	}
	if err := validate.Struct(p); err != nil {
		return apiError(c, "sell.patch", err)
	}
	w := h.Sell.Wizard(sidOf(c))
	if err := p.apply(w); err != nil {
		return apiError(c, "sell.patch", err)
	}
	return h.view(c, w)
}

func (h *SellHandler) APIPhotos(c *fiber.Ctx) error {
	photos, err := readPhotos(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "expected multipart photos"})
	}
	w := h.Sell.Wizard(sidOf(c))
	kept, err := w.AttachPhotos(photos...)
	if err != nil {
		return apiError(c, "sell.photos", err)
	}
	return c.JSON(fiber.Map{"kept": kept, "dropped": len(photos) - kept, "wizard": w.View()})
}

func (h *SellHandler) APIRemovePhoto(c *fiber.Ctx) error {
	idx, err := strconv.Atoi(c.Params("idx"))
	if err != nil {
		return apiError(c, "sell.photo.remove", wizard.ErrPhotoIndex)
	}
	w := h.Sell.Wizard(sidOf(c))
	if err := w.RemovePhoto(idx); err != nil {
		return apiError(c, "sell.photo.remove", err)
	}
	return h.view(c, w)
}

func (h *SellHandler) APINext(c *fiber.Ctx) error {
	w := h.Sell.Wizard(sidOf(c))
	if err := w.Next(); err != nil {
		return apiError(c, "sell.next", err)
	}
	return h.view(c, w)
}

func (h *SellHandler) APIBack(c *fiber.Ctx) error {
	w := h.Sell.Wizard(sidOf(c))
	if err := w.Back(); err != nil {
		return apiError(c, "sell.back", err)
	}
	return h.view(c, w)
}

func (h *SellHandler) APIJump(c *fiber.Ctx) error {
	step, err := parseStep(c.Params("step"))
	if err != nil {
		return apiError(c, "sell.jump", err)
	}
	w := h.Sell.Wizard(sidOf(c))
	if err := w.JumpTo(step); err != nil {
		return apiError(c, "sell.jump", err)
	}
	return h.view(c, w)
}

func (h *SellHandler) APISubmit(c *fiber.Ctx) error {
	w := h.Sell.Wizard(sidOf(c))
	if err := h.submit(c, w); err != nil {
		return apiError(c, "sell.submit", err)
	}
	return c.Status(fiber.StatusAccepted).JSON(w.View())
}

func (h *SellHandler) APIReset(c *fiber.Ctx) error {
	h.Sell.Reset(sidOf(c))
	applog.Audit(c, "sell.reset", nil)
	return c.SendStatus(fiber.StatusNoContent)
}
