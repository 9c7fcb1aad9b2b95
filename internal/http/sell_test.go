package handlers_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wizardView struct {
	Step       int  `json:"step"`
	CanAdvance bool `json:"canAdvance"`
	PhotoSlots int  `json:"photoSlots"`
	Submitted  bool `json:"submitted"`
	Draft      struct {
		ItemType string `json:"itemType"`
		ItemSpec string `json:"itemSpec"`
		Quantity int    `json:"quantity"`
		Price    string `json:"price"`
		Location string `json:"location"`
	} `json:"draft"`
	Suggestion *struct {
		Base int `json:"base"`
	} `json:"suggestion"`
	RedirectTo string `json:"redirectTo"`
}

type apiErr struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

func photoUpload(t *testing.T, n int, contentType string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for i := 0; i < n; i++ {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photos"; filename="p%d.png"`, i))
		h.Set("Content-Type", contentType)
		w, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, _ = w.Write([]byte("\x89PNG fake"))
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sell/photos", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestSellAPIRequiresUser(t *testing.T) {
	app := newTestApp(t, testConfig(), sqliteStorage(t))
	c := newClient(t, app)

	resp := c.get("/api/v1/sell")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "/api/v1/sell", body["redirect"])
}

func TestSellWizardAPIFlow(t *testing.T) {
	app := newTestApp(t, testConfig(), sqliteStorage(t))
	c := newClient(t, app)
	c.login("seller")

	var v wizardView
	decode(t, c.get("/api/v1/sell"), &v)
	assert.Equal(t, 1, v.Step)
	assert.False(t, v.CanAdvance)

	// Next without an item type is refused
	resp := c.json(http.MethodPost, "/api/v1/sell/next", nil)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	var e apiErr
	decode(t, resp, &e)
	assert.Equal(t, "incomplete", e.Reason)

	resp = c.json(http.MethodPost, "/api/v1/sell/type", map[string]string{"itemType": "toaster"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	decode(t, c.json(http.MethodPost, "/api/v1/sell/type", map[string]string{"itemType": "laptop"}), &v)
	require.Equal(t, 2, v.Step)
	assert.Equal(t, "laptop", v.Draft.ItemType)

	// pricing fields are not editable on Details
	resp = c.json(http.MethodPatch, "/api/v1/sell/draft", map[string]any{"price": "100"})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	e = apiErr{}
	decode(t, resp, &e)
	assert.Equal(t, "wrong_step", e.Reason)

	resp = c.json(http.MethodPatch, "/api/v1/sell/draft", map[string]any{"itemSpec": "Gaming Rig"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	v = wizardView{}
	decode(t, c.json(http.MethodPatch, "/api/v1/sell/draft", map[string]any{
		"itemSpec": `15" Mid-Range`, "condition": "Working", "quantity": 0,
	}), &v)
	assert.True(t, v.CanAdvance)
	assert.Equal(t, 1, v.Draft.Quantity)

	decode(t, c.json(http.MethodPost, "/api/v1/sell/next", nil), &v)
	require.Equal(t, 3, v.Step)

	var up struct {
		Kept    int        `json:"kept"`
		Dropped int        `json:"dropped"`
		Wizard  wizardView `json:"wizard"`
	}
	decode(t, c.do(photoUpload(t, 7, "image/png")), &up)
	assert.Equal(t, 5, up.Kept)
	assert.Equal(t, 0, up.Wizard.PhotoSlots)

	decode(t, c.json(http.MethodDelete, "/api/v1/sell/photos/0", nil), &v)
	assert.Equal(t, 1, v.PhotoSlots)
	assert.Equal(t, fiber.StatusUnprocessableEntity, c.json(http.MethodDelete, "/api/v1/sell/photos/9", nil).StatusCode)

	decode(t, c.json(http.MethodPost, "/api/v1/sell/next", nil), &v)
	require.Equal(t, 4, v.Step)
	require.NotNil(t, v.Suggestion)
	assert.Equal(t, 1500, v.Suggestion.Base)

	resp = c.json(http.MethodPatch, "/api/v1/sell/draft", map[string]any{"price": "12abc"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	decode(t, c.json(http.MethodPatch, "/api/v1/sell/draft", map[string]any{
		"price": "1800", "location": "  Pune, MH ",
	}), &v)
	assert.Equal(t, "Pune, MH", v.Draft.Location)

	decode(t, c.json(http.MethodPost, "/api/v1/sell/next", nil), &v)
	require.Equal(t, 5, v.Step)

	resp = c.json(http.MethodPost, "/api/v1/sell/submit", nil)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	decode(t, c.json(http.MethodPatch, "/api/v1/sell/draft", map[string]any{"acceptTerms": true}), &v)

	var logs []logEntry
	logs = captureLogs(t, func() {
		resp = c.json(http.MethodPost, "/api/v1/sell/submit", nil)
	})
	require.Equal(t, fiber.StatusAccepted, resp.StatusCode)
	decode(t, resp, &v)
	assert.True(t, v.Submitted)
	assert.Equal(t, "/marketplace", v.RedirectTo)
	assert.True(t, hasAction(logs, "sell.submit"))

	// the submitted draft is frozen until the redirect fires
	resp = c.json(http.MethodPost, "/api/v1/sell/back", nil)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	e = apiErr{}
	decode(t, resp, &e)
	assert.Equal(t, "submitted", e.Reason)

	assert.Equal(t, fiber.StatusNoContent, c.json(http.MethodDelete, "/api/v1/sell", nil).StatusCode)
	v = wizardView{}
	decode(t, c.get("/api/v1/sell"), &v)
	assert.Equal(t, 1, v.Step)
}

func TestSellPageFormFlow(t *testing.T) {
	app := newTestApp(t, testConfig(), sqliteStorage(t))
	c := newClient(t, app)
	c.login("seller")

	resp := c.form(http.MethodPost, "/sell/type", url.Values{"item_type": {"phone"}})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Contains(t, readBody(t, c.get("/sell")), "Smartphone details")

	// missing condition keeps the seller on Details
	resp = c.form(http.MethodPost, "/sell/details", url.Values{
		"spec": {"Flagship"}, "quantity": {"2"}, "nav": {"next"},
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Please complete the required fields")

	resp = c.form(http.MethodPost, "/sell/details", url.Values{
		"spec": {"Flagship"}, "condition": {"Working"}, "quantity": {"2"}, "nav": {"next"},
	})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Contains(t, readBody(t, c.get("/sell")), "Add up to 5 photos")

	// jump back to Details through the progress indicator
	resp = c.form(http.MethodPost, "/sell/jump", url.Values{"step": {"2"}})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Contains(t, readBody(t, c.get("/sell")), "Smartphone details")

	resp = c.form(http.MethodPost, "/sell/jump", url.Values{"step": {"5"}})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = c.form(http.MethodPost, "/sell/explode", url.Values{})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSellSubmitPageRedirects(t *testing.T) {
	cfg := testConfig()
	app := newTestApp(t, cfg, sqliteStorage(t))
	c := newClient(t, app)
	c.login("seller")

	steps := []struct {
		path string
		vals url.Values
	}{
		{"/sell/type", url.Values{"item_type": {"tv"}}},
		{"/sell/details", url.Values{"spec": {`32" LED/LCD`}, "condition": {"Working"}, "quantity": {"1"}, "nav": {"next"}}},
		{"/sell/photos", url.Values{"nav": {"next"}}},
		{"/sell/pricing", url.Values{"price": {"2400"}, "location": {"Delhi, DL"}, "nav": {"next"}}},
		{"/sell/submit", url.Values{"accept_terms": {"on"}}},
	}
	for _, s := range steps {
		resp := c.form(http.MethodPost, s.path, s.vals)
		require.Equal(t, fiber.StatusSeeOther, resp.StatusCode, s.path)
	}

	resp := c.get("/sell")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "3600;url=/marketplace", resp.Header.Get("Refresh"))
	assert.Contains(t, readBody(t, resp), "Listing submitted!")
}

// Values posted by one request must still be intact when later requests
// reuse the connection's buffers.
func TestSellFormFlowKeepsDraftAcrossRequests(t *testing.T) {
	app := newTestApp(t, testConfig(), sqliteStorage(t))
	c := newClient(t, app)
	c.login("seller")

	draft := func() wizardView {
		var v wizardView
		decode(t, c.get("/api/v1/sell"), &v)
		return v
	}

	resp := c.form(http.MethodPost, "/sell/type", url.Values{"item_type": {"laptop"}})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	resp = c.form(http.MethodPost, "/sell/details", url.Values{
		"spec": {`15" Mid-Range`}, "condition": {"Working"}, "quantity": {"1"}, "nav": {"next"},
	})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	v := draft()
	assert.Equal(t, 3, v.Step)
	assert.Equal(t, "laptop", v.Draft.ItemType)
	assert.Equal(t, `15" Mid-Range`, v.Draft.ItemSpec)

	resp = c.form(http.MethodPost, "/sell/photos", url.Values{"nav": {"next"}})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	resp = c.form(http.MethodPost, "/sell/pricing", url.Values{
		"price": {"1800"}, "location": {"Bengaluru"}, "nav": {"next"},
	})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	v = draft()
	assert.Equal(t, 5, v.Step)
	assert.Equal(t, "laptop", v.Draft.ItemType)
	assert.Equal(t, `15" Mid-Range`, v.Draft.ItemSpec)
	assert.Equal(t, "1800", v.Draft.Price)
	assert.Equal(t, "Bengaluru", v.Draft.Location)

	resp = c.form(http.MethodPost, "/sell/submit", url.Values{"accept_terms": {"on"}})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	v = draft()
	assert.True(t, v.Submitted)
	assert.Equal(t, "laptop", v.Draft.ItemType)
	assert.Equal(t, "Bengaluru", v.Draft.Location)
}

func TestLogoutDiscardsDraftAndInbox(t *testing.T) {
	app := newTestApp(t, testConfig(), sqliteStorage(t))
	c := newClient(t, app)
	c.login("seller")

	resp := c.json(http.MethodPost, "/api/v1/sell/type", map[string]string{"itemType": "laptop"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = c.form(http.MethodPost, "/messages/1", url.Values{"text": {"private note for seller one"}})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	resp = c.form(http.MethodPost, "/logout", url.Values{})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	c.login("buyer")

	var v wizardView
	decode(t, c.get("/api/v1/sell"), &v)
	assert.Equal(t, 1, v.Step)
	assert.Empty(t, v.Draft.ItemType)
	assert.NotContains(t, readBody(t, c.get("/messages?c=1")), "private note for seller one")
}
