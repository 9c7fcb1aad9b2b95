package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listingsResp struct {
	Items []struct {
		ID    int `json:"id"`
		Price int `json:"price"`
	} `json:"items"`
	Count int `json:"count"`
	Query struct {
		Category string `json:"category"`
		Sort     string `json:"sort"`
	} `json:"query"`
}

func ids(r listingsResp) []int {
	out := make([]int, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, it.ID)
	}
	return out
}

func TestListingsAPIFiltersAndSorts(t *testing.T) {
	app := newTestApp(t, testConfig(), sqliteStorage(t))
	c := newClient(t, app)

	var r listingsResp
	decode(t, c.get("/api/v1/listings"), &r)
	assert.Equal(t, []int{1, 2, 4, 8, 3, 5, 6, 7}, ids(r))

	r = listingsResp{}
	decode(t, c.get("/api/v1/listings?sort=price-low"), &r)
	assert.Equal(t, []int{1, 6, 2, 5, 7, 4, 3, 8}, ids(r))

	r = listingsResp{}
	decode(t, c.get("/api/v1/listings?category=PCB"), &r)
	assert.Equal(t, []int{1}, ids(r))

	r = listingsResp{}
	decode(t, c.get("/api/v1/listings?q=dell"), &r)
	assert.Equal(t, []int{1}, ids(r))

	// unknown selector values fall back to "all"
	r = listingsResp{}
	decode(t, c.get("/api/v1/listings?category=Nope&sort=bogus"), &r)
	assert.Equal(t, 8, r.Count)
	assert.Equal(t, "all", r.Query.Category)
	assert.Equal(t, "recent", r.Query.Sort)

	r = listingsResp{}
	decode(t, c.get("/api/v1/listings?q=zzzz"), &r)
	assert.Equal(t, 0, r.Count)
	assert.NotNil(t, r.Items)
}

func TestListingGet(t *testing.T) {
	app := newTestApp(t, testConfig(), sqliteStorage(t))
	c := newClient(t, app)

	assert.Equal(t, fiber.StatusOK, c.get("/api/v1/listings/3").StatusCode)
	assert.Equal(t, fiber.StatusNotFound, c.get("/api/v1/listings/99").StatusCode)
	assert.Equal(t, fiber.StatusBadRequest, c.get("/api/v1/listings/abc").StatusCode)
}

func TestMarketplacePageRenders(t *testing.T) {
	app := newTestApp(t, testConfig(), sqliteStorage(t))
	c := newClient(t, app)

	resp := c.get("/marketplace?type=refurb&verified=true")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "Marketplace")
	assert.Contains(t, body, "Contact seller")

	resp = c.get("/marketplace?q=nothing-like-this")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "No listings found")

	resp = c.get("/")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Featured listings")
}

func TestWishlistToggleAPI(t *testing.T) {
	app := newTestApp(t, testConfig(), sqliteStorage(t))
	c := newClient(t, app)
	c.get("/")

	var tog struct {
		ID    int  `json:"id"`
		Saved bool `json:"saved"`
		Count int  `json:"count"`
	}
	decode(t, c.json(http.MethodPost, "/api/v1/wishlist/2/toggle", nil), &tog)
	assert.True(t, tog.Saved)
	assert.Equal(t, 1, tog.Count)

	decode(t, c.json(http.MethodPost, "/api/v1/wishlist/5/toggle", nil), &tog)
	assert.Equal(t, 2, tog.Count)

	var list struct {
		IDs        []int `json:"ids"`
		Count      int   `json:"count"`
		TotalValue int   `json:"totalValue"`
	}
	decode(t, c.get("/api/v1/wishlist"), &list)
	assert.Equal(t, []int{2, 5}, list.IDs)
	assert.Equal(t, 180000+225000, list.TotalValue)

	decode(t, c.json(http.MethodPost, "/api/v1/wishlist/2/toggle", nil), &tog)
	assert.False(t, tog.Saved)
	assert.Equal(t, 1, tog.Count)

	resp := c.json(http.MethodDelete, "/api/v1/wishlist/5", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list.IDs = nil
	decode(t, c.get("/api/v1/wishlist"), &list)
	assert.Empty(t, list.IDs)
}

func TestWishlistFormToggleSurvivesNewClient(t *testing.T) {
	app := newTestApp(t, testConfig(), sqliteStorage(t))
	c := newClient(t, app)
	c.get("/")

	resp := c.form(http.MethodPost, "/wishlist/toggle", url.Values{"listingId": {"4"}, "back": {"/marketplace?q=x"}})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/marketplace?q=x", resp.Header.Get(fiber.HeaderLocation))

	// same session cookie on a later visit sees the saved item
	again := newClient(t, app)
	again.cookies["sid"] = c.cookies["sid"]
	body := readBody(t, again.get("/wishlist"))
	assert.Contains(t, body, "1 saved item")

	resp = c.form(http.MethodPost, "/wishlist/toggle", url.Values{"listingId": {"nope"}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
