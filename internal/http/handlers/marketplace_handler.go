package handlers

import (
	"encoding/json"
	"net/url"

	"ecoloop/internal/domain"
	"ecoloop/internal/services"
	"ecoloop/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type MarketplaceHandler struct {
	Catalog *services.CatalogService
}

// ListingCard is a listing as the marketplace and wishlist pages show it.
type ListingCard struct {
	domain.Listing
	Saved      bool
	ContactURL string
}

var sortOptions = []struct{ Value, Label string }{
	{"recent", "Most Recent"},
	{"price-low", "Price: Low to High"},
	{"price-high", "Price: High to Low"},
}

func (h *MarketplaceHandler) query(c *fiber.Ctx) services.Query {
	return services.Query{
		Category:     validate.Selector(c.Query("category", "all"), h.Catalog.Categories()),
		Type:         validate.ListingType(c.Query("type", "all")),
		Location:     validate.Selector(c.Query("location", "all"), h.Catalog.Locations()),
		VerifiedOnly: validate.Bool(c.Query("verified")),
		Search:       validate.Q(c.Query("q")),
		Sort:         services.SortMode(validate.Sort(c.Query("sort", "recent"))),
	}
}

func cards(listings []domain.Listing, saved *services.SavedItems) []ListingCard {
	out := make([]ListingCard, 0, len(listings))
	for _, l := range listings {
		out = append(out, ListingCard{
			Listing:    l,
			Saved:      saved != nil && saved.Contains(l.ID),
			ContactURL: contactURL(l),
		})
	}
	return out
}

// contactURL opens the inbox with a conversation seeded for the listing's seller.
func contactURL(l domain.Listing) string {
	b, _ := json.Marshal(services.SellerContact{
		SellerName:   l.Seller,
		ProductTitle: l.Title,
		ProductImage: l.Image,
	})
	return "/messages?seller=" + url.QueryEscape(string(b))
}

func (h *MarketplaceHandler) Landing(c *fiber.Ctx) error {
	return render(c, "landing", fiber.Map{
		"Featured": cards(h.Catalog.Featured(), savedOf(c)),
	})
}

func (h *MarketplaceHandler) Page(c *fiber.Ctx) error {
	q := h.query(c)
	results := h.Catalog.Search(q)
	return render(c, "marketplace", fiber.Map{
		"Listings":   cards(results, savedOf(c)),
		"Count":      len(results),
		"Query":      q,
		"Categories": h.Catalog.Categories(),
		"Locations":  h.Catalog.Locations(),
		"Sorts":      sortOptions,
		"Back":       c.OriginalURL(),
	})
}

// List is GET /api/v1/listings.
func (h *MarketplaceHandler) List(c *fiber.Ctx) error {
	q := h.query(c)
	results := h.Catalog.Search(q)
	return c.JSON(fiber.Map{
		"items": results,
		"count": len(results),
		"query": fiber.Map{
			"category": q.Category,
			"type":     q.Type,
			"location": q.Location,
			"verified": q.VerifiedOnly,
			"q":        q.Search,
			"sort":     q.Sort,
		},
		"categories": h.Catalog.Categories(),
		"locations":  h.Catalog.Locations(),
	})
}

func (h *MarketplaceHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ListingID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid listing id"})
	}
	l, err := h.Catalog.Get(id)
	if err != nil {
		return apiError(c, "listing.get.fail", err)
	}
	saved := savedOf(c)
	return c.JSON(fiber.Map{"listing": l, "saved": saved != nil && saved.Contains(id)})
}

func (h *MarketplaceHandler) Help(c *fiber.Ctx) error {
	return render(c, "help", nil)
}
