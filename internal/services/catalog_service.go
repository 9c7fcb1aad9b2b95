package services

import (
	"sort"
	"strings"
	"sync"

	"ecoloop/internal/domain"
	"ecoloop/internal/repos"
)

type SortMode string

const (
	SortRecent    SortMode = "recent"
	SortPriceLow  SortMode = "price-low"
	SortPriceHigh SortMode = "price-high"
)

const All = "all"

// Query is the marketplace filter descriptor. Zero-valued selectors behave as
// "all" and an unknown sort as recent.
type Query struct {
	Category     string
	Type         string
	Location     string
	VerifiedOnly bool
	Search       string
	Sort         SortMode
}

func DefaultQuery() Query {
	return Query{Category: All, Type: All, Location: All, Sort: SortRecent}
}

func (q Query) normalized() Query {
	if q.Category == "" {
		q.Category = All
	}
	if q.Type == "" {
		q.Type = All
	}
	if q.Location == "" {
		q.Location = All
	}
	switch q.Sort {
	case SortPriceLow, SortPriceHigh:
	default:
		q.Sort = SortRecent
	}
	return q
}

// Matches reports whether l satisfies every active predicate of q.
func (q Query) Matches(l domain.Listing) bool {
	q = q.normalized()
	if q.Category != All && l.Category != q.Category {
		return false
	}
	if q.Type != All && string(l.Type) != q.Type {
		return false
	}
	if q.Location != All && !strings.Contains(l.Location, q.Location) {
		return false
	}
	if q.VerifiedOnly && !l.Verified {
		return false
	}
	if q.Search != "" {
		s := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(l.Title), s) && !strings.Contains(strings.ToLower(l.Seller), s) {
			return false
		}
	}
	return true
}

// Filter keeps the listings matching q, in input order. The input is not modified.
func Filter(listings []domain.Listing, q Query) []domain.Listing {
	out := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if q.Matches(l) {
			out = append(out, l)
		}
	}
	return out
}

// Sort orders a copy of listings. Recent is a stable featured-first partition,
// not a date sort.
func Sort(listings []domain.Listing, mode SortMode) []domain.Listing {
	out := append([]domain.Listing(nil), listings...)
	switch mode {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Featured && !out[j].Featured })
	}
	return out
}

// Apply runs the full filter-then-sort pipeline.
func Apply(listings []domain.Listing, q Query) []domain.Listing {
	q = q.normalized()
	return Sort(Filter(listings, q), q.Sort)
}

// CatalogService answers marketplace queries over the static catalog. The
// selector part of a query is memoized since the catalog never changes; free
// text is applied per call so the memo stays bounded by the option lists.
type CatalogService struct {
	Listings *repos.ListingRepo

	mu   sync.Mutex
	memo map[Query][]domain.Listing
}

func NewCatalogService(r *repos.ListingRepo) *CatalogService {
	return &CatalogService{Listings: r, memo: map[Query][]domain.Listing{}}
}

func (s *CatalogService) Search(q Query) []domain.Listing {
	q = q.normalized()
	key := q
	key.Search = ""
	s.mu.Lock()
	res, ok := s.memo[key]
	if !ok {
		res = Apply(s.Listings.All(), key)
		s.memo[key] = res
	}
	s.mu.Unlock()
	if q.Search != "" {
		// filtering keeps relative order, so the sorted base stays sorted
		return Filter(res, Query{Search: q.Search})
	}
	out := make([]domain.Listing, len(res))
	copy(out, res)
	return out
}

func (s *CatalogService) Get(id int) (domain.Listing, error) {
	l, ok := s.Listings.Get(id)
	if !ok {
		return domain.Listing{}, ErrNotFound
	}
	return l, nil
}

// Featured returns the featured listings in catalog order.
func (s *CatalogService) Featured() []domain.Listing {
	var out []domain.Listing
	for _, l := range s.Listings.All() {
		if l.Featured {
			out = append(out, l)
		}
	}
	return out
}

// Categories returns "all" followed by each category in first-seen order.
func (s *CatalogService) Categories() []string {
	return uniqueWithAll(s.Listings.All(), func(l domain.Listing) string { return l.Category })
}

// Locations returns "all" followed by each region token (the part after the
// comma in "City, ST") in first-seen order.
func (s *CatalogService) Locations() []string {
	return uniqueWithAll(s.Listings.All(), func(l domain.Listing) string { return regionOf(l.Location) })
}

func regionOf(loc string) string {
	if i := strings.IndexByte(loc, ','); i >= 0 {
		return strings.TrimSpace(loc[i+1:])
	}
	return strings.TrimSpace(loc)
}

func uniqueWithAll(listings []domain.Listing, key func(domain.Listing) string) []string {
	out := []string{All}
	seen := map[string]bool{}
	for _, l := range listings {
		k := key(l)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
