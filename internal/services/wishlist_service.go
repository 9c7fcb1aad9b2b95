package services

import (
	"encoding/json"
	"fmt"
	"sort"

	"ecoloop/internal/domain"
	applog "ecoloop/internal/log"
	"ecoloop/internal/repos"
)

// SavedItems is the per-session set of favorited listing ids. Every mutation
// rewrites the whole set to storage.
type SavedItems struct {
	st  Storage
	ids map[int]struct{}
}

func NewSavedItems(st Storage) *SavedItems {
	return &SavedItems{st: st, ids: map[int]struct{}{}}
}

// Hydrate loads the persisted set. Malformed content leaves the set empty.
func (s *SavedItems) Hydrate() error {
	raw, ok, err := s.st.Get(KeyWishlist)
	if err != nil {
		return fmt.Errorf("hydrate wishlist: %w", err)
	}
	s.ids = map[int]struct{}{}
	if !ok {
		return nil
	}
	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		applog.Error(nil, "wishlist.hydrate.corrupt", err, nil)
		return nil
	}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return nil
}

// Toggle flips membership and reports whether id is now saved.
func (s *SavedItems) Toggle(id int) (bool, error) {
	_, had := s.ids[id]
	if had {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
	if err := s.save(); err != nil {
		return had, err
	}
	return !had, nil
}

// Remove is a no-op for ids not in the set, but still rewrites storage.
func (s *SavedItems) Remove(id int) error {
	delete(s.ids, id)
	return s.save()
}

func (s *SavedItems) Contains(id int) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *SavedItems) Count() int { return len(s.ids) }

// IDs returns the members in ascending order.
func (s *SavedItems) IDs() []int {
	out := make([]int, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

func (s *SavedItems) save() error {
	b, err := json.Marshal(s.IDs())
	if err != nil {
		return err
	}
	if err := s.st.Set(KeyWishlist, string(b)); err != nil {
		return fmt.Errorf("persist wishlist: %w", err)
	}
	return nil
}

type WishlistView struct {
	Items      []domain.Listing
	Count      int
	TotalValue int
}

// WishlistService resolves saved ids against the catalog.
type WishlistService struct {
	Listings *repos.ListingRepo
}

func NewWishlistService(r *repos.ListingRepo) *WishlistService { return &WishlistService{Listings: r} }

// View lists saved listings in catalog order. Ids that no longer resolve are
// skipped.
func (s *WishlistService) View(saved *SavedItems) WishlistView {
	var v WishlistView
	for _, l := range s.Listings.All() {
		if !saved.Contains(l.ID) {
			continue
		}
		v.Items = append(v.Items, l)
		v.TotalValue += l.Price
	}
	v.Count = len(v.Items)
	return v
}
