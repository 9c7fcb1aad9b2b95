// Package nav maps request paths to logical pages. It owns no state.
package nav

import "strings"

type Page string

const (
	Landing     Page = "landing"
	Marketplace Page = "marketplace"
	Wishlist    Page = "wishlist"
	Sell        Page = "sell"
	Dashboard   Page = "dashboard"
	Profile     Page = "profile"
	Analytics   Page = "analytics"
	Orders      Page = "orders"
	Messages    Page = "messages"
	Help        Page = "help"
)

type Route struct {
	Path         string
	Page         Page
	Label        string
	RequiresAuth bool
	ShowInNav    bool
}

const LandingPath = "/"

var routes = []Route{
	{Path: "/", Page: Landing, Label: "Home", ShowInNav: true},
	{Path: "/marketplace", Page: Marketplace, Label: "Marketplace", ShowInNav: true},
	{Path: "/wishlist", Page: Wishlist, Label: "Wishlist", ShowInNav: true},
	{Path: "/sell", Page: Sell, Label: "Sell", RequiresAuth: true, ShowInNav: true},
	{Path: "/dashboard", Page: Dashboard, Label: "Dashboard", RequiresAuth: true, ShowInNav: true},
	{Path: "/profile", Page: Profile, Label: "Profile", RequiresAuth: true},
	{Path: "/analytics", Page: Analytics, Label: "Analytics", RequiresAuth: true},
	{Path: "/orders", Page: Orders, Label: "Orders", RequiresAuth: true, ShowInNav: true},
	{Path: "/messages", Page: Messages, Label: "Messages", RequiresAuth: true, ShowInNav: true},
	{Path: "/help", Page: Help, Label: "Help"},
}

// Routes returns the full route table in display order.
func Routes() []Route { return append([]Route(nil), routes...) }

// Resolve maps an exact path (trailing slash ignored) to its route. Anything
// unknown resolves to the landing page.
func Resolve(path string) Route {
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	for _, r := range routes {
		if r.Path == path {
			return r
		}
	}
	return routes[0]
}

// Lookup is Resolve without the landing fallback.
func Lookup(path string) (Route, bool) {
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	for _, r := range routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

// NavItem is a header link with its active state for the current path.
type NavItem struct {
	Route
	Active bool
}

// NavItems lists the header links for the page at current.
func NavItems(current string) []NavItem {
	cur := Resolve(current).Page
	out := make([]NavItem, 0, len(routes))
	for _, r := range routes {
		if !r.ShowInNav {
			continue
		}
		out = append(out, NavItem{Route: r, Active: r.Page == cur})
	}
	return out
}

type sessionEnder interface {
	Logout() error
}

// Logout ends the session and returns where to go next.
func Logout(s sessionEnder) (string, error) {
	if err := s.Logout(); err != nil {
		return "", err
	}
	return LandingPath, nil
}
