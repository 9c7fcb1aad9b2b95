package services

import (
	"ecoloop/internal/domain"
	"ecoloop/internal/repos"
)

// SellerDashboard is the seller variant of the dashboard.
type SellerDashboard struct {
	Monthly        []repos.MonthlySales
	Categories     []repos.CategoryShare
	Listings       []repos.SellerListing
	Transactions   []repos.Transaction
	TotalRevenue   int
	TotalOrders    int
	ActiveListings int
	PendingAmount  int
}

// BuyerDashboard is the buyer variant of the dashboard.
type BuyerDashboard struct {
	OrderCounts  []StatusCount
	RecentOrders []domain.Order
	SavedCount   int
	SavedValue   int
	Featured     []domain.Listing
	TotalSpent   int
}

// Dashboard carries exactly one variant, chosen by the user's role.
type Dashboard struct {
	Role   domain.Role
	Seller *SellerDashboard
	Buyer  *BuyerDashboard
}

type DashboardService struct {
	Analytics *repos.AnalyticsRepo
	Orders    *OrderService
	Catalog   *CatalogService
	Wishlist  *WishlistService
}

// For builds the dashboard matching u's role. Role only varies content; it
// never gates access.
func (s *DashboardService) For(u domain.User, saved *SavedItems) Dashboard {
	if u.Role == domain.RoleBuyer {
		return Dashboard{Role: u.Role, Buyer: s.buyer(saved)}
	}
	return Dashboard{Role: domain.RoleSeller, Seller: s.seller()}
}

func (s *DashboardService) seller() *SellerDashboard {
	d := &SellerDashboard{
		Monthly:      s.Analytics.Monthly(),
		Categories:   s.Analytics.Categories(),
		Listings:     s.Analytics.Listings(),
		Transactions: s.Analytics.Transactions(),
	}
	for _, m := range d.Monthly {
		d.TotalRevenue += m.Sales
		d.TotalOrders += m.Orders
	}
	for _, l := range d.Listings {
		if l.Status == "active" {
			d.ActiveListings++
		}
	}
	for _, t := range d.Transactions {
		if t.Status == "pending" {
			d.PendingAmount += t.Amount
		}
	}
	return d
}

func (s *DashboardService) buyer(saved *SavedItems) *BuyerDashboard {
	orders := s.Orders.List(All)
	d := &BuyerDashboard{
		OrderCounts: s.Orders.Counts(),
		Featured:    s.Catalog.Featured(),
	}
	for _, o := range orders {
		d.TotalSpent += o.Amount
	}
	if len(orders) > 3 {
		orders = orders[:3]
	}
	d.RecentOrders = orders
	if saved != nil {
		v := s.Wishlist.View(saved)
		d.SavedCount = v.Count
		d.SavedValue = v.TotalValue
	}
	return d
}
