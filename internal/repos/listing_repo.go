package repos

import "ecoloop/internal/domain"

// ListingRepo serves the static marketplace catalog. The slice is built once
// and never mutated; callers that reorder must copy first.
type ListingRepo struct{ listings []domain.Listing }

func NewListingRepo() *ListingRepo { return &ListingRepo{listings: seedListings()} }

func NewListingRepoWith(listings []domain.Listing) *ListingRepo {
	return &ListingRepo{listings: listings}
}

// All returns the catalog in catalog order.
func (r *ListingRepo) All() []domain.Listing { return r.listings }

func (r *ListingRepo) Get(id int) (domain.Listing, bool) {
	for _, l := range r.listings {
		if l.ID == id {
			return l, true
		}
	}
	return domain.Listing{}, false
}

func seedListings() []domain.Listing {
	return []domain.Listing{
		{
			ID: 1, Title: "Dell Latitude 5590 Motherboards", Category: "PCB", Type: domain.TypeScrap,
			Seller: "TechRecycle Solutions", Location: "Bengaluru, KA", Quantity: "50 units", Weight: "12.5 kg",
			Price: 72500, PricePerKg: 5800,
			Recovery:  map[string]string{"gold": "12.5g", "copper": "6kg", "silver": "2.5g"},
			Condition: "Heat stressed, non-functional", Verified: true, Image: "🔌", PostedDate: "2 days ago", Featured: true,
		},
		{
			ID: 2, Title: "Working LCD Panels - 15.6\"", Category: "Displays", Type: domain.TypeRefurb,
			Seller: "ScreenSavers Inc", Location: "Mumbai, MH", Quantity: "200 units", Weight: "80 kg",
			Price: 180000, PricePerKg: 2250,
			Condition: "Grade A, tested working", Verified: true, Image: "🖥️", PostedDate: "1 day ago", Featured: true,
		},
		{
			ID: 3, Title: "Mixed Laptop Scrap Lot", Category: "Mixed E-waste", Type: domain.TypeScrap,
			Seller: "College Labs Disposal", Location: "Pune, MH", Quantity: "150 units", Weight: "300 kg",
			Price: 450000, PricePerKg: 1500,
			Recovery:  map[string]string{"gold": "37.5g", "copper": "90kg", "aluminum": "45kg"},
			Condition: "Mixed brands, non-functional", Verified: true, Image: "💻", PostedDate: "3 days ago",
		},
		{
			ID: 4, Title: "Server RAM DDR4 - Working", Category: "Memory", Type: domain.TypeRefurb,
			Seller: "DataCenter Surplus", Location: "Hyderabad, TS", Quantity: "500 sticks", Weight: "15 kg",
			Price: 375000, PricePerKg: 25000,
			Condition: "Tested, 16GB sticks", Verified: true, Image: "🎮", PostedDate: "5 hours ago", Featured: true,
		},
		{
			ID: 5, Title: "Washing Machine Motors", Category: "Motors", Type: domain.TypeScrap,
			Seller: "Appliance Recyclers", Location: "Chennai, TN", Quantity: "100 units", Weight: "450 kg",
			Price: 225000, PricePerKg: 500,
			Recovery:  map[string]string{"copper": "135kg", "steel": "200kg"},
			Condition: "Decommissioned, copper windings intact", Verified: true, Image: "⚙️", PostedDate: "1 week ago",
		},
		{
			ID: 6, Title: "CPU Processors - Intel i5/i7", Category: "Processors", Type: domain.TypeRefurb,
			Seller: "ChipMasters", Location: "Bengaluru, KA", Quantity: "75 units", Weight: "3 kg",
			Price: 112500, PricePerKg: 37500,
			Recovery:  map[string]string{"gold": "2.25g", "copper": "1.5kg"},
			Condition: "Mixed generations, functional", Verified: true, Image: "🖥️", PostedDate: "4 days ago",
		},
		{
			ID: 7, Title: "LED TV Scrap - 32\" to 55\"", Category: "Displays", Type: domain.TypeScrap,
			Seller: "Display Recycling Hub", Location: "Delhi, DL", Quantity: "80 units", Weight: "600 kg",
			Price: 240000, PricePerKg: 400,
			Recovery:  map[string]string{"aluminum": "180kg", "copper": "48kg", "glass": "300kg"},
			Condition: "Display damaged, frames intact", Verified: true, Image: "📺", PostedDate: "2 days ago",
		},
		{
			ID: 8, Title: "Hard Drives - 1TB SATA", Category: "Storage", Type: domain.TypeRefurb,
			Seller: "Storage Solutions Pro", Location: "Noida, UP", Quantity: "300 units", Weight: "180 kg",
			Price: 450000, PricePerKg: 2500,
			Condition: "Wiped & tested, warranty available", Verified: true, Image: "💾", PostedDate: "6 hours ago", Featured: true,
		},
	}
}
