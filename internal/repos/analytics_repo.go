package repos

type MonthlySales struct {
	Month  string `json:"month"`
	Sales  int    `json:"sales"`
	Orders int    `json:"orders"`
}

type CategoryShare struct {
	Name  string `json:"name"`
	Value int    `json:"value"` // percent
	Icon  string `json:"icon"`
}

type SellerListing struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Price  int    `json:"price"`
	Views  int    `json:"views"`
	Offers int    `json:"offers"`
	Status string `json:"status"`
	Trend  string `json:"trend"`
}

type Transaction struct {
	ID     int    `json:"id"`
	Buyer  string `json:"buyer"`
	Amount int    `json:"amount"`
	Date   string `json:"date"`
	Status string `json:"status"` // completed | pending
	Items  int    `json:"items"`
}

// AnalyticsRepo serves the seller dashboard's mock figures.
type AnalyticsRepo struct{}

func NewAnalyticsRepo() *AnalyticsRepo { return &AnalyticsRepo{} }

func (r *AnalyticsRepo) Monthly() []MonthlySales {
	return []MonthlySales{
		{Month: "Aug", Sales: 450000, Orders: 12},
		{Month: "Sep", Sales: 680000, Orders: 18},
		{Month: "Oct", Sales: 920000, Orders: 24},
	}
}

func (r *AnalyticsRepo) Categories() []CategoryShare {
	return []CategoryShare{
		{Name: "Laptops", Value: 35, Icon: "💻"},
		{Name: "Mobile", Value: 28, Icon: "📱"},
		{Name: "Servers", Value: 20, Icon: "🖥️"},
		{Name: "Appliances", Value: 17, Icon: "🧺"},
	}
}

func (r *AnalyticsRepo) Listings() []SellerListing {
	return []SellerListing{
		{ID: 1, Title: "Dell Laptop Scrap - 50 Units", Price: 72500, Views: 342, Offers: 12, Status: "active", Trend: "+12%"},
		{ID: 2, Title: "Mixed Mobile Phones - 100 Units", Price: 180000, Views: 521, Offers: 24, Status: "active", Trend: "+28%"},
		{ID: 3, Title: "Server RAM DDR4 - 500 Sticks", Price: 375000, Views: 1240, Offers: 87, Status: "active", Trend: "+45%"},
	}
}

func (r *AnalyticsRepo) Transactions() []Transaction {
	return []Transaction{
		{ID: 1, Buyer: "CollegeLabs Delhi", Amount: 180000, Date: "Oct 15", Status: "completed", Items: 50},
		{ID: 2, Buyer: "Green Recyclers", Amount: 245000, Date: "Oct 12", Status: "completed", Items: 120},
		{ID: 3, Buyer: "EcoTech Solutions", Amount: 125000, Date: "Oct 10", Status: "pending", Items: 75},
	}
}
