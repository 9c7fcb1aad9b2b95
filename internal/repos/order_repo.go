package repos

import "ecoloop/internal/domain"

// OrderRepo serves the mock order history shown on the tracking page.
type OrderRepo struct{ orders []domain.Order }

func NewOrderRepo() *OrderRepo { return &OrderRepo{orders: seedOrders()} }

func (r *OrderRepo) List() []domain.Order { return r.orders }

func (r *OrderRepo) Get(id string) (domain.Order, bool) {
	for _, o := range r.orders {
		if o.ID == id {
			return o, true
		}
	}
	return domain.Order{}, false
}

func timeline(current int, dates ...string) []domain.TimelineEvent {
	steps := []struct{ status, icon string }{
		{"Order Placed", "📝"},
		{"Payment Confirmed", "💳"},
		{"Seller Processing", "📦"},
		{"Picked Up", "🚚"},
		{"In Transit", "🚛"},
		{"Out for Delivery", "🏃"},
		{"Delivered", "✅"},
	}
	out := make([]domain.TimelineEvent, 0, len(steps))
	for i, s := range steps {
		out = append(out, domain.TimelineEvent{
			Status:    s.status,
			Date:      dates[i],
			Completed: i <= current,
			Current:   i == current,
			Icon:      s.icon,
		})
	}
	return out
}

func seedOrders() []domain.Order {
	return []domain.Order{
		{
			ID: "ORD-2024-001", Title: "MacBook Pro 2019 Parts - 15 Units", Seller: "TechRecycle Pro",
			Amount: 95000, OrderDate: "Oct 18, 2024", EstimatedDelivery: "Oct 25, 2024",
			Status: domain.OrderInTransit, CurrentLocation: "Mumbai Distribution Center",
			Tracking: "TRK1234567890", Items: 15, Weight: "45 kg",
			Timeline: timeline(4, "Oct 18, 10:30 AM", "Oct 18, 10:32 AM", "Oct 18, 2:45 PM",
				"Oct 19, 9:15 AM", "Oct 20, 3:20 PM", "Oct 25", "Oct 25"),
		},
		{
			ID: "ORD-2024-002", Title: "Server RAM DDR4 - 200 Sticks", Seller: "Green Electronics",
			Amount: 180000, OrderDate: "Oct 15, 2024", EstimatedDelivery: "Oct 22, 2024",
			Status: domain.OrderOutForDelivery, CurrentLocation: "Local Delivery Hub - Delhi",
			Tracking: "TRK0987654321", Items: 200, Weight: "12 kg",
			Timeline: timeline(5, "Oct 15, 11:20 AM", "Oct 15, 11:22 AM", "Oct 15, 3:30 PM",
				"Oct 16, 8:00 AM", "Oct 18, 1:15 PM", "Oct 22, 7:30 AM", "Today by 6 PM"),
		},
		{
			ID: "ORD-2024-003", Title: "Dell Laptop Batch - 25 Units", Seller: "EcoRefurb Solutions",
			Amount: 125000, OrderDate: "Oct 10, 2024", EstimatedDelivery: "Oct 17, 2024",
			Status: domain.OrderDelivered, CurrentLocation: "Delivered",
			Tracking: "TRK5555666677", Items: 25, Weight: "62 kg",
			Timeline: timeline(6, "Oct 10, 9:45 AM", "Oct 10, 9:47 AM", "Oct 10, 1:20 PM",
				"Oct 11, 10:30 AM", "Oct 13, 4:00 PM", "Oct 17, 8:00 AM", "Oct 17, 2:30 PM"),
		},
	}
}
