package services

import (
	"ecoloop/internal/domain"
	"ecoloop/internal/repos"
)

var orderStatuses = []domain.OrderStatus{
	domain.OrderProcessing,
	domain.OrderInTransit,
	domain.OrderOutForDelivery,
	domain.OrderDelivered,
}

type StatusCount struct {
	Status string
	Label  string
	Count  int
}

type OrderService struct {
	Orders *repos.OrderRepo
}

func NewOrderService(orders *repos.OrderRepo) *OrderService {
	return &OrderService{Orders: orders}
}

// List returns the orders with the given status, or all of them for "all" or "".
func (s *OrderService) List(status string) []domain.Order {
	var out []domain.Order
	for _, o := range s.Orders.List() {
		if status == "" || status == All || string(o.Status) == status {
			out = append(out, o)
		}
	}
	return out
}

// Counts returns "all" followed by one entry per status, counted from the data.
func (s *OrderService) Counts() []StatusCount {
	orders := s.Orders.List()
	out := []StatusCount{{Status: All, Label: "All Orders", Count: len(orders)}}
	for _, st := range orderStatuses {
		n := 0
		for _, o := range orders {
			if o.Status == st {
				n++
			}
		}
		out = append(out, StatusCount{Status: string(st), Label: st.Label(), Count: n})
	}
	return out
}

// Select picks the order with id from list, falling back to the first one.
func Select(list []domain.Order, id string) (domain.Order, bool) {
	for _, o := range list {
		if o.ID == id {
			return o, true
		}
	}
	if len(list) > 0 {
		return list[0], true
	}
	return domain.Order{}, false
}

// ValidStatus reports whether s is "all" or a known order status.
func ValidStatus(s string) bool {
	if s == All {
		return true
	}
	for _, st := range orderStatuses {
		if string(st) == s {
			return true
		}
	}
	return false
}
