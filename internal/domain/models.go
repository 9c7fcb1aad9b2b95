package domain

type ListingType string

const (
	TypeScrap  ListingType = "scrap"
	TypeRefurb ListingType = "refurb"
)

// Listing is a catalog entry. Price and PricePerKg are independent display
// values; nothing derives one from the other.
type Listing struct {
	ID         int               `json:"id"`
	Title      string            `json:"title"`
	Category   string            `json:"category"`
	Type       ListingType       `json:"type"`
	Seller     string            `json:"seller"`
	Location   string            `json:"location"` // "City, StateCode"
	Quantity   string            `json:"quantity"`
	Weight     string            `json:"weight"`
	Price      int               `json:"price"`
	PricePerKg int               `json:"pricePerKg"`
	Recovery   map[string]string `json:"recovery,omitempty"`
	Condition  string            `json:"condition"`
	Verified   bool              `json:"verified"`
	Featured   bool              `json:"featured"`
	PostedDate string            `json:"postedDate"`
	Image      string            `json:"image"`
}

type OrderStatus string

const (
	OrderProcessing     OrderStatus = "processing"
	OrderInTransit      OrderStatus = "in_transit"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
)

func (s OrderStatus) Label() string {
	switch s {
	case OrderProcessing:
		return "Processing"
	case OrderInTransit:
		return "In Transit"
	case OrderOutForDelivery:
		return "Out for Delivery"
	case OrderDelivered:
		return "Delivered"
	}
	return string(s)
}

type TimelineEvent struct {
	Status    string `json:"status"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	Current   bool   `json:"current,omitempty"`
	Icon      string `json:"icon"`
}

type Order struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Seller            string          `json:"seller"`
	Amount            int             `json:"amount"`
	OrderDate         string          `json:"orderDate"`
	EstimatedDelivery string          `json:"estimatedDelivery"`
	Status            OrderStatus     `json:"status"`
	CurrentLocation   string          `json:"currentLocation"`
	Tracking          string          `json:"tracking"`
	Items             int             `json:"items"`
	Weight            string          `json:"weight"`
	Timeline          []TimelineEvent `json:"timeline"`
}

type ProductInfo struct {
	Title string `json:"title"`
	Image string `json:"image,omitempty"`
}

type Conversation struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Role        Role         `json:"role"`
	LastMessage string       `json:"lastMessage"`
	Time        string       `json:"time"`
	Unread      int          `json:"unread"`
	Online      bool         `json:"online"`
	Avatar      string       `json:"avatar"`
	Product     *ProductInfo `json:"productInfo,omitempty"`
}

type Message struct {
	ID     int    `json:"id"`
	Sender string `json:"sender"` // me | them
	Text   string `json:"text"`
	Time   string `json:"time"`
	Avatar string `json:"avatar,omitempty"`
}
