package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Order statuses. Transitions move forward only; "cancelled" is terminal
// and reachable from any non-terminal status. All transitions are
// admin-driven — nothing moves automatically.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

type OrderItem struct {
	BookID   string `json:"book_id"`
	Name     string `json:"name"`
	Language string `json:"language,omitempty"`
	Quantity int    `json:"quantity"`
	Price    Price  `json:"price"` // unit price snapshot taken at checkout
}

// Fulfillment is the admin-entered shipping metadata attached to an order
// after it is placed.
type Fulfillment struct {
	Carrier           string     `json:"carrier,omitempty"`
	TrackingNumber    string     `json:"tracking_number,omitempty"`
	TrackingURL       string     `json:"tracking_url,omitempty"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
	ActualDelivery    *time.Time `json:"actual_delivery,omitempty"`
	Notes             string     `json:"notes,omitempty"`
}

type Order struct {
	ID            gocql.UUID  `json:"id"`
	OrderNumber   string      `json:"order_number"`
	UserID        string      `json:"user_id,omitempty"` // empty for guest purchases
	GatewayOrder  string      `json:"gateway_order_id"`
	PaymentID     string      `json:"payment_id"`
	Items         []OrderItem `json:"items"`
	ContactName   string      `json:"contact_name"`
	ContactEmail  string      `json:"contact_email"`
	ContactPhone  string      `json:"contact_phone,omitempty"`
	Shipping      Address     `json:"shipping_address"` // snapshot, not a reference
	ShippingFee   Price       `json:"shipping_fee"`
	Total         Price       `json:"total"`
	Status        string      `json:"status"`
	PaymentStatus string      `json:"payment_status"` // "paid" or "refunded"
	Fulfillment   Fulfillment `json:"fulfillment"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     *time.Time  `json:"updated_at,omitempty"`
}

var orderStatusRank = map[string]int{
	OrderPending:    0,
	OrderProcessing: 1,
	OrderShipped:    2,
	OrderDelivered:  3,
}

// ValidOrderStatus reports whether s is a known status.
func ValidOrderStatus(s string) bool {
	if s == OrderCancelled {
		return true
	}
	_, ok := orderStatusRank[s]
	return ok
}

// CanTransitionOrder reports whether an admin may move an order from
// one status to another.
func CanTransitionOrder(from, to string) bool {
	if !ValidOrderStatus(from) || !ValidOrderStatus(to) || from == to {
		return false
	}
	if from == OrderCancelled || from == OrderDelivered {
		return false
	}
	if to == OrderCancelled {
		return true
	}
	return orderStatusRank[to] > orderStatusRank[from]
}
