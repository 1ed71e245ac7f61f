package services

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"maktaba_back_end/internal/database"
	"maktaba_back_end/internal/models"

	"github.com/gocql/gocql"
)

// ================== ORDER STORE ==================
//
// Orders live in the ORDERS keyspace. Line items, the shipping snapshot
// and fulfillment metadata are stored as JSON text columns; lookup tables
// orders_by_user and orders_by_number point back at the primary row.

// NewOrderNumber builds a human-facing order number: MKT-YYYYMMDD-XXXX.
func NewOrderNumber() string {
	return fmt.Sprintf("MKT-%s-%04d", time.Now().Format("20060102"), rand.Intn(10000))
}

// SaveOrder persists a new order and its lookup rows.
func SaveOrder(order *models.Order) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}
	shippingJSON, err := json.Marshal(order.Shipping)
	if err != nil {
		return err
	}
	fulfillmentJSON, err := json.Marshal(order.Fulfillment)
	if err != nil {
		return err
	}

	if err := session.Query(`INSERT INTO orders (order_id, order_number, user_id, gateway_order_id, payment_id,
		items, contact_name, contact_email, contact_phone, shipping_address, shipping_fee, total,
		status, payment_status, fulfillment, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.OrderNumber, order.UserID, order.GatewayOrder, order.PaymentID,
		string(itemsJSON), order.ContactName, order.ContactEmail, order.ContactPhone,
		string(shippingJSON), float64(order.ShippingFee), float64(order.Total),
		order.Status, order.PaymentStatus, string(fulfillmentJSON), order.CreatedAt).Exec(); err != nil {
		return err
	}

	if order.UserID != "" {
		if err := session.Query(`INSERT INTO orders_by_user (user_id, created_at, order_id)
			VALUES (?, ?, ?)`, order.UserID, order.CreatedAt, order.ID).Exec(); err != nil {
			return err
		}
	}
	return session.Query(`INSERT INTO orders_by_number (order_number, order_id)
		VALUES (?, ?)`, order.OrderNumber, order.ID).Exec()
}

func scanOrder(session *gocql.Session, orderID gocql.UUID) (*models.Order, error) {
	var (
		o                                       models.Order
		itemsJSON, shippingJSON, fulfillJSON    string
		shippingFee, total                      float64
		updatedAt                               time.Time
	)
	err := session.Query(`SELECT order_id, order_number, user_id, gateway_order_id, payment_id,
		items, contact_name, contact_email, contact_phone, shipping_address, shipping_fee, total,
		status, payment_status, fulfillment, created_at, updated_at
		FROM orders WHERE order_id = ?`, orderID).Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.GatewayOrder, &o.PaymentID,
		&itemsJSON, &o.ContactName, &o.ContactEmail, &o.ContactPhone,
		&shippingJSON, &shippingFee, &total,
		&o.Status, &o.PaymentStatus, &fulfillJSON, &o.CreatedAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	json.Unmarshal([]byte(itemsJSON), &o.Items)
	json.Unmarshal([]byte(shippingJSON), &o.Shipping)
	json.Unmarshal([]byte(fulfillJSON), &o.Fulfillment)
	o.ShippingFee = models.Price(shippingFee)
	o.Total = models.Price(total)
	if !updatedAt.IsZero() {
		o.UpdatedAt = &updatedAt
	}
	return &o, nil
}

// GetOrder fetches an order by primary id.
func GetOrder(orderID gocql.UUID) (*models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}
	return scanOrder(session, orderID)
}

// GetOrderByNumber resolves the human-facing number to the order.
func GetOrderByNumber(orderNumber string) (*models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}
	var orderID gocql.UUID
	if err := session.Query("SELECT order_id FROM orders_by_number WHERE order_number = ?",
		orderNumber).Scan(&orderID); err != nil {
		return nil, err
	}
	return scanOrder(session, orderID)
}

// ListOrdersByUser returns an account's orders, newest first.
func ListOrdersByUser(userID string) ([]*models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query("SELECT order_id FROM orders_by_user WHERE user_id = ?", userID).Iter()
	var ids []gocql.UUID
	var id gocql.UUID
	for iter.Scan(&id) {
		ids = append(ids, id)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	orders := make([]*models.Order, 0, len(ids))
	for _, oid := range ids {
		if o, err := scanOrder(session, oid); err == nil {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

// ListAllOrders returns every order, optionally filtered by status.
// The back-office paginates client-side over this feed.
func ListAllOrders(status string, limit int) ([]*models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 200
	}

	iter := session.Query("SELECT order_id, status FROM orders LIMIT ?", limit*4).Iter()
	var ids []gocql.UUID
	var id gocql.UUID
	var rowStatus string
	for iter.Scan(&id, &rowStatus) {
		if status == "" || rowStatus == status {
			ids = append(ids, id)
		}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	orders := make([]*models.Order, 0, len(ids))
	for _, oid := range ids {
		o, err := scanOrder(session, oid)
		if err != nil {
			continue
		}
		orders = append(orders, o)
		if len(orders) >= limit {
			break
		}
	}
	return orders, nil
}

// UpdateOrderStatus writes a new status. Transition legality is checked
// by the caller via models.CanTransitionOrder.
func UpdateOrderStatus(orderID gocql.UUID, status string) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}
	return session.Query("UPDATE orders SET status = ?, updated_at = ? WHERE order_id = ?",
		status, time.Now(), orderID).Exec()
}

// UpdateFulfillment replaces the fulfillment metadata on an order.
func UpdateFulfillment(orderID gocql.UUID, f models.Fulfillment) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return session.Query("UPDATE orders SET fulfillment = ?, updated_at = ? WHERE order_id = ?",
		string(raw), time.Now(), orderID).Exec()
}

// UpdatePaymentStatus flips "paid" to "refunded" after a gateway refund.
func UpdatePaymentStatus(orderID gocql.UUID, paymentStatus string) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}
	return session.Query("UPDATE orders SET payment_status = ?, updated_at = ? WHERE order_id = ?",
		paymentStatus, time.Now(), orderID).Exec()
}
