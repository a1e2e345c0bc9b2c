package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusPacked    OrderStatus = "PACKED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// transitions is the full lifecycle table. CANCELLED and DELIVERED are
// terminal and have no outgoing edges.
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusPacked, OrderStatusCancelled},
	OrderStatusPacked:    {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
}

func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCancelled || s == OrderStatusDelivered
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPacked,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

// ValidStatuses lists every status, for error messages.
func ValidStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusPacked,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled,
	}
}

type Address struct {
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

func (a Address) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *Address) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	case nil:
		return nil
	}
	return fmt.Errorf("cannot scan %T into Address", src)
}

type Order struct {
	BaseModel
	OrderNumber     string      `db:"order_number" json:"order_number"`
	CustomerName    string      `db:"customer_name" json:"customer_name"`
	CustomerPhone   string      `db:"customer_phone" json:"customer_phone"`
	CustomerEmail   *string     `db:"customer_email" json:"customer_email"`
	ShippingAddress *Address    `db:"shipping_address" json:"shipping_address"`
	Subtotal        float64     `db:"subtotal" json:"subtotal"`
	Shipping        float64     `db:"shipping" json:"shipping"`
	Total           float64     `db:"total" json:"total"`
	PaymentMethod   string      `db:"payment_method" json:"payment_method"`
	Status          OrderStatus `db:"status" json:"status"`
	WhatsAppMessage *string     `db:"whatsapp_message" json:"whatsapp_message"`
	ReservedUntil   *time.Time  `db:"reserved_until" json:"reserved_until"`
	Items           []OrderItem `db:"-" json:"items"`
}

type OrderItem struct {
	ID               string  `db:"id" json:"id"`
	OrderID          string  `db:"order_id" json:"order_id"`
	ProductVariantID string  `db:"product_variant_id" json:"product_variant_id"`
	ProductName      string  `db:"product_name" json:"product_name"`
	Size             string  `db:"size" json:"size"`
	Color            string  `db:"color" json:"color"`
	Qty              int     `db:"qty" json:"qty"`
	UnitPrice        float64 `db:"unit_price" json:"unit_price"`
	LineTotal        float64 `db:"line_total" json:"line_total"`
}
