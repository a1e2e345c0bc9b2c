package model

import "time"

// Reservation is a time-bounded hold of Qty units of one variant against one
// pending order. The row itself is the source of truth for what is held:
// retiring a reservation always starts with deleting its row, so two
// concurrent retirements can never both act on the same hold.
type Reservation struct {
	ID               string    `db:"id" json:"id"`
	OrderID          string    `db:"order_id" json:"order_id"`
	ProductVariantID string    `db:"product_variant_id" json:"product_variant_id"`
	Qty              int       `db:"qty" json:"qty"`
	ReservedUntil    time.Time `db:"reserved_until" json:"reserved_until"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}
