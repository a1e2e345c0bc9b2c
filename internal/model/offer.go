package model

import "time"

type Offer struct {
	BaseModel
	Title         string     `db:"title"`
	Description   *string    `db:"description"`
	Code          string     `db:"code"`
	DiscountType  string     `db:"discount_type"` // 'percentage' or 'fixed'
	DiscountValue float64    `db:"discount_value"`
	MinOrderValue *float64   `db:"min_order_value"`
	MaxDiscount   *float64   `db:"max_discount"`
	ValidFrom     time.Time  `db:"valid_from"`
	ValidTill     *time.Time `db:"valid_till"`
	IsActive      bool       `db:"is_active"`
}
