package dto

import "github.com/shakthiprasad243/NaveenTextiles-sub001/internal/model"

type CheckoutItemInput struct {
	ProductVariantID string `json:"product_variant_id"`
	Qty              int    `json:"qty"`
}

type CheckoutInput struct {
	CustomerName    string              `json:"customer_name"`
	CustomerPhone   string              `json:"customer_phone"`
	CustomerEmail   string              `json:"customer_email"`
	ShippingAddress *model.Address      `json:"shipping_address"`
	PaymentMethod   string              `json:"payment_method"`
	Items           []CheckoutItemInput `json:"items"`
}

type OrderFilters struct {
	Status   string
	Page     int
	PageSize int
}
