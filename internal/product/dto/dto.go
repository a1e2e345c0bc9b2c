package dto

// VariantDetail is what checkout needs to price and describe a line item.
// Prices come from here, never from the client.
type VariantDetail struct {
	VariantID   string  `db:"variant_id"`
	ProductID   string  `db:"product_id"`
	ProductName string  `db:"product_name"`
	Size        string  `db:"size"`
	Color       string  `db:"color"`
	UnitPrice   float64 `db:"unit_price"`
}
