package model

type Product struct {
	BaseModel
	Name         string           `db:"name" json:"name"`
	Slug         *string          `db:"slug" json:"slug"`
	Description  *string          `db:"description" json:"description"`
	BasePrice    float64          `db:"base_price" json:"base_price"`
	MainCategory *string          `db:"main_category" json:"main_category"`
	Category     *string          `db:"category" json:"category"`
	IsActive     bool             `db:"is_active" json:"is_active"`
	Variants     []ProductVariant `db:"-" json:"variants"` // Joined data
}

// ProductVariant is one purchasable SKU. StockQty is the total number of
// physical units owned; ReservedQty is the portion held against pending
// orders. 0 <= ReservedQty <= StockQty holds at all times.
type ProductVariant struct {
	BaseModel
	ProductID   string   `db:"product_id" json:"product_id"`
	SKU         *string  `db:"sku" json:"sku"`
	Size        *string  `db:"size" json:"size"`
	Color       *string  `db:"color" json:"color"`
	Price       *float64 `db:"price" json:"price"` // Nullable, falls back to product base price
	StockQty    int      `db:"stock_qty" json:"stock_qty"`
	ReservedQty int      `db:"reserved_qty" json:"reserved_qty"`
}

// Available is the quantity offerable to new checkouts.
func (v *ProductVariant) Available() int {
	return v.StockQty - v.ReservedQty
}
