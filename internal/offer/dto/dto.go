package dto

type ValidateInput struct {
	Code     string  `json:"code"`
	Subtotal float64 `json:"subtotal"`
}

type OfferSummary struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Code          string  `json:"code"`
	DiscountType  string  `json:"discount_type"`
	DiscountValue float64 `json:"discount_value"`
}

type ValidationResult struct {
	Valid      bool         `json:"valid"`
	Offer      OfferSummary `json:"offer"`
	Discount   float64      `json:"discount"`
	Subtotal   float64      `json:"subtotal"`
	FinalTotal float64      `json:"final_total"`
}
