package dto

// ReserveItem is one line of a reservation request.
type ReserveItem struct {
	VariantID string
	Qty       int
}

// ReleasedRow describes a ledger release performed while retiring a
// reservation row. Before/After are the variant's reserved_qty around the
// update; Before < Qty means the floor at zero engaged.
type ReleasedRow struct {
	ReservationID string
	VariantID     string
	Qty           int
	Before        int
	After         int
}
