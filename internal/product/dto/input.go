package dto

type ProductFilters struct {
	Category string
	Search   string
	Page     int
	PageSize int
}
