package dto

type SweepResult struct {
	Released        int `json:"reservations_released"`
	OrdersCancelled int `json:"orders_cancelled"`
}
