package offer

import "errors"

var (
	ErrOfferNotFound  = errors.New("invalid or expired coupon code")
	ErrOfferExpired   = errors.New("this coupon has expired")
	ErrMinOrderNotMet = errors.New("order subtotal below the coupon minimum")
)
