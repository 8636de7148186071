package domain

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrItemNotInCart    = errors.New("item not in cart")
	ErrCurrencyMismatch = errors.New("currency does not match cart currency")
	ErrMixedCurrency    = errors.New("catalog products must share one currency")
	ErrInvalidProduct   = errors.New("invalid product")
	ErrQuantityOverflow = errors.New("quantity out of range")
)
