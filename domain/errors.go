package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by services. Handlers map these to HTTP statuses,
// nothing gets downgraded to a generic failure.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrAddressNotFound  = errors.New("address not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrCheckoutNotFound = errors.New("checkout not found")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrForbidden        = errors.New("forbidden: you can only access your own resources")
	ErrValidation       = errors.New("validation failed")
)

// InsufficientStockError names the product that could not be reserved so the
// client can show which line item killed the checkout.
type InsufficientStockError struct {
	ProductID   uint
	ProductName string
	Requested   int
	Available   int
}

func (e InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q (id %d): requested %d, available %d",
		e.ProductName, e.ProductID, e.Requested, e.Available)
}

// IsInsufficientStock reports whether err is a stock reservation failure.
func IsInsufficientStock(err error) bool {
	var ise InsufficientStockError
	return errors.As(err, &ise)
}
