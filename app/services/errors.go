package services

import (
	"errors"
	"fmt"
)

// Sentinel errors the controllers translate into HTTP statuses.
var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrAlreadyReviewed    = errors.New("product already reviewed")
	ErrNotPurchased       = errors.New("product has no delivered order for this user")
	ErrAlreadyWishlisted  = errors.New("product already in wishlist")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrForbidden          = errors.New("not allowed")
)

// StockError reports which line of a checkout could not be reserved.
type StockError struct {
	ProductName string
	Requested   int
	Available   int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}
