package models

import "errors"

var (
	// ErrProductNotFound is returned when a referenced product id is absent
	// from the catalog. The operation aborts and nothing is persisted.
	ErrProductNotFound = errors.New("product not found")
	// ErrStockExceeded is returned when a quantity change would exceed the
	// available stock for a product. The ledger is left unchanged.
	ErrStockExceeded = errors.New("stock limit reached")
	// ErrEmptyCart is returned when checkout is attempted with no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrValidation covers registration, login and review input problems.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials hides whether the username or the password was
	// wrong, so accounts cannot be enumerated.
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrUserNotFound  = errors.New("user not found")
	ErrOrderNotFound = errors.New("order not found")
)
