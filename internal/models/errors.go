package models

import "errors"

// Sentinel errors services return and handlers map to HTTP status codes.
// Validation and authorization failures resolve at the operation boundary:
// no partial writes ever survive a failed operation.
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrRestaurantNotFound  = errors.New("restaurant not found")
	ErrMenuItemNotFound    = errors.New("menu item not found")
	ErrMenuItemUnavailable = errors.New("menu item unavailable")

	ErrOrderNotFound       = errors.New("order not found")
	ErrItemWrongRestaurant = errors.New("menu item belongs to a different restaurant")
	ErrEmptyOrder          = errors.New("order must contain at least one item")
	ErrIllegalTransition   = errors.New("illegal status transition")
	// ErrStatusConflict reports a lost race: the order's status changed
	// between read and conditional write.
	ErrStatusConflict = errors.New("order status changed concurrently")

	ErrForbidden = errors.New("forbidden")

	ErrCartEmpty = errors.New("cart is empty")
	// ErrPickupTimeMissing reports a checkout request that left a restaurant
	// group in the cart without a pickup time.
	ErrPickupTimeMissing = errors.New("pickup time missing for a restaurant in the cart")
)
