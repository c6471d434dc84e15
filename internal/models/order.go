package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// PaymentMethod represents how the customer intends to pay at pickup
type PaymentMethod string

const (
	PaymentCreditCard    PaymentMethod = "credit_card"
	PaymentDebitCard     PaymentMethod = "debit_card"
	PaymentCash          PaymentMethod = "cash"
	PaymentOnlinePayment PaymentMethod = "online_payment"
)

// OrderItem is a line item of an order. Name and price are snapshots taken
// at order creation; later menu edits or deletions never change them.
type OrderItem struct {
	MenuItemID uuid.UUID `json:"menu_item_id" db:"menu_item_id"`
	Name       string    `json:"name" db:"name"`
	Quantity   int       `json:"quantity" db:"quantity"`
	Price      float64   `json:"price" db:"price"`
}

// Order is the central aggregate: one customer, one restaurant, an immutable
// item snapshot, a pickup time and a status.
type Order struct {
	ID                  uuid.UUID     `json:"id" db:"id"`
	CustomerID          uuid.UUID     `json:"customer_id" db:"customer_id"`
	RestaurantID        uuid.UUID     `json:"restaurant_id" db:"restaurant_id"`
	Items               []OrderItem   `json:"items"`
	TotalAmount         float64       `json:"total_amount" db:"total_amount"`
	Status              OrderStatus   `json:"status" db:"status"`
	PickupTime          time.Time     `json:"pickup_time" db:"pickup_time"`
	SpecialInstructions string        `json:"special_instructions,omitempty" db:"special_instructions"`
	PaymentMethod       PaymentMethod `json:"payment_method" db:"payment_method"`
	PaymentStatus       PaymentStatus `json:"payment_status" db:"payment_status"`
	CreatedAt           time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at" db:"updated_at"`
}

// OrderStatusHistory is one entry of an order's status log
type OrderStatusHistory struct {
	Status    OrderStatus `json:"status" db:"status"`
	ChangedBy string      `json:"changed_by" db:"changed_by"`
	ChangedAt time.Time   `json:"timestamp" db:"changed_at"`
	Notes     *string     `json:"notes,omitempty" db:"notes"`
}

// CreateOrderRequest is the body of POST /api/orders
type CreateOrderRequest struct {
	RestaurantID        string                   `json:"restaurant" validate:"required,uuid4"`
	Items               []CreateOrderItemRequest `json:"items" validate:"required,min=1,dive"`
	PickupTime          string                   `json:"pickup_time" validate:"required"`
	SpecialInstructions string                   `json:"special_instructions,omitempty" validate:"max=500"`
	PaymentMethod       string                   `json:"payment_method" validate:"required,oneof=credit_card debit_card cash online_payment"`
}

// CreateOrderItemRequest is one requested line of a new order
type CreateOrderItemRequest struct {
	MenuItemID string `json:"menu_item" validate:"required,uuid4"`
	Quantity   int    `json:"quantity" validate:"required,min=1"`
}

// UpdateOrderRequest is the body of PUT /api/orders/{id}. Payment status is
// a distinct optional co-update, applied only when explicitly present.
type UpdateOrderRequest struct {
	Status        *string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed preparing ready completed cancelled"`
	PaymentStatus *string `json:"payment_status,omitempty" validate:"omitempty,oneof=pending paid failed"`
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsValid reports whether s is a member of the status domain.
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether an order currently in status s may move to
// target. The graph is deliberately permissive: any non-terminal state may
// move to any other non-terminal state or to a terminal one. Terminal states
// reject everything, re-applying the same terminal status included.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if !s.IsValid() || !target.IsValid() {
		return false
	}
	return !s.IsTerminal()
}

// IsValid reports whether p is a member of the payment status domain.
func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

// IsValid reports whether m is a member of the payment method domain.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCreditCard, PaymentDebitCard, PaymentCash, PaymentOnlinePayment:
		return true
	}
	return false
}

// TotalOf sums line subtotals from the captured price snapshots.
func TotalOf(items []OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
