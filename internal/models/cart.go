package models

import "github.com/google/uuid"

// CartEntry is one menu item held in a customer's cart. Unit price is the
// price observed when the item was added; checkout re-resolves the current
// catalog price before snapshotting it into the order.
type CartEntry struct {
	MenuItemID   uuid.UUID `json:"menu_item_id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	Name         string    `json:"name"`
	Quantity     int       `json:"quantity"`
	UnitPrice    float64   `json:"unit_price"`
}

// Cart is the mutable multiset of menu items a customer intends to order,
// keyed by menu item id.
type Cart struct {
	Entries map[uuid.UUID]*CartEntry `json:"entries"`
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{Entries: make(map[uuid.UUID]*CartEntry)}
}

// Add merges quantity into the entry for the given item.
func (c *Cart) Add(entry CartEntry) {
	if existing, ok := c.Entries[entry.MenuItemID]; ok {
		existing.Quantity += entry.Quantity
		return
	}
	e := entry
	c.Entries[entry.MenuItemID] = &e
}

// Remove deletes the entry for the given item id. Removing the last item of
// a restaurant removes that restaurant's group entirely, since groups are
// derived from entries.
func (c *Cart) Remove(menuItemID uuid.UUID) bool {
	if _, ok := c.Entries[menuItemID]; !ok {
		return false
	}
	delete(c.Entries, menuItemID)
	return true
}

// IsEmpty reports whether the cart holds no entries.
func (c *Cart) IsEmpty() bool {
	return len(c.Entries) == 0
}

// GroupByRestaurant partitions the cart into restaurant groups. One order is
// created per group at checkout.
func (c *Cart) GroupByRestaurant() map[uuid.UUID][]CartEntry {
	groups := make(map[uuid.UUID][]CartEntry)
	for _, entry := range c.Entries {
		groups[entry.RestaurantID] = append(groups[entry.RestaurantID], *entry)
	}
	return groups
}

// AddCartItemRequest is the body of POST /api/cart/items
type AddCartItemRequest struct {
	MenuItemID string `json:"menu_item" validate:"required,uuid4"`
	Quantity   int    `json:"quantity" validate:"required,min=1"`
}

// CheckoutRequest is the body of POST /api/cart/checkout. Pickup times are
// keyed by restaurant id; every restaurant group in the cart must have one.
type CheckoutRequest struct {
	PickupTimes         map[string]string `json:"pickup_times" validate:"required"`
	SpecialInstructions string            `json:"special_instructions,omitempty" validate:"max=500"`
	PaymentMethod       string            `json:"payment_method" validate:"required,oneof=credit_card debit_card cash online_payment"`
}
