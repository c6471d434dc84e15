package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddMergesQuantity(t *testing.T) {
	cart := NewCart()
	itemID := uuid.New()
	restaurantID := uuid.New()

	cart.Add(CartEntry{MenuItemID: itemID, RestaurantID: restaurantID, Name: "Burrito", Quantity: 1, UnitPrice: 9.00})
	cart.Add(CartEntry{MenuItemID: itemID, RestaurantID: restaurantID, Name: "Burrito", Quantity: 2, UnitPrice: 9.00})

	require.Len(t, cart.Entries, 1)
	assert.Equal(t, 3, cart.Entries[itemID].Quantity)
}

func TestCartRemove(t *testing.T) {
	cart := NewCart()
	itemID := uuid.New()
	cart.Add(CartEntry{MenuItemID: itemID, RestaurantID: uuid.New(), Name: "Soup", Quantity: 1, UnitPrice: 5.00})

	assert.False(t, cart.Remove(uuid.New()), "removing an absent item reports false")
	assert.True(t, cart.Remove(itemID))
	assert.True(t, cart.IsEmpty())
}

func TestCartGroupByRestaurant(t *testing.T) {
	cart := NewCart()
	restaurantA := uuid.New()
	restaurantB := uuid.New()

	cart.Add(CartEntry{MenuItemID: uuid.New(), RestaurantID: restaurantA, Name: "Ramen", Quantity: 1, UnitPrice: 12.00})
	cart.Add(CartEntry{MenuItemID: uuid.New(), RestaurantID: restaurantA, Name: "Gyoza", Quantity: 2, UnitPrice: 6.00})
	lastOfB := uuid.New()
	cart.Add(CartEntry{MenuItemID: lastOfB, RestaurantID: restaurantB, Name: "Tacos", Quantity: 1, UnitPrice: 8.00})

	groups := cart.GroupByRestaurant()
	require.Len(t, groups, 2)
	assert.Len(t, groups[restaurantA], 2)
	assert.Len(t, groups[restaurantB], 1)

	// Removing a restaurant's last item removes its group.
	cart.Remove(lastOfB)
	groups = cart.GroupByRestaurant()
	require.Len(t, groups, 1)
	assert.NotContains(t, groups, restaurantB)
}
