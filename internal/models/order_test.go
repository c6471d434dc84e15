package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	nonTerminal := []OrderStatus{StatusPending, StatusConfirmed, StatusPreparing, StatusReady}
	terminal := []OrderStatus{StatusCompleted, StatusCancelled}
	all := append(append([]OrderStatus{}, nonTerminal...), terminal...)

	t.Run("non-terminal states may move anywhere in the domain", func(t *testing.T) {
		for _, from := range nonTerminal {
			for _, to := range all {
				assert.True(t, from.CanTransitionTo(to), "%s -> %s", from, to)
			}
		}
	})

	t.Run("terminal states reject every transition", func(t *testing.T) {
		for _, from := range terminal {
			for _, to := range all {
				assert.False(t, from.CanTransitionTo(to), "%s -> %s", from, to)
			}
		}
	})

	t.Run("re-applying a terminal status is rejected", func(t *testing.T) {
		assert.False(t, StatusCancelled.CanTransitionTo(StatusCancelled))
		assert.False(t, StatusCompleted.CanTransitionTo(StatusCompleted))
	})

	t.Run("unknown statuses never transition", func(t *testing.T) {
		assert.False(t, OrderStatus("shipped").CanTransitionTo(StatusReady))
		assert.False(t, StatusPending.CanTransitionTo(OrderStatus("shipped")))
	})
}

func TestOrderStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusPreparing.IsTerminal())
	assert.False(t, StatusReady.IsTerminal())
}

func TestTotalOf(t *testing.T) {
	items := []OrderItem{
		{MenuItemID: uuid.New(), Name: "Pad Thai", Quantity: 2, Price: 11.50},
		{MenuItemID: uuid.New(), Name: "Spring Rolls", Quantity: 1, Price: 4.25},
		{MenuItemID: uuid.New(), Name: "Iced Tea", Quantity: 3, Price: 2.00},
	}

	assert.InDelta(t, 33.25, TotalOf(items), 0.0001)
	assert.Zero(t, TotalOf(nil))
}
