package models

import (
	"time"

	"github.com/google/uuid"
)

// MenuCategory is the closed set of menu item categories
type MenuCategory string

const (
	CategoryAppetizer  MenuCategory = "appetizer"
	CategoryMainCourse MenuCategory = "main course"
	CategoryDessert    MenuCategory = "dessert"
	CategoryBeverage   MenuCategory = "beverage"
	CategorySideDish   MenuCategory = "side dish"
	CategorySpecial    MenuCategory = "special"
)

// IsValid reports whether c is a member of the category domain.
func (c MenuCategory) IsValid() bool {
	switch c {
	case CategoryAppetizer, CategoryMainCourse, CategoryDessert, CategoryBeverage, CategorySideDish, CategorySpecial:
		return true
	}
	return false
}

// MenuItem is a purchasable item belonging to exactly one restaurant
type MenuItem struct {
	ID              uuid.UUID    `json:"id" db:"id"`
	RestaurantID    uuid.UUID    `json:"restaurant_id" db:"restaurant_id"`
	Name            string       `json:"name" db:"name"`
	Description     string       `json:"description" db:"description"`
	Price           float64      `json:"price" db:"price"`
	Category        MenuCategory `json:"category" db:"category"`
	IsVegetarian    bool         `json:"is_vegetarian" db:"is_vegetarian"`
	IsVegan         bool         `json:"is_vegan" db:"is_vegan"`
	IsGlutenFree    bool         `json:"is_gluten_free" db:"is_gluten_free"`
	PreparationTime int          `json:"preparation_time" db:"preparation_time"`
	IsAvailable     bool         `json:"is_available" db:"is_available"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at"`
}

// UpsertMenuItemRequest is the body of POST /api/menu and PUT /api/menu/{id}
type UpsertMenuItemRequest struct {
	RestaurantID    string  `json:"restaurant" validate:"required,uuid4"`
	Name            string  `json:"name" validate:"required,max=100"`
	Description     string  `json:"description" validate:"required,max=500"`
	Price           float64 `json:"price" validate:"required,gt=0"`
	Category        string  `json:"category" validate:"required,oneof=appetizer 'main course' dessert beverage 'side dish' special"`
	IsVegetarian    bool    `json:"is_vegetarian"`
	IsVegan         bool    `json:"is_vegan"`
	IsGlutenFree    bool    `json:"is_gluten_free"`
	PreparationTime int     `json:"preparation_time" validate:"required,gt=0"`
	IsAvailable     *bool   `json:"is_available,omitempty"`
}
