package models

import (
	"time"

	"github.com/google/uuid"
)

// Address is a restaurant's physical location
type Address struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// DayHours is an open/close pair for a single weekday, "HH:MM" local time
type DayHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// OpeningHours is the weekly opening-hours table, keyed by lowercase weekday
type OpeningHours map[string]DayHours

// Restaurant is a restaurant profile owned by exactly one account
type Restaurant struct {
	ID           uuid.UUID    `json:"id" db:"id"`
	OwnerID      uuid.UUID    `json:"owner_id" db:"owner_id"`
	Name         string       `json:"name" db:"name"`
	Description  string       `json:"description" db:"description"`
	Cuisine      []string     `json:"cuisine" db:"cuisine"`
	Address      Address      `json:"address"`
	Phone        string       `json:"phone" db:"phone"`
	Email        string       `json:"email" db:"email"`
	OpeningHours OpeningHours `json:"opening_hours"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
}

// UpsertRestaurantRequest is the body of POST /api/restaurants and
// PUT /api/restaurants/{id}
type UpsertRestaurantRequest struct {
	Name         string       `json:"name" validate:"required,max=100"`
	Description  string       `json:"description" validate:"max=1000"`
	Cuisine      []string     `json:"cuisine" validate:"required,min=1,dive,required"`
	Address      Address      `json:"address"`
	Phone        string       `json:"phone" validate:"required"`
	Email        string       `json:"email" validate:"required,email"`
	OpeningHours OpeningHours `json:"opening_hours"`
}
