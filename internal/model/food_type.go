package model

import "time"

// FoodType is a kind of food that feeding schedules reference.
// Brand and Description are optional and omitted from JSON when empty.
type FoodType struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
