// Package model defines the data structures used throughout the application.
package model

import "time"

// Pet represents a pet in the household.
//
// BirthDate is a plain YYYY-MM-DD string and is deliberately an empty string
// (not null) when unknown — existing clients key off "" to mean "no birth
// date", so the contract is preserved at the JSON boundary even though the
// column is NULL in storage.
type Pet struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	BirthDate string    `json:"birthDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
