package model

import "time"

// WeightRecord is a single weigh-in for a pet.
// RecordedDate is a plain YYYY-MM-DD string; Pet is populated on hydrated
// reads and stays nil if the referenced row is missing.
type WeightRecord struct {
	ID           int64     `json:"id"`
	PetID        int64     `json:"petId"`
	Pet          *Pet      `json:"pet,omitempty"`
	Weight       float64   `json:"weight"`
	RecordedDate string    `json:"recordedDate"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
