package model

import "time"

// MaintenanceType enumerates the kinds of maintenance the tracker records.
type MaintenanceType string

const (
	MaintenanceWater  MaintenanceType = "water"
	MaintenanceToilet MaintenanceType = "toilet"
)

// Valid reports whether t is one of the known maintenance types.
func (t MaintenanceType) Valid() bool {
	return t == MaintenanceWater || t == MaintenanceToilet
}

// MaintenanceRecord is a water-bowl or toilet maintenance event.
// PerformedAt is an ISO-8601 datetime string as supplied by the client.
type MaintenanceRecord struct {
	ID          int64           `json:"id"`
	Type        MaintenanceType `json:"type"`
	PerformedAt string          `json:"performedAt"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// MaintenanceStats counts maintenance events per type over a date range.
// Types with no events in the range report 0.
type MaintenanceStats struct {
	Water  int `json:"water"`
	Toilet int `json:"toilet"`
	Total  int `json:"total"`
}
