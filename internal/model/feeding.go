package model

import "time"

// FeedingSchedule is a recurring feeding slot at a fixed time of day.
// Time is "HH:MM" in 24-hour form. FoodType is populated when the schedule
// is read with hydration; it stays nil if the referenced row is missing.
type FeedingSchedule struct {
	ID         int64     `json:"id"`
	Time       string    `json:"time"`
	FoodTypeID int64     `json:"foodTypeId"`
	FoodType   *FoodType `json:"foodType,omitempty"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// FeedingRecord is one completed (or skipped) feeding against a schedule.
// ActualTime is an ISO-8601 datetime string as supplied by the client.
// There is no UpdatedAt — records keep their original creation timestamp
// even when edited.
type FeedingRecord struct {
	ID                int64            `json:"id"`
	FeedingScheduleID int64            `json:"feedingScheduleId"`
	FeedingSchedule   *FeedingSchedule `json:"feedingSchedule,omitempty"`
	ActualTime        string           `json:"actualTime"`
	Completed         bool             `json:"completed"`
	Notes             string           `json:"notes,omitempty"`
	CreatedAt         time.Time        `json:"createdAt"`
}

// CompletionStats summarises feeding completion over a date range.
// Rate is a percentage rounded to two decimal places; an empty range
// yields a rate of 0 rather than an error.
type CompletionStats struct {
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
	Rate      float64 `json:"rate"`
}
