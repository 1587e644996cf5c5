// Package repository declares the data-access interfaces the service layer
// depends on, together with the input types for creates and partial updates.
//
// Update inputs use pointer fields: a nil field was absent from the request
// and leaves the column untouched, while a non-nil pointer to a zero value
// ("", false, 0) is an explicit assignment and is applied. An update with
// every field nil is a no-op that still returns the current row.
package repository

import (
	"context"

	"github.com/markwat1/feeding/internal/model"
)

type CreatePet struct {
	Name      string
	Species   string
	BirthDate string // empty means unknown, stored as NULL
}

type UpdatePet struct {
	Name      *string
	Species   *string
	BirthDate *string
}

type PetRepository interface {
	Create(ctx context.Context, in CreatePet) (*model.Pet, error)
	GetByID(ctx context.Context, id int64) (*model.Pet, error)
	List(ctx context.Context) ([]model.Pet, error)
	Update(ctx context.Context, id int64, in UpdatePet) (*model.Pet, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type CreateFoodType struct {
	Name        string
	Brand       string
	Description string
}

type UpdateFoodType struct {
	Name        *string
	Brand       *string
	Description *string
}

type FoodTypeRepository interface {
	Create(ctx context.Context, in CreateFoodType) (*model.FoodType, error)
	GetByID(ctx context.Context, id int64) (*model.FoodType, error)
	List(ctx context.Context) ([]model.FoodType, error)
	Update(ctx context.Context, id int64, in UpdateFoodType) (*model.FoodType, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type CreateFeedingSchedule struct {
	Time       string // "HH:MM"
	FoodTypeID int64
	IsActive   bool
}

type UpdateFeedingSchedule struct {
	Time       *string
	FoodTypeID *int64
	IsActive   *bool
}

// FeedingScheduleRepository reads schedules hydrated with their food type.
type FeedingScheduleRepository interface {
	Create(ctx context.Context, in CreateFeedingSchedule) (*model.FeedingSchedule, error)
	GetByID(ctx context.Context, id int64) (*model.FeedingSchedule, error)
	List(ctx context.Context) ([]model.FeedingSchedule, error)
	FindActive(ctx context.Context) ([]model.FeedingSchedule, error)
	Update(ctx context.Context, id int64, in UpdateFeedingSchedule) (*model.FeedingSchedule, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type CreateFeedingRecord struct {
	FeedingScheduleID int64
	ActualTime        string // ISO-8601 datetime
	Completed         bool
	Notes             string
}

type UpdateFeedingRecord struct {
	FeedingScheduleID *int64
	ActualTime        *string
	Completed         *bool
	Notes             *string
}

// FeedingRecordRepository reads records hydrated two levels deep:
// record → schedule → food type. Date-range bounds are YYYY-MM-DD strings
// compared inclusively against the date portion of actual_time. List pages
// the result set when limit is positive; limit <= 0 returns everything.
type FeedingRecordRepository interface {
	Create(ctx context.Context, in CreateFeedingRecord) (*model.FeedingRecord, error)
	GetByID(ctx context.Context, id int64) (*model.FeedingRecord, error)
	List(ctx context.Context, limit, offset int) ([]model.FeedingRecord, error)
	FindByDateRange(ctx context.Context, startDate, endDate string) ([]model.FeedingRecord, error)
	CompletionRate(ctx context.Context, startDate, endDate string) (*model.CompletionStats, error)
	Update(ctx context.Context, id int64, in UpdateFeedingRecord) (*model.FeedingRecord, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type CreateWeightRecord struct {
	PetID        int64
	Weight       float64
	RecordedDate string // YYYY-MM-DD
	Notes        string
}

type UpdateWeightRecord struct {
	PetID        *int64
	Weight       *float64
	RecordedDate *string
	Notes        *string
}

// WeightRecordRepository reads records hydrated with their pet.
type WeightRecordRepository interface {
	Create(ctx context.Context, in CreateWeightRecord) (*model.WeightRecord, error)
	GetByID(ctx context.Context, id int64) (*model.WeightRecord, error)
	List(ctx context.Context, petID *int64) ([]model.WeightRecord, error)
	FindByPetAndDateRange(ctx context.Context, petID int64, startDate, endDate string) ([]model.WeightRecord, error)
	FindLatestByPet(ctx context.Context, petID int64) (*model.WeightRecord, error)
	Update(ctx context.Context, id int64, in UpdateWeightRecord) (*model.WeightRecord, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type CreateMaintenanceRecord struct {
	Type        model.MaintenanceType
	PerformedAt string // ISO-8601 datetime
	Description string
}

type UpdateMaintenanceRecord struct {
	Type        *model.MaintenanceType
	PerformedAt *string
	Description *string
}

type MaintenanceRecordRepository interface {
	Create(ctx context.Context, in CreateMaintenanceRecord) (*model.MaintenanceRecord, error)
	GetByID(ctx context.Context, id int64) (*model.MaintenanceRecord, error)
	List(ctx context.Context, typ *model.MaintenanceType) ([]model.MaintenanceRecord, error)
	FindByDateRange(ctx context.Context, startDate, endDate string, typ *model.MaintenanceType) ([]model.MaintenanceRecord, error)
	FindRecent(ctx context.Context, days int, typ *model.MaintenanceType) ([]model.MaintenanceRecord, error)
	Stats(ctx context.Context, startDate, endDate string) (*model.MaintenanceStats, error)
	Update(ctx context.Context, id int64, in UpdateMaintenanceRecord) (*model.MaintenanceRecord, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
