package sqlite

import (
	"context"
	"testing"

	"github.com/markwat1/feeding/internal/model"
	"github.com/markwat1/feeding/internal/repository"
)

// newTestDB opens a fresh in-memory database with the full schema applied.
// Each test gets its own; the connection is torn down with the test.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestPet(t *testing.T, db *DB, name, species, birthDate string) *model.Pet {
	t.Helper()
	pet, err := db.Pets().Create(context.Background(), repository.CreatePet{
		Name:      name,
		Species:   species,
		BirthDate: birthDate,
	})
	if err != nil {
		t.Fatalf("failed to create test pet: %v", err)
	}
	return pet
}

func createTestFoodType(t *testing.T, db *DB, name string) *model.FoodType {
	t.Helper()
	ft, err := db.FoodTypes().Create(context.Background(), repository.CreateFoodType{Name: name})
	if err != nil {
		t.Fatalf("failed to create test food type: %v", err)
	}
	return ft
}

func createTestSchedule(t *testing.T, db *DB, timeOfDay string, foodTypeID int64) *model.FeedingSchedule {
	t.Helper()
	sched, err := db.FeedingSchedules().Create(context.Background(), repository.CreateFeedingSchedule{
		Time:       timeOfDay,
		FoodTypeID: foodTypeID,
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("failed to create test feeding schedule: %v", err)
	}
	return sched
}

func createTestFeedingRecord(t *testing.T, db *DB, scheduleID int64, actualTime string, completed bool) *model.FeedingRecord {
	t.Helper()
	rec, err := db.FeedingRecords().Create(context.Background(), repository.CreateFeedingRecord{
		FeedingScheduleID: scheduleID,
		ActualTime:        actualTime,
		Completed:         completed,
	})
	if err != nil {
		t.Fatalf("failed to create test feeding record: %v", err)
	}
	return rec
}
