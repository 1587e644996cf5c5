package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/markwat1/feeding/internal/apperror"
	"github.com/markwat1/feeding/internal/repository"
)

func TestFeedingRecordCreate_HydratesScheduleAndFoodType(t *testing.T) {
	db := newTestDB(t)
	ft := createTestFoodType(t, db, "Pellet Mix")
	sched := createTestSchedule(t, db, "08:00", ft.ID)

	rec := createTestFeedingRecord(t, db, sched.ID, "2023-10-28T08:05:00", true)
	if rec.FeedingSchedule == nil {
		t.Fatal("Create() did not hydrate FeedingSchedule")
	}
	if rec.FeedingSchedule.Time != "08:00" {
		t.Errorf("FeedingSchedule.Time = %q, want 08:00", rec.FeedingSchedule.Time)
	}
	if rec.FeedingSchedule.FoodType == nil {
		t.Fatal("Create() did not hydrate the nested FoodType")
	}
	if rec.FeedingSchedule.FoodType.Name != "Pellet Mix" {
		t.Errorf("nested FoodType.Name = %q, want Pellet Mix", rec.FeedingSchedule.FoodType.Name)
	}
	if !rec.Completed {
		t.Error("Completed = false, want true")
	}
	// The stored text comes back untouched, with no timezone suffix added.
	if rec.ActualTime != "2023-10-28T08:05:00" {
		t.Errorf("ActualTime = %q, want 2023-10-28T08:05:00 verbatim", rec.ActualTime)
	}
}

func TestFeedingRecordCreate_InvalidSchedule(t *testing.T) {
	db := newTestDB(t)

	_, err := db.FeedingRecords().Create(context.Background(), repository.CreateFeedingRecord{
		FeedingScheduleID: 999,
		ActualTime:        "2023-10-28T08:05:00",
		Completed:         true,
	})
	if !errors.Is(err, apperror.ErrInvalidReference) {
		t.Fatalf("Create() error = %v, want ErrInvalidReference", err)
	}

	records, err := db.FeedingRecords().List(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("List() returned %d records after failed create, want 0", len(records))
	}
}

func TestFeedingRecordFindByDateRange_InclusiveBounds(t *testing.T) {
	db := newTestDB(t)
	ft := createTestFoodType(t, db, "Pellet Mix")
	sched := createTestSchedule(t, db, "08:00", ft.ID)

	createTestFeedingRecord(t, db, sched.ID, "2023-10-26T08:00:00", true)
	createTestFeedingRecord(t, db, sched.ID, "2023-10-27T08:00:00", true)
	createTestFeedingRecord(t, db, sched.ID, "2023-10-28T23:59:00", false)
	createTestFeedingRecord(t, db, sched.ID, "2023-10-29T08:00:00", true)

	records, err := db.FeedingRecords().FindByDateRange(context.Background(), "2023-10-27", "2023-10-28")
	if err != nil {
		t.Fatalf("FindByDateRange() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("FindByDateRange() returned %d records, want 2 (both bounds inclusive)", len(records))
	}
	// Newest first.
	if records[0].ActualTime < records[1].ActualTime {
		t.Errorf("FindByDateRange() order = [%q, %q], want newest first",
			records[0].ActualTime, records[1].ActualTime)
	}
}

func TestFeedingRecordList_LimitOffset(t *testing.T) {
	db := newTestDB(t)
	ft := createTestFoodType(t, db, "Pellet Mix")
	sched := createTestSchedule(t, db, "08:00", ft.ID)

	createTestFeedingRecord(t, db, sched.ID, "2023-10-26T08:00:00", true)
	createTestFeedingRecord(t, db, sched.ID, "2023-10-27T08:00:00", true)
	createTestFeedingRecord(t, db, sched.ID, "2023-10-28T08:00:00", false)

	page, err := db.FeedingRecords().List(context.Background(), 2, 1)
	if err != nil {
		t.Fatalf("List(2, 1) error = %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("List(2, 1) returned %d records, want 2", len(page))
	}
	// Newest first, so skipping one row lands on the middle record.
	if page[0].ActualTime != "2023-10-27T08:00:00" {
		t.Errorf("page[0].ActualTime = %q, want 2023-10-27T08:00:00", page[0].ActualTime)
	}

	all, err := db.FeedingRecords().List(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("List(0, 0) error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List(0, 0) returned %d records, want all 3", len(all))
	}
}

func TestFeedingRecordCompletionRate_EmptyRange(t *testing.T) {
	db := newTestDB(t)

	stats, err := db.FeedingRecords().CompletionRate(context.Background(), "2023-01-01", "2023-01-31")
	if err != nil {
		t.Fatalf("CompletionRate() error = %v", err)
	}
	if stats.Total != 0 || stats.Completed != 0 || stats.Rate != 0 {
		t.Errorf("CompletionRate() = %+v, want {0 0 0}", stats)
	}
}

func TestFeedingRecordCompletionRate(t *testing.T) {
	db := newTestDB(t)
	ft := createTestFoodType(t, db, "Test Food")
	sched := createTestSchedule(t, db, "08:00", ft.ID)

	createTestFeedingRecord(t, db, sched.ID, "2023-10-28T08:00:00", true)
	createTestFeedingRecord(t, db, sched.ID, "2023-10-28T18:00:00", false)

	stats, err := db.FeedingRecords().CompletionRate(context.Background(), "2023-10-28", "2023-10-28")
	if err != nil {
		t.Fatalf("CompletionRate() error = %v", err)
	}
	if stats.Total != 2 || stats.Completed != 1 || stats.Rate != 50 {
		t.Errorf("CompletionRate() = %+v, want {2 1 50}", stats)
	}
}

func TestFeedingRecordCompletionRate_Rounding(t *testing.T) {
	db := newTestDB(t)
	ft := createTestFoodType(t, db, "Pellet Mix")
	sched := createTestSchedule(t, db, "08:00", ft.ID)

	createTestFeedingRecord(t, db, sched.ID, "2023-10-28T06:00:00", true)
	createTestFeedingRecord(t, db, sched.ID, "2023-10-28T12:00:00", false)
	createTestFeedingRecord(t, db, sched.ID, "2023-10-28T18:00:00", false)

	stats, err := db.FeedingRecords().CompletionRate(context.Background(), "2023-10-28", "2023-10-28")
	if err != nil {
		t.Fatalf("CompletionRate() error = %v", err)
	}
	if stats.Rate != 33.33 {
		t.Errorf("Rate = %v, want 33.33 (two decimal places)", stats.Rate)
	}
}

func TestFeedingRecordUpdate_Partial(t *testing.T) {
	db := newTestDB(t)
	ft := createTestFoodType(t, db, "Pellet Mix")
	sched := createTestSchedule(t, db, "08:00", ft.ID)
	rec := createTestFeedingRecord(t, db, sched.ID, "2023-10-28T08:05:00", true)

	completed := false
	notes := "left half the bowl"
	updated, err := db.FeedingRecords().Update(context.Background(), rec.ID, repository.UpdateFeedingRecord{
		Completed: &completed,
		Notes:     &notes,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Completed {
		t.Error("Completed = true, want false")
	}
	if updated.Notes != notes {
		t.Errorf("Notes = %q, want %q", updated.Notes, notes)
	}
	if updated.ActualTime != rec.ActualTime {
		t.Errorf("ActualTime = %q, want untouched %q", updated.ActualTime, rec.ActualTime)
	}
	if !updated.CreatedAt.Equal(rec.CreatedAt) {
		t.Error("Update() changed CreatedAt")
	}
}

func TestFeedingRecordDelete(t *testing.T) {
	db := newTestDB(t)
	ft := createTestFoodType(t, db, "Pellet Mix")
	sched := createTestSchedule(t, db, "08:00", ft.ID)
	rec := createTestFeedingRecord(t, db, sched.ID, "2023-10-28T08:05:00", true)

	deleted, err := db.FeedingRecords().Delete(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !deleted {
		t.Error("Delete() = false, want true")
	}

	deleted, err = db.FeedingRecords().Delete(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("second Delete() error = %v", err)
	}
	if deleted {
		t.Error("second Delete() = true, want false")
	}
}
