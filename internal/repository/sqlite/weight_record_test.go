package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/markwat1/feeding/internal/apperror"
	"github.com/markwat1/feeding/internal/model"
	"github.com/markwat1/feeding/internal/repository"
)

func createTestWeightRecord(t *testing.T, db *DB, petID int64, weight float64, recordedDate string) *model.WeightRecord {
	t.Helper()
	rec, err := db.WeightRecords().Create(context.Background(), repository.CreateWeightRecord{
		PetID:        petID,
		Weight:       weight,
		RecordedDate: recordedDate,
	})
	if err != nil {
		t.Fatalf("failed to create test weight record: %v", err)
	}
	return rec
}

func TestWeightRecordCreate_HydratesPet(t *testing.T) {
	db := newTestDB(t)
	pet := createTestPet(t, db, "Momo", "Hamster", "2023-05-01")

	rec := createTestWeightRecord(t, db, pet.ID, 0.12, "2023-10-28")
	if rec.Pet == nil {
		t.Fatal("Create() did not hydrate Pet")
	}
	if rec.Pet.Name != "Momo" {
		t.Errorf("Pet.Name = %q, want Momo", rec.Pet.Name)
	}
	if rec.Weight != 0.12 {
		t.Errorf("Weight = %v, want 0.12", rec.Weight)
	}
	if rec.RecordedDate != "2023-10-28" {
		t.Errorf("RecordedDate = %q, want 2023-10-28", rec.RecordedDate)
	}
}

func TestWeightRecordCreate_InvalidPet(t *testing.T) {
	db := newTestDB(t)

	_, err := db.WeightRecords().Create(context.Background(), repository.CreateWeightRecord{
		PetID:        999,
		Weight:       0.12,
		RecordedDate: "2023-10-28",
	})
	if !errors.Is(err, apperror.ErrInvalidReference) {
		t.Fatalf("Create() error = %v, want ErrInvalidReference", err)
	}
}

func TestWeightRecordList_FilterByPet(t *testing.T) {
	db := newTestDB(t)
	momo := createTestPet(t, db, "Momo", "Hamster", "")
	hana := createTestPet(t, db, "Hana", "Rabbit", "")

	createTestWeightRecord(t, db, momo.ID, 0.12, "2023-10-28")
	createTestWeightRecord(t, db, hana.ID, 1.80, "2023-10-28")

	records, err := db.WeightRecords().List(context.Background(), &momo.ID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 1 || records[0].PetID != momo.ID {
		t.Errorf("List(petID) = %+v, want only Momo's record", records)
	}

	all, err := db.WeightRecords().List(context.Background(), nil)
	if err != nil {
		t.Fatalf("List(nil) error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("List(nil) returned %d records, want 2", len(all))
	}
}

func TestWeightRecordFindByPetAndDateRange_ChartOrder(t *testing.T) {
	db := newTestDB(t)
	pet := createTestPet(t, db, "Momo", "Hamster", "")

	createTestWeightRecord(t, db, pet.ID, 0.14, "2023-10-29")
	createTestWeightRecord(t, db, pet.ID, 0.12, "2023-10-27")
	createTestWeightRecord(t, db, pet.ID, 0.13, "2023-10-28")
	createTestWeightRecord(t, db, pet.ID, 0.20, "2023-11-05")

	records, err := db.WeightRecords().FindByPetAndDateRange(
		context.Background(), pet.ID, "2023-10-27", "2023-10-29")
	if err != nil {
		t.Fatalf("FindByPetAndDateRange() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("returned %d records, want 3 (inclusive bounds)", len(records))
	}
	// Oldest first so the chart reads left to right.
	for i, want := range []string{"2023-10-27", "2023-10-28", "2023-10-29"} {
		if records[i].RecordedDate != want {
			t.Errorf("records[%d].RecordedDate = %q, want %q", i, records[i].RecordedDate, want)
		}
	}
}

func TestWeightRecordFindLatestByPet(t *testing.T) {
	db := newTestDB(t)
	pet := createTestPet(t, db, "Momo", "Hamster", "")

	createTestWeightRecord(t, db, pet.ID, 0.12, "2023-10-27")
	latest := createTestWeightRecord(t, db, pet.ID, 0.13, "2023-10-29")
	createTestWeightRecord(t, db, pet.ID, 0.12, "2023-10-28")

	rec, err := db.WeightRecords().FindLatestByPet(context.Background(), pet.ID)
	if err != nil {
		t.Fatalf("FindLatestByPet() error = %v", err)
	}
	if rec.ID != latest.ID {
		t.Errorf("FindLatestByPet() = record %d, want %d", rec.ID, latest.ID)
	}
}

func TestWeightRecordFindLatestByPet_NoRecords(t *testing.T) {
	db := newTestDB(t)
	pet := createTestPet(t, db, "Momo", "Hamster", "")

	_, err := db.WeightRecords().FindLatestByPet(context.Background(), pet.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("FindLatestByPet() error = %v, want ErrNotFound", err)
	}
}

func TestWeightRecordUpdate_Partial(t *testing.T) {
	db := newTestDB(t)
	pet := createTestPet(t, db, "Momo", "Hamster", "")
	rec := createTestWeightRecord(t, db, pet.ID, 0.12, "2023-10-28")

	weight := 0.14
	updated, err := db.WeightRecords().Update(context.Background(), rec.ID,
		repository.UpdateWeightRecord{Weight: &weight})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Weight != 0.14 {
		t.Errorf("Weight = %v, want 0.14", updated.Weight)
	}
	if updated.RecordedDate != "2023-10-28" {
		t.Errorf("RecordedDate = %q, want untouched", updated.RecordedDate)
	}
}
