package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/markwat1/feeding/internal/apperror"
	"github.com/markwat1/feeding/internal/model"
	"github.com/markwat1/feeding/internal/repository"
)

// WeightRecordService handles business rules for weight records.
type WeightRecordService struct {
	repo   repository.WeightRecordRepository
	logger *slog.Logger
}

func NewWeightRecordService(repo repository.WeightRecordRepository, logger *slog.Logger) *WeightRecordService {
	return &WeightRecordService{repo: repo, logger: logger}
}

func (s *WeightRecordService) Create(ctx context.Context, in repository.CreateWeightRecord) (*model.WeightRecord, error) {
	if in.PetID < 1 {
		return nil, apperror.ValidationFailed("petId", "pet ID must be a positive integer")
	}
	if in.Weight < MinWeight || in.Weight > MaxWeight {
		return nil, apperror.ValidationFailed("weight", fmt.Sprintf("weight must be between %.2f and %.2f", MinWeight, MaxWeight))
	}
	if !isDate(in.RecordedDate) {
		return nil, apperror.ValidationFailed("recordedDate", "recorded date must be a valid YYYY-MM-DD date")
	}

	rec, err := s.repo.Create(ctx, in)
	if err != nil {
		s.logger.Error("failed to create weight record",
			slog.Int64("petId", in.PetID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating weight record: %w", err)
	}

	s.logger.Info("weight record created",
		slog.Int64("id", rec.ID),
		slog.Float64("weight", rec.Weight),
	)
	return rec, nil
}

func (s *WeightRecordService) GetByID(ctx context.Context, id int64) (*model.WeightRecord, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns weight records, optionally filtered to one pet and, when
// both range bounds are supplied with a pet, to an inclusive date range.
func (s *WeightRecordService) List(ctx context.Context, petID *int64, startDate, endDate string) ([]model.WeightRecord, error) {
	if err := validateDateRange(startDate, endDate); err != nil {
		return nil, err
	}

	var (
		records []model.WeightRecord
		err     error
	)
	if petID != nil && startDate != "" && endDate != "" {
		records, err = s.repo.FindByPetAndDateRange(ctx, *petID, startDate, endDate)
	} else {
		records, err = s.repo.List(ctx, petID)
	}
	if err != nil {
		s.logger.Error("failed to list weight records", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing weight records: %w", err)
	}
	return records, nil
}

// Latest returns the most recent weigh-in for a pet.
func (s *WeightRecordService) Latest(ctx context.Context, petID int64) (*model.WeightRecord, error) {
	if petID < 1 {
		return nil, apperror.ValidationFailed("petId", "pet ID must be a positive integer")
	}
	return s.repo.FindLatestByPet(ctx, petID)
}

func (s *WeightRecordService) Update(ctx context.Context, id int64, in repository.UpdateWeightRecord) (*model.WeightRecord, error) {
	if in.PetID != nil && *in.PetID < 1 {
		return nil, apperror.ValidationFailed("petId", "pet ID must be a positive integer")
	}
	if in.Weight != nil && (*in.Weight < MinWeight || *in.Weight > MaxWeight) {
		return nil, apperror.ValidationFailed("weight", fmt.Sprintf("weight must be between %.2f and %.2f", MinWeight, MaxWeight))
	}
	if in.RecordedDate != nil && !isDate(*in.RecordedDate) {
		return nil, apperror.ValidationFailed("recordedDate", "recorded date must be a valid YYYY-MM-DD date")
	}
	return s.repo.Update(ctx, id, in)
}

func (s *WeightRecordService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Info("weight record deleted", slog.Int64("id", id))
	}
	return deleted, nil
}
