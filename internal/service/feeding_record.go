package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/markwat1/feeding/internal/apperror"
	"github.com/markwat1/feeding/internal/model"
	"github.com/markwat1/feeding/internal/repository"
)

// FeedingRecordService handles business rules for feeding records.
type FeedingRecordService struct {
	repo   repository.FeedingRecordRepository
	logger *slog.Logger
}

func NewFeedingRecordService(repo repository.FeedingRecordRepository, logger *slog.Logger) *FeedingRecordService {
	return &FeedingRecordService{repo: repo, logger: logger}
}

func (s *FeedingRecordService) Create(ctx context.Context, in repository.CreateFeedingRecord) (*model.FeedingRecord, error) {
	if in.FeedingScheduleID < 1 {
		return nil, apperror.ValidationFailed("feedingScheduleId", "feeding schedule ID must be a positive integer")
	}
	if !isDateTime(in.ActualTime) {
		return nil, apperror.ValidationFailed("actualTime", "actual time must be a valid ISO 8601 datetime")
	}
	if len(in.Notes) > MaxNotesLength {
		return nil, apperror.ValidationFailed("notes", fmt.Sprintf("notes must be %d characters or fewer", MaxNotesLength))
	}

	rec, err := s.repo.Create(ctx, in)
	if err != nil {
		s.logger.Error("failed to create feeding record",
			slog.Int64("feedingScheduleId", in.FeedingScheduleID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating feeding record: %w", err)
	}

	s.logger.Info("feeding record created",
		slog.Int64("id", rec.ID),
		slog.Bool("completed", rec.Completed),
	)
	return rec, nil
}

func (s *FeedingRecordService) GetByID(ctx context.Context, id int64) (*model.FeedingRecord, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all records, or only those in the inclusive date range when
// both bounds are supplied. Without a range, a positive limit pages the
// result set, skipping offset rows first; a range returns every match.
func (s *FeedingRecordService) List(ctx context.Context, startDate, endDate string, limit, offset int) ([]model.FeedingRecord, error) {
	if err := validateDateRange(startDate, endDate); err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, apperror.ValidationFailed("limit", "limit must be a non-negative integer")
	}
	if offset < 0 {
		return nil, apperror.ValidationFailed("offset", "offset must be a non-negative integer")
	}

	var (
		records []model.FeedingRecord
		err     error
	)
	if startDate != "" && endDate != "" {
		records, err = s.repo.FindByDateRange(ctx, startDate, endDate)
	} else {
		records, err = s.repo.List(ctx, limit, offset)
	}
	if err != nil {
		s.logger.Error("failed to list feeding records", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing feeding records: %w", err)
	}
	return records, nil
}

// CompletionRate computes feeding completion statistics over a mandatory
// inclusive date range.
func (s *FeedingRecordService) CompletionRate(ctx context.Context, startDate, endDate string) (*model.CompletionStats, error) {
	if err := requireDateRange(startDate, endDate); err != nil {
		return nil, err
	}
	stats, err := s.repo.CompletionRate(ctx, startDate, endDate)
	if err != nil {
		s.logger.Error("failed to compute completion rate", slog.String("error", err.Error()))
		return nil, fmt.Errorf("computing completion rate: %w", err)
	}
	return stats, nil
}

func (s *FeedingRecordService) Update(ctx context.Context, id int64, in repository.UpdateFeedingRecord) (*model.FeedingRecord, error) {
	if in.FeedingScheduleID != nil && *in.FeedingScheduleID < 1 {
		return nil, apperror.ValidationFailed("feedingScheduleId", "feeding schedule ID must be a positive integer")
	}
	if in.ActualTime != nil && !isDateTime(*in.ActualTime) {
		return nil, apperror.ValidationFailed("actualTime", "actual time must be a valid ISO 8601 datetime")
	}
	if in.Notes != nil && len(*in.Notes) > MaxNotesLength {
		return nil, apperror.ValidationFailed("notes", fmt.Sprintf("notes must be %d characters or fewer", MaxNotesLength))
	}
	return s.repo.Update(ctx, id, in)
}

func (s *FeedingRecordService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Info("feeding record deleted", slog.Int64("id", id))
	}
	return deleted, nil
}
