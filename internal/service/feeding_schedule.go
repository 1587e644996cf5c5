package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/markwat1/feeding/internal/apperror"
	"github.com/markwat1/feeding/internal/model"
	"github.com/markwat1/feeding/internal/repository"
)

// FeedingScheduleService handles business rules for feeding schedules.
type FeedingScheduleService struct {
	repo   repository.FeedingScheduleRepository
	logger *slog.Logger
}

func NewFeedingScheduleService(repo repository.FeedingScheduleRepository, logger *slog.Logger) *FeedingScheduleService {
	return &FeedingScheduleService{repo: repo, logger: logger}
}

func (s *FeedingScheduleService) Create(ctx context.Context, in repository.CreateFeedingSchedule) (*model.FeedingSchedule, error) {
	if !timePattern.MatchString(in.Time) {
		return nil, apperror.ValidationFailed("time", "time must be in HH:MM format")
	}
	if in.FoodTypeID < 1 {
		return nil, apperror.ValidationFailed("foodTypeId", "food type ID must be a positive integer")
	}

	sched, err := s.repo.Create(ctx, in)
	if err != nil {
		s.logger.Error("failed to create feeding schedule",
			slog.String("time", in.Time),
			slog.Int64("foodTypeId", in.FoodTypeID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating feeding schedule: %w", err)
	}

	s.logger.Info("feeding schedule created", slog.Int64("id", sched.ID), slog.String("time", sched.Time))
	return sched, nil
}

func (s *FeedingScheduleService) GetByID(ctx context.Context, id int64) (*model.FeedingSchedule, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all schedules, or only active ones when activeOnly is set.
func (s *FeedingScheduleService) List(ctx context.Context, activeOnly bool) ([]model.FeedingSchedule, error) {
	var (
		schedules []model.FeedingSchedule
		err       error
	)
	if activeOnly {
		schedules, err = s.repo.FindActive(ctx)
	} else {
		schedules, err = s.repo.List(ctx)
	}
	if err != nil {
		s.logger.Error("failed to list feeding schedules", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing feeding schedules: %w", err)
	}
	return schedules, nil
}

func (s *FeedingScheduleService) Update(ctx context.Context, id int64, in repository.UpdateFeedingSchedule) (*model.FeedingSchedule, error) {
	if in.Time != nil && !timePattern.MatchString(*in.Time) {
		return nil, apperror.ValidationFailed("time", "time must be in HH:MM format")
	}
	if in.FoodTypeID != nil && *in.FoodTypeID < 1 {
		return nil, apperror.ValidationFailed("foodTypeId", "food type ID must be a positive integer")
	}
	return s.repo.Update(ctx, id, in)
}

func (s *FeedingScheduleService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Info("feeding schedule deleted", slog.Int64("id", id))
	}
	return deleted, nil
}
