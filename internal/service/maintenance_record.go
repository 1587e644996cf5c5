package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/markwat1/feeding/internal/apperror"
	"github.com/markwat1/feeding/internal/model"
	"github.com/markwat1/feeding/internal/repository"
)

// MaintenanceRecordService handles business rules for maintenance records
// (water changes and toilet cleanings).
type MaintenanceRecordService struct {
	repo   repository.MaintenanceRecordRepository
	logger *slog.Logger
}

func NewMaintenanceRecordService(repo repository.MaintenanceRecordRepository, logger *slog.Logger) *MaintenanceRecordService {
	return &MaintenanceRecordService{repo: repo, logger: logger}
}

func (s *MaintenanceRecordService) Create(ctx context.Context, in repository.CreateMaintenanceRecord) (*model.MaintenanceRecord, error) {
	if !in.Type.Valid() {
		return nil, apperror.ValidationFailed("type", "type must be either water or toilet")
	}
	if !isDateTime(in.PerformedAt) {
		return nil, apperror.ValidationFailed("performedAt", "performed at must be a valid ISO 8601 datetime")
	}
	if len(in.Description) > MaxNotesLength {
		return nil, apperror.ValidationFailed("description", fmt.Sprintf("description must be %d characters or fewer", MaxNotesLength))
	}

	rec, err := s.repo.Create(ctx, in)
	if err != nil {
		s.logger.Error("failed to create maintenance record",
			slog.String("type", string(in.Type)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating maintenance record: %w", err)
	}

	s.logger.Info("maintenance record created",
		slog.Int64("id", rec.ID),
		slog.String("type", string(rec.Type)),
	)
	return rec, nil
}

func (s *MaintenanceRecordService) GetByID(ctx context.Context, id int64) (*model.MaintenanceRecord, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns maintenance records, optionally filtered by type and, when
// both bounds are supplied, by an inclusive date range.
func (s *MaintenanceRecordService) List(ctx context.Context, typ *model.MaintenanceType, startDate, endDate string) ([]model.MaintenanceRecord, error) {
	if typ != nil && !typ.Valid() {
		return nil, apperror.ValidationFailed("type", "type must be either water or toilet")
	}
	if err := validateDateRange(startDate, endDate); err != nil {
		return nil, err
	}

	var (
		records []model.MaintenanceRecord
		err     error
	)
	if startDate != "" && endDate != "" {
		records, err = s.repo.FindByDateRange(ctx, startDate, endDate, typ)
	} else {
		records, err = s.repo.List(ctx, typ)
	}
	if err != nil {
		s.logger.Error("failed to list maintenance records", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing maintenance records: %w", err)
	}
	return records, nil
}

// Recent returns records from the last N days; days falls back to
// DefaultRecentDays when not positive.
func (s *MaintenanceRecordService) Recent(ctx context.Context, days int, typ *model.MaintenanceType) ([]model.MaintenanceRecord, error) {
	if typ != nil && !typ.Valid() {
		return nil, apperror.ValidationFailed("type", "type must be either water or toilet")
	}
	if days <= 0 {
		days = DefaultRecentDays
	}
	records, err := s.repo.FindRecent(ctx, days, typ)
	if err != nil {
		s.logger.Error("failed to list recent maintenance records", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing recent maintenance records: %w", err)
	}
	return records, nil
}

// Stats counts maintenance events per type over a mandatory date range.
func (s *MaintenanceRecordService) Stats(ctx context.Context, startDate, endDate string) (*model.MaintenanceStats, error) {
	if err := requireDateRange(startDate, endDate); err != nil {
		return nil, err
	}
	stats, err := s.repo.Stats(ctx, startDate, endDate)
	if err != nil {
		s.logger.Error("failed to compute maintenance stats", slog.String("error", err.Error()))
		return nil, fmt.Errorf("computing maintenance stats: %w", err)
	}
	return stats, nil
}

func (s *MaintenanceRecordService) Update(ctx context.Context, id int64, in repository.UpdateMaintenanceRecord) (*model.MaintenanceRecord, error) {
	if in.Type != nil && !in.Type.Valid() {
		return nil, apperror.ValidationFailed("type", "type must be either water or toilet")
	}
	if in.PerformedAt != nil && !isDateTime(*in.PerformedAt) {
		return nil, apperror.ValidationFailed("performedAt", "performed at must be a valid ISO 8601 datetime")
	}
	if in.Description != nil && len(*in.Description) > MaxNotesLength {
		return nil, apperror.ValidationFailed("description", fmt.Sprintf("description must be %d characters or fewer", MaxNotesLength))
	}
	return s.repo.Update(ctx, id, in)
}

func (s *MaintenanceRecordService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Info("maintenance record deleted", slog.Int64("id", id))
	}
	return deleted, nil
}
