package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/markwat1/feeding/internal/apperror"
	"github.com/markwat1/feeding/internal/model"
	"github.com/markwat1/feeding/internal/repository"
)

// FoodTypeService handles business rules for food types.
type FoodTypeService struct {
	repo   repository.FoodTypeRepository
	logger *slog.Logger
}

func NewFoodTypeService(repo repository.FoodTypeRepository, logger *slog.Logger) *FoodTypeService {
	return &FoodTypeService{repo: repo, logger: logger}
}

func (s *FoodTypeService) Create(ctx context.Context, in repository.CreateFoodType) (*model.FoodType, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, apperror.ValidationFailed("name", "food type name is required")
	}
	in.Brand = strings.TrimSpace(in.Brand)
	in.Description = strings.TrimSpace(in.Description)

	ft, err := s.repo.Create(ctx, in)
	if err != nil {
		s.logger.Error("failed to create food type",
			slog.String("name", in.Name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating food type: %w", err)
	}

	s.logger.Info("food type created", slog.Int64("id", ft.ID), slog.String("name", ft.Name))
	return ft, nil
}

func (s *FoodTypeService) GetByID(ctx context.Context, id int64) (*model.FoodType, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FoodTypeService) List(ctx context.Context) ([]model.FoodType, error) {
	foodTypes, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list food types", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing food types: %w", err)
	}
	return foodTypes, nil
}

func (s *FoodTypeService) Update(ctx context.Context, id int64, in repository.UpdateFoodType) (*model.FoodType, error) {
	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		if trimmed == "" {
			return nil, apperror.ValidationFailed("name", "food type name is required")
		}
		in.Name = &trimmed
	}
	return s.repo.Update(ctx, id, in)
}

// Delete removes a food type; a conflict error means feeding schedules
// still reference it and the row was left untouched.
func (s *FoodTypeService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Info("food type deleted", slog.Int64("id", id))
	}
	return deleted, nil
}
