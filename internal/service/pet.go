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

// PetService handles business rules for pets.
type PetService struct {
	repo   repository.PetRepository
	logger *slog.Logger
}

func NewPetService(repo repository.PetRepository, logger *slog.Logger) *PetService {
	return &PetService{repo: repo, logger: logger}
}

func (s *PetService) Create(ctx context.Context, in repository.CreatePet) (*model.Pet, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Species = strings.TrimSpace(in.Species)

	if in.Name == "" {
		return nil, apperror.ValidationFailed("name", "pet name is required")
	}
	if in.Species == "" {
		return nil, apperror.ValidationFailed("species", "pet species is required")
	}
	if in.BirthDate != "" && !isDate(in.BirthDate) {
		return nil, apperror.ValidationFailed("birthDate", "birth date must be a valid YYYY-MM-DD date")
	}

	pet, err := s.repo.Create(ctx, in)
	if err != nil {
		s.logger.Error("failed to create pet",
			slog.String("name", in.Name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating pet: %w", err)
	}

	s.logger.Info("pet created", slog.Int64("id", pet.ID), slog.String("name", pet.Name))
	return pet, nil
}

func (s *PetService) GetByID(ctx context.Context, id int64) (*model.Pet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PetService) List(ctx context.Context) ([]model.Pet, error) {
	pets, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list pets", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing pets: %w", err)
	}
	return pets, nil
}

// Update validates only the fields present in the partial input; present
// fields are applied even when set to an empty value where the contract
// allows it (clearing birthDate).
func (s *PetService) Update(ctx context.Context, id int64, in repository.UpdatePet) (*model.Pet, error) {
	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		if trimmed == "" {
			return nil, apperror.ValidationFailed("name", "pet name is required")
		}
		in.Name = &trimmed
	}
	if in.Species != nil {
		trimmed := strings.TrimSpace(*in.Species)
		if trimmed == "" {
			return nil, apperror.ValidationFailed("species", "pet species is required")
		}
		in.Species = &trimmed
	}
	if in.BirthDate != nil && *in.BirthDate != "" && !isDate(*in.BirthDate) {
		return nil, apperror.ValidationFailed("birthDate", "birth date must be a valid YYYY-MM-DD date")
	}

	return s.repo.Update(ctx, id, in)
}

func (s *PetService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Info("pet deleted", slog.Int64("id", id))
	}
	return deleted, nil
}
