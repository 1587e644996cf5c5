package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelClassification(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"not found", NotFound("pet", 42), ErrNotFound},
		{"validation", ValidationFailed("name", "name is required"), ErrValidation},
		{"invalid reference", InvalidReference("foodTypeId", "invalid food type ID"), ErrInvalidReference},
		{"delete blocked", DeleteBlocked("food type", 7), ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
		})
	}
}

func TestClassificationSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("creating feeding schedule: %w", InvalidReference("foodTypeId", "invalid food type ID"))

	if !errors.Is(err, ErrInvalidReference) {
		t.Error("wrapped error lost its ErrInvalidReference classification")
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatal("errors.As failed to extract *AppError from wrapped chain")
	}
	if appErr.Field != "foodTypeId" {
		t.Errorf("Field = %q, want %q", appErr.Field, "foodTypeId")
	}
}

func TestNotFoundMessage(t *testing.T) {
	err := NotFound("pet", 42)
	want := "pet not found with id 42"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
