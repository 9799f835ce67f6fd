package service

import (
	"context"
	"errors"
	"strings"

	"gymbuddy/app/internal/catalog"
	"gymbuddy/app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrCatalogFull       = errors.New("custom exercise limit reached")
	ErrDuplicateExercise = errors.New("exercise key already exists")
	ErrInvalidExercise   = errors.New("exercise validation failed")
)

// --- Service Interface ---
type ExerciseService interface {
	// GetCatalog returns the combined built-in + custom catalog for a user.
	GetCatalog(ctx context.Context, userID primitive.ObjectID) (*catalog.Catalog, error)
	// CreateCustomExercise adds a user-defined catalog entry, bounded at
	// catalog.MaxCustomExercises per user.
	CreateCustomExercise(ctx context.Context, userID primitive.ObjectID, key, name, muscleGroup, equipment string, isBodyweight bool) (*catalog.Exercise, error)
}

// exerciseService implements ExerciseService.
type exerciseService struct {
	userExerciseRepo repository.UserExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(userExerciseRepo repository.UserExerciseRepository) ExerciseService {
	return &exerciseService{userExerciseRepo: userExerciseRepo}
}

// GetCatalog returns the caller's combined catalog.
func (s *exerciseService) GetCatalog(ctx context.Context, userID primitive.ObjectID) (*catalog.Catalog, error) {
	custom, err := s.userExerciseRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return catalog.New(custom), nil
}

// CreateCustomExercise validates and stores a user-defined catalog entry.
func (s *exerciseService) CreateCustomExercise(ctx context.Context, userID primitive.ObjectID, key, name, muscleGroup, equipment string, isBodyweight bool) (*catalog.Exercise, error) {
	key = strings.TrimSpace(key)
	name = strings.TrimSpace(name)
	if key == "" || len(key) > 64 || name == "" || len(name) > 80 {
		return nil, ErrInvalidExercise
	}
	if hasUnsafeKeyChars(key) || hasUnsafeValueChars(name) || hasUnsafeValueChars(muscleGroup) || hasUnsafeValueChars(equipment) {
		return nil, ErrUnsafeInput
	}

	count, err := s.userExerciseRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= catalog.MaxCustomExercises {
		return nil, ErrCatalogFull
	}

	exercise := catalog.Exercise{
		Key:          key,
		Name:         name,
		MuscleGroup:  strings.TrimSpace(muscleGroup),
		Equipment:    strings.TrimSpace(equipment),
		IsBodyweight: isBodyweight,
	}
	if err := s.userExerciseRepo.Create(ctx, userID, exercise); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateExercise
		}
		return nil, err
	}
	return &exercise, nil
}
