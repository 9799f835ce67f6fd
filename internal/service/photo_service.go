package service

import (
	"context"
	"errors"
	"fmt"

	"gymbuddy/app/internal/repository"
	"gymbuddy/app/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNoPhoto = errors.New("workout has no photo")

// --- Service Interface ---
type PhotoService interface {
	// RequestUploadURL generates a presigned PUT URL for a progress photo
	// and records the object key on the workout.
	RequestUploadURL(ctx context.Context, userID, workoutID primitive.ObjectID, contentType string) (string, error)
	// GetDownloadURL generates a presigned GET URL for the workout's photo.
	GetDownloadURL(ctx context.Context, userID, workoutID primitive.ObjectID) (string, error)
}

// photoService implements PhotoService.
type photoService struct {
	workoutRepo repository.WorkoutRepository
	fileStorage storage.FileStorage
}

// NewPhotoService creates a new instance of photoService.
func NewPhotoService(workoutRepo repository.WorkoutRepository, fileStorage storage.FileStorage) PhotoService {
	return &photoService{workoutRepo: workoutRepo, fileStorage: fileStorage}
}

// RequestUploadURL issues a presigned upload URL. The object key embeds the
// owner and workout id plus a random component so keys never collide.
func (s *photoService) RequestUploadURL(ctx context.Context, userID, workoutID primitive.ObjectID, contentType string) (string, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrWorkoutNotFound
		}
		return "", err
	}

	objectKey := fmt.Sprintf("photos/%s/%s/%s", userID.Hex(), workout.ID.Hex(), uuid.NewString())
	url, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", err
	}

	if err := s.workoutRepo.SetPhotoObjectKey(ctx, workoutID, userID, objectKey); err != nil {
		return "", err
	}
	return url, nil
}

// GetDownloadURL issues a presigned download URL for the stored photo.
func (s *photoService) GetDownloadURL(ctx context.Context, userID, workoutID primitive.ObjectID) (string, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrWorkoutNotFound
		}
		return "", err
	}
	if workout.PhotoObjectKey == "" {
		return "", ErrNoPhoto
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, workout.PhotoObjectKey, storage.DefaultPresignedURLExpiry)
}
