package service

import (
	"context"
	"errors"

	"gymbuddy/app/internal/domain"
	"gymbuddy/app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotificationNotFound = errors.New("notification not found")

const notificationListLimit = 200

// --- Service Interface ---
type NotificationService interface {
	List(ctx context.Context, userID primitive.ObjectID) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID primitive.ObjectID) error
}

// notificationService implements NotificationService.
type notificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService creates a new instance of notificationService.
func NewNotificationService(notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

// List returns the caller's feed, newest first.
func (s *notificationService) List(ctx context.Context, userID primitive.ObjectID) ([]domain.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, userID, notificationListLimit)
}

// MarkRead flags one notification as read.
func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID primitive.ObjectID) error {
	err := s.notificationRepo.MarkRead(ctx, userID, notificationID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotificationNotFound
	}
	return err
}
