package service

import (
	"context"
	"errors"
	"testing"

	"gymbuddy/app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestNotificationService_ListAndMarkRead verifies the feed roundtrip.
func TestNotificationService_ListAndMarkRead(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	if err := repo.Create(ctx, &domain.Notification{
		UserID:  userID,
		Type:    domain.NotificationAchievementUnlocked,
		Payload: map[string]string{"key": "workouts_10"},
	}); err != nil {
		t.Fatalf("seed notification: %v", err)
	}

	feed, err := svc.List(ctx, userID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(feed) != 1 || feed[0].Read {
		t.Fatalf("feed = %+v, want one unread entry", feed)
	}

	if err := svc.MarkRead(ctx, userID, feed[0].ID); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	feed, _ = svc.List(ctx, userID)
	if !feed[0].Read {
		t.Error("notification still unread after MarkRead")
	}
}

// TestNotificationService_MarkReadUnknown verifies marking a missing
// notification fails with ErrNotificationNotFound.
func TestNotificationService_MarkReadUnknown(t *testing.T) {
	svc := NewNotificationService(&fakeNotificationRepo{})
	err := svc.MarkRead(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	if !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("err = %v, want ErrNotificationNotFound", err)
	}
}
