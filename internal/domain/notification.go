package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationType identifies the event a notification carries.
type NotificationType string

const (
	NotificationAchievementUnlocked NotificationType = "achievement_unlocked"
)

// Notification is one entry in a user's notification feed.
// Delivery is fire-and-forget; a failed write never fails the mutation
// that triggered it.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Type      NotificationType   `bson:"type" json:"type"`
	Payload   map[string]string  `bson:"payload,omitempty" json:"payload,omitempty"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
