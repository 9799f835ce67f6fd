package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a member of the app. The friend list is maintained by the
// social subsystem; this service only reads it (buddy checks, leaderboards,
// friend-count achievements).
type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name         string               `bson:"name" json:"name"`
	Email        string               `bson:"email" json:"email"` // Should be unique
	PasswordHash string               `bson:"passwordHash" json:"-"`
	Friends      []primitive.ObjectID `bson:"friends,omitempty" json:"friends,omitempty"`
	LifetimeXP   int                  `bson:"lifetimeXp" json:"lifetimeXp"`
	SeasonID     string               `bson:"seasonId,omitempty" json:"seasonId,omitempty"`
	SeasonXP     int                  `bson:"seasonXp" json:"seasonXp"`
	WorkoutCount int                  `bson:"workoutCount" json:"workoutCount"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// IsFriend reports whether the given user is in the friend list.
func (u *User) IsFriend(id primitive.ObjectID) bool {
	for _, f := range u.Friends {
		if f == id {
			return true
		}
	}
	return false
}
