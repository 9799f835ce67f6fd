package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AchievementCategory groups catalog entries for display.
type AchievementCategory string

const (
	CategoryStreak      AchievementCategory = "streak"
	CategoryWorkouts    AchievementCategory = "workouts"
	CategoryPRs         AchievementCategory = "prs"
	CategorySocial      AchievementCategory = "social"
	CategoryConsistency AchievementCategory = "consistency"
	CategorySeason      AchievementCategory = "season"
)

// Achievement is a fixed catalog entry. The catalog is versioned in code;
// per-user unlock state lives in UserAchievement.
type Achievement struct {
	Key         string              `bson:"key" json:"key"`
	Name        string              `bson:"name" json:"name"`
	Category    AchievementCategory `bson:"category" json:"category"`
	Description string              `bson:"description" json:"description"`
}

// UserAchievement records the unlock of a catalog key for a user.
// The unlock timestamp is set at most once per (user, key) pair.
type UserAchievement struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	Key        string             `bson:"key" json:"key"`
	UnlockedAt time.Time          `bson:"unlockedAt" json:"unlockedAt"`
}
