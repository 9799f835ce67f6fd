package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStats is the per-user aggregate derived entirely from the workout
// collection. It is recomputed by full replay after every mutation, never
// patched incrementally, so a recompute is always safe to retry.
type UserStats struct {
	UserID               primitive.ObjectID `bson:"userId" json:"userId"`
	TotalWorkouts        int                `bson:"totalWorkouts" json:"totalWorkouts"`
	TotalVolumeLifetime  float64            `bson:"totalVolumeLifetime" json:"totalVolumeLifetime"`
	BestWeightByExercise map[string]float64 `bson:"bestWeightByExerciseKey" json:"bestWeightByExerciseKey"`
	PRTotal              int                `bson:"prTotal" json:"prTotal"`
	BuddyWorkouts        int                `bson:"buddyWorkouts" json:"buddyWorkouts"`
	WeeksActiveCount     int                `bson:"weeksActiveCount" json:"weeksActiveCount"`
	StreakDays           int                `bson:"streakDays" json:"streakDays"`
	LastWorkoutDateLocal string             `bson:"lastWorkoutDateLocal" json:"lastWorkoutDateLocal"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}
