package repository

import (
	"context"

	"gymbuddy/app/internal/catalog"
	"gymbuddy/app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
	// ErrUnavailable surfaces store timeouts/outages; callers may retry.
	ErrUnavailable = RepositoryError("store unavailable")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
// Friend-list mutation belongs to the social subsystem; it is read-only here.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error)
	// ApplyXPDelta shifts the cumulative XP totals and the workout count by
	// the given deltas (negative on delete).
	ApplyXPDelta(ctx context.Context, id primitive.ObjectID, xpDelta, workoutDelta int) error
	// SetSeason stores the recomputed season id and season XP.
	SetSeason(ctx context.Context, id primitive.ObjectID, seasonID string, seasonXP int) error
}

// WorkoutRepository defines the interface for interacting with workout data.
// All per-user reads/writes filter on the owner id, so a workout not owned
// by the caller behaves as not found.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.Workout, error)
	Update(ctx context.Context, workout *domain.Workout) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
	// GetByUserAscending returns the user's full history in chronological
	// order (date, then creation time) for aggregate replay.
	GetByUserAscending(ctx context.Context, userID primitive.ObjectID) ([]*domain.Workout, error)
	GetByUserDescending(ctx context.Context, userID primitive.ObjectID) ([]*domain.Workout, error)
	// RecentDays returns up to limit local-day keys, newest first, optionally
	// excluding one workout (pass primitive.NilObjectID to exclude none).
	RecentDays(ctx context.Context, userID, exclude primitive.ObjectID, limit int) ([]string, error)
	// CountAwarding counts the user's workouts on a local day with XP > 0,
	// optionally excluding one workout.
	CountAwarding(ctx context.Context, userID primitive.ObjectID, dateLocal string, exclude primitive.ObjectID) (int, error)
	// SumSeasonXP sums the awarded XP of all workouts tagged with a season id.
	SumSeasonXP(ctx context.Context, userID primitive.ObjectID, seasonID string) (int, error)
	// PatchMetrics writes back replay-recomputed PR events and volume.
	PatchMetrics(ctx context.Context, id primitive.ObjectID, prEvents []domain.PREvent, totalVolume float64) error
	SetPhotoObjectKey(ctx context.Context, id, userID primitive.ObjectID, objectKey string) error
}

// StatsRepository stores the derived per-user aggregate.
type StatsRepository interface {
	GetByUser(ctx context.Context, userID primitive.ObjectID) (*domain.UserStats, error)
	Upsert(ctx context.Context, stats *domain.UserStats) error
}

// AchievementRepository stores per-user unlocks. Unlocking is an upsert that
// sets the timestamp only on first insert, so re-unlocking is a no-op.
type AchievementRepository interface {
	// UnlockIfAbsent attempts to unlock every key and returns the keys that
	// were newly inserted.
	UnlockIfAbsent(ctx context.Context, userID primitive.ObjectID, keys []string) ([]string, error)
	GetByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.UserAchievement, error)
}

// UserExerciseRepository stores user-defined exercise catalog entries.
type UserExerciseRepository interface {
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]catalog.Exercise, error)
	CountByUser(ctx context.Context, userID primitive.ObjectID) (int, error)
	Create(ctx context.Context, userID primitive.ObjectID, exercise catalog.Exercise) error
}

// NotificationRepository stores the per-user notification feed.
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	ListByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID primitive.ObjectID) error
}
