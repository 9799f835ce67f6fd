package service

import (
	"context"

	"gymbuddy/app/internal/domain"
	"gymbuddy/app/internal/gamification"
	"gymbuddy/app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UnlockedAchievement pairs a catalog entry with its unlock timestamp.
type UnlockedAchievement struct {
	domain.Achievement
	UnlockedAt primitive.DateTime `json:"unlockedAt"`
}

// --- Service Interface ---
type AchievementService interface {
	Catalog() []domain.Achievement
	GetForUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Achievement, []UnlockedAchievement, error)
	// UnlockFromStats evaluates the threshold rules against the aggregate
	// and unlocks every newly satisfied key, returning the new keys.
	// Idempotent: re-running with identical stats unlocks nothing.
	UnlockFromStats(ctx context.Context, userID primitive.ObjectID, stats domain.UserStats, friendCount int) ([]string, error)
}

// achievementService implements AchievementService.
type achievementService struct {
	achievementRepo repository.AchievementRepository
}

// NewAchievementService creates a new instance of achievementService.
func NewAchievementService(achievementRepo repository.AchievementRepository) AchievementService {
	return &achievementService{achievementRepo: achievementRepo}
}

// Catalog returns the fixed achievement catalog.
func (s *achievementService) Catalog() []domain.Achievement {
	return gamification.AchievementsCatalog
}

// GetForUser returns the catalog plus the caller's unlocks joined with
// their catalog entries.
func (s *achievementService) GetForUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Achievement, []UnlockedAchievement, error) {
	unlocks, err := s.achievementRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	byKey := make(map[string]domain.Achievement, len(gamification.AchievementsCatalog))
	for _, a := range gamification.AchievementsCatalog {
		byKey[a.Key] = a
	}

	unlocked := make([]UnlockedAchievement, 0, len(unlocks))
	for _, u := range unlocks {
		entry, ok := byKey[u.Key]
		if !ok {
			continue // unlock from a retired catalog version
		}
		unlocked = append(unlocked, UnlockedAchievement{
			Achievement: entry,
			UnlockedAt:  primitive.NewDateTimeFromTime(u.UnlockedAt),
		})
	}
	return gamification.AchievementsCatalog, unlocked, nil
}

// UnlockFromStats evaluates all threshold rules and unlocks what is newly
// satisfied.
func (s *achievementService) UnlockFromStats(ctx context.Context, userID primitive.ObjectID, stats domain.UserStats, friendCount int) ([]string, error) {
	keys := gamification.SatisfiedKeys(stats, friendCount)
	return s.achievementRepo.UnlockIfAbsent(ctx, userID, keys)
}
