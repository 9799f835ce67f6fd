package service

import (
	"context"
	"errors"
	"log"
	"sort"

	"gymbuddy/app/internal/gamification"
	"gymbuddy/app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RankStatus is the caller's position on the rank ladder plus the current
// season window.
type RankStatus struct {
	Rank     gamification.RankInfo
	SeasonID string
	SeasonXP int
}

// LeaderboardEntry is one row of the friends season leaderboard.
type LeaderboardEntry struct {
	UserID     primitive.ObjectID
	Name       string
	SeasonXP   int
	LifetimeXP int
	Rank       gamification.RankInfo
}

// --- Service Interface ---
type RankService interface {
	GetRank(ctx context.Context, userID primitive.ObjectID) (*RankStatus, error)
	// FriendsSeasonLeaderboard ranks the caller and their friends by season
	// XP (recomputed for the caller on read) and awards season-placement
	// achievements best-effort.
	FriendsSeasonLeaderboard(ctx context.Context, userID primitive.ObjectID) (string, []LeaderboardEntry, error)
}

// rankService implements RankService.
type rankService struct {
	workoutRepo     repository.WorkoutRepository
	userRepo        repository.UserRepository
	achievementRepo repository.AchievementRepository
}

// NewRankService creates a new instance of rankService.
func NewRankService(workoutRepo repository.WorkoutRepository, userRepo repository.UserRepository, achievementRepo repository.AchievementRepository) RankService {
	return &rankService{
		workoutRepo:     workoutRepo,
		userRepo:        userRepo,
		achievementRepo: achievementRepo,
	}
}

// GetRank recomputes the caller's season XP and maps lifetime XP onto the
// rank ladder.
func (s *rankService) GetRank(ctx context.Context, userID primitive.ObjectID) (*RankStatus, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	seasonID, seasonXP, err := recomputeSeasonXP(ctx, s.workoutRepo, s.userRepo, userID)
	if err != nil {
		return nil, err
	}

	return &RankStatus{
		Rank:     gamification.GetRank(user.LifetimeXP),
		SeasonID: seasonID,
		SeasonXP: seasonXP,
	}, nil
}

// FriendsSeasonLeaderboard builds the caller's season board. Placement
// achievements are awarded from the ranked list; failures are logged, never
// surfaced, since a missed unlock self-heals on the next read.
func (s *rankService) FriendsSeasonLeaderboard(ctx context.Context, userID primitive.ObjectID) (string, []LeaderboardEntry, error) {
	me, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrUserNotFound
		}
		return "", nil, err
	}

	seasonID, _, err := recomputeSeasonXP(ctx, s.workoutRepo, s.userRepo, userID)
	if err != nil {
		return "", nil, err
	}

	ids := append([]primitive.ObjectID{userID}, me.Friends...)
	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return "", nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, LeaderboardEntry{
			UserID:     u.ID,
			Name:       u.Name,
			SeasonXP:   u.SeasonXP,
			LifetimeXP: u.LifetimeXP,
			Rank:       gamification.GetRank(u.LifetimeXP),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SeasonXP > entries[j].SeasonXP
	})

	for placement, entry := range entries {
		keys := gamification.PlacementKeys(placement + 1)
		if len(keys) == 0 {
			break // sorted, so later placements earn nothing either
		}
		if _, err := s.achievementRepo.UnlockIfAbsent(ctx, entry.UserID, keys); err != nil {
			log.Printf("WARN: season placement unlock for user %s failed: %v", entry.UserID.Hex(), err)
		}
	}

	return seasonID, entries, nil
}
