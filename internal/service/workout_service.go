package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"gymbuddy/app/internal/catalog"
	"gymbuddy/app/internal/domain"
	"gymbuddy/app/internal/gamification"
	"gymbuddy/app/internal/repository"
	"gymbuddy/app/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrUnknownBuddy    = errors.New("buddy must be a confirmed friend")
)

// streakScanLimit bounds the day walk; must exceed the longest streak
// achievement threshold (streak_100).
const streakScanLimit = 120

// Totals is the user's cumulative XP state after a mutation.
type Totals struct {
	LifetimeXP   int
	SeasonID     string
	SeasonXP     int
	WorkoutCount int
	Stats        *domain.UserStats
}

// WorkoutResult is returned by submit/edit.
type WorkoutResult struct {
	Workout *domain.Workout
	XPDelta int
	Totals  Totals
}

// --- Service Interface ---
type WorkoutService interface {
	SubmitWorkout(ctx context.Context, userID primitive.ObjectID, input WorkoutInput) (*WorkoutResult, error)
	EditWorkout(ctx context.Context, userID, workoutID primitive.ObjectID, input WorkoutInput) (*WorkoutResult, error)
	DeleteWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) (*Totals, error)
	GetWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error)
	ListWorkouts(ctx context.Context, userID primitive.ObjectID) ([]*domain.Workout, *Totals, error)
	// RecomputeAggregates replays the full history into the derived
	// aggregate. Pure function of stored history, safe to retry; it is the
	// recovery path after any partial failure.
	RecomputeAggregates(ctx context.Context, userID primitive.ObjectID) (*domain.UserStats, error)
}

// workoutService implements WorkoutService.
//
// Mutations for one user are serialized by an in-process keyed mutex: the
// engine's replay is idempotent but not safe under concurrent mutations by
// the same user (best-weight table and daily award count can race).
// Multi-instance deployments need external per-user serialization on top.
type workoutService struct {
	workoutRepo      repository.WorkoutRepository
	userRepo         repository.UserRepository
	statsRepo        repository.StatsRepository
	achievementRepo  repository.AchievementRepository
	userExerciseRepo repository.UserExerciseRepository
	notificationRepo repository.NotificationRepository
	fileStorage      storage.FileStorage

	userLocks sync.Map // userID hex -> *sync.Mutex
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(
	workoutRepo repository.WorkoutRepository,
	userRepo repository.UserRepository,
	statsRepo repository.StatsRepository,
	achievementRepo repository.AchievementRepository,
	userExerciseRepo repository.UserExerciseRepository,
	notificationRepo repository.NotificationRepository,
	fileStorage storage.FileStorage,
) WorkoutService {
	return &workoutService{
		workoutRepo:      workoutRepo,
		userRepo:         userRepo,
		statsRepo:        statsRepo,
		achievementRepo:  achievementRepo,
		userExerciseRepo: userExerciseRepo,
		notificationRepo: notificationRepo,
		fileStorage:      fileStorage,
	}
}

func (s *workoutService) lockUser(userID primitive.ObjectID) func() {
	muRaw, _ := s.userLocks.LoadOrStore(userID.Hex(), &sync.Mutex{})
	mu := muRaw.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// loadCatalog builds the combined built-in + custom catalog for a user.
func (s *workoutService) loadCatalog(ctx context.Context, userID primitive.ObjectID) (*catalog.Catalog, error) {
	custom, err := s.userExerciseRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return catalog.New(custom), nil
}

// resolveBuddy validates the optional training partner against the caller's
// friend list and returns the buddy's id and display name.
func (s *workoutService) resolveBuddy(ctx context.Context, me *domain.User, buddyUserID string) (*primitive.ObjectID, string, error) {
	raw := strings.TrimSpace(buddyUserID)
	if raw == "" {
		return nil, "", nil
	}
	buddyID, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, "", ErrUnknownBuddy
	}
	if !me.IsFriend(buddyID) {
		return nil, "", ErrUnknownBuddy
	}
	buddy, err := s.userRepo.GetByID(ctx, buddyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrUnknownBuddy
		}
		return nil, "", err
	}
	name := strings.TrimSpace(buddy.Name)
	if hasUnsafeValueChars(name) {
		return nil, "", ErrUnsafeInput
	}
	return &buddyID, name, nil
}

// bestWeightsBefore returns the best-weight table the candidate workout is
// judged against. On create that is the stored aggregate table. On edit the
// stored table already contains the workout's own lifts, so it is rebuilt by
// replaying the history without the excluded workout; otherwise a no-op edit
// would lose its own PR events.
func (s *workoutService) bestWeightsBefore(ctx context.Context, userID, exclude primitive.ObjectID) (map[string]float64, error) {
	if exclude != primitive.NilObjectID {
		history, err := s.workoutRepo.GetByUserAscending(ctx, userID)
		if err != nil {
			return nil, err
		}
		best := map[string]float64{}
		for _, w := range history {
			if w.ID == exclude {
				continue
			}
			best = gamification.ComputeMetrics(w.Exercises, best).BestWeightByExercise
		}
		return best, nil
	}

	stats, err := s.statsRepo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return map[string]float64{}, nil
		}
		return nil, err
	}
	if stats.BestWeightByExercise == nil {
		return map[string]float64{}, nil
	}
	return stats.BestWeightByExercise, nil
}

// evaluate runs the candidate workout through the engine: metrics against
// the pre-workout bests, daily award count and streak projection excluding
// the workout itself (NilObjectID on create).
func (s *workoutService) evaluate(ctx context.Context, userID primitive.ObjectID, norm *NormalizedWorkout, withBuddy bool, exclude primitive.ObjectID) (gamification.Metrics, domain.XPBreakdown, error) {
	var zero gamification.Metrics

	bestBefore, err := s.bestWeightsBefore(ctx, userID, exclude)
	if err != nil {
		return zero, domain.XPBreakdown{}, err
	}
	metrics := gamification.ComputeMetrics(norm.Exercises, bestBefore)

	dailyAwarded, err := s.workoutRepo.CountAwarding(ctx, userID, norm.DateLocal, exclude)
	if err != nil {
		return zero, domain.XPBreakdown{}, err
	}

	days, err := s.workoutRepo.RecentDays(ctx, userID, exclude, streakScanLimit)
	if err != nil {
		return zero, domain.XPBreakdown{}, err
	}
	streak := gamification.ComputeStreak(days)

	breakdown := gamification.ComputeXP(gamification.XPInput{
		Exercises:          norm.Exercises,
		DurationMinutes:    norm.DurationMinutes,
		WithBuddy:          withBuddy,
		PREventCount:       len(metrics.PREvents),
		DailyAwardedBefore: dailyAwarded,
		StreakDaysAfter:    gamification.ProjectStreak(streak, norm.DateLocal),
	})
	return metrics, breakdown, nil
}

// SubmitWorkout validates, scores and persists a new workout, then runs the
// post-mutation pipeline (aggregate replay, season recompute, achievement
// unlocks, notifications).
func (s *workoutService) SubmitWorkout(ctx context.Context, userID primitive.ObjectID, input WorkoutInput) (*WorkoutResult, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	me, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	cat, err := s.loadCatalog(ctx, userID)
	if err != nil {
		return nil, err
	}
	norm, err := NormalizeWorkout(input, cat)
	if err != nil {
		return nil, err
	}
	buddyID, buddyName, err := s.resolveBuddy(ctx, me, input.BuddyUserID)
	if err != nil {
		return nil, err
	}

	metrics, breakdown, err := s.evaluate(ctx, userID, norm, buddyID != nil, primitive.NilObjectID)
	if err != nil {
		return nil, err
	}

	workout := &domain.Workout{
		UserID:          userID,
		Date:            norm.Date,
		DateLocal:       norm.DateLocal,
		SeasonID:        gamification.SeasonIDForDay(norm.DateLocal),
		DurationMinutes: norm.DurationMinutes,
		Notes:           norm.Notes,
		Location:        norm.Location,
		BuddyUserID:     buddyID,
		BuddyName:       buddyName,
		Exercises:       norm.Exercises,
		PREvents:        metrics.PREvents,
		TotalVolume:     metrics.TotalVolume,
		XPAwarded:       breakdown.XPAwarded,
		XPBreakdown:     breakdown,
	}
	if workout.PREvents == nil {
		workout.PREvents = []domain.PREvent{}
	}

	workoutID, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	workout.ID = workoutID

	if err := s.userRepo.ApplyXPDelta(ctx, userID, breakdown.XPAwarded, 1); err != nil {
		return nil, err
	}

	totals, err := s.finishMutation(ctx, userID, len(me.Friends))
	if err != nil {
		return nil, err
	}
	return &WorkoutResult{Workout: workout, XPDelta: breakdown.XPAwarded, Totals: *totals}, nil
}

// EditWorkout recomputes the workout's metrics and XP from its new content,
// applies only the delta to the user's cumulative totals and reruns the
// post-mutation pipeline.
func (s *workoutService) EditWorkout(ctx context.Context, userID, workoutID primitive.ObjectID, input WorkoutInput) (*WorkoutResult, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	existing, err := s.workoutRepo.GetByID(ctx, workoutID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	me, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	cat, err := s.loadCatalog(ctx, userID)
	if err != nil {
		return nil, err
	}
	norm, err := NormalizeWorkout(input, cat)
	if err != nil {
		return nil, err
	}
	buddyID, buddyName, err := s.resolveBuddy(ctx, me, input.BuddyUserID)
	if err != nil {
		return nil, err
	}

	// The workout's own prior state must not influence its re-evaluation.
	metrics, breakdown, err := s.evaluate(ctx, userID, norm, buddyID != nil, workoutID)
	if err != nil {
		return nil, err
	}

	xpDelta := breakdown.XPAwarded - existing.XPAwarded

	updated := *existing
	updated.Date = norm.Date
	updated.DateLocal = norm.DateLocal
	updated.SeasonID = gamification.SeasonIDForDay(norm.DateLocal)
	updated.DurationMinutes = norm.DurationMinutes
	updated.Notes = norm.Notes
	updated.Location = norm.Location
	updated.BuddyUserID = buddyID
	updated.BuddyName = buddyName
	updated.Exercises = norm.Exercises
	updated.PREvents = metrics.PREvents
	if updated.PREvents == nil {
		updated.PREvents = []domain.PREvent{}
	}
	updated.TotalVolume = metrics.TotalVolume
	updated.XPAwarded = breakdown.XPAwarded
	updated.XPBreakdown = breakdown

	if err := s.workoutRepo.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	if xpDelta != 0 {
		if err := s.userRepo.ApplyXPDelta(ctx, userID, xpDelta, 0); err != nil {
			return nil, err
		}
	}

	totals, err := s.finishMutation(ctx, userID, len(me.Friends))
	if err != nil {
		return nil, err
	}
	return &WorkoutResult{Workout: &updated, XPDelta: xpDelta, Totals: *totals}, nil
}

// DeleteWorkout removes a workout and reverses its XP and count
// contribution, then reruns the post-mutation pipeline.
func (s *workoutService) DeleteWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) (*Totals, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	existing, err := s.workoutRepo.GetByID(ctx, workoutID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	me, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.workoutRepo.Delete(ctx, workoutID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	if existing.PhotoObjectKey != "" && s.fileStorage != nil {
		if err := s.fileStorage.DeleteObject(ctx, existing.PhotoObjectKey); err != nil {
			log.Printf("WARN: failed to delete photo object %s: %v", existing.PhotoObjectKey, err)
		}
	}

	if err := s.userRepo.ApplyXPDelta(ctx, userID, -existing.XPAwarded, -1); err != nil {
		return nil, err
	}

	return s.finishMutation(ctx, userID, len(me.Friends))
}

// GetWorkout returns a single workout owned by the caller.
func (s *workoutService) GetWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

// ListWorkouts returns the caller's workouts newest first with XP totals.
func (s *workoutService) ListWorkouts(ctx context.Context, userID primitive.ObjectID) ([]*domain.Workout, *Totals, error) {
	workouts, err := s.workoutRepo.GetByUserDescending(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	totals, err := s.loadTotals(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return workouts, totals, nil
}

// RecomputeAggregates replays the user's full history in chronological
// order, writes the recomputed per-workout metrics back, and upserts the
// derived aggregate.
func (s *workoutService) RecomputeAggregates(ctx context.Context, userID primitive.ObjectID) (*domain.UserStats, error) {
	history, err := s.workoutRepo.GetByUserAscending(ctx, userID)
	if err != nil {
		return nil, err
	}

	replay := gamification.ReplayHistory(history)
	for _, patch := range replay.Patches {
		if err := s.workoutRepo.PatchMetrics(ctx, patch.Workout.ID, patch.PREvents, patch.TotalVolume); err != nil {
			return nil, err
		}
	}

	stats := replay.Stats
	stats.UserID = userID
	if err := s.statsRepo.Upsert(ctx, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// finishMutation is the post-mutation pipeline shared by submit/edit/delete:
// full aggregate replay, season XP recompute, threshold achievement unlocks
// and unlock notifications. Unlocks and notifications are best-effort; a
// missed unlock is corrected on the next recompute cycle.
func (s *workoutService) finishMutation(ctx context.Context, userID primitive.ObjectID, friendCount int) (*Totals, error) {
	stats, err := s.RecomputeAggregates(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, _, err := recomputeSeasonXP(ctx, s.workoutRepo, s.userRepo, userID); err != nil {
		return nil, err
	}

	keys := gamification.SatisfiedKeys(*stats, friendCount)
	unlocked, err := s.achievementRepo.UnlockIfAbsent(ctx, userID, keys)
	if err != nil {
		log.Printf("WARN: achievement unlock for user %s failed: %v", userID.Hex(), err)
	}
	for _, key := range unlocked {
		s.notify(ctx, userID, domain.NotificationAchievementUnlocked, map[string]string{"key": key})
	}

	totals, err := s.loadTotals(ctx, userID)
	if err != nil {
		return nil, err
	}
	totals.Stats = stats
	return totals, nil
}

// notify emits a notification fire-and-forget.
func (s *workoutService) notify(ctx context.Context, userID primitive.ObjectID, typ domain.NotificationType, payload map[string]string) {
	n := &domain.Notification{UserID: userID, Type: typ, Payload: payload}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		log.Printf("WARN: notification %s for user %s failed: %v", typ, userID.Hex(), err)
	}
}

func (s *workoutService) loadTotals(ctx context.Context, userID primitive.ObjectID) (*Totals, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &Totals{
		LifetimeXP:   user.LifetimeXP,
		SeasonID:     user.SeasonID,
		SeasonXP:     user.SeasonXP,
		WorkoutCount: user.WorkoutCount,
	}, nil
}

// recomputeSeasonXP re-derives the current season's XP by summing the
// workouts tagged with the current season id. Summation instead of
// accumulation makes the recompute idempotent and safe to call repeatedly.
func recomputeSeasonXP(ctx context.Context, workoutRepo repository.WorkoutRepository, userRepo repository.UserRepository, userID primitive.ObjectID) (string, int, error) {
	seasonID := gamification.CurrentSeasonID()
	seasonXP, err := workoutRepo.SumSeasonXP(ctx, userID, seasonID)
	if err != nil {
		return "", 0, err
	}
	if err := userRepo.SetSeason(ctx, userID, seasonID, seasonXP); err != nil {
		return "", 0, err
	}
	return seasonID, seasonXP, nil
}
