package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Location type for where a workout took place
type Location string

const (
	LocationGym     Location = "gym"
	LocationHome    Location = "home"
	LocationOutdoor Location = "outdoor"
	LocationOther   Location = "other"
)

// Set is a single set within an exercise entry.
// Weight is stored with 2-decimal precision, RPE with 1-decimal precision.
type Set struct {
	Reps     int      `bson:"reps" json:"reps"`
	Weight   float64  `bson:"weight" json:"weight"`
	RPE      *float64 `bson:"rpe,omitempty" json:"rpe,omitempty"`
	IsWarmup bool     `bson:"isWarmup" json:"isWarmup"`
}

// ExerciseEntry is one exercise within a workout with its ordered sets.
type ExerciseEntry struct {
	ExerciseKey string `bson:"exerciseKey" json:"exerciseKey"`
	Name        string `bson:"name" json:"name"`
	Sets        []Set  `bson:"sets" json:"sets"`
}

// PREvent records a set whose weight exceeded the user's previous best
// for that exercise. At most two are stored per workout.
type PREvent struct {
	ExerciseKey string  `bson:"exerciseKey" json:"exerciseKey"`
	Name        string  `bson:"name" json:"name"`
	Weight      float64 `bson:"weight" json:"weight"`
}

// XPBreakdown exposes every intermediate term of the XP award for auditability.
type XPBreakdown struct {
	Base            int  `bson:"base" json:"base"`
	SetBonus        int  `bson:"setBonus" json:"setBonus"`
	DurationBonus   int  `bson:"durationBonus" json:"durationBonus"`
	BuddyBonus      int  `bson:"buddyBonus" json:"buddyBonus"`
	StreakBonus     int  `bson:"streakBonus" json:"streakBonus"`
	PRBonus         int  `bson:"prBonus" json:"prBonus"`
	XPRaw           int  `bson:"xpRaw" json:"xpRaw"`
	XPCapped        int  `bson:"xpCapped" json:"xpCapped"`
	XPAwarded       int  `bson:"xpAwarded" json:"xpAwarded"`
	DailyCapApplied bool `bson:"dailyCapApplied" json:"dailyCapApplied"`
}

// Workout represents one logged training session.
// DateLocal is the canonical UTC calendar day key ("2006-01-02"), derived
// deterministically from Date; streaks and the daily XP cap bucket on it.
type Workout struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID  `bson:"userId" json:"userId"`
	Date            time.Time           `bson:"date" json:"date"`
	DateLocal       string              `bson:"dateLocal" json:"dateLocal"`
	SeasonID        string              `bson:"seasonId" json:"seasonId"`
	DurationMinutes int                 `bson:"durationMinutes" json:"durationMinutes"`
	Notes           string              `bson:"notes,omitempty" json:"notes,omitempty"`
	Location        Location            `bson:"location" json:"location"`
	BuddyUserID     *primitive.ObjectID `bson:"buddyUserId,omitempty" json:"buddyUserId,omitempty"`
	BuddyName       string              `bson:"buddyName,omitempty" json:"buddyName,omitempty"`
	Exercises       []ExerciseEntry     `bson:"exercises" json:"exercises"`
	PREvents        []PREvent           `bson:"prEvents" json:"prEvents"`
	TotalVolume     float64             `bson:"totalVolume" json:"totalVolume"`
	XPAwarded       int                 `bson:"xpAwarded" json:"xpAwarded"`
	XPBreakdown     XPBreakdown         `bson:"xpBreakdown" json:"xpBreakdown"`
	PhotoObjectKey  string              `bson:"photoObjectKey,omitempty" json:"-"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// WithBuddy reports whether a training partner is attached.
func (w *Workout) WithBuddy() bool {
	return w.BuddyUserID != nil
}

// SetCount returns the total number of sets across all exercises, warm-ups included.
func (w *Workout) SetCount() int {
	n := 0
	for _, ex := range w.Exercises {
		n += len(ex.Sets)
	}
	return n
}
