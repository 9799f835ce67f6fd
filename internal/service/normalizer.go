package service

import (
	"errors"
	"math"
	"regexp"
	"strings"
	"time"

	"gymbuddy/app/internal/catalog"
	"gymbuddy/app/internal/domain"
)

// --- Error Definitions ---
var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidDuration  = errors.New("duration must be between 5 and 240 minutes")
	ErrInvalidNotes     = errors.New("notes must be at most 300 characters")
	ErrInvalidExercises = errors.New("invalid exercises")
	ErrUnsafeInput      = errors.New("invalid characters")
	ErrUnknownExercise  = errors.New("unknown exercise")
)

const (
	minDurationMinutes = 5
	maxDurationMinutes = 240
	maxNotesLength     = 300
	maxExercises       = 30
	maxSetsPerExercise = 30
	maxReps            = 50
	maxWeight          = 500.0
)

// RawSet is one set as submitted by the client.
type RawSet struct {
	Reps     int      `json:"reps"`
	Weight   float64  `json:"weight"`
	RPE      *float64 `json:"rpe,omitempty"`
	IsWarmup bool     `json:"isWarmup"`
}

// RawExercise is one exercise entry as submitted by the client.
type RawExercise struct {
	ExerciseKey string   `json:"exerciseKey"`
	Sets        []RawSet `json:"sets"`
}

// WorkoutInput is the raw workout submission before normalization. Legacy
// clients send dates in several shapes; everything is resolved to one typed
// record here and the ambiguity never propagates inward.
type WorkoutInput struct {
	Date            string        `json:"date"`
	DurationMinutes int           `json:"durationMinutes"`
	Notes           string        `json:"notes"`
	Location        string        `json:"location"`
	BuddyUserID     string        `json:"buddyUserId,omitempty"`
	Exercises       []RawExercise `json:"exercises"`
}

// NormalizedWorkout is the canonical form of a submission.
type NormalizedWorkout struct {
	Date            time.Time
	DateLocal       string
	DurationMinutes int
	Notes           string
	Location        domain.Location
	Exercises       []domain.ExerciseEntry
}

var isoDayPrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// free-text values may not contain "$": it can seed operator injection when
// the value ends up in a query document. Dots stay legal (notes, emails).
func hasUnsafeValueChars(s string) bool {
	return strings.Contains(s, "$")
}

// exercise keys are used as nested field names in the best-weight table, so
// "." would corrupt the document path in addition to "$".
func hasUnsafeKeyChars(s string) bool {
	return strings.ContainsAny(s, "$.")
}

// fallback layouts for dates that do not start with an ISO day.
var genericDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC1123,
}

// NormalizeDate turns raw date text into a UTC timestamp and its local-day
// key. Text starting with an ISO YYYY-MM-DD prefix is parsed literally from
// those components to avoid timezone drift; anything else is parsed as a
// generic timestamp and bucketed by its UTC date.
func NormalizeDate(raw string) (time.Time, string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, "", ErrInvalidDate
	}

	if prefix := isoDayPrefix.FindString(trimmed); prefix != "" {
		day, err := time.Parse("2006-01-02", prefix)
		if err != nil {
			return time.Time{}, "", ErrInvalidDate
		}
		return day, day.Format("2006-01-02"), nil
	}

	for _, layout := range genericDateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			utc := t.UTC()
			return utc, utc.Format("2006-01-02"), nil
		}
	}
	return time.Time{}, "", ErrInvalidDate
}

// NormalizeLocation maps free text onto the location enum; unrecognized
// values default to the gym.
func NormalizeLocation(raw string) domain.Location {
	switch domain.Location(strings.ToLower(strings.TrimSpace(raw))) {
	case domain.LocationHome:
		return domain.LocationHome
	case domain.LocationOutdoor:
		return domain.LocationOutdoor
	case domain.LocationOther:
		return domain.LocationOther
	default:
		return domain.LocationGym
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }

// NormalizeExercises validates and canonicalizes the exercise list against
// the combined catalog. Weights are stored with 2-decimal and RPE with
// 1-decimal precision.
func NormalizeExercises(raw []RawExercise, cat *catalog.Catalog) ([]domain.ExerciseEntry, error) {
	if len(raw) == 0 || len(raw) > maxExercises {
		return nil, ErrInvalidExercises
	}

	entries := make([]domain.ExerciseEntry, 0, len(raw))
	for _, ex := range raw {
		key := strings.TrimSpace(ex.ExerciseKey)
		if key == "" {
			return nil, ErrInvalidExercises
		}
		if hasUnsafeKeyChars(key) {
			return nil, ErrUnsafeInput
		}
		ref, ok := cat.Resolve(key)
		if !ok {
			return nil, ErrUnknownExercise
		}
		if hasUnsafeValueChars(ref.Name) {
			return nil, ErrUnsafeInput
		}
		if len(ex.Sets) == 0 || len(ex.Sets) > maxSetsPerExercise {
			return nil, ErrInvalidExercises
		}

		sets := make([]domain.Set, 0, len(ex.Sets))
		for _, s := range ex.Sets {
			if s.Reps < 1 || s.Reps > maxReps {
				return nil, ErrInvalidExercises
			}
			if s.Weight < 0 || s.Weight > maxWeight || math.IsNaN(s.Weight) || math.IsInf(s.Weight, 0) {
				return nil, ErrInvalidExercises
			}
			set := domain.Set{
				Reps:     s.Reps,
				Weight:   round2(s.Weight),
				IsWarmup: s.IsWarmup,
			}
			if s.RPE != nil {
				if *s.RPE < 1 || *s.RPE > 10 {
					return nil, ErrInvalidExercises
				}
				rpe := round1(*s.RPE)
				set.RPE = &rpe
			}
			sets = append(sets, set)
		}

		entries = append(entries, domain.ExerciseEntry{
			ExerciseKey: key,
			Name:        ref.Name,
			Sets:        sets,
		})
	}
	return entries, nil
}

// NormalizeWorkout validates a raw submission into its canonical record.
// Buddy resolution is a separate step: it needs the friend list.
func NormalizeWorkout(in WorkoutInput, cat *catalog.Catalog) (*NormalizedWorkout, error) {
	date, dateLocal, err := NormalizeDate(in.Date)
	if err != nil {
		return nil, err
	}

	if in.DurationMinutes < minDurationMinutes || in.DurationMinutes > maxDurationMinutes {
		return nil, ErrInvalidDuration
	}

	notes := strings.TrimSpace(in.Notes)
	if len(notes) > maxNotesLength {
		return nil, ErrInvalidNotes
	}
	if hasUnsafeValueChars(notes) {
		return nil, ErrUnsafeInput
	}

	exercises, err := NormalizeExercises(in.Exercises, cat)
	if err != nil {
		return nil, err
	}

	return &NormalizedWorkout{
		Date:            date,
		DateLocal:       dateLocal,
		DurationMinutes: in.DurationMinutes,
		Notes:           notes,
		Location:        NormalizeLocation(in.Location),
		Exercises:       exercises,
	}, nil
}
