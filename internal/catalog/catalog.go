// Package catalog provides the built-in exercise catalog and the combined
// lookup over built-in plus user-defined entries.
package catalog

// Exercise describes one entry of the exercise catalog.
type Exercise struct {
	Key          string `bson:"key" json:"key"`
	Name         string `bson:"name" json:"name"`
	MuscleGroup  string `bson:"muscleGroup" json:"muscleGroup"`
	Equipment    string `bson:"equipment" json:"equipment"`
	IsBodyweight bool   `bson:"isBodyweight" json:"isBodyweight"`
}

// MaxCustomExercises bounds the number of user-defined catalog entries.
const MaxCustomExercises = 100

// BuiltIn is the static exercise catalog compiled into the binary.
var BuiltIn = []Exercise{
	{Key: "back_squat", Name: "Back Squat", MuscleGroup: "legs", Equipment: "barbell"},
	{Key: "front_squat", Name: "Front Squat", MuscleGroup: "legs", Equipment: "barbell"},
	{Key: "deadlift", Name: "Conventional Deadlift", MuscleGroup: "posterior_chain", Equipment: "barbell"},
	{Key: "romanian_deadlift", Name: "Romanian Deadlift", MuscleGroup: "posterior_chain", Equipment: "barbell"},
	{Key: "bench_press", Name: "Bench Press", MuscleGroup: "chest", Equipment: "barbell"},
	{Key: "incline_bench_press", Name: "Incline Bench Press", MuscleGroup: "chest", Equipment: "barbell"},
	{Key: "overhead_press", Name: "Overhead Press", MuscleGroup: "shoulders", Equipment: "barbell"},
	{Key: "push_up", Name: "Push-Up", MuscleGroup: "chest", Equipment: "bodyweight", IsBodyweight: true},
	{Key: "pull_up", Name: "Pull-Up", MuscleGroup: "back", Equipment: "bodyweight", IsBodyweight: true},
	{Key: "bent_over_row", Name: "Bent-Over Row", MuscleGroup: "back", Equipment: "barbell"},
	{Key: "dumbbell_row", Name: "Single-Arm Dumbbell Row", MuscleGroup: "back", Equipment: "dumbbell"},
	{Key: "lat_pulldown", Name: "Lat Pulldown", MuscleGroup: "back", Equipment: "cable"},
	{Key: "seated_cable_row", Name: "Seated Cable Row", MuscleGroup: "back", Equipment: "cable"},
	{Key: "hip_thrust", Name: "Hip Thrust", MuscleGroup: "glutes", Equipment: "barbell"},
	{Key: "leg_press", Name: "Leg Press", MuscleGroup: "legs", Equipment: "machine"},
	{Key: "lunge", Name: "Dumbbell Lunge", MuscleGroup: "legs", Equipment: "dumbbell"},
	{Key: "bulgarian_split_squat", Name: "Bulgarian Split Squat", MuscleGroup: "legs", Equipment: "dumbbell"},
	{Key: "calf_raise", Name: "Calf Raise", MuscleGroup: "calves", Equipment: "machine"},
	{Key: "biceps_curl", Name: "Biceps Curl", MuscleGroup: "arms", Equipment: "dumbbell"},
	{Key: "hammer_curl", Name: "Hammer Curl", MuscleGroup: "arms", Equipment: "dumbbell"},
	{Key: "triceps_pushdown", Name: "Triceps Pushdown", MuscleGroup: "arms", Equipment: "cable"},
	{Key: "triceps_dip", Name: "Triceps Dip", MuscleGroup: "arms", Equipment: "bodyweight", IsBodyweight: true},
	{Key: "lateral_raise", Name: "Lateral Raise", MuscleGroup: "shoulders", Equipment: "dumbbell"},
	{Key: "face_pull", Name: "Face Pull", MuscleGroup: "rear_delts", Equipment: "cable"},
	{Key: "kettlebell_swing", Name: "Kettlebell Swing", MuscleGroup: "posterior_chain", Equipment: "kettlebell"},
	{Key: "farmers_carry", Name: "Farmer's Carry", MuscleGroup: "full_body", Equipment: "dumbbell"},
	{Key: "plank", Name: "Plank", MuscleGroup: "core", Equipment: "bodyweight", IsBodyweight: true},
	{Key: "hanging_leg_raise", Name: "Hanging Leg Raise", MuscleGroup: "core", Equipment: "bodyweight", IsBodyweight: true},
	{Key: "russian_twist", Name: "Russian Twist", MuscleGroup: "core", Equipment: "dumbbell"},
	{Key: "glute_bridge", Name: "Glute Bridge", MuscleGroup: "glutes", Equipment: "bodyweight", IsBodyweight: true},
}

// Catalog is the combined view of the built-in catalog and one user's
// custom entries. Custom entries shadow built-in ones with the same key.
type Catalog struct {
	builtIn []Exercise
	custom  []Exercise
	byKey   map[string]Exercise
}

// New builds a combined catalog from the built-in table and the given
// custom entries.
func New(custom []Exercise) *Catalog {
	byKey := make(map[string]Exercise, len(BuiltIn)+len(custom))
	for _, ex := range BuiltIn {
		byKey[ex.Key] = ex
	}
	for _, ex := range custom {
		byKey[ex.Key] = ex
	}
	return &Catalog{builtIn: BuiltIn, custom: custom, byKey: byKey}
}

// Resolve maps an exercise key to its canonical catalog entry.
// The boolean is false for unknown keys.
func (c *Catalog) Resolve(key string) (Exercise, bool) {
	ex, ok := c.byKey[key]
	return ex, ok
}

// BuiltInEntries returns the static part of the catalog.
func (c *Catalog) BuiltInEntries() []Exercise { return c.builtIn }

// CustomEntries returns the user-defined part of the catalog.
func (c *Catalog) CustomEntries() []Exercise { return c.custom }

// All returns built-in entries followed by custom entries.
func (c *Catalog) All() []Exercise {
	all := make([]Exercise, 0, len(c.builtIn)+len(c.custom))
	all = append(all, c.builtIn...)
	all = append(all, c.custom...)
	return all
}
