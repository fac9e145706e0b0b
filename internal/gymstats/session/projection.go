package session

import (
	"github.com/2beens/fitstats/internal/gymstats/workout"
)

// PersistedWorkout is the relational shape of a finished workout: one workout
// row, one row per exercise that has completed sets, one row per completed set.
type PersistedWorkout struct {
	Workout   WorkoutRow           `json:"workout"`
	Exercises []WorkoutExerciseRow `json:"exercises"`
	Sets      []ExerciseSetRow     `json:"sets"`
}

type WorkoutRow struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	Date         string  `json:"date"`
	Duration     int     `json:"duration"`
	Completed    bool    `json:"completed"`
	WorkoutType  *string `json:"workout_type"`
	SessionFocus *string `json:"session_focus"`
	Notes        *string `json:"notes"`
}

type WorkoutExerciseRow struct {
	ID            string  `json:"id"`
	WorkoutID     string  `json:"workout_id"`
	ExerciseID    string  `json:"exercise_id"`
	OrderIndex    int     `json:"order_index"`
	EquipmentType *string `json:"equipment_type"`
	Variation     *string `json:"variation"`
}

type ExerciseSetRow struct {
	ID                string          `json:"id"`
	WorkoutExerciseID string          `json:"workout_exercise_id"`
	SetNumber         int             `json:"set_number"`
	Kind              workout.SetKind `json:"kind"`
	Weight            *float64        `json:"weight"`
	Reps              *int            `json:"reps"`
	TimeSeconds       *int            `json:"time_seconds"`
	EquipmentType     *string         `json:"equipment_type"`
	Variation         *string         `json:"variation"`

	DurationSeconds     *int     `json:"duration_seconds"`
	DistanceKm          *float64 `json:"distance_km"`
	PaceMinPerKm        *float64 `json:"pace_min_per_km"`
	HeartRateBPM        []int    `json:"heart_rate_bpm"`
	TargetHeartRateZone *int     `json:"target_heart_rate_zone"`
	PerceivedExertion   *int     `json:"perceived_exertion"`
	CaloriesBurned      *int     `json:"calories_burned"`
}

// ExerciseIDs returns the distinct exercises touched by the persisted workout.
func (pw PersistedWorkout) ExerciseIDs() []string {
	seen := map[string]bool{}
	var ids []string
	for _, e := range pw.Exercises {
		if seen[e.ExerciseID] {
			continue
		}
		seen[e.ExerciseID] = true
		ids = append(ids, e.ExerciseID)
	}
	return ids
}

// Project flattens a workout into rows. Only completed sets are kept, and an
// exercise without completed sets does not produce a row at all.
func Project(userID string, w *workout.Workout) PersistedWorkout {
	pw := PersistedWorkout{
		Exercises: []WorkoutExerciseRow{},
		Sets:      []ExerciseSetRow{},
	}
	if w == nil {
		return pw
	}

	pw.Workout = WorkoutRow{
		ID:        w.ID,
		UserID:    userID,
		Date:      w.Date,
		Duration:  w.Duration,
		Completed: w.Completed,
		Notes:     cloneStr(w.Notes),
	}
	if w.WorkoutType != nil {
		pw.Workout.WorkoutType = workout.StringPtr(string(*w.WorkoutType))
	}
	if w.SessionFocus != nil {
		pw.Workout.SessionFocus = workout.StringPtr(string(*w.SessionFocus))
	}

	for _, we := range w.Exercises {
		completed := we.CompletedSets()
		if len(completed) == 0 {
			continue
		}

		pw.Exercises = append(pw.Exercises, WorkoutExerciseRow{
			ID:            we.ID,
			WorkoutID:     w.ID,
			ExerciseID:    we.ExerciseID,
			OrderIndex:    len(pw.Exercises),
			EquipmentType: cloneStr(we.EquipmentType),
			Variation:     cloneStr(we.Variation),
		})

		for i, set := range completed {
			pw.Sets = append(pw.Sets, projectSet(we.ID, i+1, set))
		}
	}

	return pw
}

func projectSet(workoutExerciseID string, setNumber int, set workout.Set) ExerciseSetRow {
	row := ExerciseSetRow{
		ID:                set.SetID(),
		WorkoutExerciseID: workoutExerciseID,
		SetNumber:         setNumber,
		Kind:              set.Kind(),
	}

	switch s := set.(type) {
	case *workout.StrengthSet:
		row.Weight = workout.FloatPtr(s.Weight)
		if s.IsStatic() {
			row.TimeSeconds = workout.IntPtr(*s.TimeSeconds)
		} else if s.Reps != nil {
			row.Reps = workout.IntPtr(*s.Reps)
		}
		row.EquipmentType = cloneStr(s.EquipmentType)
		row.Variation = cloneStr(s.Variation)
	case *workout.CardioSet:
		row.DurationSeconds = workout.IntPtr(s.Time.TotalSeconds())
		c := s.Clone().(*workout.CardioSet)
		row.DistanceKm = c.DistanceKm
		row.PaceMinPerKm = c.PaceMinPerKm
		row.HeartRateBPM = c.HeartRateBPM
		row.TargetHeartRateZone = c.TargetHeartRateZone
		row.PerceivedExertion = c.PerceivedExertion
		row.CaloriesBurned = c.CaloriesBurned
	}

	return row
}
