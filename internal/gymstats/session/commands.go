package session

import (
	"github.com/2beens/fitstats/internal/gymstats/workout"
)

// Command is one of the workout session commands declared in this file.
type Command interface {
	Name() string
	command()
}

const (
	CmdStartWorkout          = "startWorkout"
	CmdEndWorkout            = "endWorkout"
	CmdClearWorkout          = "clearWorkout"
	CmdAddExercise           = "addExerciseToWorkout"
	CmdAddSet                = "addSetToExercise"
	CmdAddCardioSet          = "addCardioSetToExercise"
	CmdUpdateSet             = "updateSet"
	CmdUpdateCardioSet       = "updateCardioSet"
	CmdDeleteSet             = "deleteSet"
	CmdCompleteSet           = "completeSet"
	CmdUpdateEquipment       = "updateWorkoutExerciseEquipment"
	CmdUpdateVariation       = "updateWorkoutExerciseVariation"
	CmdDeleteWorkoutExercise = "deleteWorkoutExercise"
	CmdUpdateSessionFocus    = "updateSessionFocus"
	CmdUpdateNotes           = "updateNotes"
)

type StartWorkout struct {
	Focus *workout.SessionFocus `json:"focus,omitempty"`
}

type EndWorkout struct{}

type ClearWorkout struct{}

// AddExercise appends an already resolved workout exercise. Equipment and
// variation are expected to be filled in by the caller.
type AddExercise struct {
	Exercise workout.WorkoutExercise `json:"exercise"`
}

type AddSet struct {
	WorkoutExerciseID string   `json:"workoutExerciseId"`
	ExerciseID        string   `json:"exerciseId"`
	IsStatic          bool     `json:"isStatic"`
	UserBodyweight    *float64 `json:"userBodyweight,omitempty"`
}

type AddCardioSet struct {
	WorkoutExerciseID string `json:"workoutExerciseId"`
	ExerciseID        string `json:"exerciseId"`
}

// UpdateSet overwrites the given fields of a strength set. Nil fields are
// left as they are. Reps and TimeSeconds only apply to the set's active metric.
type UpdateSet struct {
	WorkoutExerciseID string   `json:"workoutExerciseId"`
	SetID             string   `json:"setId"`
	Weight            *float64 `json:"weight,omitempty"`
	Reps              *int     `json:"reps,omitempty"`
	TimeSeconds       *int     `json:"time_seconds,omitempty"`
	EquipmentType     *string  `json:"equipmentType,omitempty"`
	Variation         *string  `json:"variation,omitempty"`
}

type UpdateCardioSet struct {
	WorkoutExerciseID   string            `json:"workoutExerciseId"`
	SetID               string            `json:"setId"`
	Time                *workout.Duration `json:"time,omitempty"`
	DistanceKm          *float64          `json:"distance_km,omitempty"`
	PaceMinPerKm        *float64          `json:"pace_min_per_km,omitempty"`
	HeartRateBPM        []int             `json:"heart_rate_bpm,omitempty"`
	TargetHeartRateZone *int              `json:"target_heart_rate_zone,omitempty"`
	PerceivedExertion   *int              `json:"perceived_exertion,omitempty"`
	CaloriesBurned      *int              `json:"calories_burned,omitempty"`
}

type DeleteSet struct {
	WorkoutExerciseID string `json:"workoutExerciseId"`
	SetID             string `json:"setId"`
}

type CompleteSet struct {
	WorkoutExerciseID string `json:"workoutExerciseId"`
	SetID             string `json:"setId"`
	Completed         bool   `json:"completed"`
}

type UpdateEquipment struct {
	WorkoutExerciseID string `json:"workoutExerciseId"`
	EquipmentType     string `json:"equipmentType"`
}

type UpdateVariation struct {
	WorkoutExerciseID string `json:"workoutExerciseId"`
	Variation         string `json:"variation"`
}

type DeleteWorkoutExercise struct {
	WorkoutExerciseID string `json:"workoutExerciseId"`
}

// UpdateSessionFocus with a nil focus removes it.
type UpdateSessionFocus struct {
	Focus *workout.SessionFocus `json:"focus,omitempty"`
}

type UpdateNotes struct {
	Notes string `json:"notes"`
}

func (StartWorkout) Name() string          { return CmdStartWorkout }
func (EndWorkout) Name() string            { return CmdEndWorkout }
func (ClearWorkout) Name() string          { return CmdClearWorkout }
func (AddExercise) Name() string           { return CmdAddExercise }
func (AddSet) Name() string                { return CmdAddSet }
func (AddCardioSet) Name() string          { return CmdAddCardioSet }
func (UpdateSet) Name() string             { return CmdUpdateSet }
func (UpdateCardioSet) Name() string       { return CmdUpdateCardioSet }
func (DeleteSet) Name() string             { return CmdDeleteSet }
func (CompleteSet) Name() string           { return CmdCompleteSet }
func (UpdateEquipment) Name() string       { return CmdUpdateEquipment }
func (UpdateVariation) Name() string       { return CmdUpdateVariation }
func (DeleteWorkoutExercise) Name() string { return CmdDeleteWorkoutExercise }
func (UpdateSessionFocus) Name() string    { return CmdUpdateSessionFocus }
func (UpdateNotes) Name() string           { return CmdUpdateNotes }

func (StartWorkout) command()          {}
func (EndWorkout) command()            {}
func (ClearWorkout) command()          {}
func (AddExercise) command()           {}
func (AddSet) command()                {}
func (AddCardioSet) command()          {}
func (UpdateSet) command()             {}
func (UpdateCardioSet) command()       {}
func (DeleteSet) command()             {}
func (CompleteSet) command()           {}
func (UpdateEquipment) command()       {}
func (UpdateVariation) command()       {}
func (DeleteWorkoutExercise) command() {}
func (UpdateSessionFocus) command()    {}
func (UpdateNotes) command()           {}
