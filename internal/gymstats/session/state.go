package session

import (
	"errors"
	"time"

	"github.com/2beens/fitstats/internal/gymstats/workout"

	"github.com/google/uuid"
)

var (
	ErrNoActiveWorkout         = errors.New("no active workout")
	ErrWorkoutInProgress       = errors.New("workout already in progress")
	ErrWorkoutEnded            = errors.New("workout already ended")
	ErrWorkoutExerciseNotFound = errors.New("workout exercise not found")
	ErrSetNotFound             = errors.New("set not found")
	ErrSetKindMismatch         = errors.New("set kind mismatch")
	ErrInvalidCommand          = errors.New("invalid command")
	ErrWorkoutAlreadySaved     = errors.New("workout already saved")
)

// Phase is the lifecycle position of a session: NONE -> ACTIVE -> ENDED -> NONE.
type Phase string

const (
	PhaseNone   Phase = "none"
	PhaseActive Phase = "active"
	PhaseEnded  Phase = "ended"
)

// State is the whole session. WorkoutStartTime (epoch ms) is kept outside of
// the workout so the duration can be computed precisely when it ends.
type State struct {
	CurrentWorkout   *workout.Workout `json:"currentWorkout"`
	WorkoutStartTime *int64           `json:"workoutStartTime"`
}

func (s State) Phase() Phase {
	switch {
	case s.CurrentWorkout == nil:
		return PhaseNone
	case s.CurrentWorkout.Completed:
		return PhaseEnded
	default:
		return PhaseActive
	}
}

func (s State) Clone() State {
	c := State{
		CurrentWorkout: s.CurrentWorkout.Clone(),
	}
	if s.WorkoutStartTime != nil {
		st := *s.WorkoutStartTime
		c.WorkoutStartTime = &st
	}
	return c
}

// Env holds the impure inputs of the reducer.
type Env struct {
	Now   func() time.Time
	NewID func() string
}

func DefaultEnv() Env {
	return Env{
		Now:   time.Now,
		NewID: uuid.NewString,
	}
}
