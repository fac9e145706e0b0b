package workout

import "fmt"

type WorkoutType string

const (
	WorkoutTypeStrength WorkoutType = "strength"
	WorkoutTypeCardio   WorkoutType = "cardio"
	WorkoutTypeMixed    WorkoutType = "mixed"
)

// Workout is the session level document. Duration is in seconds and is only
// meaningful after the workout was ended.
type Workout struct {
	ID           string             `json:"id"`
	Date         string             `json:"date"`
	Duration     int                `json:"duration"`
	Exercises    []*WorkoutExercise `json:"exercises"`
	Completed    bool               `json:"completed"`
	WorkoutType  *WorkoutType       `json:"workout_type,omitempty"`
	SessionFocus *SessionFocus      `json:"session_focus,omitempty"`
	Notes        *string            `json:"notes,omitempty"`
}

func (w *Workout) Clone() *Workout {
	if w == nil {
		return nil
	}
	c := *w
	if w.Exercises != nil {
		c.Exercises = make([]*WorkoutExercise, len(w.Exercises))
		for i, we := range w.Exercises {
			c.Exercises[i] = we.Clone()
		}
	}
	if w.WorkoutType != nil {
		wt := *w.WorkoutType
		c.WorkoutType = &wt
	}
	if w.SessionFocus != nil {
		sf := *w.SessionFocus
		c.SessionFocus = &sf
	}
	c.Notes = cloneString(w.Notes)
	return &c
}

// ExerciseIndex returns the position of the workout exercise, or -1.
func (w *Workout) ExerciseIndex(workoutExerciseID string) int {
	for i, we := range w.Exercises {
		if we.ID == workoutExerciseID {
			return i
		}
	}
	return -1
}

// DeriveType returns nil for a workout without exercises.
func (w *Workout) DeriveType() *WorkoutType {
	hasCardio, hasStrength := false, false
	for _, we := range w.Exercises {
		if we.Exercise.IsCardio() {
			hasCardio = true
		} else {
			hasStrength = true
		}
	}

	var wt WorkoutType
	switch {
	case hasCardio && hasStrength:
		wt = WorkoutTypeMixed
	case hasCardio:
		wt = WorkoutTypeCardio
	case hasStrength:
		wt = WorkoutTypeStrength
	default:
		return nil
	}
	return &wt
}

type SessionFocus string

const (
	SessionFocusHypertrophy SessionFocus = "hypertrophy"
	SessionFocusStrength    SessionFocus = "strength"
	SessionFocusZone2       SessionFocus = "zone2"
	SessionFocusZone5       SessionFocus = "zone5"
	SessionFocusSpeed       SessionFocus = "speed"
	SessionFocusRecovery    SessionFocus = "recovery"
	SessionFocusMixed       SessionFocus = "mixed"
)

func (sf SessionFocus) IsValid() bool {
	switch sf {
	case SessionFocusHypertrophy,
		SessionFocusStrength,
		SessionFocusZone2,
		SessionFocusZone5,
		SessionFocusSpeed,
		SessionFocusRecovery,
		SessionFocusMixed:
		return true
	default:
		return false
	}
}

func ParseSessionFocus(s string) (SessionFocus, error) {
	sf := SessionFocus(s)
	if !sf.IsValid() {
		return "", fmt.Errorf("invalid session focus: %s", s)
	}
	return sf, nil
}

// TargetHeartRateZone maps a session focus to the heart rate zone new cardio
// sets should aim for.
func TargetHeartRateZone(focus SessionFocus) (int, bool) {
	switch focus {
	case SessionFocusRecovery:
		return 1, true
	case SessionFocusZone2:
		return 2, true
	case SessionFocusSpeed:
		return 4, true
	case SessionFocusZone5:
		return 5, true
	default:
		return 0, false
	}
}
