package exercises

import (
	"errors"
	"strings"

	"github.com/2beens/fitstats/internal/gymstats/workout"
)

var (
	ErrEmptyName           = errors.New("exercise name empty")
	ErrInvalidExerciseType = errors.New("invalid exercise type")
	ErrExerciseExists      = errors.New("exercise with that name already exists")
	ErrExerciseInUse       = errors.New("exercise is referenced by saved workouts")
)

// NewExercise is a user created exercise, before it gets an ID.
type NewExercise struct {
	Name                 string  `json:"name"`
	IsStatic             bool    `json:"is_static"`
	ExerciseType         string  `json:"exercise_type"`
	DefaultEquipmentType *string `json:"default_equipment_type"`
}

// Normalize trims the name and fills in the default exercise type.
func (ne NewExercise) Normalize() (NewExercise, error) {
	ne.Name = strings.TrimSpace(ne.Name)
	if ne.Name == "" {
		return ne, ErrEmptyName
	}

	switch ne.ExerciseType {
	case "":
		ne.ExerciseType = workout.ExerciseTypeStrength
	case workout.ExerciseTypeStrength, workout.ExerciseTypeCardio:
	default:
		return ne, ErrInvalidExerciseType
	}

	if ne.DefaultEquipmentType != nil && strings.TrimSpace(*ne.DefaultEquipmentType) == "" {
		ne.DefaultEquipmentType = nil
	}
	// a cardio exercise has no static hold
	if ne.ExerciseType == workout.ExerciseTypeCardio {
		ne.IsStatic = false
	}

	return ne, nil
}
