package workout

import "errors"

var ErrExerciseNotFound = errors.New("exercise not found")

const (
	ExerciseTypeCardio   = "cardio"
	ExerciseTypeStrength = "strength"

	EquipmentBodyweight = "Bodyweight"
	DefaultVariation    = "Standard"
)

// Exercise is the reference data for a movement. Exercises with a nil
// CreatedByUserID are predefined and shared between all users.
type Exercise struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	IsStatic             bool    `json:"is_static"`
	ExerciseType         string  `json:"exercise_type"`
	DefaultEquipmentType *string `json:"default_equipment_type"`
	CreatedByUserID      *string `json:"created_by_user_id"`
}

func (e Exercise) IsCardio() bool {
	return e.ExerciseType == ExerciseTypeCardio
}

func (e Exercise) IsPredefined() bool {
	return e.CreatedByUserID == nil
}

// WorkoutExercise is one entry of a workout. The same exercise can be added
// more than once, each entry has its own ID and its own sets.
type WorkoutExercise struct {
	ID            string   `json:"id"`
	ExerciseID    string   `json:"exerciseId"`
	Exercise      Exercise `json:"exercise"`
	EquipmentType *string  `json:"equipmentType,omitempty"`
	Variation     *string  `json:"variation,omitempty"`
	Sets          Sets     `json:"sets"`
}

func (we *WorkoutExercise) Clone() *WorkoutExercise {
	if we == nil {
		return nil
	}
	c := *we
	c.Exercise.DefaultEquipmentType = cloneString(we.Exercise.DefaultEquipmentType)
	c.Exercise.CreatedByUserID = cloneString(we.Exercise.CreatedByUserID)
	c.EquipmentType = cloneString(we.EquipmentType)
	c.Variation = cloneString(we.Variation)
	c.Sets = we.Sets.Clone()
	return &c
}

// SetIndex returns the position of the set with the given ID, or -1.
func (we *WorkoutExercise) SetIndex(setID string) int {
	for i, s := range we.Sets {
		if s.SetID() == setID {
			return i
		}
	}
	return -1
}

// CompletedSets returns the completed sets, in order.
func (we *WorkoutExercise) CompletedSets() Sets {
	completed := make(Sets, 0, len(we.Sets))
	for _, s := range we.Sets {
		if s.IsCompleted() {
			completed = append(completed, s)
		}
	}
	return completed
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

// StringPtr is a small helper for optional string fields.
func StringPtr(s string) *string {
	return &s
}

func IntPtr(i int) *int {
	return &i
}

func FloatPtr(f float64) *float64 {
	return &f
}
