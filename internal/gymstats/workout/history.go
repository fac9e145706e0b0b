package workout

import "errors"

var ErrNoHistory = errors.New("no history for exercise")

// LastPerformance is what the user did the last time the exercise was part of
// a saved workout. Sets are ordered by set number.
type LastPerformance struct {
	WorkoutID     string               `json:"workout_id"`
	Date          string               `json:"date"`
	ExerciseID    string               `json:"exercise_id"`
	EquipmentType *string              `json:"equipment_type"`
	Variation     *string              `json:"variation"`
	Sets          []LastPerformanceSet `json:"sets"`
}

type LastPerformanceSet struct {
	SetNumber     int     `json:"set_number"`
	Weight        float64 `json:"weight"`
	Reps          *int    `json:"reps"`
	TimeSeconds   *int    `json:"time_seconds"`
	EquipmentType *string `json:"equipment_type"`
	Variation     *string `json:"variation"`
}

// SetAt returns the set with the given number, or the last one when the
// previous workout had fewer sets.
func (lp *LastPerformance) SetAt(setNumber int) (LastPerformanceSet, bool) {
	if lp == nil || len(lp.Sets) == 0 {
		return LastPerformanceSet{}, false
	}
	for _, s := range lp.Sets {
		if s.SetNumber == setNumber {
			return s, true
		}
	}
	return lp.Sets[len(lp.Sets)-1], true
}
