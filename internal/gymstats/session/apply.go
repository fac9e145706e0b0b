package session

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/2beens/fitstats/internal/gymstats/workout"
)

// Apply is the session transition function. The given state is never
// mutated: on success a new state is returned, on failure the given state is
// returned as is, together with the reason.
func Apply(state State, cmd Command, env Env) (State, error) {
	if cmd == nil {
		return state, fmt.Errorf("nil command: %w", ErrInvalidCommand)
	}

	next := state.Clone()
	if err := apply(&next, cmd, env); err != nil {
		return state, fmt.Errorf("%s: %w", cmd.Name(), err)
	}
	return next, nil
}

func apply(s *State, cmd Command, env Env) error {
	switch c := cmd.(type) {
	case StartWorkout:
		return startWorkout(s, c, env)
	case EndWorkout:
		return endWorkout(s, env)
	case ClearWorkout:
		return clearWorkout(s)
	case AddExercise:
		return addExercise(s, c, env)
	case AddSet:
		return addSet(s, c, env)
	case AddCardioSet:
		return addCardioSet(s, c, env)
	case UpdateSet:
		return updateSet(s, c)
	case UpdateCardioSet:
		return updateCardioSet(s, c)
	case DeleteSet:
		return deleteSet(s, c)
	case CompleteSet:
		return completeSet(s, c)
	case UpdateEquipment:
		return updateEquipment(s, c)
	case UpdateVariation:
		return updateVariation(s, c)
	case DeleteWorkoutExercise:
		return deleteWorkoutExercise(s, c)
	case UpdateSessionFocus:
		return updateSessionFocus(s, c)
	case UpdateNotes:
		return updateNotes(s, c)
	default:
		return fmt.Errorf("unsupported command %T: %w", cmd, ErrInvalidCommand)
	}
}

func startWorkout(s *State, c StartWorkout, env Env) error {
	if s.CurrentWorkout != nil {
		return ErrWorkoutInProgress
	}
	if c.Focus != nil && !c.Focus.IsValid() {
		return fmt.Errorf("session focus [%s]: %w", *c.Focus, ErrInvalidCommand)
	}

	now := env.Now()
	startTime := now.UnixMilli()
	w := &workout.Workout{
		ID:        env.NewID(),
		Date:      now.UTC().Format(time.RFC3339),
		Exercises: []*workout.WorkoutExercise{},
		Completed: false,
	}
	if c.Focus != nil {
		focus := *c.Focus
		w.SessionFocus = &focus
	}

	s.CurrentWorkout = w
	s.WorkoutStartTime = &startTime
	return nil
}

func endWorkout(s *State, env Env) error {
	w, err := activeWorkout(s)
	if err != nil {
		return err
	}
	if s.WorkoutStartTime == nil {
		return fmt.Errorf("missing start time: %w", ErrNoActiveWorkout)
	}

	elapsedMs := env.Now().UnixMilli() - *s.WorkoutStartTime
	duration := int(math.Round(float64(elapsedMs) / 1000))
	if duration < 0 {
		duration = 0
	}

	w.Duration = duration
	w.Completed = true
	w.WorkoutType = w.DeriveType()
	return nil
}

func clearWorkout(s *State) error {
	if s.CurrentWorkout == nil {
		return ErrNoActiveWorkout
	}
	s.CurrentWorkout = nil
	s.WorkoutStartTime = nil
	return nil
}

func addExercise(s *State, c AddExercise, env Env) error {
	w, err := activeWorkout(s)
	if err != nil {
		return err
	}

	we := c.Exercise.Clone()
	if we.ExerciseID == "" {
		we.ExerciseID = we.Exercise.ID
	}
	if we.ExerciseID == "" {
		return fmt.Errorf("missing exercise id: %w", ErrInvalidCommand)
	}
	if we.ID == "" {
		we.ID = env.NewID()
	}
	if w.ExerciseIndex(we.ID) >= 0 {
		return fmt.Errorf("duplicate workout exercise id [%s]: %w", we.ID, ErrInvalidCommand)
	}
	if we.Variation == nil {
		we.Variation = workout.StringPtr(workout.DefaultVariation)
	}
	if we.Sets == nil {
		we.Sets = workout.Sets{}
	}

	w.Exercises = append(w.Exercises, we)
	return nil
}

func addSet(s *State, c AddSet, env Env) error {
	we, err := findExercise(s, c.WorkoutExerciseID)
	if err != nil {
		return err
	}
	if we.Exercise.IsCardio() {
		return fmt.Errorf("strength set on cardio exercise: %w", ErrSetKindMismatch)
	}

	set := &workout.StrengthSet{
		ID:            env.NewID(),
		ExerciseID:    exerciseIDOr(c.ExerciseID, we.ExerciseID),
		EquipmentType: cloneStr(we.EquipmentType),
		Variation:     cloneStr(we.Variation),
	}

	metric := 0
	if prev, ok := we.Sets.LastStrength(); ok {
		set.Weight = prev.Weight
		if c.IsStatic && prev.TimeSeconds != nil {
			metric = *prev.TimeSeconds
		}
		if !c.IsStatic && prev.Reps != nil {
			metric = *prev.Reps
		}
		if set.EquipmentType == nil {
			set.EquipmentType = cloneStr(prev.EquipmentType)
		}
		if set.Variation == nil {
			set.Variation = cloneStr(prev.Variation)
		}
	}

	if c.IsStatic {
		set.TimeSeconds = workout.IntPtr(metric)
	} else {
		set.Reps = workout.IntPtr(metric)
	}

	if set.EquipmentType != nil && *set.EquipmentType == workout.EquipmentBodyweight &&
		c.UserBodyweight != nil && *c.UserBodyweight > 0 {
		set.Weight = *c.UserBodyweight
	}

	we.Sets = append(we.Sets, set)
	return nil
}

func addCardioSet(s *State, c AddCardioSet, env Env) error {
	we, err := findExercise(s, c.WorkoutExerciseID)
	if err != nil {
		return err
	}
	if !we.Exercise.IsCardio() {
		return fmt.Errorf("cardio set on strength exercise: %w", ErrSetKindMismatch)
	}

	set := &workout.CardioSet{
		ID:         env.NewID(),
		ExerciseID: exerciseIDOr(c.ExerciseID, we.ExerciseID),
	}
	if prev, ok := we.Sets.LastCardio(); ok {
		seeded := prev.Clone().(*workout.CardioSet)
		seeded.ID = set.ID
		seeded.ExerciseID = set.ExerciseID
		seeded.Completed = false
		set = seeded
	}

	if focus := s.CurrentWorkout.SessionFocus; focus != nil {
		if zone, ok := workout.TargetHeartRateZone(*focus); ok {
			set.TargetHeartRateZone = workout.IntPtr(zone)
		}
	}

	we.Sets = append(we.Sets, set)
	return nil
}

func updateSet(s *State, c UpdateSet) error {
	we, err := findExercise(s, c.WorkoutExerciseID)
	if err != nil {
		return err
	}
	set, err := findSet(we, c.SetID)
	if err != nil {
		return err
	}

	switch target := set.(type) {
	case *workout.StrengthSet:
		if c.Weight != nil {
			if *c.Weight < 0 {
				return fmt.Errorf("negative weight: %w", ErrInvalidCommand)
			}
			target.Weight = *c.Weight
		}
		if target.IsStatic() {
			if c.TimeSeconds != nil {
				if *c.TimeSeconds < 0 {
					return fmt.Errorf("negative time: %w", ErrInvalidCommand)
				}
				target.TimeSeconds = workout.IntPtr(*c.TimeSeconds)
			}
		} else if c.Reps != nil {
			if *c.Reps < 0 {
				return fmt.Errorf("negative reps: %w", ErrInvalidCommand)
			}
			target.Reps = workout.IntPtr(*c.Reps)
		}
		if c.EquipmentType != nil {
			target.EquipmentType = cloneStr(c.EquipmentType)
		}
		if c.Variation != nil {
			target.Variation = cloneStr(c.Variation)
		}
		return nil
	case *workout.CardioSet:
		return ErrSetKindMismatch
	default:
		return fmt.Errorf("set %T: %w", set, ErrSetKindMismatch)
	}
}

func updateCardioSet(s *State, c UpdateCardioSet) error {
	we, err := findExercise(s, c.WorkoutExerciseID)
	if err != nil {
		return err
	}
	set, err := findSet(we, c.SetID)
	if err != nil {
		return err
	}

	switch target := set.(type) {
	case *workout.CardioSet:
		if c.TargetHeartRateZone != nil && (*c.TargetHeartRateZone < 1 || *c.TargetHeartRateZone > 5) {
			return fmt.Errorf("heart rate zone [%d]: %w", *c.TargetHeartRateZone, ErrInvalidCommand)
		}
		if c.Time != nil {
			target.Time = c.Time.Normalize()
		}
		if c.DistanceKm != nil {
			target.DistanceKm = workout.FloatPtr(*c.DistanceKm)
		}
		if c.PaceMinPerKm != nil {
			target.PaceMinPerKm = workout.FloatPtr(*c.PaceMinPerKm)
		}
		if c.HeartRateBPM != nil {
			target.HeartRateBPM = append([]int(nil), c.HeartRateBPM...)
		}
		if c.TargetHeartRateZone != nil {
			target.TargetHeartRateZone = workout.IntPtr(*c.TargetHeartRateZone)
		}
		if c.PerceivedExertion != nil {
			target.PerceivedExertion = workout.IntPtr(*c.PerceivedExertion)
		}
		if c.CaloriesBurned != nil {
			target.CaloriesBurned = workout.IntPtr(*c.CaloriesBurned)
		}
		return nil
	case *workout.StrengthSet:
		return ErrSetKindMismatch
	default:
		return fmt.Errorf("set %T: %w", set, ErrSetKindMismatch)
	}
}

func deleteSet(s *State, c DeleteSet) error {
	we, err := findExercise(s, c.WorkoutExerciseID)
	if err != nil {
		return err
	}
	idx := we.SetIndex(c.SetID)
	if idx < 0 {
		return ErrSetNotFound
	}
	we.Sets = append(we.Sets[:idx], we.Sets[idx+1:]...)
	return nil
}

func completeSet(s *State, c CompleteSet) error {
	we, err := findExercise(s, c.WorkoutExerciseID)
	if err != nil {
		return err
	}
	set, err := findSet(we, c.SetID)
	if err != nil {
		return err
	}
	set.SetCompleted(c.Completed)
	return nil
}

// Completed sets are history and keep the equipment they were done with.
func updateEquipment(s *State, c UpdateEquipment) error {
	if strings.TrimSpace(c.EquipmentType) == "" {
		return fmt.Errorf("empty equipment type: %w", ErrInvalidCommand)
	}
	we, err := findExercise(s, c.WorkoutExerciseID)
	if err != nil {
		return err
	}

	we.EquipmentType = workout.StringPtr(c.EquipmentType)
	for _, set := range we.Sets {
		if ss, ok := set.(*workout.StrengthSet); ok && !ss.Completed {
			ss.EquipmentType = workout.StringPtr(c.EquipmentType)
		}
	}
	return nil
}

func updateVariation(s *State, c UpdateVariation) error {
	if strings.TrimSpace(c.Variation) == "" {
		return fmt.Errorf("empty variation: %w", ErrInvalidCommand)
	}
	we, err := findExercise(s, c.WorkoutExerciseID)
	if err != nil {
		return err
	}

	we.Variation = workout.StringPtr(c.Variation)
	for _, set := range we.Sets {
		if ss, ok := set.(*workout.StrengthSet); ok && !ss.Completed {
			ss.Variation = workout.StringPtr(c.Variation)
		}
	}
	return nil
}

func deleteWorkoutExercise(s *State, c DeleteWorkoutExercise) error {
	w, err := activeWorkout(s)
	if err != nil {
		return err
	}
	idx := w.ExerciseIndex(c.WorkoutExerciseID)
	if idx < 0 {
		return ErrWorkoutExerciseNotFound
	}
	w.Exercises = append(w.Exercises[:idx], w.Exercises[idx+1:]...)
	return nil
}

// Focus and notes stay editable on an ended workout, before it is saved.
func updateSessionFocus(s *State, c UpdateSessionFocus) error {
	if s.CurrentWorkout == nil {
		return ErrNoActiveWorkout
	}
	if c.Focus == nil {
		s.CurrentWorkout.SessionFocus = nil
		return nil
	}
	if !c.Focus.IsValid() {
		return fmt.Errorf("session focus [%s]: %w", *c.Focus, ErrInvalidCommand)
	}
	focus := *c.Focus
	s.CurrentWorkout.SessionFocus = &focus
	return nil
}

func updateNotes(s *State, c UpdateNotes) error {
	if s.CurrentWorkout == nil {
		return ErrNoActiveWorkout
	}
	if c.Notes == "" {
		s.CurrentWorkout.Notes = nil
		return nil
	}
	s.CurrentWorkout.Notes = workout.StringPtr(c.Notes)
	return nil
}

func activeWorkout(s *State) (*workout.Workout, error) {
	switch s.Phase() {
	case PhaseNone:
		return nil, ErrNoActiveWorkout
	case PhaseEnded:
		return nil, ErrWorkoutEnded
	default:
		return s.CurrentWorkout, nil
	}
}

func findExercise(s *State, workoutExerciseID string) (*workout.WorkoutExercise, error) {
	w, err := activeWorkout(s)
	if err != nil {
		return nil, err
	}
	idx := w.ExerciseIndex(workoutExerciseID)
	if idx < 0 {
		return nil, ErrWorkoutExerciseNotFound
	}
	return w.Exercises[idx], nil
}

func findSet(we *workout.WorkoutExercise, setID string) (workout.Set, error) {
	idx := we.SetIndex(setID)
	if idx < 0 {
		return nil, ErrSetNotFound
	}
	return we.Sets[idx], nil
}

func exerciseIDOr(id, fallback string) string {
	if id != "" {
		return id
	}
	return fallback
}

func cloneStr(s *string) *string {
	if s == nil {
		return nil
	}
	return workout.StringPtr(*s)
}
