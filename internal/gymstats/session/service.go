package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitstats/internal/gymstats/workout"
	"github.com/2beens/fitstats/internal/telemetry/metrics"
	"github.com/2beens/fitstats/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=session_test

var ErrIncompleteSet = errors.New("set has no reps or time and there is no previous performance to fall back to")

type exerciseCatalog interface {
	Get(ctx context.Context, userID, exerciseID string) (*workout.Exercise, error)
}

type historyRepo interface {
	LastPerformance(ctx context.Context, userID, exerciseID string) (*workout.LastPerformance, error)
}

type workoutSaver interface {
	Save(ctx context.Context, pw PersistedWorkout) error
}

type bodyweightSource interface {
	LatestBodyweight(ctx context.Context, userID string) (float64, bool, error)
}

type chartCache interface {
	Invalidate(userID, exerciseID string)
}

type NewServiceParams struct {
	Manager        *Manager
	Catalog        exerciseCatalog
	History        historyRepo
	Saver          workoutSaver
	Bodyweight     bodyweightSource
	ChartCache     chartCache
	MetricsManager *metrics.Manager
}

// Service wraps the session manager with the lookups the reducer itself never
// does: exercise defaults, last performance and bodyweight.
type Service struct {
	manager        *Manager
	catalog        exerciseCatalog
	history        historyRepo
	saver          workoutSaver
	bodyweight     bodyweightSource
	chartCache     chartCache
	metricsManager *metrics.Manager
}

func NewService(params NewServiceParams) *Service {
	return &Service{
		manager:        params.Manager,
		catalog:        params.Catalog,
		history:        params.History,
		saver:          params.Saver,
		bodyweight:     params.Bodyweight,
		chartCache:     params.ChartCache,
		metricsManager: params.MetricsManager,
	}
}

func (s *Service) Snapshot(ctx context.Context, userID string) State {
	return s.manager.Snapshot(ctx, userID)
}

func (s *Service) Dispatch(ctx context.Context, userID string, cmd Command) (State, error) {
	return s.manager.Dispatch(ctx, userID, cmd)
}

func (s *Service) Start(ctx context.Context, userID string, focus *workout.SessionFocus) (State, error) {
	return s.manager.Dispatch(ctx, userID, StartWorkout{Focus: focus})
}

func (s *Service) End(ctx context.Context, userID string) (State, error) {
	return s.manager.Dispatch(ctx, userID, EndWorkout{})
}

func (s *Service) Clear(ctx context.Context, userID string) (State, error) {
	return s.manager.Dispatch(ctx, userID, ClearWorkout{})
}

// AddExercise resolves the equipment and variation the user used last time,
// falling back to the exercise defaults.
func (s *Service) AddExercise(ctx context.Context, userID, exerciseID string) (_ State, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.session.addexercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise", exerciseID))

	exercise, err := s.catalog.Get(ctx, userID, exerciseID)
	if err != nil {
		return s.manager.Snapshot(ctx, userID), fmt.Errorf("get exercise: %w", err)
	}

	we := workout.WorkoutExercise{
		ExerciseID:    exercise.ID,
		Exercise:      *exercise,
		EquipmentType: cloneStr(exercise.DefaultEquipmentType),
		Variation:     workout.StringPtr(workout.DefaultVariation),
		Sets:          workout.Sets{},
	}

	lp := s.lastPerformance(ctx, userID, exercise.ID)
	if lp != nil {
		if lp.EquipmentType != nil {
			we.EquipmentType = cloneStr(lp.EquipmentType)
		}
		if lp.Variation != nil {
			we.Variation = cloneStr(lp.Variation)
		}
	}

	return s.manager.Dispatch(ctx, userID, AddExercise{Exercise: we})
}

// AddSet adds a set of the right kind for the exercise.
func (s *Service) AddSet(ctx context.Context, userID, workoutExerciseID string) (_ State, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.session.addset")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	snapshot := s.manager.Snapshot(ctx, userID)
	we, err := lookupExercise(snapshot, workoutExerciseID)
	if err != nil {
		return snapshot, err
	}

	if we.Exercise.IsCardio() {
		return s.manager.Dispatch(ctx, userID, AddCardioSet{
			WorkoutExerciseID: we.ID,
			ExerciseID:        we.ExerciseID,
		})
	}

	cmd := AddSet{
		WorkoutExerciseID: we.ID,
		ExerciseID:        we.ExerciseID,
		IsStatic:          we.Exercise.IsStatic,
	}
	if we.EquipmentType != nil && *we.EquipmentType == workout.EquipmentBodyweight && s.bodyweight != nil {
		bw, ok, err := s.bodyweight.LatestBodyweight(ctx, userID)
		if err != nil {
			log.Warnf("add set, latest bodyweight for user [%s]: %s", userID, err)
		} else if ok {
			cmd.UserBodyweight = &bw
		}
	}

	return s.manager.Dispatch(ctx, userID, cmd)
}

// CompleteSet refuses to complete a strength set without reps (or time, for
// static exercises), unless the previous performance of the same set can be
// used instead.
func (s *Service) CompleteSet(ctx context.Context, userID, workoutExerciseID, setID string, completed bool) (_ State, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.session.completeset")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	completeCmd := CompleteSet{
		WorkoutExerciseID: workoutExerciseID,
		SetID:             setID,
		Completed:         completed,
	}
	if !completed {
		return s.manager.Dispatch(ctx, userID, completeCmd)
	}

	snapshot := s.manager.Snapshot(ctx, userID)
	we, err := lookupExercise(snapshot, workoutExerciseID)
	if err != nil {
		return snapshot, err
	}
	idx := we.SetIndex(setID)
	if idx < 0 {
		return snapshot, ErrSetNotFound
	}

	set, isStrength := we.Sets[idx].(*workout.StrengthSet)
	if !isStrength || set.ActiveMetric() > 0 {
		return s.manager.Dispatch(ctx, userID, completeCmd)
	}

	lp := s.lastPerformance(ctx, userID, we.ExerciseID)
	prev, ok := lp.SetAt(idx + 1)
	if !ok {
		return snapshot, ErrIncompleteSet
	}

	update := UpdateSet{
		WorkoutExerciseID: workoutExerciseID,
		SetID:             setID,
	}
	if set.IsStatic() {
		if prev.TimeSeconds == nil || *prev.TimeSeconds <= 0 {
			return snapshot, ErrIncompleteSet
		}
		update.TimeSeconds = workout.IntPtr(*prev.TimeSeconds)
	} else {
		if prev.Reps == nil || *prev.Reps <= 0 {
			return snapshot, ErrIncompleteSet
		}
		update.Reps = workout.IntPtr(*prev.Reps)
	}
	if set.Weight == 0 && prev.Weight > 0 {
		update.Weight = workout.FloatPtr(prev.Weight)
	}

	if _, err := s.manager.Dispatch(ctx, userID, update); err != nil {
		return s.manager.Snapshot(ctx, userID), fmt.Errorf("fill set from last performance: %w", err)
	}
	return s.manager.Dispatch(ctx, userID, completeCmd)
}

// Save ends the workout (if still active), persists the completed sets and
// clears the session. The session accepts no other command until the save is
// done, so nothing dispatched meanwhile can be dropped by the clear. If
// persisting fails, the session is left as it was, so saving can be retried.
func (s *Service) Save(ctx context.Context, userID string) (_ *PersistedWorkout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.session.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user", userID))

	var pw PersistedWorkout
	_, err = s.manager.Transact(ctx, userID, func(state State) (State, error) {
		if state.Phase() == PhaseActive {
			ended, err := Apply(state, EndWorkout{}, s.manager.env)
			if err != nil {
				return state, fmt.Errorf("end workout: %w", err)
			}
			state = ended
		}

		cleared, err := Apply(state, ClearWorkout{}, s.manager.env)
		if err != nil {
			return state, err
		}

		pw = Project(userID, state.CurrentWorkout)
		if err := s.saver.Save(ctx, pw); err != nil {
			return state, fmt.Errorf("save workout: %w", err)
		}
		return cleared, nil
	})
	if err != nil {
		return nil, err
	}

	if s.chartCache != nil {
		for _, exerciseID := range pw.ExerciseIDs() {
			s.chartCache.Invalidate(userID, exerciseID)
		}
	}
	if s.metricsManager != nil {
		s.metricsManager.CounterWorkoutsSaved.Inc()
	}

	return &pw, nil
}

// A failed lookup only means there is nothing to pre-fill from.
func (s *Service) lastPerformance(ctx context.Context, userID, exerciseID string) *workout.LastPerformance {
	if s.history == nil {
		return nil
	}
	lp, err := s.history.LastPerformance(ctx, userID, exerciseID)
	if err != nil {
		if !errors.Is(err, workout.ErrNoHistory) {
			log.Warnf("last performance for user [%s], exercise [%s]: %s", userID, exerciseID, err)
		}
		return nil
	}
	return lp
}

func lookupExercise(state State, workoutExerciseID string) (*workout.WorkoutExercise, error) {
	switch state.Phase() {
	case PhaseNone:
		return nil, ErrNoActiveWorkout
	case PhaseEnded:
		return nil, ErrWorkoutEnded
	}
	idx := state.CurrentWorkout.ExerciseIndex(workoutExerciseID)
	if idx < 0 {
		return nil, ErrWorkoutExerciseNotFound
	}
	return state.CurrentWorkout.Exercises[idx], nil
}
