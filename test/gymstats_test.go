//go:build integration

package test

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/2beens/fitstats/internal/gymstats/e1rm"
	"github.com/2beens/fitstats/internal/gymstats/exercises"
	"github.com/2beens/fitstats/internal/gymstats/habits"
	"github.com/2beens/fitstats/internal/gymstats/session"
	"github.com/2beens/fitstats/internal/gymstats/workout"
	"github.com/2beens/fitstats/internal/gymstats/workouts"
	testingpkg "github.com/2beens/fitstats/pkg/testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) sendCommand(ctx context.Context, userID string, cmd session.Command) (session.SnapshotResponse, int) {
	payload, err := session.EncodeCommand(cmd)
	require.NoError(s.T(), err)

	var resp session.SnapshotResponse
	status := s.doRequest(ctx, "POST", "/gymstats/session/"+userID+"/commands", json.RawMessage(payload), &resp)
	return resp, status
}

func (s *IntegrationTestSuite) TestExercises() {
	t := s.T()
	ctx := context.Background()
	userID := "user-" + gofakeit.UUID()

	var list exercises.ListResponse
	require.Equal(t, http.StatusOK, s.doRequest(ctx, "GET", "/gymstats/exercises/"+userID+"/list", nil, &list))
	predefinedCount := list.Total
	assert.Positive(t, predefinedCount)

	equipment := "Safety Bar"
	var added workout.Exercise
	require.Equal(t, http.StatusCreated, s.doRequest(ctx, "POST", "/gymstats/exercises/"+userID, exercises.NewExercise{
		Name:                 "Zercher Squat",
		DefaultEquipmentType: &equipment,
	}, &added))
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, "Zercher Squat", added.Name)
	assert.Equal(t, workout.ExerciseTypeStrength, added.ExerciseType)
	require.NotNil(t, added.CreatedByUserID)
	assert.Equal(t, userID, *added.CreatedByUserID)

	// same name, different case
	assert.Equal(t, http.StatusConflict, s.doRequest(ctx, "POST", "/gymstats/exercises/"+userID, exercises.NewExercise{
		Name: "zercher squat",
	}, nil))

	// other users do not see it
	require.Equal(t, http.StatusOK, s.doRequest(ctx, "GET", "/gymstats/exercises/other-user/list", nil, &list))
	assert.Equal(t, predefinedCount, list.Total)

	require.Equal(t, http.StatusOK, s.doRequest(ctx, "GET", "/gymstats/exercises/"+userID+"/list", nil, &list))
	assert.Equal(t, predefinedCount+1, list.Total)

	var got workout.Exercise
	require.Equal(t, http.StatusOK, s.doRequest(ctx, "GET", "/gymstats/exercises/"+userID+"/"+added.ID, nil, &got))
	assert.Equal(t, added, got)

	assert.Equal(t, http.StatusForbidden, s.doRequest(ctx, "DELETE", "/gymstats/exercises/"+userID+"/back-squat", nil, nil))

	var deleted exercises.DeleteExerciseResponse
	require.Equal(t, http.StatusOK, s.doRequest(ctx, "DELETE", "/gymstats/exercises/"+userID+"/"+added.ID, nil, &deleted))
	assert.Equal(t, added.ID, deleted.DeletedID)
	assert.Equal(t, http.StatusNotFound, s.doRequest(ctx, "GET", "/gymstats/exercises/"+userID+"/"+added.ID, nil, nil))
}

func (s *IntegrationTestSuite) TestWorkoutSession_SaveAndChart() {
	t := s.T()
	ctx := context.Background()
	userID := "user-" + gofakeit.UUID()
	sessionPath := "/gymstats/session/" + userID

	var state session.SnapshotResponse
	require.Equal(t, http.StatusOK, s.doRequest(ctx, "GET", sessionPath, nil, &state))
	assert.Equal(t, session.PhaseNone, state.Phase)

	// saving without a workout
	assert.Equal(t, http.StatusNotFound, s.doRequest(ctx, "POST", sessionPath+"/save", nil, nil))

	require.Equal(t, http.StatusCreated, s.doRequest(ctx, "POST", sessionPath+"/start", nil, &state))
	assert.Equal(t, session.PhaseActive, state.Phase)
	require.NotNil(t, state.CurrentWorkout)
	require.NotNil(t, state.WorkoutStartTime)

	// a second start is refused
	assert.Equal(t, http.StatusConflict, s.doRequest(ctx, "POST", sessionPath+"/start", nil, nil))

	// the active session is mirrored in redis
	redisCtx, rdb := testingpkg.GetRedisClientAndCtx(t, s.redisPort)
	assert.Eventually(t, func() bool {
		n, err := rdb.Exists(redisCtx, session.SnapshotKey(userID)).Result()
		return err == nil && n == 1
	}, 2*time.Second, 50*time.Millisecond)

	require.Equal(t, http.StatusCreated, s.doRequest(ctx, "POST", sessionPath+"/exercises", session.AddExerciseRequest{
		ExerciseID: "back-squat",
	}, &state))
	require.Len(t, state.CurrentWorkout.Exercises, 1)
	we := state.CurrentWorkout.Exercises[0]
	assert.Equal(t, "back-squat", we.ExerciseID)
	require.NotNil(t, we.EquipmentType)
	assert.Equal(t, "Barbell", *we.EquipmentType)

	assert.Equal(t, http.StatusNotFound, s.doRequest(ctx, "POST", sessionPath+"/exercises", session.AddExerciseRequest{
		ExerciseID: "no-such-exercise",
	}, nil))

	for range 2 {
		require.Equal(t, http.StatusCreated, s.doRequest(ctx, "POST", sessionPath+"/exercises/"+we.ID+"/sets", nil, &state))
	}
	sets := state.CurrentWorkout.Exercises[0].Sets
	require.Len(t, sets, 2)
	firstSetID, secondSetID := sets[0].SetID(), sets[1].SetID()

	// an empty set cannot be completed, there is no history to fill it from
	assert.Equal(t, http.StatusUnprocessableEntity, s.doRequest(ctx, "PUT",
		sessionPath+"/exercises/"+we.ID+"/sets/"+firstSetID+"/complete",
		session.CompleteSetRequest{Completed: true}, nil))

	state, status := s.sendCommand(ctx, userID, session.UpdateSet{
		WorkoutExerciseID: we.ID,
		SetID:             firstSetID,
		Weight:            workout.FloatPtr(100),
		Reps:              workout.IntPtr(5),
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, http.StatusOK, s.doRequest(ctx, "PUT",
		sessionPath+"/exercises/"+we.ID+"/sets/"+firstSetID+"/complete",
		session.CompleteSetRequest{Completed: true}, &state))

	var persisted session.PersistedWorkout
	require.Equal(t, http.StatusCreated, s.doRequest(ctx, "POST", sessionPath+"/save", nil, &persisted))
	assert.Equal(t, userID, persisted.Workout.UserID)
	assert.True(t, persisted.Workout.Completed)
	require.Len(t, persisted.Exercises, 1)
	// only the completed set is kept
	require.Len(t, persisted.Sets, 1)
	assert.NotEqual(t, secondSetID, persisted.Sets[0].ID)

	assert.Equal(t, 1, s.countRows("SELECT COUNT(*) FROM workout WHERE user_id = $1", userID))
	assert.Equal(t, 1, s.countRows(
		"SELECT COUNT(*) FROM exercise_set es JOIN workout_exercise we ON we.id = es.workout_exercise_id WHERE we.workout_id = $1",
		persisted.Workout.ID,
	))

	require.Equal(t, http.StatusOK, s.doRequest(ctx, "GET", sessionPath, nil, &state))
	assert.Equal(t, session.PhaseNone, state.Phase)

	var list workouts.ListResponse
	require.Equal(t, http.StatusOK, s.doRequest(ctx, "GET", "/gymstats/workouts/"+userID+"/list/page/1/size/10", nil, &list))
	assert.Equal(t, 1, list.Total)
	require.Len(t, list.Workouts, 1)
	assert.Equal(t, persisted.Workout.ID, list.Workouts[0].ID)

	var chart e1rm.ChartResponse
	require.Equal(t, http.StatusOK, s.doRequest(ctx, "GET", "/gymstats/e1rm/"+userID+"/exercise/back-squat?range=ALL", nil, &chart))
	require.Len(t, chart.Keys, 1)
	require.NotEmpty(t, chart.ChartData)
	last := chart.ChartData[len(chart.ChartData)-1]
	require.NotNil(t, last.Values[chart.Keys[0]])
	assert.InDelta(t, e1rm.Estimate(100, 5), *last.Values[chart.Keys[0]], 0.01)
	assert.Equal(t, []string{chart.Keys[0]}, chart.ActiveKeys)

	assert.Equal(t, http.StatusBadRequest, s.doRequest(ctx, "GET", "/gymstats/e1rm/"+userID+"/exercise/back-squat?range=2W", nil, nil))

	// the next workout completes an empty set from the saved one
	require.Equal(t, http.StatusCreated, s.doRequest(ctx, "POST", sessionPath+"/start", nil, &state))
	require.Equal(t, http.StatusCreated, s.doRequest(ctx, "POST", sessionPath+"/exercises", session.AddExerciseRequest{
		ExerciseID: "back-squat",
	}, &state))
	we = state.CurrentWorkout.Exercises[0]
	require.Equal(t, http.StatusCreated, s.doRequest(ctx, "POST", sessionPath+"/exercises/"+we.ID+"/sets", nil, &state))
	setID := state.CurrentWorkout.Exercises[0].Sets[0].SetID()
	require.Equal(t, http.StatusOK, s.doRequest(ctx, "PUT",
		sessionPath+"/exercises/"+we.ID+"/sets/"+setID+"/complete",
		session.CompleteSetRequest{Completed: true}, &state))
	filled, ok := state.CurrentWorkout.Exercises[0].Sets[0].(*workout.StrengthSet)
	require.True(t, ok)
	assert.True(t, filled.Completed)
	require.NotNil(t, filled.Reps)
	assert.Equal(t, 5, *filled.Reps)
	assert.Equal(t, float64(100), filled.Weight)

	require.Equal(t, http.StatusOK, s.doRequest(ctx, "DELETE", sessionPath, nil, &state))
	assert.Equal(t, session.PhaseNone, state.Phase)
	assert.Eventually(t, func() bool {
		n, err := rdb.Exists(redisCtx, session.SnapshotKey(userID)).Result()
		return err == nil && n == 0
	}, 2*time.Second, 50*time.Millisecond)

	// the saved workout references back-squat
	assert.Equal(t, 1, s.countRows("SELECT COUNT(*) FROM workout_exercise WHERE exercise_id = $1 AND workout_id = $2",
		"back-squat", persisted.Workout.ID))

	var deleted workouts.DeleteResponse
	require.Equal(t, http.StatusOK, s.doRequest(ctx, "DELETE", "/gymstats/workouts/"+userID+"/"+persisted.Workout.ID, nil, &deleted))
	assert.Equal(t, persisted.Workout.ID, deleted.DeletedID)
	assert.Equal(t, 0, s.countRows("SELECT COUNT(*) FROM workout WHERE user_id = $1", userID))

	require.Equal(t, http.StatusOK, s.doRequest(ctx, "GET", "/gymstats/e1rm/"+userID+"/exercise/back-squat", nil, &chart))
	assert.Empty(t, chart.ChartData)
	assert.Empty(t, chart.Keys)
}

func (s *IntegrationTestSuite) TestCustomExerciseInUse() {
	t := s.T()
	ctx := context.Background()
	userID := "user-" + gofakeit.UUID()
	sessionPath := "/gymstats/session/" + userID

	var added workout.Exercise
	require.Equal(t, http.StatusCreated, s.doRequest(ctx, "POST", "/gymstats/exercises/"+userID, exercises.NewExercise{
		Name:     gofakeit.Noun() + " Hold " + gofakeit.LetterN(4),
		IsStatic: true,
	}, &added))

	var state session.SnapshotResponse
	require.Equal(t, http.StatusCreated, s.doRequest(ctx, "POST", sessionPath+"/start", nil, &state))
	require.Equal(t, http.StatusCreated, s.doRequest(ctx, "POST", sessionPath+"/exercises", session.AddExerciseRequest{
		ExerciseID: added.ID,
	}, &state))
	we := state.CurrentWorkout.Exercises[0]
	require.Equal(t, http.StatusCreated, s.doRequest(ctx, "POST", sessionPath+"/exercises/"+we.ID+"/sets", nil, &state))
	setID := state.CurrentWorkout.Exercises[0].Sets[0].SetID()

	_, status := s.sendCommand(ctx, userID, session.UpdateSet{
		WorkoutExerciseID: we.ID,
		SetID:             setID,
		TimeSeconds:       workout.IntPtr(45),
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, http.StatusOK, s.doRequest(ctx, "PUT",
		sessionPath+"/exercises/"+we.ID+"/sets/"+setID+"/complete",
		session.CompleteSetRequest{Completed: true}, &state))

	_, status = s.sendCommand(ctx, userID, session.EndWorkout{})
	require.Equal(t, http.StatusOK, status)

	var persisted session.PersistedWorkout
	require.Equal(t, http.StatusCreated, s.doRequest(ctx, "POST", sessionPath+"/save", nil, &persisted))
	require.Len(t, persisted.Sets, 1)
	require.NotNil(t, persisted.Sets[0].TimeSeconds)
	assert.Equal(t, 45, *persisted.Sets[0].TimeSeconds)

	assert.Equal(t, http.StatusConflict, s.doRequest(ctx, "DELETE", "/gymstats/exercises/"+userID+"/"+added.ID, nil, nil))
}

func (s *IntegrationTestSuite) TestHabits() {
	t := s.T()
	ctx := context.Background()
	userID := "user-" + gofakeit.UUID()

	now := time.Now().UTC()
	yesterday := now.Add(-24 * time.Hour)
	for _, loggedAt := range []time.Time{yesterday, now} {
		var added habits.Log
		require.Equal(t, http.StatusCreated, s.doRequest(ctx, "POST", "/gymstats/habits/"+userID, habits.AddLogRequest{
			Type:     habits.HabitTypeWriting,
			Value:    30,
			LoggedAt: &loggedAt,
		}, &added))
		assert.NotEmpty(t, added.ID)
		assert.Equal(t, userID, added.UserID)
	}

	assert.Equal(t, http.StatusBadRequest, s.doRequest(ctx, "POST", "/gymstats/habits/"+userID, habits.AddLogRequest{
		Type:  "juggling",
		Value: 1,
	}, nil))

	var logs []habits.Log
	require.Equal(t, http.StatusOK, s.doRequest(ctx, "GET", "/gymstats/habits/"+userID+"/list?type=writing", nil, &logs))
	assert.Len(t, logs, 2)

	var streak habits.Streak
	require.Equal(t, http.StatusOK, s.doRequest(ctx, "GET", "/gymstats/habits/"+userID+"/streak/writing", nil, &streak))
	assert.Equal(t, habits.HabitTypeWriting, streak.Type)
	assert.Equal(t, 2, streak.Current)
	assert.Equal(t, 2, streak.Longest)
	require.NotNil(t, streak.LastDay)
	assert.Equal(t, now.Format(time.DateOnly), *streak.LastDay)
}
