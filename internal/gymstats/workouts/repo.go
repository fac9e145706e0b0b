package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitstats/internal/gymstats/e1rm"
	"github.com/2beens/fitstats/internal/gymstats/session"
	"github.com/2beens/fitstats/internal/gymstats/workout"
	"github.com/2beens/fitstats/internal/telemetry/tracing"
	"github.com/2beens/fitstats/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrEmptyWorkout    = errors.New("workout has no id")
)

type ListParams struct {
	UserID string
	Page   int
	Size   int
}

// Summary is a saved workout as shown in the history list.
type Summary struct {
	ID            string    `json:"id"`
	Date          string    `json:"date"`
	Duration      int       `json:"duration"`
	Completed     bool      `json:"completed"`
	WorkoutType   *string   `json:"workout_type"`
	SessionFocus  *string   `json:"session_focus"`
	Notes         *string   `json:"notes"`
	ExerciseCount int       `json:"exercise_count"`
	SetCount      int       `json:"set_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Save writes the workout with all its exercises and sets in one transaction.
func (r *Repo) Save(ctx context.Context, pw session.PersistedWorkout) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.workouts.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", pw.Workout.ID))
	span.SetAttributes(attribute.String("user", pw.Workout.UserID))
	span.SetAttributes(attribute.Int("exercises", len(pw.Exercises)))
	span.SetAttributes(attribute.Int("sets", len(pw.Sets)))

	if pw.Workout.ID == "" {
		return ErrEmptyWorkout
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		// no-op after a successful commit
		_ = tx.Rollback(ctx)
	}()

	batch := &pgx.Batch{}
	wr := pw.Workout
	batch.Queue(
		`INSERT INTO workout
				(id, user_id, date, duration, completed, workout_type, session_focus, notes)
				VALUES ($1, $2, $3::timestamptz, $4, $5, $6, $7, $8);`,
		wr.ID, wr.UserID, wr.Date, wr.Duration, wr.Completed, wr.WorkoutType, wr.SessionFocus, wr.Notes,
	)
	for _, we := range pw.Exercises {
		batch.Queue(
			`INSERT INTO workout_exercise
				(id, workout_id, exercise_id, order_index, equipment_type, variation)
				VALUES ($1, $2, $3, $4, $5, $6);`,
			we.ID, we.WorkoutID, we.ExerciseID, we.OrderIndex, we.EquipmentType, we.Variation,
		)
	}
	for _, s := range pw.Sets {
		batch.Queue(
			`INSERT INTO exercise_set
				(id, workout_exercise_id, set_number, kind, weight, reps, time_seconds, equipment_type, variation,
				 duration_seconds, distance_km, pace_min_per_km, heart_rate_bpm, target_heart_rate_zone,
				 perceived_exertion, calories_burned)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);`,
			s.ID, s.WorkoutExerciseID, s.SetNumber, string(s.Kind), s.Weight, s.Reps, s.TimeSeconds, s.EquipmentType, s.Variation,
			s.DurationSeconds, s.DistanceKm, s.PaceMinPerKm, s.HeartRateBPM, s.TargetHeartRateZone,
			s.PerceivedExertion, s.CaloriesBurned,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			constraint := pkg.ViolatedConstraint(err)
			switch {
			case pkg.IsUniqueViolationError(err):
				return fmt.Errorf("batch insert %d [%s]: %w", i, constraint, session.ErrWorkoutAlreadySaved)
			case pkg.IsForeignKeyViolationError(err):
				return fmt.Errorf("batch insert %d [%s]: %w", i, constraint, workout.ErrExerciseNotFound)
			case pkg.IsCheckViolationError(err):
				return fmt.Errorf("batch insert %d [%s]: %w", i, constraint, workout.ErrUnknownSetKind)
			}
			return fmt.Errorf("batch insert %d: %w", i, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

// StrengthHistory returns every persisted strength set with weight and reps
// for the user and exercise. Set level variation and equipment win over the
// workout exercise ones.
func (r *Repo) StrengthHistory(ctx context.Context, userID, exerciseID string) (_ []e1rm.SetRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.workouts.strength_history")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user", userID))
	span.SetAttributes(attribute.String("exercise_id", exerciseID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				w.date, s.weight, s.reps,
				COALESCE(s.variation, we.variation),
				COALESCE(s.equipment_type, we.equipment_type)
			FROM exercise_set s
			JOIN workout_exercise we ON s.workout_exercise_id = we.id
			JOIN workout w ON we.workout_id = w.id
			WHERE w.user_id = $1
				AND we.exercise_id = $2
				AND s.kind = $3
				AND s.weight IS NOT NULL
				AND s.reps IS NOT NULL
			ORDER BY w.date, s.set_number;`,
		userID, exerciseID, string(workout.SetKindStrength),
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	records := make([]e1rm.SetRecord, 0)
	for rows.Next() {
		var rec e1rm.SetRecord
		if err := rows.Scan(&rec.WorkoutDate, &rec.Weight, &rec.Reps, &rec.Variation, &rec.EquipmentType); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	span.SetAttributes(attribute.Int("records", len(records)))
	return records, nil
}

// LastPerformance returns the strength sets of the most recent saved workout
// that contains the exercise.
func (r *Repo) LastPerformance(ctx context.Context, userID, exerciseID string) (_ *workout.LastPerformance, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.workouts.last_performance")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user", userID))
	span.SetAttributes(attribute.String("exercise_id", exerciseID))

	rows, err := r.db.Query(
		ctx,
		`
			WITH last_workout AS (
				SELECT w.id, w.date
				FROM workout w
				JOIN workout_exercise we ON we.workout_id = w.id
				WHERE w.user_id = $1 AND we.exercise_id = $2
				ORDER BY w.date DESC, w.created_at DESC
				LIMIT 1
			)
			SELECT
				lw.id, lw.date, we.equipment_type, we.variation,
				s.set_number, COALESCE(s.weight, 0), s.reps, s.time_seconds, s.equipment_type, s.variation
			FROM last_workout lw
			JOIN workout_exercise we ON we.workout_id = lw.id AND we.exercise_id = $2
			JOIN exercise_set s ON s.workout_exercise_id = we.id
			WHERE s.kind = $3
			ORDER BY we.order_index, s.set_number;`,
		userID, exerciseID, string(workout.SetKindStrength),
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	lp, err := rows2lastPerformance(rows, exerciseID)
	if err != nil {
		return nil, err
	}
	if lp == nil {
		return nil, workout.ErrNoHistory
	}

	return lp, nil
}

func rows2lastPerformance(rows pgx.Rows, exerciseID string) (*workout.LastPerformance, error) {
	var lp *workout.LastPerformance
	setNumber := 0
	for rows.Next() {
		var (
			workoutID   string
			date        time.Time
			weEquipment *string
			weVariation *string
			set         workout.LastPerformanceSet
		)
		if err := rows.Scan(
			&workoutID, &date, &weEquipment, &weVariation,
			&set.SetNumber, &set.Weight, &set.Reps, &set.TimeSeconds, &set.EquipmentType, &set.Variation,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}

		if lp == nil {
			lp = &workout.LastPerformance{
				WorkoutID:     workoutID,
				Date:          date.UTC().Format(time.RFC3339),
				ExerciseID:    exerciseID,
				EquipmentType: weEquipment,
				Variation:     weVariation,
				Sets:          []workout.LastPerformanceSet{},
			}
		}

		// the same exercise can appear twice in one workout, keep numbering going
		setNumber++
		set.SetNumber = setNumber
		lp.Sets = append(lp.Sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return lp, nil
}

func (r *Repo) List(ctx context.Context, params ListParams) (_ []Summary, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user", params.UserID))
	span.SetAttributes(attribute.Int("page", params.Page))
	span.SetAttributes(attribute.Int("size", params.Size))

	if params.Page < 1 {
		return nil, -1, errors.New("page must be greater than 0")
	}
	if params.Size < 1 {
		return nil, -1, errors.New("size must be greater than 0")
	}

	countAll, err := r.Count(ctx, params.UserID)
	if err != nil {
		return nil, -1, err
	}

	limit, offset := pageBounds(params.Page, params.Size, countAll)
	span.SetAttributes(attribute.Int("count_all", countAll))
	span.SetAttributes(attribute.Int("limit", limit))
	span.SetAttributes(attribute.Int("offset", offset))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				w.id, w.date, w.duration, w.completed, w.workout_type, w.session_focus, w.notes, w.created_at,
				(SELECT COUNT(*) FROM workout_exercise we WHERE we.workout_id = w.id),
				(SELECT COUNT(*) FROM exercise_set s
					JOIN workout_exercise we ON s.workout_exercise_id = we.id
					WHERE we.workout_id = w.id)
			FROM workout w
			WHERE w.user_id = $1
			ORDER BY w.date DESC, w.created_at DESC
			LIMIT $2
			OFFSET $3;`,
		params.UserID, limit, offset,
	)
	if err != nil {
		return nil, -1, err
	}
	defer rows.Close()

	summaries, err := rows2summaries(rows)
	if err != nil {
		return nil, -1, err
	}
	return summaries, countAll, nil
}

// pageBounds clamps the page window so the last page is always full.
func pageBounds(page, size, countAll int) (limit, offset int) {
	limit = size
	offset = (page - 1) * size
	if countAll <= limit {
		return countAll, 0
	}
	if countAll-offset < limit {
		offset = countAll - limit
	}
	return limit, offset
}

func (r *Repo) Count(ctx context.Context, userID string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.workouts.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM workout WHERE user_id = $1;`, userID).Scan(&count); err != nil {
		return -1, fmt.Errorf("count workouts: %w", err)
	}
	return count, nil
}

// Delete removes a saved workout, exercises and sets go with it.
func (r *Repo) Delete(ctx context.Context, userID, workoutID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user", userID))
	span.SetAttributes(attribute.String("workout.id", workoutID))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM workout WHERE id = $1 AND user_id = $2;`,
		workoutID, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

// ExerciseIDs returns the exercises a saved workout touched. Used to drop
// cached charts after a delete.
func (r *Repo) ExerciseIDs(ctx context.Context, userID, workoutID string) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.workouts.exercise_ids")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT DISTINCT we.exercise_id
			FROM workout_exercise we
			JOIN workout w ON we.workout_id = w.id
			WHERE w.id = $1 AND w.user_id = $2
			ORDER BY we.exercise_id;`,
		workoutID, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func rows2summaries(rows pgx.Rows) ([]Summary, error) {
	summaries := make([]Summary, 0)
	for rows.Next() {
		var s Summary
		var date time.Time
		if err := rows.Scan(
			&s.ID, &date, &s.Duration, &s.Completed, &s.WorkoutType, &s.SessionFocus, &s.Notes, &s.CreatedAt,
			&s.ExerciseCount, &s.SetCount,
		); err != nil {
			return nil, err
		}
		s.Date = date.UTC().Format(time.RFC3339)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}
