package exercises

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitstats/internal/gymstats/workout"
	"github.com/2beens/fitstats/internal/telemetry/tracing"
	"github.com/2beens/fitstats/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, userID string, ne NewExercise) (_ *workout.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.exercises.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	ne, err = ne.Normalize()
	if err != nil {
		return nil, err
	}

	exercise := workout.Exercise{
		ID:                   uuid.NewString(),
		Name:                 ne.Name,
		IsStatic:             ne.IsStatic,
		ExerciseType:         ne.ExerciseType,
		DefaultEquipmentType: ne.DefaultEquipmentType,
		CreatedByUserID:      &userID,
	}
	span.SetAttributes(attribute.String("exercise.id", exercise.ID))

	if _, err := r.db.Exec(
		ctx,
		`INSERT INTO exercise
				(id, name, is_static, exercise_type, default_equipment_type, created_by_user_id)
				VALUES ($1, $2, $3, $4, $5, $6);`,
		exercise.ID, exercise.Name, exercise.IsStatic, exercise.ExerciseType, exercise.DefaultEquipmentType, exercise.CreatedByUserID,
	); err != nil {
		switch {
		case pkg.IsUniqueViolationError(err):
			return nil, ErrExerciseExists
		case pkg.IsCheckViolationError(err):
			return nil, fmt.Errorf("insert exercise [%s]: %w", pkg.ViolatedConstraint(err), ErrInvalidExerciseType)
		}
		return nil, fmt.Errorf("insert exercise: %w", err)
	}

	return &exercise, nil
}

// Get returns the exercise if it is predefined or was created by the user.
func (r *Repo) Get(ctx context.Context, userID, exerciseID string) (_ *workout.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", exerciseID))

	var e workout.Exercise
	err = r.db.QueryRow(
		ctx,
		`
			SELECT
				id, name, is_static, exercise_type, default_equipment_type, created_by_user_id
			FROM exercise
			WHERE id = $1 AND (created_by_user_id IS NULL OR created_by_user_id = $2);`,
		exerciseID, userID,
	).Scan(&e.ID, &e.Name, &e.IsStatic, &e.ExerciseType, &e.DefaultEquipmentType, &e.CreatedByUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, workout.ErrExerciseNotFound
		}
		return nil, fmt.Errorf("exercise [query row]: %w", err)
	}

	return &e, nil
}

// List returns the predefined exercises and the ones the user created.
func (r *Repo) List(ctx context.Context, userID string) (_ []workout.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user", userID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, name, is_static, exercise_type, default_equipment_type, created_by_user_id
			FROM exercise
			WHERE created_by_user_id IS NULL OR created_by_user_id = $1
			ORDER BY name, id;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	return rows2exercises(rows)
}

// Delete removes an exercise the user created. Predefined exercises stay.
func (r *Repo) Delete(ctx context.Context, userID, exerciseID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.exercises.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", exerciseID))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM exercise WHERE id = $1 AND created_by_user_id = $2;`,
		exerciseID, userID,
	)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return ErrExerciseInUse
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return workout.ErrExerciseNotFound
	}
	return nil
}

func rows2exercises(rows pgx.Rows) ([]workout.Exercise, error) {
	exercises := make([]workout.Exercise, 0)
	for rows.Next() {
		var e workout.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.IsStatic, &e.ExerciseType, &e.DefaultEquipmentType, &e.CreatedByUserID); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return exercises, nil
}
