package habits

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitstats/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const defaultListLimit = 100

type ListParams struct {
	UserID string
	Type   *HabitType
	From   *time.Time
	To     *time.Time
	Limit  int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, l Log) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.habits.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("type", l.Type.String()))

	_, err = r.db.Exec(ctx, `
		INSERT INTO habit_log (id, user_id, type, value, note, logged_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`,
		l.ID, l.UserID, l.Type.String(), l.Value, l.Note, l.LoggedAt,
	)
	if err != nil {
		return fmt.Errorf("insert habit log: %w", err)
	}
	return nil
}

func (r *Repo) List(ctx context.Context, params ListParams) (_ []Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.habits.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var habitType *string
	if params.Type != nil {
		t := params.Type.String()
		habitType = &t
		span.SetAttributes(attribute.String("type", t))
	}
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.String()))
	}
	if params.To != nil {
		span.SetAttributes(attribute.String("to", params.To.String()))
	}
	limit := params.Limit
	if limit < 1 {
		limit = defaultListLimit
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, type, value, note, logged_at
		FROM habit_log
		WHERE user_id = $1
		  AND ($2::text IS NULL OR type = $2)
		  AND ($3::timestamptz IS NULL OR logged_at >= $3)
		  AND ($4::timestamptz IS NULL OR logged_at <= $4)
		ORDER BY logged_at DESC
		LIMIT $5;
	`,
		params.UserID, habitType,
		params.From, params.To,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]Log, 0)
	for rows.Next() {
		var l Log
		if err := rows.Scan(&l.ID, &l.UserID, &l.Type, &l.Value, &l.Note, &l.LoggedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}

// Latest returns the most recent log of the given type.
func (r *Repo) Latest(ctx context.Context, userID string, habitType HabitType) (_ *Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.habits.latest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("type", habitType.String()))

	var l Log
	err = r.db.QueryRow(ctx, `
		SELECT id, user_id, type, value, note, logged_at
		FROM habit_log
		WHERE user_id = $1 AND type = $2
		ORDER BY logged_at DESC
		LIMIT 1;
	`, userID, habitType.String()).
		Scan(&l.ID, &l.UserID, &l.Type, &l.Value, &l.Note, &l.LoggedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// LoggedDays returns the distinct UTC days with a positive log of the type.
func (r *Repo) LoggedDays(ctx context.Context, userID string, habitType HabitType) (_ []time.Time, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.habits.logged_days")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("type", habitType.String()))

	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT (logged_at AT TIME ZONE 'UTC')::date AS day
		FROM habit_log
		WHERE user_id = $1 AND type = $2 AND value > 0
		ORDER BY day;
	`, userID, habitType.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := make([]time.Time, 0)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("days", len(days)))
	return days, nil
}
