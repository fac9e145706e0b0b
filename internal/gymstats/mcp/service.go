package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/2beens/fitstats/internal/gymstats/e1rm"
	"github.com/2beens/fitstats/internal/gymstats/habits"
	"github.com/2beens/fitstats/internal/gymstats/session"
	"github.com/2beens/fitstats/internal/gymstats/workout"
	"github.com/2beens/fitstats/internal/gymstats/workouts"
)

type sessionSnapshots interface {
	Snapshot(ctx context.Context, userID string) session.State
}

type chartBuilder interface {
	Chart(ctx context.Context, params e1rm.ChartParams) (*e1rm.ChartResponse, error)
}

type habitStreaks interface {
	Streak(ctx context.Context, userID string, habitType habits.HabitType) (habits.Streak, error)
}

type exerciseCatalog interface {
	List(ctx context.Context, userID string) ([]workout.Exercise, error)
}

type workoutsLister interface {
	List(ctx context.Context, params workouts.ListParams) (_ []workouts.Summary, total int, err error)
}

// contextService provides gymstats context data. Used by Handler for testability.
type contextService interface {
	GetSchema(ctx context.Context) (string, error)
	ActiveWorkout(ctx context.Context, userID string) ActiveWorkout
	E1RMChart(ctx context.Context, params e1rm.ChartParams) (*e1rm.ChartResponse, error)
	HabitStreak(ctx context.Context, userID string, habitType habits.HabitType) (habits.Streak, error)
	ListExercises(ctx context.Context, userID string) ([]workout.Exercise, error)
	RecentWorkouts(ctx context.Context, userID string, limit int) ([]workouts.Summary, error)
}

// ActiveWorkout is the session snapshot as the assistant sees it.
type ActiveWorkout struct {
	Phase          session.Phase    `json:"phase"`
	ElapsedSeconds *int             `json:"elapsed_seconds,omitempty"`
	Workout        *workout.Workout `json:"workout"`
}

type ServiceDeps struct {
	Schema    SchemaRepo
	Sessions  sessionSnapshots
	Charts    chartBuilder
	Habits    habitStreaks
	Exercises exerciseCatalog
	Workouts  workoutsLister
}

// ContextService holds dependencies and implements the gymstats context business logic.
type ContextService struct {
	deps ServiceDeps
	now  func() time.Time
}

func NewContextService(deps ServiceDeps) *ContextService {
	return &ContextService{
		deps: deps,
		now:  time.Now,
	}
}

// GetSchema returns the DB schema (table names, columns, types) of the gymstats tables.
func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	cols, err := s.deps.Schema.GetGymstatsColumns(ctx)
	if err != nil {
		return "", err
	}
	return formatGymstatsSchema(cols), nil
}

func formatGymstatsSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# Gymstats DB Schema\n\nNo gymstats tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.TableName] = append(byTable[c.TableName], c)
	}

	tableOrder := make([]string, 0, len(byTable))
	for t := range byTable {
		tableOrder = append(tableOrder, t)
	}
	sort.Strings(tableOrder)

	var b strings.Builder
	b.WriteString("# Gymstats DB Schema\n\n")
	b.WriteString("Tables: " + strings.Join(gymstatsTables, ", ") + " (schema: public).\n\n")

	for _, tableName := range tableOrder {
		b.WriteString("## ")
		b.WriteString(tableName)
		b.WriteString("\n\n| Column | Type | Nullable | Default |\n|--------|------|----------|--------|\n")
		for _, c := range byTable[tableName] {
			def := "-"
			if c.ColumnDef != nil && *c.ColumnDef != "" {
				def = *c.ColumnDef
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", c.ColumnName, c.DataType, c.IsNullable, def))
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n\n") + "\n"
}

// ActiveWorkout returns the current session of the user. Elapsed time is only
// set while the workout is running.
func (s *ContextService) ActiveWorkout(ctx context.Context, userID string) ActiveWorkout {
	state := s.deps.Sessions.Snapshot(ctx, userID)
	aw := ActiveWorkout{
		Phase:   state.Phase(),
		Workout: state.CurrentWorkout,
	}
	if aw.Phase == session.PhaseActive && state.WorkoutStartTime != nil {
		elapsed := int(s.now().Sub(time.UnixMilli(*state.WorkoutStartTime)).Seconds())
		if elapsed < 0 {
			elapsed = 0
		}
		aw.ElapsedSeconds = &elapsed
	}
	return aw
}

func (s *ContextService) E1RMChart(ctx context.Context, params e1rm.ChartParams) (*e1rm.ChartResponse, error) {
	return s.deps.Charts.Chart(ctx, params)
}

func (s *ContextService) HabitStreak(ctx context.Context, userID string, habitType habits.HabitType) (habits.Streak, error) {
	return s.deps.Habits.Streak(ctx, userID, habitType)
}

func (s *ContextService) ListExercises(ctx context.Context, userID string) ([]workout.Exercise, error) {
	return s.deps.Exercises.List(ctx, userID)
}

// RecentWorkouts returns the first page of saved workouts, newest first.
func (s *ContextService) RecentWorkouts(ctx context.Context, userID string, limit int) ([]workouts.Summary, error) {
	if limit < 1 {
		limit = 10
	}
	summaries, _, err := s.deps.Workouts.List(ctx, workouts.ListParams{
		UserID: userID,
		Page:   1,
		Size:   limit,
	})
	return summaries, err
}
