package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server with the gymstats tools. Used by the main
// backend when mounting MCP at /mcp, and by cmd/gymstats_mcp over stdio.
func NewServer(deps ServiceDeps, version string) *mcp.Server {
	h := NewHandler(NewContextService(deps))
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "gymstats-context",
		Version: version,
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_gymstats_schema",
		Description: "Returns the DB schema of the gymstats tables (exercise, workout, workout_exercise, exercise_set, habit_log): columns, types, nullable, default.",
	}, h.GetGymstatsSchemaTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_active_workout",
		Description: "Returns the in-progress workout session of a user: phase (none, active, ended), elapsed seconds and the workout with its exercises and sets.",
	}, h.GetActiveWorkoutTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_e1rm_chart",
		Description: "Returns the estimated one-rep-max chart of an exercise: one point per day, one series per variation|equipment key, axis domain and ticks. Args: user_id, exercise_id; optional range (1W, 1M, 3M, 6M, 1Y, ALL) and keys.",
	}, h.GetE1RMChartTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_habit_streak",
		Description: "Returns the current and longest streak of consecutive days for a habit (protein_intake, sun_exposure, movement, meditation, writing, bodyweight).",
	}, h.GetHabitStreakTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_exercises",
		Description: "Returns the exercise catalog of a user: predefined exercises plus the ones the user created.",
	}, h.ListExercisesTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_recent_workouts",
		Description: "Returns the most recent saved workouts of a user with exercise and set counts. Optional limit (default 10).",
	}, h.ListRecentWorkoutsTool())

	return s
}
