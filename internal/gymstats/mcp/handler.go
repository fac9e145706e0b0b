package mcp

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/2beens/fitstats/internal/gymstats/e1rm"
	"github.com/2beens/fitstats/internal/gymstats/habits"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler handles MCP tool requests and responses: parses input, calls the service, formats MCP result.
type Handler struct {
	service contextService
}

func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

// GetGymstatsSchemaTool returns the MCP tool handler for get_gymstats_schema.
func (h *Handler) GetGymstatsSchemaTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema: " + err.Error()), nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil, nil
	}
}

type UserInput struct {
	UserID string `json:"user_id" jsonschema:"The user id"`
}

// GetActiveWorkoutTool returns the MCP tool handler for get_active_workout.
func (h *Handler) GetActiveWorkoutTool() func(context.Context, *mcp.CallToolRequest, UserInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in UserInput) (*mcp.CallToolResult, any, error) {
		if in.UserID == "" {
			return errorResult("user_id is required"), nil, nil
		}
		return jsonResult(h.service.ActiveWorkout(ctx, in.UserID)), nil, nil
	}
}

type E1RMChartInput struct {
	UserID     string   `json:"user_id" jsonschema:"The user id"`
	ExerciseID string   `json:"exercise_id" jsonschema:"Exercise id (e.g. back-squat)"`
	Range      string   `json:"range,omitempty" jsonschema:"One of 1W, 1M, 3M, 6M, 1Y, ALL (default ALL)"`
	Keys       []string `json:"keys,omitempty" jsonschema:"Series keys (variation|equipment) to keep active"`
}

// GetE1RMChartTool returns the MCP tool handler for get_e1rm_chart.
func (h *Handler) GetE1RMChartTool() func(context.Context, *mcp.CallToolRequest, E1RMChartInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in E1RMChartInput) (*mcp.CallToolResult, any, error) {
		if in.UserID == "" || in.ExerciseID == "" {
			return errorResult("user_id and exercise_id are required"), nil, nil
		}
		rng, err := e1rm.ParseRange(in.Range)
		if err != nil {
			return errorResult("Invalid range: use one of 1W, 1M, 3M, 6M, 1Y, ALL"), nil, nil
		}

		chart, err := h.service.E1RMChart(ctx, e1rm.ChartParams{
			UserID:     in.UserID,
			ExerciseID: in.ExerciseID,
			Range:      rng,
			ActiveKeys: in.Keys,
		})
		if err != nil {
			return errorResult("Error building e1RM chart: " + err.Error()), nil, nil
		}
		return jsonResult(chart), nil, nil
	}
}

type HabitStreakInput struct {
	UserID string `json:"user_id" jsonschema:"The user id"`
	Type   string `json:"type" jsonschema:"Habit type: protein_intake, sun_exposure, movement, meditation, writing, bodyweight"`
}

// GetHabitStreakTool returns the MCP tool handler for get_habit_streak.
func (h *Handler) GetHabitStreakTool() func(context.Context, *mcp.CallToolRequest, HabitStreakInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in HabitStreakInput) (*mcp.CallToolResult, any, error) {
		habitType := habits.HabitType(strings.ToLower(strings.TrimSpace(in.Type)))
		if in.UserID == "" || !habitType.IsValid() {
			return errorResult("user_id and a valid habit type are required"), nil, nil
		}

		streak, err := h.service.HabitStreak(ctx, in.UserID, habitType)
		if err != nil {
			return errorResult("Error fetching habit streak: " + err.Error()), nil, nil
		}
		return jsonResult(streak), nil, nil
	}
}

// ListExercisesTool returns the MCP tool handler for list_exercises.
func (h *Handler) ListExercisesTool() func(context.Context, *mcp.CallToolRequest, UserInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in UserInput) (*mcp.CallToolResult, any, error) {
		if in.UserID == "" {
			return errorResult("user_id is required"), nil, nil
		}
		list, err := h.service.ListExercises(ctx, in.UserID)
		if err != nil {
			return errorResult("Error listing exercises: " + err.Error()), nil, nil
		}
		return jsonResult(list), nil, nil
	}
}

type RecentWorkoutsInput struct {
	UserID string `json:"user_id" jsonschema:"The user id"`
	Limit  int    `json:"limit,omitempty" jsonschema:"How many workouts to return (default 10)"`
}

// ListRecentWorkoutsTool returns the MCP tool handler for list_recent_workouts.
func (h *Handler) ListRecentWorkoutsTool() func(context.Context, *mcp.CallToolRequest, RecentWorkoutsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in RecentWorkoutsInput) (*mcp.CallToolResult, any, error) {
		if in.UserID == "" {
			return errorResult("user_id is required"), nil, nil
		}
		summaries, err := h.service.RecentWorkouts(ctx, in.UserID, in.Limit)
		if err != nil {
			return errorResult("Error listing workouts: " + err.Error()), nil, nil
		}
		return jsonResult(summaries), nil, nil
	}
}
