package workouts

import (
	"context"
	"errors"
	"net/http"

	"github.com/2beens/fitstats/internal/telemetry/tracing"
	"github.com/2beens/fitstats/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts_test

type workoutsRepo interface {
	List(ctx context.Context, params ListParams) (_ []Summary, total int, err error)
	Delete(ctx context.Context, userID, workoutID string) error
	ExerciseIDs(ctx context.Context, userID, workoutID string) ([]string, error)
}

type chartCache interface {
	Invalidate(userID, exerciseID string)
}

const maxPageSize = 100

type ListResponse struct {
	Workouts []Summary `json:"workouts"`
	Total    int       `json:"total"`
}

type DeleteResponse struct {
	DeletedID string `json:"deletedId"`
}

type Handler struct {
	repo   workoutsRepo
	charts chartCache
}

func NewHandler(repo workoutsRepo, charts chartCache) *Handler {
	return &Handler{
		repo:   repo,
		charts: charts,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.workouts.list")
	defer span.End()

	vars := mux.Vars(r)
	page, size, err := pkg.ParsePagination(vars["page"], vars["size"], maxPageSize)
	if err != nil {
		log.Tracef("handle list workouts: %s", err)
		http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
		return
	}

	summaries, total, err := handler.repo.List(ctx, ListParams{
		UserID: vars["user"],
		Page:   page,
		Size:   size,
	})
	if err != nil {
		log.Errorf("list workouts: %s", err)
		http.Error(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, ListResponse{
		Workouts: summaries,
		Total:    total,
	}, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.workouts.delete")
	defer span.End()

	vars := mux.Vars(r)
	userID := vars["user"]
	workoutID := vars["id"]
	if workoutID == "" {
		http.Error(w, "workout id missing", http.StatusBadRequest)
		return
	}

	exerciseIDs, err := handler.repo.ExerciseIDs(ctx, userID, workoutID)
	if err != nil {
		log.Errorf("delete workout %s, get exercises: %s", workoutID, err)
		http.Error(w, "failed to delete workout", http.StatusInternalServerError)
		return
	}

	if err := handler.repo.Delete(ctx, userID, workoutID); err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete workout %s: %s", workoutID, err)
		http.Error(w, "failed to delete workout", http.StatusInternalServerError)
		return
	}

	for _, exerciseID := range exerciseIDs {
		handler.charts.Invalidate(userID, exerciseID)
	}

	pkg.WriteJSON(w, DeleteResponse{DeletedID: workoutID}, http.StatusOK)
}
