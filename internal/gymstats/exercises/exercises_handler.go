package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/fitstats/internal/gymstats/workout"
	"github.com/2beens/fitstats/internal/telemetry/tracing"
	"github.com/2beens/fitstats/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=exercises_mocks_test.go -package=exercises_test

type exercisesRepo interface {
	Add(ctx context.Context, userID string, ne NewExercise) (*workout.Exercise, error)
	Get(ctx context.Context, userID, exerciseID string) (*workout.Exercise, error)
	List(ctx context.Context, userID string) ([]workout.Exercise, error)
	Delete(ctx context.Context, userID, exerciseID string) error
}

type DeleteExerciseResponse struct {
	DeletedID string `json:"deletedId"`
}

type ListResponse struct {
	Exercises []workout.Exercise `json:"exercises"`
	Total     int                `json:"total"`
}

type Handler struct {
	repo exercisesRepo
}

func NewHandler(repo exercisesRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.exercises.new")
	defer span.End()

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var ne NewExercise
	if err := json.NewDecoder(r.Body).Decode(&ne); err != nil {
		log.Tracef("new exercise, unmarshal json params: %s", err)
		http.Error(w, "add exercise failed", http.StatusBadRequest)
		return
	}

	ne, err := ne.Normalize()
	if err != nil {
		http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
		return
	}

	userID := mux.Vars(r)["user"]
	added, err := handler.repo.Add(ctx, userID, ne)
	if errors.Is(err, ErrExerciseExists) {
		http.Error(w, "error, exercise with that name already exists", http.StatusConflict)
		return
	}
	if errors.Is(err, ErrInvalidExerciseType) {
		http.Error(w, "error, "+ErrInvalidExerciseType.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("failed to add new exercise [%s] for %s: %s", ne.Name, userID, err)
		http.Error(w, "error, failed to add new exercise", http.StatusInternalServerError)
		return
	}

	log.Debugf("new exercise added: %s [%s]", added.Name, added.ID)
	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.exercises.get")
	defer span.End()

	vars := mux.Vars(r)
	exercise, err := handler.repo.Get(ctx, vars["user"], vars["id"])
	if err != nil {
		if errors.Is(err, workout.ErrExerciseNotFound) {
			http.Error(w, "exercise not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get exercise %s: %s", vars["id"], err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, exercise, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.exercises.list")
	defer span.End()

	exercises, err := handler.repo.List(ctx, mux.Vars(r)["user"])
	if err != nil {
		log.Errorf("failed to list exercises: %s", err)
		http.Error(w, "failed to get exercises", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, ListResponse{
		Exercises: exercises,
		Total:     len(exercises),
	}, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.exercises.delete")
	defer span.End()

	vars := mux.Vars(r)
	userID := vars["user"]
	id := vars["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	exercise, err := handler.repo.Get(ctx, userID, id)
	if err != nil && !errors.Is(err, workout.ErrExerciseNotFound) {
		log.Errorf("failed to get exercise %s: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	} else if errors.Is(err, workout.ErrExerciseNotFound) {
		log.Debugf("exercise %s not found", id)
		http.Error(w, "exercise not found", http.StatusNotFound)
		return
	}

	if exercise.IsPredefined() {
		http.Error(w, "predefined exercises cannot be deleted", http.StatusForbidden)
		return
	}

	if err := handler.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, ErrExerciseInUse) {
			http.Error(w, "exercise is used in saved workouts", http.StatusConflict)
			return
		}
		log.Errorf("failed to delete exercise %s: %s", id, err)
		http.Error(w, "exercise not deleted", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, DeleteExerciseResponse{DeletedID: id}, http.StatusOK)
}
