package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/2beens/fitstats/internal/gymstats/workout"
	"github.com/2beens/fitstats/internal/telemetry/tracing"
	"github.com/2beens/fitstats/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=session_test

type sessionService interface {
	Snapshot(ctx context.Context, userID string) State
	Dispatch(ctx context.Context, userID string, cmd Command) (State, error)
	Start(ctx context.Context, userID string, focus *workout.SessionFocus) (State, error)
	End(ctx context.Context, userID string) (State, error)
	Clear(ctx context.Context, userID string) (State, error)
	AddExercise(ctx context.Context, userID, exerciseID string) (State, error)
	AddSet(ctx context.Context, userID, workoutExerciseID string) (State, error)
	CompleteSet(ctx context.Context, userID, workoutExerciseID, setID string, completed bool) (State, error)
	Save(ctx context.Context, userID string) (*PersistedWorkout, error)
}

type SnapshotResponse struct {
	Phase Phase `json:"phase"`
	State
}

type StartRequest struct {
	Focus *workout.SessionFocus `json:"focus,omitempty"`
}

type AddExerciseRequest struct {
	ExerciseID string `json:"exerciseId"`
}

type CompleteSetRequest struct {
	Completed bool `json:"completed"`
}

type Handler struct {
	service sessionService
}

func NewHandler(service sessionService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.session.get")
	defer span.End()

	userID := mux.Vars(r)["user"]
	h.writeState(w, h.service.Snapshot(ctx, userID), http.StatusOK)
}

func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.session.start")
	defer span.End()

	var req StartRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		log.Errorf("start workout, unmarshal json params: %s", err)
		http.Error(w, "start workout failed", http.StatusBadRequest)
		return
	}

	userID := mux.Vars(r)["user"]
	state, err := h.service.Start(ctx, userID, req.Focus)
	if err != nil {
		log.Errorf("start workout for user [%s]: %s", userID, err)
		http.Error(w, "start workout failed: "+err.Error(), StatusFromError(err))
		return
	}
	h.writeState(w, state, http.StatusCreated)
}

func (h *Handler) HandleEnd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.session.end")
	defer span.End()

	userID := mux.Vars(r)["user"]
	state, err := h.service.End(ctx, userID)
	if err != nil {
		log.Errorf("end workout for user [%s]: %s", userID, err)
		http.Error(w, "end workout failed: "+err.Error(), StatusFromError(err))
		return
	}
	h.writeState(w, state, http.StatusOK)
}

func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.session.clear")
	defer span.End()

	userID := mux.Vars(r)["user"]
	state, err := h.service.Clear(ctx, userID)
	if err != nil {
		log.Errorf("clear workout for user [%s]: %s", userID, err)
		http.Error(w, "clear workout failed: "+err.Error(), StatusFromError(err))
		return
	}
	h.writeState(w, state, http.StatusOK)
}

func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.session.save")
	defer span.End()

	userID := mux.Vars(r)["user"]
	persisted, err := h.service.Save(ctx, userID)
	if err != nil {
		log.Errorf("save workout for user [%s]: %s", userID, err)
		http.Error(w, "save workout failed", StatusFromError(err))
		return
	}

	log.Debugf("workout [%s] saved for user [%s]: %d exercises, %d sets",
		persisted.Workout.ID, userID, len(persisted.Exercises), len(persisted.Sets))
	pkg.WriteJSON(w, persisted, http.StatusCreated)
}

func (h *Handler) HandleCommand(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.session.command")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Errorf("session command, read body: %s", err)
		http.Error(w, "session command failed", http.StatusBadRequest)
		return
	}

	cmd, err := DecodeCommand(body)
	if err != nil {
		log.Errorf("session command, decode: %s", err)
		http.Error(w, "invalid command: "+err.Error(), http.StatusBadRequest)
		return
	}

	userID := mux.Vars(r)["user"]
	state, err := h.service.Dispatch(ctx, userID, cmd)
	if err != nil {
		log.Errorf("session command [%s] for user [%s]: %s", cmd.Name(), userID, err)
		http.Error(w, err.Error(), StatusFromError(err))
		return
	}
	h.writeState(w, state, http.StatusOK)
}

func (h *Handler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.session.addexercise")
	defer span.End()

	var req AddExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("add exercise, unmarshal json params: %s", err)
		http.Error(w, "add exercise failed", http.StatusBadRequest)
		return
	}
	if req.ExerciseID == "" {
		http.Error(w, "error, exercise id empty", http.StatusBadRequest)
		return
	}

	userID := mux.Vars(r)["user"]
	state, err := h.service.AddExercise(ctx, userID, req.ExerciseID)
	if err != nil {
		log.Errorf("add exercise [%s] for user [%s]: %s", req.ExerciseID, userID, err)
		http.Error(w, "add exercise failed: "+err.Error(), StatusFromError(err))
		return
	}
	h.writeState(w, state, http.StatusCreated)
}

func (h *Handler) HandleAddSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.session.addset")
	defer span.End()

	vars := mux.Vars(r)
	userID, workoutExerciseID := vars["user"], vars["we"]
	state, err := h.service.AddSet(ctx, userID, workoutExerciseID)
	if err != nil {
		log.Errorf("add set to [%s] for user [%s]: %s", workoutExerciseID, userID, err)
		http.Error(w, "add set failed: "+err.Error(), StatusFromError(err))
		return
	}
	h.writeState(w, state, http.StatusCreated)
}

func (h *Handler) HandleCompleteSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.session.completeset")
	defer span.End()

	var req CompleteSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("complete set, unmarshal json params: %s", err)
		http.Error(w, "complete set failed", http.StatusBadRequest)
		return
	}

	vars := mux.Vars(r)
	userID, workoutExerciseID, setID := vars["user"], vars["we"], vars["set"]
	state, err := h.service.CompleteSet(ctx, userID, workoutExerciseID, setID, req.Completed)
	if err != nil {
		log.Errorf("complete set [%s] for user [%s]: %s", setID, userID, err)
		http.Error(w, "complete set failed: "+err.Error(), StatusFromError(err))
		return
	}
	h.writeState(w, state, http.StatusOK)
}

func (h *Handler) writeState(w http.ResponseWriter, state State, statusCode int) {
	pkg.WriteJSON(w, SnapshotResponse{
		Phase: state.Phase(),
		State: state,
	}, statusCode)
}

// StatusFromError maps session errors to HTTP status codes.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, ErrNoActiveWorkout),
		errors.Is(err, workout.ErrExerciseNotFound),
		errors.Is(err, ErrWorkoutExerciseNotFound),
		errors.Is(err, ErrSetNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrWorkoutInProgress),
		errors.Is(err, ErrWorkoutEnded),
		errors.Is(err, ErrWorkoutAlreadySaved):
		return http.StatusConflict
	case errors.Is(err, ErrSetKindMismatch),
		errors.Is(err, ErrIncompleteSet):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidCommand):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decodeOptionalBody accepts an empty body as a zero request.
func decodeOptionalBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
