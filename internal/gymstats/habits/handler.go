package habits

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/fitstats/internal/telemetry/tracing"
	"github.com/2beens/fitstats/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=habits_test

type service interface {
	Add(ctx context.Context, l Log) (*Log, error)
	List(ctx context.Context, params ListParams) ([]Log, error)
	Streak(ctx context.Context, userID string, habitType HabitType) (Streak, error)
}

type AddLogRequest struct {
	Type     HabitType  `json:"type"`
	Value    float64    `json:"value"`
	Note     *string    `json:"note,omitempty"`
	LoggedAt *time.Time `json:"logged_at,omitempty"`
}

type Handler struct {
	service service
}

func NewHandler(service service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.habits.add")
	defer span.End()

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req AddLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("new habit log, unmarshal json params: %s", err)
		http.Error(w, "add habit log failed", http.StatusBadRequest)
		return
	}

	l := Log{
		UserID: mux.Vars(r)["user"],
		Type:   req.Type,
		Value:  req.Value,
		Note:   req.Note,
	}
	if req.LoggedAt != nil {
		l.LoggedAt = *req.LoggedAt
	}

	added, err := h.service.Add(ctx, l)
	if err != nil {
		if errors.Is(err, ErrInvalidHabitType) || errors.Is(err, ErrInvalidValue) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("new habit log: %s", err)
		http.Error(w, "add habit log failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.habits.list")
	defer span.End()

	params := ListParams{
		UserID: mux.Vars(r)["user"],
	}

	query := r.URL.Query()
	if typeStr := query.Get("type"); typeStr != "" {
		habitType := HabitType(typeStr)
		params.Type = &habitType
	}
	for name, dst := range map[string]**time.Time{"from": &params.From, "to": &params.To} {
		v := query.Get(name)
		if v == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			http.Error(w, "invalid <"+name+"> param", http.StatusBadRequest)
			return
		}
		*dst = &t
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			http.Error(w, "invalid <limit> param", http.StatusBadRequest)
			return
		}
		params.Limit = limit
	}

	logs, err := h.service.List(ctx, params)
	if err != nil {
		if errors.Is(err, ErrInvalidHabitType) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("list habit logs: %s", err)
		http.Error(w, "failed to list habit logs", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, logs, http.StatusOK)
}

func (h *Handler) HandleStreak(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.habits.streak")
	defer span.End()

	vars := mux.Vars(r)
	streak, err := h.service.Streak(ctx, vars["user"], HabitType(vars["type"]))
	if err != nil {
		if errors.Is(err, ErrInvalidHabitType) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("habit streak: %s", err)
		http.Error(w, "failed to get streak", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, streak, http.StatusOK)
}
