package e1rm

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/fitstats/internal/telemetry/tracing"
	"github.com/2beens/fitstats/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=e1rm_test

type chartService interface {
	Chart(ctx context.Context, params ChartParams) (*ChartResponse, error)
}

type Handler struct {
	service chartService
}

func NewHandler(service chartService) *Handler {
	return &Handler{
		service: service,
	}
}

// HandleChart serves the e1RM chart of one exercise. Query params: range
// (1W|1M|3M|6M|1Y|ALL) and key, repeated or comma separated, for the series
// currently toggled on.
func (h *Handler) HandleChart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.e1rm.chart")
	defer span.End()

	vars := mux.Vars(r)
	userID, exerciseID := vars["user"], vars["ex"]
	if exerciseID == "" {
		http.Error(w, "error, exercise id empty", http.StatusBadRequest)
		return
	}

	rng, err := ParseRange(r.URL.Query().Get("range"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var activeKeys []string
	for _, k := range r.URL.Query()["key"] {
		for _, part := range strings.Split(k, ",") {
			if part = strings.TrimSpace(part); part != "" {
				activeKeys = append(activeKeys, part)
			}
		}
	}

	resp, err := h.service.Chart(ctx, ChartParams{
		UserID:     userID,
		ExerciseID: exerciseID,
		Range:      rng,
		ActiveKeys: activeKeys,
	})
	if err != nil {
		log.Errorf("e1rm chart for user [%s], exercise [%s]: %s", userID, exerciseID, err)
		status := http.StatusInternalServerError
		if errors.Is(err, ErrInvalidRange) {
			status = http.StatusBadRequest
		}
		http.Error(w, "failed to get e1rm chart", status)
		return
	}

	pkg.WriteJSON(w, resp, http.StatusOK)
}
