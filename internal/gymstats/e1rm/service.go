package e1rm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/fitstats/internal/telemetry/metrics"
	"github.com/2beens/fitstats/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=e1rm_test

const (
	megabyte = 1024 * 1024

	DefaultCacheSize      = 10 * megabyte
	DefaultCacheExpireSec = 15 * 60
)

type historyRepo interface {
	StrengthHistory(ctx context.Context, userID, exerciseID string) ([]SetRecord, error)
}

type ChartParams struct {
	UserID     string
	ExerciseID string
	Range      Range
	// ActiveKeys are the series the user has toggled on so far.
	ActiveKeys []string
}

type ChartResponse struct {
	ExerciseID string   `json:"exerciseId"`
	Range      Range    `json:"range"`
	ActiveKeys []string `json:"activeKeys"`
	Chart
}

// Service builds e1RM charts. Daily maxes are cached per user and exercise,
// saving a workout invalidates them.
type Service struct {
	repo           historyRepo
	cache          *freecache.Cache
	cacheExpireSec int
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(
	repo historyRepo,
	cacheSize int,
	cacheExpireSec int,
	metricsManager *metrics.Manager,
) *Service {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	if cacheExpireSec <= 0 {
		cacheExpireSec = DefaultCacheExpireSec
	}
	return &Service{
		repo:           repo,
		cache:          freecache.NewCache(cacheSize),
		cacheExpireSec: cacheExpireSec,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

// WithClock is used in tests to pin "today".
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func cacheKey(userID, exerciseID string) []byte {
	return []byte(fmt.Sprintf("e1rm::%s::%s", userID, exerciseID))
}

func (s *Service) History(ctx context.Context, userID, exerciseID string) (_ []DailyMaxE1RM, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.e1rm.history")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	key := cacheKey(userID, exerciseID)
	if cached, err := s.cache.Get(key); err == nil {
		var history []DailyMaxE1RM
		if err := json.Unmarshal(cached, &history); err != nil {
			log.Errorf("unmarshal cached e1rm history for exercise [%s]: %s", exerciseID, err)
		} else {
			log.Tracef("e1rm history for user [%s], exercise [%s] found in cache", userID, exerciseID)
			span.SetAttributes(attribute.Bool("cache_hit", true))
			return history, nil
		}
	}
	span.SetAttributes(attribute.Bool("cache_hit", false))

	records, err := s.repo.StrengthHistory(ctx, userID, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("strength history: %w", err)
	}
	history := DailyMaxes(records)

	historyJson, err := json.Marshal(history)
	if err != nil {
		log.Errorf("marshal e1rm history for exercise [%s]: %s", exerciseID, err)
		return history, nil
	}
	if err := s.cache.Set(key, historyJson, s.cacheExpireSec); err != nil {
		log.Errorf("cache e1rm history for exercise [%s]: %s", exerciseID, err)
	}

	return history, nil
}

func (s *Service) Chart(ctx context.Context, params ChartParams) (_ *ChartResponse, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.e1rm.chart")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("exercise", params.ExerciseID),
		attribute.String("range", string(params.Range)),
	)

	history, err := s.History(ctx, params.UserID, params.ExerciseID)
	if err != nil {
		return nil, err
	}

	buildStart := time.Now()
	chart := BuildChart(history, params.Range, nil, s.now())
	activeKeys := ResolveActiveKeys(history, params.ActiveKeys)
	if s.metricsManager != nil {
		s.metricsManager.HistE1RMChartBuild.Observe(time.Since(buildStart).Seconds())
	}

	return &ChartResponse{
		ExerciseID: params.ExerciseID,
		Range:      params.Range,
		ActiveKeys: activeKeys,
		Chart:      chart,
	}, nil
}

func (s *Service) Invalidate(userID, exerciseID string) {
	if s.cache.Del(cacheKey(userID, exerciseID)) {
		log.Debugf("e1rm cache invalidated for user [%s], exercise [%s]", userID, exerciseID)
	}
}
