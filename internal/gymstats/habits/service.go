package habits

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/fitstats/internal/telemetry/metrics"
	"github.com/2beens/fitstats/internal/telemetry/tracing"

	"github.com/google/uuid"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=habits_test

type habitsRepo interface {
	Add(ctx context.Context, l Log) error
	List(ctx context.Context, params ListParams) ([]Log, error)
	Latest(ctx context.Context, userID string, habitType HabitType) (*Log, error)
	LoggedDays(ctx context.Context, userID string, habitType HabitType) ([]time.Time, error)
}

type Service struct {
	repo           habitsRepo
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(repo habitsRepo, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Add(ctx context.Context, l Log) (_ *Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.habits.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := l.Validate(); err != nil {
		return nil, err
	}

	l.ID = uuid.NewString()
	if l.LoggedAt.IsZero() {
		l.LoggedAt = s.now()
	}
	l.LoggedAt = l.LoggedAt.UTC()

	if err := s.repo.Add(ctx, l); err != nil {
		return nil, fmt.Errorf("add %s log: %w", l.Type, err)
	}
	if s.metricsManager != nil {
		s.metricsManager.CounterHabitLogs.WithLabelValues(string(l.Type)).Inc()
	}
	return &l, nil
}

func (s *Service) List(ctx context.Context, params ListParams) (_ []Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.habits.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if params.Type != nil && !params.Type.IsValid() {
		return nil, ErrInvalidHabitType
	}

	logs, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list habit logs: %w", err)
	}
	return logs, nil
}

// LatestBodyweight returns the last logged bodyweight, ok is false when the
// user never logged one.
func (s *Service) LatestBodyweight(ctx context.Context, userID string) (_ float64, ok bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.habits.latest_bodyweight")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	l, err := s.repo.Latest(ctx, userID, HabitTypeBodyweight)
	if err != nil {
		return 0, false, fmt.Errorf("latest bodyweight: %w", err)
	}
	if l == nil || l.Value <= 0 {
		return 0, false, nil
	}
	return l.Value, true, nil
}

func (s *Service) Streak(ctx context.Context, userID string, habitType HabitType) (_ Streak, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.habits.streak")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if !habitType.IsValid() {
		return Streak{}, ErrInvalidHabitType
	}

	days, err := s.repo.LoggedDays(ctx, userID, habitType)
	if err != nil {
		return Streak{}, fmt.Errorf("logged days: %w", err)
	}
	return ComputeStreak(habitType, days, s.now()), nil
}
