package session

import (
	"context"
	"errors"
	"sync"

	"github.com/2beens/fitstats/internal/telemetry/metrics"
	"github.com/2beens/fitstats/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=manager_mocks_test.go -package=session_test

type SnapshotStore interface {
	// Load returns nil, nil when there is no stored snapshot.
	Load(ctx context.Context, userID string) (*State, error)
	Save(ctx context.Context, userID string, state State) error
	Delete(ctx context.Context, userID string) error
}

// Manager holds one Session per user. Sessions are created lazily and start
// from the last stored snapshot, so an active workout survives a restart.
// The snapshot is written while the session lock is held, so the store never
// sees transitions out of order.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	store          SnapshotStore
	env            Env
	metricsManager *metrics.Manager
}

func NewManager(store SnapshotStore, env Env, metricsManager *metrics.Manager) *Manager {
	return &Manager{
		sessions:       map[string]*Session{},
		store:          store,
		env:            env,
		metricsManager: metricsManager,
	}
}

// Session returns the session of the user, creating it when none is held.
func (m *Manager) Session(ctx context.Context, userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[userID]; ok {
		return s
	}
	return m.register(userID, m.load(ctx, userID))
}

// Snapshot only keeps a session in memory when the user has a workout, reading
// an empty session leaves nothing behind.
func (m *Manager) Snapshot(ctx context.Context, userID string) State {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	if !ok {
		initial := m.load(ctx, userID)
		if initial.Phase() == PhaseNone {
			m.mu.Unlock()
			return State{}
		}
		s = m.register(userID, initial)
	}
	m.mu.Unlock()

	return s.Snapshot()
}

func (m *Manager) Dispatch(ctx context.Context, userID string, cmd Command) (_ State, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "session.manager.dispatch")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	name := "unknown"
	if cmd != nil {
		name = cmd.Name()
	}
	span.SetAttributes(attribute.String("command", name))
	span.SetAttributes(attribute.String("user", userID))

	state, err := m.Transact(ctx, userID, func(state State) (State, error) {
		return Apply(state, cmd, m.env)
	})
	m.observe(name, err)
	return state, err
}

// Transact runs fn against the user's session, see Session.Transact. The
// resulting state is persisted before the session accepts another command.
func (m *Manager) Transact(ctx context.Context, userID string, fn func(State) (State, error)) (State, error) {
	for {
		state, err := m.Session(ctx, userID).Transact(ctx, fn)
		if errors.Is(err, errSessionRetired) {
			continue
		}
		return state, err
	}
}

// Forget drops the in-memory session of the user, the stored snapshot is kept.
func (m *Manager) Forget(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		return
	}
	_, phase := s.retire(true)
	delete(m.sessions, userID)
	if phase != PhaseNone {
		m.trackActive(PhaseActive, PhaseNone)
	}
}

// ForgetIdle drops in-memory sessions that hold no workout. Returns how many
// were dropped.
func (m *Manager) ForgetIdle() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	dropped := 0
	for userID, s := range m.sessions {
		if retired, _ := s.retire(false); retired {
			delete(m.sessions, userID)
			dropped++
		}
	}
	return dropped
}

// ActiveSessions returns the number of sessions currently holding a workout.
func (m *Manager) ActiveSessions() int {
	active := 0
	for _, s := range m.held() {
		if s.Snapshot().Phase() != PhaseNone {
			active++
		}
	}
	return active
}

// HeldSessions returns the number of sessions kept in memory, idle ones
// included.
func (m *Manager) HeldSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) held() []*Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	return sessions
}

// must be called with m.mu held
func (m *Manager) load(ctx context.Context, userID string) State {
	if m.store == nil {
		return State{}
	}
	stored, err := m.store.Load(ctx, userID)
	if err != nil {
		log.Errorf("load session snapshot for user [%s]: %s", userID, err)
		return State{}
	}
	if stored == nil {
		return State{}
	}
	return *stored
}

// must be called with m.mu held
func (m *Manager) register(userID string, initial State) *Session {
	s := NewSession(userID, initial, m.env)
	s.onCommit = m.commit
	m.sessions[userID] = s
	m.trackActive(PhaseNone, initial.Phase())
	return s
}

// commit runs under the session lock and must not take m.mu.
func (m *Manager) commit(ctx context.Context, userID string, prev, next State) {
	m.persist(ctx, userID, next)
	m.trackActive(prev.Phase(), next.Phase())
}

// Store failures are only logged, the in-memory session stays the source of truth.
func (m *Manager) persist(ctx context.Context, userID string, state State) {
	if m.store == nil {
		return
	}

	if state.CurrentWorkout == nil {
		if err := m.store.Delete(ctx, userID); err != nil {
			log.Errorf("delete session snapshot for user [%s]: %s", userID, err)
		}
		return
	}

	if err := m.store.Save(ctx, userID, state); err != nil {
		log.Errorf("save session snapshot for user [%s]: %s", userID, err)
	}
}

func (m *Manager) observe(name string, err error) {
	if m.metricsManager == nil {
		return
	}
	m.metricsManager.CounterSessionCommands.WithLabelValues(name, outcome(err)).Inc()
}

func (m *Manager) trackActive(prev, next Phase) {
	if m.metricsManager == nil {
		return
	}
	wasActive, isActive := prev != PhaseNone, next != PhaseNone
	switch {
	case !wasActive && isActive:
		m.metricsManager.GaugeActiveSessions.Inc()
	case wasActive && !isActive:
		m.metricsManager.GaugeActiveSessions.Dec()
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNoActiveWorkout),
		errors.Is(err, ErrWorkoutExerciseNotFound),
		errors.Is(err, ErrSetNotFound):
		return "not_found"
	case errors.Is(err, ErrWorkoutInProgress),
		errors.Is(err, ErrWorkoutEnded):
		return "conflict"
	case errors.Is(err, ErrSetKindMismatch):
		return "kind_mismatch"
	default:
		return "invalid"
	}
}
