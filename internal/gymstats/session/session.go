package session

import (
	"context"
	"errors"
	"sync"
)

// errSessionRetired is returned by a session its manager has already dropped.
// The caller has to fetch a fresh session and try again.
var errSessionRetired = errors.New("session retired")

// CommitFunc is called with the session lock held, after a transition is
// accepted and before the next command can see the new state.
type CommitFunc func(ctx context.Context, userID string, prev, next State)

// Session is an explicit handle to one user's workout session. Commands are
// applied one at a time and every transition runs to completion before the
// next one is accepted.
type Session struct {
	mu      sync.Mutex
	userID  string
	state   State
	env     Env
	retired bool

	onCommit CommitFunc
}

func NewSession(userID string, initial State, env Env) *Session {
	return &Session{
		userID: userID,
		state:  initial.Clone(),
		env:    env,
	}
}

func (s *Session) UserID() string {
	return s.userID
}

// Dispatch applies the command and returns a copy of the resulting state.
// When the command fails, the state is left untouched.
func (s *Session) Dispatch(ctx context.Context, cmd Command) (State, error) {
	return s.Transact(ctx, func(state State) (State, error) {
		return Apply(state, cmd, s.env)
	})
}

// Transact runs fn on a copy of the current state and commits what it
// returns. No other command is applied while fn runs, so fn may block on I/O
// that has to agree with the state it read.
func (s *Session) Transact(ctx context.Context, fn func(State) (State, error)) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.retired {
		return s.state.Clone(), errSessionRetired
	}

	next, err := fn(s.state.Clone())
	if err != nil {
		return s.state.Clone(), err
	}
	if s.onCommit != nil {
		s.onCommit(ctx, s.userID, s.state, next)
	}
	s.state = next
	return next.Clone(), nil
}

// Snapshot returns a deep copy, safe to read while commands are dispatched.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// retire marks the session as dropped, unless force is false and it still
// holds a workout. Returns whether it was retired and the phase it had.
func (s *Session) retire(force bool) (bool, Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()

	phase := s.state.Phase()
	if !force && phase != PhaseNone {
		return false, phase
	}
	s.retired = true
	return true, phase
}
