package service

import (
	"context"
	"errors"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/authshell/authshell/internal/core/domain"
	"github.com/authshell/authshell/internal/core/ports"
	"github.com/authshell/authshell/internal/pkg/ids"
	"github.com/authshell/authshell/internal/pkg/metrics"
)

const minLoginPasswordLength = 6

// AuthService owns the session state machine:
// loading -> authenticated(User) | unauthenticated.
//
// It is the error boundary of the core: persistence failures are logged and
// never returned to the caller.
type AuthService struct {
	store   ports.SessionStore
	latency ports.Latency
	newID   func() string
	log     zerolog.Logger

	initOnce sync.Once

	mu      sync.RWMutex
	state   domain.SessionState
	subs    map[int]chan domain.SessionState
	nextSub int
}

// Option configures an AuthService.
type Option func(*AuthService)

func WithLogger(log zerolog.Logger) Option {
	return func(s *AuthService) { s.log = log }
}

func WithLatency(l ports.Latency) Option {
	return func(s *AuthService) { s.latency = l }
}

func WithIDGenerator(fn func() string) Option {
	return func(s *AuthService) { s.newID = fn }
}

// NewAuthService returns a service in the loading state. Defaults: one
// second of emulated latency, UUIDv7 ids, no logging.
func NewAuthService(store ports.SessionStore, opts ...Option) *AuthService {
	s := &AuthService{
		store:   store,
		latency: FixedLatency{Delay: DefaultLatency},
		newID:   ids.New,
		log:     zerolog.Nop(),
		state:   domain.SessionState{IsLoading: true},
		subs:    make(map[int]chan domain.SessionState),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize restores a stored session. Only the first call does any work;
// Login, Signup and Logout call it implicitly.
func (s *AuthService) Initialize(ctx context.Context) {
	s.initOnce.Do(func() {
		user, err := s.store.LoadCurrentUser(ctx)
		if err != nil {
			s.log.Warn().Err(err).Str("key", CurrentUserKey).Msg("could not restore session, starting logged out")
			user = nil
		}
		s.setState(domain.SessionState{User: user})
		if user != nil {
			s.log.Info().Str("user_id", user.ID).Msg("session restored")
		}
	})
}

// Login finds email in the registered users. Only the shape of password is
// checked: no credential is stored, so nothing is compared against it.
//
// ctx can only abort the emulated latency wait, which yields "Login failed".
// Once the wait is over the lookup and session save run to completion.
func (s *AuthService) Login(ctx context.Context, email, password string) domain.AuthResult {
	s.Initialize(ctx)
	defer observe(metrics.OpLogin, time.Now())

	if err := s.latency.Wait(ctx); err != nil {
		return s.fail(metrics.OpLogin, domain.MsgLoginFailed, err)
	}
	ctx = context.WithoutCancel(ctx)

	users, err := s.store.LoadRegisteredUsers(ctx)
	if err != nil {
		return s.fail(metrics.OpLogin, domain.MsgLoginFailed, err)
	}

	found := findByEmail(users, email)
	if found == nil {
		return s.fail(metrics.OpLogin, domain.MsgUserNotFound, nil)
	}
	if password == "" || utf8.RuneCountInString(password) < minLoginPasswordLength {
		return s.fail(metrics.OpLogin, domain.MsgInvalidPassword, nil)
	}

	user := *found
	s.authenticate(ctx, &user)
	metrics.AuthAttemptsTotal.WithLabelValues(metrics.OpLogin, "success").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return domain.Succeeded(&user)
}

// Signup registers a new user and logs them in. The password is accepted
// for interface symmetry but never stored.
//
// ctx can only abort the emulated latency wait, which yields "Signup failed"
// with nothing written. Once the wait is over the append and session save
// run to completion.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) domain.AuthResult {
	s.Initialize(ctx)
	defer observe(metrics.OpSignup, time.Now())

	if err := s.latency.Wait(ctx); err != nil {
		return s.fail(metrics.OpSignup, domain.MsgSignupFailed, err)
	}
	ctx = context.WithoutCancel(ctx)

	users, err := s.store.LoadRegisteredUsers(ctx)
	if err != nil {
		return s.fail(metrics.OpSignup, domain.MsgSignupFailed, err)
	}
	if findByEmail(users, email) != nil {
		return s.fail(metrics.OpSignup, domain.MsgUserExists, nil)
	}

	user := domain.User{ID: s.newID(), Name: name, Email: email}
	if err := s.store.AppendRegisteredUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return s.fail(metrics.OpSignup, domain.MsgUserExists, nil)
		}
		return s.fail(metrics.OpSignup, domain.MsgSignupFailed, err)
	}

	s.authenticate(ctx, &user)
	metrics.AuthAttemptsTotal.WithLabelValues(metrics.OpSignup, "success").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("user signed up")
	return domain.Succeeded(&user)
}

// Logout always ends in the unauthenticated state.
func (s *AuthService) Logout(ctx context.Context) {
	s.Initialize(ctx)
	defer observe(metrics.OpLogout, time.Now())

	s.setState(domain.SessionState{})
	if err := s.store.ClearCurrentUser(ctx); err != nil {
		s.log.Warn().Err(err).Str("key", CurrentUserKey).Msg("failed to clear stored session")
	}
	metrics.AuthAttemptsTotal.WithLabelValues(metrics.OpLogout, "success").Inc()
}

// State returns a snapshot of the session.
func (s *AuthService) State() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneState(s.state)
}

// Subscribe delivers the current state immediately and every later change.
// Slow subscribers only see the most recent state. The returned func
// unsubscribes and closes the channel.
func (s *AuthService) Subscribe() (<-chan domain.SessionState, func()) {
	ch := make(chan domain.SessionState, 1)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- cloneState(s.state)
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			close(ch)
			s.mu.Unlock()
		})
	}
	return ch, cancel
}

func (s *AuthService) authenticate(ctx context.Context, user *domain.User) {
	s.setState(domain.SessionState{User: user})
	if err := s.store.SaveCurrentUser(ctx, user); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to persist session")
	}
}

func (s *AuthService) setState(st domain.SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = cloneState(st)
	for _, ch := range s.subs {
		// Replace any undelivered state with the newest one.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- cloneState(st):
		default:
		}
	}
}

func (s *AuthService) fail(op, msg string, err error) domain.AuthResult {
	if err != nil {
		s.log.Warn().Err(err).Str("operation", op).Msg("auth operation failed")
	}
	metrics.AuthAttemptsTotal.WithLabelValues(op, resultLabel(msg)).Inc()
	return domain.Failed(msg)
}

func cloneState(st domain.SessionState) domain.SessionState {
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

func observe(op string, start time.Time) {
	metrics.AuthOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func resultLabel(msg string) string {
	switch msg {
	case domain.MsgUserNotFound:
		return "user_not_found"
	case domain.MsgUserExists:
		return "user_exists"
	case domain.MsgInvalidPassword:
		return "invalid_password"
	default:
		return "error"
	}
}
