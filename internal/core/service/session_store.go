package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/authshell/authshell/internal/core/domain"
	"github.com/authshell/authshell/internal/core/ports"
	"github.com/authshell/authshell/internal/pkg/metrics"
)

// Storage keys of the on-device contract.
const (
	CurrentUserKey     = "user"
	RegisteredUsersKey = "users"
)

// Serializer runs fn with exclusive access to key. queue.Writer satisfies it.
type Serializer interface {
	Submit(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// lockSerializer is the in-process fallback when no writer queue is wired.
type lockSerializer struct {
	mu sync.Mutex
}

func (l *lockSerializer) Submit(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}

type sessionStore struct {
	kv     ports.KeyValueStore
	writer Serializer
	log    zerolog.Logger
}

// NewSessionStore returns a SessionStore persisting JSON records through kv.
// Appends to the registered-user collection go through writer; a nil writer
// falls back to a process-local mutex. Writers in other processes sharing
// the same backend are not coordinated: last write wins.
func NewSessionStore(kv ports.KeyValueStore, writer Serializer, log zerolog.Logger) ports.SessionStore {
	if writer == nil {
		writer = &lockSerializer{}
	}
	return &sessionStore{kv: kv, writer: writer, log: log}
}

func (s *sessionStore) LoadCurrentUser(ctx context.Context) (*domain.User, error) {
	raw, err := s.kv.Get(ctx, CurrentUserKey)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, s.persistenceErr("load_current_user", err)
	}

	var user *domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		metrics.StorageErrorsTotal.WithLabelValues("load_current_user").Inc()
		return nil, fmt.Errorf("load current user: %w: %w", domain.ErrCorruptRecord, err)
	}
	return user, nil
}

func (s *sessionStore) SaveCurrentUser(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode current user: %w", err)
	}
	if err := s.kv.Set(ctx, CurrentUserKey, string(raw)); err != nil {
		return s.persistenceErr("save_current_user", err)
	}
	return nil
}

func (s *sessionStore) ClearCurrentUser(ctx context.Context) error {
	if err := s.kv.Remove(ctx, CurrentUserKey); err != nil {
		return s.persistenceErr("clear_current_user", err)
	}
	return nil
}

func (s *sessionStore) LoadRegisteredUsers(ctx context.Context) ([]domain.User, error) {
	raw, err := s.kv.Get(ctx, RegisteredUsersKey)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return []domain.User{}, nil
	}
	if err != nil {
		return nil, s.persistenceErr("load_registered_users", err)
	}

	var users []domain.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		metrics.StorageErrorsTotal.WithLabelValues("load_registered_users").Inc()
		s.log.Warn().Err(err).Str("key", RegisteredUsersKey).Msg("registered users malformed, treating as empty")
		return []domain.User{}, nil
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// AppendRegisteredUser re-checks email uniqueness inside the serialised
// write and returns domain.ErrUserExists instead of storing a duplicate.
func (s *sessionStore) AppendRegisteredUser(ctx context.Context, user domain.User) error {
	return s.writer.Submit(ctx, RegisteredUsersKey, func(ctx context.Context) error {
		users, err := s.LoadRegisteredUsers(ctx)
		if err != nil {
			return err
		}
		if findByEmail(users, user.Email) != nil {
			return domain.ErrUserExists
		}

		raw, err := json.Marshal(append(users, user))
		if err != nil {
			return fmt.Errorf("encode registered users: %w", err)
		}
		if err := s.kv.Set(ctx, RegisteredUsersKey, string(raw)); err != nil {
			return s.persistenceErr("append_registered_user", err)
		}
		return nil
	})
}

func (s *sessionStore) persistenceErr(op string, err error) error {
	metrics.StorageErrorsTotal.WithLabelValues(op).Inc()
	return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistence, err)
}

// findByEmail does an exact, case-sensitive match.
func findByEmail(users []domain.User, email string) *domain.User {
	for i := range users {
		if users[i].Email == email {
			return &users[i]
		}
	}
	return nil
}
