package ports

import (
	"context"

	"github.com/authshell/authshell/internal/core/domain"
)

// SessionStore persists the current-user slot and the registered-user
// collection.
//
// LoadCurrentUser returns (nil, nil) when no session is stored. Malformed
// data is reported as domain.ErrCorruptRecord and backend failures as
// domain.ErrPersistence; callers decide whether to swallow them.
type SessionStore interface {
	LoadCurrentUser(ctx context.Context) (*domain.User, error)
	SaveCurrentUser(ctx context.Context, user *domain.User) error
	ClearCurrentUser(ctx context.Context) error

	// LoadRegisteredUsers returns an empty slice when nothing is stored or
	// the stored collection is malformed.
	LoadRegisteredUsers(ctx context.Context) ([]domain.User, error)
	// AppendRegisteredUser is a read-modify-write of the whole collection.
	AppendRegisteredUser(ctx context.Context, user domain.User) error
}
