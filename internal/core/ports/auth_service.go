package ports

import (
	"context"

	"github.com/authshell/authshell/internal/core/domain"
)

// AuthService is the surface the UI shell drives. None of the operations
// return Go errors; failures travel inside domain.AuthResult.
type AuthService interface {
	Login(ctx context.Context, email, password string) domain.AuthResult
	Signup(ctx context.Context, name, email, password string) domain.AuthResult
	Logout(ctx context.Context)
	State() domain.SessionState
}

// Latency delays an auth operation to emulate a network round trip.
type Latency interface {
	Wait(ctx context.Context) error
}
