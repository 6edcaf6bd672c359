package ports

import (
	"context"

	"github.com/devconnect/devconnect-api/internal/core/domain"
)

// AuthService implements registration, login and current-user lookup.
// Both Register and Login return a signed session token carrying the
// user id claim.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}
