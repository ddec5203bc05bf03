package ports

import (
	"context"
	"time"

	"github.com/taskboard/taskboard/internal/core/domain"
)

// RegisterInput is the self-service signup payload.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginResult is returned after a successful credential check.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// AuthService covers registration and the session lifecycle.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, claims *domain.SessionClaims) error
}

// IdentityResolver turns verified token claims into the caller's live identity.
type IdentityResolver interface {
	// Current returns nil when there is no usable session.
	Current(ctx context.Context, claims *domain.SessionClaims) *domain.Identity
}

// Guard answers whether the caller holds at least the required role.
type Guard interface {
	RequireRole(ctx context.Context, claims *domain.SessionClaims, required domain.Role) domain.Decision
}
