package ports

import (
	"context"
	"io"
	"time"

	"github.com/taskboard/taskboard/internal/core/domain"
)

// SessionStore tracks live sessions so a signed token can be revoked before
// it expires.
type SessionStore interface {
	Create(ctx context.Context, sessionID, userID string, ttl time.Duration) error
	// Lookup returns the owner of a live session or domain.ErrSessionNotFound.
	Lookup(ctx context.Context, sessionID string) (string, error)
	Revoke(ctx context.Context, sessionID string) error
	// RevokeAll drops every session belonging to userID.
	RevokeAll(ctx context.Context, userID string) error
}

// TokenManager signs and verifies session tokens.
type TokenManager interface {
	Issue(user *domain.User, sessionID string) (token string, expiresAt time.Time, err error)
	Verify(token string) (*domain.SessionClaims, error)
}

// FileStore persists uploaded files and returns their public URL.
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}
