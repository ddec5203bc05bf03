package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard/internal/core/domain"
)

const (
	claimsKey   = "session_claims"
	identityKey = "identity"
)

// ClaimsFrom returns the verified token claims set by Session, or nil.
func ClaimsFrom(c echo.Context) *domain.SessionClaims {
	claims, _ := c.Get(claimsKey).(*domain.SessionClaims)
	return claims
}

// IdentityFrom returns the identity resolved by RequireIdentity or
// RequireRole, or nil.
func IdentityFrom(c echo.Context) *domain.Identity {
	id, _ := c.Get(identityKey).(*domain.Identity)
	return id
}

// SetIdentity stores id on the request context.
func SetIdentity(c echo.Context, id *domain.Identity) {
	c.Set(identityKey, id)
}
