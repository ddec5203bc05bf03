package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard/internal/core/domain"
	"github.com/taskboard/taskboard/internal/core/ports"
)

// RequireIdentity resolves the caller from the session and rejects anonymous
// requests with 401.
func RequireIdentity(resolver ports.IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := resolver.Current(c.Request().Context(), ClaimsFrom(c))
			if id == nil {
				return domain.ErrUnauthenticated
			}
			SetIdentity(c, id)
			return next(c)
		}
	}
}

// RequireRole enforces a minimum role through the guard: 401 without an
// identity, 403 below the required rank.
func RequireRole(guard ports.Guard, required domain.Role) echo.MiddlewareFunc {
	reason := "Unauthorized - Admin access required"
	if required == domain.RoleSuperuser {
		reason = "Unauthorized - Superuser access required"
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d := guard.RequireRole(c.Request().Context(), ClaimsFrom(c), required)
			if d.User == nil {
				return domain.ErrUnauthenticated
			}
			if !d.Authorized {
				return &domain.ForbiddenError{Reason: reason}
			}
			SetIdentity(c, d.User)
			return next(c)
		}
	}
}
