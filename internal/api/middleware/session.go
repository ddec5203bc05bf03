package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard/internal/core/ports"
)

// Session verifies the session token carried by the request, if any, and
// stores its claims on the context. The token is read from a bearer
// Authorization header first and from cookieName otherwise.
//
// Session never rejects a request: a missing or invalid token leaves the
// request anonymous and the gates further down decide.
func Session(tokens ports.TokenManager, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFrom(c, cookieName)
			if raw == "" {
				return next(c)
			}

			if claims, err := tokens.Verify(raw); err == nil {
				c.Set(claimsKey, claims)
			}
			return next(c)
		}
	}
}

// tokenFrom prefers a bearer token and falls back to the session cookie for
// any other Authorization scheme.
func tokenFrom(c echo.Context, cookieName string) string {
	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		if token := strings.TrimSpace(parts[1]); token != "" {
			return token
		}
	}

	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie.Value
	}
	return ""
}
