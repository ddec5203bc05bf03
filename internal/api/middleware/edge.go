package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard/internal/api/metrics"
	"github.com/taskboard/taskboard/internal/core/domain"
)

const (
	loginPath     = "/login"
	dashboardPath = "/dashboard"
)

// Edge is the coarse pre-filter in front of the dashboard pages, the admin
// API and the auth pages. It only looks at the signed token set by Session;
// the role claim it checks may lag the stored role, so admin handlers
// re-check through the guard.
func Edge() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			claims := ClaimsFrom(c)

			if isAuthPage(path) {
				if claims != nil {
					metrics.EdgeRejectionsTotal.WithLabelValues("authenticated").Inc()
					return c.Redirect(http.StatusTemporaryRedirect, dashboardPath)
				}
				return next(c)
			}

			dashboard := hasPathPrefix(path, dashboardPath)
			adminPage := strings.HasPrefix(path, "/dashboard/admin")
			adminAPI := hasPathPrefix(path, "/api/admin")

			if (dashboard || adminAPI) && claims == nil {
				metrics.EdgeRejectionsTotal.WithLabelValues("unauthenticated").Inc()
				if adminAPI {
					return domain.ErrUnauthenticated
				}
				return c.Redirect(http.StatusTemporaryRedirect, loginPath)
			}

			if (adminPage || adminAPI) && !domain.IsAdmin(claims.Role) {
				metrics.EdgeRejectionsTotal.WithLabelValues("forbidden").Inc()
				if adminAPI {
					return &domain.ForbiddenError{Reason: "Unauthorized - Admin access required"}
				}
				return c.Redirect(http.StatusTemporaryRedirect, dashboardPath+"?error=unauthorized")
			}

			return next(c)
		}
	}
}

func isAuthPage(path string) bool {
	return strings.HasPrefix(path, loginPath) || strings.HasPrefix(path, "/register")
}

// hasPathPrefix matches prefix itself and anything below it.
func hasPathPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
