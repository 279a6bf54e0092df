package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/headcount/account-service/internal/core/domain"
)

// RequireAdmin gates a route on the admin role.
func RequireAdmin() echo.MiddlewareFunc {
	return RequireRole(domain.RoleAdmin, "Admin access required")
}

// RequireRole enforces that the authenticated user carries the given role.
// Runs after Auth; a missing role claim means the gate never ran, which is
// answered with 401 rather than 403.
func RequireRole(required, forbiddenMessage string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if role != required {
				return echo.NewHTTPError(http.StatusForbidden, forbiddenMessage)
			}
			return next(c)
		}
	}
}
