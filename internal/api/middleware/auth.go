package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/headcount/account-service/internal/api/metrics"
	"github.com/headcount/account-service/internal/core/domain"
	"github.com/headcount/account-service/internal/core/ports"
	"github.com/headcount/account-service/internal/pkg/token"
)

// Auth is the access gate for protected routes. It extracts the bearer
// token, verifies it, and re-fetches the referenced user from the store: the
// claims alone are not trusted for liveness, so a token issued before a
// deactivation or deletion dies here. Resolved claims are stored in the echo
// context under "user_id", "username", and "role".
func Auth(codec *token.Codec, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := codec.Verify(parts[1])
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("rejected").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authentication credentials")
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil || !user.IsActive {
				if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
					return err
				}
				metrics.TokenVerificationsTotal.WithLabelValues("stale").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "User not found or inactive")
			}

			metrics.TokenVerificationsTotal.WithLabelValues("accepted").Inc()
			c.Set("user_id", claims.UserID)
			c.Set("username", claims.Username)
			c.Set("role", claims.Role)

			return next(c)
		}
	}
}
