package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentbridge/referral-system/internal/api/metrics"
	"github.com/talentbridge/referral-system/internal/core/access"
)

// RequireAction rejects the request unless the caller's role may perform
// action. It must run after Auth.
func RequireAction(action access.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				metrics.AuthzDecisionsTotal.WithLabelValues(string(action), "unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}

			d := access.Check(id.Role, action)
			if !d.Allowed {
				metrics.AuthzDecisionsTotal.WithLabelValues(string(action), "deny").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "Access denied")
			}

			metrics.AuthzDecisionsTotal.WithLabelValues(string(action), "allow").Inc()
			return next(c)
		}
	}
}
