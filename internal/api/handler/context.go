package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentbridge/referral-system/internal/api/middleware"
	"github.com/talentbridge/referral-system/internal/core/domain"
)

// callerIdentity extracts the identity injected by the Auth middleware and
// fails fast with 401 before any service call when it is absent.
func callerIdentity(c echo.Context) (domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	return id, nil
}
