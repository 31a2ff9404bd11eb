package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tutorlink/tutorlink-api/internal/core/domain"
)

// RBAC admits callers whose authenticated role is one of roles. It must run
// after Auth; a request without an identity is rejected as unauthenticated.
func RBAC(roles ...domain.RoleID) echo.MiddlewareFunc {
	allowed := make(map[domain.RoleID]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := c.Get(IdentityKey).(domain.Identity)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if _, ok := allowed[identity.RoleID]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
