package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tutorlink/tutorlink-api/internal/core/domain"
)

// AccountLookup loads an account regardless of tombstone state.
type AccountLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
}

// ActiveAccount reloads the caller's account after Auth. A deleted account is
// rejected, and the identity's role is replaced by the stored one so RBAC sees
// demotions before the token expires.
func ActiveAccount(accounts AccountLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := c.Get(IdentityKey).(domain.Identity)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			acc, err := accounts.GetByID(c.Request().Context(), identity.AccountID)
			if errors.Is(err, domain.ErrAccountNotFound) || (err == nil && acc.IsDeleted()) {
				return echo.NewHTTPError(http.StatusUnauthorized, "account is no longer active")
			}
			if err != nil {
				return err
			}

			identity.RoleID = acc.RoleID
			identity.RoleName = acc.RoleName()
			c.Set(IdentityKey, identity)
			return next(c)
		}
	}
}
