package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/tutorlink/tutorlink-api/internal/core/domain"
)

// IdentityKey is the echo context key holding the domain.Identity of the caller.
const IdentityKey = "identity"

// Auth validates the JWT and injects the caller's identity into context.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			identity, ok := identityFromClaims(claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(IdentityKey, identity)

			return next(c)
		}
	}
}

func identityFromClaims(claims jwt.MapClaims) (domain.Identity, bool) {
	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || id <= 0 {
		return domain.Identity{}, false
	}

	roleID, _ := claims["role_id"].(float64)
	role := domain.RoleID(roleID)
	if !role.Valid() {
		return domain.Identity{}, false
	}

	username, _ := claims["username"].(string)
	firstName, _ := claims["first_name"].(string)

	return domain.Identity{
		AccountID: id,
		Username:  username,
		FirstName: firstName,
		RoleName:  role.Name(),
		RoleID:    role,
	}, true
}
