package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorlink/tutorlink-api/internal/core/domain"
)

func TestJWTSessionIssuer_Issue(t *testing.T) {
	issuer := NewJWTSessionIssuer("test-secret", time.Hour)
	issuedAt := time.Now().Truncate(time.Second)
	issuer.now = func() time.Time { return issuedAt }

	signed, err := issuer.Issue(domain.Identity{
		AccountID: 42, Username: "ana", FirstName: "Ana",
		RoleName: domain.RoleNameTutor, RoleID: domain.RoleTutor,
	})
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(signed, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)

	assert.Equal(t, "42", claims["sub"])
	assert.Equal(t, "ana", claims["username"])
	assert.Equal(t, "Ana", claims["first_name"])
	assert.Equal(t, "Tutor", claims["role"])
	assert.Equal(t, float64(3), claims["role_id"])
	assert.Equal(t, float64(issuedAt.Add(time.Hour).Unix()), claims["exp"])
}

func TestJWTSessionIssuer_DefaultTTL(t *testing.T) {
	issuer := NewJWTSessionIssuer("s", 0)
	assert.Equal(t, 24*time.Hour, issuer.tokenTTL)
}
