package service

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tutorlink/tutorlink-api/internal/core/domain"
	"github.com/tutorlink/tutorlink-api/internal/core/ports"
)

// JWTSessionIssuer signs identity records as HS256 tokens.
type JWTSessionIssuer struct {
	secret   string
	tokenTTL time.Duration
	now      func() time.Time
}

var _ ports.SessionIssuer = (*JWTSessionIssuer)(nil)

func NewJWTSessionIssuer(secret string, tokenTTL time.Duration) *JWTSessionIssuer {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &JWTSessionIssuer{secret: secret, tokenTTL: tokenTTL, now: time.Now}
}

func (s *JWTSessionIssuer) Issue(id domain.Identity) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":        strconv.FormatInt(id.AccountID, 10),
		"username":   id.Username,
		"first_name": id.FirstName,
		"role":       id.RoleName,
		"role_id":    int(id.RoleID),
		"iat":        now.Unix(),
		"exp":        now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}
