package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tutorlink/tutorlink-api/internal/core/domain"
	"github.com/tutorlink/tutorlink-api/internal/core/ports"
)

// DefaultResetTokenTTL is how long an issued reset token stays valid.
const DefaultResetTokenTTL = 30 * time.Minute

const (
	resetEmailSubject = "Reset password"
	resetEmailBody    = "Click the link to reset your password:\n"
)

// PasswordResetService issues and consumes single-use reset tokens.
type PasswordResetService struct {
	accounts ports.AccountRepository
	hasher   ports.PasswordHasher
	notifier ports.Notifier
	ttl      time.Duration
	log      zerolog.Logger

	now      func() time.Time
	newToken func() string
}

var _ ports.PasswordResetService = (*PasswordResetService)(nil)

func NewPasswordResetService(
	accounts ports.AccountRepository,
	hasher ports.PasswordHasher,
	notifier ports.Notifier,
	ttl time.Duration,
	log zerolog.Logger,
) *PasswordResetService {
	if ttl <= 0 {
		ttl = DefaultResetTokenTTL
	}
	return &PasswordResetService{
		accounts: accounts,
		hasher:   hasher,
		notifier: notifier,
		ttl:      ttl,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
		newToken: uuid.NewString,
	}
}

// IssueResetLink stores a fresh token on the account registered with email and
// mails the link. It returns "" without error when no live account matches.
// A delivery failure is returned after the token has been stored.
func (s *PasswordResetService) IssueResetLink(ctx context.Context, email, baseURL string) (string, error) {
	acc, err := s.accounts.FindActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("issue reset link: %w", err)
	}

	token := s.newToken()
	if err := s.accounts.SetResetToken(ctx, acc.ID, token, s.now().Add(s.ttl)); err != nil {
		return "", fmt.Errorf("issue reset link: %w", err)
	}

	link := ResetLink(baseURL, token)
	if err := s.notifier.Send(ctx, acc.Email, resetEmailSubject, resetEmailBody+link); err != nil {
		return "", fmt.Errorf("issue reset link: notify: %w", err)
	}

	s.log.Info().Int64("account_id", acc.ID).Msg("password reset link issued")
	return link, nil
}

// ResetPassword replaces the credentials of the account holding an unexpired
// token. It reports false for a blank, unknown, expired or already used token.
func (s *PasswordResetService) ResetPassword(ctx context.Context, token, newPassword string) (bool, error) {
	if strings.TrimSpace(token) == "" {
		return false, nil
	}

	acc, err := s.accounts.FindByResetToken(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("reset password: %w", err)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return false, fmt.Errorf("reset password: %w", err)
	}
	digest, err := s.hasher.Hash(newPassword, salt)
	if err != nil {
		return false, fmt.Errorf("reset password: %w", err)
	}

	if err := s.accounts.CompleteReset(ctx, acc.ID, token, salt, digest); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			// token consumed concurrently
			return false, nil
		}
		return false, fmt.Errorf("reset password: %w", err)
	}

	s.log.Info().Int64("account_id", acc.ID).Msg("password reset completed")
	return true, nil
}

// ResetLink appends the token as a query parameter to baseURL, keeping any
// query baseURL already carries.
func ResetLink(baseURL, token string) string {
	sep := "?"
	if strings.Contains(baseURL, "?") {
		sep = "&"
	}
	return baseURL + sep + "token=" + url.QueryEscape(token)
}
