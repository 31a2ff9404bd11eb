package ports

import (
	"context"
	"time"

	"github.com/tutorlink/tutorlink-api/internal/core/domain"
)

// AccountProfileUpdate carries the mutable profile fields of an account.
type AccountProfileUpdate struct {
	FirstName string
	LastName  string
	Email     string
	Username  string
	RoleID    domain.RoleID
}

// AccountRepository defines persistence operations for accounts.
//
// Lookups that are not explicitly "any state" ignore soft-deleted accounts and
// return domain.ErrAccountNotFound when nothing matches.
type AccountRepository interface {
	// Create assigns the id and persists a new account.
	Create(ctx context.Context, a *domain.Account) (*domain.Account, error)
	// FindByID returns the account regardless of tombstone state.
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
	FindActiveByID(ctx context.Context, id int64) (*domain.Account, error)
	FindActiveByEmail(ctx context.Context, email string) (*domain.Account, error)
	ExistsActiveByEmail(ctx context.Context, email string) (bool, error)
	ExistsActiveByUsername(ctx context.Context, username string) (bool, error)
	ListActive(ctx context.Context) ([]*domain.Account, error)
	// CountActive counts live accounts; a nil role counts every role.
	CountActive(ctx context.Context, role *domain.RoleID) (int64, error)

	// UpdateProfile overwrites the mutable profile fields of the account with
	// the given id regardless of tombstone state.
	UpdateProfile(ctx context.Context, id int64, u AccountProfileUpdate) error

	// SetResetToken stores token and expiry, replacing any previous token.
	SetResetToken(ctx context.Context, id int64, token string, expiry time.Time) error
	// FindByResetToken returns the live account holding token with an expiry
	// strictly after now.
	FindByResetToken(ctx context.Context, token string, now time.Time) (*domain.Account, error)
	// CompleteReset replaces the credentials and clears the reset fields, but
	// only while the account still holds token.
	CompleteReset(ctx context.Context, id int64, token, salt, digest string) error

	// SoftDelete tombstones the account and every tutor profile it owns in a
	// single commit. It reports false when the id does not resolve.
	SoftDelete(ctx context.Context, id int64, at time.Time) (bool, error)
}
