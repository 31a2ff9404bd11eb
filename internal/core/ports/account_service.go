package ports

import (
	"context"

	"github.com/tutorlink/tutorlink-api/internal/core/domain"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
	Role      string
	Skills    string
}

// AccountProfile is an account together with the tutor profiles it owns.
type AccountProfile struct {
	Account *domain.Account
	Tutors  []domain.TutorProfile
}

// AdminStats are the dashboard counters.
type AdminStats struct {
	TotalUsers    int64
	TotalTutors   int64
	TotalStudents int64
}

// AccountService implements the account lifecycle.
type AccountService interface {
	IsEmailTaken(ctx context.Context, email string) (bool, error)
	IsUsernameTaken(ctx context.Context, username string) (bool, error)
	// Register creates an account without checking uniqueness; callers run the
	// IsEmailTaken and IsUsernameTaken checks first.
	Register(ctx context.Context, in RegisterInput) (*domain.Account, error)
	// Authenticate returns nil without error for an unknown email and for a
	// wrong password alike.
	Authenticate(ctx context.Context, email, password string) (*domain.Account, error)
	AdminCreate(ctx context.Context, in RegisterInput, roleID domain.RoleID) (*domain.Account, error)
	SoftDelete(ctx context.Context, id int64) error
	UpdateProfile(ctx context.Context, id int64, u AccountProfileUpdate) error

	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetProfile(ctx context.Context, id int64) (*AccountProfile, error)
	ListActive(ctx context.Context) ([]AccountProfile, error)
	Stats(ctx context.Context) (*AdminStats, error)
	UpdateTutorProfile(ctx context.Context, accountID int64, u TutorProfileUpdate) (*domain.TutorProfile, error)
}

// PasswordResetService issues and consumes password-reset tokens.
type PasswordResetService interface {
	// IssueResetLink returns "" without error when no live account has email.
	IssueResetLink(ctx context.Context, email, baseURL string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) (bool, error)
}

// SessionIssuer turns an identity into a signed session token.
type SessionIssuer interface {
	Issue(identity domain.Identity) (string, error)
}
