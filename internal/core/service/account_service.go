package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tutorlink/tutorlink-api/internal/core/domain"
	"github.com/tutorlink/tutorlink-api/internal/core/ports"
)

// AccountService implements registration, authentication and the admin
// account operations.
type AccountService struct {
	accounts ports.AccountRepository
	tutors   ports.TutorRepository
	hasher   ports.PasswordHasher
	skills   ports.SkillCache
	log      zerolog.Logger
	now      func() time.Time
}

var _ ports.AccountService = (*AccountService)(nil)

// NewAccountService wires the account lifecycle. skills may be nil.
func NewAccountService(
	accounts ports.AccountRepository,
	tutors ports.TutorRepository,
	hasher ports.PasswordHasher,
	skills ports.SkillCache,
	log zerolog.Logger,
) *AccountService {
	return &AccountService{
		accounts: accounts,
		tutors:   tutors,
		hasher:   hasher,
		skills:   skills,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *AccountService) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	taken, err := s.accounts.ExistsActiveByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("email check: %w", err)
	}
	return taken, nil
}

func (s *AccountService) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	taken, err := s.accounts.ExistsActiveByUsername(ctx, username)
	if err != nil {
		return false, fmt.Errorf("username check: %w", err)
	}
	return taken, nil
}

// Register creates a Student or Tutor account. A Tutor with a non-blank skill
// list also gets a tutor profile.
func (s *AccountService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	role := domain.ResolveRole(in.Role)

	acc, err := s.createAccount(ctx, in, role)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	if role == domain.RoleTutor && strings.TrimSpace(in.Skills) != "" {
		if _, err := s.createTutorProfile(ctx, acc, in.Skills); err != nil {
			s.discardAccount(ctx, acc, err)
			return nil, fmt.Errorf("register: %w", err)
		}
	}

	s.log.Info().Int64("account_id", acc.ID).Str("role", acc.RoleName()).Msg("account registered")
	return acc, nil
}

// Authenticate resolves an account from its credentials. Both an unknown email
// and a wrong password yield a nil account and a nil error.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	acc, err := s.accounts.FindActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	ok, err := s.hasher.Verify(password, acc.CredentialDigest, acc.CredentialSalt)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return acc, nil
}

// AdminCreate creates an account with an explicit role after checking email
// and then username uniqueness. A Tutor always gets a profile.
func (s *AccountService) AdminCreate(ctx context.Context, in ports.RegisterInput, roleID domain.RoleID) (*domain.Account, error) {
	if !roleID.Valid() {
		return nil, fmt.Errorf("admin create: %w", domain.ErrInvalidRole)
	}

	taken, err := s.IsEmailTaken(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("admin create: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("admin create: %w", domain.ErrEmailTaken)
	}

	taken, err = s.IsUsernameTaken(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("admin create: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("admin create: %w", domain.ErrUsernameTaken)
	}

	acc, err := s.createAccount(ctx, in, roleID)
	if err != nil {
		return nil, fmt.Errorf("admin create: %w", err)
	}

	if roleID == domain.RoleTutor {
		if _, err := s.createTutorProfile(ctx, acc, in.Skills); err != nil {
			s.discardAccount(ctx, acc, err)
			return nil, fmt.Errorf("admin create: %w", err)
		}
	}

	s.log.Info().Int64("account_id", acc.ID).Str("role", acc.RoleName()).Msg("account created by admin")
	return acc, nil
}

// SoftDelete tombstones the account and its tutor profiles. An unknown id is
// not an error.
func (s *AccountService) SoftDelete(ctx context.Context, id int64) error {
	deleted, err := s.accounts.SoftDelete(ctx, id, s.now())
	if err != nil {
		return fmt.Errorf("soft delete: %w", err)
	}
	if !deleted {
		s.log.Debug().Int64("account_id", id).Msg("soft delete: no such account")
		return nil
	}
	s.invalidateSkills(ctx)
	s.log.Info().Int64("account_id", id).Msg("account soft-deleted")
	return nil
}

func (s *AccountService) UpdateProfile(ctx context.Context, id int64, u ports.AccountProfileUpdate) error {
	if !u.RoleID.Valid() {
		return fmt.Errorf("update profile: %w", domain.ErrInvalidRole)
	}
	if err := s.accounts.UpdateProfile(ctx, id, u); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

func (s *AccountService) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	acc, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return acc, nil
}

// GetProfile returns a live account with the tutor profiles it owns.
func (s *AccountService) GetProfile(ctx context.Context, id int64) (*ports.AccountProfile, error) {
	acc, err := s.accounts.FindActiveByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	profile, err := s.withTutors(ctx, acc)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

func (s *AccountService) ListActive(ctx context.Context) ([]ports.AccountProfile, error) {
	accounts, err := s.accounts.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	out := make([]ports.AccountProfile, 0, len(accounts))
	for _, acc := range accounts {
		profile, err := s.withTutors(ctx, acc)
		if err != nil {
			return nil, fmt.Errorf("list accounts: %w", err)
		}
		out = append(out, *profile)
	}
	return out, nil
}

func (s *AccountService) Stats(ctx context.Context) (*ports.AdminStats, error) {
	users, err := s.accounts.CountActive(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	tutors, err := s.tutors.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	student := domain.RoleStudent
	students, err := s.accounts.CountActive(ctx, &student)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return &ports.AdminStats{TotalUsers: users, TotalTutors: tutors, TotalStudents: students}, nil
}

// UpdateTutorProfile edits the live profile owned by accountID.
func (s *AccountService) UpdateTutorProfile(ctx context.Context, accountID int64, u ports.TutorProfileUpdate) (*domain.TutorProfile, error) {
	if u.HourlyRate != nil && *u.HourlyRate < 0 {
		return nil, fmt.Errorf("update tutor profile: %w", domain.ErrInvalidHourlyRate)
	}
	u.Skill = strings.TrimSpace(u.Skill)

	p, err := s.tutors.UpdateByAccount(ctx, accountID, u)
	if err != nil {
		return nil, fmt.Errorf("update tutor profile: %w", err)
	}
	s.invalidateSkills(ctx)
	return p, nil
}

func (s *AccountService) createAccount(ctx context.Context, in ports.RegisterInput, role domain.RoleID) (*domain.Account, error) {
	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, err
	}
	digest, err := s.hasher.Hash(in.Password, salt)
	if err != nil {
		return nil, err
	}

	return s.accounts.Create(ctx, &domain.Account{
		Email:            in.Email,
		Username:         in.Username,
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		CredentialSalt:   salt,
		CredentialDigest: digest,
		RoleID:           role,
		CreatedAt:        s.now(),
	})
}

func (s *AccountService) createTutorProfile(ctx context.Context, acc *domain.Account, skills string) (*domain.TutorProfile, error) {
	p, err := s.tutors.Create(ctx, &domain.TutorProfile{
		AccountID: acc.ID,
		Skill:     skills,
		CreatedAt: s.now(),
	})
	if err != nil {
		return nil, err
	}
	s.invalidateSkills(ctx)
	return p, nil
}

// discardAccount tombstones an account whose tutor profile could not be
// created, so a failed registration leaves no live account behind.
func (s *AccountService) discardAccount(ctx context.Context, acc *domain.Account, cause error) {
	if _, err := s.accounts.SoftDelete(ctx, acc.ID, s.now()); err != nil {
		s.log.Error().Err(err).AnErr("cause", cause).Int64("account_id", acc.ID).
			Msg("failed to discard account after tutor profile error")
		return
	}
	s.log.Warn().Err(cause).Int64("account_id", acc.ID).Msg("account discarded after tutor profile error")
}

func (s *AccountService) withTutors(ctx context.Context, acc *domain.Account) (*ports.AccountProfile, error) {
	profiles, err := s.tutors.ListByAccount(ctx, acc.ID)
	if err != nil {
		return nil, err
	}
	live := profiles[:0:0]
	for _, p := range profiles {
		if p.DeletedAt == nil {
			live = append(live, p)
		}
	}
	return &ports.AccountProfile{Account: acc, Tutors: live}, nil
}

func (s *AccountService) invalidateSkills(ctx context.Context) {
	if s.skills == nil {
		return
	}
	if err := s.skills.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("skill cache invalidation failed")
	}
}
