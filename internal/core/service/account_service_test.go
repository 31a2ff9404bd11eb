package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorlink/tutorlink-api/internal/core/domain"
	"github.com/tutorlink/tutorlink-api/internal/core/ports"
	"github.com/tutorlink/tutorlink-api/internal/infrastructure/db/memory"
)

func registerInput(email, username, role, skills string) ports.RegisterInput {
	return ports.RegisterInput{
		Email: email, Username: username, Password: "Password123!",
		FirstName: "New", LastName: "User", Role: role, Skills: skills,
	}
}

func TestAccountService_RegisterTutorCreatesProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	acc, err := f.accounts.Register(ctx, registerInput("x@y.com", "newu", "Tutor", "Math"))
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTutor, acc.RoleID)
	assert.Equal(t, f.now, acc.CreatedAt)
	assert.NotEmpty(t, acc.CredentialSalt)
	assert.NotEqual(t, "Password123!", acc.CredentialDigest)

	profiles, err := f.store.Tutors().ListByAccount(ctx, acc.ID)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Math", profiles[0].Skill)
}

func TestAccountService_RegisterRoleResolution(t *testing.T) {
	tests := []struct {
		role   string
		skills string
		want   domain.RoleID
		tutors int
	}{
		{"tutor", "Art", domain.RoleTutor, 1},
		{"TUTOR", "   ", domain.RoleTutor, 0},
		{"Student", "Art", domain.RoleStudent, 0},
		{"Admin", "", domain.RoleStudent, 0},
		{"", "", domain.RoleStudent, 0},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			f := newFixture(t)
			acc, err := f.accounts.Register(context.Background(), registerInput("r@y.com", "r", tt.role, tt.skills))
			require.NoError(t, err)
			assert.Equal(t, tt.want, acc.RoleID)

			profiles, err := f.store.Tutors().ListByAccount(context.Background(), acc.ID)
			require.NoError(t, err)
			assert.Len(t, profiles, tt.tutors)
		})
	}
}

func TestAccountService_Authenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.accounts.Register(ctx, registerInput("x@y.com", "newu", "Student", ""))
	require.NoError(t, err)

	acc, err := f.accounts.Authenticate(ctx, "x@y.com", "Password123!")
	require.NoError(t, err)
	require.NotNil(t, acc)
	assert.Equal(t, domain.RoleNameStudent, acc.RoleName())

	wrong, err := f.accounts.Authenticate(ctx, "x@y.com", "wrongpass")
	require.NoError(t, err)
	unknown, err := f.accounts.Authenticate(ctx, "nosuch@y.com", "anything")
	require.NoError(t, err)
	assert.Nil(t, wrong)
	assert.Nil(t, unknown)
}

func TestAccountService_AuthenticateIgnoresDeletedAccounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acc, err := f.accounts.Register(ctx, registerInput("x@y.com", "newu", "Student", ""))
	require.NoError(t, err)
	require.NoError(t, f.accounts.SoftDelete(ctx, acc.ID))

	got, err := f.accounts.Authenticate(ctx, "x@y.com", "Password123!")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAccountService_UniquenessExcludesDeleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acc, err := f.accounts.Register(ctx, registerInput("x@y.com", "newu", "Student", ""))
	require.NoError(t, err)

	taken, err := f.accounts.IsEmailTaken(ctx, "x@y.com")
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = f.accounts.IsUsernameTaken(ctx, "newu")
	require.NoError(t, err)
	assert.True(t, taken)

	require.NoError(t, f.accounts.SoftDelete(ctx, acc.ID))

	taken, err = f.accounts.IsEmailTaken(ctx, "x@y.com")
	require.NoError(t, err)
	assert.False(t, taken)
	taken, err = f.accounts.IsUsernameTaken(ctx, "newu")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestAccountService_AdminCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.accounts.Register(ctx, registerInput("x@y.com", "newu", "Student", ""))
	require.NoError(t, err)

	t.Run("invalid role", func(t *testing.T) {
		_, err := f.accounts.AdminCreate(ctx, registerInput("a@y.com", "a", "", ""), domain.RoleID(7))
		assert.ErrorIs(t, err, domain.ErrInvalidRole)
	})

	t.Run("email checked before username", func(t *testing.T) {
		_, err := f.accounts.AdminCreate(ctx, registerInput("x@y.com", "newu", "", ""), domain.RoleStudent)
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})

	t.Run("username taken", func(t *testing.T) {
		_, err := f.accounts.AdminCreate(ctx, registerInput("other@y.com", "newu", "", ""), domain.RoleStudent)
		assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	})

	t.Run("tutor always gets a profile", func(t *testing.T) {
		acc, err := f.accounts.AdminCreate(ctx, registerInput("t@y.com", "t", "", "  "), domain.RoleTutor)
		require.NoError(t, err)
		profiles, err := f.store.Tutors().ListByAccount(ctx, acc.ID)
		require.NoError(t, err)
		require.Len(t, profiles, 1)
		assert.Equal(t, "  ", profiles[0].Skill)
	})

	t.Run("admin", func(t *testing.T) {
		acc, err := f.accounts.AdminCreate(ctx, registerInput("root@y.com", "root", "", ""), domain.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleNameAdmin, acc.RoleName())
	})
}

func TestAccountService_SoftDeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acc, err := f.accounts.Register(ctx, registerInput("x@y.com", "newu", "Tutor", "Math"))
	require.NoError(t, err)

	require.NoError(t, f.accounts.SoftDelete(ctx, acc.ID))

	stored, err := f.accounts.GetByID(ctx, acc.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.DeletedAt)
	assert.Equal(t, f.now, *stored.DeletedAt)

	profiles, err := f.store.Tutors().ListByAccount(ctx, acc.ID)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.NotNil(t, profiles[0].DeletedAt)

	// unknown ids are ignored
	assert.NoError(t, f.accounts.SoftDelete(ctx, 12345))
}

func TestAccountService_SoftDeleteInvalidatesSkillCache(t *testing.T) {
	store := memory.NewStore()
	cache := &stubSkillCache{}
	svc := NewAccountService(store.Accounts(), store.Tutors(), NewCredentialHasher(AlgorithmSHA256), cache, zerolog.Nop())
	ctx := context.Background()

	acc, err := svc.Register(ctx, registerInput("x@y.com", "newu", "Tutor", "Math"))
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidated)

	require.NoError(t, svc.SoftDelete(ctx, acc.ID))
	assert.Equal(t, 2, cache.invalidated)

	require.NoError(t, svc.SoftDelete(ctx, 999))
	assert.Equal(t, 2, cache.invalidated)
}

func TestAccountService_UpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acc, err := f.accounts.Register(ctx, registerInput("x@y.com", "newu", "Student", ""))
	require.NoError(t, err)

	u := ports.AccountProfileUpdate{
		FirstName: "Ana", LastName: "Diaz", Email: "ana@y.com", Username: "ana", RoleID: domain.RoleTutor,
	}
	require.NoError(t, f.accounts.UpdateProfile(ctx, acc.ID, u))

	stored, err := f.accounts.GetByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Diaz", stored.FullName())
	assert.Equal(t, "ana@y.com", stored.Email)
	assert.Equal(t, domain.RoleTutor, stored.RoleID)
	assert.Equal(t, acc.CredentialDigest, stored.CredentialDigest)

	err = f.accounts.UpdateProfile(ctx, 404, u)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	u.RoleID = 0
	err = f.accounts.UpdateProfile(ctx, acc.ID, u)
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestAccountService_UpdateProfileReachesDeletedAccounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acc, err := f.accounts.Register(ctx, registerInput("x@y.com", "newu", "Student", ""))
	require.NoError(t, err)
	require.NoError(t, f.accounts.SoftDelete(ctx, acc.ID))

	err = f.accounts.UpdateProfile(ctx, acc.ID, ports.AccountProfileUpdate{
		FirstName: "Z", Email: "z@y.com", Username: "z", RoleID: domain.RoleStudent,
	})
	assert.NoError(t, err)
}

func TestAccountService_ProfilesAndStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tutor, err := f.accounts.Register(ctx, registerInput("t@y.com", "t", "Tutor", "Go"))
	require.NoError(t, err)
	_, err = f.accounts.Register(ctx, registerInput("s1@y.com", "s1", "Student", ""))
	require.NoError(t, err)
	gone, err := f.accounts.Register(ctx, registerInput("s2@y.com", "s2", "Student", ""))
	require.NoError(t, err)
	_, err = f.accounts.AdminCreate(ctx, registerInput("a@y.com", "a", "", ""), domain.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, f.accounts.SoftDelete(ctx, gone.ID))

	stats, err := f.accounts.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &ports.AdminStats{TotalUsers: 3, TotalTutors: 1, TotalStudents: 1}, stats)

	list, err := f.accounts.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, tutor.ID, list[0].Account.ID)
	assert.Len(t, list[0].Tutors, 1)
	assert.Empty(t, list[1].Tutors)

	profile, err := f.accounts.GetProfile(ctx, tutor.ID)
	require.NoError(t, err)
	assert.Equal(t, "t", profile.Account.Username)
	require.Len(t, profile.Tutors, 1)

	_, err = f.accounts.GetProfile(ctx, gone.ID)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAccountService_UpdateTutorProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tutor, err := f.accounts.Register(ctx, registerInput("t@y.com", "t", "Tutor", "Go"))
	require.NoError(t, err)
	student, err := f.accounts.Register(ctx, registerInput("s@y.com", "s", "Student", ""))
	require.NoError(t, err)

	p, err := f.accounts.UpdateTutorProfile(ctx, tutor.ID, ports.TutorProfileUpdate{
		Skill: " Go, Rust ", HourlyRate: ptr(35.0), Bio: ptr("gopher"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Go, Rust", p.Skill)
	assert.Equal(t, 35.0, *p.HourlyRate)

	_, err = f.accounts.UpdateTutorProfile(ctx, tutor.ID, ports.TutorProfileUpdate{HourlyRate: ptr(-1.0)})
	assert.ErrorIs(t, err, domain.ErrInvalidHourlyRate)

	_, err = f.accounts.UpdateTutorProfile(ctx, student.ID, ports.TutorProfileUpdate{Skill: "Go"})
	assert.ErrorIs(t, err, domain.ErrTutorProfileNotFound)
}

func TestAccountService_ClockStampsCreation(t *testing.T) {
	f := newFixture(t)
	f.now = f.now.Add(48 * time.Hour)

	acc, err := f.accounts.Register(context.Background(), registerInput("x@y.com", "x", "Tutor", "Go"))
	require.NoError(t, err)
	assert.Equal(t, f.now, acc.CreatedAt)
}

func TestAccountService_AuthenticateMalformedSaltIsFatal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acc, err := f.store.Accounts().Create(ctx, &domain.Account{
		Email: "bad@y.com", Username: "bad", RoleID: domain.RoleStudent,
		CredentialSalt: "***", CredentialDigest: "x",
	})
	require.NoError(t, err)

	_, err = f.accounts.Authenticate(ctx, acc.Email, "whatever")
	assert.ErrorIs(t, err, domain.ErrMalformedSalt)
}

func TestAccountService_TutorProfileFailureDiscardsAccount(t *testing.T) {
	ctx := context.Background()
	errDown := errors.New("tutor store unavailable")

	tests := []struct {
		name   string
		create func(s *AccountService) error
	}{
		{"register", func(s *AccountService) error {
			_, err := s.Register(ctx, registerInput("t@y.com", "tutor", "tutor", "Go"))
			return err
		}},
		{"admin create", func(s *AccountService) error {
			_, err := s.AdminCreate(ctx, registerInput("t@y.com", "tutor", "", ""), domain.RoleTutor)
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			broken := NewAccountService(f.store.Accounts(), failingTutorCreate{f.store.Tutors(), errDown},
				NewCredentialHasher(AlgorithmSHA256), nil, zerolog.Nop())

			err := tt.create(broken)
			require.ErrorIs(t, err, errDown)

			taken, err := f.accounts.IsEmailTaken(ctx, "t@y.com")
			require.NoError(t, err)
			assert.False(t, taken, "half-created account must not stay live")

			acc, err := f.accounts.Authenticate(ctx, "t@y.com", "Password123!")
			require.NoError(t, err)
			assert.Nil(t, acc)

			// The same identity can register again once the store recovers.
			_, err = f.accounts.Register(ctx, registerInput("t@y.com", "tutor", "tutor", "Go"))
			require.NoError(t, err)
		})
	}
}
