package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorlink/tutorlink-api/internal/core/domain"
	"github.com/tutorlink/tutorlink-api/internal/core/ports"
)

func seedAccount(t *testing.T, s *Store, email, username string, role domain.RoleID) *domain.Account {
	t.Helper()
	a, err := s.Accounts().Create(context.Background(), &domain.Account{
		Email: email, Username: username, FirstName: "F", LastName: "L",
		RoleID: role, CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	return a
}

func TestStore_SoftDeleteCascadesToOwnedProfilesOnly(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	owner := seedAccount(t, s, "a@x.com", "a", domain.RoleTutor)
	other := seedAccount(t, s, "b@x.com", "b", domain.RoleTutor)

	for i := 0; i < 3; i++ {
		_, err := s.Tutors().Create(ctx, &domain.TutorProfile{AccountID: owner.ID, Skill: "Math"})
		require.NoError(t, err)
	}
	_, err := s.Tutors().Create(ctx, &domain.TutorProfile{AccountID: other.ID, Skill: "Art"})
	require.NoError(t, err)

	ok, err := s.Accounts().SoftDelete(ctx, owner.ID, time.Now())
	require.NoError(t, err)
	require.True(t, ok)

	owned, err := s.Tutors().ListByAccount(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, owned, 3)
	for _, p := range owned {
		assert.NotNil(t, p.DeletedAt)
	}

	kept, err := s.Tutors().ListByAccount(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Nil(t, kept[0].DeletedAt)

	live, err := s.Tutors().ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, live, 1)
	assert.Equal(t, other.ID, live[0].Owner.ID)
}

func TestStore_SoftDeleteUnknownIsNoop(t *testing.T) {
	ok, err := NewStore().Accounts().SoftDelete(context.Background(), 404, time.Now())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_ResetTokenExpiryIsStrict(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	a := seedAccount(t, s, "a@x.com", "a", domain.RoleStudent)

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.Accounts().SetResetToken(ctx, a.ID, "tok", now))

	_, err := s.Accounts().FindByResetToken(ctx, "tok", now)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound, "expiry equal to now is expired")

	found, err := s.Accounts().FindByResetToken(ctx, "tok", now.Add(-time.Microsecond))
	require.NoError(t, err)
	assert.Equal(t, a.ID, found.ID)
}

func TestStore_CompleteResetRequiresCurrentToken(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	a := seedAccount(t, s, "a@x.com", "a", domain.RoleStudent)
	require.NoError(t, s.Accounts().SetResetToken(ctx, a.ID, "new", time.Now().Add(time.Hour)))

	err := s.Accounts().CompleteReset(ctx, a.ID, "old", "salt", "digest")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	require.NoError(t, s.Accounts().CompleteReset(ctx, a.ID, "new", "salt", "digest"))
	got, err := s.Accounts().FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ResetToken)
	assert.Nil(t, got.ResetTokenExpiry)
	assert.Equal(t, "digest", got.CredentialDigest)
}

func TestStore_UpdateByAccountDoesNotAliasInput(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	a := seedAccount(t, s, "a@x.com", "a", domain.RoleTutor)
	_, err := s.Tutors().Create(ctx, &domain.TutorProfile{AccountID: a.ID, Skill: "Math"})
	require.NoError(t, err)

	rate := 30.0
	_, err = s.Tutors().UpdateByAccount(ctx, a.ID, ports.TutorProfileUpdate{Skill: "Math, Art", HourlyRate: &rate})
	require.NoError(t, err)
	rate = 99

	got, err := s.Tutors().ListByAccount(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 30.0, *got[0].HourlyRate)
	assert.Equal(t, "Math, Art", got[0].Skill)
}
