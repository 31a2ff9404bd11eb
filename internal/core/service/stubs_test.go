package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/tutorlink/tutorlink-api/internal/core/domain"
	"github.com/tutorlink/tutorlink-api/internal/core/ports"
	"github.com/tutorlink/tutorlink-api/internal/infrastructure/db/memory"
)

type sentMessage struct {
	to, subject, body string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (n *recordingNotifier) Send(_ context.Context, to, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentMessage{to: to, subject: subject, body: body})
	return nil
}

type stubSkillCache struct {
	skills      []string
	getErr      error
	setErr      error
	sets        int
	invalidated int
}

func (c *stubSkillCache) Get(context.Context) ([]string, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	if c.skills == nil {
		return nil, ports.ErrCacheMiss
	}
	return c.skills, nil
}

func (c *stubSkillCache) Set(_ context.Context, skills []string) error {
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.skills = skills
	return nil
}

func (c *stubSkillCache) Invalidate(context.Context) error {
	c.invalidated++
	c.skills = nil
	return nil
}

type fixture struct {
	store    *memory.Store
	accounts *AccountService
	resets   *PasswordResetService
	notifier *recordingNotifier
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:    memory.NewStore(),
		notifier: &recordingNotifier{},
		now:      time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	hasher := NewCredentialHasher(AlgorithmSHA256)
	f.accounts = NewAccountService(f.store.Accounts(), f.store.Tutors(), hasher, nil, zerolog.Nop())
	f.resets = NewPasswordResetService(f.store.Accounts(), hasher, f.notifier, 0, zerolog.Nop())
	clock := func() time.Time { return f.now }
	f.accounts.now = clock
	f.resets.now = clock
	return f
}

func ptr[T any](v T) *T { return &v }

// seedTutor creates a tutor account and a profile with the given attributes.
func seedTutor(t *testing.T, s *memory.Store, username, skill string, rate, rating *float64, reviews int, created time.Time) *domain.TutorProfile {
	t.Helper()
	ctx := context.Background()
	acc, err := s.Accounts().Create(ctx, &domain.Account{
		Email: username + "@example.com", Username: username, FirstName: username, LastName: "Tutor",
		RoleID: domain.RoleTutor, CreatedAt: created,
	})
	require.NoError(t, err)
	p, err := s.Tutors().Create(ctx, &domain.TutorProfile{
		AccountID: acc.ID, Skill: skill, HourlyRate: rate, AverageRating: rating,
		TotalReviews: reviews, CreatedAt: created,
	})
	require.NoError(t, err)
	return p
}

// failingTutorCreate is a tutor repository whose Create always fails.
type failingTutorCreate struct {
	ports.TutorRepository
	err error
}

func (r failingTutorCreate) Create(context.Context, *domain.TutorProfile) (*domain.TutorProfile, error) {
	return nil, r.err
}
