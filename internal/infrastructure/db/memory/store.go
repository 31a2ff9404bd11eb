// Package memory implements the account and tutor repositories over process
// memory. It backs the "memory" storage driver and the service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tutorlink/tutorlink-api/internal/core/domain"
	"github.com/tutorlink/tutorlink-api/internal/core/ports"
)

// Store holds accounts and tutor profiles. The zero value is not usable; call
// NewStore.
type Store struct {
	mu          sync.RWMutex
	accounts    map[int64]*domain.Account
	tutors      map[int64]*domain.TutorProfile
	nextAccount int64
	nextTutor   int64
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[int64]*domain.Account),
		tutors:   make(map[int64]*domain.TutorProfile),
	}
}

// Accounts returns the store as an AccountRepository.
func (s *Store) Accounts() ports.AccountRepository { return (*accountRepo)(s) }

// Tutors returns the store as a TutorRepository.
func (s *Store) Tutors() ports.TutorRepository { return (*tutorRepo)(s) }

func cloneAccount(a *domain.Account) *domain.Account {
	c := *a
	if a.DeletedAt != nil {
		t := *a.DeletedAt
		c.DeletedAt = &t
	}
	if a.ResetToken != nil {
		tok := *a.ResetToken
		c.ResetToken = &tok
	}
	if a.ResetTokenExpiry != nil {
		t := *a.ResetTokenExpiry
		c.ResetTokenExpiry = &t
	}
	return &c
}

func cloneTutor(p *domain.TutorProfile) *domain.TutorProfile {
	c := *p
	if p.HourlyRate != nil {
		v := *p.HourlyRate
		c.HourlyRate = &v
	}
	if p.AverageRating != nil {
		v := *p.AverageRating
		c.AverageRating = &v
	}
	if p.Bio != nil {
		v := *p.Bio
		c.Bio = &v
	}
	if p.Availability != nil {
		v := *p.Availability
		c.Availability = &v
	}
	if p.DeletedAt != nil {
		v := *p.DeletedAt
		c.DeletedAt = &v
	}
	return &c
}

type accountRepo Store

func (r *accountRepo) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextAccount++
	stored := cloneAccount(a)
	stored.ID = r.nextAccount
	r.accounts[stored.ID] = stored
	return cloneAccount(stored), nil
}

func (r *accountRepo) FindByID(_ context.Context, id int64) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *accountRepo) FindActiveByID(_ context.Context, id int64) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[id]
	if !ok || a.IsDeleted() {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *accountRepo) FindActiveByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if a := r.findActive(func(a *domain.Account) bool { return a.Email == email }); a != nil {
		return cloneAccount(a), nil
	}
	return nil, domain.ErrAccountNotFound
}

func (r *accountRepo) ExistsActiveByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findActive(func(a *domain.Account) bool { return a.Email == email }) != nil, nil
}

func (r *accountRepo) ExistsActiveByUsername(_ context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findActive(func(a *domain.Account) bool { return a.Username == username }) != nil, nil
}

// findActive scans in id order so lookups are deterministic. Callers hold mu.
func (r *accountRepo) findActive(match func(*domain.Account) bool) *domain.Account {
	for _, id := range r.sortedAccountIDs() {
		a := r.accounts[id]
		if !a.IsDeleted() && match(a) {
			return a
		}
	}
	return nil
}

func (r *accountRepo) sortedAccountIDs() []int64 {
	ids := make([]int64, 0, len(r.accounts))
	for id := range r.accounts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (r *accountRepo) ListActive(_ context.Context) ([]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Account, 0, len(r.accounts))
	for _, id := range r.sortedAccountIDs() {
		if a := r.accounts[id]; !a.IsDeleted() {
			out = append(out, cloneAccount(a))
		}
	}
	return out, nil
}

func (r *accountRepo) CountActive(_ context.Context, role *domain.RoleID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, a := range r.accounts {
		if a.IsDeleted() {
			continue
		}
		if role != nil && a.RoleID != *role {
			continue
		}
		n++
	}
	return n, nil
}

func (r *accountRepo) UpdateProfile(_ context.Context, id int64, u ports.AccountProfileUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.FirstName = u.FirstName
	a.LastName = u.LastName
	a.Email = u.Email
	a.Username = u.Username
	a.RoleID = u.RoleID
	return nil
}

func (r *accountRepo) SetResetToken(_ context.Context, id int64, token string, expiry time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.ResetToken = &token
	a.ResetTokenExpiry = &expiry
	return nil
}

func (r *accountRepo) FindByResetToken(_ context.Context, token string, now time.Time) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a := r.findActive(func(a *domain.Account) bool {
		return a.ResetToken != nil && *a.ResetToken == token &&
			a.ResetTokenExpiry != nil && a.ResetTokenExpiry.After(now)
	})
	if a == nil {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *accountRepo) CompleteReset(_ context.Context, id int64, token, salt, digest string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok || a.ResetToken == nil || *a.ResetToken != token {
		return domain.ErrAccountNotFound
	}
	a.CredentialSalt = salt
	a.CredentialDigest = digest
	a.ResetToken = nil
	a.ResetTokenExpiry = nil
	return nil
}

func (r *accountRepo) SoftDelete(_ context.Context, id int64, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return false, nil
	}
	ts := at
	a.DeletedAt = &ts
	for _, p := range r.tutors {
		if p.AccountID == id {
			pts := at
			p.DeletedAt = &pts
		}
	}
	return true, nil
}
