package memory

import (
	"context"
	"sort"

	"github.com/tutorlink/tutorlink-api/internal/core/domain"
	"github.com/tutorlink/tutorlink-api/internal/core/ports"
)

type tutorRepo Store

func (r *tutorRepo) Create(_ context.Context, p *domain.TutorProfile) (*domain.TutorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[p.AccountID]; !ok {
		return nil, domain.ErrAccountNotFound
	}
	r.nextTutor++
	stored := cloneTutor(p)
	stored.ID = r.nextTutor
	r.tutors[stored.ID] = stored
	return cloneTutor(stored), nil
}

func (r *tutorRepo) sortedIDs() []int64 {
	ids := make([]int64, 0, len(r.tutors))
	for id := range r.tutors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// listing returns the live listing for p, or nil. Callers hold mu.
func (r *tutorRepo) listing(p *domain.TutorProfile) *domain.TutorListing {
	if p.DeletedAt != nil {
		return nil
	}
	owner, ok := r.accounts[p.AccountID]
	if !ok || owner.IsDeleted() {
		return nil
	}
	return &domain.TutorListing{Profile: *cloneTutor(p), Owner: *cloneAccount(owner)}
}

func (r *tutorRepo) ListActive(_ context.Context) ([]domain.TutorListing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.TutorListing, 0, len(r.tutors))
	for _, id := range r.sortedIDs() {
		if l := r.listing(r.tutors[id]); l != nil {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *tutorRepo) FindActive(_ context.Context, id int64) (*domain.TutorListing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.tutors[id]
	if !ok {
		return nil, domain.ErrTutorProfileNotFound
	}
	l := r.listing(p)
	if l == nil {
		return nil, domain.ErrTutorProfileNotFound
	}
	return l, nil
}

func (r *tutorRepo) ActiveSkillLists(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for _, id := range r.sortedIDs() {
		p := r.tutors[id]
		if p.DeletedAt == nil && p.Skill != "" {
			out = append(out, p.Skill)
		}
	}
	return out, nil
}

func (r *tutorRepo) ListByAccount(_ context.Context, accountID int64) ([]domain.TutorProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.TutorProfile
	for _, id := range r.sortedIDs() {
		if p := r.tutors[id]; p.AccountID == accountID {
			out = append(out, *cloneTutor(p))
		}
	}
	return out, nil
}

func (r *tutorRepo) UpdateByAccount(_ context.Context, accountID int64, u ports.TutorProfileUpdate) (*domain.TutorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.sortedIDs() {
		p := r.tutors[id]
		if p.AccountID != accountID || p.DeletedAt != nil {
			continue
		}
		p.Skill = u.Skill
		p.HourlyRate = u.HourlyRate
		p.Bio = u.Bio
		p.Availability = u.Availability
		*p = *cloneTutor(p)
		return cloneTutor(p), nil
	}
	return nil, domain.ErrTutorProfileNotFound
}

func (r *tutorRepo) CountActive(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, p := range r.tutors {
		if p.DeletedAt == nil {
			n++
		}
	}
	return n, nil
}
