package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tutorlink/tutorlink-api/internal/core/domain"
	"github.com/tutorlink/tutorlink-api/internal/core/ports"
)

// TutorDirectory implements tutor search, details and the skill facet.
type TutorDirectory struct {
	tutors ports.TutorRepository
	skills ports.SkillCache
	log    zerolog.Logger
}

var _ ports.TutorDirectory = (*TutorDirectory)(nil)

// NewTutorDirectory builds the search engine. skills may be nil, in which case
// the facet list is computed on every call.
func NewTutorDirectory(tutors ports.TutorRepository, skills ports.SkillCache, log zerolog.Logger) *TutorDirectory {
	return &TutorDirectory{tutors: tutors, skills: skills, log: log}
}

type listingFilter func(l *domain.TutorListing) bool

// criteriaFilters turns the criteria into independent predicates. Absent,
// blank and non-positive values add no predicate.
func criteriaFilters(c ports.SearchCriteria) []listingFilter {
	var filters []listingFilter

	if skill := strings.ToLower(strings.TrimSpace(c.Skill)); skill != "" {
		filters = append(filters, func(l *domain.TutorListing) bool {
			return strings.Contains(strings.ToLower(l.Profile.Skill), skill)
		})
	}
	if c.MinPrice != nil && *c.MinPrice > 0 {
		min := *c.MinPrice
		filters = append(filters, func(l *domain.TutorListing) bool {
			return l.Profile.HourlyRate != nil && *l.Profile.HourlyRate >= min
		})
	}
	if c.MaxPrice != nil && *c.MaxPrice > 0 {
		max := *c.MaxPrice
		filters = append(filters, func(l *domain.TutorListing) bool {
			return l.Profile.HourlyRate != nil && *l.Profile.HourlyRate <= max
		})
	}
	if c.MinRating != nil && *c.MinRating > 0 {
		min := *c.MinRating
		filters = append(filters, func(l *domain.TutorListing) bool {
			return l.Profile.AverageRating != nil && *l.Profile.AverageRating >= min
		})
	}
	return filters
}

func applyFilters(listings []domain.TutorListing, filters []listingFilter) []domain.TutorListing {
	out := listings[:0:0]
next:
	for i := range listings {
		for _, keep := range filters {
			if !keep(&listings[i]) {
				continue next
			}
		}
		out = append(out, listings[i])
	}
	return out
}

// Search filters the live tutors, orders them by criteria.SortBy and projects
// them into cards. No criteria value is ever rejected.
func (d *TutorDirectory) Search(ctx context.Context, criteria ports.SearchCriteria) (*ports.SearchResult, error) {
	listings, err := d.tutors.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("search tutors: %w", err)
	}

	matched := applyFilters(listings, criteriaFilters(criteria))
	sortListings(matched, ParseSortKey(criteria.SortBy))

	cards := make([]domain.TutorCard, len(matched))
	for i, l := range matched {
		cards[i] = domain.NewTutorCard(l)
	}

	skills, err := d.GetAllSkills(ctx)
	if err != nil {
		return nil, fmt.Errorf("search tutors: %w", err)
	}

	return &ports.SearchResult{Tutors: cards, AvailableSkills: skills}, nil
}

// GetDetails returns the card of a single live profile, or nil.
func (d *TutorDirectory) GetDetails(ctx context.Context, id int64) (*domain.TutorCard, error) {
	listing, err := d.tutors.FindActive(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrTutorProfileNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("tutor details: %w", err)
	}
	card := domain.NewTutorCard(*listing)
	return &card, nil
}

// GetAllSkills returns the sorted, de-duplicated skill tokens of every
// non-deleted profile, served from the cache when one is configured.
func (d *TutorDirectory) GetAllSkills(ctx context.Context) ([]string, error) {
	if d.skills != nil {
		cached, err := d.skills.Get(ctx)
		switch {
		case err == nil:
			return cached, nil
		case !errors.Is(err, ports.ErrCacheMiss):
			d.log.Warn().Err(err).Msg("skill cache read failed, recomputing")
		}
	}

	raw, err := d.tutors.ActiveSkillLists(ctx)
	if err != nil {
		return nil, fmt.Errorf("all skills: %w", err)
	}
	skills := distinctSkills(raw)

	if d.skills != nil {
		if err := d.skills.Set(ctx, skills); err != nil {
			d.log.Warn().Err(err).Msg("skill cache write failed")
		}
	}

	d.log.Debug().Int("count", len(skills)).Msg("skill facet computed")
	return skills, nil
}

func distinctSkills(raw []string) []string {
	seen := make(map[string]struct{})
	skills := make([]string, 0)
	for _, r := range raw {
		for _, s := range domain.SplitSkills(r) {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			skills = append(skills, s)
		}
	}
	sort.Strings(skills)
	return skills
}
