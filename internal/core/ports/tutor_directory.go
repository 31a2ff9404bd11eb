package ports

import (
	"context"

	"github.com/tutorlink/tutorlink-api/internal/core/domain"
)

// SearchCriteria carries the optional tutor search filters. Nil or
// non-positive numbers and a blank skill mean "no filter".
type SearchCriteria struct {
	Skill     string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	SortBy    string
}

// SearchResult is returned by TutorDirectory.Search.
type SearchResult struct {
	Tutors []domain.TutorCard
	// AvailableSkills is the global facet list; it ignores the criteria.
	AvailableSkills []string
}

// TutorDirectory searches and describes tutors.
type TutorDirectory interface {
	Search(ctx context.Context, criteria SearchCriteria) (*SearchResult, error)
	// GetDetails returns nil without error when id is not a live profile.
	GetDetails(ctx context.Context, id int64) (*domain.TutorCard, error)
	GetAllSkills(ctx context.Context) ([]string, error)
}
