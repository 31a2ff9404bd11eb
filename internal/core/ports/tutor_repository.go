package ports

import (
	"context"

	"github.com/tutorlink/tutorlink-api/internal/core/domain"
)

// TutorProfileUpdate carries the tutor-editable profile fields.
type TutorProfileUpdate struct {
	Skill        string
	HourlyRate   *float64
	Bio          *string
	Availability *string
}

// TutorRepository defines persistence operations for tutor profiles.
type TutorRepository interface {
	Create(ctx context.Context, p *domain.TutorProfile) (*domain.TutorProfile, error)
	// ListActive returns every profile whose own and owner's tombstones are unset.
	ListActive(ctx context.Context) ([]domain.TutorListing, error)
	// FindActive returns a single live listing or domain.ErrTutorProfileNotFound.
	FindActive(ctx context.Context, id int64) (*domain.TutorListing, error)
	// ActiveSkillLists returns the raw skill text of every non-deleted profile.
	ActiveSkillLists(ctx context.Context) ([]string, error)
	ListByAccount(ctx context.Context, accountID int64) ([]domain.TutorProfile, error)
	// UpdateByAccount edits the live profile owned by accountID.
	UpdateByAccount(ctx context.Context, accountID int64, u TutorProfileUpdate) (*domain.TutorProfile, error)
	CountActive(ctx context.Context) (int64, error)
}
