package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrTutorProfileNotFound = errors.New("tutor profile not found")
	ErrInvalidHourlyRate    = errors.New("hourly rate must not be negative")
)

// TutorProfile is the tutoring extension of an Account with the Tutor role.
type TutorProfile struct {
	ID            int64      `json:"id"`
	AccountID     int64      `json:"account_id"`
	Skill         string     `json:"skill"`
	HourlyRate    *float64   `json:"hourly_rate,omitempty"`
	AverageRating *float64   `json:"average_rating,omitempty"`
	TotalReviews  int        `json:"total_reviews"`
	Bio           *string    `json:"bio,omitempty"`
	Availability  *string    `json:"availability,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

// TutorListing pairs a live profile with its owning account.
type TutorListing struct {
	Profile TutorProfile
	Owner   Account
}

// TutorCard is the display-ready projection of a tutor profile.
type TutorCard struct {
	ID            int64    `json:"id"`
	FullName      string   `json:"full_name"`
	Username      string   `json:"username"`
	Email         string   `json:"email"`
	Skills        []string `json:"skills"`
	HourlyRate    *float64 `json:"hourly_rate,omitempty"`
	AverageRating *float64 `json:"average_rating,omitempty"`
	TotalReviews  int      `json:"total_reviews"`
	Bio           *string  `json:"bio,omitempty"`
	Availability  *string  `json:"availability,omitempty"`
	IsAvailable   bool     `json:"is_available"`
}

// SplitSkills tokenises a comma-delimited skill list: every token is trimmed and
// empty tokens are dropped. Order and duplicates are preserved.
func SplitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

// NewTutorCard projects a listing into a TutorCard.
func NewTutorCard(l TutorListing) TutorCard {
	return TutorCard{
		ID:            l.Profile.ID,
		FullName:      l.Owner.FullName(),
		Username:      l.Owner.Username,
		Email:         l.Owner.Email,
		Skills:        SplitSkills(l.Profile.Skill),
		HourlyRate:    l.Profile.HourlyRate,
		AverageRating: l.Profile.AverageRating,
		TotalReviews:  l.Profile.TotalReviews,
		Bio:           l.Profile.Bio,
		Availability:  l.Profile.Availability,
		// No scheduling data exists yet.
		IsAvailable: true,
	}
}
