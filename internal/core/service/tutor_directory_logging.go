package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tutorlink/tutorlink-api/internal/core/domain"
	"github.com/tutorlink/tutorlink-api/internal/core/ports"
)

type loggingTutorDirectory struct {
	inner ports.TutorDirectory
	log   zerolog.Logger
}

// NewLoggingTutorDirectory wraps inner so that every call is logged with its
// duration and outcome before the result is returned unchanged.
func NewLoggingTutorDirectory(inner ports.TutorDirectory, log zerolog.Logger) ports.TutorDirectory {
	return &loggingTutorDirectory{inner: inner, log: log}
}

func (l *loggingTutorDirectory) Search(ctx context.Context, criteria ports.SearchCriteria) (*ports.SearchResult, error) {
	start := time.Now()
	res, err := l.inner.Search(ctx, criteria)

	ev := l.event(err).
		Str("op", "search").
		Str("skill", criteria.Skill).
		Str("sort", string(ParseSortKey(criteria.SortBy))).
		Dur("took", time.Since(start))
	if res != nil {
		ev = ev.Int("results", len(res.Tutors))
	}
	ev.Msg("tutor directory call")
	return res, err
}

func (l *loggingTutorDirectory) GetDetails(ctx context.Context, id int64) (*domain.TutorCard, error) {
	start := time.Now()
	card, err := l.inner.GetDetails(ctx, id)

	l.event(err).
		Str("op", "details").
		Int64("tutor_id", id).
		Bool("found", card != nil).
		Dur("took", time.Since(start)).
		Msg("tutor directory call")
	return card, err
}

func (l *loggingTutorDirectory) GetAllSkills(ctx context.Context) ([]string, error) {
	start := time.Now()
	skills, err := l.inner.GetAllSkills(ctx)

	l.event(err).
		Str("op", "skills").
		Int("results", len(skills)).
		Dur("took", time.Since(start)).
		Msg("tutor directory call")
	return skills, err
}

func (l *loggingTutorDirectory) event(err error) *zerolog.Event {
	if err != nil {
		return l.log.Error().Err(err)
	}
	return l.log.Info()
}
