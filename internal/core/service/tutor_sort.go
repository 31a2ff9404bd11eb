package service

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/tutorlink/tutorlink-api/internal/core/domain"
)

// SortKey selects one of the fixed tutor orderings.
type SortKey string

const (
	SortByRating    SortKey = "rating"
	SortByPriceAsc  SortKey = "price_asc"
	SortByPriceDesc SortKey = "price_desc"
	SortByNewest    SortKey = "newest"
)

type tutorComparator func(a, b *domain.TutorProfile) int

var tutorComparators = map[SortKey]tutorComparator{
	SortByRating:    compareByRating,
	SortByPriceAsc:  compareByPriceAsc,
	SortByPriceDesc: compareByPriceDesc,
	SortByNewest:    compareByNewest,
}

// ParseSortKey maps a request value to a SortKey; anything unrecognised is
// SortByRating.
func ParseSortKey(s string) SortKey {
	key := SortKey(strings.TrimSpace(s))
	if _, ok := tutorComparators[key]; ok {
		return key
	}
	return SortByRating
}

// sortListings orders listings in place. The sort is stable so equal keys keep
// repository order.
func sortListings(listings []domain.TutorListing, key SortKey) {
	compare := tutorComparators[ParseSortKey(string(key))]
	slices.SortStableFunc(listings, func(a, b domain.TutorListing) int {
		return compare(&a.Profile, &b.Profile)
	})
}

// compareByRating: rating descending with unrated last, then reviews descending.
func compareByRating(a, b *domain.TutorProfile) int {
	switch {
	case a.AverageRating == nil && b.AverageRating == nil:
	case a.AverageRating == nil:
		return 1
	case b.AverageRating == nil:
		return -1
	default:
		if c := cmp.Compare(*b.AverageRating, *a.AverageRating); c != 0 {
			return c
		}
	}
	return cmp.Compare(b.TotalReviews, a.TotalReviews)
}

// compareByPriceAsc: a missing rate orders as the largest possible value.
func compareByPriceAsc(a, b *domain.TutorProfile) int {
	return cmp.Compare(rateOr(a, math.Inf(1)), rateOr(b, math.Inf(1)))
}

// compareByPriceDesc: a missing rate orders as zero.
func compareByPriceDesc(a, b *domain.TutorProfile) int {
	return cmp.Compare(rateOr(b, 0), rateOr(a, 0))
}

func compareByNewest(a, b *domain.TutorProfile) int {
	return b.CreatedAt.Compare(a.CreatedAt)
}

func rateOr(p *domain.TutorProfile, fallback float64) float64 {
	if p.HourlyRate == nil {
		return fallback
	}
	return *p.HourlyRate
}
