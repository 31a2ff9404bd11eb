// Package metrics defines and registers the custom Prometheus metrics of the
// TutorLink API. It is the single source of truth for metric names, labels and
// help strings.
//
// Metrics are registered with the default registry on package init through
// promauto; HTTP request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tutorlink"

// ── Account metrics ───────────────────────────────────────────────────────────

// RegistrationsTotal counts accounts created.
// Labels:
//   - role: "Admin", "Student" or "Tutor"
//   - channel: "self" (public registration) or "admin"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created, by role and channel.",
	},
	[]string{"role", "channel"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// PasswordResetsTotal counts reset-flow steps.
// Labels:
//   - step: "issue" or "consume"
//   - result: "success", "not_found" or "error"
var PasswordResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of password reset requests, by step and result.",
	},
	[]string{"step", "result"},
)

// ── Directory metrics ─────────────────────────────────────────────────────────

// TutorSearchesTotal counts tutor searches.
// Label:
//   - sort: the effective sort key
var TutorSearchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tutor_searches_total",
		Help:      "Total number of tutor searches, by sort key.",
	},
	[]string{"sort"},
)

// TutorSearchResults observes how many tutors a search returned.
var TutorSearchResults = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "tutor_search_results",
		Help:      "Number of tutors returned per search.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
	},
)

// SkillCacheLookups counts skill facet cache lookups.
// Label:
//   - result: "hit" or "miss"
var SkillCacheLookups = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "skill_cache_lookups_total",
		Help:      "Total number of skill facet cache lookups, by result.",
	},
	[]string{"result"},
)

// RateLimitedTotal counts requests rejected by the rate limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter.",
	},
)
