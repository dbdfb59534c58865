package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storyweaver_registrations_total",
		Help: "Total number of successful user registrations.",
	})

	loginsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storyweaver_logins_total",
		Help: "Total number of successful logins.",
	})

	storiesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storyweaver_stories_created_total",
		Help: "Total number of stories created.",
	})

	draftSavesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storyweaver_draft_saves_total",
		Help: "Total number of persisted draft saves.",
	})

	scenesCommittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storyweaver_scenes_committed_total",
		Help: "Total number of committed scenes.",
	})

	aiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storyweaver_ai_requests_total",
			Help: "Total number of AI assist requests by operation and status.",
		},
		[]string{"operation", "status"},
	)
)
