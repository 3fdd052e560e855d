// Copyright 2026 l3montree GmbH.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var SessionPurgeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "bodhi_daemon_session_purge_duration_seconds",
	Help:    "Duration of purging expired sessions in seconds",
	Buckets: prometheus.DefBuckets,
})

var SessionsPurgedAmount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "bodhi_daemon_sessions_purged_amount",
	Help: "The total number of purged expired sessions",
})
