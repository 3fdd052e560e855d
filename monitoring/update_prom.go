// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var UpdatesSubmittedAmount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "bodhi_updates_submitted_total",
	Help: "The total number of persisted update submissions by final type",
}, []string{"type"})

var UpdatesRejectedAmount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "bodhi_updates_rejected_total",
	Help: "The total number of rejected update submissions by field",
}, []string{"field"})

var LoginAttemptsAmount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "bodhi_login_attempts_total",
	Help: "The total number of login attempts by outcome",
}, []string{"outcome"})

var UpdateSubmitDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "bodhi_update_submit_duration_seconds",
	Help:    "Duration of update submissions including validation and persistence",
	Buckets: prometheus.DefBuckets,
})
