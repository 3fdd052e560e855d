// Copyright 2026 l3montree GmbH.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package daemons

import (
	"log/slog"
	"time"

	"github.com/l3montree-dev/bodhi/monitoring"
)

func (runner *DaemonRunner) PurgeExpiredSessions() error {
	start := time.Now()
	defer func() {
		monitoring.SessionPurgeDuration.Observe(time.Since(start).Seconds())
	}()

	count, err := runner.authService.PurgeExpiredSessions()
	if err != nil {
		return err
	}
	monitoring.SessionsPurgedAmount.Add(float64(count))
	if count > 0 {
		slog.Info("purged expired sessions", "count", count)
	} else {
		slog.Debug("no expired sessions to purge")
	}
	return nil
}
