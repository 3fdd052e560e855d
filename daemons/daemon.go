// Copyright 2026 l3montree GmbH.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package daemons

import (
	"log/slog"
	"sync"
	"time"

	"github.com/l3montree-dev/bodhi/shared"
	"github.com/l3montree-dev/bodhi/utils"
	"go.uber.org/fx"
)

// DaemonRunner runs the periodic maintenance jobs of the server.
type DaemonRunner struct {
	authService shared.AuthService
	interval    time.Duration

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func NewDaemonRunner(authService shared.AuthService) *DaemonRunner {
	return &DaemonRunner{
		authService: authService,
		interval:    utils.EnvDuration("DAEMON_INTERVAL", 15*time.Minute),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Start initiates all background daemons
func (runner *DaemonRunner) Start() {
	go func() {
		defer close(runner.done)
		runner.tick()
		ticker := time.NewTicker(runner.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				runner.tick()
			case <-runner.stop:
				return
			}
		}
	}()
}

// Stop signals the daemons to stop and waits for a running tick to finish.
func (runner *DaemonRunner) Stop() {
	runner.stopOnce.Do(func() {
		close(runner.stop)
	})
	<-runner.done
}

func (runner *DaemonRunner) tick() {
	if err := runner.PurgeExpiredSessions(); err != nil {
		slog.Error("could not purge expired sessions", "err", err)
	}
}

var Module = fx.Module("daemons",
	fx.Provide(NewDaemonRunner),
	fx.Invoke(func(lc fx.Lifecycle, runner *DaemonRunner) {
		lc.Append(fx.StartStopHook(runner.Start, runner.Stop))
	}),
)
