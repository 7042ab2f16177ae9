// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/rewards/api"
	"github.com/vechain/rewards/api/admin"
	"github.com/vechain/rewards/cmd/rewards/httpserver"
	"github.com/vechain/rewards/health"
	"github.com/vechain/rewards/log"
	"github.com/vechain/rewards/metrics"
	"github.com/vechain/rewards/staker"
)

// cronLogger routes cron's own records into the rewards logger.
type cronLogger struct {
	logger log.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append(keysAndValues, "err", err)...)
}

// distributor runs the daily distribution and reports the outcome to health.
type distributor struct {
	staker *staker.Staker
	health *health.Health
}

func (d *distributor) Run() {
	amount, err := d.staker.Distribute()
	if err != nil {
		d.health.Failed(err)
		logger.Warn("scheduled distribution failed", "err", err)
		return
	}
	d.health.Distributed(amount)
}

func newScheduler(spec string, job cron.Job) (*cron.Cron, error) {
	c := cron.New(
		cron.WithLogger(cronLogger{logger.With("sub", "cron")}),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger.With("sub", "cron")})),
	)
	if _, err := c.AddJob(spec, job); err != nil {
		return nil, err
	}
	return c, nil
}

func serveAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	cfg := configFrom(ctx)
	if cfg.Metrics.Enabled {
		metrics.Enable()
	}

	clock := makeClock(cfg)
	s, closeDB, err := openStaker(cfg, clock)
	if err != nil {
		return err
	}
	defer closeDB()

	h := health.New(clock)
	job := &distributor{staker: s, health: h}
	scheduler, err := newScheduler(cfg.DistributeSchedule, job)
	if err != nil {
		return err
	}

	apiLogs := &atomic.Bool{}
	apiLogs.Store(cfg.API.EnableLogs)

	servers := make([]*httpserver.Server, 0, 3)
	apiSrv, err := httpserver.Listen("api", cfg.API.Addr, "", api.New(s, api.Options{
		AllowedOrigins:       cfg.API.Cors,
		Timeout:              time.Duration(cfg.API.TimeoutMs) * time.Millisecond,
		EnableReqLogger:      apiLogs,
		SlowQueriesThreshold: time.Duration(cfg.API.SlowQueriesThresholdMs) * time.Millisecond,
		Log5xxErrors:         cfg.API.Log5xxErrors,
		EnableMetrics:        cfg.Metrics.Enabled,
	}))
	if err != nil {
		return err
	}
	servers = append(servers, apiSrv)
	if cfg.Metrics.Enabled {
		srv, err := httpserver.Listen("metrics", cfg.Metrics.Addr, "/metrics", httpserver.MetricsHandler())
		if err != nil {
			httpserver.CloseAll(servers)
			return err
		}
		servers = append(servers, srv)
	}
	if cfg.Admin.Enabled {
		srv, err := httpserver.Listen("admin", cfg.Admin.Addr, "/admin", admin.New(logLevelFrom(ctx), h, apiLogs))
		if err != nil {
			httpserver.CloseAll(servers)
			return err
		}
		servers = append(servers, srv)
	}

	exitCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(exitCtx)
	for _, srv := range servers {
		group.Go(func() error {
			return srv.Serve(groupCtx)
		})
	}
	group.Go(func() error {
		// catch up with a distribution missed while the daemon was down
		job.Run()
		scheduler.Start()
		logger.Info("distribution scheduled", "spec", cfg.DistributeSchedule)

		<-groupCtx.Done()
		<-scheduler.Stop().Done()
		return nil
	})
	return group.Wait()
}
