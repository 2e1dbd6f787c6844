// Package scheduler walks the profile table forever, applying the
// run-once-vs-run-daily policy per project and pacing the accounts within
// each cycle. There is exactly one in-flight account at any instant.
package scheduler

import (
	"context"
	"time"

	"github.com/Yanu403/sunkong/internal/config"
	"github.com/Yanu403/sunkong/internal/logging"
	"github.com/Yanu403/sunkong/internal/models"
	"github.com/Yanu403/sunkong/internal/pacing"
	"github.com/Yanu403/sunkong/internal/profile"
	"github.com/Yanu403/sunkong/internal/session"
	"github.com/Yanu403/sunkong/internal/store"
)

// AccountRunner runs the full workflow for one account and reports the pass.
type AccountRunner interface {
	RunAccount(ctx context.Context, sess *session.Session) models.PassResult
}

type Scheduler struct {
	cfg    *config.Config
	table  *profile.Table
	runner AccountRunner
	st     *store.Store
	log    *logging.Logger
	daily  map[string]bool

	sleep pacing.Sleeper
	wait  func(ctx context.Context, d time.Duration)
}

// New builds a scheduler. st may be nil when no run history is wanted.
func New(cfg *config.Config, table *profile.Table, runner AccountRunner, st *store.Store, log *logging.Logger) *Scheduler {
	daily := make(map[string]bool, len(cfg.Schedule.DailyProjects))
	for _, name := range cfg.Schedule.DailyProjects {
		daily[name] = true
	}
	return &Scheduler{
		cfg:    cfg,
		table:  table,
		runner: runner,
		st:     st,
		log:    log.With("module", "scheduler"),
		daily:  daily,
		sleep:  pacing.SleepRandom,
		wait:   pacing.Wait,
	}
}

// Run cycles over the profile table indefinitely, sleeping the configured
// interval between cycles, until the context is cancelled. Workflow failures
// never stop it; only cancellation does.
func (s *Scheduler) Run(ctx context.Context) error {
	for cycle := 1; ; cycle++ {
		if err := s.runCycle(ctx, cycle); err != nil {
			return err
		}
		s.countdown(ctx, s.cfg.CycleInterval())
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// RunOnce performs a single first cycle, for one-shot invocations.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	return s.runCycle(ctx, 1)
}

func (s *Scheduler) runCycle(ctx context.Context, cycle int) error {
	first := cycle == 1
	s.log.Info("cycle starting", "cycle", cycle, "projects", s.table.ProjectCount())

	var runID string
	if s.st != nil {
		id, err := s.st.BeginRun(ctx, cycle)
		if err != nil {
			s.log.Warn("could not open run record", "err", err)
		} else {
			runID = id
		}
	}

	for _, proj := range s.table.Projects() {
		if !first && !s.daily[proj.Name] {
			s.log.Info("project stopped after first run", "project", proj.Name)
			continue
		}
		s.log.Info("processing project", "project", proj.Name, "accounts", len(proj.Accounts))

		for _, rec := range proj.Accounts {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// every pass starts from a fresh login
			rec.ClearToken()

			sess := session.New(proj.Name, rec)
			res := s.runner.RunAccount(ctx, sess)
			res.RunID = runID
			res.Project = proj.Name
			res.Username = rec.Username
			if s.st != nil && runID != "" {
				if err := s.st.RecordPass(ctx, &res); err != nil {
					s.log.Warn("could not record pass", "project", proj.Name, "account", rec.Username, "err", err)
				}
			}
			s.sleep(ctx, s.cfg.Pacing.AccountDelayMinMs, s.cfg.Pacing.AccountDelayMaxMs)
		}
	}

	if s.st != nil && runID != "" {
		if err := s.st.FinishRun(ctx, runID); err != nil {
			s.log.Warn("could not close run record", "err", err)
		}
	}
	s.log.Info("cycle finished", "cycle", cycle)
	return ctx.Err()
}

// countdown sleeps for d, logging the remaining time at most hourly so a long
// inter-cycle wait stays visible in the output.
func (s *Scheduler) countdown(ctx context.Context, d time.Duration) {
	deadline := time.Now().Add(d)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 || ctx.Err() != nil {
			return
		}
		s.log.Info("waiting for next cycle", "remaining", remaining.Round(time.Minute).String())
		step := time.Hour
		if remaining < step {
			step = remaining
		}
		s.wait(ctx, step)
	}
}
