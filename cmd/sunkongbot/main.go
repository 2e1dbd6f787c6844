package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Yanu403/sunkong/internal/api"
	"github.com/Yanu403/sunkong/internal/config"
	"github.com/Yanu403/sunkong/internal/logging"
	"github.com/Yanu403/sunkong/internal/profile"
	"github.com/Yanu403/sunkong/internal/quest"
	"github.com/Yanu403/sunkong/internal/referral"
	"github.com/Yanu403/sunkong/internal/scheduler"
	"github.com/Yanu403/sunkong/internal/store"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "config.yaml", "Path to config file")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `sunkongbot - quest and referral automation

Usage:
  sunkongbot [--config config.yaml] <command>

Commands:
  run        Process all projects, then repeat on the configured interval
  once       Process all projects a single time and exit
  accounts   Print the account count per project
  history    Print recent account passes

Examples:
  sunkongbot --config config.yaml run
  sunkongbot accounts
`)
	}

	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(cfg.Logging.Level)
	log.Info("sunkongbot starting", "version", "0.1.0")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := flag.Arg(0)
	switch cmd {
	case "run":
		err = runScheduler(ctx, cfg, log, false)
	case "once":
		err = runScheduler(ctx, cfg, log, true)
	case "accounts":
		err = printAccounts(cfg)
	case "history":
		err = printHistory(ctx, cfg)
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil && err != context.Canceled {
		log.Error("command failed", "cmd", cmd, "err", err)
		os.Exit(1)
	}
	log.Info("done", "cmd", cmd)
}

func runScheduler(ctx context.Context, cfg *config.Config, log *logging.Logger, once bool) error {
	table, err := profile.Load(cfg.Profiles.Path)
	if err != nil {
		return err
	}
	for _, line := range table.Summary() {
		log.Info("project loaded", "project", line.Project, "accounts", line.Accounts)
	}

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate store: %w", err)
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.RequestTimeout(), log)
	runner := scheduler.NewWorkflowRunner(quest.New(client, cfg, log), referral.New(client, log), log)
	sched := scheduler.New(cfg, table, runner, st, log)

	if once {
		return sched.RunOnce(ctx)
	}
	return sched.Run(ctx)
}

func printAccounts(cfg *config.Config) error {
	table, err := profile.Load(cfg.Profiles.Path)
	if err != nil {
		return err
	}
	for _, line := range table.Summary() {
		fmt.Printf("%-20s %d account(s)\n", line.Project, line.Accounts)
	}
	return nil
}

func printHistory(ctx context.Context, cfg *config.Config) error {
	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate store: %w", err)
	}

	passes, err := st.RecentPasses(ctx, 50)
	if err != nil {
		return err
	}
	if len(passes) == 0 {
		fmt.Println("no passes recorded yet")
		return nil
	}
	for _, p := range passes {
		status := "login failed"
		if p.LoginOK {
			status = fmt.Sprintf("%d/%d quests", p.QuestsCompleted, p.QuestsTotal)
			if p.ReferralClaimed {
				status += ", referral claimed"
			}
		}
		fmt.Printf("%s  %-12s %-14s %s\n",
			p.CreatedAt.Format("2006-01-02 15:04"), p.Project, p.Username, status)
	}
	return nil
}
