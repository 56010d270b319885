// Package cli implements the nota commands. The bare command launches the
// TUI; subcommands offer a headless surface for scripts and the boot hook.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nota/internal/config"
	"nota/internal/logging"
	"nota/internal/reminder"
	"nota/internal/repository"
	"nota/internal/storage"
	"nota/internal/ui"
)

var configPath string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "nota",
	Short: "Notes and tasks with local reminders",
	Long:  "A terminal notes/tasks manager. Items live in a local SQLite table; reminders are kept in a ledger and restored on startup.",
	RunE:  runTUI,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config path (default: user config dir)")
}

func resolveConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	return config.LoadOrCreate(path)
}

// env is everything an open command needs: the repository, the reminder
// scheduler, and a close func releasing all of it.
type env struct {
	cfg   config.Config
	repo  *repository.Items
	sched *reminder.Scheduler
	clock *reminder.TimerClock
	log   logging.Logger
	close func()
}

func openEnv(notify func(reminder.Notification)) (*env, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, closeLog, err := logging.NewFileLogger(cfg.LogPath)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("open database: %w", err)
	}

	clock := reminder.NewTimerClock(notify)
	sched := reminder.NewScheduler(reminder.NewLedger(cfg.AlarmsPath), clock, log)

	return &env{
		cfg:   cfg,
		repo:  repository.New(store),
		sched: sched,
		clock: clock,
		log:   log,
		close: func() {
			clock.Stop()
			store.Close()
			closeLog()
		},
	}, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	notes := make(chan reminder.Notification, 8)
	e, err := openEnv(func(n reminder.Notification) {
		select {
		case notes <- n:
		default:
		}
	})
	if err != nil {
		return err
	}
	defer e.close()

	// Startup is the boot-completed moment for a desktop process: pending
	// reminders come back from the ledger exactly once.
	if err := e.sched.RestoreAll(); err != nil {
		e.log.Warn(cmd.Context(), "restore reminders", "err", err)
	}

	return ui.Run(e.repo, e.sched, notes, e.cfg)
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
