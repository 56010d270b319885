package cli

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"nota/internal/reminder"
)

func init() {
	remindCmd := &cobra.Command{
		Use:   "remind",
		Short: "Manage reminder alarms",
	}

	setCmd := &cobra.Command{
		Use:   "set <title>",
		Short: "Schedule a reminder for an item title",
		Args:  cobra.ExactArgs(1),
		Run:   runRemindSet,
	}
	setCmd.Flags().String("at", "", `Trigger time, "2006-01-02 15:04" (required)`)
	setCmd.MarkFlagRequired("at")

	cancelCmd := &cobra.Command{
		Use:   "cancel <title>",
		Short: "Cancel the reminder for an item title",
		Args:  cobra.ExactArgs(1),
		Run:   runRemindCancel,
	}

	restoreCmd := &cobra.Command{
		Use:   "restore",
		Short: "Re-register every ledger entry and wait for triggers",
		Long:  "Boot hook: re-registers all persisted reminders, then stays up printing each one as it fires. Stop with Ctrl-C.",
		Run:   runRemindRestore,
	}

	remindCmd.AddCommand(setCmd, cancelCmd, restoreCmd)
	RootCmd.AddCommand(remindCmd)
}

func runRemindSet(cmd *cobra.Command, args []string) {
	atRaw, _ := cmd.Flags().GetString("at")
	at, err := time.ParseInLocation("2006-01-02 15:04", atRaw, time.Local)
	if err != nil {
		exitErr("remind set", fmt.Errorf("invalid time %q", atRaw))
	}

	e, err := openEnv(nil)
	if err != nil {
		exitErr("open", err)
	}
	defer e.close()

	if err := e.sched.Schedule(args[0], at.UnixMilli()); err != nil {
		exitErr("remind set", err)
	}
	fmt.Printf("reminder for %q recorded at %s\n", args[0], at.Format("2006-01-02 15:04"))
}

func runRemindCancel(cmd *cobra.Command, args []string) {
	e, err := openEnv(nil)
	if err != nil {
		exitErr("open", err)
	}
	defer e.close()

	if err := e.sched.Cancel(args[0]); err != nil {
		exitErr("remind cancel", err)
	}
	fmt.Printf("reminder for %q cancelled\n", args[0])
}

func runRemindRestore(cmd *cobra.Command, args []string) {
	e, err := openEnv(func(n reminder.Notification) {
		fmt.Printf("%s: %s\n", n.Title, n.Body)
	})
	if err != nil {
		exitErr("open", err)
	}
	defer e.close()

	if err := e.sched.RestoreAll(); err != nil {
		exitErr("remind restore", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
}
