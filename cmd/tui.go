package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"annoyingtimer/internal/alarm"
	"annoyingtimer/internal/tui"
)

func newTUICommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the timer in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runTUI(ctx, opts)
		},
	}
}

func runTUI(ctx context.Context, opts *options) error {
	session, err := newSession(opts, alarm.NewBellFactory(os.Stdout))
	if err != nil {
		return err
	}
	defer session.controller.Close()

	return tui.Run(ctx, session.controller)
}
