package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"hirexpand/internal/driver"
)

// runWatch re-renders target after every change until interrupted.
func runWatch(ctx context.Context, cmd *cobra.Command, target string, opts driver.Options, r renderer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	errOut := cmd.ErrOrStderr()
	err := driver.Watch(ctx, target, opts, driver.WatchOptions{
		OnResult: func(res *driver.Result, err error) {
			if err != nil {
				fmt.Fprintf(errOut, "%s\n", err)
				return
			}
			fmt.Fprintf(errOut, "-- %s (%d expansions)\n", time.Now().Format(time.TimeOnly), res.Expansions())
			if err := r.render(cmd, res); err != nil {
				fmt.Fprintf(errOut, "render: %s\n", err)
			}
		},
	})
	if err != nil {
		return fmt.Errorf("expand: %w", err)
	}
	return nil
}
