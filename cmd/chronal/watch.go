package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/suykerbuyk/chronal/internal/render"
	"github.com/suykerbuyk/chronal/internal/run"
	"github.com/suykerbuyk/chronal/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [input]",
		Short: "Re-solve the input every time it changes",
		Long: `Solves the input once, then again whenever the file is written.
Parse errors are reported and watching continues. Stop with Ctrl-C.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.inputPath(args)
			if path == "-" {
				return fmt.Errorf("watch needs a file, not stdin")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.watch(ctx, cmd, path)
		},
	}
}

func (a *app) watch(ctx context.Context, cmd *cobra.Command, path string) error {
	debounce := time.Duration(a.cfg.Watch.DebounceMS) * time.Millisecond
	w := watch.New(path, debounce, a.logger)

	return w.Run(ctx, func(data []byte, err error) {
		if err != nil {
			a.logger.Warn("read input", zap.Error(err))
			fmt.Fprintf(cmd.ErrOrStderr(), "chronal: %v\n", err)
			return
		}

		res, err := run.Process(path, data, a.cfg, run.Options{MaxSteps: a.maxSteps}, a.logger)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "chronal: %v\n", err)
			return
		}
		if err := render.Answer(cmd.OutOrStdout(), a.out, render.Result{Input: path, Cached: res.Cached, Answer: res.Answer}); err != nil {
			a.logger.Warn("render answer", zap.Error(err))
		}
	})
}
