package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/suykerbuyk/chronal/internal/delta"
	"github.com/suykerbuyk/chronal/internal/frequency"
	"github.com/suykerbuyk/chronal/internal/render"
	"github.com/suykerbuyk/chronal/internal/run"
	"github.com/suykerbuyk/chronal/internal/solve"
	"github.com/suykerbuyk/chronal/internal/stats"
)

func newSolveCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "solve [input]",
		Short: "Print the final frequency and the first repeated frequency",
		Long: `Solves both parts for the input file (default: the configured input).
Files ending in .zst are decompressed on the fly; "-" reads stdin.

Answers are recorded in the history database and reused for identical input
unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.inputPath(args)
			data, err := a.readInput(cmd, path)
			if err != nil {
				return err
			}

			res, err := run.Process(path, data, a.cfg, run.Options{Force: force, MaxSteps: a.maxSteps}, a.logger)
			if err != nil {
				return err
			}
			a.logger.Info("solved",
				zap.String("input", path),
				zap.Bool("cached", res.Cached),
				zap.String("run_id", res.RunID))

			return render.Answer(cmd.OutOrStdout(), a.out, render.Result{
				Input:  path,
				Cached: res.Cached,
				Answer: res.Answer,
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "recompute even if the input was solved before")
	return cmd
}

func newTotalCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "total [input]",
		Short: "Print the frequency after applying every change once (part one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.readInput(cmd, a.inputPath(args))
			if err != nil {
				return err
			}
			total, err := solve.PartOne(string(data))
			if err != nil {
				return err
			}
			return render.Single(cmd.OutOrStdout(), a.out, "part_one", total)
		},
	}
}

func newRepeatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repeat [input]",
		Short: "Print the first frequency reached twice (part two)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.readInput(cmd, a.inputPath(args))
			if err != nil {
				return err
			}
			r, err := solve.PartTwo(string(data), solve.Options{MaxSteps: a.stepCap()})
			if err != nil {
				return err
			}
			a.logger.Debug("repeat found", zap.Int("steps", r.Step), zap.Int("passes", r.Pass))
			return render.Single(cmd.OutOrStdout(), a.out, "part_two", r.Value)
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [input]",
		Short: "Describe the change list: counts, extremes, running range",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.inputPath(args)
			data, err := a.readInput(cmd, path)
			if err != nil {
				return err
			}
			deltas, err := delta.ParseString(string(data))
			if err != nil {
				return err
			}

			s := stats.Compute(deltas)
			if a.out != render.Text {
				return render.Value(cmd.OutOrStdout(), a.out, statsView(s, deltas))
			}
			_, err = cmd.OutOrStdout().Write([]byte(stats.Format(s, path)))
			return err
		},
	}
}

type statsDoc struct {
	Deltas          int     `json:"deltas" yaml:"deltas"`
	Increases       int     `json:"increases" yaml:"increases"`
	Decreases       int     `json:"decreases" yaml:"decreases"`
	Zeros           int     `json:"zeros" yaml:"zeros"`
	LargestIncrease int64   `json:"largest_increase" yaml:"largest_increase"`
	LargestDecrease int64   `json:"largest_decrease" yaml:"largest_decrease"`
	Total           int64   `json:"total" yaml:"total"`
	MinRunning      int64   `json:"min_running" yaml:"min_running"`
	MaxRunning      int64   `json:"max_running" yaml:"max_running"`
	Distinct        int     `json:"distinct" yaml:"distinct"`
	Revisits        bool    `json:"revisits" yaml:"revisits"`
	RunningSums     []int64 `json:"running_sums,omitempty" yaml:"running_sums,omitempty"`
}

func statsView(s stats.Summary, deltas []delta.Delta) statsDoc {
	return statsDoc{
		Deltas:          s.Deltas,
		Increases:       s.Increases,
		Decreases:       s.Decreases,
		Zeros:           s.Zeros,
		LargestIncrease: s.LargestIncrease,
		LargestDecrease: s.LargestDecrease,
		Total:           s.Total,
		MinRunning:      s.MinRunning,
		MaxRunning:      s.MaxRunning,
		Distinct:        s.Distinct,
		Revisits:        s.Revisits,
		RunningSums:     frequency.RunningSums(deltas),
	}
}
