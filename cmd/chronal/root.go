package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/suykerbuyk/chronal/internal/archive"
	"github.com/suykerbuyk/chronal/internal/config"
	"github.com/suykerbuyk/chronal/internal/logging"
	"github.com/suykerbuyk/chronal/internal/render"
)

// app carries state shared by every subcommand of one invocation.
type app struct {
	// flags
	configPath string
	verbose    bool
	format     string
	maxSteps   int

	cfg    config.Config
	logger *zap.Logger
	out    render.Format
}

func newRootCmd() *cobra.Command {
	a := &app{logger: logging.Nop()}

	root := &cobra.Command{
		Use:   "chronal",
		Short: "chronal - frequency drift calibration",
		Long: `chronal reads a list of signed frequency changes ("+N" / "-N", one per line)
and reports the resulting frequency (part one) and the first frequency reached
twice when the list is replayed forever (part two).

Configuration: ~/.config/chronal/config.toml`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/chronal/config.toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVarP(&a.format, "format", "f", "", "output format: text, json or yaml")
	root.PersistentFlags().IntVar(&a.maxSteps, "max-steps", 0, "give up on part two after this many deltas (0 = config value)")

	root.AddCommand(
		newSolveCmd(a),
		newTotalCmd(a),
		newRepeatCmd(a),
		newStatsCmd(a),
		newWatchCmd(a),
		newHistoryCmd(a),
		newArchiveCmd(a),
		newInitCmd(),
		newVersionCmd(),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	var cfg config.Config
	var err error
	if a.configPath != "" {
		cfg, err = config.LoadFile(a.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.maxSteps < 0 {
		return fmt.Errorf("--max-steps must be >= 0, got %d", a.maxSteps)
	}
	a.cfg = cfg

	format := cfg.Output.Format
	if a.format != "" {
		format = a.format
	}
	if a.out, err = render.ParseFormat(format); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, a.verbose)
	if err != nil {
		return err
	}
	a.logger = logger.With(zap.String("cmd", cmd.Name()))
	return nil
}

// stepCap is the part two step limit: --max-steps, else the config value.
func (a *app) stepCap() int {
	if a.maxSteps > 0 {
		return a.maxSteps
	}
	return a.cfg.Detect.MaxSteps
}

// skipSetup overrides the root PersistentPreRunE for commands that must work
// without a loadable config.
func skipSetup(*cobra.Command, []string) {}

// inputPath resolves the optional positional input argument.
func (a *app) inputPath(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return a.cfg.Input
}

// readInput returns the raw blob for path; "-" reads stdin.
func (a *app) readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	a.logger.Debug("reading input", zap.String("path", path))
	return archive.ReadFile(path)
}
