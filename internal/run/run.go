// Package run solves one input end to end: cache lookup, solve, archive and
// history bookkeeping.
package run

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/suykerbuyk/chronal/internal/archive"
	"github.com/suykerbuyk/chronal/internal/config"
	"github.com/suykerbuyk/chronal/internal/index"
	"github.com/suykerbuyk/chronal/internal/solve"
)

// Result holds the output of a run.
type Result struct {
	Answer      solve.Answer
	Cached      bool
	RunID       string
	ArchivePath string
}

// Options adjusts a single run.
type Options struct {
	Force    bool // ignore a cached answer
	MaxSteps int  // overrides cfg.Detect.MaxSteps when > 0
}

// Process solves data read from inputPath. Index and archive failures are
// logged and do not fail the run; parse and detector errors do.
func Process(inputPath string, data []byte, cfg config.Config, opts Options, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	hash := archive.Fingerprint(data)
	logger = logger.With(zap.String("input", inputPath), zap.String("hash", hash[:12]))

	var idx *index.Index
	if cfg.History.Enabled {
		var err error
		idx, err = index.Open(cfg.HistoryPath())
		if err != nil {
			logger.Warn("could not open history", zap.Error(err))
		} else {
			defer idx.Close()
			logger.Debug("history open", zap.String("path", idx.Path()))
		}
	}

	maxSteps := cfg.Detect.MaxSteps
	if opts.MaxSteps > 0 {
		maxSteps = opts.MaxSteps
	}

	// Reuse a previous answer for identical input, unless it took more
	// steps than the current cap allows.
	if idx != nil && !opts.Force {
		prev, ok, err := idx.Lookup(hash)
		switch {
		case err != nil:
			logger.Warn("history lookup failed", zap.Error(err))
		case ok && maxSteps > 0 && prev.Steps > maxSteps:
			logger.Debug("cached answer exceeds step cap",
				zap.String("run_id", prev.RunID), zap.Int("steps", prev.Steps), zap.Int("max_steps", maxSteps))
		case ok:
			logger.Debug("cached answer", zap.String("run_id", prev.RunID))
			return &Result{Answer: answerOf(prev), Cached: true, RunID: prev.RunID}, nil
		}
	}

	answer, err := solve.Solve(string(data), solve.Options{MaxSteps: maxSteps})
	if err != nil {
		return nil, fmt.Errorf("solve %s: %w", inputPath, err)
	}
	logger.Debug("solved",
		zap.Int("deltas", answer.Deltas),
		zap.Int("steps", answer.Steps),
		zap.Int("passes", answer.Passes))

	res := &Result{Answer: answer}

	if cfg.Archive.Compress {
		path, err := archive.Archive(data, cfg.ArchiveDir())
		if err != nil {
			logger.Warn("could not archive input", zap.Error(err))
		} else {
			res.ArchivePath = path
		}
	}

	if idx != nil {
		entry, err := idx.Add(index.Entry{
			InputHash: hash,
			InputPath: inputPath,
			Deltas:    answer.Deltas,
			PartOne:   answer.PartOne,
			PartTwo:   answer.PartTwo,
			Steps:     answer.Steps,
			Passes:    answer.Passes,
		})
		if err != nil {
			logger.Warn("could not record run", zap.Error(err))
		} else {
			res.RunID = entry.RunID
		}
	}

	return res, nil
}

func answerOf(e index.Entry) solve.Answer {
	return solve.Answer{
		PartOne: e.PartOne,
		PartTwo: e.PartTwo,
		Deltas:  e.Deltas,
		Steps:   e.Steps,
		Passes:  e.Passes,
	}
}
