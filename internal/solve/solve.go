// Package solve runs the parse, total and first-repeat pipeline over an input blob.
package solve

import (
	"errors"
	"fmt"

	"github.com/suykerbuyk/chronal/internal/delta"
	"github.com/suykerbuyk/chronal/internal/frequency"
)

// ErrEmptyInput is returned when the input holds no deltas.
// It wraps frequency.ErrEmptySequence.
var ErrEmptyInput = fmt.Errorf("input has no deltas: %w", frequency.ErrEmptySequence)

// Options tunes the cycle detector.
type Options struct {
	MaxSteps int // 0 = unbounded
}

// Answer holds both puzzle results for one input.
type Answer struct {
	PartOne int64 `json:"part_one" yaml:"part_one"`
	PartTwo int64 `json:"part_two" yaml:"part_two"`
	Deltas  int   `json:"deltas" yaml:"deltas"`
	Steps   int   `json:"steps" yaml:"steps"`
	Passes  int   `json:"passes" yaml:"passes"`
}

// Solve parses blob and computes both parts.
// Any error aborts the run; no partial answer is returned.
func Solve(blob string, opts Options) (Answer, error) {
	deltas, err := parse(blob)
	if err != nil {
		return Answer{}, err
	}
	return SolveDeltas(deltas, opts)
}

// SolveDeltas computes both parts for an already parsed sequence.
func SolveDeltas(deltas []delta.Delta, opts Options) (Answer, error) {
	if len(deltas) == 0 {
		return Answer{}, ErrEmptyInput
	}

	r, err := frequency.Detect(deltas, opts.MaxSteps)
	if err != nil {
		return Answer{}, fmt.Errorf("part two: %w", err)
	}

	return Answer{
		PartOne: frequency.Total(deltas),
		PartTwo: r.Value,
		Deltas:  len(deltas),
		Steps:   r.Step,
		Passes:  r.Pass,
	}, nil
}

// PartOne returns the final frequency for blob.
func PartOne(blob string) (int64, error) {
	deltas, err := parse(blob)
	if err != nil {
		return 0, err
	}
	return frequency.Total(deltas), nil
}

// PartTwo returns the first repeated frequency for blob. With a zero
// opts.MaxSteps it scans without bound.
func PartTwo(blob string, opts Options) (frequency.Repeat, error) {
	deltas, err := parse(blob)
	if err != nil {
		return frequency.Repeat{}, err
	}
	if len(deltas) == 0 {
		return frequency.Repeat{}, ErrEmptyInput
	}
	return frequency.Detect(deltas, opts.MaxSteps)
}

func parse(blob string) ([]delta.Delta, error) {
	deltas, err := delta.ParseString(blob)
	if err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}
	return deltas, nil
}

// IsInputError reports whether err is caused by bad input rather than I/O.
func IsInputError(err error) bool {
	return errors.Is(err, delta.ErrMalformedLine) || errors.Is(err, frequency.ErrEmptySequence)
}
