package delta

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrMalformedLine matches every parse failure.
	ErrMalformedLine = errors.New("malformed line")
	// ErrBadSign: the line does not start with '+' or '-'.
	ErrBadSign = errors.New("expected '+' or '-'")
	// ErrBadMagnitude: the text after the sign is not a base-10 int32.
	ErrBadMagnitude = errors.New("bad magnitude")
)

// LineError reports the first malformed line of an input.
type LineError struct {
	Line int // 1-based
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

// Unwrap exposes both the generic and the specific cause so callers can
// match either with errors.Is.
func (e *LineError) Unwrap() []error {
	return []error{ErrMalformedLine, e.Err}
}

// ParseString parses a newline-separated blob of deltas.
func ParseString(s string) ([]Delta, error) {
	return Parse(strings.NewReader(s))
}

// maxLine bounds a single line. Anything near it is far past an int32 anyway.
const maxLine = 1024 * 1024

// Parse reads one delta per non-empty line, preserving order.
// The first malformed line aborts the whole parse; no partial result is returned.
func Parse(r io.Reader) ([]Delta, error) {
	var deltas []Delta
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		d, err := ParseLine(line)
		if err != nil {
			return nil, &LineError{Line: lineNum, Text: line, Err: err}
		}
		deltas = append(deltas, d)
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &LineError{
				Line: lineNum + 1,
				Text: "(line too long)",
				Err:  fmt.Errorf("%w: %w", ErrBadMagnitude, err),
			}
		}
		return nil, fmt.Errorf("scan deltas: %w", err)
	}

	return deltas, nil
}

// ParseLine parses a single "+N" or "-N" line.
func ParseLine(line string) (Delta, error) {
	if line == "" {
		return Delta{}, ErrBadSign
	}

	sign := Sign(line[0])
	if sign != Increase && sign != Decrease {
		return Delta{}, ErrBadSign
	}

	// ParseUint rejects a second sign, so "++5" and "+-5" fail here.
	n, err := strconv.ParseUint(line[1:], 10, 32)
	if err != nil {
		return Delta{}, fmt.Errorf("%w: %w", ErrBadMagnitude, err)
	}
	if n > math.MaxInt32 {
		return Delta{}, fmt.Errorf("%w: %d exceeds int32", ErrBadMagnitude, n)
	}

	return Delta{Sign: sign, Magnitude: int64(n)}, nil
}

// Render writes deltas in canonical form, one per line, with a trailing newline.
func Render(deltas []Delta) string {
	var b strings.Builder
	for _, d := range deltas {
		b.WriteString(d.String())
		b.WriteByte('\n')
	}
	return b.String()
}
