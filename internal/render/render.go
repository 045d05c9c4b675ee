// Package render presents solve results as text, JSON or YAML.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/suykerbuyk/chronal/internal/solve"
)

// ErrUnknownFormat is returned for an output format other than text, json or yaml.
var ErrUnknownFormat = errors.New("unknown output format")

// Format selects an output encoding.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat validates a format name. Empty means Text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return Text, nil
	case Text, JSON, YAML:
		return f, nil
	default:
		return "", fmt.Errorf("%w %q (want text, json or yaml)", ErrUnknownFormat, s)
	}
}

// Result is a solved input together with where it came from.
type Result struct {
	Input  string       `json:"input" yaml:"input"`
	Cached bool         `json:"cached" yaml:"cached"`
	Answer solve.Answer `json:"answer" yaml:"answer"`
}

// Answer writes both parts of r.
func Answer(w io.Writer, f Format, r Result) error {
	if f == Text {
		_, err := fmt.Fprintf(w, "Part One: %d\nPart Two: %d\n", r.Answer.PartOne, r.Answer.PartTwo)
		return err
	}
	return Value(w, f, r)
}

// Single writes one labelled number; text output is the bare number.
func Single(w io.Writer, f Format, key string, n int64) error {
	if f == Text {
		_, err := fmt.Fprintf(w, "%d\n", n)
		return err
	}
	return Value(w, f, map[string]int64{key: n})
}

// Value encodes v as JSON or YAML. Text is not supported.
func Value(w io.Writer, f Format, v any) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w %q for structured value", ErrUnknownFormat, f)
	}
}
