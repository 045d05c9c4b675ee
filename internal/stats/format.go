package stats

import (
	"fmt"
	"strings"

	"github.com/suykerbuyk/chronal/internal/index"
)

// Format renders a Summary as aligned terminal output.
func Format(s Summary, input string) string {
	if s.Deltas == 0 {
		return fmt.Sprintf("chronal stats %s\n\n  No deltas found.\n", input)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "chronal stats %s\n", input)

	b.WriteString("\nDeltas\n")
	fmt.Fprintf(&b, "  %-20s %d\n", "count", s.Deltas)
	fmt.Fprintf(&b, "  %-20s %d (largest +%d)\n", "increases", s.Increases, s.LargestIncrease)
	fmt.Fprintf(&b, "  %-20s %d (largest -%d)\n", "decreases", s.Decreases, s.LargestDecrease)
	if s.Zeros > 0 {
		fmt.Fprintf(&b, "  %-20s %d\n", "zero", s.Zeros)
	}

	b.WriteString("\nOne pass\n")
	fmt.Fprintf(&b, "  %-20s %s\n", "final frequency", formatSigned(s.Total))
	fmt.Fprintf(&b, "  %-20s %s .. %s\n", "running range", formatSigned(s.MinRunning), formatSigned(s.MaxRunning))
	fmt.Fprintf(&b, "  %-20s %d\n", "distinct sums", s.Distinct)
	fmt.Fprintf(&b, "  %-20s %s\n", "repeats in pass", yesNo(s.Revisits))

	return b.String()
}

// FormatHistory renders recorded runs, newest first. total is the number of
// runs in the index, of which entries may be only the most recent.
func FormatHistory(entries []index.Entry, total int) string {
	if len(entries) == 0 {
		return "chronal history\n\n  No runs recorded. Run `chronal solve` first.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "chronal history (%d of %d runs)\n\n", len(entries), total)
	fmt.Fprintf(&b, "  %-19s  %-12s %8s %12s %12s %10s\n", "when", "input", "deltas", "part one", "part two", "steps")
	for _, e := range entries {
		fmt.Fprintf(&b, "  %-19s  %-12s %8d %12d %12d %10d\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			shortHash(e.InputHash), e.Deltas, e.PartOne, e.PartTwo, e.Steps)
	}
	return b.String()
}

func formatSigned(n int64) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
