package delta

import "strconv"

// Sign is the textual prefix of a delta line.
type Sign byte

const (
	Increase Sign = '+'
	Decrease Sign = '-'
)

// Delta is one signed change to the running frequency.
// The sign is kept separate from the magnitude so "-0" and "+0" keep their
// textual sign when rendered back in canonical form.
// Magnitude is never negative.
type Delta struct {
	Sign      Sign
	Magnitude int64
}

// Inc returns an Increase delta of n. It panics if n is negative.
func Inc(n int64) Delta { return newDelta(Increase, n) }

// Dec returns a Decrease delta of n. It panics if n is negative.
func Dec(n int64) Delta { return newDelta(Decrease, n) }

func newDelta(s Sign, n int64) Delta {
	if n < 0 {
		panic("delta: negative magnitude " + strconv.FormatInt(n, 10))
	}
	return Delta{Sign: s, Magnitude: n}
}

// Value collapses the delta to a signed integer.
func (d Delta) Value() int64 {
	if d.Sign == Decrease {
		return -d.Magnitude
	}
	return d.Magnitude
}

// String renders the canonical "+N" / "-N" line form, without leading zeros.
func (d Delta) String() string {
	return string(rune(d.Sign)) + strconv.FormatInt(d.Magnitude, 10)
}
