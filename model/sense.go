package model

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/lvlp/tolerance"
)

// Sense is the objective direction.
type Sense int

const (
	// Maximize c·x.
	Maximize Sense = iota
	// Minimize c·x.
	Minimize
)

// String returns "max" or "min".
func (s Sense) String() string {
	switch s {
	case Maximize:
		return "max"
	case Minimize:
		return "min"
	default:
		return fmt.Sprintf("Sense(%d)", int(s))
	}
}

// Valid reports whether s is Maximize or Minimize.
func (s Sense) Valid() bool { return s == Maximize || s == Minimize }

// Sign is +1 for Maximize and −1 for Minimize. Solvers maximize internally
// and multiply costs, objectives and duals by Sign at the boundary.
func (s Sense) Sign() float64 {
	if s == Minimize {
		return -1
	}

	return 1
}

// Worst is the objective value every real solution beats: −Inf for
// Maximize, +Inf for Minimize.
func (s Sense) Worst() float64 { return math.Inf(-int(s.Sign())) }

// Better reports whether a beats b by more than tolerance.Improvement in
// this direction.
func (s Sense) Better(a, b float64) bool {
	if s == Minimize {
		return a < b-tolerance.Improvement
	}

	return a > b+tolerance.Improvement
}

// MarshalText implements encoding.TextMarshaler.
func (s Sense) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, ErrInvalidSense
	}

	return []byte(s.String()), nil
}

// UnmarshalText accepts "max"/"maximize" and "min"/"minimize", any case.
func (s *Sense) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "max", "maximize":
		*s = Maximize
	case "min", "minimize":
		*s = Minimize
	default:
		return fmt.Errorf("%q: %w", string(b), ErrInvalidSense)
	}

	return nil
}
