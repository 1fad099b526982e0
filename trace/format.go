package trace

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Num renders v with at most three decimals and no trailing zeros
// (12, 1.5, 0.333). Infinities render as "inf"/"-inf".
func Num(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	s := decimal.NewFromFloat(v).Round(3).String()
	if s == "-0" {
		return "0"
	}

	return s
}

// Vec renders a vector as "(1, 0, 2.5)".
func Vec(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = Num(x)
	}

	return "(" + strings.Join(parts, ", ") + ")"
}

// Line renders a single event as one human-readable line.
func Line(e Event) string {
	switch ev := e.(type) {
	case Pivot:
		return fmt.Sprintf("iter %d %s pivot: %s enters, %s leaves (row %d, ratio %s)",
			ev.Iteration, ev.Rule, ev.Entering, ev.Leaving, ev.Row+1, Num(ev.Ratio))
	case Refactor:
		return fmt.Sprintf("iter %d reinversion: %d etas -> %d", ev.Iteration, ev.EtasIn, ev.EtasOut)
	case Relaxation:
		return fmt.Sprintf("%s: LP %s, z = %s, x = %s", ev.Node, ev.Status, Num(ev.Objective), Vec(ev.X))
	case Branch:
		return fmt.Sprintf("%s: branch on x%d = %s -> %s (x%d <= %s), %s (x%d >= %s)",
			ev.Node, ev.Var+1, Num(ev.Value), ev.Left, ev.Var+1, Num(ev.Floor), ev.Right, ev.Var+1, Num(ev.Ceil))
	case Prune:
		if math.IsNaN(ev.Bound) {
			return fmt.Sprintf("%s: pruned (%s)", ev.Node, ev.Reason)
		}
		return fmt.Sprintf("%s: pruned (%s), bound %s vs incumbent %s", ev.Node, ev.Reason, Num(ev.Bound), Num(ev.Incumbent))
	case Candidate:
		return fmt.Sprintf("candidate %s at %s: z = %s, x = %s", ev.Name, ev.Node, Num(ev.Objective), Vec(ev.X))
	case IncumbentUpdated:
		return fmt.Sprintf("incumbent from %s: z = %s (was %s)", ev.Source, Num(ev.Objective), Num(ev.Previous))
	case CutAdded:
		return fmt.Sprintf("cut %d (%s, row %d): %s <= %s", ev.Seq, ev.CutKind, ev.SourceRow+1, Row(ev.Coeffs, "x"), Num(ev.RHS))
	case CutRejected:
		return fmt.Sprintf("%s cut rejected: %s", ev.CutKind, ev.Reason)
	case Stop:
		return "stop: " + ev.Reason
	default:
		return fmt.Sprintf("%s: %+v", e.Kind(), e)
	}
}

// Row renders a linear form such as "2x1 + x2 - 0.5x3"; zero terms are
// skipped and an all-zero form renders as "0".
func Row(coeffs []float64, prefix string) string {
	var sb strings.Builder
	for j, c := range coeffs {
		if c == 0 {
			continue
		}
		mag := math.Abs(c)
		switch {
		case sb.Len() == 0 && c < 0:
			sb.WriteString("-")
		case sb.Len() > 0 && c < 0:
			sb.WriteString(" - ")
		case sb.Len() > 0:
			sb.WriteString(" + ")
		}
		if mag != 1 {
			sb.WriteString(Num(mag))
		}
		fmt.Fprintf(&sb, "%s%d", prefix, j+1)
	}
	if sb.Len() == 0 {
		return "0"
	}

	return sb.String()
}

// Format writes one line per event, preceded by a header with the method
// and run id.
func Format(w io.Writer, l *Log) error {
	if _, err := fmt.Fprintf(w, "# %s run %s\n", l.Method(), l.RunID()); err != nil {
		return err
	}
	for _, e := range l.Events() {
		if _, err := io.WriteString(w, Line(e)+"\n"); err != nil {
			return err
		}
	}

	return nil
}

// String renders the whole log.
func (l *Log) String() string {
	var sb strings.Builder
	_ = Format(&sb, l)

	return sb.String()
}
