package model

import (
	"strconv"
	"strings"
)

// Canonical renders the model in slack form, one line per equation:
//
//	z - 3x1 - 2x2 = 0
//	c1: x1 + x2 + s1 = 4
//
// For Minimize the objective line is written for −z so that every line
// reads as a maximization tableau row.
func (m *LinearModel) Canonical() string {
	var sb strings.Builder
	n := m.N()
	sign := m.Sense.Sign()

	sb.WriteString("z")
	var i, j int
	for j = 0; j < n; j++ {
		if m.Objective[j] != 0 {
			writeTerm(&sb, -sign*m.Objective[j], "x"+strconv.Itoa(j+1), false)
		}
	}
	sb.WriteString(" = 0\n")

	for i = range m.Rows {
		sb.WriteString("c" + strconv.Itoa(i+1) + ":")
		first := true
		for j = 0; j < n; j++ {
			if m.Rows[i][j] == 0 {
				continue
			}
			writeTerm(&sb, m.Rows[i][j], "x"+strconv.Itoa(j+1), first)
			first = false
		}
		writeTerm(&sb, 1, "s"+strconv.Itoa(i+1), first)
		sb.WriteString(" = " + strconv.FormatFloat(m.RHS[i], 'g', -1, 64) + "\n")
	}

	return sb.String()
}

// writeTerm appends " + 3x1", " - x2" or, for the first term, " 3x1".
func writeTerm(sb *strings.Builder, coef float64, name string, first bool) {
	switch {
	case first && coef < 0:
		sb.WriteString(" -")
		coef = -coef
	case first:
		sb.WriteString(" ")
	case coef < 0:
		sb.WriteString(" - ")
		coef = -coef
	default:
		sb.WriteString(" + ")
	}
	if coef != 1 {
		sb.WriteString(strconv.FormatFloat(coef, 'g', -1, 64))
	}
	sb.WriteString(name)
}
