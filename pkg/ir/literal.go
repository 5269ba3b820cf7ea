package ir

import (
	"strconv"
	"strings"
)

// FormatFloat renders f the way FloatConst does in IR text: shortest
// round-tripping digits, never an exponent, at least one fractional digit.
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

// QuoteString wraps s in double quotes. A newline is written as the two
// characters \n so that every instruction stays on one line.
func QuoteString(s string) string {
	return `"` + strings.ReplaceAll(s, "\n", `\n`) + `"`
}

func unquoteString(s string) string {
	return strings.ReplaceAll(s[1:len(s)-1], `\n`, "\n")
}

// isIdentifier reports whether s can name a variable: a letter or '#'
// followed by letters and digits.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case isLetter(r):
		case r == '#' && i == 0:
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r > 0x7f
}

func isInteger(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsVarName reports whether name reads back from IR text as a reference to
// a variable called name. Identifiers spelled like a literal, such as True,
// do not.
func IsVarName(name string) bool {
	op, err := ParseOperand(name)
	if err != nil {
		return false
	}
	v, ok := op.(Var)
	return ok && v.Name == name
}
