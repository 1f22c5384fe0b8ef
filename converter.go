// Copyright (c) 2026 Snowflake Computing Inc. All rights reserved.

package gohive

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// The numeric parsers below are deliberately permissive. They read the longest numeric prefix of the text
// and ignore the rest, so "42abc" is 42 and "abc" is 0. Rows from the service are never rejected because
// of a bad number.

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

// scanDigits reads a run of digits starting at i. A single underscore between two digits is a separator and
// is dropped. It returns the digits and the index after them.
func scanDigits(s string, i int) (string, int) {
	var b strings.Builder
	for i < len(s) {
		c := s[i]
		if isDigit(c) {
			b.WriteByte(c)
			i++
			continue
		}
		if c == '_' && b.Len() > 0 && i+1 < len(s) && isDigit(s[i+1]) {
			i++
			continue
		}
		break
	}
	return b.String(), i
}

func scanSign(s string, i int) (string, int) {
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		return s[i : i+1], i + 1
	}
	return "", i
}

// leadingInt64 parses the leading integer of s. Out of range values saturate at the int64 limits.
func leadingInt64(s string) int64 {
	i := skipSpace(s, 0)
	sign, i := scanSign(s, i)
	digits, _ := scanDigits(s, i)
	if digits == "" {
		return 0
	}
	// ParseInt returns the clamped value together with ErrRange on overflow.
	v, _ := strconv.ParseInt(sign+digits, 10, 64)
	return v
}

// leadingFloat64 parses the leading decimal number of s, with an optional fraction and exponent.
func leadingFloat64(s string) float64 {
	i := skipSpace(s, 0)
	sign, i := scanSign(s, i)
	intPart, i := scanDigits(s, i)

	var frac string
	if i < len(s) && s[i] == '.' {
		var j int
		frac, j = scanDigits(s, i+1)
		if frac != "" {
			i = j
		}
	}
	if intPart == "" && frac == "" {
		return 0
	}

	var b strings.Builder
	b.WriteString(sign)
	if intPart == "" {
		b.WriteByte('0')
	}
	b.WriteString(intPart)
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		expSign, j := scanSign(s, i+1)
		if exp, _ := scanDigits(s, j); exp != "" {
			b.WriteByte('e')
			b.WriteString(expSign)
			b.WriteString(exp)
		}
	}
	// ParseFloat returns +-Inf together with ErrRange for huge exponents.
	v, _ := strconv.ParseFloat(b.String(), 64)
	return v
}

// formatValue renders a coerced value for delimited output.
func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return formatFloat(v)
	}
	return fmt.Sprint(v)
}

// formatFloat always prints a fractional part and switches to exponent form outside [1e-4, 1e16).
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	pos := strings.IndexByte(sci, 'e')
	mantissa, expStr := sci[:pos], sci[pos+1:]
	exp, _ := strconv.Atoi(expStr)

	if exp < -4 || exp >= 16 {
		if !strings.Contains(mantissa, ".") {
			mantissa += ".0"
		}
		expSign := byte('+')
		if exp < 0 {
			expSign = '-'
			exp = -exp
		}
		return fmt.Sprintf("%se%c%02d", mantissa, expSign, exp)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
