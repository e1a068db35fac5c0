// Package core provides money parsing and handling utilities.
//
// Amounts are kept as the text the user typed. This file turns that text into
// numbers when arithmetic is needed: floats for goal progress and
// contributions, cents for totals.
package core

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Money is an amount in cents.
type Money struct {
	Cents int64
}

// dotThousands matches integers grouped with dots, such as 5.000 or
// 1.000.000.
var dotThousands = regexp.MustCompile(`^[+-]?\d{1,3}(\.\d{3})+$`)

// normalizeDecimal strips an optional currency prefix and converts the
// accepted separator styles to a plain dot decimal:
//
//	"12.34"       -> "12.34"
//	"12,34"       -> "12.34"
//	"R$ 1.234,56" -> "1234.56"
//	"5.000"       -> "5000"
//	"1.000.000"   -> "1000000"
func normalizeDecimal(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	switch {
	case strings.Contains(s, ","):
		// Dots are thousands separators when a decimal comma is present.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case dotThousands.MatchString(s):
		// Without a comma, a dot followed by exactly three digits groups
		// thousands.
		s = strings.ReplaceAll(s, ".", "")
	}
	return s
}

// ParseAmount parses user-entered amount text as a float.
//
// Examples:
//
//	ParseAmount("50")       -> 50, nil
//	ParseAmount("12,5")     -> 12.5, nil
//	ParseAmount("1.234,56") -> 1234.56, nil
//	ParseAmount("5.000")    -> 5000, nil
//	ParseAmount("abc")      -> 0, ErrInvalidAmount
func ParseAmount(s string) (float64, error) {
	s = normalizeDecimal(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// ParseDecimalToCents converts a decimal string to cents with proper rounding.
//
// It accepts the same separator styles as ParseAmount and performs half-up
// rounding on the third decimal place. Negative and zero amounts are rejected.
//
// Examples:
//
//	ParseDecimalToCents("12.34")   -> 1234, nil
//	ParseDecimalToCents("12,34")   -> 1234, nil
//	ParseDecimalToCents("12.3456") -> 1235, nil
//	ParseDecimalToCents("12.345")  -> 1234500, nil
func ParseDecimalToCents(s string) (int64, error) {
	s = normalizeDecimal(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}

// Units returns the amount as a float64 for display purposes.
func (m Money) Units() float64 {
	return float64(m.Cents) / 100.0
}

// String formats the amount with a dot decimal and two places.
func (m Money) String() string {
	return strconv.FormatFloat(m.Units(), 'f', 2, 64)
}
