package core

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// leadingNumber matches the longest numeric prefix a lenient parser accepts.
var leadingNumber = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// ParseAmount reads a monetary amount from free text.
//
// Leading whitespace is ignored and only the numeric prefix is used, so
// "12.50 USD" yields 12.5. Anything without a numeric prefix, or whose value
// overflows to infinity, yields NaN rather than an error: callers decide
// whether an unreadable amount is acceptable.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	m := leadingNumber.FindString(s)
	if m == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || !IsFinite(v) {
		return math.NaN()
	}
	return v
}

// ParseStrictAmount reads an amount typed into a numeric field. Surrounding
// whitespace is ignored but the whole value must be a finite number;
// anything else yields NaN.
func ParseStrictAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !IsFinite(v) {
		return math.NaN()
	}
	return v
}

// FormatAmount renders an amount with a dollar sign and two decimals.
// NaN renders as "$NaN".
func FormatAmount(a float64) string {
	return "$" + strconv.FormatFloat(a, 'f', 2, 64)
}
