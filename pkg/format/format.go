// Package format renders stored values into the human-readable forms the
// API returns: binary byte counts and pretty dates.
package format

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	kib = 1024
	mib = 1024 * kib
	gib = 1024 * mib
)

// datePretty is the fixed date form used across API responses.
const datePretty = "January 2, 2006"

// Bytes renders a byte count with binary thresholds and two-decimal
// rounding: 500 -> "500 B", 2048 -> "2 KB", 5242880 -> "5 MB".
func Bytes(n int64) string {
	switch {
	case n >= gib:
		return round2(float64(n)/gib) + " GB"
	case n >= mib:
		return round2(float64(n)/mib) + " MB"
	case n >= kib:
		return round2(float64(n)/kib) + " KB"
	default:
		return strconv.FormatInt(n, 10) + " B"
	}
}

// round2 rounds to two decimals and drops trailing zeros, so 2.00
// renders as "2" and 1.50 as "1.5".
func round2(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// AbsoluteURL resolves a stored reference path against base. Values
// that are already absolute come back untouched, so re-transforming a
// composed row never double-prefixes.
func AbsoluteURL(base, ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(ref, "/")
}

// Date renders a timestamp in the fixed response form.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(datePretty)
}
