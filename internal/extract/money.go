// Package extract pulls structured facts out of free-form generated text:
// currency amounts, hotel listings, and per-option text blocks.
//
// Generated text has no guaranteed format, so nothing here returns an error.
// A miss is reported as "not found" (a false ok, or an empty slice) and the
// caller degrades accordingly.
package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// amountPattern matches a currency sigil, optional whitespace, a digit group
// that may carry "," thousands separators, and an optional two-digit fraction.
var amountPattern = regexp.MustCompile(`[$€£¥]\s*([0-9][0-9,]*)(\.[0-9]{2})?`)

// MinPrice returns the smallest currency amount found anywhere in text.
// ok is false when text contains no amount.
func MinPrice(text string) (lowest decimal.Decimal, ok bool) {
	for _, m := range amountPattern.FindAllStringSubmatch(text, -1) {
		v, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", "") + m[2])
		if err != nil {
			continue
		}
		if !ok || v.LessThan(lowest) {
			lowest, ok = v, true
		}
	}
	return lowest, ok
}

// nightlyMarkers flag a line as quoting a per-night price.
var nightlyMarkers = []string{"nightly", "/night"}

// MinNightly is MinPrice restricted to lines that look like per-night pricing.
// When no such line carries an amount it falls back to MinPrice over the
// whole text.
func MinNightly(text string) (decimal.Decimal, bool) {
	var nightly []string
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		for _, marker := range nightlyMarkers {
			if strings.Contains(lower, marker) {
				nightly = append(nightly, line)
				break
			}
		}
	}
	if v, ok := MinPrice(strings.Join(nightly, "\n")); ok {
		return v, true
	}
	return MinPrice(text)
}
