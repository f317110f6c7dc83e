// Package pricing normalizes the heterogeneous price text found in listing
// data. Values arrive with either a comma or a dot as the decimal separator
// and are frequently missing altogether.
//
// Two contracts coexist on purpose. Amount is filter-safe: it always returns
// a usable number, degrading to 0, so filters and sorts keep a total order.
// Value is comparison-safe: it reports absence instead, so the cheapest-per-
// city ranking can exclude priceless listings rather than treat them as
// costing nothing.
package pricing

import (
	"strconv"
	"strings"
)

// Amount parses raw into a price, returning 0 for empty or unparseable
// input. Never returns NaN.
func Amount(raw string) float64 {
	v, ok := Value(raw)
	if !ok {
		return 0
	}
	return v
}

// Value parses raw into a price, reporting ok=false for empty or
// unparseable input.
func Value(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// AmountOf is the filter-safe read of an optional price field: nil is 0.
func AmountOf(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
