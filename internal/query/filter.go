// Package query implements the in-memory listing engine: filtering, sorting,
// pagination and the per-city price comparison. Every operation is a pure
// transformation over an immutable snapshot; nothing here mutates its input
// or touches I/O.
package query

import (
	"math"
	"strings"

	"github.com/vivasaude/consultaprecos/internal/domain/entities"
	"github.com/vivasaude/consultaprecos/internal/query/pricing"
)

// Criteria holds the search filters. All fields are optional; the zero value
// matches everything. Text filters are case-insensitive substring matches.
// MaxPrice of zero or less means no upper bound, mirroring how an empty or
// zero form field behaves in the search UI.
type Criteria struct {
	City         string
	NameOrClinic string
	Specialty    string
	MinPrice     float64
	MaxPrice     float64
}

// IsZero reports whether the criteria constrain nothing.
func (c Criteria) IsZero() bool {
	return strings.TrimSpace(c.City) == "" &&
		strings.TrimSpace(c.NameOrClinic) == "" &&
		strings.TrimSpace(c.Specialty) == "" &&
		c.MinPrice <= 0 && c.MaxPrice <= 0
}

// Filter returns the listings matching every criterion, in input order. A
// listing without a city never matches a non-empty city filter. A listing
// without a discounted price filters as price 0, so any MinPrice above zero
// excludes it.
func Filter(listings []*entities.Listing, c Criteria) []*entities.Listing {
	city := strings.ToLower(strings.TrimSpace(c.City))
	name := strings.ToLower(strings.TrimSpace(c.NameOrClinic))
	specialty := strings.ToLower(strings.TrimSpace(c.Specialty))

	minPrice := c.MinPrice
	if minPrice < 0 {
		minPrice = 0
	}
	maxPrice := c.MaxPrice
	if maxPrice <= 0 {
		maxPrice = math.Inf(1)
	}

	out := make([]*entities.Listing, 0, len(listings))
	for _, l := range listings {
		if city != "" && !strings.Contains(strings.ToLower(l.City), city) {
			continue
		}
		if name != "" &&
			!strings.Contains(strings.ToLower(l.DoctorName), name) &&
			!strings.Contains(strings.ToLower(l.ClinicName), name) {
			continue
		}
		if specialty != "" && !strings.Contains(strings.ToLower(l.Specialty), specialty) {
			continue
		}
		price := pricing.AmountOf(l.PriceDiscounted)
		if price < minPrice || price > maxPrice {
			continue
		}
		out = append(out, l)
	}
	return out
}
