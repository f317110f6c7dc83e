package query

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/vivasaude/consultaprecos/internal/domain/entities"
	"github.com/vivasaude/consultaprecos/internal/query/pricing"
)

// SortMode selects the ordering applied after filtering.
type SortMode string

const (
	SortDefault   SortMode = "default"
	SortPriceAsc  SortMode = "price_asc"
	SortPriceDesc SortMode = "price_desc"
	SortNameAsc   SortMode = "name_asc"
)

// ParseSortMode maps a query-string value to a SortMode, defaulting to
// SortDefault for anything unknown.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortPriceAsc, SortPriceDesc, SortNameAsc:
		return SortMode(s)
	default:
		return SortDefault
	}
}

// newCollator returns a collator for listing text. Collators carry internal
// buffers and are not safe for concurrent use, so each operation gets its
// own.
func newCollator() *collate.Collator {
	return collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
}

// Sort returns a new slice ordered by the given mode. Sorting is stable:
// listings with equal keys keep their relative input order. SortDefault
// returns a copy in input order. Missing prices sort as 0 and missing clinic
// names as the empty string.
func Sort(listings []*entities.Listing, mode SortMode) []*entities.Listing {
	out := make([]*entities.Listing, len(listings))
	copy(out, listings)

	switch mode {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return pricing.AmountOf(out[i].PriceDiscounted) < pricing.AmountOf(out[j].PriceDiscounted)
		})
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return pricing.AmountOf(out[i].PriceDiscounted) > pricing.AmountOf(out[j].PriceDiscounted)
		})
	case SortNameAsc:
		c := newCollator()
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].ClinicName, out[j].ClinicName) < 0
		})
	}

	return out
}
