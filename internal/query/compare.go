package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vivasaude/consultaprecos/internal/domain/entities"
)

// ComparisonStatus distinguishes the three outcomes of a comparison: a
// computed result, a request with no specialty to compare on, and a computed
// result that found no comparable professional at all. The last two render
// differently, so they must not collapse into one.
type ComparisonStatus string

const (
	ComparisonOK           ComparisonStatus = "ok"
	ComparisonNoSpecialty  ComparisonStatus = "no_specialty"
	ComparisonNoCandidates ComparisonStatus = "no_candidates"
)

// ComparisonEntry is one per-city winner. The two highlight flags are
// independent: the overall champion can also be the origin-city winner.
type ComparisonEntry struct {
	Listing           *entities.Listing `json:"listing"`
	IsOverallCheapest bool              `json:"is_overall_cheapest"`
	IsOriginCity      bool              `json:"is_origin_city"`
}

// ComparisonPage is one page of the ranked per-city cheapest list.
type ComparisonPage struct {
	Status      ComparisonStatus  `json:"status"`
	Specialty   string            `json:"specialty"`
	OriginCity  string            `json:"origin_city"`
	Entries     []ComparisonEntry `json:"entries"`
	TotalCities int               `json:"total_cities"`
	Page        int               `json:"page"`
	PageSize    int               `json:"page_size"`
	PageCount   int               `json:"page_count"`
	Window      []PageWindowEntry `json:"window"`
}

// comparisonWindowRadius matches the compact pager of the comparison panel.
const comparisonWindowRadius = 1

// CompareAcrossCities finds, among all listings whose specialty equals the
// given one (case-insensitive, exact — not substring), the cheapest listing
// per distinct city, then ranks the winners with the origin city first and
// the rest alphabetically. Listings without a doctor or without a positive
// discounted price cannot be compared and are skipped. Ties, both within a
// city and for the overall champion, keep the first-encountered listing.
func CompareAcrossCities(all []*entities.Listing, specialty, originCity string, page, pageSize int) *ComparisonPage {
	result := &ComparisonPage{
		Status:     ComparisonOK,
		Specialty:  strings.TrimSpace(specialty),
		OriginCity: strings.TrimSpace(originCity),
		Page:       page,
		PageSize:   pageSize,
	}

	if result.Specialty == "" {
		result.Status = ComparisonNoSpecialty
		result.Entries = []ComparisonEntry{}
		return result
	}

	winners := cheapestPerCity(all, result.Specialty)
	if len(winners) == 0 {
		result.Status = ComparisonNoCandidates
		result.Entries = []ComparisonEntry{}
		return result
	}

	champion := winners[0]
	for _, w := range winners[1:] {
		if *w.PriceDiscounted < *champion.PriceDiscounted {
			champion = w
		}
	}

	origin := result.OriginCity
	c := newCollator()
	sort.SliceStable(winners, func(i, j int) bool {
		iOrigin := strings.EqualFold(winners[i].City, origin)
		jOrigin := strings.EqualFold(winners[j].City, origin)
		if iOrigin != jOrigin {
			return iOrigin
		}
		return c.CompareString(winners[i].City, winners[j].City) < 0
	})

	result.TotalCities = len(winners)
	result.PageCount = PageCount(len(winners), pageSize)
	result.Window = BuildPageWindow(len(winners), page, pageSize, comparisonWindowRadius)

	pageItems := Paginate(winners, page, pageSize)
	result.Entries = make([]ComparisonEntry, 0, len(pageItems))
	for _, w := range pageItems {
		result.Entries = append(result.Entries, ComparisonEntry{
			Listing:           w,
			IsOverallCheapest: w == champion,
			IsOriginCity:      origin != "" && strings.EqualFold(w.City, origin),
		})
	}
	return result
}

// cheapestPerCity keeps, per distinct city, the comparable listing with the
// lowest discounted price. Cities are keyed by their exact stored name;
// winner order follows first encounter so the later sort stays stable.
func cheapestPerCity(all []*entities.Listing, specialty string) []*entities.Listing {
	winners := make([]*entities.Listing, 0)
	index := make(map[string]int)

	for _, l := range all {
		if !strings.EqualFold(strings.TrimSpace(l.Specialty), specialty) {
			continue
		}
		if strings.TrimSpace(l.DoctorName) == "" {
			continue
		}
		if l.PriceDiscounted == nil || *l.PriceDiscounted <= 0 {
			continue
		}

		i, seen := index[l.City]
		if !seen {
			index[l.City] = len(winners)
			winners = append(winners, l)
			continue
		}
		if *l.PriceDiscounted < *winners[i].PriceDiscounted {
			winners[i] = l
		}
	}
	return winners
}

// NormalizeCityNames lowercases and trims the given city names, removes
// duplicates and drops the origin city. Used on geolocation results before
// intersecting with snapshot cities.
func NormalizeCityNames(names []string, origin string) []string {
	originLower := strings.ToLower(strings.TrimSpace(origin))
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		name := strings.ToLower(strings.TrimSpace(n))
		if name == "" || name == originLower {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// ComparisonSummary renders a plain-text, copy-friendly summary of every
// professional of the given specialty in the given city, grouped by clinic.
// A professional with no usable price is skipped instead of producing a
// half-empty line.
func ComparisonSummary(all []*entities.Listing, specialty, city string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("*%s em %s*\n", titleCase(specialty), titleCase(city)))

	clinicOrder := make([]string, 0)
	byClinic := make(map[string][]*entities.Listing)
	for _, l := range all {
		if !strings.EqualFold(strings.TrimSpace(l.Specialty), strings.TrimSpace(specialty)) {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(l.City), strings.TrimSpace(city)) {
			continue
		}
		clinic := strings.TrimSpace(l.ClinicName)
		if clinic == "" {
			clinic = "Clínica não informada"
		}
		if _, ok := byClinic[clinic]; !ok {
			clinicOrder = append(clinicOrder, clinic)
		}
		byClinic[clinic] = append(byClinic[clinic], l)
	}

	for _, clinic := range clinicOrder {
		block := formatClinicBlock(clinic, byClinic[clinic])
		if block != "" {
			b.WriteString("\n")
			b.WriteString(block)
		}
	}

	b.WriteString("\n---\n_Valores sujeitos a alteração._")
	return b.String()
}

func formatClinicBlock(clinic string, listings []*entities.Listing) string {
	var lines []string
	for _, l := range listings {
		doctor := "Profissional"
		if name := strings.TrimSpace(l.DoctorName); name != "" {
			doctor = fmt.Sprintf("*%s*", name)
		}

		switch {
		case l.PriceOriginal != nil && l.PriceDiscounted != nil && *l.PriceOriginal > *l.PriceDiscounted:
			lines = append(lines, fmt.Sprintf("  • %s: De *R$%s* por *R$%s*", doctor, formatBRL(*l.PriceOriginal), formatBRL(*l.PriceDiscounted)))
		case l.PriceDiscounted != nil && *l.PriceDiscounted > 0:
			lines = append(lines, fmt.Sprintf("  • %s: *R$%s* com desconto", doctor, formatBRL(*l.PriceDiscounted)))
		default:
			// no usable price, skip the line entirely
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return fmt.Sprintf("🏥 *%s*\n%s\n", clinic, strings.Join(lines, "\n"))
}

// formatBRL renders a price with a comma decimal separator.
func formatBRL(v float64) string {
	return strings.ReplaceAll(fmt.Sprintf("%.2f", v), ".", ",")
}

func titleCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}
