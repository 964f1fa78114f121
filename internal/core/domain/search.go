package domain

import (
	"strconv"
	"strings"
)

// FilterAll is the sentinel a UI sends for "no constraint". It is stripped
// from outgoing requests and treated as pass-through in local filters.
const FilterAll = "all"

// Price band thresholds in CFA francs. Fixed policy, no configuration surface.
const (
	PriceBandLowMax    = 15000.0
	PriceBandMediumMax = 30000.0
)

// SearchPageSize is the fixed page size of the route listing.
const SearchPageSize = 10

// SearchParams is the raw, unnormalized user input of a trip search.
type SearchParams struct {
	From          string `json:"from"`
	To            string `json:"to"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate,omitempty"`
	Passengers    string `json:"passengers,omitempty"`
	DepartureTime string `json:"departureTime,omitempty"`
	CompanyName   string `json:"companyName,omitempty"`
}

// SearchQuery is the normalized request forwarded upstream. Optional fields
// are present only when the user explicitly narrowed them; the "all"
// sentinel is never forwarded.
type SearchQuery struct {
	From          string `json:"from"`
	To            string `json:"to"`
	DepartureDate string `json:"departureDate"`
	Passengers    int    `json:"passengers"`
	ReturnDate    string `json:"returnDate,omitempty"`
	DepartureTime string `json:"departureTime,omitempty"`
	CompanyName   string `json:"companyName,omitempty"`
}

// NormalizeSearchParams builds a SearchQuery from raw input, stripping the
// "all" sentinel and placeholder defaults. Passengers defaults to 1 when
// absent or unparseable.
func NormalizeSearchParams(raw SearchParams) SearchQuery {
	q := SearchQuery{
		From:          strings.TrimSpace(raw.From),
		To:            strings.TrimSpace(raw.To),
		DepartureDate: strings.TrimSpace(raw.DepartureDate),
		Passengers:    1,
	}
	if n, err := strconv.Atoi(strings.TrimSpace(raw.Passengers)); err == nil && n >= 1 {
		q.Passengers = n
	}
	if v := normalizeOptional(raw.ReturnDate); v != "" {
		q.ReturnDate = v
	}
	if v := normalizeOptional(raw.DepartureTime); v != "" {
		q.DepartureTime = v
	}
	if v := normalizeOptional(raw.CompanyName); v != "" {
		q.CompanyName = v
	}
	return q
}

// normalizeOptional drops the sentinel and the placeholder defaults some
// older UI builds submit verbatim.
func normalizeOptional(v string) string {
	v = strings.TrimSpace(v)
	switch strings.ToLower(v) {
	case "", FilterAll, "select", "any", "toutes", "tous":
		return ""
	}
	return v
}

// FilterCriteria is the set of independent client-side refinements applied
// to an already-fetched result set. Empty or "all" means no constraint;
// non-default predicates compose with logical AND.
type FilterCriteria struct {
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
	Date      string `json:"date,omitempty"`     // YYYY-MM-DD, exact calendar date
	TimeBand  string `json:"timeBand,omitempty"` // morning, afternoon, evening, night
	Company   string `json:"company,omitempty"`
	PriceBand string `json:"priceBand,omitempty"` // low, medium, high
	Amenity   string `json:"amenity,omitempty"`   // wifi, power, air-conditioning
}

// IsZero reports whether no predicate is set.
func (c FilterCriteria) IsZero() bool {
	return !isSet(c.From) && !isSet(c.To) && !isSet(c.Date) && !isSet(c.TimeBand) &&
		!isSet(c.Company) && !isSet(c.PriceBand) && !isSet(c.Amenity)
}

func isSet(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, FilterAll)
}

// SearchResults is one fetched result set: the outbound routes and, for a
// round trip, the return routes.
type SearchResults struct {
	Query    SearchQuery `json:"query"`
	Outbound []Route     `json:"outbound"`
	Return   []Route     `json:"return,omitempty"`
}

// RouteGroup is one date heading of the grouped listing.
type RouteGroup struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Routes []Route `json:"routes"`
}
