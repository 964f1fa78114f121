package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/konanyao/akwaba/internal/core/domain"
	"github.com/konanyao/akwaba/internal/core/ports"
	"github.com/konanyao/akwaba/internal/pkg/metrics"
)

// SearchService builds search requests, excludes departed trips, and applies
// the client-side filter, sort, group, and pagination transforms over the
// last-fetched result set.
//
// Each issued search carries a monotonically increasing sequence number. A
// response is committed only while its sequence is still the latest, so a
// slow response can never overwrite the results of a newer search.
type SearchService struct {
	api ports.TripAPI
	loc *time.Location
	now func() time.Time

	seq atomic.Uint64

	mu       sync.Mutex
	results  *domain.SearchResults
	criteria domain.FilterCriteria
	page     int
}

// ErrSearchSuperseded marks a response that arrived after a newer search was
// issued. The response is discarded, not applied.
var ErrSearchSuperseded = fmt.Errorf("search superseded by a newer request")

// NewSearchService creates a SearchService. loc is the timezone used for
// all calendar-day comparisons; nil means time.Local.
func NewSearchService(api ports.TripAPI, loc *time.Location) *SearchService {
	if loc == nil {
		loc = time.Local
	}
	return &SearchService{api: api, loc: loc, now: time.Now, page: 1}
}

// Search normalizes raw parameters, fetches routes upstream, drops already
// departed trips from both result sets, and commits the outcome as the
// current result set unless a newer search superseded this one meanwhile.
// A committed search resets filters and pagination.
func (s *SearchService) Search(ctx context.Context, raw domain.SearchParams) (*domain.SearchResults, error) {
	q := domain.NormalizeSearchParams(raw)
	if q.From == "" || q.To == "" || q.DepartureDate == "" {
		return nil, fmt.Errorf("from, to, and departure date are required")
	}

	seq := s.seq.Add(1)
	metrics.SearchesIssued.Inc()

	res, err := s.api.SearchTrips(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search trips: %w", err)
	}

	now := s.now()
	res.Query = q
	res.Outbound = ApplyTemporalExclusion(res.Outbound, now, s.loc)
	res.Return = ApplyTemporalExclusion(res.Return, now, s.loc)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq.Load() {
		metrics.StaleSearchesDiscarded.Inc()
		slog.Debug("discarding stale search response",
			"seq", seq, "latest", s.seq.Load())
		return nil, ErrSearchSuperseded
	}
	s.results = res
	s.criteria = domain.FilterCriteria{}
	s.page = 1
	return res, nil
}

// Results returns the current committed result set, or nil before the first
// successful search.
func (s *SearchService) Results() *domain.SearchResults {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

// SetCriteria replaces the active filter criteria. Any criteria change
// resets the current page to 1.
func (s *SearchService) SetCriteria(c domain.FilterCriteria) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = c
	s.page = 1
}

// Criteria returns the active filter criteria.
func (s *SearchService) Criteria() domain.FilterCriteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// SetPage moves the listing to the given 1-based page, clamped to range.
func (s *SearchService) SetPage(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 1 {
		n = 1
	}
	s.page = n
}

// Listing applies the active criteria to the committed outbound set and
// returns the current page, the page number, and the page count.
func (s *SearchService) Listing() (routes []domain.Route, page, pages int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.results == nil {
		return nil, 1, 0
	}
	filtered := SortRoutes(FilterRoutes(s.results.Outbound, s.criteria, s.loc))
	pages = PageCount(len(filtered))
	page = s.page
	if pages > 0 && page > pages {
		page = pages
	}
	return Page(filtered, page), page, pages
}

// Grouped applies the active criteria and returns the outbound routes
// grouped by calendar date, ascending.
func (s *SearchService) Grouped() []domain.RouteGroup {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.results == nil {
		return nil
	}
	return GroupByDate(FilterRoutes(s.results.Outbound, s.criteria, s.loc))
}

// ApplyTemporalExclusion retains a route iff its departure date is strictly
// after the current calendar day, or it departs today strictly after now.
// Routes whose date cannot be parsed are dropped.
func ApplyTemporalExclusion(routes []domain.Route, now time.Time, loc *time.Location) []domain.Route {
	if loc == nil {
		loc = time.Local
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	kept := make([]domain.Route, 0, len(routes))
	for _, r := range routes {
		day, err := r.DepartureDay(loc)
		if err != nil {
			metrics.DepartedRoutesExcluded.Inc()
			continue
		}
		if day.After(today) {
			kept = append(kept, r)
			continue
		}
		if day.Equal(today) {
			at, err := r.DepartureAt(loc)
			if err == nil && at.After(now) {
				kept = append(kept, r)
				continue
			}
		}
		metrics.DepartedRoutesExcluded.Inc()
	}
	return kept
}

// FilterRoutes evaluates every set predicate independently and keeps the
// routes passing all of them. Unset predicates always pass, so filtering is
// idempotent and an all-default criteria is the identity.
func FilterRoutes(routes []domain.Route, c domain.FilterCriteria, loc *time.Location) []domain.Route {
	if c.IsZero() {
		out := make([]domain.Route, len(routes))
		copy(out, routes)
		return out
	}
	out := make([]domain.Route, 0, len(routes))
	for _, r := range routes {
		if !matchCity(r.From.Name, c.From) {
			continue
		}
		if !matchCity(r.To.Name, c.To) {
			continue
		}
		if !matchDate(r, c.Date) {
			continue
		}
		if !matchTimeBand(r.DepartureTime, c.TimeBand) {
			continue
		}
		if !matchCity(r.CompanyName.Name, c.Company) {
			continue
		}
		if !matchPriceBand(r.Price, c.PriceBand) {
			continue
		}
		if !matchAmenity(r, c.Amenity) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func unset(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, domain.FilterAll)
}

// matchCity is a case-insensitive substring match against the resolved
// display name. It also serves the company predicate.
func matchCity(name, want string) bool {
	if unset(want) {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(strings.TrimSpace(want)))
}

// matchDate compares calendar dates only, ignoring any time-of-day suffix.
func matchDate(r domain.Route, want string) bool {
	if unset(want) {
		return true
	}
	want = strings.TrimSpace(want)
	if len(want) > 10 {
		want = want[:10]
	}
	have := strings.TrimSpace(r.DepartureDate)
	if len(have) > 10 {
		have = have[:10]
	}
	return have == want
}

// matchTimeBand buckets the departure hour: morning [6,12), afternoon
// [12,18), evening [18,24), night [0,6).
func matchTimeBand(depTime, band string) bool {
	if unset(band) {
		return true
	}
	hh, _, ok := strings.Cut(strings.TrimSpace(depTime), ":")
	if !ok {
		return false
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(band)) {
	case "morning":
		return hour >= 6 && hour < 12
	case "afternoon":
		return hour >= 12 && hour < 18
	case "evening":
		return hour >= 18
	case "night":
		return hour < 6
	}
	return false
}

// matchPriceBand buckets the fare: low <= 15000, medium (15000,30000],
// high > 30000 CFA.
func matchPriceBand(price float64, band string) bool {
	if unset(band) {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(band)) {
	case "low":
		return price <= domain.PriceBandLowMax
	case "medium":
		return price > domain.PriceBandLowMax && price <= domain.PriceBandMediumMax
	case "high":
		return price > domain.PriceBandMediumMax
	}
	return false
}

func matchAmenity(r domain.Route, tag string) bool {
	if unset(tag) {
		return true
	}
	return r.HasAmenity(tag)
}

// SortRoutes orders routes ascending by departure date, ties broken by the
// HH:MM time string. Zero-padded 24h times sort correctly as text. The sort
// is stable and does not mutate its input.
func SortRoutes(routes []domain.Route) []domain.Route {
	out := make([]domain.Route, len(routes))
	copy(out, routes)
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := dayKey(out[i]), dayKey(out[j])
		if di != dj {
			return di < dj
		}
		return out[i].DepartureTime < out[j].DepartureTime
	})
	return out
}

func dayKey(r domain.Route) string {
	d := strings.TrimSpace(r.DepartureDate)
	if len(d) > 10 {
		d = d[:10]
	}
	return d
}

// GroupByDate partitions routes under ISO-date headings, ascending, with
// each group's routes sorted by departure time. The union of all groups is
// exactly the input set.
func GroupByDate(routes []domain.Route) []domain.RouteGroup {
	sorted := SortRoutes(routes)
	var groups []domain.RouteGroup
	for _, r := range sorted {
		key := dayKey(r)
		if n := len(groups); n > 0 && groups[n-1].Date == key {
			groups[n-1].Routes = append(groups[n-1].Routes, r)
			continue
		}
		groups = append(groups, domain.RouteGroup{Date: key, Routes: []domain.Route{r}})
	}
	return groups
}

// PageCount is ceil(total / page size).
func PageCount(total int) int {
	return (total + domain.SearchPageSize - 1) / domain.SearchPageSize
}

// Page returns the 1-based page slice of routes.
func Page(routes []domain.Route, page int) []domain.Route {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * domain.SearchPageSize
	if start >= len(routes) {
		return nil
	}
	end := start + domain.SearchPageSize
	if end > len(routes) {
		end = len(routes)
	}
	return routes[start:end]
}
