package usecases

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/konanyao/akwaba/internal/core/domain"
	"github.com/konanyao/akwaba/internal/core/ports"
	"github.com/konanyao/akwaba/internal/pkg/metrics"
)

// VocabularyService serves the company and city lists that feed the search
// filters. Fetches are best-effort: on upstream failure it falls back to a
// fixed built-in vocabulary rather than failing the search.
type VocabularyService struct {
	api   ports.TripAPI
	cache ports.CacheService
}

// NewVocabularyService creates a VocabularyService. cache may be nil.
func NewVocabularyService(api ports.TripAPI, cache ports.CacheService) *VocabularyService {
	return &VocabularyService{api: api, cache: cache}
}

// Intercity operators shipped as the offline fallback vocabulary.
var defaultCompanies = []domain.Company{
	{Name: "UTB"},
	{Name: "AVS Transport"},
	{Name: "STL"},
	{Name: "CTE Express"},
	{Name: "GTI Voyages"},
}

// Cities served by the network, shipped as the offline fallback vocabulary.
var defaultCities = []domain.City{
	{Name: "Abidjan"},
	{Name: "Yamoussoukro"},
	{Name: "Bouaké"},
	{Name: "San-Pédro"},
	{Name: "Korhogo"},
	{Name: "Daloa"},
	{Name: "Man"},
	{Name: "Gagnoa"},
	{Name: "Abengourou"},
	{Name: "Odienné"},
}

// Companies returns the operator vocabulary, cached for 10 minutes.
func (s *VocabularyService) Companies(ctx context.Context) []domain.Company {
	const cacheKey = "vocab:companies"
	if cached, ok := cacheGet[[]domain.Company](ctx, s.cache, cacheKey); ok {
		return cached
	}

	companies, err := s.api.GetCompanies(ctx)
	if err != nil || len(companies) == 0 {
		if err != nil {
			slog.Warn("company vocabulary unavailable, using built-in list", "error", err)
		}
		return defaultCompanies
	}

	cacheSet(ctx, s.cache, cacheKey, companies, 600)
	return companies
}

// Cities returns the city vocabulary, cached for 10 minutes.
func (s *VocabularyService) Cities(ctx context.Context) []domain.City {
	const cacheKey = "vocab:cities"
	if cached, ok := cacheGet[[]domain.City](ctx, s.cache, cacheKey); ok {
		return cached
	}

	cities, err := s.api.GetAllCities(ctx)
	if err != nil || len(cities) == 0 {
		if err != nil {
			slog.Warn("city vocabulary unavailable, using built-in list", "error", err)
		}
		return defaultCities
	}

	cacheSet(ctx, s.cache, cacheKey, cities, 600)
	return cities
}

// AllRoutes returns the full published schedule, used by the browse view.
func (s *VocabularyService) AllRoutes(ctx context.Context) ([]domain.Route, error) {
	return s.api.GetAllRoutes(ctx)
}

func cacheGet[T any](ctx context.Context, cache ports.CacheService, key string) (T, bool) {
	var zero T
	if cache == nil {
		return zero, false
	}
	data, err := cache.Get(ctx, key)
	if err != nil {
		metrics.VocabularyCacheMisses.Inc()
		return zero, false
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		metrics.VocabularyCacheMisses.Inc()
		return zero, false
	}
	metrics.VocabularyCacheHits.Inc()
	return v, true
}

func cacheSet[T any](ctx context.Context, cache ports.CacheService, key string, v T, ttlSeconds int) {
	if cache == nil {
		return
	}
	if data, err := json.Marshal(v); err == nil {
		_ = cache.Set(ctx, key, data, ttlSeconds)
	}
}
