package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/konanyao/akwaba/internal/core/domain"
)

// SearchTrips implements ports.TripAPI.
func (c *Client) SearchTrips(ctx context.Context, q domain.SearchQuery) (*domain.SearchResults, error) {
	env, err := c.doJSON(ctx, "search_trips", http.MethodPost, "/trips/search", "", q)
	if err != nil {
		return nil, err
	}

	var data struct {
		Outbound []domain.Route `json:"outbound"`
		Return   []domain.Route `json:"return"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("search_trips: decode data: %w", err)
	}
	return &domain.SearchResults{Query: q, Outbound: data.Outbound, Return: data.Return}, nil
}

// GetCompanies implements ports.TripAPI. The endpoint historically returned
// either bare names or objects, so entries decode through CompanyRef.
func (c *Client) GetCompanies(ctx context.Context) ([]domain.Company, error) {
	env, err := c.doJSON(ctx, "get_companies", http.MethodGet, "/companies", "", nil)
	if err != nil {
		return nil, err
	}

	var refs []domain.CompanyRef
	if err := json.Unmarshal(env.Data, &refs); err != nil {
		return nil, fmt.Errorf("get_companies: decode data: %w", err)
	}
	companies := make([]domain.Company, 0, len(refs))
	for _, ref := range refs {
		if ref.Name != "" {
			companies = append(companies, domain.Company{Name: ref.Name})
		}
	}
	return companies, nil
}

// GetAllCities implements ports.TripAPI.
func (c *Client) GetAllCities(ctx context.Context) ([]domain.City, error) {
	env, err := c.doJSON(ctx, "get_cities", http.MethodGet, "/cities", "", nil)
	if err != nil {
		return nil, err
	}

	var cities []domain.City
	if err := json.Unmarshal(env.Data, &cities); err != nil {
		return nil, fmt.Errorf("get_cities: decode data: %w", err)
	}
	return cities, nil
}

// GetAllRoutes implements ports.TripAPI.
func (c *Client) GetAllRoutes(ctx context.Context) ([]domain.Route, error) {
	env, err := c.doJSON(ctx, "get_routes", http.MethodGet, "/routes", "", nil)
	if err != nil {
		return nil, err
	}

	var routes []domain.Route
	if err := json.Unmarshal(env.Data, &routes); err != nil {
		return nil, fmt.Errorf("get_routes: decode data: %w", err)
	}
	return routes, nil
}
