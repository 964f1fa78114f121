package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/konanyao/akwaba/internal/core/domain"
	"github.com/konanyao/akwaba/internal/core/usecases"
)

// SearchHandler issues a trip search and returns the committed result set.
// When the search was superseded by a newer one mid-flight, the newer
// committed results are returned instead of the stale response.
func SearchHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var params domain.SearchParams
		if err := c.BodyParser(&params); err != nil {
			return errBadRequest(c, "invalid search payload")
		}

		results, err := deps.Search.Search(c.UserContext(), params)
		if err != nil {
			if errors.Is(err, usecases.ErrSearchSuperseded) {
				return c.JSON(deps.Search.Results())
			}
			return mapDomainError(c, err)
		}
		return c.JSON(results)
	}
}

// SetFiltersHandler replaces the active filter criteria and returns the
// refreshed first page. Filtering is a pure transform over the last-fetched
// set; nothing is re-fetched.
func SetFiltersHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var criteria domain.FilterCriteria
		if err := c.BodyParser(&criteria); err != nil {
			return errBadRequest(c, "invalid filter payload")
		}
		deps.Search.SetCriteria(criteria)
		return listingJSON(c, deps)
	}
}

// ListingHandler returns the current page of the filtered, sorted listing.
func ListingHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if page := c.QueryInt("page", 0); page > 0 {
			deps.Search.SetPage(page)
		}
		return listingJSON(c, deps)
	}
}

func listingJSON(c *fiber.Ctx, deps *Dependencies) error {
	routes, page, pages := deps.Search.Listing()
	return c.JSON(fiber.Map{
		"routes": routes,
		"page":   page,
		"pages":  pages,
	})
}

// GroupedHandler returns the filtered outbound routes grouped under
// ascending date headings.
func GroupedHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"groups": deps.Search.Grouped()})
	}
}

// CompaniesHandler returns the operator filter vocabulary.
func CompaniesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Cache-Control", "public, max-age=300")
		return c.JSON(fiber.Map{"companies": deps.Vocabularies.Companies(c.UserContext())})
	}
}

// CitiesHandler returns the city filter vocabulary.
func CitiesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Cache-Control", "public, max-age=300")
		return c.JSON(fiber.Map{"cities": deps.Vocabularies.Cities(c.UserContext())})
	}
}

// AllRoutesHandler returns the full published schedule for the browse view.
func AllRoutesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		routes, err := deps.Vocabularies.AllRoutes(c.UserContext())
		if err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(fiber.Map{"routes": routes})
	}
}
