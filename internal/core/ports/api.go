package ports

import (
	"context"

	"github.com/konanyao/akwaba/internal/core/domain"
)

// TripAPI is the upstream search boundary. Transport mechanics are opaque
// to the core; implementations translate the JSON envelope into domain
// values and errors.
type TripAPI interface {
	// SearchTrips fetches candidate outbound (and optionally return) routes.
	SearchTrips(ctx context.Context, q domain.SearchQuery) (*domain.SearchResults, error)
	// GetCompanies returns the operator vocabulary used by filters.
	GetCompanies(ctx context.Context) ([]domain.Company, error)
	// GetAllCities returns the city vocabulary used by filters.
	GetAllCities(ctx context.Context) ([]domain.City, error)
	// GetAllRoutes returns the full published schedule.
	GetAllRoutes(ctx context.Context) ([]domain.Route, error)
}

// AuthAPI is the upstream identity boundary.
type AuthAPI interface {
	// Login exchanges an email-or-phone identifier and password for a token
	// and user projection.
	Login(ctx context.Context, identifier, password string) (token string, user *domain.User, err error)
	// Register creates an identity and returns an immediately usable session.
	Register(ctx context.Context, draft domain.RegistrationDraft) (token string, user *domain.User, err error)
	// GetProfile resolves the user projection behind a token.
	GetProfile(ctx context.Context, token string) (*domain.User, error)
	// UpdateProfile applies field changes and returns the server's
	// replacement projection.
	UpdateProfile(ctx context.Context, token string, fields map[string]string) (*domain.User, error)
	// Logout invalidates the token server-side.
	Logout(ctx context.Context, token string) error
}

// BookingAPI is the upstream booking boundary.
type BookingAPI interface {
	// GetUserBookings returns all bookings of the token's user.
	GetUserBookings(ctx context.Context, token string) ([]domain.Booking, error)
	// UpdateBookingStatus requests a stored status change.
	UpdateBookingStatus(ctx context.Context, token, bookingID string, status domain.BookingStatus) error
	// DownloadTicket fetches the opaque binary ticket artifact.
	DownloadTicket(ctx context.Context, token, bookingID string) ([]byte, error)
}
