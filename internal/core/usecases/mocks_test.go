package usecases_test

import (
	"context"
	"sync"

	"github.com/konanyao/akwaba/internal/core/domain"
)

// --- Mock TripAPI ---

type mockTripAPI struct {
	searchFn    func(ctx context.Context, q domain.SearchQuery) (*domain.SearchResults, error)
	companiesFn func(ctx context.Context) ([]domain.Company, error)
	citiesFn    func(ctx context.Context) ([]domain.City, error)
	routesFn    func(ctx context.Context) ([]domain.Route, error)
}

func (m *mockTripAPI) SearchTrips(ctx context.Context, q domain.SearchQuery) (*domain.SearchResults, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &domain.SearchResults{Query: q}, nil
}

func (m *mockTripAPI) GetCompanies(ctx context.Context) ([]domain.Company, error) {
	if m.companiesFn != nil {
		return m.companiesFn(ctx)
	}
	return nil, nil
}

func (m *mockTripAPI) GetAllCities(ctx context.Context) ([]domain.City, error) {
	if m.citiesFn != nil {
		return m.citiesFn(ctx)
	}
	return nil, nil
}

func (m *mockTripAPI) GetAllRoutes(ctx context.Context) ([]domain.Route, error) {
	if m.routesFn != nil {
		return m.routesFn(ctx)
	}
	return nil, nil
}

// --- Mock AuthAPI ---

type mockAuthAPI struct {
	loginFn    func(ctx context.Context, identifier, password string) (string, *domain.User, error)
	registerFn func(ctx context.Context, draft domain.RegistrationDraft) (string, *domain.User, error)
	profileFn  func(ctx context.Context, token string) (*domain.User, error)
	updateFn   func(ctx context.Context, token string, fields map[string]string) (*domain.User, error)
	logoutFn   func(ctx context.Context, token string) error
}

func (m *mockAuthAPI) Login(ctx context.Context, identifier, password string) (string, *domain.User, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, identifier, password)
	}
	return "", nil, nil
}

func (m *mockAuthAPI) Register(ctx context.Context, draft domain.RegistrationDraft) (string, *domain.User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, draft)
	}
	return "", nil, nil
}

func (m *mockAuthAPI) GetProfile(ctx context.Context, token string) (*domain.User, error) {
	if m.profileFn != nil {
		return m.profileFn(ctx, token)
	}
	return nil, nil
}

func (m *mockAuthAPI) UpdateProfile(ctx context.Context, token string, fields map[string]string) (*domain.User, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, token, fields)
	}
	return nil, nil
}

func (m *mockAuthAPI) Logout(ctx context.Context, token string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, token)
	}
	return nil
}

// --- Mock BookingAPI ---

type mockBookingAPI struct {
	bookingsFn     func(ctx context.Context, token string) ([]domain.Booking, error)
	updateStatusFn func(ctx context.Context, token, bookingID string, status domain.BookingStatus) error
	ticketFn       func(ctx context.Context, token, bookingID string) ([]byte, error)
}

func (m *mockBookingAPI) GetUserBookings(ctx context.Context, token string) ([]domain.Booking, error) {
	if m.bookingsFn != nil {
		return m.bookingsFn(ctx, token)
	}
	return nil, nil
}

func (m *mockBookingAPI) UpdateBookingStatus(ctx context.Context, token, bookingID string, status domain.BookingStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, token, bookingID, status)
	}
	return nil
}

func (m *mockBookingAPI) DownloadTicket(ctx context.Context, token, bookingID string) ([]byte, error) {
	if m.ticketFn != nil {
		return m.ticketFn(ctx, token, bookingID)
	}
	return nil, nil
}

// --- In-memory SessionStore ---

type memStore struct {
	mu    sync.Mutex
	token string
	ident string
}

func (s *memStore) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *memStore) SetToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *memStore) ClearToken(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

func (s *memStore) RememberedIdentifier(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ident, nil
}

func (s *memStore) SetRememberedIdentifier(ctx context.Context, identifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ident = identifier
	return nil
}

func (s *memStore) ClearRememberedIdentifier(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ident = ""
	return nil
}

// --- Recording EventPublisher ---

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) record(event string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) PublishBookingCancelled(ctx context.Context, bookingID string) error {
	p.record("booking.cancelled:" + bookingID)
	return nil
}

func (p *recordingPublisher) PublishSessionOpened(ctx context.Context, userID string) error {
	p.record("session.opened:" + userID)
	return nil
}

func (p *recordingPublisher) PublishSessionClosed(ctx context.Context, userID string) error {
	p.record("session.closed:" + userID)
	return nil
}
