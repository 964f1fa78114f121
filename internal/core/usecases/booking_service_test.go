package usecases_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/konanyao/akwaba/internal/core/domain"
	"github.com/konanyao/akwaba/internal/core/usecases"
)

func loggedInSession(t *testing.T) *usecases.SessionService {
	t.Helper()
	auth := &mockAuthAPI{
		loginFn: func(ctx context.Context, identifier, password string) (string, *domain.User, error) {
			return "tok-1", &domain.User{ID: "u1", FirstName: "Awa"}, nil
		},
	}
	svc := usecases.NewSessionService(auth, &memStore{}, nil)
	if res := svc.Login(context.Background(), "awa@example.ci", "secret", false); !res.Success {
		t.Fatalf("login failed: %s", res.Message)
	}
	return svc
}

func bookingAt(id string, departure time.Time, status domain.BookingStatus) domain.Booking {
	return domain.Booking{
		ID:     id,
		Status: status,
		OutboundRoute: domain.Route{
			ID:            "r-" + id,
			From:          domain.CityRef{Name: "Abidjan"},
			To:            domain.CityRef{Name: "Bouaké"},
			DepartureDate: departure.Format("2006-01-02"),
			DepartureTime: departure.Format("15:04"),
		},
		SelectedSeats: []string{"A1"},
	}
}

func TestIsCancellableOrModifiable_Boundary(t *testing.T) {
	loc := time.UTC
	departure := time.Date(2025, 6, 10, 14, 30, 0, 0, loc)
	date := "2025-06-10"
	depTime := "14:30"

	cutoff := departure.Add(-24 * time.Hour)

	if !usecases.IsCancellableOrModifiable(date, depTime, cutoff.Add(-time.Second), loc) {
		t.Error("one second before the cutoff must still be cancellable")
	}
	if usecases.IsCancellableOrModifiable(date, depTime, cutoff, loc) {
		t.Error("at exactly the cutoff the strict inequality must fail")
	}
	if usecases.IsCancellableOrModifiable(date, depTime, cutoff.Add(time.Second), loc) {
		t.Error("one second past the cutoff must not be cancellable")
	}
}

func TestPartitionBookings(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	bookings := []domain.Booking{
		bookingAt("up", now.Add(48*time.Hour), domain.BookingConfirmed),
		bookingAt("past-confirmed", now.Add(-48*time.Hour), domain.BookingConfirmed),
		bookingAt("cancelled", now.Add(48*time.Hour), domain.BookingCancelled),
		bookingAt("completed", now.Add(-200*time.Hour), domain.BookingCompleted),
	}

	summary := usecases.PartitionBookings(bookings, now)

	if len(summary.Upcoming) != 1 || summary.Upcoming[0].ID != "up" {
		t.Fatalf("expected only the future confirmed booking upcoming, got %v", summary.Upcoming)
	}
	if len(summary.History) != 3 {
		t.Fatalf("expected 3 bookings in history, got %d", len(summary.History))
	}
}

func TestBookingService_Cancel(t *testing.T) {
	var gotStatus domain.BookingStatus
	var gotID string
	api := &mockBookingAPI{
		updateStatusFn: func(ctx context.Context, token, bookingID string, status domain.BookingStatus) error {
			gotID, gotStatus = bookingID, status
			return nil
		},
	}
	events := &recordingPublisher{}
	svc := usecases.NewBookingService(api, loggedInSession(t), events, time.UTC)

	b := bookingAt("b1", time.Now().UTC().Add(72*time.Hour), domain.BookingConfirmed)
	if err := svc.Cancel(context.Background(), b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotID != "b1" || gotStatus != domain.BookingCancelled {
		t.Errorf("expected cancelled status for b1, got %s for %s", gotStatus, gotID)
	}
	if len(events.events) != 1 || events.events[0] != "booking.cancelled:b1" {
		t.Errorf("expected one cancellation event, got %v", events.events)
	}
}

func TestBookingService_CancelRejections(t *testing.T) {
	svc := usecases.NewBookingService(&mockBookingAPI{}, loggedInSession(t), nil, time.UTC)

	notConfirmed := bookingAt("b1", time.Now().UTC().Add(72*time.Hour), domain.BookingCancelled)
	if err := svc.Cancel(context.Background(), notConfirmed); !errors.Is(err, domain.ErrAlreadyCancelled) {
		t.Errorf("expected ErrAlreadyCancelled, got %v", err)
	}

	insideWindow := bookingAt("b2", time.Now().UTC().Add(2*time.Hour), domain.BookingConfirmed)
	if err := svc.Cancel(context.Background(), insideWindow); !errors.Is(err, domain.ErrNotCancellable) {
		t.Errorf("expected ErrNotCancellable, got %v", err)
	}
}

func TestBookingService_CancelRequiresSession(t *testing.T) {
	session := usecases.NewSessionService(&mockAuthAPI{}, &memStore{}, nil)
	svc := usecases.NewBookingService(&mockBookingAPI{}, session, nil, time.UTC)

	b := bookingAt("b1", time.Now().UTC().Add(72*time.Hour), domain.BookingConfirmed)
	if err := svc.Cancel(context.Background(), b); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestBookingService_DownloadTicket(t *testing.T) {
	content := []byte("%PDF-1.4 ticket")
	api := &mockBookingAPI{
		ticketFn: func(ctx context.Context, token, bookingID string) ([]byte, error) {
			return content, nil
		},
	}
	svc := usecases.NewBookingService(api, loggedInSession(t), nil, time.UTC)

	ticket, err := svc.DownloadTicket(context.Background(), "BK-42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ticket.FileName != "ticket-BK-42.pdf" {
		t.Errorf("unexpected file name %s", ticket.FileName)
	}
	if !bytes.Equal(ticket.Content, content) {
		t.Error("ticket content altered")
	}
}

func TestBookingService_ModifyIsInformational(t *testing.T) {
	svc := usecases.NewBookingService(&mockBookingAPI{}, loggedInSession(t), nil, time.UTC)
	if err := svc.Modify(context.Background(), "b1"); !errors.Is(err, domain.ErrModificationUnavailable) {
		t.Errorf("expected ErrModificationUnavailable, got %v", err)
	}
}
