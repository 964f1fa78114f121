package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/konanyao/akwaba/internal/core/domain"
	"github.com/konanyao/akwaba/internal/core/ports"
	"github.com/konanyao/akwaba/internal/pkg/metrics"
)

// BookingService governs a booking's state changes after checkout:
// the upcoming/history partition, cancellation inside the eligibility
// window, ticket download, and the (not yet available) modification flow.
type BookingService struct {
	api     ports.BookingAPI
	session *SessionService
	events  ports.EventPublisher
	loc     *time.Location
	now     func() time.Time
}

// NewBookingService creates a BookingService. events may be nil.
func NewBookingService(api ports.BookingAPI, session *SessionService, events ports.EventPublisher, loc *time.Location) *BookingService {
	if loc == nil {
		loc = time.Local
	}
	return &BookingService{api: api, session: session, events: events, loc: loc, now: time.Now}
}

// IsCancellableOrModifiable reports whether now is strictly before the
// departure minus the 24h cancellation window. At exactly the cutoff the
// comparison is already false: the inequality is strict, not inclusive.
func IsCancellableOrModifiable(departureDate, departureTime string, now time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	r := domain.Route{DepartureDate: departureDate, DepartureTime: departureTime}
	at, err := r.DepartureAt(loc)
	if err != nil {
		return false
	}
	return now.Before(at.Add(-domain.CancellationWindow))
}

// CanCancel reports whether the booking is confirmed and still inside the
// cancellation window.
func (s *BookingService) CanCancel(b domain.Booking) bool {
	return b.Status == domain.BookingConfirmed &&
		IsCancellableOrModifiable(b.OutboundRoute.DepartureDate, b.OutboundRoute.DepartureTime, s.now(), s.loc)
}

// List fetches the user's bookings and partitions them: upcoming iff
// confirmed with a departure still ahead of now, everything else history.
func (s *BookingService) List(ctx context.Context) (*domain.BookingSummary, error) {
	token, err := s.session.requireToken(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := s.api.GetUserBookings(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}
	return PartitionBookings(bookings, s.now()), nil
}

// PartitionBookings splits bookings into the upcoming and history
// projections relative to now.
func PartitionBookings(bookings []domain.Booking, now time.Time) *domain.BookingSummary {
	summary := &domain.BookingSummary{}
	for _, b := range bookings {
		if b.Status == domain.BookingConfirmed && !b.IsPast(now) {
			summary.Upcoming = append(summary.Upcoming, b)
		} else {
			summary.History = append(summary.History, b)
		}
	}
	return summary
}

// Cancel requests the status change to cancelled. It is permitted only for
// a confirmed booking inside the eligibility window; violations come back
// as typed business-rule errors, never faults.
func (s *BookingService) Cancel(ctx context.Context, b domain.Booking) error {
	token, err := s.session.requireToken(ctx)
	if err != nil {
		return err
	}
	if b.Status != domain.BookingConfirmed {
		return domain.ErrAlreadyCancelled
	}
	if !s.CanCancel(b) {
		return domain.ErrNotCancellable
	}
	if err := s.api.UpdateBookingStatus(ctx, token, b.ID, domain.BookingCancelled); err != nil {
		return fmt.Errorf("cancel booking %s: %w", b.ID, err)
	}
	metrics.BookingsCancelled.Inc()
	if s.events != nil {
		if err := s.events.PublishBookingCancelled(ctx, b.ID); err != nil {
			slog.Warn("booking cancelled event not published", "booking", b.ID, "error", err)
		}
	}
	return nil
}

// CancelByID looks the booking up in the user's bookings and cancels it.
func (s *BookingService) CancelByID(ctx context.Context, bookingID string) error {
	token, err := s.session.requireToken(ctx)
	if err != nil {
		return err
	}
	bookings, err := s.api.GetUserBookings(ctx, token)
	if err != nil {
		return fmt.Errorf("get bookings: %w", err)
	}
	for _, b := range bookings {
		if b.ID == bookingID {
			return s.Cancel(ctx, b)
		}
	}
	return fmt.Errorf("booking %s not found", bookingID)
}

// DownloadTicket fetches the opaque ticket artifact and names the file
// deterministically from the booking identifier. Failures are reported to
// the caller, never retried here.
func (s *BookingService) DownloadTicket(ctx context.Context, bookingID string) (*domain.Ticket, error) {
	token, err := s.session.requireToken(ctx)
	if err != nil {
		return nil, err
	}
	content, err := s.api.DownloadTicket(ctx, token, bookingID)
	if err != nil {
		return nil, fmt.Errorf("download ticket %s: %w", bookingID, err)
	}
	return &domain.Ticket{
		BookingID: bookingID,
		FileName:  TicketFileName(bookingID),
		Content:   content,
	}, nil
}

// TicketFileName derives the download file name from a booking identifier.
func TicketFileName(bookingID string) string {
	return "ticket-" + strings.TrimSpace(bookingID) + ".pdf"
}

// Modify is flagged as not yet implemented: it surfaces an informational
// notice and mutates nothing.
func (s *BookingService) Modify(ctx context.Context, bookingID string) error {
	return domain.ErrModificationUnavailable
}
