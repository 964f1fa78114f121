package domain

import "time"

// BookingStatus is the stored status of a booking. "Past" is a derived
// view-state, never stored.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// CancellationWindow is the pre-departure cutoff before which a confirmed
// booking may still be cancelled or modified.
const CancellationWindow = 24 * time.Hour

// Booking is a traveler's reservation against one route.
type Booking struct {
	ID            string        `json:"id"`
	Status        BookingStatus `json:"status"`
	OutboundRoute Route         `json:"outboundRoute"`
	SelectedSeats []string      `json:"selectedSeats"`
	BookedAt      string        `json:"bookedAt,omitempty"`
	TotalPrice    float64       `json:"totalPrice,omitempty"`
}

// IsPast reports whether the booking's departure is already behind now.
// Unparseable departures count as past so they never clutter "upcoming".
func (b Booking) IsPast(now time.Time) bool {
	at, err := b.OutboundRoute.DepartureAt(now.Location())
	if err != nil {
		return true
	}
	return !at.After(now)
}

// BookingSummary partitions one user's bookings into the upcoming and
// history projections.
type BookingSummary struct {
	Upcoming []Booking `json:"upcoming"`
	History  []Booking `json:"history"`
}

// Ticket is the opaque downloadable artifact for a booking.
type Ticket struct {
	BookingID string `json:"bookingId"`
	FileName  string `json:"fileName"`
	Content   []byte `json:"-"`
}
