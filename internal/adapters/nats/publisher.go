package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Publisher implements ports.EventPublisher using NATS JetStream. All
// lifecycle events go through it on a best-effort basis.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and enables JetStream.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	// Ensure streams exist
	streams := []nats.StreamConfig{
		{
			Name:      "TRAVEL_BOOKINGS",
			Subjects:  []string{"travel.booking.>"},
			Retention: nats.InterestPolicy,
			MaxAge:    24 * time.Hour,
			Storage:   nats.FileStorage,
		},
		{
			Name:      "TRAVEL_SESSIONS",
			Subjects:  []string{"travel.session.>"},
			Retention: nats.InterestPolicy,
			MaxAge:    1 * time.Hour,
			Storage:   nats.FileStorage,
		},
	}

	for _, cfg := range streams {
		if _, err := js.AddStream(&cfg); err != nil {
			// Stream may already exist, try update
			if _, err := js.UpdateStream(&cfg); err != nil {
				return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
			}
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

type bookingEvent struct {
	BookingID string    `json:"booking_id"`
	At        time.Time `json:"at"`
}

type sessionEvent struct {
	UserID string    `json:"user_id"`
	At     time.Time `json:"at"`
}

// PublishBookingCancelled emits a travel.booking.cancelled event.
func (p *Publisher) PublishBookingCancelled(ctx context.Context, bookingID string) error {
	data, err := json.Marshal(bookingEvent{BookingID: bookingID, At: time.Now().UTC()})
	if err != nil {
		return err
	}
	_, err = p.js.Publish("travel.booking.cancelled", data)
	return err
}

// PublishSessionOpened emits a travel.session.opened event.
func (p *Publisher) PublishSessionOpened(ctx context.Context, userID string) error {
	data, err := json.Marshal(sessionEvent{UserID: userID, At: time.Now().UTC()})
	if err != nil {
		return err
	}
	_, err = p.js.Publish("travel.session.opened", data)
	return err
}

// PublishSessionClosed emits a travel.session.closed event.
func (p *Publisher) PublishSessionClosed(ctx context.Context, userID string) error {
	data, err := json.Marshal(sessionEvent{UserID: userID, At: time.Now().UTC()})
	if err != nil {
		return err
	}
	_, err = p.js.Publish("travel.session.closed", data)
	return err
}

// Conn exposes the raw connection for health checks.
func (p *Publisher) Conn() *nats.Conn {
	return p.conn
}

// Close drains the connection.
func (p *Publisher) Close() {
	p.conn.Close()
}
