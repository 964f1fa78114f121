package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/konanyao/akwaba/internal/core/domain"
)

// GetUserBookings implements ports.BookingAPI.
func (c *Client) GetUserBookings(ctx context.Context, token string) ([]domain.Booking, error) {
	env, err := c.doJSON(ctx, "get_bookings", http.MethodGet, "/bookings", token, nil)
	if err != nil {
		return nil, err
	}

	var bookings []domain.Booking
	if err := json.Unmarshal(env.Data, &bookings); err != nil {
		return nil, fmt.Errorf("get_bookings: decode data: %w", err)
	}
	return bookings, nil
}

// UpdateBookingStatus implements ports.BookingAPI.
func (c *Client) UpdateBookingStatus(ctx context.Context, token, bookingID string, status domain.BookingStatus) error {
	body := map[string]string{"status": string(status)}
	_, err := c.doJSON(ctx, "update_booking_status", http.MethodPatch, "/bookings/"+bookingID+"/status", token, body)
	return err
}

// DownloadTicket implements ports.BookingAPI.
func (c *Client) DownloadTicket(ctx context.Context, token, bookingID string) ([]byte, error) {
	return c.doBinary(ctx, "download_ticket", "/bookings/"+bookingID+"/ticket", token)
}
