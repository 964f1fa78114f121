package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/konanyao/akwaba/internal/core/domain"
)

// BookingsHandler returns the user's bookings split into upcoming and
// history.
func BookingsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		summary, err := deps.Bookings.List(c.UserContext())
		if err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(summary)
	}
}

// CancelBookingHandler cancels a booking inside its eligibility window.
func CancelBookingHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "booking id is required")
		}
		if err := deps.Bookings.CancelByID(c.UserContext(), id); err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "message": "booking cancelled"})
	}
}

// TicketHandler streams the ticket artifact under its deterministic name.
func TicketHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "booking id is required")
		}
		ticket, err := deps.Bookings.DownloadTicket(c.UserContext(), id)
		if err != nil {
			return mapDomainError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+ticket.FileName+`"`)
		return c.Send(ticket.Content)
	}
}

// ModifyBookingHandler surfaces the not-yet-available modification flow as
// an informational notice, not an error.
func ModifyBookingHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := deps.Bookings.Modify(c.UserContext(), c.Params("id"))
		if errors.Is(err, domain.ErrModificationUnavailable) {
			return c.JSON(fiber.Map{
				"success": false,
				"notice":  err.Error(),
			})
		}
		if err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	}
}
