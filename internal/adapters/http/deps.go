package http

import (
	"github.com/nats-io/nats.go"

	"github.com/konanyao/akwaba/internal/adapters/valkey"
	"github.com/konanyao/akwaba/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Search       *usecases.SearchService
	Vocabularies *usecases.VocabularyService
	Bookings     *usecases.BookingService
	Session      *usecases.SessionService
	Registration *usecases.RegistrationService
	NATS         *nats.Conn
	Cache        *valkey.Cache
}
