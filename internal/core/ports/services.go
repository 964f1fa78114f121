package ports

import "context"

// SessionStore persists the two pieces of client state that survive
// restarts: the session token and the optional remembered identifier.
// The two keys are managed independently.
type SessionStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error

	RememberedIdentifier(ctx context.Context) (string, error)
	SetRememberedIdentifier(ctx context.Context, identifier string) error
	ClearRememberedIdentifier(ctx context.Context) error
}

// CacheService provides read-through caching for filter vocabularies.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// EventPublisher publishes booking and session lifecycle events to a
// message broker. Publishing is best-effort everywhere it is used.
type EventPublisher interface {
	PublishBookingCancelled(ctx context.Context, bookingID string) error
	PublishSessionOpened(ctx context.Context, userID string) error
	PublishSessionClosed(ctx context.Context, userID string) error
}
