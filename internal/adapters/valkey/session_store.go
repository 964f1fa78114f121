package valkey

import (
	"context"

	"github.com/valkey-io/valkey-go"
)

// SessionStore implements ports.SessionStore on Valkey: the token and the
// remembered identifier live under independent keys and survive restarts.
// Neither key expires; both are cleared explicitly.
type SessionStore struct {
	cache *Cache
	token string
	ident string
}

// NewSessionStore creates a SessionStore on top of an existing cache
// connection. namespace isolates one installation's keys.
func NewSessionStore(cache *Cache, namespace string) *SessionStore {
	if namespace == "" {
		namespace = "akwaba"
	}
	return &SessionStore{
		cache: cache,
		token: namespace + ":session:token",
		ident: namespace + ":session:remembered",
	}
}

// get treats a missing key as empty, not as an error.
func (s *SessionStore) get(ctx context.Context, key string) (string, error) {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

func (s *SessionStore) Token(ctx context.Context) (string, error) {
	return s.get(ctx, s.token)
}

func (s *SessionStore) SetToken(ctx context.Context, token string) error {
	return s.cache.Set(ctx, s.token, []byte(token), 0)
}

func (s *SessionStore) ClearToken(ctx context.Context) error {
	return s.cache.Delete(ctx, s.token)
}

func (s *SessionStore) RememberedIdentifier(ctx context.Context) (string, error) {
	return s.get(ctx, s.ident)
}

func (s *SessionStore) SetRememberedIdentifier(ctx context.Context, identifier string) error {
	return s.cache.Set(ctx, s.ident, []byte(identifier), 0)
}

func (s *SessionStore) ClearRememberedIdentifier(ctx context.Context) error {
	return s.cache.Delete(ctx, s.ident)
}
