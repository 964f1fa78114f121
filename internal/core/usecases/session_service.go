package usecases

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/konanyao/akwaba/internal/core/domain"
	"github.com/konanyao/akwaba/internal/core/ports"
	"github.com/konanyao/akwaba/internal/pkg/metrics"
)

// genericAuthMessage is the last-resort failure reason when neither the
// server nor the transport produced anything more specific.
const genericAuthMessage = "something went wrong, please try again"

// SessionService owns the authentication token and the derived user
// identity: anonymous → restoring → authenticated → anonymous.
//
// A profile fetch runs without holding the lock, so it can race a
// concurrent login or logout. The token value at the time the response
// arrives is authoritative: a result fetched for a token that has since
// been cleared or replaced is dropped instead of resurrecting the session.
type SessionService struct {
	api    ports.AuthAPI
	store  ports.SessionStore
	events ports.EventPublisher

	mu    sync.Mutex
	state domain.SessionState
	token string
	user  *domain.User
}

// NewSessionService creates a SessionService settled at anonymous.
// events may be nil.
func NewSessionService(api ports.AuthAPI, store ports.SessionStore, events ports.EventPublisher) *SessionService {
	return &SessionService{api: api, store: store, events: events, state: domain.SessionAnonymous}
}

// Session returns a snapshot of the current session.
func (s *SessionService) Session() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Session{State: s.state, Token: s.token, User: s.user}
}

// requireToken returns the held token or ErrNotAuthenticated.
func (s *SessionService) requireToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", domain.ErrNotAuthenticated
	}
	return s.token, nil
}

// Restore re-establishes a session from the persisted token. Without a
// token it settles to anonymous immediately. With one, it requests the
// profile; any failure, including a server-rejected token, triggers the
// full logout sequence rather than a retry.
func (s *SessionService) Restore(ctx context.Context) domain.Session {
	token, err := s.store.Token(ctx)
	if err != nil {
		slog.Warn("session store unreadable", "error", err)
		token = ""
	}
	if token == "" {
		s.mu.Lock()
		s.state = domain.SessionAnonymous
		s.token = ""
		s.user = nil
		s.mu.Unlock()
		return s.Session()
	}

	s.mu.Lock()
	s.state = domain.SessionRestoring
	s.token = token
	s.user = nil
	s.mu.Unlock()

	user, err := s.api.GetProfile(ctx, token)

	s.mu.Lock()
	if s.token != token {
		// A login or logout won the race; this response is stale.
		s.mu.Unlock()
		return s.Session()
	}
	if err != nil || user == nil {
		s.clearLocal(ctx)
		s.mu.Unlock()
		slog.Info("session restore failed, cleared local session", "error", err)
		return s.Session()
	}
	s.state = domain.SessionAuthenticated
	s.user = user
	s.mu.Unlock()
	return s.Session()
}

// Login authenticates with an email or phone identifier. On success the
// token is persisted and the session settles authenticated; on failure the
// existing session state is left untouched and a structured reason is
// returned, derived from the most specific available error detail.
// remember controls the persisted remembered-identifier key.
func (s *SessionService) Login(ctx context.Context, identifier, password string, remember bool) domain.AuthResult {
	token, user, err := s.api.Login(ctx, identifier, password)
	if err != nil {
		metrics.LoginsFailed.Inc()
		return domain.AuthResult{Success: false, Message: failureReason(err)}
	}

	if err := s.store.SetToken(ctx, token); err != nil {
		slog.Warn("token not persisted, session will not survive restart", "error", err)
	}
	if remember {
		if err := s.store.SetRememberedIdentifier(ctx, identifier); err != nil {
			slog.Warn("remembered identifier not persisted", "error", err)
		}
	} else {
		_ = s.store.ClearRememberedIdentifier(ctx)
	}

	s.mu.Lock()
	s.state = domain.SessionAuthenticated
	s.token = token
	s.user = user
	s.mu.Unlock()

	if s.events != nil && user != nil {
		if err := s.events.PublishSessionOpened(ctx, user.ID); err != nil {
			slog.Debug("session opened event not published", "error", err)
		}
	}
	return domain.AuthResult{Success: true, User: user}
}

// Register creates the identity and, like login, returns an immediately
// usable session on success.
func (s *SessionService) Register(ctx context.Context, draft domain.RegistrationDraft) domain.AuthResult {
	token, user, err := s.api.Register(ctx, draft)
	if err != nil {
		return domain.AuthResult{Success: false, Message: failureReason(err)}
	}

	if err := s.store.SetToken(ctx, token); err != nil {
		slog.Warn("token not persisted, session will not survive restart", "error", err)
	}

	s.mu.Lock()
	s.state = domain.SessionAuthenticated
	s.token = token
	s.user = user
	s.mu.Unlock()

	if s.events != nil && user != nil {
		if err := s.events.PublishSessionOpened(ctx, user.ID); err != nil {
			slog.Debug("session opened event not published", "error", err)
		}
	}
	return domain.AuthResult{Success: true, User: user}
}

// Logout invalidates the token remotely on a best-effort basis, then
// unconditionally clears local state. The ordering guarantees a clean local
// session even when the remote call fails.
func (s *SessionService) Logout(ctx context.Context) {
	s.mu.Lock()
	token := s.token
	userID := ""
	if s.user != nil {
		userID = s.user.ID
	}
	s.mu.Unlock()

	if token != "" {
		if err := s.api.Logout(ctx, token); err != nil {
			slog.Warn("remote logout failed, clearing local session anyway", "error", err)
		}
	}

	s.mu.Lock()
	s.clearLocal(ctx)
	s.mu.Unlock()

	if s.events != nil && userID != "" {
		if err := s.events.PublishSessionClosed(ctx, userID); err != nil {
			slog.Debug("session closed event not published", "error", err)
		}
	}
}

// clearLocal resets to anonymous and drops the persisted token. The
// remembered identifier is a separate key and is left alone.
// Callers hold s.mu.
func (s *SessionService) clearLocal(ctx context.Context) {
	s.state = domain.SessionAnonymous
	s.token = ""
	s.user = nil
	if err := s.store.ClearToken(ctx); err != nil {
		slog.Warn("persisted token not cleared", "error", err)
	}
}

// UpdateProfile applies the given field changes. On success the in-memory
// user projection is replaced wholesale with the server's returned
// projection; on failure nothing is mutated.
func (s *SessionService) UpdateProfile(ctx context.Context, fields map[string]string) domain.AuthResult {
	token, err := s.requireToken(ctx)
	if err != nil {
		return domain.AuthResult{Success: false, Message: failureReason(err)}
	}

	user, err := s.api.UpdateProfile(ctx, token, fields)
	if err != nil {
		return domain.AuthResult{Success: false, Message: failureReason(err)}
	}

	s.mu.Lock()
	if s.token == token {
		s.user = user
	}
	s.mu.Unlock()
	return domain.AuthResult{Success: true, User: user}
}

// RememberedIdentifier returns the persisted remember-me identifier, if any.
func (s *SessionService) RememberedIdentifier(ctx context.Context) string {
	id, err := s.store.RememberedIdentifier(ctx)
	if err != nil {
		return ""
	}
	return id
}

// AuthDecision is the outcome of an explicit authorization guard: either
// proceed, or redirect to the given target. The guard only decides, it
// never navigates.
type AuthDecision struct {
	Allow    bool   `json:"allow"`
	Redirect string `json:"redirect,omitempty"`
}

// Authorize is the guard evaluated before entering protected logic.
func (s *SessionService) Authorize() AuthDecision {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return AuthDecision{Allow: false, Redirect: "/login"}
	}
	return AuthDecision{Allow: true}
}

// failureReason picks the most specific available message: the server's own
// message first, then the transport error, then a generic fallback.
func failureReason(err error) string {
	if err == nil {
		return genericAuthMessage
	}
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, domain.ErrNotAuthenticated) {
		return "you must be logged in"
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return genericAuthMessage
}
