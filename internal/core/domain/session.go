package domain

// SessionState is the lifecycle position of the authentication session.
type SessionState string

const (
	// SessionAnonymous means no token is held.
	SessionAnonymous SessionState = "anonymous"
	// SessionRestoring means a persisted token exists but the profile has
	// not been confirmed yet.
	SessionRestoring SessionState = "restoring"
	// SessionAuthenticated means both token and profile are loaded.
	SessionAuthenticated SessionState = "authenticated"
)

// User is the profile projection attached to a session. It is fetched
// asynchronously after token acquisition and may briefly lag the token.
type User struct {
	ID          string `json:"id,omitempty"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Role        string `json:"role,omitempty"`
}

// Session is the authenticated identity context.
type Session struct {
	State SessionState `json:"state"`
	Token string       `json:"-"`
	User  *User        `json:"user,omitempty"`
}

// IsAuthenticated is true iff a non-empty token is held.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// AuthResult is the structured outcome of a login, registration, or profile
// operation. Failures carry the most specific available message and are
// never raised as faults.
type AuthResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	User    *User  `json:"user,omitempty"`
}
