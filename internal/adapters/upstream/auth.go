package upstream

import (
	"context"
	"net/http"

	"github.com/konanyao/akwaba/internal/core/domain"
)

// Login implements ports.AuthAPI. The identifier may be an email address or
// a phone number; the platform resolves it either way.
func (c *Client) Login(ctx context.Context, identifier, password string) (string, *domain.User, error) {
	body := map[string]string{
		"emailOrPhone": identifier,
		"password":     password,
	}
	env, err := c.doJSON(ctx, "login", http.MethodPost, "/auth/login", "", body)
	if err != nil {
		return "", nil, err
	}
	return env.Token, env.User, nil
}

// Register implements ports.AuthAPI.
func (c *Client) Register(ctx context.Context, draft domain.RegistrationDraft) (string, *domain.User, error) {
	body := map[string]string{
		"firstName":   draft.FirstName,
		"lastName":    draft.LastName,
		"email":       draft.Email,
		"phone":       draft.Phone,
		"dateOfBirth": draft.DateOfBirth,
		"password":    draft.Password,
	}
	env, err := c.doJSON(ctx, "register", http.MethodPost, "/auth/register", "", body)
	if err != nil {
		return "", nil, err
	}
	return env.Token, env.User, nil
}

// GetProfile implements ports.AuthAPI.
func (c *Client) GetProfile(ctx context.Context, token string) (*domain.User, error) {
	env, err := c.doJSON(ctx, "get_profile", http.MethodGet, "/auth/profile", token, nil)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// UpdateProfile implements ports.AuthAPI.
func (c *Client) UpdateProfile(ctx context.Context, token string, fields map[string]string) (*domain.User, error) {
	env, err := c.doJSON(ctx, "update_profile", http.MethodPut, "/auth/profile", token, fields)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// Logout implements ports.AuthAPI.
func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := c.doJSON(ctx, "logout", http.MethodPost, "/auth/logout", token, nil)
	return err
}
