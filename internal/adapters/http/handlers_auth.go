package http

import (
	"github.com/gofiber/fiber/v2"
)

type loginRequest struct {
	EmailOrPhone string `json:"emailOrPhone"`
	Password     string `json:"password"`
	RememberMe   bool   `json:"rememberMe"`
}

// LoginHandler authenticates with an email or phone identifier.
func LoginHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid login payload")
		}
		if req.EmailOrPhone == "" || req.Password == "" {
			return errBadRequest(c, "identifier and password are required")
		}

		result := deps.Session.Login(c.UserContext(), req.EmailOrPhone, req.Password, req.RememberMe)
		if !result.Success {
			return errUnauthorized(c, result.Message)
		}
		return c.JSON(result)
	}
}

// LogoutHandler closes the session. Always succeeds locally, whatever the
// remote invalidation did.
func LogoutHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		deps.Session.Logout(c.UserContext())
		return c.JSON(fiber.Map{"success": true})
	}
}

// SessionHandler returns the current session snapshot and the remembered
// identifier, if one is persisted.
func SessionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := deps.Session.Session()
		return c.JSON(fiber.Map{
			"state":           session.State,
			"isAuthenticated": session.IsAuthenticated(),
			"user":            session.User,
			"remembered":      deps.Session.RememberedIdentifier(c.UserContext()),
		})
	}
}

// RestoreHandler re-establishes a session from the persisted token.
func RestoreHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := deps.Session.Restore(c.UserContext())
		return c.JSON(fiber.Map{
			"state":           session.State,
			"isAuthenticated": session.IsAuthenticated(),
			"user":            session.User,
		})
	}
}

// UpdateProfileHandler applies profile field changes.
func UpdateProfileHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var fields map[string]string
		if err := c.BodyParser(&fields); err != nil {
			return errBadRequest(c, "invalid profile payload")
		}

		result := deps.Session.UpdateProfile(c.UserContext(), fields)
		if !result.Success {
			return errBadRequest(c, result.Message)
		}
		return c.JSON(result)
	}
}

// RequireAuth is the authorization guard: it evaluates the session before
// protected handlers run and answers with the redirect decision instead of
// proceeding.
func RequireAuth(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision := deps.Session.Authorize()
		if !decision.Allow {
			return c.Status(401).JSON(fiber.Map{
				"allow":    false,
				"redirect": decision.Redirect,
			})
		}
		return c.Next()
	}
}
