package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/konanyao/akwaba/internal/core/domain"
	"github.com/konanyao/akwaba/internal/core/usecases"
)

// ValidateStepHandler validates the draft's current step and reports
// whether the wizard may advance. Errors are inline per field.
func ValidateStepHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var draft domain.RegistrationDraft
		if err := c.BodyParser(&draft); err != nil {
			return errBadRequest(c, "invalid registration payload")
		}
		if draft.CurrentStep < domain.StepIdentity || draft.CurrentStep > domain.StepCredentials {
			return errBadRequest(c, "currentStep must be 1, 2, or 3")
		}

		errs := deps.Registration.ValidateStep(draft.CurrentStep, draft)
		return c.JSON(fiber.Map{
			"step":       draft.CurrentStep,
			"errors":     errs,
			"canAdvance": len(errs) == 0,
		})
	}
}

// NextStepHandler advances the wizard when the current step is complete.
func NextStepHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var draft domain.RegistrationDraft
		if err := c.BodyParser(&draft); err != nil {
			return errBadRequest(c, "invalid registration payload")
		}

		step, errs := deps.Registration.NextStep(draft)
		return c.JSON(fiber.Map{
			"step":   step,
			"errors": errs,
		})
	}
}

// PasswordStrengthHandler scores a candidate password for the strength
// meter.
func PasswordStrengthHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Password string `json:"password"`
		}
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid payload")
		}

		score := usecases.PasswordScore(req.Password)
		return c.JSON(fiber.Map{
			"score": score,
			"label": domain.StrengthLabel(score),
		})
	}
}

// SubmitRegistrationHandler re-validates the whole draft and registers the
// identity. Any residual field error blocks submission.
func SubmitRegistrationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var draft domain.RegistrationDraft
		if err := c.BodyParser(&draft); err != nil {
			return errBadRequest(c, "invalid registration payload")
		}

		fieldErrs, result := deps.Registration.Submit(c.UserContext(), draft)
		if len(fieldErrs) > 0 {
			return c.Status(422).JSON(fiber.Map{
				"success": false,
				"message": result.Message,
				"errors":  fieldErrs,
			})
		}
		if !result.Success {
			return errBadRequest(c, result.Message)
		}
		return c.Status(201).JSON(result)
	}
}
