package domain

// Registration wizard steps, in order.
const (
	StepIdentity    = 1
	StepContact     = 2
	StepCredentials = 3
)

// RegistrationDraft is the whole wizard state: every field plus the current
// step. Validation never mutates a draft.
type RegistrationDraft struct {
	CurrentStep     int    `json:"currentStep"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	DateOfBirth     string `json:"dateOfBirth"` // YYYY-MM-DD
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	AcceptTerms     bool   `json:"acceptTerms"`
}

// FieldErrors maps field names to inline validation messages.
type FieldErrors map[string]string

// Has reports whether the named field failed validation.
func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// PasswordStrength labels, weakest to strongest, indexed by score band.
var PasswordStrengthLabels = []string{
	"very weak", // 0-1
	"weak",      // 2
	"fair",      // 3
	"good",      // 4
	"strong",    // 5
}

// StrengthLabel maps a 0-5 score to its presentational label.
// The mapping is monotonic in the score.
func StrengthLabel(score int) string {
	switch {
	case score <= 1:
		return PasswordStrengthLabels[0]
	case score >= 5:
		return PasswordStrengthLabels[4]
	default:
		return PasswordStrengthLabels[score-1]
	}
}
