package usecases

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/konanyao/akwaba/internal/core/domain"
)

// RegistrationService is the three-step registration wizard validator:
// per-field and per-step validation, forward navigation gated on the
// current step's completion predicate, and password strength scoring.
// Completed drafts feed SessionService.Register.
type RegistrationService struct {
	session *SessionService
	now     func() time.Time
}

// NewRegistrationService creates a RegistrationService.
func NewRegistrationService(session *SessionService) *RegistrationService {
	return &RegistrationService{session: session, now: time.Now}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// National prefixes accepted after the country code is stripped.
var phonePrefixes = []string{"01", "05", "07", "21", "25", "27"}

// MinPasswordScore is the strength floor for step 3.
const MinPasswordScore = 3

// ValidateStep validates only the fields owned by the given step and
// returns their inline errors. Never mutates the draft.
func (s *RegistrationService) ValidateStep(step int, draft domain.RegistrationDraft) domain.FieldErrors {
	errs := domain.FieldErrors{}
	switch step {
	case domain.StepIdentity:
		s.validateIdentity(draft, errs)
	case domain.StepContact:
		s.validateContact(draft, errs)
	case domain.StepCredentials:
		s.validateCredentials(draft, errs)
	}
	return errs
}

// CanAdvance reports whether every field owned by the step passes.
func (s *RegistrationService) CanAdvance(step int, draft domain.RegistrationDraft) bool {
	return len(s.ValidateStep(step, draft)) == 0
}

// NextStep advances the wizard when the current step is complete, returning
// the new step and any blocking errors. Returning to a prior step is always
// allowed via PrevStep.
func (s *RegistrationService) NextStep(draft domain.RegistrationDraft) (int, domain.FieldErrors) {
	errs := s.ValidateStep(draft.CurrentStep, draft)
	if len(errs) > 0 {
		return draft.CurrentStep, errs
	}
	if draft.CurrentStep >= domain.StepCredentials {
		return domain.StepCredentials, nil
	}
	return draft.CurrentStep + 1, nil
}

// PrevStep moves back one step; step 1 is the floor.
func (s *RegistrationService) PrevStep(draft domain.RegistrationDraft) int {
	if draft.CurrentStep <= domain.StepIdentity {
		return domain.StepIdentity
	}
	return draft.CurrentStep - 1
}

// ValidateAll re-validates every field of every step.
func (s *RegistrationService) ValidateAll(draft domain.RegistrationDraft) domain.FieldErrors {
	errs := domain.FieldErrors{}
	s.validateIdentity(draft, errs)
	s.validateContact(draft, errs)
	s.validateCredentials(draft, errs)
	return errs
}

// Submit re-validates the whole draft and, if clean, registers the
// identity. Any residual field error blocks submission with no partial
// success.
func (s *RegistrationService) Submit(ctx context.Context, draft domain.RegistrationDraft) (domain.FieldErrors, domain.AuthResult) {
	if errs := s.ValidateAll(draft); len(errs) > 0 {
		return errs, domain.AuthResult{Success: false, Message: "please correct the highlighted fields"}
	}
	draft.Phone = NormalizePhone(draft.Phone)
	return nil, s.session.Register(ctx, draft)
}

func (s *RegistrationService) validateIdentity(draft domain.RegistrationDraft, errs domain.FieldErrors) {
	if len(strings.TrimSpace(draft.FirstName)) < 2 {
		errs["firstName"] = "first name must be at least 2 characters"
	}
	if len(strings.TrimSpace(draft.LastName)) < 2 {
		errs["lastName"] = "last name must be at least 2 characters"
	}
}

func (s *RegistrationService) validateContact(draft domain.RegistrationDraft, errs domain.FieldErrors) {
	email := strings.TrimSpace(draft.Email)
	phone := strings.TrimSpace(draft.Phone)

	if email == "" && phone == "" {
		errs["contact"] = "must provide one of email or phone"
	}
	if email != "" && !emailPattern.MatchString(email) {
		errs["email"] = "email address is not valid"
	}
	if phone != "" && !ValidPhone(phone) {
		errs["phone"] = "phone number is not valid"
	}

	dob := strings.TrimSpace(draft.DateOfBirth)
	if dob == "" {
		errs["dateOfBirth"] = "date of birth is required"
		return
	}
	born, err := time.Parse("2006-01-02", dob)
	if err != nil {
		errs["dateOfBirth"] = "date of birth must be YYYY-MM-DD"
		return
	}
	age := ageAt(born, s.now())
	if age < 18 {
		errs["dateOfBirth"] = "you must be at least 18 years old"
	} else if age > 120 {
		errs["dateOfBirth"] = "date of birth is not plausible"
	}
}

func (s *RegistrationService) validateCredentials(draft domain.RegistrationDraft, errs domain.FieldErrors) {
	switch {
	case draft.Password == "":
		errs["password"] = "password is required"
	case len(draft.Password) < 8:
		errs["password"] = "password must be at least 8 characters"
	case strings.Contains(strings.ToLower(draft.Password), "password"):
		errs["password"] = "password must not contain the word \"password\""
	case PasswordScore(draft.Password) < MinPasswordScore:
		errs["password"] = "password is too weak"
	}
	if draft.ConfirmPassword != draft.Password {
		errs["confirmPassword"] = "passwords do not match"
	}
	if !draft.AcceptTerms {
		errs["acceptTerms"] = "you must accept the terms of service"
	}
}

// ageAt is the full-year age at the reference date.
func ageAt(born, at time.Time) int {
	age := at.Year() - born.Year()
	anniversary := time.Date(at.Year(), born.Month(), born.Day(), 0, 0, 0, 0, at.Location())
	if at.Before(anniversary) {
		age--
	}
	return age
}

// NormalizePhone strips spaces, dashes, dots, and parentheses, then a
// leading +225 / 00225 / 225 country prefix.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		switch r {
		case ' ', '-', '.', '(', ')':
			continue
		}
		b.WriteRune(r)
	}
	p := b.String()
	switch {
	case strings.HasPrefix(p, "+225"):
		p = p[4:]
	case strings.HasPrefix(p, "00225"):
		p = p[5:]
	case strings.HasPrefix(p, "225") && len(p) == 13:
		p = p[3:]
	}
	return p
}

// ValidPhone reports whether the normalized number is a valid national
// prefix followed by 8 digits.
func ValidPhone(phone string) bool {
	p := NormalizePhone(phone)
	if len(p) != 10 {
		return false
	}
	for _, r := range p {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	for _, prefix := range phonePrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// PasswordScore rates a password 0-5: one point each for length >= 8 and
// the presence of a lowercase letter, an uppercase letter, a digit, and a
// non-alphanumeric character.
func PasswordScore(password string) int {
	score := 0
	if len(password) >= 8 {
		score++
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	for _, ok := range []bool{lower, upper, digit, symbol} {
		if ok {
			score++
		}
	}
	return score
}
