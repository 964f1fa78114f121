package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/konanyao/akwaba/internal/core/domain"
	"github.com/konanyao/akwaba/internal/core/usecases"
)

func newRegistration() *usecases.RegistrationService {
	session := usecases.NewSessionService(&mockAuthAPI{}, &memStore{}, nil)
	return usecases.NewRegistrationService(session)
}

func adultDOB() string {
	return time.Now().AddDate(-25, 0, 0).Format("2006-01-02")
}

func validDraft() domain.RegistrationDraft {
	return domain.RegistrationDraft{
		CurrentStep:     domain.StepIdentity,
		FirstName:       "Awa",
		LastName:        "Koné",
		Email:           "awa@example.ci",
		Phone:           "+225 07 12 34 56 78",
		DateOfBirth:     adultDOB(),
		Password:        "Str0ng!pass",
		ConfirmPassword: "Str0ng!pass",
		AcceptTerms:     true,
	}
}

func TestValidateStep_Identity(t *testing.T) {
	svc := newRegistration()

	draft := validDraft()
	if errs := svc.ValidateStep(domain.StepIdentity, draft); len(errs) != 0 {
		t.Fatalf("valid identity rejected: %v", errs)
	}

	draft.FirstName = " A "
	errs := svc.ValidateStep(domain.StepIdentity, draft)
	if errs["firstName"] == "" {
		t.Error("single-character first name must be rejected")
	}
	if errs["lastName"] != "" {
		t.Error("valid last name must not be flagged")
	}
}

func TestValidateStep_ContactRequiresEmailOrPhone(t *testing.T) {
	svc := newRegistration()

	draft := validDraft()
	draft.Email = ""
	draft.Phone = ""
	errs := svc.ValidateStep(domain.StepContact, draft)
	if errs["contact"] != "must provide one of email or phone" {
		t.Fatalf("expected the contact error, got %v", errs)
	}
	if svc.CanAdvance(domain.StepContact, draft) {
		t.Error("step advance must be blocked without email or phone")
	}

	// Either one alone satisfies the requirement.
	draft.Email = "awa@example.ci"
	if errs := svc.ValidateStep(domain.StepContact, draft); errs["contact"] != "" {
		t.Errorf("email alone must satisfy contact: %v", errs)
	}
	draft.Email = ""
	draft.Phone = "0712345678"
	if errs := svc.ValidateStep(domain.StepContact, draft); errs["contact"] != "" {
		t.Errorf("phone alone must satisfy contact: %v", errs)
	}
}

func TestValidateStep_ContactFormats(t *testing.T) {
	svc := newRegistration()

	draft := validDraft()
	draft.Email = "not-an-email"
	if errs := svc.ValidateStep(domain.StepContact, draft); errs["email"] == "" {
		t.Error("malformed email must be rejected")
	}

	draft = validDraft()
	draft.Phone = "0412345678"
	if errs := svc.ValidateStep(domain.StepContact, draft); errs["phone"] == "" {
		t.Error("unknown national prefix must be rejected")
	}
}

func TestValidateStep_AgeBounds(t *testing.T) {
	svc := newRegistration()

	draft := validDraft()
	draft.DateOfBirth = time.Now().AddDate(-17, 0, 0).Format("2006-01-02")
	if errs := svc.ValidateStep(domain.StepContact, draft); errs["dateOfBirth"] != "you must be at least 18 years old" {
		t.Errorf("17 years old must be rejected, got %v", errs)
	}

	draft.DateOfBirth = "1890-01-01"
	if errs := svc.ValidateStep(domain.StepContact, draft); errs["dateOfBirth"] != "date of birth is not plausible" {
		t.Errorf("implausible age must be rejected, got %v", errs)
	}

	draft.DateOfBirth = "15/01/2000"
	if errs := svc.ValidateStep(domain.StepContact, draft); errs["dateOfBirth"] == "" {
		t.Error("non-ISO date must be rejected")
	}
}

func TestValidateStep_Credentials(t *testing.T) {
	svc := newRegistration()

	cases := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"empty", "", "password is required"},
		{"short", "Ab1!", "password must be at least 8 characters"},
		{"forbidden word", "MyPassword1!", "password must not contain the word \"password\""},
		{"too weak", "aaaaaaaa", "password is too weak"},
		{"strong", "Str0ng!pass", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft := validDraft()
			draft.Password = tc.password
			draft.ConfirmPassword = tc.password
			errs := svc.ValidateStep(domain.StepCredentials, draft)
			if errs["password"] != tc.wantErr {
				t.Errorf("password %q: got %q, want %q", tc.password, errs["password"], tc.wantErr)
			}
		})
	}

	draft := validDraft()
	draft.ConfirmPassword = "different"
	if errs := svc.ValidateStep(domain.StepCredentials, draft); errs["confirmPassword"] != "passwords do not match" {
		t.Error("mismatched confirmation must be rejected")
	}

	draft = validDraft()
	draft.AcceptTerms = false
	if errs := svc.ValidateStep(domain.StepCredentials, draft); errs["acceptTerms"] == "" {
		t.Error("unaccepted terms must be rejected")
	}
}

func TestWizardNavigation(t *testing.T) {
	svc := newRegistration()

	draft := validDraft()
	step, errs := svc.NextStep(draft)
	if step != domain.StepContact || len(errs) != 0 {
		t.Fatalf("expected advance to step 2, got %d with %v", step, errs)
	}

	draft.CurrentStep = domain.StepContact
	draft.Email = ""
	draft.Phone = ""
	step, errs = svc.NextStep(draft)
	if step != domain.StepContact || len(errs) == 0 {
		t.Error("invalid step must not advance")
	}

	// Going back never validates.
	if got := svc.PrevStep(draft); got != domain.StepIdentity {
		t.Errorf("expected step 1, got %d", got)
	}
	draft.CurrentStep = domain.StepIdentity
	if got := svc.PrevStep(draft); got != domain.StepIdentity {
		t.Errorf("step 1 is the floor, got %d", got)
	}

	draft = validDraft()
	draft.CurrentStep = domain.StepCredentials
	if step, _ := svc.NextStep(draft); step != domain.StepCredentials {
		t.Errorf("last step must not advance past itself, got %d", step)
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"+225 07 12 34 56 78", "0712345678"},
		{"00225-07-12-34-56-78", "0712345678"},
		{"2250712345678", "0712345678"},
		{"07.12.34.56.78", "0712345678"},
		{"(07)12345678", "0712345678"},
		{"0712345678", "0712345678"},
	}
	for _, tc := range cases {
		if got := usecases.NormalizePhone(tc.in); got != tc.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidPhone(t *testing.T) {
	valid := []string{"0712345678", "+225 01 23 45 67 89", "2512345678", "27 12 34 56 78"}
	for _, p := range valid {
		if !usecases.ValidPhone(p) {
			t.Errorf("ValidPhone(%q) = false, want true", p)
		}
	}
	invalid := []string{"", "071234567", "07123456789", "0412345678", "07123456a8"}
	for _, p := range invalid {
		if usecases.ValidPhone(p) {
			t.Errorf("ValidPhone(%q) = true, want false", p)
		}
	}
}

func TestPasswordScore(t *testing.T) {
	cases := []struct {
		password string
		want     int
	}{
		{"", 0},
		{"aaaa", 1},
		{"aaaaaaaa", 2},
		{"aaaaAAAA", 3},
		{"aaaaAA11", 4},
		{"aaaAA11!", 5},
		{"aA1!", 4},
	}
	for _, tc := range cases {
		if got := usecases.PasswordScore(tc.password); got != tc.want {
			t.Errorf("PasswordScore(%q) = %d, want %d", tc.password, got, tc.want)
		}
	}
}

func TestSubmit(t *testing.T) {
	var registered domain.RegistrationDraft
	auth := &mockAuthAPI{
		registerFn: func(ctx context.Context, draft domain.RegistrationDraft) (string, *domain.User, error) {
			registered = draft
			return "tok-new", &domain.User{ID: "u-new", FirstName: draft.FirstName}, nil
		},
	}
	session := usecases.NewSessionService(auth, &memStore{}, nil)
	svc := usecases.NewRegistrationService(session)

	draft := validDraft()
	errs, res := svc.Submit(context.Background(), draft)
	if len(errs) != 0 {
		t.Fatalf("valid draft rejected: %v", errs)
	}
	if !res.Success || res.User == nil || res.User.ID != "u-new" {
		t.Fatalf("unexpected result %+v", res)
	}
	if registered.Phone != "0712345678" {
		t.Errorf("phone not normalized before submission: %q", registered.Phone)
	}
	if sess := session.Session(); sess.State != domain.SessionAuthenticated {
		t.Errorf("successful registration must open a session, got %s", sess.State)
	}

	// A residual field error anywhere blocks submission entirely.
	bad := validDraft()
	bad.AcceptTerms = false
	errs, res = svc.Submit(context.Background(), bad)
	if len(errs) == 0 || res.Success {
		t.Error("invalid draft must not be submitted")
	}
}
