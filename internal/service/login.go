package service

import (
	"context"
	"sort"
	"strings"

	domainauth "github.com/target/dialtone/internal/domain/auth"
	apperrors "github.com/target/dialtone/internal/errors"
	"github.com/target/dialtone/internal/ports"
	"github.com/target/dialtone/internal/validation"
)

// DefaultLoginRedirect is where a successful login lands when the requested
// target is missing or unsafe.
const DefaultLoginRedirect = "/dashboard"

// invalidCredentialsMessage is the single message used for every credential
// mismatch. Unknown phone and wrong password must be indistinguishable.
const invalidCredentialsMessage = "Invalid phone"

// FieldErrors is a field-keyed validation error map returned by Login.
// It implements error so it travels through the usual return path.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "invalid fields: " + strings.Join(fields, ", ")
}

// LoginServiceOptions groups dependencies for LoginService.
type LoginServiceOptions struct {
	Credentials ports.CredentialStore
	Sessions    *SessionManager
}

// LoginService runs the login state machine: structural validation, then
// credential verification, then session creation and redirect resolution.
// Each submission is a single pass; there is no retry loop.
type LoginService struct {
	credentials ports.CredentialStore
	sessions    *SessionManager
}

// NewLoginService constructs a new LoginService.
func NewLoginService(opts LoginServiceOptions) *LoginService {
	return &LoginService{
		credentials: opts.Credentials,
		sessions:    opts.Sessions,
	}
}

// LoginInput carries one login submission. RedirectTo is attacker
// controlled and validated before use.
type LoginInput struct {
	Phone      string
	Password   string
	RedirectTo string
	Remember   bool
}

// LoginResult contains the session and validated redirect for a successful login.
type LoginResult struct {
	Session    domainauth.Session
	RedirectTo string
}

// Login validates the submission and authenticates the user.
//
// Structural validation checks phone and password independently so the
// caller sees every field error at once; on failure the credential store is
// never consulted (no wasted lookup and no timing signal from a doomed one).
// A credential mismatch yields the same generic phone-field error whether
// the phone is unknown or the password is wrong. Store failures pass
// through as Infrastructure errors and are never rendered as bad
// credentials.
func (s *LoginService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	errs := FieldErrors{}
	if msg := validation.Phone(in.Phone); msg != "" {
		errs["phone"] = msg
	}
	if msg := validation.Password(in.Password); msg != "" {
		errs["password"] = msg
	}
	if len(errs) > 0 {
		return nil, errs
	}

	user, err := s.credentials.Verify(ctx, strings.TrimSpace(in.Phone), in.Password)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInfrastructure, "verify credentials")
	}
	if user == nil {
		return nil, FieldErrors{"phone": invalidCredentialsMessage}
	}

	session, err := s.sessions.Create(ctx, user.ID, in.Remember)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Session:    session,
		RedirectTo: validation.SafeRedirect(in.RedirectTo, DefaultLoginRedirect),
	}, nil
}
