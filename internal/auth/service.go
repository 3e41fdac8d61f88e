// File: internal/auth/service.go
package auth

import (
	"context"
	"strings"

	"converse_backend/internal/common"
	"converse_backend/internal/config"
	"converse_backend/internal/identity"
	"converse_backend/internal/platform/metrics"
	"converse_backend/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Result is the uniform shape every workflow returns: either a non-empty
// error list, or a user (plus the provider session on login paths). Never
// both.
type Result struct {
	Errors  []common.FieldError
	User    *user.User
	Session *identity.ProviderSession
}

func errResult(errors []common.FieldError) *Result {
	return &Result{Errors: errors}
}

// SessionBinder is the slice of the session manager the workflows need.
type SessionBinder interface {
	Bind(ctx context.Context, userID uuid.UUID)
	UserID(ctx context.Context) (uuid.UUID, bool)
	Destroy(ctx context.Context)
}

// Service orchestrates validation, identity-provider calls, user rows and
// session binding. Store failures propagate as errors and surface to the
// caller as a generic server error; everything else becomes field errors.
type Service struct {
	users    user.Repository
	provider identity.Provider
	sessions SessionBinder
	cfg      *config.Config
	logger   *zap.Logger
	metrics  *metrics.Collector
}

// NewService creates the auth service.
func NewService(
	users user.Repository,
	provider identity.Provider,
	sessions SessionBinder,
	cfg *config.Config,
	logger *zap.Logger,
	collector *metrics.Collector,
) *Service {
	return &Service{
		users:    users,
		provider: provider,
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
		metrics:  collector,
	}
}

// loginErrors is the undifferentiated pair returned for every email-login
// failure past the charset check. Reporting both fields with the same
// wording for a missing row and a wrong password keeps usernames
// unenumerable.
func loginErrors() []common.FieldError {
	return []common.FieldError{
		{Field: "username", Message: "Please check username/email."},
		{Field: "password", Message: "Please check username/password."},
	}
}

// Register creates a new EMAIL-type account. Registration does not log the
// user in; no session is bound here.
func (s *Service) Register(ctx context.Context, username, email, password string) (*Result, error) {
	if fieldErrs, err := validEmail(ctx, email, s.users); err != nil {
		return nil, err
	} else if fieldErrs != nil {
		s.metrics.RecordRegistration("invalid_email")
		return errResult(fieldErrs), nil
	}

	if fieldErrs, err := validUsername(ctx, username, user.LoginTypeEmail, s.users); err != nil {
		return nil, err
	} else if fieldErrs != nil {
		s.metrics.RecordRegistration("invalid_username")
		return errResult(fieldErrs), nil
	}

	principal, _, err := s.provider.SignUpWithEmail(ctx, email, password)
	if err != nil {
		s.metrics.RecordRegistration("provider_rejected")
		s.metrics.RecordProviderError()
		// Pre-account there is no enumeration risk, so the provider's own
		// message is forwarded.
		message := ""
		if provErr, ok := identity.AsError(err); ok {
			message = provErr.Message
		}
		s.logger.Warn("Provider rejected sign-up", zap.Error(err))
		return errResult(common.FieldErrors("password", message)), nil
	}

	newUser := &user.User{
		ExternalID: principal.ID,
		Email:      email,
		Username:   username,
		LoginType:  user.LoginTypeEmail,
	}
	if err := s.users.Create(ctx, newUser); err != nil {
		if apiErr, ok := common.IsAPIError(err); ok && apiErr.Code == common.ErrConflict.Code {
			// Lost the check-then-create race to a concurrent request.
			s.metrics.RecordRegistration("conflict")
			field := "username"
			if details, ok := apiErr.Details.(string); ok && strings.Contains(details, "email") {
				field = "email"
			}
			return errResult(common.FieldErrors(field, "User already exists. Please sign in.")), nil
		}
		return nil, err
	}

	s.metrics.RecordRegistration("success")
	return &Result{User: newUser}, nil
}

// Login authenticates an EMAIL-type account and binds the session on
// success.
func (s *Service) Login(ctx context.Context, username, password string) (*Result, error) {
	if fieldErrs := validLoginUsername(username); fieldErrs != nil {
		s.metrics.RecordLogin("invalid_username")
		return errResult(fieldErrs), nil
	}

	dbUser, err := s.users.FindByUsernameAndLoginType(ctx, username, user.LoginTypeEmail)
	if err != nil {
		return nil, err
	}
	if dbUser == nil {
		s.metrics.RecordLogin("unknown_username")
		return errResult(loginErrors()), nil
	}

	_, session, err := s.provider.SignInWithEmail(ctx, dbUser.Email, password)
	if err != nil {
		s.metrics.RecordLogin("rejected")
		if provErr, ok := identity.AsError(err); ok && provErr.Kind == identity.KindUpstream {
			s.metrics.RecordProviderError()
		}
		// Never more specific than the combined pair, whatever the provider said.
		s.logger.Debug("Provider sign-in failed", zap.Error(err))
		return errResult(loginErrors()), nil
	}

	s.sessions.Bind(ctx, dbUser.ID)
	s.metrics.RecordLogin("success")
	return &Result{User: dbUser, Session: session}, nil
}

// GitHubLogin handles the OAuth flow: resolve the GitHub account, exchange
// the refresh token, then read or create the GITHUB-type row.
//
// A newly created account is returned without binding the session; only a
// pre-existing account is logged in here. The client completes the first
// sign-in with the returned provider session.
func (s *Service) GitHubLogin(ctx context.Context, accessToken, refreshToken string) (*Result, error) {
	exchange, err := s.provider.GitHubExchange(ctx, accessToken, refreshToken)
	if err != nil {
		s.metrics.RecordGitHubLogin("exchange_failed")
		s.metrics.RecordProviderError()
		s.logger.Warn("GitHub exchange failed", zap.Error(err))
		return errResult(common.FieldErrors("githubAccount", "Invalid user")), nil
	}

	dbUser, err := s.users.FindByUsernameAndLoginType(ctx, exchange.Login, user.LoginTypeGitHub)
	if err != nil {
		return nil, err
	}

	if dbUser == nil {
		if !s.cfg.AllowGitHubRegistration {
			s.metrics.RecordGitHubLogin("registration_disabled")
			return errResult(common.FieldErrors("githubAccount", "Not currently registered")), nil
		}
		if exchange.Principal.Email == "" {
			// The provider should always deliver an email for a GitHub
			// principal; its absence is a misconfiguration, not user error.
			s.metrics.RecordGitHubLogin("email_missing")
			s.logger.Error("GitHub principal carried no email", zap.String("login", exchange.Login))
			return errResult(common.FieldErrors("githubAccount", "Server error: email missing")), nil
		}

		newUser := &user.User{
			ExternalID: exchange.Principal.ID,
			Email:      exchange.Principal.Email,
			Username:   exchange.Login,
			LoginType:  user.LoginTypeGitHub,
		}
		if err := s.users.Create(ctx, newUser); err != nil {
			if apiErr, ok := common.IsAPIError(err); ok && apiErr.Code == common.ErrConflict.Code {
				s.metrics.RecordGitHubLogin("conflict")
				return errResult(common.FieldErrors("githubAccount", "Invalid user")), nil
			}
			return nil, err
		}
		s.metrics.RecordGitHubLogin("registered")
		return &Result{User: newUser, Session: exchange.Session}, nil
	}

	s.sessions.Bind(ctx, dbUser.ID)
	s.metrics.RecordGitHubLogin("success")
	return &Result{User: dbUser, Session: exchange.Session}, nil
}

// Logout destroys the current session record. Always reports true; destroy
// failures are logged inside the session manager.
func (s *Service) Logout(ctx context.Context) bool {
	s.sessions.Destroy(ctx)
	s.metrics.RecordLogout()
	return true
}

// CurrentUser resolves the session's bound user id to a row. An anonymous
// session and a stale binding (row deleted since login) both come back as
// (nil, nil).
func (s *Service) CurrentUser(ctx context.Context) (*user.User, error) {
	id, ok := s.sessions.UserID(ctx)
	if !ok {
		return nil, nil
	}
	dbUser, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dbUser, nil
}
