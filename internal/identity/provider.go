// File: internal/identity/provider.go
package identity

import (
	"context"
	"fmt"
)

// Principal is the identity provider's representation of an authenticated
// actor, distinct from the internal user row.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// ProviderSession is the opaque session material the provider issues on a
// successful sign-in. It is returned to the caller verbatim and never
// persisted here.
type ProviderSession struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

// ErrorKind classifies provider failures after normalization. Raw transport
// errors never leave this package.
type ErrorKind string

const (
	KindInvalidCredentials ErrorKind = "INVALID_CREDENTIALS"
	KindUpstream           ErrorKind = "UPSTREAM_UNAVAILABLE"
	KindInvalidSession     ErrorKind = "INVALID_SESSION"
)

// Error is the uniform shape every provider failure is normalized into.
// Message is safe to forward on registration paths; login paths discard it.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("identity provider: %s: %s", e.Kind, e.Message)
}

// AsError unwraps a normalized provider error, if err is one.
func AsError(err error) (*Error, bool) {
	provErr, ok := err.(*Error)
	return provErr, ok
}

// GitHubResult carries the outcome of the two-step GitHub exchange: the
// GitHub login name resolved from the access token, plus the provider
// session obtained from the refresh token.
type GitHubResult struct {
	Login     string
	Principal *Principal
	Session   *ProviderSession
}

// Provider wraps the external identity service. All credential checks are
// delegated here; this backend never sees or stores password hashes.
type Provider interface {
	// SignUpWithEmail registers a new credential with the provider and
	// returns the provider-assigned principal.
	SignUpWithEmail(ctx context.Context, email, password string) (*Principal, *ProviderSession, error)

	// SignInWithEmail authenticates existing credentials. Rejections come
	// back as KindInvalidCredentials without distinguishing which part was
	// wrong.
	SignInWithEmail(ctx context.Context, email, password string) (*Principal, *ProviderSession, error)

	// GitHubExchange resolves the GitHub access token to a login name and
	// exchanges the refresh token for a provider session.
	GitHubExchange(ctx context.Context, accessToken, refreshToken string) (*GitHubResult, error)
}
