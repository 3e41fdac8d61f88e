// File: internal/identity/gotrue.go
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"converse_backend/internal/config"

	"go.uber.org/zap"
)

// gotrueClient talks to a GoTrue-compatible auth endpoint (the REST surface
// Supabase exposes): /auth/v1/signup and /auth/v1/token with the password
// and refresh_token grants.
type gotrueClient struct {
	baseURL      string
	apiKey       string
	redirectTo   string
	githubAPIURL string
	timeout      time.Duration
	httpClient   *http.Client
	logger       *zap.Logger
}

// NewGoTrueProvider creates the production Provider backed by the configured
// identity service. Outbound calls share one bounded-timeout client so a
// stalled provider cannot suspend a request indefinitely.
func NewGoTrueProvider(cfg *config.Config, logger *zap.Logger) Provider {
	return &gotrueClient{
		baseURL:      strings.TrimRight(cfg.IdentityProviderURL, "/"),
		apiKey:       cfg.IdentityProviderKey,
		redirectTo:   cfg.RegisterRedirectURL,
		githubAPIURL: strings.TrimRight(cfg.GitHubAPIURL, "/"),
		timeout:      cfg.ProviderTimeout,
		httpClient:   &http.Client{Timeout: cfg.ProviderTimeout},
		logger:       logger,
	}
}

// tokenResponse mirrors the GoTrue token/signup payload. Error fields double
// up because GoTrue has used several shapes across versions.
type tokenResponse struct {
	AccessToken  string     `json:"access_token"`
	TokenType    string     `json:"token_type"`
	ExpiresIn    int        `json:"expires_in"`
	RefreshToken string     `json:"refresh_token"`
	User         *Principal `json:"user"`

	// Signup responses put the principal at the top level.
	ID    string `json:"id"`
	Email string `json:"email"`

	ErrorCode        string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

func (t *tokenResponse) errorMessage() string {
	for _, m := range []string{t.ErrorDescription, t.Msg, t.Message, t.ErrorCode} {
		if m != "" {
			return m
		}
	}
	return ""
}

func (t *tokenResponse) principal() *Principal {
	if t.User != nil {
		return t.User
	}
	if t.ID != "" {
		return &Principal{ID: t.ID, Email: t.Email}
	}
	return nil
}

func (t *tokenResponse) session() *ProviderSession {
	if t.AccessToken == "" {
		return nil
	}
	return &ProviderSession{
		AccessToken:  t.AccessToken,
		TokenType:    t.TokenType,
		ExpiresIn:    t.ExpiresIn,
		RefreshToken: t.RefreshToken,
	}
}

func (c *gotrueClient) SignUpWithEmail(ctx context.Context, email, password string) (*Principal, *ProviderSession, error) {
	endpoint := c.baseURL + "/auth/v1/signup"
	if c.redirectTo != "" {
		endpoint += "?redirect_to=" + url.QueryEscape(c.redirectTo)
	}

	resp, err := c.post(ctx, endpoint, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, nil, err
	}
	if resp.status >= 400 {
		msg := resp.body.errorMessage()
		if msg == "" {
			msg = fmt.Sprintf("provider rejected sign-up with status %d", resp.status)
		}
		c.logger.Warn("Identity provider rejected sign-up", zap.Int("status", resp.status))
		return nil, nil, &Error{Kind: KindUpstream, Message: msg}
	}

	principal := resp.body.principal()
	if principal == nil {
		return nil, nil, &Error{Kind: KindInvalidSession, Message: "provider returned no principal"}
	}
	return principal, resp.body.session(), nil
}

func (c *gotrueClient) SignInWithEmail(ctx context.Context, email, password string) (*Principal, *ProviderSession, error) {
	resp, err := c.post(ctx, c.baseURL+"/auth/v1/token?grant_type=password", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, nil, err
	}
	if resp.status >= 500 {
		return nil, nil, &Error{Kind: KindUpstream, Message: fmt.Sprintf("provider responded with status %d", resp.status)}
	}
	if resp.status >= 400 {
		// Wrong email and wrong password are deliberately indistinguishable.
		c.logger.Debug("Identity provider rejected credentials", zap.Int("status", resp.status))
		return nil, nil, &Error{Kind: KindInvalidCredentials, Message: "invalid credentials"}
	}

	principal, session := resp.body.principal(), resp.body.session()
	if principal == nil || session == nil {
		return nil, nil, &Error{Kind: KindInvalidSession, Message: "provider returned no usable session"}
	}
	return principal, session, nil
}

func (c *gotrueClient) GitHubExchange(ctx context.Context, accessToken, refreshToken string) (*GitHubResult, error) {
	login, err := c.fetchGitHubLogin(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	resp, err := c.post(ctx, c.baseURL+"/auth/v1/token?grant_type=refresh_token", map[string]string{
		"refresh_token": refreshToken,
	})
	if err != nil {
		return nil, err
	}
	if resp.status >= 400 {
		msg := resp.body.errorMessage()
		if msg == "" {
			msg = fmt.Sprintf("provider responded with status %d", resp.status)
		}
		c.logger.Warn("Identity provider rejected refresh token", zap.Int("status", resp.status))
		return nil, &Error{Kind: KindUpstream, Message: msg}
	}

	principal, session := resp.body.principal(), resp.body.session()
	if principal == nil || session == nil {
		return nil, &Error{Kind: KindInvalidSession, Message: "provider returned no usable session"}
	}
	return &GitHubResult{Login: login, Principal: principal, Session: session}, nil
}

type providerResponse struct {
	status int
	body   tokenResponse
}

// post issues a JSON request and decodes the GoTrue payload. Network errors
// and malformed bodies are normalized to KindUpstream here so callers only
// ever see Error values.
func (c *gotrueClient) post(ctx context.Context, endpoint string, payload map[string]string) (*providerResponse, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, &Error{Kind: KindUpstream, Message: fmt.Sprintf("error encoding provider request: %s", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return nil, &Error{Kind: KindUpstream, Message: fmt.Sprintf("error building provider request: %s", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Identity provider unreachable", zap.Error(err))
		return nil, &Error{Kind: KindUpstream, Message: fmt.Sprintf("no response received from auth server: %s", err)}
	}
	defer httpResp.Body.Close()

	contents, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &Error{Kind: KindUpstream, Message: fmt.Sprintf("failed reading auth server response: %s", err)}
	}

	resp := &providerResponse{status: httpResp.StatusCode}
	if len(contents) > 0 {
		if err := json.Unmarshal(contents, &resp.body); err != nil {
			return nil, &Error{Kind: KindUpstream, Message: fmt.Sprintf("auth server responded with malformed body: %s", err)}
		}
	}
	return resp, nil
}
