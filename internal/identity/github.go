// File: internal/identity/github.go
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// githubUser is the slice of the GitHub /user payload this backend needs.
type githubUser struct {
	Login string `json:"login"`
	Email string `json:"email"`
}

// fetchGitHubLogin resolves a GitHub access token to the account's login
// name via the user-info endpoint. The token is attached through an oauth2
// static source. oauth2.NewClient only carries over the base transport, so
// the bound is enforced through the context deadline.
func (c *gotrueClient) fetchGitHubLogin(ctx context.Context, accessToken string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.githubAPIURL+"/user", nil)
	if err != nil {
		return "", &Error{Kind: KindUpstream, Message: fmt.Sprintf("error building GitHub request: %s", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		c.logger.Warn("GitHub user-info endpoint unreachable", zap.Error(err))
		return "", &Error{Kind: KindUpstream, Message: fmt.Sprintf("no response received from GitHub: %s", err)}
	}
	defer resp.Body.Close()

	contents, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Kind: KindUpstream, Message: fmt.Sprintf("failed reading GitHub response: %s", err)}
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("GitHub user-info endpoint returned non-2xx", zap.Int("status", resp.StatusCode))
		return "", &Error{Kind: KindUpstream, Message: fmt.Sprintf("GitHub responded with non 2xx code: %d", resp.StatusCode)}
	}

	var ghUser githubUser
	if err := json.Unmarshal(contents, &ghUser); err != nil {
		return "", &Error{Kind: KindUpstream, Message: fmt.Sprintf("failed to parse GitHub user info: %s", err)}
	}
	if ghUser.Login == "" {
		return "", &Error{Kind: KindUpstream, Message: "GitHub user info carried no login name"}
	}
	return ghUser.Login, nil
}
