// Package auth manages the OAuth2 credential lifecycle: authorization URL,
// code exchange, refresh, and the connection-test ping.
package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"

	"taskbridge/internal/apperr"
	"taskbridge/internal/config"
)

const (
	// AuthorizePath is the authorization endpoint path.
	AuthorizePath = "/oauth2/authorize"

	// TokenPath is the token endpoint path.
	TokenPath = "/oauth2/token"

	// PingPath is the authenticated connection-test endpoint path.
	PingPath = "/oauth2/ping"
)

// Manager wraps an oauth2.Config for the task service. The caller owns
// persistence of any token the manager returns.
type Manager struct {
	oauth   oauth2.Config
	baseURL string
}

// NewManager creates a Manager for the given service origin and registered
// client credentials.
func NewManager(baseURL string, client config.OAuthClient, redirectURL string) *Manager {
	return &Manager{
		baseURL: baseURL,
		oauth: oauth2.Config{
			ClientID:     client.ClientID,
			ClientSecret: client.ClientSecret,
			RedirectURL:  redirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:   baseURL + AuthorizePath,
				TokenURL:  baseURL + TokenPath,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
	}
}

// AuthCodeURL returns the browser URL for the authorization step.
func (m *Manager) AuthCodeURL(state string) string {
	return m.oauth.AuthCodeURL(state)
}

// Exchange trades an authorization code for an access/refresh token pair
// (grant_type=authorization_code).
func (m *Manager) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := m.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, &apperr.AuthError{Op: "exchange", Err: err}
	}
	return token, nil
}

// Refresh obtains a fresh access token using the refresh token
// (grant_type=refresh_token). The passed token is not mutated.
func (m *Manager) Refresh(ctx context.Context, token *oauth2.Token) (*oauth2.Token, error) {
	// Presenting only the refresh token forces a round trip to the
	// token endpoint instead of reusing the held access token.
	source := m.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: token.RefreshToken})
	fresh, err := source.Token()
	if err != nil {
		return nil, &apperr.AuthError{Op: "refresh", Err: err}
	}
	return fresh, nil
}

// HTTPClient returns an http.Client whose transport injects the bearer token
// and refreshes it before expiry.
func (m *Manager) HTTPClient(ctx context.Context, token *oauth2.Token) *http.Client {
	return oauth2.NewClient(ctx, m.oauth.TokenSource(ctx, token))
}

// Ping verifies the token against the connection-test endpoint.
func (m *Manager) Ping(ctx context.Context, token *oauth2.Token) error {
	resp, err := resty.New().R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetAuthToken(token.AccessToken).
		Get(m.baseURL + PingPath)
	if err != nil {
		return &apperr.AuthError{Op: "ping", Err: err}
	}
	if resp.IsError() {
		return &apperr.AuthError{Op: "ping", Err: &apperr.TransportError{StatusCode: resp.StatusCode()}}
	}
	return nil
}

// LoadToken reads a stored token file.
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// SaveToken writes a token file with mode 0600.
func SaveToken(path string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
