package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	tokenPath   = "/jwt-auth/v1/token"
	profilePath = "/wp/v2/users/me"
)

// TokenEvictor removes the locally cached token. The client calls it whenever
// any request comes back 401, so a stale token never survives a rejection.
type TokenEvictor interface {
	DeleteToken() error
}

// Client talks to the remote WordPress JWT-auth REST API. It performs no
// retries and holds no state beyond the base URL; callers own the token.
type Client struct {
	baseURL    string
	httpClient *http.Client
	evictor    TokenEvictor
	log        zerolog.Logger
}

// New creates a client for the API at baseURL (e.g. "https://voltms.com/wp-json").
// evictor may be nil, in which case 401 responses are not intercepted.
func New(baseURL string, evictor TokenEvictor, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &evictingTransport{
				next:    http.DefaultTransport,
				evictor: evictor,
				log:     log,
			},
		},
		evictor: evictor,
		log:     log,
	}
}

// SetHTTPClient sets a custom HTTP client. The 401 interceptor is reattached
// around the client's transport.
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	next := httpClient.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	httpClient.Transport = &evictingTransport{
		next:    next,
		evictor: c.evictor,
		log:     c.log,
	}
	c.httpClient = httpClient
}

// TokenResponse is the credential-exchange response body.
type TokenResponse struct {
	Token           string `json:"token"`
	UserEmail       string `json:"user_email"`
	UserNicename    string `json:"user_nicename"`
	UserDisplayName string `json:"user_display_name"`
}

// Profile is the caller's profile as served by /wp/v2/users/me. Only
// IsSuperAdmin carries meaning for the session core; the rest is passed
// through for display.
type Profile struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	Link         string `json:"link"`
	IsSuperAdmin bool   `json:"is_super_admin"`
}

// wpError is the WordPress REST error payload.
type wpError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Authenticate exchanges credentials for a bearer token.
func (c *Client) Authenticate(ctx context.Context, username, password string) (string, error) {
	reqBody := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{
		Username: username,
		Password: password,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+tokenPath, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", c.decodeError(resp, "invalid username or password")
	}

	var tokenResp TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if tokenResp.Token == "" {
		return "", &AuthError{Status: resp.StatusCode, Message: "identity service returned no token"}
	}

	return tokenResp.Token, nil
}

// FetchProfile fetches the profile of the user the token belongs to. A 401
// means the token is expired or invalid.
func (c *Client) FetchProfile(ctx context.Context, token string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+profilePath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.decodeError(resp, "session is no longer valid")
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &profile, nil
}

// ClearLocalTrace removes the cached token from durable storage. It never
// calls the remote API (no server-side revocation exists) and always
// succeeds; a missing token is not an error.
func (c *Client) ClearLocalTrace() {
	if c.evictor == nil {
		return
	}
	if err := c.evictor.DeleteToken(); err != nil {
		c.log.Warn().Err(err).Msg("Failed to clear cached token")
	}
}

// decodeError turns a non-2xx response into an AuthError, preserving the
// remote diagnostic message when the body carries one.
func (c *Client) decodeError(resp *http.Response, fallback string) *AuthError {
	authErr := &AuthError{
		Status:  resp.StatusCode,
		Message: fallback,
	}

	var remote wpError
	if err := json.NewDecoder(resp.Body).Decode(&remote); err == nil && remote.Message != "" {
		authErr.Code = remote.Code
		authErr.Message = remote.Message
	}

	return authErr
}

// evictingTransport deletes the locally cached token whenever any response
// comes back 401, independent of which call triggered it.
type evictingTransport struct {
	next    http.RoundTripper
	evictor TokenEvictor
	log     zerolog.Logger
}

func (t *evictingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return resp, err
	}

	if resp.StatusCode == http.StatusUnauthorized && t.evictor != nil {
		t.log.Debug().Str("path", req.URL.Path).Msg("401 response, evicting cached token")
		if evictErr := t.evictor.DeleteToken(); evictErr != nil {
			t.log.Warn().Err(evictErr).Msg("Failed to evict cached token")
		}
	}

	return resp, err
}
