// Package spotify searches the Spotify catalog with app-only credentials.
package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// DefaultBaseURL is the Spotify Web API root.
const DefaultBaseURL = "https://api.spotify.com/v1"

const userAgent = "spotify-mood-finder/1.0"

var (
	// ErrInvalidCredentials is returned when the token endpoint rejects the credentials.
	ErrInvalidCredentials = errors.New("spotify rejected client credentials")

	// ErrUnexpectedStatus is returned for non-2xx catalog responses.
	ErrUnexpectedStatus = errors.New("unexpected status from spotify")
)

// Client talks to the Spotify accounts service and Web API.
// Requests are made once; failures are returned to the caller unretried.
type Client struct {
	cfg        Config
	httpClient *http.Client
	tokenURL   string
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for token and search calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL overrides the Web API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithTokenURL overrides the accounts service token endpoint.
func WithTokenURL(u string) Option {
	return func(c *Client) {
		c.tokenURL = u
	}
}

// NewClient creates a client. Credentials are checked on each Authenticate
// call so that a server can start without them and report the problem per request.
func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		tokenURL: spotifyauth.TokenURL,
		baseURL:  DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Authenticate exchanges the client credentials for an access token.
func (c *Client) Authenticate(ctx context.Context) (*oauth2.Token, error) {
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}

	cc := &clientcredentials.Config{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		TokenURL:     c.tokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := cc.Token(ctx)
	if err != nil {
		var rErr *oauth2.RetrieveError
		if errors.As(err, &rErr) && rErr.Response != nil {
			switch rErr.Response.StatusCode {
			case http.StatusBadRequest, http.StatusUnauthorized:
				return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
			}
		}
		return nil, fmt.Errorf("requesting token: %w", err)
	}

	return token, nil
}
