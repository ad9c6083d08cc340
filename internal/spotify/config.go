package spotify

import "errors"

// ErrMissingCredentials is returned when the client ID or secret is empty.
var ErrMissingCredentials = errors.New("spotify API credentials not configured")

// Config holds the application credentials for the client-credentials flow.
type Config struct {
	ClientID     string
	ClientSecret string
}

// Validate returns ErrMissingCredentials if either credential is empty.
func (c Config) Validate() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return ErrMissingCredentials
	}
	return nil
}
