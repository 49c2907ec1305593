// Package googleauth builds authenticated HTTP clients for Google APIs from
// either a service account key file or an OAuth2 refresh token.
package googleauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Credentials holds one of the supported authentication methods.
type Credentials struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
}

// Authentication errors.
var (
	ErrNoCredentials       = errors.New("no authentication method configured")
	ErrMultipleCredentials = errors.New("multiple authentication methods configured; use either OAuth2 or service account")
)

// HasOAuth reports whether a complete OAuth2 refresh-token triple is set.
func (c Credentials) HasOAuth() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}

// HasServiceAccount reports whether a service account key file is set.
func (c Credentials) HasServiceAccount() bool {
	return c.ServiceAccountPath != ""
}

// Validate checks that exactly one authentication method is configured.
func (c Credentials) Validate() error {
	switch {
	case !c.HasOAuth() && !c.HasServiceAccount():
		return ErrNoCredentials
	case c.HasOAuth() && c.HasServiceAccount():
		return ErrMultipleCredentials
	}
	return nil
}

// TokenSource returns a token source for the given scopes.
func (c Credentials) TokenSource(ctx context.Context, scopes ...string) (oauth2.TokenSource, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if c.HasServiceAccount() {
		jsonKey, err := os.ReadFile(c.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, scopes...)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}
		return jwtConfig.TokenSource(ctx), nil
	}

	client := &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       scopes,
	}
	token := &oauth2.Token{
		RefreshToken: c.RefreshToken,
		TokenType:    "Bearer",
	}
	return client.TokenSource(ctx, token), nil
}

// HTTPClient returns an HTTP client that authorizes every request.
func (c Credentials) HTTPClient(ctx context.Context, scopes ...string) (*http.Client, error) {
	ts, err := c.TokenSource(ctx, scopes...)
	if err != nil {
		return nil, err
	}
	return oauth2.NewClient(ctx, ts), nil
}
