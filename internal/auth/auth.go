// Package auth resolves bearer tokens into principals through the configured
// identity provider.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"cdnupload/internal/config"
	"cdnupload/internal/model"
)

var (
	// ErrInvalidToken is returned when the provider rejects the token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrNoPrincipal is returned when a token verifies but carries no subject.
	ErrNoPrincipal = errors.New("token does not resolve to a principal")
)

// Verifier checks a bearer token and returns the principal it belongs to.
type Verifier interface {
	Verify(ctx context.Context, token string) (*model.Principal, error)
}

const bearerPrefix = "Bearer "

// BearerToken extracts the token from an Authorization header value.
// It reports false when the header is empty, uses another scheme, or has no token.
func BearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", false
	}
	return token, true
}

// NewHTTPClient returns the client used for identity-provider calls.
// It carries no timeout of its own; the request context bounds each call.
func NewHTTPClient() *http.Client {
	return &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
}

// New builds the Verifier selected by cfg.Provider.
func New(cfg config.AuthConfig, client *http.Client) (Verifier, error) {
	switch cfg.Provider {
	case config.AuthProviderSupabase:
		if cfg.URL == "" || cfg.AnonKey == "" {
			return nil, errors.New("supabase url and anon key are required")
		}
		return NewSupabaseVerifier(cfg.URL, cfg.AnonKey, client), nil
	case config.AuthProviderJWT:
		if cfg.JWTSecret == "" {
			return nil, errors.New("jwt secret is required")
		}
		return NewJWTVerifier(cfg.JWTSecret), nil
	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.Provider)
	}
}
