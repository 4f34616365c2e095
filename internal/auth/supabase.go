package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"cdnupload/internal/model"
)

// SupabaseVerifier asks the Supabase auth server who owns a token by calling
// GET /auth/v1/user.
type SupabaseVerifier struct {
	baseURL string
	anonKey string
	client  *http.Client
}

// NewSupabaseVerifier creates a verifier for the project at baseURL. A nil
// client falls back to NewHTTPClient.
func NewSupabaseVerifier(baseURL, anonKey string, client *http.Client) *SupabaseVerifier {
	if client == nil {
		client = NewHTTPClient()
	}
	return &SupabaseVerifier{baseURL: baseURL, anonKey: anonKey, client: client}
}

type supabaseUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Verify implements Verifier.
func (v *SupabaseVerifier) Verify(ctx context.Context, token string) (*model.Principal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("build user request: %w", err)
	}
	req.Header.Set("apikey", v.anonKey)
	req.Header.Set("Authorization", bearerPrefix+token)
	req.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: identity provider returned %d", ErrInvalidToken, resp.StatusCode)
	}

	var u supabaseUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	if u.ID == "" {
		return nil, ErrNoPrincipal
	}
	return &model.Principal{ID: u.ID, Email: u.Email}, nil
}
