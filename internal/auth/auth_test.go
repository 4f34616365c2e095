package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cdnupload/internal/config"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"Bearer   padded  ", "padded", true},
		{"", "", false},
		{"Bearer ", "", false},
		{"Bearer", "", false},
		{"Basic dXNlcjpwYXNz", "", false},
		{"bearer abc", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, ok := BearerToken(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("supabase", func(t *testing.T) {
		v, err := New(config.AuthConfig{Provider: "supabase", URL: "https://x.supabase.co", AnonKey: "anon"}, nil)
		require.NoError(t, err)
		assert.IsType(t, &SupabaseVerifier{}, v)
	})

	t.Run("supabase missing settings", func(t *testing.T) {
		_, err := New(config.AuthConfig{Provider: "supabase"}, nil)
		assert.Error(t, err)
	})

	t.Run("jwt", func(t *testing.T) {
		v, err := New(config.AuthConfig{Provider: "jwt", JWTSecret: "s3cret"}, nil)
		require.NoError(t, err)
		assert.IsType(t, &JWTVerifier{}, v)
	})

	t.Run("jwt missing secret", func(t *testing.T) {
		_, err := New(config.AuthConfig{Provider: "jwt"}, nil)
		assert.Error(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := New(config.AuthConfig{Provider: "ldap"}, nil)
		assert.EqualError(t, err, `unknown auth provider "ldap"`)
	})
}

func TestSupabaseVerifier_Verify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/user" || r.Header.Get("apikey") != "anon-key" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Header.Get("Authorization") {
		case "Bearer good":
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "u1", "email": "u1@example.com"})
		case "Bearer anonymous":
			_ = json.NewEncoder(w).Encode(map[string]string{"email": "ghost@example.com"})
		case "Bearer garbled":
			_, _ = w.Write([]byte("{not json"))
		default:
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"msg":"invalid JWT"}`))
		}
	}))
	defer srv.Close()

	v := NewSupabaseVerifier(srv.URL, "anon-key", srv.Client())
	ctx := context.Background()

	t.Run("valid token", func(t *testing.T) {
		p, err := v.Verify(ctx, "good")
		require.NoError(t, err)
		assert.Equal(t, "u1", p.ID)
		assert.Equal(t, "u1@example.com", p.Email)
	})

	t.Run("rejected token", func(t *testing.T) {
		p, err := v.Verify(ctx, "expired")
		assert.Nil(t, p)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("no principal id", func(t *testing.T) {
		p, err := v.Verify(ctx, "anonymous")
		assert.Nil(t, p)
		assert.ErrorIs(t, err, ErrNoPrincipal)
	})

	t.Run("malformed body", func(t *testing.T) {
		p, err := v.Verify(ctx, "garbled")
		assert.Nil(t, p)
		assert.ErrorContains(t, err, "decode user")
	})

	t.Run("provider unreachable", func(t *testing.T) {
		down := NewSupabaseVerifier("http://127.0.0.1:1", "anon-key", nil)
		p, err := down.Verify(ctx, "good")
		assert.Nil(t, p)
		assert.ErrorContains(t, err, "identity provider request")
	})
}

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestJWTVerifier_Verify(t *testing.T) {
	const secret = "super-secret-jwt-token-with-at-least-32-characters"
	v := NewJWTVerifier(secret)
	ctx := context.Background()
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))

	t.Run("valid token", func(t *testing.T) {
		raw := signToken(t, secret, jwt.SigningMethodHS256, &accessClaims{
			Email: "u1@example.com",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "u1",
				ExpiresAt: future,
			},
		})

		p, err := v.Verify(ctx, raw)
		require.NoError(t, err)
		assert.Equal(t, "u1", p.ID)
		assert.Equal(t, "u1@example.com", p.Email)
	})

	t.Run("wrong secret", func(t *testing.T) {
		raw := signToken(t, "another-secret", jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "u1", ExpiresAt: future})
		_, err := v.Verify(ctx, raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		raw := signToken(t, secret, jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		})
		_, err := v.Verify(ctx, raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing expiry", func(t *testing.T) {
		raw := signToken(t, secret, jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "u1"})
		_, err := v.Verify(ctx, raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		raw := signToken(t, secret, jwt.SigningMethodHS256, jwt.RegisteredClaims{ExpiresAt: future})
		_, err := v.Verify(ctx, raw)
		assert.ErrorIs(t, err, ErrNoPrincipal)
	})

	t.Run("not a jwt", func(t *testing.T) {
		_, err := v.Verify(ctx, "opaque-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
