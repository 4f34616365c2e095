package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"cdnupload/internal/model"
)

// JWTVerifier validates HMAC-signed access tokens locally using the project's
// JWT secret, without a round trip to the auth server.
type JWTVerifier struct {
	secret []byte
	parser *jwt.Parser
}

type accessClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// NewJWTVerifier creates a verifier for tokens signed with secret.
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
			jwt.WithExpirationRequired(),
		),
	}
}

// Verify implements Verifier.
func (v *JWTVerifier) Verify(_ context.Context, raw string) (*model.Principal, error) {
	claims := &accessClaims{}
	_, err := v.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, ErrNoPrincipal
	}
	return &model.Principal{ID: claims.Subject, Email: claims.Email}, nil
}
