// Package identity consumes session tokens minted by the external identity
// provider. The storefront never validates credentials itself; it only checks
// the provider's signature and reads the profile claims.
package identity

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mossxapp/mossx-backend/pkg/config"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// Profile is the subset of provider user data the storefront consumes.
type Profile struct {
	Subject string `json:"subject"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Avatar  string `json:"avatar,omitempty"`
}

// SessionClaims is the provider session token payload.
type SessionClaims struct {
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Avatar string `json:"avatar,omitempty"`
	jwt.RegisteredClaims
}

// Profile projects the claims into the storefront profile shape.
func (c *SessionClaims) Profile() Profile {
	return Profile{
		Subject: c.Subject,
		Name:    c.Name,
		Email:   c.Email,
		Avatar:  c.Avatar,
	}
}

// Verifier checks provider session tokens.
type Verifier interface {
	Verify(token string) (*SessionClaims, error)
}

type verifier struct {
	cfg config.AuthConfig
}

// NewVerifier builds a Verifier for the configured provider issuer.
func NewVerifier(cfg config.AuthConfig) (Verifier, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, fmt.Errorf("auth secret is required")
	}
	if strings.TrimSpace(cfg.Issuer) == "" {
		return nil, fmt.Errorf("auth issuer is required")
	}
	return &verifier{cfg: cfg}, nil
}

// Verify validates the token signature, issuer and expiry and returns the
// typed claims.
func (v *verifier) Verify(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(v.cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(v.cfg.Issuer),
		jwt.WithLeeway(v.cfg.Leeway),
	)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, fmt.Errorf("session token missing subject")
	}
	return claims, nil
}

// MintSessionToken issues a provider-shaped session token. Used by tests and
// the local dev provider; production tokens come from the real provider.
func MintSessionToken(cfg config.AuthConfig, now time.Time, ttl time.Duration, profile Profile) (string, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return "", fmt.Errorf("auth secret is required")
	}
	subject := strings.TrimSpace(profile.Subject)
	if subject == "" {
		subject = "user_" + uuid.NewString()
	}

	claims := SessionClaims{
		Name:   profile.Name,
		Email:  profile.Email,
		Avatar: profile.Avatar,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}
