package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/QwabenaBoateng/Angiesplug/internal/identity/domain"
)

const issuer = "angiesplug"

// AccessClaims is the payload of an access token. The user ID travels in the
// registered Subject claim; the capability set is baked in at issue time so
// the storefront can gate admin controls straight off the token.
type AccessClaims struct {
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Capabilities []string `json:"capabilities,omitempty"`
	jwt.RegisteredClaims
}

// SessionUser converts the claims back to the session representation.
func (c *AccessClaims) SessionUser() *domain.SessionUser {
	return &domain.SessionUser{
		ID:    c.Subject,
		Email: c.Email,
		Role:  c.Role,
	}
}

// RefreshClaims carries only the registered claims; Subject is the user ID.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

// JWTManager signs and verifies HS256 tokens for the storefront.
type JWTManager struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewJWTManager creates a manager with the given secret and expiry durations.
func NewJWTManager(secret string, accessExpiry, refreshExpiry time.Duration) *JWTManager {
	return &JWTManager{
		secret:        []byte(secret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// GenerateAccessToken signs an access token for the session user, embedding
// the capabilities their role grants.
func (m *JWTManager) GenerateAccessToken(user *domain.SessionUser) (string, error) {
	now := time.Now().UTC()

	grants := domain.Grants(user)
	caps := make([]string, len(grants))
	for i, c := range grants {
		caps[i] = string(c)
	}

	claims := &AccessClaims{
		Email:        user.Email,
		Role:         user.Role,
		Capabilities: caps,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessExpiry)),
			Issuer:    issuer,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// GenerateRefreshToken signs a refresh token identifying the user only.
func (m *JWTManager) GenerateRefreshToken(userID string) (string, error) {
	now := time.Now().UTC()
	claims := &RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshExpiry)),
			Issuer:    issuer,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign refresh token: %w", err)
	}
	return signed, nil
}

// ValidateAccessToken verifies signature, method, issuer, and expiry.
func (m *JWTManager) ValidateAccessToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if _, err := jwt.ParseWithClaims(tokenString, claims, m.keyFunc, m.parserOptions()...); err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("access token missing subject")
	}
	return claims, nil
}

// ValidateRefreshToken verifies a refresh token and returns the user ID.
func (m *JWTManager) ValidateRefreshToken(tokenString string) (string, error) {
	claims := &RefreshClaims{}
	if _, err := jwt.ParseWithClaims(tokenString, claims, m.keyFunc, m.parserOptions()...); err != nil {
		return "", fmt.Errorf("parse refresh token: %w", err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("refresh token missing subject")
	}
	return claims.Subject, nil
}

func (m *JWTManager) keyFunc(*jwt.Token) (any, error) {
	return m.secret, nil
}

func (m *JWTManager) parserOptions() []jwt.ParserOption {
	return []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	}
}
