package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QwabenaBoateng/Angiesplug/internal/identity/domain"
)

func newTestManager() *JWTManager {
	return NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)
}

func TestAccessToken_RoundTrip(t *testing.T) {
	mgr := newTestManager()

	user := &domain.SessionUser{ID: "user-1", Email: "jo@example.com", Role: domain.RoleUser}
	token, err := mgr.GenerateAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := mgr.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "jo@example.com", claims.Email)
	assert.Equal(t, domain.RoleUser, claims.Role)
	assert.Empty(t, claims.Capabilities)

	got := claims.SessionUser()
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, user.Role, got.Role)
}

func TestAccessToken_CarriesAdminCapabilities(t *testing.T) {
	mgr := newTestManager()

	token, err := mgr.GenerateAccessToken(&domain.SessionUser{ID: "a", Role: domain.RoleAdmin})
	require.NoError(t, err)

	claims, err := mgr.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		string(domain.CapabilityManageCatalog),
		string(domain.CapabilityManageOrders),
		string(domain.CapabilityManageMedia),
	}, claims.Capabilities)
	assert.NotContains(t, claims.Capabilities, string(domain.CapabilityManageUsers))
}

func TestAccessToken_SuperAdminGetsEverything(t *testing.T) {
	mgr := newTestManager()

	token, err := mgr.GenerateAccessToken(&domain.SessionUser{ID: "s", Role: domain.RoleSuperAdmin})
	require.NoError(t, err)

	claims, err := mgr.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Contains(t, claims.Capabilities, string(domain.CapabilityManageUsers))
	assert.Len(t, claims.Capabilities, len(domain.AllCapabilities()))
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	mgr := newTestManager()

	token, err := mgr.GenerateRefreshToken("user-9")
	require.NoError(t, err)

	userID, err := mgr.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-9", userID)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	mgr := newTestManager()
	other := NewJWTManager("other-secret", 15*time.Minute, 24*time.Hour)

	token, err := mgr.GenerateAccessToken(&domain.SessionUser{ID: "user-1"})
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	mgr := NewJWTManager("test-secret", -time.Minute, 24*time.Hour)

	token, err := mgr.GenerateAccessToken(&domain.SessionUser{ID: "user-1"})
	require.NoError(t, err)

	_, err = mgr.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateAccessToken_WrongIssuer(t *testing.T) {
	mgr := newTestManager()

	claims := &AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(time.Hour)),
			Issuer:    "someone-else",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = mgr.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateAccessToken_MissingSubject(t *testing.T) {
	mgr := newTestManager()

	claims := &AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(time.Hour)),
			Issuer:    issuer,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = mgr.ValidateAccessToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing subject")
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	mgr := newTestManager()

	_, err := mgr.ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}
