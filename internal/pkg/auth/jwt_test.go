package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/memorial/internal/app/models"
	"github.com/yigit/memorial/internal/pkg/apperrors"
)

func newTestJWTService() *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "unit-test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "memorial.test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService()
	display := "Admin"
	user := &models.User{ID: 3, Email: "admin@example.com", Name: "Admin User", DisplayName: &display, RoleType: models.RoleAdmin}

	token, expiresIn, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), expiresIn)

	claims, err := svc.ValidateAndExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, int64(3), claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "Admin", claims.Name)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "memorial.test", claims.Issuer)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestJWTService()
	issued := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issued }

	token, _, err := svc.GenerateAccessToken(&models.User{ID: 1, Email: "u@example.com", RoleType: models.RoleUser})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, _, err := newTestJWTService().GenerateAccessToken(&models.User{ID: 1, Email: "u@example.com", RoleType: models.RoleUser})
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "different", AccessTokenExp: time.Hour, TokenIssuer: "memorial.test"})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestValidateAndExtractClaims_Empty(t *testing.T) {
	_, err := newTestJWTService().ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)

	_, err = newTestJWTService().ValidateAndExtractClaims("garbage")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFormat)
}

func TestValidateAndExtractClaims_UnknownRole(t *testing.T) {
	svc := newTestJWTService()
	token, _, err := svc.GenerateAccessToken(&models.User{ID: 5, Email: "g@example.com", RoleType: models.RoleType("GUEST")})
	require.NoError(t, err)

	_, err = svc.ValidateAndExtractClaims(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestExtractBearerToken(t *testing.T) {
	tok, err := ExtractBearerToken("Bearer a.b.c")
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", tok)

	tok, err = ExtractBearerToken("a.b.c")
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", tok)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)

	_, err = ExtractBearerToken("Basic xyz")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFormat)
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("DemoPassword123!")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "DemoPassword123!"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
