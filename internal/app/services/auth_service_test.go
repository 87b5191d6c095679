package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/memorial/internal/app/models"
	"github.com/yigit/memorial/internal/app/models/dto"
	"github.com/yigit/memorial/internal/pkg/apperrors"
	"github.com/yigit/memorial/internal/pkg/auth"
)

func newTestJWT() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "memorial.test",
	})
}

func TestRegister(t *testing.T) {
	users := new(mockUserStore)
	svc := NewAuthService(users, newTestJWT(), zerolog.Nop())

	users.On("EmailExists", mock.Anything, "rahim@example.com").Return(false, nil).Once()
	users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "rahim@example.com" &&
			u.RoleType == models.RoleUser &&
			u.Password != "s3cret-pass" &&
			auth.CheckPassword(u.Password, "s3cret-pass")
	})).Return(int64(11), nil).Once()

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Rahim Uddin",
		Email:    " Rahim@Example.com ",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), resp.ID)
	assert.Equal(t, models.RoleUser, resp.Role)
	users.AssertExpectations(t)
}

func TestRegister_Rejections(t *testing.T) {
	users := new(mockUserStore)
	svc := NewAuthService(users, newTestJWT(), zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Name: "A", Email: "a@example.com", Password: "short"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Register(ctx, &dto.RegisterRequest{Name: "A", Email: "not-an-email", Password: "long-enough"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	badMobile := "call me"
	_, err = svc.Register(ctx, &dto.RegisterRequest{Name: "A", Email: "a@example.com", Password: "long-enough", MobileNumber: &badMobile})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "mobile_number", err.(*apperrors.CustomError).Field)

	users.On("EmailExists", mock.Anything, "taken@example.com").Return(true, nil).Once()
	_, err = svc.Register(ctx, &dto.RegisterRequest{Name: "A", Email: "taken@example.com", Password: "long-enough"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	users.AssertExpectations(t)
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("DemoPassword123!")
	require.NoError(t, err)

	users := new(mockUserStore)
	jwtService := newTestJWT()
	svc := NewAuthService(users, jwtService, zerolog.Nop())

	user := &models.User{ID: 1, Name: "Admin User", Email: "admin@example.com", Password: hash, RoleType: models.RoleAdmin}
	users.On("GetUserByEmail", mock.Anything, "admin@example.com").Return(user, nil)
	users.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(nil, apperrors.ErrUserNotFound)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "admin@example.com", Password: "DemoPassword123!"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.Token.TokenType)
	assert.Equal(t, int64(3600), resp.Token.ExpiresIn)

	claims, err := jwtService.ValidateAndExtractClaims(resp.Token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "admin@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
