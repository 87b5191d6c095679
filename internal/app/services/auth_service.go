package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/memorial/internal/app/models"
	"github.com/yigit/memorial/internal/app/models/dto"
	"github.com/yigit/memorial/internal/pkg/apperrors"
	"github.com/yigit/memorial/internal/pkg/auth"
	"github.com/yigit/memorial/internal/pkg/validation"
)

// TokenIssuer signs session tokens
type TokenIssuer interface {
	GenerateAccessToken(user *models.User) (string, int64, error)
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo UserStore
	tokens   TokenIssuer
	logger   zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo UserStore, tokens TokenIssuer, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a USER account
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(req.Email)

	if err := validation.First(
		validation.NewStringValidation("name", req.Name).WithMaxLength(validation.NameMaxLength),
		validation.NewStringValidation("email", email).WithPattern(validation.EmailPattern),
		validation.NewStringValidation("password", req.Password).WithMinLength(validation.PasswordMinLength),
		validation.NewStringValidation("display_name", derefString(req.DisplayName)).Optional().WithMaxLength(validation.NameMaxLength),
		validation.NewStringValidation("mobile_number", derefString(req.MobileNumber)).Optional().WithPattern(validation.MobilePattern),
	); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Password:     hashedPassword,
		RoleType:     models.RoleUser,
		DisplayName:  req.DisplayName,
		MobileNumber: req.MobileNumber,
	}

	userID, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("user creation error: %w", err)
	}
	user.ID = userID

	s.logger.Info().Int64("userID", userID).Str("email", email).Msg("User registered")
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// Login authenticates a user and issues a session token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Warn().Str("email", email).Msg("Login rejected: wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
		User: dto.NewUserResponse(user),
	}, nil
}

// GetUser returns the account behind a session
func (s *AuthService) GetUser(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	if userID <= 0 {
		return nil, apperrors.ErrTokenInvalid
	}
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}
