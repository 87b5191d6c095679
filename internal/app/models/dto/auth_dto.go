package dto

import "github.com/yigit/memorial/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@example.com"`
	Password string `json:"password" binding:"required" example:"DemoPassword123!"`
}

// RegisterRequest is the body of POST /users/register
type RegisterRequest struct {
	Name         string  `json:"name" binding:"required,max=255" example:"Rahim Uddin"`
	Email        string  `json:"email" binding:"required,email" example:"rahim@example.com"`
	Password     string  `json:"password" binding:"required,min=8" example:"s3cret-pass"`
	DisplayName  *string `json:"display_name" binding:"omitempty,max=255" example:"Rahim"`
	MobileNumber *string `json:"mobile_number" binding:"omitempty,max=32" example:"+8801700000000"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn" example:"86400"`
}

// UserResponse represents basic user information
type UserResponse struct {
	ID           int64           `json:"id" example:"1"`
	Name         string          `json:"name" example:"Rahim Uddin"`
	Email        string          `json:"email" example:"rahim@example.com"`
	Role         models.RoleType `json:"role" example:"USER"`
	DisplayName  *string         `json:"display_name"`
	MobileNumber *string         `json:"mobile_number"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

// SessionResponse mirrors the claims of the current session token
type SessionResponse struct {
	UserID int64           `json:"userId" example:"1"`
	Email  string          `json:"email" example:"admin@example.com"`
	Name   string          `json:"name" example:"Admin"`
	Role   models.RoleType `json:"role" example:"ADMIN"`
}

// NewUserResponse maps a user onto its API representation
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.RoleType,
		DisplayName:  u.DisplayName,
		MobileNumber: u.MobileNumber,
	}
}
