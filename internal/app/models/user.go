package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	Name         string    `json:"name" db:"name" example:"Admin User"`
	Email        string    `json:"email" db:"email" example:"admin@example.com"`
	Password     string    `json:"-" db:"password"`
	RoleType     RoleType  `json:"role" db:"role" example:"USER"`
	DisplayName  *string   `json:"display_name" db:"display_name" example:"Admin"`
	MobileNumber *string   `json:"mobile_number" db:"mobile_number"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// PublicName prefers the display name when the user set one
func (u *User) PublicName() string {
	if u.DisplayName != nil && *u.DisplayName != "" {
		return *u.DisplayName
	}
	return u.Name
}
