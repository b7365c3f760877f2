package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Perfis de usuário
const (
	RoleOwner = 1
	RoleStaff = 2
)

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Company      string    `json:"company"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	RoleID       int       `json:"role_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type SignUpRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Company         string `json:"company"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type Claims struct {
	UserID      int
	UserName    string
	UserEmail   string
	UserCompany string
	UserRoleID  int
	jwt.RegisteredClaims
}

type CreateStaffRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
