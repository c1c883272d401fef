package domain

import (
	"errors"
)

var (
	MessageSuccessLogin       = "login successful"
	MessageSuccessCreateAdmin = "Admin account created successfully"
	MessageSuccessDeleteAdmin = "Admin account deleted successfully"
	MessageSuccessGetAdmins   = "admin accounts retrieved successfully"

	MessageFailedLogin       = "failed to login"
	MessageFailedCreateAdmin = "failed to create admin account"
	MessageFailedDeleteAdmin = "failed to delete admin account"
	MessageFailedGetAdmins   = "failed to retrieve admin accounts"

	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrAdminNotFound      = errors.New("Admin account not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrWeakPassword       = errors.New("password must be at least 8 characters with uppercase, lowercase, digit and special character")
	ErrCredentialsMissing = errors.New("username and password are required")
)

type (
	LoginRequest struct {
		Username string `json:"username" form:"username" validate:"required"`
		Password string `json:"password" form:"password" validate:"required"`
	}

	LoginResponse struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		Username    string `json:"username"`
		IsSuperuser bool   `json:"is_superuser"`
	}

	CreateAdminRequest struct {
		Username    string `json:"username" form:"username" validate:"required"`
		Password    string `json:"password" form:"password" validate:"required"`
		IsSuperuser bool   `json:"is_superuser" form:"is_superuser"`
	}

	AdminResponse struct {
		ID          string `json:"id"`
		Username    string `json:"username"`
		IsSuperuser bool   `json:"is_superuser"`
		CreatedAt   string `json:"created_at"`
	}
)
