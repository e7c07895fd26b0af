package dto

import "github.com/agencydesk/backoffice/internal/domain"

// RegisterRequest is the account creation payload.
type RegisterRequest struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// RegisterResponse acknowledges the new account.
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

// LoginRequest is the credential payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the successful login body. The shape is part of the API
// contract consumed by the front office.
type LoginResponse struct {
	Token    string      `json:"token"`
	UserID   int64       `json:"userId"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}
