package dto

import "time"

// RegisterRequest payload for new access records.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserID   int64  `json:"user_id"`
	RoleID   int64  `json:"role_id"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for login.
type AuthResponse struct {
	Token     string    `json:"access_token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AccessResponse is an access record without credentials.
type AccessResponse struct {
	ID     int64  `json:"id"`
	Email  string `json:"email"`
	UserID int64  `json:"user_id"`
	RoleID int64  `json:"role_id"`
}
