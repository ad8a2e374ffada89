package dto

import "github.com/SscSPs/holdco_books/internal/core/domain"

// LoginRequest carries credentials for password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
	UserID    string `json:"user_id"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

// ToUserResponse converts a domain user, dropping the password hash.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:  u.UserID,
		Email:   u.Email,
		Name:    u.Name,
		IsAdmin: u.IsAdmin,
	}
}
