package services

import (
	"context"
	"time"

	"github.com/SscSPs/holdco_books/internal/core/domain"
)

// TokenSvcFacade issues access tokens.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// AuthSvcFacade authenticates users by password.
type AuthSvcFacade interface {
	// Login verifies credentials and returns the user with a signed access token.
	Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error)
}

// UserSvcFacade exposes user lookups and creation.
type UserSvcFacade interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	CreateUser(ctx context.Context, email, name, password string, isAdmin bool) (*domain.User, error)
}
