package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/holdco_books/internal/apperrors"
	"github.com/SscSPs/holdco_books/internal/core/domain"
	portsrepo "github.com/SscSPs/holdco_books/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/holdco_books/internal/core/ports/services"
	"github.com/SscSPs/holdco_books/internal/platform/config"
	"github.com/SscSPs/holdco_books/internal/utils"
)

// tokenService signs access tokens with the configured secret, issuer and expiry.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	return utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
}

type authService struct {
	BaseService
	userRepo portsrepo.UserReader
	tokens   portssvc.TokenSvcFacade
}

// NewAuthService creates the password login service.
func NewAuthService(userRepo portsrepo.UserReader, tokens portssvc.TokenSvcFacade) portssvc.AuthSvcFacade {
	return &authService{userRepo: userRepo, tokens: tokens}
}

var (
	_ portssvc.TokenSvcFacade = (*tokenService)(nil)
	_ portssvc.AuthSvcFacade  = (*authService)(nil)
)

// Login checks the password and issues an access token. Unknown users and wrong passwords
// fail identically.
func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	invalid := fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogInfo(ctx, "Login failed: unknown user")
			return nil, "", time.Time{}, invalid
		}
		s.LogError(ctx, err, "Login failed: user lookup")
		return nil, "", time.Time{}, err
	}
	if user.DeletedAt != nil || !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogInfo(ctx, "Login failed: bad credentials", slog.String("user_id", user.UserID))
		return nil, "", time.Time{}, invalid
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(ctx, user)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", user.UserID))
		return nil, "", time.Time{}, err
	}
	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return user, token, expiresAt, nil
}
