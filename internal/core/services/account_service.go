package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/holdco_books/internal/apperrors"
	"github.com/SscSPs/holdco_books/internal/core/domain"
	portsrepo "github.com/SscSPs/holdco_books/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/holdco_books/internal/core/ports/services"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// ServiceOption is a functional option for configuring the account service
type ServiceOption func(*accountService)

// WithAccountEntityReader enables entity checks before seeding.
func WithAccountEntityReader(reader portsrepo.EntityReader) ServiceOption {
	return func(s *accountService) {
		s.EntityReader = reader
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...ServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{accountRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) GetAccount(ctx context.Context, entityID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, entityID, accountID)
	if err != nil {
		// Note: Don't log if error is ErrNotFound, as it's an expected outcome
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountsByIDs(ctx context.Context, entityID string, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, entityID, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to find accounts by IDs", slog.Int("count", len(accountIDs)))
		return nil, err
	}
	for _, id := range accountIDs {
		if _, ok := accounts[id]; !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}
	return accounts, nil
}

func (s *accountService) ListAccounts(ctx context.Context, entityID string, activeOnly bool) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, entityID, activeOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// SeedAccounts validates and upserts a chart of accounts for an entity.
func (s *accountService) SeedAccounts(ctx context.Context, entityID string, accounts []domain.Account, userID string) (int, error) {
	if err := s.EnsureEntity(ctx, entityID); err != nil {
		return 0, err
	}
	now := time.Now().UTC()
	numbers := make(map[string]bool, len(accounts))
	prepared := make([]domain.Account, 0, len(accounts))
	for i, acc := range accounts {
		acc.AccountNumber = strings.TrimSpace(acc.AccountNumber)
		if acc.AccountNumber == "" || strings.TrimSpace(acc.Name) == "" {
			return 0, fmt.Errorf("%w: row %d needs an account number and name", apperrors.ErrValidation, i+1)
		}
		if !acc.AccountType.Valid() {
			return 0, fmt.Errorf("%w: row %d has unknown account type %q", apperrors.ErrValidation, i+1, acc.AccountType)
		}
		if numbers[acc.AccountNumber] {
			return 0, fmt.Errorf("%w: account number %s appears twice", apperrors.ErrDuplicate, acc.AccountNumber)
		}
		numbers[acc.AccountNumber] = true

		if acc.AccountID == "" {
			acc.AccountID = uuid.NewString()
		}
		if acc.NormalBalance == "" {
			acc.NormalBalance = acc.AccountType.DefaultNormalBalance()
		}
		acc.EntityID = entityID
		acc.AuditFields = domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID}
		prepared = append(prepared, acc)
	}

	n, err := s.accountRepo.UpsertAccounts(ctx, prepared)
	if err != nil {
		s.LogError(ctx, err, "Failed to seed accounts", slog.String("entity_id", entityID))
		return 0, err
	}
	s.LogInfo(ctx, "Chart of accounts seeded", slog.String("entity_id", entityID), slog.Int("count", n))
	return n, nil
}
