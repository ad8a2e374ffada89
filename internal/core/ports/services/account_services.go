package services

import (
	"context"

	"github.com/SscSPs/holdco_books/internal/core/domain"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	// GetAccount retrieves a specific account of an entity.
	GetAccount(ctx context.Context, entityID string, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts; it fails with ErrNotFound naming the first missing id.
	GetAccountsByIDs(ctx context.Context, entityID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves the chart of accounts of an entity.
	ListAccounts(ctx context.Context, entityID string, activeOnly bool) ([]domain.Account, error)
}

// AccountSeederSvc loads a chart of accounts. It is only wired into the admin tooling.
type AccountSeederSvc interface {
	SeedAccounts(ctx context.Context, entityID string, accounts []domain.Account, userID string) (int, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountSeederSvc
}
