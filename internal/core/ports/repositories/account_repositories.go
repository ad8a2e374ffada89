package repositories

import (
	"context"

	"github.com/SscSPs/holdco_books/internal/core/domain"
)

// AccountReader defines read operations for the chart of accounts
type AccountReader interface {
	// FindAccountByID retrieves a specific account of an entity.
	FindAccountByID(ctx context.Context, entityID, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs. Unknown ids are absent from the map.
	FindAccountsByIDs(ctx context.Context, entityID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves the chart of accounts ordered by account number.
	ListAccounts(ctx context.Context, entityID string, activeOnly bool) ([]domain.Account, error)
}

// AccountWriter is used by the admin tooling to seed a chart; the journal engine never writes accounts.
type AccountWriter interface {
	// UpsertAccounts inserts accounts or updates them by (entity, account number).
	UpsertAccounts(ctx context.Context, accounts []domain.Account) (int, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
