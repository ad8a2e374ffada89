package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/holdco_books/internal/apperrors"
	"github.com/SscSPs/holdco_books/internal/core/domain"
	portsrepo "github.com/SscSPs/holdco_books/internal/core/ports/repositories"
	"github.com/SscSPs/holdco_books/internal/models"
	"github.com/SscSPs/holdco_books/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `
	account_id, entity_id, account_number, name, account_type, normal_balance, allow_posting, is_active,
	primary_asc_topic, xbrl_element_name, xbrl_standard_label,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for the chart of accounts.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID, &m.EntityID, &m.AccountNumber, &m.Name, &m.AccountType, &m.NormalBalance,
		&m.AllowPosting, &m.IsActive, &m.PrimaryASCTopic, &m.XBRLElementName, &m.XBRLStandardLabel,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, entityID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE entity_id = $1 AND account_id = $2;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, entityID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, entityID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE entity_id = $1 AND account_id = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, entityID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row during batch fetch: %w", err)
		}
		accounts[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows during batch fetch: %w", err)
	}

	// The map will simply not contain ids that were not found.
	return accounts, nil
}

// ListAccounts retrieves the chart of accounts of an entity ordered by account number.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, entityID string, activeOnly bool) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + `
		FROM accounts
		WHERE entity_id = $1 AND (is_active OR NOT $2)
		ORDER BY account_number;`
	rows, err := r.Pool.Query(ctx, query, entityID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for entity %s: %w", entityID, err)
	}
	defer rows.Close()

	modelAccounts := []models.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		modelAccounts = append(modelAccounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return mapping.ToDomainAccountSlice(modelAccounts), nil
}

// UpsertAccounts inserts the accounts or refreshes them by (entity, account number) in one transaction.
func (r *PgxAccountRepository) UpsertAccounts(ctx context.Context, accounts []domain.Account) (int, error) {
	if len(accounts) == 0 {
		return 0, nil
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	query := `INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (entity_id, account_number) DO UPDATE SET
			name = EXCLUDED.name,
			account_type = EXCLUDED.account_type,
			normal_balance = EXCLUDED.normal_balance,
			allow_posting = EXCLUDED.allow_posting,
			is_active = EXCLUDED.is_active,
			primary_asc_topic = EXCLUDED.primary_asc_topic,
			xbrl_element_name = EXCLUDED.xbrl_element_name,
			xbrl_standard_label = EXCLUDED.xbrl_standard_label,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;`
	batch := &pgx.Batch{}
	for _, acc := range accounts {
		m := mapping.ToModelAccount(acc)
		batch.Queue(query,
			m.AccountID, m.EntityID, m.AccountNumber, m.Name, m.AccountType, m.NormalBalance, m.AllowPosting, m.IsActive,
			m.PrimaryASCTopic, m.XBRLElementName, m.XBRLStandardLabel,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, translateWriteError(err, "accounts")
	}
	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return len(accounts), nil
}
