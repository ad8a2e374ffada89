package pgsql

import (
	portsrepo "github.com/SscSPs/holdco_books/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every Postgres repository onto one pool.
// entryNumberRetries bounds the attempts to assign a unique entry number.
func NewRepositoryProvider(dbPool *pgxpool.Pool, entryNumberRetries int) portsrepo.RepositoryProvider {
	entityRepo := newPgxEntityRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:      newPgxAccountRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
		EntityRepo:       entityRepo,
		DocumentRepo:     entityRepo,
		JournalEntryRepo: newPgxJournalEntryRepository(dbPool, entryNumberRetries),
		ReportingRepo:    newReportingRepository(dbPool),
	}
}
