package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/SscSPs/holdco_books/internal/apperrors"
	"github.com/SscSPs/holdco_books/internal/core/domain"
	portsrepo "github.com/SscSPs/holdco_books/internal/core/ports/repositories"
	"github.com/SscSPs/holdco_books/internal/models"
	"github.com/SscSPs/holdco_books/internal/utils/mapping"
	"github.com/SscSPs/holdco_books/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// entryNumberConstraint is the unique constraint on (entity_id, entry_number).
const entryNumberConstraint = "uq_journal_entries_number"

const entryColumns = `
	journal_entry_id, entity_id, entry_number, entry_date, fiscal_year, fiscal_period,
	entry_type, memo, reference, source_type, source_id, document_id, status, is_locked,
	created_by_id, first_approved_by_id, first_approved_by_email, first_approved_at,
	final_approved_by_id, final_approved_by_email, final_approved_at, posted_at, rejection_reason,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalEntryRepository struct {
	BaseRepository
	maxNumberRetries int
}

// newPgxJournalEntryRepository creates a repository for journal entries, their lines, attachments and audit trail.
func newPgxJournalEntryRepository(pool *pgxpool.Pool, maxNumberRetries int) portsrepo.JournalEntryRepositoryFacade {
	if maxNumberRetries < 1 {
		maxNumberRetries = 1
	}
	return &PgxJournalEntryRepository{
		BaseRepository:   BaseRepository{Pool: pool},
		maxNumberRetries: maxNumberRetries,
	}
}

// Ensure PgxJournalEntryRepository implements portsrepo.JournalEntryRepositoryFacade
var _ portsrepo.JournalEntryRepositoryFacade = (*PgxJournalEntryRepository)(nil)

// WithinTx runs fn in a single transaction that commits only when fn succeeds.
func (r *PgxJournalEntryRepository) WithinTx(ctx context.Context, fn func(store portsrepo.JournalEntryTxStore) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Will be ignored if transaction is committed successfully
	defer r.Rollback(ctx, tx)

	if err := fn(&pgxJournalEntryTxStore{tx: tx, maxNumberRetries: r.maxNumberRetries}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxJournalEntryRepository) FindEntryByID(ctx context.Context, entityID, entryID string) (*domain.JournalEntry, error) {
	return loadEntry(ctx, r.Pool, entityID, entryID, false)
}

// ListEntries retrieves entry headers newest first using keyset pagination on
// (entry_date, created_at, journal_entry_id).
func (r *PgxJournalEntryRepository) ListEntries(ctx context.Context, filter portsrepo.EntryListFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entity_id = $1`
	args := []interface{}{filter.EntityID}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += " AND status = $" + strconv.Itoa(len(args))
	}
	if filter.FiscalYear != nil {
		args = append(args, *filter.FiscalYear)
		query += " AND fiscal_year = $" + strconv.Itoa(len(args))
	}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid next_token", apperrors.ErrValidation)
		}
		args = append(args, cursor.EntryDate, cursor.CreatedAt, cursor.ID)
		n := len(args)
		query += fmt.Sprintf(" AND (entry_date, created_at, journal_entry_id) < ($%d, $%d, $%d)", n-2, n-1, n)
	}
	args = append(args, fetchLimit)
	query += " ORDER BY entry_date DESC, created_at DESC, journal_entry_id DESC LIMIT $" + strconv.Itoa(len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries for entity "+filter.EntityID, err)
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0, limit)
	for rows.Next() {
		m, err := scanEntryHeader(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeToken(pagination.Cursor{EntryDate: last.EntryDate, CreatedAt: last.CreatedAt, ID: last.JournalEntryID})
		token = &t
	}
	return entries, token, nil
}

func (r *PgxJournalEntryRepository) ListAuditLogs(ctx context.Context, entryID string) ([]domain.AuditLog, error) {
	query := `
		SELECT audit_log_id, audit_seq, journal_entry_id, action, performed_by_id, performed_at, comment, old_value, new_value
		FROM journal_entry_audit_logs
		WHERE journal_entry_id = $1
		ORDER BY performed_at, audit_seq;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query audit logs for entry "+entryID, err)
	}
	defer rows.Close()

	logs := []domain.AuditLog{}
	for rows.Next() {
		var m models.AuditLog
		if err := rows.Scan(&m.AuditLogID, &m.AuditSeq, &m.JournalEntryID, &m.Action, &m.PerformedByID,
			&m.PerformedAt, &m.Comment, &m.OldValue, &m.NewValue); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit log row", err)
		}
		logs = append(logs, mapping.ToDomainAuditLog(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating audit log rows", err)
	}
	return logs, nil
}

// pgxJournalEntryTxStore is the JournalEntryTxStore bound to one open transaction.
type pgxJournalEntryTxStore struct {
	tx               pgx.Tx
	maxNumberRetries int
}

var _ portsrepo.JournalEntryTxStore = (*pgxJournalEntryTxStore)(nil)

func (s *pgxJournalEntryTxStore) LockEntry(ctx context.Context, entityID, entryID string) (*domain.JournalEntry, error) {
	return loadEntry(ctx, s.tx, entityID, entryID, true)
}

func (s *pgxJournalEntryTxStore) LockEntryHeaders(ctx context.Context, entityID string, entryIDs []string) ([]domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE entity_id = $1 AND journal_entry_id = ANY($2)
		ORDER BY journal_entry_id
		FOR UPDATE;`
	rows, err := s.tx.Query(ctx, query, entityID, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock journal entries", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		m, err := scanEntryHeader(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}
	return entries, nil
}

// InsertEntry draws the next number for the entry's fiscal year and inserts header, lines and attachments.
// The counter row stays locked until commit, which serialises concurrent creators per entity and year.
// A clash on the entry number (a counter behind imported rows) is retried with the next value inside a
// savepoint; once the retries are spent the call fails with ErrConflict.
func (s *pgxJournalEntryTxStore) InsertEntry(ctx context.Context, entry *domain.JournalEntry) error {
	return s.withFreshNumber(ctx, entry, func(sp pgx.Tx) error {
		if err := insertEntryHeader(ctx, sp, entry); err != nil {
			return err
		}
		if err := insertLines(ctx, sp, entry.Lines); err != nil {
			return err
		}
		return insertAttachments(ctx, sp, entry.Attachments)
	})
}

// RenumberEntry moves the entry to the next number of its (new) fiscal year.
func (s *pgxJournalEntryTxStore) RenumberEntry(ctx context.Context, entry *domain.JournalEntry) error {
	return s.withFreshNumber(ctx, entry, func(sp pgx.Tx) error {
		tag, err := sp.Exec(ctx, `
			UPDATE journal_entries SET entry_number = $3, fiscal_year = $4, fiscal_period = $5
			WHERE entity_id = $1 AND journal_entry_id = $2;`,
			entry.EntityID, entry.JournalEntryID, entry.EntryNumber, entry.FiscalYear, entry.FiscalPeriod)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entry.JournalEntryID)
		}
		return nil
	})
}

func (s *pgxJournalEntryTxStore) withFreshNumber(ctx context.Context, entry *domain.JournalEntry, write func(sp pgx.Tx) error) error {
	return assignEntryNumber(ctx, entry, s.maxNumberRetries,
		func(ctx context.Context) (int, error) {
			return nextEntrySequence(ctx, s.tx, entry.EntityID, entry.FiscalYear)
		},
		func(ctx context.Context) error {
			return inSavepoint(ctx, s.tx, write)
		})
}

// inSavepoint runs write inside a nested transaction so a failed attempt leaves the outer one usable.
func inSavepoint(ctx context.Context, tx pgx.Tx, write func(sp pgx.Tx) error) error {
	sp, err := tx.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to open savepoint", err)
	}
	if err = write(sp); err == nil {
		if err = sp.Commit(ctx); err == nil {
			return nil
		}
	}
	_ = sp.Rollback(ctx)
	return err
}

// assignEntryNumber draws a sequence value, formats it into entry.EntryNumber and runs attempt.
// Only a clash on the entry number constraint is retried, at most maxRetries attempts in total.
func assignEntryNumber(
	ctx context.Context,
	entry *domain.JournalEntry,
	maxRetries int,
	next func(ctx context.Context) (int, error),
	attempt func(ctx context.Context) error,
) error {
	if maxRetries < 1 {
		maxRetries = 1
	}
	for n := 1; ; n++ {
		seq, err := next(ctx)
		if err != nil {
			return err
		}
		entry.EntryNumber = domain.FormatEntryNumber(entry.FiscalYear, seq)

		err = attempt(ctx)
		if err == nil {
			return nil
		}
		if !isEntryNumberClash(err) {
			if code, _ := pgErrorCode(err); code == "" {
				return err
			}
			return translateWriteError(err, "journal entry "+entry.JournalEntryID)
		}
		if n >= maxRetries {
			return apperrors.NewConflictError(fmt.Sprintf("could not assign a unique entry number for fiscal year %d after %d attempts", entry.FiscalYear, n))
		}
	}
}

// isEntryNumberClash reports a unique violation on (entity_id, entry_number).
func isEntryNumberClash(err error) bool {
	code, constraint := pgErrorCode(err)
	return code == pgUniqueViolation && constraint == entryNumberConstraint
}

func nextEntrySequence(ctx context.Context, q querier, entityID string, fiscalYear int) (int, error) {
	query := `
		INSERT INTO journal_entry_sequences (entity_id, fiscal_year, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (entity_id, fiscal_year) DO UPDATE
			SET last_value = journal_entry_sequences.last_value + 1
		RETURNING last_value;
	`
	var seq int
	if err := q.QueryRow(ctx, query, entityID, fiscalYear).Scan(&seq); err != nil {
		return 0, translateWriteError(err, "entry number sequence")
	}
	return seq, nil
}

func (s *pgxJournalEntryTxStore) UpdateEntryHeader(ctx context.Context, entry *domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(*entry)
	query := `
		UPDATE journal_entries SET
			entry_number = $3, entry_date = $4, fiscal_year = $5, fiscal_period = $6,
			entry_type = $7, memo = $8, reference = $9, document_id = $10,
			status = $11, is_locked = $12,
			first_approved_by_id = $13, first_approved_by_email = $14, first_approved_at = $15,
			final_approved_by_id = $16, final_approved_by_email = $17, final_approved_at = $18,
			posted_at = $19, rejection_reason = $20,
			last_updated_at = $21, last_updated_by = $22
		WHERE entity_id = $1 AND journal_entry_id = $2;
	`
	tag, err := s.tx.Exec(ctx, query,
		m.EntityID, m.JournalEntryID,
		m.EntryNumber, m.EntryDate, m.FiscalYear, m.FiscalPeriod,
		m.EntryType, m.Memo, m.Reference, m.DocumentID,
		m.Status, m.IsLocked,
		m.FirstApprovedByID, m.FirstApprovedByEmail, m.FirstApprovedAt,
		m.FinalApprovedByID, m.FinalApprovedByEmail, m.FinalApprovedAt,
		m.PostedAt, m.RejectionReason,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "journal entry "+m.JournalEntryID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, m.JournalEntryID)
	}
	return nil
}

func (s *pgxJournalEntryTxStore) ReplaceLines(ctx context.Context, entryID string, lines []domain.JournalEntryLine) error {
	if _, err := s.tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE journal_entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines of entry "+entryID, err)
	}
	return insertLines(ctx, s.tx, lines)
}

func (s *pgxJournalEntryTxStore) ReplaceAttachments(ctx context.Context, entryID string, attachments []domain.JournalEntryAttachment) error {
	if _, err := s.tx.Exec(ctx, `DELETE FROM journal_entry_attachments WHERE journal_entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete attachments of entry "+entryID, err)
	}
	return insertAttachments(ctx, s.tx, attachments)
}

func (s *pgxJournalEntryTxStore) AppendAuditLogs(ctx context.Context, logs []domain.AuditLog) error {
	if len(logs) == 0 {
		return nil
	}
	query := `
		INSERT INTO journal_entry_audit_logs
			(audit_log_id, journal_entry_id, action, performed_by_id, performed_at, comment, old_value, new_value)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	// Queued in order so audit_seq follows the order of the slice.
	batch := &pgx.Batch{}
	for _, l := range logs {
		m := mapping.ToModelAuditLog(l)
		batch.Queue(query, m.AuditLogID, m.JournalEntryID, m.Action, m.PerformedByID, m.PerformedAt, m.Comment, m.OldValue, m.NewValue)
	}
	if err := s.tx.SendBatch(ctx, batch).Close(); err != nil {
		return translateWriteError(err, "audit log")
	}
	return nil
}

// DeleteEntries removes the entries; lines, attachments and audit rows go with them by cascade.
func (s *pgxJournalEntryTxStore) DeleteEntries(ctx context.Context, entityID string, entryIDs []string) (int64, error) {
	tag, err := s.tx.Exec(ctx, `DELETE FROM journal_entries WHERE entity_id = $1 AND journal_entry_id = ANY($2);`, entityID, entryIDs)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete journal entries", err)
	}
	return tag.RowsAffected(), nil
}

func loadEntry(ctx context.Context, q querier, entityID, entryID string, forUpdate bool) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entity_id = $1 AND journal_entry_id = $2`
	if forUpdate {
		query += " FOR UPDATE"
	}
	m, err := scanEntryHeader(q.QueryRow(ctx, query, entityID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+entryID, err)
	}
	entry := mapping.ToDomainJournalEntry(m)

	if entry.Lines, err = loadLines(ctx, q, entryID); err != nil {
		return nil, err
	}
	if entry.Attachments, err = loadAttachments(ctx, q, entryID); err != nil {
		return nil, err
	}
	return &entry, nil
}

func scanEntryHeader(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.JournalEntryID, &m.EntityID, &m.EntryNumber, &m.EntryDate, &m.FiscalYear, &m.FiscalPeriod,
		&m.EntryType, &m.Memo, &m.Reference, &m.SourceType, &m.SourceID, &m.DocumentID, &m.Status, &m.IsLocked,
		&m.CreatedByID, &m.FirstApprovedByID, &m.FirstApprovedByEmail, &m.FirstApprovedAt,
		&m.FinalApprovedByID, &m.FinalApprovedByEmail, &m.FinalApprovedAt, &m.PostedAt, &m.RejectionReason,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func loadLines(ctx context.Context, q querier, entryID string) ([]domain.JournalEntryLine, error) {
	query := `
		SELECT line_id, journal_entry_id, line_number, account_id, debit_amount, credit_amount, description,
		       primary_asc_topic, xbrl_element_name, xbrl_standard_label
		FROM journal_entry_lines
		WHERE journal_entry_id = $1
		ORDER BY line_number;
	`
	rows, err := q.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	lines := []domain.JournalEntryLine{}
	for rows.Next() {
		var m models.JournalEntryLine
		if err := rows.Scan(&m.LineID, &m.JournalEntryID, &m.LineNumber, &m.AccountID, &m.DebitAmount, &m.CreditAmount,
			&m.Description, &m.PrimaryASCTopic, &m.XBRLElementName, &m.XBRLStandardLabel); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for entry "+entryID, err)
		}
		lines = append(lines, mapping.ToDomainJournalEntryLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for entry "+entryID, err)
	}
	return lines, nil
}

func loadAttachments(ctx context.Context, q querier, entryID string) ([]domain.JournalEntryAttachment, error) {
	query := `
		SELECT journal_entry_id, document_id, display_order, is_primary, created_at, created_by
		FROM journal_entry_attachments
		WHERE journal_entry_id = $1
		ORDER BY display_order;
	`
	rows, err := q.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query attachments for entry "+entryID, err)
	}
	defer rows.Close()

	attachments := []domain.JournalEntryAttachment{}
	for rows.Next() {
		var m models.JournalEntryAttachment
		if err := rows.Scan(&m.JournalEntryID, &m.DocumentID, &m.DisplayOrder, &m.IsPrimary, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan attachment row for entry "+entryID, err)
		}
		attachments = append(attachments, mapping.ToDomainAttachment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating attachment rows for entry "+entryID, err)
	}
	return attachments, nil
}

// insertEntryHeader returns the raw driver error so the caller can detect a number clash.
func insertEntryHeader(ctx context.Context, q querier, entry *domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(*entry)
	query := `INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
		        $19, $20, $21, $22, $23, $24, $25, $26, $27);`
	_, err := q.Exec(ctx, query,
		m.JournalEntryID, m.EntityID, m.EntryNumber, m.EntryDate, m.FiscalYear, m.FiscalPeriod,
		m.EntryType, m.Memo, m.Reference, m.SourceType, m.SourceID, m.DocumentID, m.Status, m.IsLocked,
		m.CreatedByID, m.FirstApprovedByID, m.FirstApprovedByEmail, m.FirstApprovedAt,
		m.FinalApprovedByID, m.FinalApprovedByEmail, m.FinalApprovedAt, m.PostedAt, m.RejectionReason,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return err
}

func insertLines(ctx context.Context, q pgx.Tx, lines []domain.JournalEntryLine) error {
	if len(lines) == 0 {
		return nil
	}
	query := `
		INSERT INTO journal_entry_lines
			(line_id, journal_entry_id, line_number, account_id, debit_amount, credit_amount, description,
			 primary_asc_topic, xbrl_element_name, xbrl_standard_label)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		m := mapping.ToModelJournalEntryLine(line)
		batch.Queue(query, m.LineID, m.JournalEntryID, m.LineNumber, m.AccountID, m.DebitAmount, m.CreditAmount,
			m.Description, m.PrimaryASCTopic, m.XBRLElementName, m.XBRLStandardLabel)
	}
	if err := q.SendBatch(ctx, batch).Close(); err != nil {
		return translateWriteError(err, "journal entry lines")
	}
	return nil
}

func insertAttachments(ctx context.Context, q pgx.Tx, attachments []domain.JournalEntryAttachment) error {
	if len(attachments) == 0 {
		return nil
	}
	query := `
		INSERT INTO journal_entry_attachments (journal_entry_id, document_id, display_order, is_primary, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	batch := &pgx.Batch{}
	for _, a := range attachments {
		m := mapping.ToModelAttachment(a)
		batch.Queue(query, m.JournalEntryID, m.DocumentID, m.DisplayOrder, m.IsPrimary, m.CreatedAt, m.CreatedBy)
	}
	if err := q.SendBatch(ctx, batch).Close(); err != nil {
		return translateWriteError(err, "journal entry attachments")
	}
	return nil
}
