package pgsql

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/holdco_books/internal/apperrors"
	"github.com/SscSPs/holdco_books/internal/core/domain"
)

var numberClash = &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: entryNumberConstraint}

// counter mimics the sequence upsert: every call hands out the next value.
func counter() func(context.Context) (int, error) {
	n := 0
	return func(context.Context) (int, error) {
		n++
		return n, nil
	}
}

func TestAssignEntryNumber(t *testing.T) {
	boom := errors.New("connection reset")

	tests := []struct {
		name         string
		maxRetries   int
		failures     []error // attempt n returns failures[n-1]; nil or past the end succeeds
		wantErr      error
		wantAttempts int
		wantNumber   string
	}{
		{name: "first try", maxRetries: 5, wantAttempts: 1, wantNumber: "JE-2025-000001"},
		{name: "retries past taken numbers", maxRetries: 5, failures: []error{numberClash, numberClash}, wantAttempts: 3, wantNumber: "JE-2025-000003"},
		{name: "gives up after max retries", maxRetries: 3, failures: []error{numberClash, numberClash, numberClash, numberClash}, wantErr: apperrors.ErrConflict, wantAttempts: 3},
		{name: "zero retries still tries once", maxRetries: 0, failures: []error{numberClash}, wantErr: apperrors.ErrConflict, wantAttempts: 1},
		{name: "other unique constraint is not retried", maxRetries: 5, failures: []error{&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "journal_entries_pkey"}}, wantErr: apperrors.ErrDuplicate, wantAttempts: 1},
		{name: "foreign key violation is a validation error", maxRetries: 5, failures: []error{&pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "journal_entry_lines_account_id_fkey"}}, wantErr: apperrors.ErrValidation, wantAttempts: 1},
		{name: "non-postgres error passes through", maxRetries: 5, failures: []error{boom}, wantErr: boom, wantAttempts: 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			entry := &domain.JournalEntry{JournalEntryID: "je-1", EntityID: "ent-1", FiscalYear: 2025}
			attempts := 0
			err := assignEntryNumber(context.Background(), entry, tc.maxRetries, counter(), func(context.Context) error {
				attempts++
				if attempts <= len(tc.failures) {
					return tc.failures[attempts-1]
				}
				return nil
			})

			assert.Equal(t, tc.wantAttempts, attempts)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantNumber, entry.EntryNumber)
		})
	}
}

func TestAssignEntryNumber_ConflictNamesFiscalYear(t *testing.T) {
	entry := &domain.JournalEntry{JournalEntryID: "je-1", EntityID: "ent-1", FiscalYear: 2026}
	err := assignEntryNumber(context.Background(), entry, 2, counter(), func(context.Context) error { return numberClash })

	require.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, err.Error(), "fiscal year 2026 after 2 attempts")
}

func TestAssignEntryNumber_SequenceFailure(t *testing.T) {
	seqErr := apperrors.NewAppError(500, "failed to write entry number sequence", errors.New("down"))
	called := false
	err := assignEntryNumber(context.Background(), &domain.JournalEntry{FiscalYear: 2025}, 5,
		func(context.Context) (int, error) { return 0, seqErr },
		func(context.Context) error { called = true; return nil })

	assert.ErrorIs(t, err, seqErr)
	assert.False(t, called)
}

func TestIsEntryNumberClash(t *testing.T) {
	assert.True(t, isEntryNumberClash(numberClash))
	assert.True(t, isEntryNumberClash(errors.Join(errors.New("insert header"), numberClash)))
	assert.False(t, isEntryNumberClash(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "uq_accounts_entity_number"}))
	assert.False(t, isEntryNumberClash(&pgconn.PgError{Code: pgCheckViolation, ConstraintName: entryNumberConstraint}))
	assert.False(t, isEntryNumberClash(errors.New("plain")))
}

// savepointTx records how a savepoint was closed. Methods it does not override are never called.
type savepointTx struct {
	pgx.Tx
	beginErr  error
	commitErr error
	begun     int
	committed int
	rolled    int
}

func (f *savepointTx) Begin(context.Context) (pgx.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	f.begun++
	return f, nil
}

func (f *savepointTx) Commit(context.Context) error {
	if f.commitErr != nil {
		return f.commitErr
	}
	f.committed++
	return nil
}

func (f *savepointTx) Rollback(context.Context) error {
	f.rolled++
	return nil
}

func TestInSavepoint(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		tx := &savepointTx{}
		require.NoError(t, inSavepoint(ctx, tx, func(pgx.Tx) error { return nil }))
		assert.Equal(t, 1, tx.committed)
		assert.Equal(t, 0, tx.rolled)
	})

	t.Run("rolls back a failed write and keeps the error", func(t *testing.T) {
		tx := &savepointTx{}
		err := inSavepoint(ctx, tx, func(pgx.Tx) error { return numberClash })
		assert.True(t, isEntryNumberClash(err))
		assert.Equal(t, 0, tx.committed)
		assert.Equal(t, 1, tx.rolled)
	})

	t.Run("rolls back a failed release", func(t *testing.T) {
		tx := &savepointTx{commitErr: numberClash}
		err := inSavepoint(ctx, tx, func(pgx.Tx) error { return nil })
		assert.True(t, isEntryNumberClash(err))
		assert.Equal(t, 1, tx.rolled)
	})

	t.Run("savepoint cannot open", func(t *testing.T) {
		tx := &savepointTx{beginErr: errors.New("tx aborted")}
		called := false
		err := inSavepoint(ctx, tx, func(pgx.Tx) error { called = true; return nil })
		assert.Error(t, err)
		assert.False(t, called)
	})
}

func TestAssignEntryNumber_OneSavepointPerAttempt(t *testing.T) {
	tx := &savepointTx{}
	entry := &domain.JournalEntry{JournalEntryID: "je-1", EntityID: "ent-1", FiscalYear: 2025}

	writes := 0
	err := assignEntryNumber(context.Background(), entry, 3, counter(), func(ctx context.Context) error {
		return inSavepoint(ctx, tx, func(pgx.Tx) error {
			writes++
			if writes == 1 {
				return numberClash
			}
			return nil
		})
	})

	require.NoError(t, err)
	assert.Equal(t, "JE-2025-000002", entry.EntryNumber)
	assert.Equal(t, 2, tx.begun)
	assert.Equal(t, 1, tx.rolled)
	assert.Equal(t, 1, tx.committed)
}
