package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/holdco_books/internal/core/domain"
	portsrepo "github.com/SscSPs/holdco_books/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// ListPostedLines returns the lines of posted entries dated within the period.
func (r *reportingRepository) ListPostedLines(ctx context.Context, entityID string, period domain.DateRange) ([]domain.PostedLine, error) {
	query := `
		SELECT
			je.journal_entry_id, je.entry_number, je.entry_date, je.fiscal_year, je.fiscal_period,
			l.line_number, l.account_id, a.account_number, a.name, a.account_type,
			l.debit_amount, l.credit_amount, l.description,
			l.xbrl_element_name, l.xbrl_standard_label
		FROM journal_entry_lines l
		JOIN journal_entries je ON je.journal_entry_id = l.journal_entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE je.entity_id = $1
			AND je.status = 'posted'
			AND je.entry_date BETWEEN $2 AND $3
		ORDER BY je.entry_date, je.entry_number, l.line_number
	`

	rows, err := r.Pool.Query(ctx, query, entityID, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("error querying posted lines: %w", err)
	}
	defer rows.Close()

	var result []domain.PostedLine
	for rows.Next() {
		var row domain.PostedLine
		var accountType string

		if err := rows.Scan(
			&row.JournalEntryID, &row.EntryNumber, &row.EntryDate, &row.FiscalYear, &row.FiscalPeriod,
			&row.LineNumber, &row.AccountID, &row.AccountNumber, &row.AccountName, &accountType,
			&row.DebitAmount, &row.CreditAmount, &row.Description,
			&row.XBRLElementName, &row.XBRLStandardLabel,
		); err != nil {
			return nil, fmt.Errorf("error scanning posted line row: %w", err)
		}

		row.AccountType = domain.AccountType(accountType)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posted line rows: %w", err)
	}

	if len(result) == 0 {
		// Return empty slice instead of nil
		return []domain.PostedLine{}, nil
	}

	return result, nil
}
