package repositories

import (
	"context"

	"github.com/SscSPs/holdco_books/internal/core/domain"
)

// ReportingRepository exposes posted ledger lines to report builders
type ReportingRepository interface {
	// ListPostedLines returns every line of posted entries with entry_date in the inclusive range,
	// ordered by entry date, entry number and line number.
	ListPostedLines(ctx context.Context, entityID string, period domain.DateRange) ([]domain.PostedLine, error)
}
