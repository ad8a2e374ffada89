package services

import (
	"context"

	"github.com/SscSPs/holdco_books/internal/core/domain"
)

// ReportingService exposes the posted ledger to report builders
type ReportingService interface {
	// ListPostedLines returns all lines of posted entries with entry_date in the inclusive range.
	ListPostedLines(ctx context.Context, entityID string, period domain.DateRange) ([]domain.PostedLine, error)
}
