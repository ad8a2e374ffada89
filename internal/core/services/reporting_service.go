package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/holdco_books/internal/apperrors"
	"github.com/SscSPs/holdco_books/internal/core/domain"
	portsrepo "github.com/SscSPs/holdco_books/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/holdco_books/internal/core/ports/services"
)

// maxReportRangeDays bounds a single posted-lines query.
const maxReportRangeDays = 3660

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingEntityReader enables entity checks for reports.
func WithReportingEntityReader(reader portsrepo.EntityReader) ReportingServiceOption {
	return func(s *reportingService) {
		s.EntityReader = reader
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{reportingRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

func (s *reportingService) ListPostedLines(ctx context.Context, entityID string, period domain.DateRange) ([]domain.PostedLine, error) {
	if period.End.Before(period.Start) {
		return nil, fmt.Errorf("%w: end date is before start date", apperrors.ErrValidation)
	}
	if period.End.Sub(period.Start).Hours()/24 > maxReportRangeDays {
		return nil, fmt.Errorf("%w: date range exceeds %d days", apperrors.ErrValidation, maxReportRangeDays)
	}
	if err := s.EnsureEntity(ctx, entityID); err != nil {
		return nil, err
	}

	lines, err := s.reportingRepo.ListPostedLines(ctx, entityID, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to list posted lines", slog.String("entity_id", entityID))
		return nil, err
	}
	if lines == nil {
		lines = []domain.PostedLine{}
	}
	s.LogDebug(ctx, "Posted lines listed", slog.String("entity_id", entityID), slog.Int("count", len(lines)))
	return lines, nil
}
