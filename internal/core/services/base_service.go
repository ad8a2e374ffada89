package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/holdco_books/internal/apperrors"
	portsrepo "github.com/SscSPs/holdco_books/internal/core/ports/repositories"
	"github.com/SscSPs/holdco_books/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	EntityReader portsrepo.EntityReader
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// EnsureEntity checks that the entity exists and is active.
func (s *BaseService) EnsureEntity(ctx context.Context, entityID string) error {
	if s.EntityReader == nil {
		s.LogDebug(ctx, "No entity reader configured, skipping entity check", slog.String("entity_id", entityID))
		return nil
	}
	entity, err := s.EntityReader.FindEntityByID(ctx, entityID)
	if err != nil {
		return err
	}
	if !entity.IsActive {
		return fmt.Errorf("%w: entity %s is inactive", apperrors.ErrValidation, entityID)
	}
	return nil
}
