package repositories

import (
	"context"

	"github.com/SscSPs/holdco_books/internal/core/domain"
)

// EntityReader defines read operations for legal entities
type EntityReader interface {
	// FindEntityByID retrieves a specific entity by its ID.
	FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error)
}

// EntityWriter defines write operations for legal entities
type EntityWriter interface {
	// SaveEntity persists a new entity.
	SaveEntity(ctx context.Context, entity domain.Entity) error
}

// EntityRepositoryFacade combines all entity-related repository interfaces
type EntityRepositoryFacade interface {
	EntityReader
	EntityWriter
}

// DocumentReader checks supporting documents. The ledger never reads document content.
type DocumentReader interface {
	// FindExistingDocumentIDs returns the subset of ids that exist for the entity.
	FindExistingDocumentIDs(ctx context.Context, entityID string, documentIDs []string) (map[string]bool, error)
}

// DocumentWriter registers supporting documents so entries can reference them.
type DocumentWriter interface {
	SaveDocument(ctx context.Context, doc domain.Document) error
}

// DocumentRepositoryFacade combines document reads and writes
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
