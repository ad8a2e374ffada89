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

type PgxEntityRepository struct {
	BaseRepository
}

func newPgxEntityRepository(pool *pgxpool.Pool) *PgxEntityRepository {
	return &PgxEntityRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.EntityRepositoryFacade   = (*PgxEntityRepository)(nil)
	_ portsrepo.DocumentRepositoryFacade = (*PgxEntityRepository)(nil)
)

func (r *PgxEntityRepository) SaveEntity(ctx context.Context, entity domain.Entity) error {
	m := mapping.ToModelEntity(entity)
	query := `
		INSERT INTO entities (entity_id, name, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (entity_id) DO UPDATE SET
			name = EXCLUDED.name,
			is_active = EXCLUDED.is_active,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query, m.EntityID, m.Name, m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to save entity: %w", err)
	}
	return nil
}

func (r *PgxEntityRepository) FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error) {
	query := `
		SELECT entity_id, name, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM entities
		WHERE entity_id = $1;
	`
	var m models.Entity
	err := r.Pool.QueryRow(ctx, query, entityID).Scan(&m.EntityID, &m.Name, &m.IsActive, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: entity %s", apperrors.ErrNotFound, entityID)
		}
		return nil, fmt.Errorf("failed to find entity %s: %w", entityID, err)
	}
	entity := mapping.ToDomainEntity(m)
	return &entity, nil
}

// SaveDocument registers a document. Re-registering an id only updates its file name.
func (r *PgxEntityRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	query := `
		INSERT INTO documents (document_id, entity_id, file_name, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (document_id) DO UPDATE SET file_name = EXCLUDED.file_name;
	`
	if _, err := r.Pool.Exec(ctx, query, doc.DocumentID, doc.EntityID, doc.FileName, doc.CreatedAt); err != nil {
		return fmt.Errorf("failed to save document %s: %w", doc.DocumentID, err)
	}
	return nil
}

// FindExistingDocumentIDs returns which of the ids exist in the documents table for the entity.
func (r *PgxEntityRepository) FindExistingDocumentIDs(ctx context.Context, entityID string, documentIDs []string) (map[string]bool, error) {
	found := make(map[string]bool, len(documentIDs))
	if len(documentIDs) == 0 {
		return found, nil
	}
	rows, err := r.Pool.Query(ctx, `SELECT document_id FROM documents WHERE entity_id = $1 AND document_id = ANY($2);`, entityID, documentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		found[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", err)
	}
	return found, nil
}
