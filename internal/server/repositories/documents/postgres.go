package documents

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/studenthub/internal/dbx"
	"github.com/dmitrijs2005/studenthub/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, doc *models.Document) error {
	query := `
		INSERT INTO documents (owner_id, kind, id, created_at, updated_at, deleted, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (owner_id, kind, id)
		DO UPDATE SET
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at,
			deleted = EXCLUDED.deleted,
			payload = EXCLUDED.payload
	`
	payload := doc.Payload
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	_, err := r.db.ExecContext(ctx, query,
		doc.OwnerID, doc.Kind, doc.ID, doc.CreatedAt, doc.UpdatedAt, doc.Deleted, payload)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, kind, id string) error {
	query := `
		DELETE FROM documents
		WHERE owner_id = $1 AND kind = $2 AND id = $3
	`
	if _, err := r.db.ExecContext(ctx, query, ownerID, kind, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByKind(ctx context.Context, ownerID, kind string) ([]*models.Document, error) {
	query := `
		SELECT id, created_at, updated_at, deleted, payload
		FROM documents
		WHERE owner_id = $1 AND kind = $2
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to select documents: %w", err)
	}
	defer rows.Close()

	var result []*models.Document
	for rows.Next() {
		d := &models.Document{OwnerID: ownerID, Kind: kind}
		if err := rows.Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt, &d.Deleted, &d.Payload); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
