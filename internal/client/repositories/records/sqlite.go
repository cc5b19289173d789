package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/studenthub/internal/client/models"
	"github.com/dmitrijs2005/studenthub/internal/common"
	"github.com/dmitrijs2005/studenthub/internal/dbx"
)

const recordColumns = `id, owner_id, payload, created_at, updated_at, deleted, synced`

// SQLiteRepository implements Repository over dbx.DBTX. The table is the
// kind's name.
type SQLiteRepository[P models.Payload] struct {
	db    dbx.DBTX
	table string
}

// NewSQLiteRepository returns the repository for P's kind.
func NewSQLiteRepository[P models.Payload](db dbx.DBTX) *SQLiteRepository[P] {
	var p P
	return &SQLiteRepository[P]{db: db, table: string(p.Kind())}
}

func (r *SQLiteRepository[P]) InsertOrReplace(ctx context.Context, rec *models.Record[P]) error {
	payload, err := json.Marshal(rec.Payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", r.table, err)
	}

	query := `INSERT INTO ` + r.table + ` (` + recordColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET owner_id = excluded.owner_id,
			payload = excluded.payload,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			deleted = excluded.deleted,
			synced = excluded.synced`

	_, err = r.db.ExecContext(ctx, query,
		rec.ID, rec.OwnerID, string(payload), rec.CreatedAt, rec.UpdatedAt, rec.Deleted, rec.Synced)
	if err != nil {
		return fmt.Errorf("failed to upsert %s record: %w", r.table, err)
	}
	return nil
}

func (r *SQLiteRepository[P]) GetByID(ctx context.Context, id string) (*models.Record[P], error) {
	query := `SELECT ` + recordColumns + ` FROM ` + r.table + ` WHERE id = ?`

	rec, err := r.scan(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s record %s: %w", r.table, id, err)
	}
	return rec, nil
}

func (r *SQLiteRepository[P]) ListForOwner(ctx context.Context, ownerID string, filters ...models.Predicate[P]) ([]*models.Record[P], error) {
	query := `SELECT ` + recordColumns + ` FROM ` + r.table + `
		WHERE owner_id = ? AND deleted = 0
		ORDER BY created_at, id`

	recs, err := r.query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}

	result := recs[:0]
	for _, rec := range recs {
		if models.Match(rec, filters...) {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (r *SQLiteRepository[P]) ListDirty(ctx context.Context, ownerID string) ([]*models.Record[P], error) {
	query := `SELECT ` + recordColumns + ` FROM ` + r.table + `
		WHERE owner_id = ? AND synced = 0
		ORDER BY updated_at, id`
	return r.query(ctx, query, ownerID)
}

func (r *SQLiteRepository[P]) SetSynced(ctx context.Context, id string, version int64) error {
	query := `UPDATE ` + r.table + ` SET synced = 1 WHERE id = ? AND updated_at = ?`
	if _, err := r.db.ExecContext(ctx, query, id, version); err != nil {
		return fmt.Errorf("failed to mark %s record %s synced: %w", r.table, id, err)
	}
	return nil
}

func (r *SQLiteRepository[P]) SoftDelete(ctx context.Context, id string, ts int64) error {
	query := `UPDATE ` + r.table + `
		SET deleted = 1, synced = 0, updated_at = MAX(updated_at + 1, ?)
		WHERE id = ?`

	err := dbx.ExecOne(ctx, r.db, query, ts, id)
	if errors.Is(err, dbx.ErrNoRowsAffected) {
		return fmt.Errorf("%s record %s: %w", r.table, id, common.ErrorNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to soft delete %s record %s: %w", r.table, id, err)
	}
	return nil
}

func (r *SQLiteRepository[P]) HardDeleteByID(ctx context.Context, id string, version int64) (bool, error) {
	query := `DELETE FROM ` + r.table + `
		WHERE id = ? AND deleted = 1 AND synced = 1 AND updated_at = ?`

	n, err := dbx.ExecAffected(ctx, r.db, query, id, version)
	if err != nil {
		return false, fmt.Errorf("failed to delete %s record %s: %w", r.table, id, err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository[P]) PurgeSyncedTombstones(ctx context.Context) (int64, error) {
	n, err := dbx.ExecAffected(ctx, r.db, `DELETE FROM `+r.table+` WHERE deleted = 1 AND synced = 1`)
	if err != nil {
		return 0, fmt.Errorf("failed to purge %s tombstones: %w", r.table, err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteRepository[P]) scan(row rowScanner) (*models.Record[P], error) {
	var (
		rec     models.Record[P]
		payload string
	)
	if err := row.Scan(&rec.ID, &rec.OwnerID, &payload, &rec.CreatedAt, &rec.UpdatedAt, &rec.Deleted, &rec.Synced); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(payload), &rec.Payload); err != nil {
		return nil, fmt.Errorf("failed to decode %s payload: %w", r.table, err)
	}
	return &rec, nil
}

func (r *SQLiteRepository[P]) query(ctx context.Context, query string, args ...any) ([]*models.Record[P], error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select %s records: %w", r.table, err)
	}
	defer rows.Close()

	var result []*models.Record[P]
	for rows.Next() {
		rec, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s record: %w", r.table, err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s records: %w", r.table, err)
	}
	return result, nil
}
