package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmarovic/inflow/internal/db"
	"github.com/dmarovic/inflow/internal/domain"
)

// SQLiteEntityRepo implements EntityRepo against SQLite.
type SQLiteEntityRepo struct {
	db db.DBTX
}

// NewSQLiteEntityRepo creates an EntityRepo bound to the given handle.
func NewSQLiteEntityRepo(h db.DBTX) *SQLiteEntityRepo {
	return &SQLiteEntityRepo{db: h}
}

func (r *SQLiteEntityRepo) Create(ctx context.Context, rec *EntityRecord) error {
	payload, err := json.Marshal(rec.Draft)
	if err != nil {
		return fmt.Errorf("marshaling entity payload: %w", err)
	}
	query := `INSERT INTO entities (id, user_id, kind, title, payload, source_draft_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		rec.ID,
		rec.UserID,
		string(rec.Kind),
		rec.Title,
		string(payload),
		rec.SourceDraftID,
		rec.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting entity: %w", err)
	}
	return nil
}

func (r *SQLiteEntityRepo) GetByID(ctx context.Context, id string) (*EntityRecord, error) {
	query := `SELECT id, user_id, kind, title, payload, source_draft_id, created_at
		FROM entities WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanEntity(row)
}

func (r *SQLiteEntityRepo) ListByUser(ctx context.Context, userID string, kind domain.IntentType, limit int) ([]*EntityRecord, error) {
	query := `SELECT id, user_id, kind, title, payload, source_draft_id, created_at
		FROM entities WHERE user_id = ?`
	args := []any{userID}
	if kind != "" {
		query += ` AND kind = ?`
		args = append(args, string(kind))
	}
	query += ` ORDER BY created_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing entities: %w", err)
	}
	defer rows.Close()

	var out []*EntityRecord
	for rows.Next() {
		rec, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntity(row rowScanner) (*EntityRecord, error) {
	var rec EntityRecord
	var kind, payload, createdAt string
	var sourceDraft sql.NullString
	if err := row.Scan(&rec.ID, &rec.UserID, &kind, &rec.Title, &payload, &sourceDraft, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning entity: %w", err)
	}
	rec.Kind = domain.IntentType(kind)
	rec.SourceDraftID = sourceDraft.String
	if err := json.Unmarshal([]byte(payload), &rec.Draft); err != nil {
		return nil, fmt.Errorf("unmarshaling entity payload: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		rec.CreatedAt = t
	}
	return &rec, nil
}
