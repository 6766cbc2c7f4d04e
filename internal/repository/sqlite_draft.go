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

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// SQLiteDraftRepo implements DraftRepo against SQLite. Draft payloads are
// stored as JSON; the schema only indexes what queries need.
type SQLiteDraftRepo struct {
	db db.DBTX
}

// NewSQLiteDraftRepo creates a DraftRepo bound to the given handle, which
// may be a *sql.DB or an open transaction.
func NewSQLiteDraftRepo(h db.DBTX) *SQLiteDraftRepo {
	return &SQLiteDraftRepo{db: h}
}

func (r *SQLiteDraftRepo) Create(ctx context.Context, rec *DraftRecord) error {
	payload, err := json.Marshal(rec.Draft)
	if err != nil {
		return fmt.Errorf("marshaling draft payload: %w", err)
	}
	query := `INSERT INTO drafts (id, user_id, kind, title, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		rec.ID,
		rec.UserID,
		string(rec.Kind),
		rec.Draft.DisplayTitle(),
		string(payload),
		rec.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting draft: %w", err)
	}
	return nil
}

func (r *SQLiteDraftRepo) GetByID(ctx context.Context, id string) (*DraftRecord, error) {
	query := `SELECT id, user_id, kind, payload, created_at FROM drafts WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var rec DraftRecord
	var kind, payload, createdAt string
	if err := row.Scan(&rec.ID, &rec.UserID, &kind, &payload, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning draft: %w", err)
	}
	rec.Kind = domain.IntentType(kind)
	if err := json.Unmarshal([]byte(payload), &rec.Draft); err != nil {
		return nil, fmt.Errorf("unmarshaling draft payload: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		rec.CreatedAt = t
	}
	return &rec, nil
}

func (r *SQLiteDraftRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM drafts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting draft: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Record implements intake.DraftRecorder so finalized turns land in the
// draft registry directly.
func (r *SQLiteDraftRepo) Record(ctx context.Context, userID, draftID string, d domain.Draft) error {
	return r.Create(ctx, &DraftRecord{
		ID:        draftID,
		UserID:    userID,
		Kind:      d.Kind,
		Draft:     d,
		CreatedAt: time.Now().UTC(),
	})
}
