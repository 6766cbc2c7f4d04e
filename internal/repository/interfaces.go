package repository

import (
	"context"
	"time"

	"github.com/dmarovic/inflow/internal/db"
	"github.com/dmarovic/inflow/internal/domain"
)

// DraftRecord is a finalized draft awaiting an approval decision.
type DraftRecord struct {
	ID        string
	UserID    string
	Kind      domain.IntentType
	Draft     domain.Draft
	CreatedAt time.Time
}

// EntityRecord is a created domain entity produced by an approved draft.
type EntityRecord struct {
	ID            string
	UserID        string
	Kind          domain.IntentType
	Title         string
	Draft         domain.Draft
	SourceDraftID string
	CreatedAt     time.Time
}

// DraftRepo stores finalized drafts pending approval.
type DraftRepo interface {
	Create(ctx context.Context, rec *DraftRecord) error
	GetByID(ctx context.Context, id string) (*DraftRecord, error)
	Delete(ctx context.Context, id string) error
}

// EntityRepo stores created entities.
type EntityRepo interface {
	Create(ctx context.Context, rec *EntityRecord) error
	GetByID(ctx context.Context, id string) (*EntityRecord, error)
	ListByUser(ctx context.Context, userID string, kind domain.IntentType, limit int) ([]*EntityRecord, error)
}

// TxRepos builds transaction-scoped repositories inside a unit of work.
type TxRepos struct {
	Drafts   DraftRepo
	Entities EntityRepo
}

// NewTxRepos creates repositories bound to the given transaction handle.
func NewTxRepos(tx db.DBTX) TxRepos {
	return TxRepos{
		Drafts:   NewSQLiteDraftRepo(tx),
		Entities: NewSQLiteEntityRepo(tx),
	}
}
