// Package approval converts finalized drafts into created entities, or
// discards them, on the user's decision.
package approval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmarovic/inflow/internal/db"
	"github.com/dmarovic/inflow/internal/domain"
	"github.com/dmarovic/inflow/internal/repository"
	"github.com/google/uuid"
)

// Action is the decision taken on a finalized draft.
type Action string

const (
	ActionApprove Action = "APPROVE"
	ActionModify  Action = "MODIFY"
	ActionReject  Action = "REJECT"
)

var (
	// ErrNotFound indicates no draft exists with the given id.
	ErrNotFound = errors.New("draft not found")

	// ErrNotOwner indicates the draft belongs to a different user. Fatal to
	// the call; never recovered.
	ErrNotOwner = errors.New("draft not owned by requesting user")

	// ErrInvalidAction indicates an unknown action value.
	ErrInvalidAction = errors.New("invalid draft action")
)

// Result reports the outcome of applying an action to a draft.
type Result struct {
	Success           bool              `json:"success"`
	CreatedEntityID   string            `json:"created_entity_id,omitempty"`
	CreatedEntityKind domain.IntentType `json:"created_entity_kind,omitempty"`
}

// Service applies approval decisions. Creation and draft removal happen in
// one transaction so a crash never leaves both a draft and its entity.
type Service struct {
	uow    db.UnitOfWork
	drafts repository.DraftRepo
	log    *slog.Logger
	now    func() time.Time
}

// NewService wires an approval service. drafts is used for reads; writes go
// through transaction-scoped repositories.
func NewService(uow db.UnitOfWork, drafts repository.DraftRepo, log *slog.Logger) *Service {
	return &Service{uow: uow, drafts: drafts, log: log, now: time.Now}
}

// Apply resolves the draft, enforces ownership, and executes the action.
// MODIFY behaves like APPROVE but persists the caller-supplied draft in
// place of the registered one; the modified draft must keep the same kind.
func (s *Service) Apply(ctx context.Context, userID, draftID string, action Action, modified *domain.Draft) (*Result, error) {
	rec, err := s.drafts.GetByID(ctx, draftID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading draft: %w", err)
	}
	if rec.UserID != userID {
		return nil, ErrNotOwner
	}

	switch action {
	case ActionReject:
		err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return repository.NewTxRepos(tx).Drafts.Delete(ctx, draftID)
		})
		if err != nil {
			return nil, fmt.Errorf("rejecting draft: %w", err)
		}
		s.log.Info("draft_rejected", "draft_id", draftID)
		return &Result{Success: true}, nil

	case ActionApprove, ActionModify:
		final := rec.Draft
		if action == ActionModify {
			if modified == nil || modified.IsZero() {
				return nil, fmt.Errorf("%w: MODIFY requires a draft body", ErrInvalidAction)
			}
			if modified.Kind != rec.Kind {
				return nil, fmt.Errorf("%w: modified draft changes kind %s to %s", ErrInvalidAction, rec.Kind, modified.Kind)
			}
			final = *modified
		}

		entityID := uuid.NewString()
		err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			repos := repository.NewTxRepos(tx)
			if err := repos.Entities.Create(ctx, &repository.EntityRecord{
				ID:            entityID,
				UserID:        userID,
				Kind:          rec.Kind,
				Title:         final.DisplayTitle(),
				Draft:         final,
				SourceDraftID: draftID,
				CreatedAt:     s.now().UTC(),
			}); err != nil {
				return err
			}
			return repos.Drafts.Delete(ctx, draftID)
		})
		if err != nil {
			return nil, fmt.Errorf("applying draft: %w", err)
		}
		s.log.Info("draft_applied",
			"draft_id", draftID, "entity_id", entityID,
			"kind", string(rec.Kind), "action", string(action))
		return &Result{
			Success:           true,
			CreatedEntityID:   entityID,
			CreatedEntityKind: rec.Kind,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}
}
