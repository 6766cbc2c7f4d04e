package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarovic/inflow/internal/db"
	"github.com/dmarovic/inflow/internal/domain"
)

func testEntityRepo(t *testing.T) *SQLiteEntityRepo {
	t.Helper()
	conn, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewSQLiteEntityRepo(conn)
}

func taskEntity(id, userID, title string, createdAt time.Time) *EntityRecord {
	return &EntityRecord{
		ID:     id,
		UserID: userID,
		Kind:   domain.IntentTask,
		Title:  title,
		Draft: domain.Draft{
			Kind: domain.IntentTask,
			Task: &domain.TaskDraft{Title: title, LifeArea: domain.AreaCareer},
		},
		SourceDraftID: "src-" + id,
		CreatedAt:     createdAt,
	}
}

func TestEntityRepo_CreateAndGet(t *testing.T) {
	repo := testEntityRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, taskEntity("e1", "u1", "Finish report", time.Now().UTC())))

	got, err := repo.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "Finish report", got.Title)
	assert.Equal(t, "src-e1", got.SourceDraftID)
	require.NotNil(t, got.Draft.Task)
	assert.Equal(t, domain.AreaCareer, got.Draft.Task.LifeArea)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEntityRepo_ListByUser(t *testing.T) {
	repo := testEntityRepo(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, taskEntity("e1", "u1", "Older", base)))
	require.NoError(t, repo.Create(ctx, taskEntity("e2", "u1", "Newer", base.Add(time.Hour))))
	require.NoError(t, repo.Create(ctx, taskEntity("e3", "u2", "Other user", base)))

	got, err := repo.ListByUser(ctx, "u1", "", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Newer", got[0].Title)
	assert.Equal(t, "Older", got[1].Title)

	// Kind filter and limit.
	got, err = repo.ListByUser(ctx, "u1", domain.IntentTask, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = repo.ListByUser(ctx, "u1", domain.IntentBill, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
