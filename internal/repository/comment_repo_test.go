package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"titanicdash/internal/database"
	"titanicdash/internal/models"
)

func setupRepo(t *testing.T) (*CommentRepository, *database.DB) {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "comments.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.RunMigrations(context.Background(), "../../migrations")
	require.NoError(t, err)

	repo := NewCommentRepository(db)
	clock := time.Date(1912, time.April, 15, 2, 20, 0, 0, time.UTC)
	repo.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return repo, db
}

func TestCommentRepositoryCreateAndList(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, models.ChartSurvived, "first")
	require.NoError(t, err)
	second, err := repo.Create(ctx, models.ChartAge, "second")
	require.NoError(t, err)

	_, err = uuid.Parse(first.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, first.Version)
	assert.True(t, second.CreatedAt.After(first.CreatedAt))

	comments, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, models.ChartSurvived, comments[0].Type)
	assert.Equal(t, "second", comments[1].Text)
	assert.True(t, comments[0].CreatedAt.Equal(first.CreatedAt))
}

func TestCommentRepositoryListEmpty(t *testing.T) {
	repo, _ := setupRepo(t)

	comments, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
}

func TestCommentRepositoryGet(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, models.ChartClassCount, "hello")
	require.NoError(t, err)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Text)

	_, err = repo.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrCommentNotFound)

	_, err = repo.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestCommentRepositoryUpdate(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, models.ChartAge, "draft")
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, "final", created.Version)
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Text)
	assert.Equal(t, 2, updated.Version)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))

	_, err = repo.Update(ctx, created.ID, "stale", created.Version)
	assert.ErrorIs(t, err, ErrVersionConflict)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", got.Text)

	_, err = repo.Update(ctx, uuid.NewString(), "missing", 1)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestCommentRepositoryDelete(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, models.ChartSurvived, "bye")
	require.NoError(t, err)

	err = repo.Delete(ctx, created.ID, created.Version+1)
	assert.ErrorIs(t, err, ErrVersionConflict)

	require.NoError(t, repo.Delete(ctx, created.ID, created.Version))

	err = repo.Delete(ctx, created.ID, created.Version)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestCommentRepositoryInsertAndDeleteAllInTx(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()

	restored := models.Comment{
		ID:        uuid.NewString(),
		Type:      models.ChartAge,
		Text:      "restored",
		Version:   4,
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt: time.Date(2024, 1, 3, 3, 4, 5, 0, time.UTC),
	}

	_, err := repo.Create(ctx, models.ChartSurvived, "old")
	require.NoError(t, err)

	err = db.WithTx(ctx, func(tx *database.Tx) error {
		txRepo := repo.WithTx(tx)
		n, err := txRepo.DeleteAll(ctx)
		if err != nil {
			return err
		}
		assert.EqualValues(t, 1, n)
		return txRepo.Insert(ctx, restored)
	})
	require.NoError(t, err)

	comments, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, restored.ID, comments[0].ID)
	assert.Equal(t, 4, comments[0].Version)
	assert.True(t, comments[0].CreatedAt.Equal(restored.CreatedAt))
}
