package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"titanicdash/internal/models"
	"titanicdash/internal/validation"
)

func TestCommentServiceLoadGroupsByType(t *testing.T) {
	store := newFakeStore(
		models.Comment{ID: "a", Type: models.ChartAge, Text: "one"},
		models.Comment{ID: "b", Type: models.ChartSurvived, Text: "two"},
		models.Comment{ID: "c", Type: "unknown", Text: "three"},
		models.Comment{ID: "d", Type: models.ChartAge, Text: "four"},
	)
	core, logs := observer.New(zapcore.DebugLevel)
	svc := NewCommentService(store, zap.New(core))

	require.NoError(t, svc.Load(context.Background()))

	grouped := svc.Grouped()
	assert.Len(t, grouped, 3)
	assert.Empty(t, grouped[models.ChartClassCount])
	require.Len(t, grouped[models.ChartAge], 2)
	assert.Equal(t, "one", grouped[models.ChartAge][0].Text)
	assert.Equal(t, "four", grouped[models.ChartAge][1].Text)
	assert.Len(t, grouped[models.ChartSurvived], 1)
	assert.Equal(t, 1, logs.FilterMessage("Dropping comment with unknown chart type").Len())

	loaded, err := svc.Status()
	assert.True(t, loaded)
	assert.NoError(t, err)
}

func TestCommentServiceLoadFailureIsRetried(t *testing.T) {
	store := newFakeStore(models.Comment{ID: "a", Type: models.ChartAge, Text: "one"})
	store.listErr = errors.New("connection refused")
	svc := NewCommentService(store, zaptest.NewLogger(t))

	require.Error(t, svc.EnsureLoaded(context.Background()))
	loaded, err := svc.Status()
	assert.False(t, loaded)
	assert.EqualError(t, err, "connection refused")

	store.mu.Lock()
	store.listErr = nil
	store.mu.Unlock()

	require.NoError(t, svc.EnsureLoaded(context.Background()))
	require.NoError(t, svc.EnsureLoaded(context.Background()))
	assert.Equal(t, 2, store.callCount("list"), "a loaded cache is not reloaded")
	assert.Len(t, svc.Comments(models.ChartAge), 1)
}

func TestCommentServiceWritesDuringLoadStayCached(t *testing.T) {
	existing := models.Comment{ID: "old", Type: models.ChartSurvived, Text: "gone soon", Version: 1}
	store := newFakeStore(existing)
	store.listed = make(chan struct{})
	store.listGate = make(chan struct{})
	svc := NewCommentService(store, zaptest.NewLogger(t))
	ctx := context.Background()

	loadDone := make(chan error, 1)
	go func() { loadDone <- svc.Load(ctx) }()
	<-store.listed

	createDone := make(chan error, 1)
	go func() {
		_, err := svc.Create(ctx, models.ChartAge, "written while loading")
		createDone <- err
	}()
	deleteDone := make(chan error, 1)
	go func() { deleteDone <- svc.Delete(ctx, existing.ID, existing.Version) }()

	close(store.listGate)
	require.NoError(t, <-loadDone)
	require.NoError(t, <-createDone)
	require.NoError(t, <-deleteDone)

	assert.Equal(t, 1, store.count())
	require.Len(t, svc.Comments(models.ChartAge), 1)
	assert.Equal(t, "written while loading", svc.Comments(models.ChartAge)[0].Text)
	assert.Empty(t, svc.Comments(models.ChartSurvived))
}

func TestCommentServiceCreateBlankIsNoop(t *testing.T) {
	store := newFakeStore()
	svc := NewCommentService(store, zaptest.NewLogger(t))

	for _, text := range []string{"", "  ", "\t\n"} {
		c, err := svc.Create(context.Background(), models.ChartSurvived, text)
		assert.NoError(t, err)
		assert.Nil(t, c)
	}

	assert.Zero(t, store.callCount("create"))
	assert.Empty(t, svc.Comments(models.ChartSurvived))
}

func TestCommentServiceCreate(t *testing.T) {
	store := newFakeStore()
	svc := NewCommentService(store, zaptest.NewLogger(t))

	c, err := svc.Create(context.Background(), models.ChartClassCount, "  first class was safest  ")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "first class was safest", c.Text)

	comments := svc.Comments(models.ChartClassCount)
	require.Len(t, comments, 1)
	assert.Equal(t, c.ID, comments[0].ID)

	got, ok := svc.Get(c.ID)
	assert.True(t, ok)
	assert.Equal(t, *c, got)
}

func TestCommentServiceCreateRejectsUnknownType(t *testing.T) {
	store := newFakeStore()
	svc := NewCommentService(store, zaptest.NewLogger(t))

	_, err := svc.Create(context.Background(), "fare", "hello")
	assert.Error(t, err)
	assert.Zero(t, store.callCount("create"))
}

func TestCommentServiceRejectsOverlongText(t *testing.T) {
	store := newFakeStore()
	svc := NewCommentService(store, zaptest.NewLogger(t))
	long := strings.Repeat("a", validation.MaxCommentLength+1)

	_, err := svc.Create(context.Background(), models.ChartAge, long)
	var verr validation.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.Update(context.Background(), "a", long, 1)
	assert.ErrorAs(t, err, &verr)

	assert.Zero(t, store.callCount("create"))
	assert.Zero(t, store.callCount("update"))
}

func TestCommentServiceCreateFailureIsLogged(t *testing.T) {
	store := newFakeStore()
	store.createErr = errors.New("disk full")
	core, logs := observer.New(zapcore.ErrorLevel)
	svc := NewCommentService(store, zap.New(core))

	c, err := svc.Create(context.Background(), models.ChartAge, "hello")
	assert.Nil(t, c)
	assert.EqualError(t, err, "disk full")
	assert.Empty(t, svc.Comments(models.ChartAge))
	assert.Equal(t, 1, logs.FilterMessage("Failed to create comment").Len())
}

func TestCommentServiceUpdate(t *testing.T) {
	store := newFakeStore()
	svc := NewCommentService(store, zaptest.NewLogger(t))
	ctx := context.Background()

	c, err := svc.Create(ctx, models.ChartAge, "draft")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, c.ID, " final ", c.Version)
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Text)
	assert.Equal(t, 2, updated.Version)
	assert.Equal(t, "final", svc.Comments(models.ChartAge)[0].Text)

	blank, err := svc.Update(ctx, c.ID, "   ", updated.Version)
	assert.NoError(t, err)
	assert.Nil(t, blank)
	assert.Equal(t, 1, store.callCount("update"))
}

func TestCommentServiceUpdateConflictLeavesCache(t *testing.T) {
	store := newFakeStore()
	svc := NewCommentService(store, zaptest.NewLogger(t))
	ctx := context.Background()

	c, err := svc.Create(ctx, models.ChartAge, "draft")
	require.NoError(t, err)

	_, err = svc.Update(ctx, c.ID, "stale edit", c.Version+1)
	assert.ErrorIs(t, err, ErrVersionConflict)
	assert.Equal(t, "draft", svc.Comments(models.ChartAge)[0].Text)
}

func TestCommentServiceDelete(t *testing.T) {
	store := newFakeStore()
	svc := NewCommentService(store, zaptest.NewLogger(t))
	ctx := context.Background()

	first, err := svc.Create(ctx, models.ChartSurvived, "first")
	require.NoError(t, err)
	second, err := svc.Create(ctx, models.ChartSurvived, "second")
	require.NoError(t, err)

	snapshot := svc.Comments(models.ChartSurvived)

	require.NoError(t, svc.Delete(ctx, first.ID, first.Version))
	remaining := svc.Comments(models.ChartSurvived)
	require.Len(t, remaining, 1)
	assert.Equal(t, second.ID, remaining[0].ID)
	assert.Len(t, snapshot, 2, "earlier copies are not affected")

	_, ok := svc.Get(first.ID)
	assert.False(t, ok)
}

func TestCommentServiceDeleteFailureLeavesCache(t *testing.T) {
	store := newFakeStore()
	svc := NewCommentService(store, zaptest.NewLogger(t))
	ctx := context.Background()

	c, err := svc.Create(ctx, models.ChartSurvived, "keep me")
	require.NoError(t, err)

	err = svc.Delete(ctx, c.ID, c.Version+3)
	assert.ErrorIs(t, err, ErrVersionConflict)

	store.deleteErr = errors.New("timeout")
	err = svc.Delete(ctx, c.ID, c.Version)
	assert.EqualError(t, err, "timeout")

	assert.Len(t, svc.Comments(models.ChartSurvived), 1)
}
