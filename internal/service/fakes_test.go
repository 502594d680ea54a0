package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"titanicdash/internal/models"
)

// fakeStore is an in-memory CommentStore that counts calls
type fakeStore struct {
	mu       sync.Mutex
	comments []models.Comment
	nextID   int
	calls    map[string]int

	// listed and listGate, when set, make List signal once it has taken
	// its snapshot and then wait before returning
	listed   chan struct{}
	listGate chan struct{}

	listErr   error
	createErr error
	updateErr error
	deleteErr error
}

func newFakeStore(seed ...models.Comment) *fakeStore {
	return &fakeStore{comments: seed, calls: map[string]int{}}
}

func (f *fakeStore) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeStore) List(ctx context.Context) ([]models.Comment, error) {
	f.mu.Lock()
	f.calls["list"]++
	if f.listErr != nil {
		f.mu.Unlock()
		return nil, f.listErr
	}
	snapshot := append([]models.Comment{}, f.comments...)
	listed, gate := f.listed, f.listGate
	f.listed = nil
	f.mu.Unlock()

	if listed != nil {
		close(listed)
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return snapshot, nil
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.comments)
}

func (f *fakeStore) Create(ctx context.Context, chartType models.ChartType, text string) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["create"]++
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	now := time.Date(2024, 1, 1, 0, 0, f.nextID, 0, time.UTC)
	c := models.Comment{
		ID:        fmt.Sprintf("c%d", f.nextID),
		Type:      chartType,
		Text:      text,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.comments = append(f.comments, c)
	return &c, nil
}

func (f *fakeStore) Update(ctx context.Context, id, text string, version int) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["update"]++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i := range f.comments {
		if f.comments[i].ID != id {
			continue
		}
		if f.comments[i].Version != version {
			return nil, ErrVersionConflict
		}
		f.comments[i].Text = text
		f.comments[i].Version++
		c := f.comments[i]
		return &c, nil
	}
	return nil, ErrCommentNotFound
}

func (f *fakeStore) Delete(ctx context.Context, id string, version int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["delete"]++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i := range f.comments {
		if f.comments[i].ID != id {
			continue
		}
		if f.comments[i].Version != version {
			return ErrVersionConflict
		}
		f.comments = append(f.comments[:i], f.comments[i+1:]...)
		return nil
	}
	return ErrCommentNotFound
}

// fakeLoader returns fixed records, optionally waiting for release first
type fakeLoader struct {
	records []models.Passenger
	err     error
	release chan struct{}
}

func (f *fakeLoader) Load(ctx context.Context) ([]models.Passenger, error) {
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.records, f.err
}
