package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"titanicdash/internal/models"
	"titanicdash/internal/repository"
	"titanicdash/internal/validation"
)

// Errors returned by comment writes, matched with errors.Is
var (
	ErrCommentNotFound = repository.ErrCommentNotFound
	ErrVersionConflict = repository.ErrVersionConflict
)

// CommentStore is the persistence used by CommentService
type CommentStore interface {
	List(ctx context.Context) ([]models.Comment, error)
	Create(ctx context.Context, chartType models.ChartType, text string) (*models.Comment, error)
	Update(ctx context.Context, id, text string, version int) (*models.Comment, error)
	Delete(ctx context.Context, id string, version int) error
}

// CommentService keeps a per-chart cache of comments in step with the store.
// The cache only changes after the store confirms a write.
type CommentService struct {
	store  CommentStore
	logger *zap.Logger

	// loadMu is held exclusively by Load and shared by writes, so a write
	// never lands between a Load's snapshot and its swap into the cache.
	loadMu sync.RWMutex

	mu      sync.RWMutex
	buckets models.CommentBuckets
	loaded  bool
	loadErr error
}

// NewCommentService creates a new comment service
func NewCommentService(store CommentStore, logger *zap.Logger) *CommentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommentService{
		store:   store,
		logger:  logger,
		buckets: models.NewCommentBuckets(),
	}
}

// Load replaces the cache with every stored comment grouped by chart type
func (s *CommentService) Load(ctx context.Context) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	comments, err := s.store.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.loadErr = err
		s.logger.Error("Failed to load comments", zap.Error(err))
		return fmt.Errorf("failed to load comments: %w", err)
	}

	buckets := models.NewCommentBuckets()
	for _, c := range comments {
		if _, ok := buckets[c.Type]; !ok {
			s.logger.Debug("Dropping comment with unknown chart type",
				zap.String("id", c.ID), zap.String("type", string(c.Type)))
			continue
		}
		buckets[c.Type] = append(buckets[c.Type], c)
	}

	s.buckets = buckets
	s.loaded = true
	s.loadErr = nil
	s.logger.Info("Comments loaded", zap.Int("count", len(comments)))
	return nil
}

// EnsureLoaded loads the cache if no load has succeeded yet
func (s *CommentService) EnsureLoaded(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	return s.Load(ctx)
}

// Status reports whether the cache is loaded and the last load error, if any
func (s *CommentService) Status() (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded, s.loadErr
}

// Create stores a comment for a chart. Blank text is ignored and returns a nil comment.
func (s *CommentService) Create(ctx context.Context, chartType models.ChartType, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	if _, err := models.ParseChartType(string(chartType)); err != nil {
		return nil, err
	}
	if err := validation.ValidateCommentText(text); err != nil {
		return nil, err
	}

	s.loadMu.RLock()
	defer s.loadMu.RUnlock()

	c, err := s.store.Create(ctx, chartType, text)
	if err != nil {
		s.logger.Error("Failed to create comment", zap.String("type", string(chartType)), zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	s.buckets[c.Type] = append(s.buckets[c.Type], *c)
	s.mu.Unlock()

	return c, nil
}

// Update overwrites a comment's text. Blank text is ignored and returns a nil comment.
func (s *CommentService) Update(ctx context.Context, id, text string, version int) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	if err := validation.ValidateCommentText(text); err != nil {
		return nil, err
	}

	s.loadMu.RLock()
	defer s.loadMu.RUnlock()

	c, err := s.store.Update(ctx, id, text, version)
	if err != nil {
		s.logger.Error("Failed to update comment", zap.String("id", id), zap.Int("version", version), zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	bucket := s.buckets[c.Type]
	for i := range bucket {
		if bucket[i].ID == c.ID {
			bucket[i] = *c
			break
		}
	}

	return c, nil
}

// Delete removes a comment
func (s *CommentService) Delete(ctx context.Context, id string, version int) error {
	s.loadMu.RLock()
	defer s.loadMu.RUnlock()

	if err := s.store.Delete(ctx, id, version); err != nil {
		s.logger.Error("Failed to delete comment", zap.String("id", id), zap.Int("version", version), zap.Error(err))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for t, bucket := range s.buckets {
		for i := range bucket {
			if bucket[i].ID == id {
				s.buckets[t] = append(bucket[:i:i], bucket[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

// Get returns a cached comment by id
func (s *CommentService) Get(id string) (models.Comment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, bucket := range s.buckets {
		for _, c := range bucket {
			if c.ID == id {
				return c, true
			}
		}
	}
	return models.Comment{}, false
}

// Comments returns a copy of the cached comments for one chart
func (s *CommentService) Comments(chartType models.ChartType) []models.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Comment{}, s.buckets[chartType]...)
}

// Grouped returns a copy of every bucket
func (s *CommentService) Grouped() models.CommentBuckets {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(models.CommentBuckets, len(s.buckets))
	for t, bucket := range s.buckets {
		out[t] = append([]models.Comment{}, bucket...)
	}
	return out
}
