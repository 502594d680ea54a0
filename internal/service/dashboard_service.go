package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"titanicdash/internal/models"
	"titanicdash/internal/stats"
)

// ErrAlreadyStarted is returned when Start is called more than once
var ErrAlreadyStarted = errors.New("dashboard already started")

// DatasetLoader fetches the passenger records
type DatasetLoader interface {
	Load(ctx context.Context) ([]models.Passenger, error)
}

// DashboardState is the lifecycle of the dataset load
type DashboardState int

const (
	StateLoading DashboardState = iota
	StateReady
	StateFailed
)

func (s DashboardState) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "loading"
	}
}

// DashboardService owns the one-shot dataset load and the statistics derived from it
type DashboardService struct {
	loader   DatasetLoader
	comments *CommentService
	logger   *zap.Logger

	once sync.Once
	done chan struct{}

	mu      sync.RWMutex
	state   DashboardState
	records []models.Passenger
	summary models.SummaryStats
	err     error
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(loader DatasetLoader, comments *CommentService, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		loader:   loader,
		comments: comments,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start loads the dataset and the comments concurrently and blocks until both settle.
// A comment load failure is logged and left for a later retry; only the dataset error is returned.
func (s *DashboardService) Start(ctx context.Context) error {
	started := false
	s.once.Do(func() { started = true })
	if !started {
		return ErrAlreadyStarted
	}
	defer close(s.done)

	var g errgroup.Group
	g.Go(func() error {
		start := time.Now()
		records, err := s.loader.Load(ctx)
		s.finish(records, err)
		if err != nil {
			return err
		}
		s.logger.Info("Dashboard ready",
			zap.Int("records", len(records)),
			zap.Duration("duration", time.Since(start)))
		return nil
	})
	if s.comments != nil {
		g.Go(func() error {
			_ = s.comments.Load(ctx)
			return nil
		})
	}

	return g.Wait()
}

func (s *DashboardService) finish(records []models.Passenger, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = StateFailed
		s.err = err
		s.logger.Error("Failed to load dataset", zap.Error(err))
		return
	}

	s.state = StateReady
	s.records = records
	s.summary = stats.Summarize(records)
}

// Done is closed once Start has returned
func (s *DashboardService) Done() <-chan struct{} {
	return s.done
}

// State returns the load state and the load error when it failed
func (s *DashboardService) State() (DashboardState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.err
}

// Records returns the loaded passengers. The slice is shared and must not be modified.
func (s *DashboardService) Records() []models.Passenger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// Stats returns the summary computed when the dataset loaded
func (s *DashboardService) Stats() models.SummaryStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

// Comments returns the comment service the dashboard loads at startup
func (s *DashboardService) Comments() *CommentService {
	return s.comments
}
