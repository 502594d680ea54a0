package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"titanicdash/internal/database"
	"titanicdash/internal/models"
	"titanicdash/internal/repository"
	"titanicdash/internal/validation"
)

// BackupFormatVersion is written into every export
const BackupFormatVersion = "1.0"

// BackupData represents the complete comment backup structure
type BackupData struct {
	Version      string           `json:"version"`
	ExportedAt   time.Time        `json:"exported_at"`
	DatabaseType string           `json:"database_type"`
	Comments     []models.Comment `json:"comments"`
}

// BackupService handles comment backup and restore operations
type BackupService struct {
	db     *database.DB
	repo   *repository.CommentRepository
	logger *zap.Logger
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB, logger *zap.Logger) *BackupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackupService{
		db:     db,
		repo:   repository.NewCommentRepository(db),
		logger: logger,
	}
}

// Export writes every comment to outputPath as JSON
func (s *BackupService) Export(ctx context.Context, outputPath string) (int, error) {
	file, err := os.Create(outputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	n, err := s.ExportToWriter(ctx, file)
	if err != nil {
		return 0, err
	}

	s.logger.Info("Comments exported", zap.String("path", outputPath), zap.Int("comments", n))
	return n, nil
}

// ExportToWriter writes every comment to w as JSON
func (s *BackupService) ExportToWriter(ctx context.Context, w io.Writer) (int, error) {
	comments, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to export comments: %w", err)
	}

	backup := &BackupData{
		Version:      BackupFormatVersion,
		ExportedAt:   time.Now().UTC(),
		DatabaseType: s.db.Dialect.MigrationsSubdir(),
		Comments:     comments,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return 0, fmt.Errorf("failed to encode backup: %w", err)
	}

	return len(comments), nil
}

// Import restores comments from a backup file
func (s *BackupService) Import(ctx context.Context, inputPath string, clear bool) (int, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	n, err := s.ImportFromReader(ctx, file, clear)
	if err != nil {
		return 0, err
	}

	s.logger.Info("Comments imported", zap.String("path", inputPath), zap.Int("comments", n))
	return n, nil
}

// ImportFromReader restores comments from r in a single transaction.
// With clear set, existing comments are removed first.
func (s *BackupService) ImportFromReader(ctx context.Context, r io.Reader, clear bool) (int, error) {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return 0, fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != BackupFormatVersion {
		return 0, fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	s.logger.Debug("Importing backup",
		zap.String("version", backup.Version),
		zap.Time("exported_at", backup.ExportedAt),
		zap.String("database_type", backup.DatabaseType))

	for i := range backup.Comments {
		if err := s.normalizeComment(&backup.Comments[i]); err != nil {
			return 0, err
		}
	}

	err := s.db.WithTx(ctx, func(tx *database.Tx) error {
		repo := s.repo.WithTx(tx)
		if clear {
			removed, err := repo.DeleteAll(ctx)
			if err != nil {
				return err
			}
			s.logger.Info("Cleared existing comments", zap.Int64("comments", removed))
		}
		for _, c := range backup.Comments {
			if err := repo.Insert(ctx, c); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to import comments: %w", err)
	}

	return len(backup.Comments), nil
}

// normalizeComment applies the rules every other write path enforces.
// Ids that are not UUIDs, such as document ids from another store, are
// replaced so the comment can still be edited and deleted.
func (s *BackupService) normalizeComment(c *models.Comment) error {
	if _, err := models.ParseChartType(string(c.Type)); err != nil {
		return fmt.Errorf("comment %s: %w", c.ID, err)
	}

	c.Text = strings.TrimSpace(c.Text)
	if c.Text == "" {
		return fmt.Errorf("comment %s: text is empty", c.ID)
	}
	if err := validation.ValidateCommentText(c.Text); err != nil {
		return fmt.Errorf("comment %s: %w", c.ID, err)
	}

	if id, err := uuid.Parse(c.ID); err == nil {
		c.ID = id.String()
	} else {
		newID := uuid.NewString()
		s.logger.Info("Assigned new id to imported comment", zap.String("old_id", c.ID), zap.String("id", newID))
		c.ID = newID
	}
	if c.Version < 1 {
		c.Version = 1
	}
	return nil
}
