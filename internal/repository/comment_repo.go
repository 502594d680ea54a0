package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"titanicdash/internal/database"
	"titanicdash/internal/models"
)

var (
	// ErrCommentNotFound is returned when no comment has the requested id
	ErrCommentNotFound = errors.New("comment not found")
	// ErrVersionConflict is returned when the stored version no longer matches the caller's
	ErrVersionConflict = errors.New("comment was modified by someone else")
)

const commentColumns = "id, type, text, version, created_at, updated_at"

// CommentRepository handles database operations for chart comments
type CommentRepository struct {
	db  database.DBTX
	now func() time.Time
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db database.DBTX) *CommentRepository {
	return &CommentRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// WithTx returns a repository bound to the given transaction
func (r *CommentRepository) WithTx(tx *database.Tx) *CommentRepository {
	return &CommentRepository{db: tx, now: r.now}
}

// List retrieves every comment ordered by creation time
func (r *CommentRepository) List(ctx context.Context) ([]models.Comment, error) {
	query := "SELECT " + commentColumns + " FROM comments ORDER BY created_at ASC, id ASC"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := scanComment(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}

	return comments, nil
}

// Create inserts a new comment for the given chart type
func (r *CommentRepository) Create(ctx context.Context, chartType models.ChartType, text string) (*models.Comment, error) {
	now := r.now()
	c := &models.Comment{
		ID:        uuid.NewString(),
		Type:      chartType,
		Text:      text,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := "INSERT INTO comments (" + commentColumns + ") VALUES (?, ?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query, c.ID, string(c.Type), c.Text, c.Version, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return c, nil
}

// Insert stores a comment exactly as given, keeping its id, version and timestamps
func (r *CommentRepository) Insert(ctx context.Context, c models.Comment) error {
	query := "INSERT INTO comments (" + commentColumns + ") VALUES (?, ?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query, c.ID, string(c.Type), c.Text, c.Version, c.CreatedAt.UTC(), c.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert comment %s: %w", c.ID, err)
	}
	return nil
}

// Get retrieves a comment by id
func (r *CommentRepository) Get(ctx context.Context, id string) (*models.Comment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrCommentNotFound
	}

	query := "SELECT " + commentColumns + " FROM comments WHERE id = ?"
	c := &models.Comment{}
	err := scanComment(r.db.QueryRowContext(ctx, query, id), c)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return c, nil
}

// Update overwrites the text of a comment if version still matches the stored one
func (r *CommentRepository) Update(ctx context.Context, id, text string, version int) (*models.Comment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrCommentNotFound
	}

	query := "UPDATE comments SET text = ?, version = version + 1, updated_at = ? WHERE id = ? AND version = ?"
	result, err := r.db.ExecContext(ctx, query, text, r.now(), id, version)
	if err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	if err := r.checkAffected(ctx, result, id); err != nil {
		return nil, err
	}

	return r.Get(ctx, id)
}

// Delete removes a comment if version still matches the stored one
func (r *CommentRepository) Delete(ctx context.Context, id string, version int) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrCommentNotFound
	}

	result, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE id = ? AND version = ?", id, version)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return r.checkAffected(ctx, result, id)
}

// DeleteAll removes every comment and returns how many were deleted
func (r *CommentRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM comments")
	if err != nil {
		return 0, fmt.Errorf("failed to clear comments: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared comments: %w", err)
	}
	return n, nil
}

// checkAffected tells a missing row apart from a stale version when a write matched nothing
func (r *CommentRepository) checkAffected(ctx context.Context, result sql.Result, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n > 0 {
		return nil
	}

	var exists int
	err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments WHERE id = ?", id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check comment: %w", err)
	}
	if exists == 0 {
		return ErrCommentNotFound
	}
	return ErrVersionConflict
}

type scanner interface {
	Scan(dest ...any) error
}

func scanComment(row scanner, c *models.Comment) error {
	var chartType string
	if err := row.Scan(&c.ID, &chartType, &c.Text, &c.Version, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return err
	}
	c.Type = models.ChartType(chartType)
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return nil
}
