package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"blogcms/internal/models"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

const selectCommentsWithAuthor = `
	SELECT c.*, u.username AS author_name
	FROM comments c
	JOIN users u ON u.user_id = c.author_id
`

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	comment.CommentID = uuid.New().String()
	comment.IsApproved = false // новые комментарии всегда ждут модерации
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt

	query := `
		INSERT INTO comments (comment_id, content, post_id, author_id, is_approved, created_at, updated_at)
		VALUES (:comment_id, :content, :post_id, :author_id, :is_approved, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, comment); err != nil {
		return fmt.Errorf("ошибка при создании комментария: %w", err)
	}

	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, commentID string) (*models.Comment, error) {
	var comment models.Comment

	query := selectCommentsWithAuthor + ` WHERE c.comment_id = $1`

	err := r.db.GetContext(ctx, &comment, query, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("комментарий с ID %s: %w", commentID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении комментария: %w", err)
	}

	return &comment, nil
}

func (r *commentRepository) GetAll(ctx context.Context, postID string) ([]models.Comment, error) {
	var comments []models.Comment
	var err error

	if postID != "" {
		query := selectCommentsWithAuthor + ` WHERE c.post_id = $1 ORDER BY c.created_at DESC`
		err = r.db.SelectContext(ctx, &comments, query, postID)
	} else {
		query := selectCommentsWithAuthor + ` ORDER BY c.created_at DESC`
		err = r.db.SelectContext(ctx, &comments, query)
	}

	if err != nil {
		return nil, fmt.Errorf("ошибка при получении комментариев: %w", err)
	}

	return comments, nil
}

func (r *commentRepository) UpdateOwned(ctx context.Context, commentID, authorID, content string) (*models.Comment, error) {
	// правка контента снимает одобрение, комментарий уходит обратно на модерацию
	query := `
		UPDATE comments
		SET content = $1, is_approved = FALSE, updated_at = now()
		WHERE comment_id = $2 AND author_id = $3
	`

	result, err := r.db.ExecContext(ctx, query, content, commentID, authorID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при обновлении комментария: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("комментарий с ID %s: %w", commentID, ErrNotFound)
	}

	return r.GetByID(ctx, commentID)
}

func (r *commentRepository) DeleteOwned(ctx context.Context, commentID, authorID string) error {
	query := `DELETE FROM comments WHERE comment_id = $1 AND author_id = $2`

	result, err := r.db.ExecContext(ctx, query, commentID, authorID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении комментария: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("комментарий с ID %s: %w", commentID, ErrNotFound)
	}

	return nil
}

// Approve идемпотентен: повторное одобрение оставляет то же состояние
func (r *commentRepository) Approve(ctx context.Context, commentID string) (*models.Comment, error) {
	query := `UPDATE comments SET is_approved = TRUE, updated_at = now() WHERE comment_id = $1`

	result, err := r.db.ExecContext(ctx, query, commentID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при одобрении комментария: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("комментарий с ID %s: %w", commentID, ErrNotFound)
	}

	return r.GetByID(ctx, commentID)
}
