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

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

const selectPostsWithAuthor = `
	SELECT p.*, u.username AS author_name
	FROM posts p
	JOIN users u ON u.user_id = p.author_id
`

func (r *postRepository) Create(ctx context.Context, post *models.Post, categoryIDs, tagIDs []string) error {
	post.PostID = uuid.New().String()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO posts (post_id, title, slug, content, excerpt, thumbnail, is_published, author_id, created_at, updated_at)
		VALUES (:post_id, :title, :slug, :content, :excerpt, :thumbnail, :is_published, :author_id, :created_at, :updated_at)
	`

	if _, err := tx.NamedExecContext(ctx, query, post); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("slug %q уже занят: %w", post.Slug, ErrDuplicate)
		}
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	if err := replacePostLinks(ctx, tx, post.PostID, categoryIDs, tagIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	post.Categories = categoryIDs
	post.Tags = tagIDs
	return nil
}

// replacePostLinks перезаписывает связи поста с категориями и тегами
func replacePostLinks(ctx context.Context, tx *sqlx.Tx, postID string, categoryIDs, tagIDs []string) error {
	if categoryIDs != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM post_categories WHERE post_id = $1`, postID); err != nil {
			return fmt.Errorf("ошибка при очистке категорий поста: %w", err)
		}
		for _, id := range categoryIDs {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO post_categories (post_id, category_id) VALUES ($1, $2)`, postID, id)
			if err != nil {
				return fmt.Errorf("ошибка при привязке категории: %w", err)
			}
		}
	}

	if tagIDs != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
			return fmt.Errorf("ошибка при очистке тегов поста: %w", err)
		}
		for _, id := range tagIDs {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)`, postID, id)
			if err != nil {
				return fmt.Errorf("ошибка при привязке тега: %w", err)
			}
		}
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post

	query := selectPostsWithAuthor + ` WHERE p.post_id = $1`

	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост с ID %s: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	if err := r.loadLinks(ctx, &post); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepository) loadLinks(ctx context.Context, post *models.Post) error {
	err := r.db.SelectContext(ctx, &post.Categories,
		`SELECT category_id FROM post_categories WHERE post_id = $1`, post.PostID)
	if err != nil {
		return fmt.Errorf("ошибка при получении категорий поста: %w", err)
	}

	err = r.db.SelectContext(ctx, &post.Tags,
		`SELECT tag_id FROM post_tags WHERE post_id = $1`, post.PostID)
	if err != nil {
		return fmt.Errorf("ошибка при получении тегов поста: %w", err)
	}

	return nil
}

func (r *postRepository) GetAll(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post

	query := selectPostsWithAuthor + ` ORDER BY p.created_at DESC`

	if err := r.db.SelectContext(ctx, &posts, query); err != nil {
		return nil, fmt.Errorf("ошибка при получении постов: %w", err)
	}

	return posts, nil
}

func (r *postRepository) GetByCategorySlug(ctx context.Context, slug string) ([]models.Post, error) {
	// сначала убеждаемся, что категория существует
	var categoryID string
	err := r.db.GetContext(ctx, &categoryID,
		`SELECT category_id FROM categories WHERE slug = $1`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("категория %q: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении категории: %w", err)
	}

	var posts []models.Post
	query := selectPostsWithAuthor + `
		JOIN post_categories pc ON pc.post_id = p.post_id
		WHERE pc.category_id = $1
		ORDER BY p.created_at DESC`

	if err := r.db.SelectContext(ctx, &posts, query, categoryID); err != nil {
		return nil, fmt.Errorf("ошибка при получении постов категории: %w", err)
	}

	return posts, nil
}

func (r *postRepository) GetByTagSlug(ctx context.Context, slug string) ([]models.Post, error) {
	var tagID string
	err := r.db.GetContext(ctx, &tagID, `SELECT tag_id FROM tags WHERE slug = $1`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("тег %q: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении тега: %w", err)
	}

	var posts []models.Post
	query := selectPostsWithAuthor + `
		JOIN post_tags pt ON pt.post_id = p.post_id
		WHERE pt.tag_id = $1
		ORDER BY p.created_at DESC`

	if err := r.db.SelectContext(ctx, &posts, query, tagID); err != nil {
		return nil, fmt.Errorf("ошибка при получении постов тега: %w", err)
	}

	return posts, nil
}

func (r *postRepository) Search(ctx context.Context, query string) ([]models.Post, error) {
	var posts []models.Post

	sqlQuery := selectPostsWithAuthor + `
		WHERE p.title ILIKE '%' || $1 || '%' OR p.content ILIKE '%' || $1 || '%'
		ORDER BY p.created_at DESC`

	if err := r.db.SelectContext(ctx, &posts, sqlQuery, query); err != nil {
		return nil, fmt.Errorf("ошибка при поиске постов: %w", err)
	}

	return posts, nil
}

func (r *postRepository) UpdateOwned(ctx context.Context, post *models.Post, authorID string, categoryIDs, tagIDs []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	// ownership прямо в WHERE: чужой пост неотличим от несуществующего
	query := `
		UPDATE posts
		SET title = $1, slug = $2, content = $3, excerpt = $4, thumbnail = COALESCE($5, thumbnail), is_published = $6, updated_at = now()
		WHERE post_id = $7 AND author_id = $8
	`

	result, err := tx.ExecContext(ctx, query,
		post.Title, post.Slug, post.Content, post.Excerpt, post.Thumbnail, post.IsPublished, post.PostID, authorID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("slug %q уже занят: %w", post.Slug, ErrDuplicate)
		}
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("пост с ID %s: %w", post.PostID, ErrNotFound)
	}

	if err := replacePostLinks(ctx, tx, post.PostID, categoryIDs, tagIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return nil
}

func (r *postRepository) DeleteOwned(ctx context.Context, postID, authorID string) error {
	query := `DELETE FROM posts WHERE post_id = $1 AND author_id = $2`

	result, err := r.db.ExecContext(ctx, query, postID, authorID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("пост с ID %s: %w", postID, ErrNotFound)
	}

	return nil
}

func (r *postRepository) TogglePublishOwned(ctx context.Context, postID, authorID string) (bool, error) {
	query := `
		UPDATE posts
		SET is_published = NOT is_published, updated_at = now()
		WHERE post_id = $1 AND author_id = $2
		RETURNING is_published
	`

	var isPublished bool
	err := r.db.GetContext(ctx, &isPublished, query, postID, authorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, fmt.Errorf("пост с ID %s: %w", postID, ErrNotFound)
		}
		return false, fmt.Errorf("ошибка при смене статуса публикации: %w", err)
	}

	return isPublished, nil
}
