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

type pageRepository struct {
	db *sqlx.DB
}

func NewPageRepository(db *sqlx.DB) PageRepository {
	return &pageRepository{db: db}
}

func (r *pageRepository) Create(ctx context.Context, page *models.Page) error {
	page.PageID = uuid.New().String()
	page.CreatedAt = time.Now()
	page.UpdatedAt = page.CreatedAt

	query := `
		INSERT INTO pages (page_id, title, slug, content, is_published, thumbnail, created_at, updated_at)
		VALUES (:page_id, :title, :slug, :content, :is_published, :thumbnail, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, page); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("slug %q уже занят: %w", page.Slug, ErrDuplicate)
		}
		return fmt.Errorf("ошибка при создании страницы: %w", err)
	}

	return nil
}

func (r *pageRepository) GetByID(ctx context.Context, pageID string) (*models.Page, error) {
	var page models.Page

	query := `SELECT * FROM pages WHERE page_id = $1`

	err := r.db.GetContext(ctx, &page, query, pageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("страница с ID %s: %w", pageID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении страницы: %w", err)
	}

	return &page, nil
}

func (r *pageRepository) GetAll(ctx context.Context, isPublished *bool) ([]models.Page, error) {
	var pages []models.Page
	var err error

	if isPublished != nil {
		query := `SELECT * FROM pages WHERE is_published = $1 ORDER BY created_at DESC`
		err = r.db.SelectContext(ctx, &pages, query, *isPublished)
	} else {
		query := `SELECT * FROM pages ORDER BY created_at DESC`
		err = r.db.SelectContext(ctx, &pages, query)
	}

	if err != nil {
		return nil, fmt.Errorf("ошибка при получении страниц: %w", err)
	}

	return pages, nil
}

func (r *pageRepository) Search(ctx context.Context, query string) ([]models.Page, error) {
	var pages []models.Page

	sqlQuery := `
		SELECT * FROM pages
		WHERE is_published = TRUE
		  AND (title ILIKE '%' || $1 || '%' OR content ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &pages, sqlQuery, query); err != nil {
		return nil, fmt.Errorf("ошибка при поиске страниц: %w", err)
	}

	return pages, nil
}

func (r *pageRepository) Update(ctx context.Context, page *models.Page) error {
	query := `
		UPDATE pages
		SET title = $1, slug = $2, content = $3, is_published = $4, thumbnail = COALESCE($5, thumbnail), updated_at = now()
		WHERE page_id = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		page.Title, page.Slug, page.Content, page.IsPublished, page.Thumbnail, page.PageID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("slug %q уже занят: %w", page.Slug, ErrDuplicate)
		}
		return fmt.Errorf("ошибка при обновлении страницы: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("страница с ID %s: %w", page.PageID, ErrNotFound)
	}

	return nil
}

func (r *pageRepository) Delete(ctx context.Context, pageID string) error {
	query := `DELETE FROM pages WHERE page_id = $1`

	result, err := r.db.ExecContext(ctx, query, pageID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении страницы: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("страница с ID %s: %w", pageID, ErrNotFound)
	}

	return nil
}

func (r *pageRepository) TogglePublish(ctx context.Context, pageID string) (bool, error) {
	query := `
		UPDATE pages
		SET is_published = NOT is_published, updated_at = now()
		WHERE page_id = $1
		RETURNING is_published
	`

	var isPublished bool
	err := r.db.GetContext(ctx, &isPublished, query, pageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, fmt.Errorf("страница с ID %s: %w", pageID, ErrNotFound)
		}
		return false, fmt.Errorf("ошибка при смене статуса публикации: %w", err)
	}

	return isPublished, nil
}
