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

type categoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	category.CategoryID = uuid.New().String()
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt

	query := `
		INSERT INTO categories (category_id, name, slug, description, thumbnail, created_at, updated_at)
		VALUES (:category_id, :name, :slug, :description, :thumbnail, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, category); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("имя или slug категории уже заняты: %w", ErrDuplicate)
		}
		return fmt.Errorf("ошибка при создании категории: %w", err)
	}

	return nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category

	query := `SELECT * FROM categories WHERE slug = $1`

	err := r.db.GetContext(ctx, &category, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("категория %q: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении категории: %w", err)
	}

	return &category, nil
}

func (r *categoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category

	query := `SELECT * FROM categories ORDER BY name`

	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("ошибка при получении категорий: %w", err)
	}

	return categories, nil
}

func (r *categoryRepository) UpdateBySlug(ctx context.Context, slug string, category *models.Category) error {
	query := `
		UPDATE categories
		SET name = $1, slug = $2, description = $3, thumbnail = COALESCE($4, thumbnail), updated_at = now()
		WHERE slug = $5
	`

	result, err := r.db.ExecContext(ctx, query,
		category.Name, category.Slug, category.Description, category.Thumbnail, slug)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("имя или slug категории уже заняты: %w", ErrDuplicate)
		}
		return fmt.Errorf("ошибка при обновлении категории: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("категория %q: %w", slug, ErrNotFound)
	}

	return nil
}

func (r *categoryRepository) DeleteBySlug(ctx context.Context, slug string) error {
	query := `DELETE FROM categories WHERE slug = $1`

	result, err := r.db.ExecContext(ctx, query, slug)
	if err != nil {
		return fmt.Errorf("ошибка при удалении категории: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("категория %q: %w", slug, ErrNotFound)
	}

	return nil
}
