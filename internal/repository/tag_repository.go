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

type tagRepository struct {
	db *sqlx.DB
}

func NewTagRepository(db *sqlx.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	tag.TagID = uuid.New().String()
	tag.CreatedAt = time.Now()
	tag.UpdatedAt = tag.CreatedAt

	query := `
		INSERT INTO tags (tag_id, name, slug, created_at, updated_at)
		VALUES (:tag_id, :name, :slug, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, tag); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("имя или slug тега уже заняты: %w", ErrDuplicate)
		}
		return fmt.Errorf("ошибка при создании тега: %w", err)
	}

	return nil
}

func (r *tagRepository) GetBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	var tag models.Tag

	query := `SELECT * FROM tags WHERE slug = $1`

	err := r.db.GetContext(ctx, &tag, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("тег %q: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении тега: %w", err)
	}

	return &tag, nil
}

func (r *tagRepository) GetAll(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag

	query := `SELECT * FROM tags ORDER BY name`

	if err := r.db.SelectContext(ctx, &tags, query); err != nil {
		return nil, fmt.Errorf("ошибка при получении тегов: %w", err)
	}

	return tags, nil
}

func (r *tagRepository) Search(ctx context.Context, query string) ([]models.Tag, error) {
	var tags []models.Tag

	sqlQuery := `SELECT * FROM tags WHERE name ILIKE '%' || $1 || '%' ORDER BY name`

	if err := r.db.SelectContext(ctx, &tags, sqlQuery, query); err != nil {
		return nil, fmt.Errorf("ошибка при поиске тегов: %w", err)
	}

	return tags, nil
}

// Popular - рейтинг тегов по числу постов, SQL-аналог агрегации
// unwind/group/sort из оригинального API
func (r *tagRepository) Popular(ctx context.Context, limit int) ([]models.TagCount, error) {
	var tags []models.TagCount

	query := `
		SELECT t.tag_id, t.name, t.slug, COUNT(pt.post_id) AS count
		FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.tag_id
		GROUP BY t.tag_id, t.name, t.slug
		ORDER BY count DESC, t.name
		LIMIT $1
	`

	if err := r.db.SelectContext(ctx, &tags, query, limit); err != nil {
		return nil, fmt.Errorf("ошибка при получении популярных тегов: %w", err)
	}

	return tags, nil
}

func (r *tagRepository) UpdateBySlug(ctx context.Context, slug string, tag *models.Tag) error {
	query := `UPDATE tags SET name = $1, slug = $2, updated_at = now() WHERE slug = $3`

	result, err := r.db.ExecContext(ctx, query, tag.Name, tag.Slug, slug)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("имя или slug тега уже заняты: %w", ErrDuplicate)
		}
		return fmt.Errorf("ошибка при обновлении тега: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("тег %q: %w", slug, ErrNotFound)
	}

	return nil
}

func (r *tagRepository) DeleteBySlug(ctx context.Context, slug string) error {
	query := `DELETE FROM tags WHERE slug = $1`

	result, err := r.db.ExecContext(ctx, query, slug)
	if err != nil {
		return fmt.Errorf("ошибка при удалении тега: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("тег %q: %w", slug, ErrNotFound)
	}

	return nil
}
