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

type bannerRepository struct {
	db *sqlx.DB
}

func NewBannerRepository(db *sqlx.DB) BannerRepository {
	return &bannerRepository{db: db}
}

func (r *bannerRepository) Create(ctx context.Context, banner *models.Banner) error {
	banner.BannerID = uuid.New().String()
	banner.CreatedAt = time.Now()
	banner.UpdatedAt = banner.CreatedAt

	query := `
		INSERT INTO banners (banner_id, title, image_url, link, is_active, created_at, updated_at)
		VALUES (:banner_id, :title, :image_url, :link, :is_active, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, banner); err != nil {
		return fmt.Errorf("ошибка при создании баннера: %w", err)
	}

	return nil
}

func (r *bannerRepository) GetByID(ctx context.Context, bannerID string) (*models.Banner, error) {
	var banner models.Banner

	query := `SELECT * FROM banners WHERE banner_id = $1`

	err := r.db.GetContext(ctx, &banner, query, bannerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("баннер с ID %s: %w", bannerID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении баннера: %w", err)
	}

	return &banner, nil
}

func (r *bannerRepository) GetAll(ctx context.Context) ([]models.Banner, error) {
	var banners []models.Banner

	query := `SELECT * FROM banners ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &banners, query); err != nil {
		return nil, fmt.Errorf("ошибка при получении баннеров: %w", err)
	}

	return banners, nil
}

func (r *bannerRepository) Update(ctx context.Context, banner *models.Banner) error {
	query := `
		UPDATE banners
		SET title = $1, image_url = COALESCE(NULLIF($2, ''), image_url), link = $3, is_active = $4, updated_at = now()
		WHERE banner_id = $5
	`

	result, err := r.db.ExecContext(ctx, query,
		banner.Title, banner.ImageURL, banner.Link, banner.IsActive, banner.BannerID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении баннера: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("баннер с ID %s: %w", banner.BannerID, ErrNotFound)
	}

	return nil
}

func (r *bannerRepository) Delete(ctx context.Context, bannerID string) error {
	query := `DELETE FROM banners WHERE banner_id = $1`

	result, err := r.db.ExecContext(ctx, query, bannerID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении баннера: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("баннер с ID %s: %w", bannerID, ErrNotFound)
	}

	return nil
}
