package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"blogcms/internal/models"
)

type menuRepository struct {
	db *sqlx.DB
}

func NewMenuRepository(db *sqlx.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	item.ItemID = uuid.New().String()
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt

	query := `
		INSERT INTO menu_items (item_id, title, url, item_order, parent_id, created_at, updated_at)
		VALUES (:item_id, :title, :url, :item_order, :parent_id, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("ошибка при создании пункта меню: %w", err)
	}

	return nil
}

func (r *menuRepository) GetByID(ctx context.Context, itemID string) (*models.MenuItem, error) {
	var item models.MenuItem

	query := `SELECT * FROM menu_items WHERE item_id = $1`

	err := r.db.GetContext(ctx, &item, query, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пункт меню с ID %s: %w", itemID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении пункта меню: %w", err)
	}

	return &item, nil
}

func (r *menuRepository) GetAll(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem

	query := `SELECT * FROM menu_items ORDER BY item_order`

	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("ошибка при получении пунктов меню: %w", err)
	}

	return items, nil
}

func (r *menuRepository) Update(ctx context.Context, item *models.MenuItem) error {
	if item.ParentID != nil {
		if err := r.checkCycle(ctx, item.ItemID, *item.ParentID); err != nil {
			return err
		}
	}

	query := `
		UPDATE menu_items
		SET title = $1, url = $2, item_order = $3, parent_id = $4, updated_at = now()
		WHERE item_id = $5
	`

	result, err := r.db.ExecContext(ctx, query,
		item.Title, item.URL, item.Order, item.ParentID, item.ItemID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении пункта меню: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("пункт меню с ID %s: %w", item.ItemID, ErrNotFound)
	}

	return nil
}

// checkCycle отклоняет родителя, который является самим пунктом или его
// потомком: иначе построение дерева зациклится
func (r *menuRepository) checkCycle(ctx context.Context, itemID, parentID string) error {
	if parentID == itemID {
		return ErrMenuCycle
	}

	seen := map[string]bool{itemID: true}
	current := parentID
	for current != "" {
		if seen[current] {
			return ErrMenuCycle
		}
		seen[current] = true

		var next sql.NullString
		err := r.db.GetContext(ctx, &next,
			`SELECT parent_id FROM menu_items WHERE item_id = $1`, current)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("родительский пункт с ID %s: %w", current, ErrNotFound)
			}
			return fmt.Errorf("ошибка при проверке цикла меню: %w", err)
		}

		if !next.Valid {
			break
		}
		current = next.String
	}

	return nil
}

func (r *menuRepository) Delete(ctx context.Context, itemID string) error {
	query := `DELETE FROM menu_items WHERE item_id = $1`

	result, err := r.db.ExecContext(ctx, query, itemID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении пункта меню: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("пункт меню с ID %s: %w", itemID, ErrNotFound)
	}

	return nil
}

// Reorder применяет пакет (id, order) в одной транзакции: если хотя бы один
// пункт не найден, откатывается весь пакет
func (r *menuRepository) Reorder(ctx context.Context, items []ReorderItem) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE menu_items SET item_order = $1, updated_at = now() WHERE item_id = $2`

	for _, item := range items {
		result, err := tx.ExecContext(ctx, query, item.Order, item.ID)
		if err != nil {
			return fmt.Errorf("ошибка при изменении порядка меню: %w", err)
		}

		if n, err := result.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("пункт меню с ID %s: %w", item.ID, ErrNotFound)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return nil
}

// BuildMenuTree собирает упорядоченный лес из плоского списка: группировка
// по parent_id и рекурсивный спуск. Посещенные пункты отслеживаются, чтобы
// поврежденные данные с циклом не привели к бесконечной рекурсии.
func BuildMenuTree(items []models.MenuItem) []*models.MenuItem {
	byParent := make(map[string][]*models.MenuItem)
	for i := range items {
		item := items[i]
		item.Children = nil
		parent := ""
		if item.ParentID != nil {
			parent = *item.ParentID
		}
		byParent[parent] = append(byParent[parent], &item)
	}

	for _, children := range byParent {
		sort.SliceStable(children, func(i, j int) bool {
			return children[i].Order < children[j].Order
		})
	}

	visited := make(map[string]bool)

	var attach func(parent string) []*models.MenuItem
	attach = func(parent string) []*models.MenuItem {
		var result []*models.MenuItem
		for _, item := range byParent[parent] {
			if visited[item.ItemID] {
				continue
			}
			visited[item.ItemID] = true
			item.Children = attach(item.ItemID)
			result = append(result, item)
		}
		return result
	}

	return attach("")
}
