package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogcms/internal/models"
)

func TestMenuRepository_Reorder(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewMenuRepository(sqlxDB)
	ctx := context.Background()

	updateQuery := `UPDATE menu_items SET item_order = $1, updated_at = now() WHERE item_id = $2`

	t.Run("Все позиции применяются одной транзакцией", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(updateQuery).WithArgs(0, "item-b").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(updateQuery).WithArgs(1, "item-a").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Reorder(ctx, []ReorderItem{
			{ID: "item-b", Order: 0},
			{ID: "item-a", Order: 1},
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Неизвестный пункт откатывает весь пакет", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(updateQuery).WithArgs(0, "item-b").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(updateQuery).WithArgs(1, "missing").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Reorder(ctx, []ReorderItem{
			{ID: "item-b", Order: 0},
			{ID: "missing", Order: 1},
		})

		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMenuRepository_UpdateCycle(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewMenuRepository(sqlxDB)
	ctx := context.Background()

	parentQuery := `SELECT parent_id FROM menu_items WHERE item_id = $1`

	t.Run("Пункт не может быть родителем самому себе", func(t *testing.T) {
		self := "item-a"
		err := repo.Update(ctx, &models.MenuItem{ItemID: "item-a", Title: "A", URL: "/a", ParentID: &self})

		assert.ErrorIs(t, err, ErrMenuCycle)
	})

	t.Run("Потомок в роли родителя дает ErrMenuCycle", func(t *testing.T) {
		// item-b - ребенок item-a; попытка повесить item-a под item-b - цикл
		parent := "item-b"
		mock.ExpectQuery(parentQuery).WithArgs("item-b").
			WillReturnRows(sqlmock.NewRows([]string{"parent_id"}).AddRow("item-a"))

		err := repo.Update(ctx, &models.MenuItem{ItemID: "item-a", Title: "A", URL: "/a", ParentID: &parent})

		assert.ErrorIs(t, err, ErrMenuCycle)
	})

	t.Run("Корректный родитель проходит проверку", func(t *testing.T) {
		parent := "item-root"
		mock.ExpectQuery(parentQuery).WithArgs("item-root").
			WillReturnRows(sqlmock.NewRows([]string{"parent_id"}).AddRow(nil))

		updateQuery := `
			UPDATE menu_items
			SET title = $1, url = $2, item_order = $3, parent_id = $4, updated_at = now()
			WHERE item_id = $5
		`
		mock.ExpectExec(updateQuery).
			WithArgs("A", "/a", 2, "item-root", "item-a").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(ctx, &models.MenuItem{ItemID: "item-a", Title: "A", URL: "/a", Order: 2, ParentID: &parent})

		assert.NoError(t, err)
	})
}

func TestBuildMenuTree(t *testing.T) {
	rootA := "root-a"

	items := []models.MenuItem{
		{ItemID: "child-2", Title: "Второй ребенок", Order: 1, ParentID: &rootA},
		{ItemID: "root-b", Title: "Корень Б", Order: 1},
		{ItemID: rootA, Title: "Корень А", Order: 0},
		{ItemID: "child-1", Title: "Первый ребенок", Order: 0, ParentID: &rootA},
	}

	tree := BuildMenuTree(items)

	require.Len(t, tree, 2)
	assert.Equal(t, rootA, tree[0].ItemID)
	assert.Equal(t, "root-b", tree[1].ItemID)

	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "child-1", tree[0].Children[0].ItemID)
	assert.Equal(t, "child-2", tree[0].Children[1].ItemID)
	assert.Empty(t, tree[1].Children)
}

func TestBuildMenuTree_BrokenCycle(t *testing.T) {
	// поврежденные данные: два пункта ссылаются друг на друга
	a, b := "item-a", "item-b"
	items := []models.MenuItem{
		{ItemID: a, Title: "A", Order: 0, ParentID: &b},
		{ItemID: b, Title: "B", Order: 1, ParentID: &a},
	}

	// главное - завершиться без бесконечной рекурсии
	tree := BuildMenuTree(items)
	assert.Empty(t, tree)
}
