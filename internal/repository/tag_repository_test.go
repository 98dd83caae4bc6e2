package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogcms/internal/models"
)

func TestTagRepository_Create(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewTagRepository(sqlxDB)
	ctx := context.Background()

	insertQuery := `
		INSERT INTO tags (tag_id, name, slug, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	t.Run("Успешное создание тега", func(t *testing.T) {
		tag := &models.Tag{Name: "Golang", Slug: "golang"}

		mock.ExpectExec(insertQuery).
			WithArgs(sqlmock.AnyArg(), "Golang", "golang", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.Create(ctx, tag)

		assert.NoError(t, err)
		assert.NotEmpty(t, tag.TagID)
	})

	t.Run("Занятый slug дает ErrDuplicate", func(t *testing.T) {
		tag := &models.Tag{Name: "Golang", Slug: "golang"}

		mock.ExpectExec(insertQuery).
			WithArgs(sqlmock.AnyArg(), "Golang", "golang", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(ctx, tag)

		assert.ErrorIs(t, err, ErrDuplicate)
	})
}

func TestTagRepository_Popular(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewTagRepository(sqlxDB)
	ctx := context.Background()

	query := `
		SELECT t.tag_id, t.name, t.slug, COUNT(pt.post_id) AS count
		FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.tag_id
		GROUP BY t.tag_id, t.name, t.slug
		ORDER BY count DESC, t.name
		LIMIT $1
	`

	rows := sqlmock.NewRows([]string{"tag_id", "name", "slug", "count"}).
		AddRow("tag-1", "Golang", "golang", 5).
		AddRow("tag-2", "PostgreSQL", "postgresql", 2)

	mock.ExpectQuery(query).WithArgs(2).WillReturnRows(rows)

	tags, err := repo.Popular(ctx, 2)

	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "golang", tags[0].Slug)
	assert.Equal(t, 5, tags[0].Count)
	assert.Equal(t, 2, tags[1].Count)
}

func TestTagRepository_GetBySlug_NotFound(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewTagRepository(sqlxDB)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT * FROM tags WHERE slug = $1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"tag_id", "name", "slug", "created_at", "updated_at"}))

	tag, err := repo.GetBySlug(ctx, "missing")

	assert.Nil(t, tag)
	assert.ErrorIs(t, err, ErrNotFound)
}
