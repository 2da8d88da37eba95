package repository

import (
	"context"
	"regexp"
	"testing"

	"gallery/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{
		ImagePath:        "ab12/master.jpg",
		OriginalFilename: "cat.jpg",
		MimeType:         "image/jpeg",
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, post)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1 ORDER BY "posts"."id" LIMIT $2`)).
			WithArgs(1, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "image_path"}).AddRow(1, "ab12/master.jpg"))

		post, err := repo.GetByID(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, "ab12/master.jpg", post.ImagePath)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1 ORDER BY "posts"."id" LIMIT $2`)).
			WithArgs(99, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "image_path"}))

		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "image_path"}).
			AddRow(1, "ab12/master.jpg").
			AddRow(2, "cd34/master.jpg"))

	posts, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, uint(1), posts[0].ID)
	assert.Equal(t, uint(2), posts[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Count(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
