package repository

import (
	"context"
	"regexp"
	"testing"

	"gallery/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestMessageRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	message := &models.Message{MessageText: "hello there"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "messages"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, message)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "messages" ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "message_text"}).
			AddRow(1, "first").
			AddRow(2, "second"))

	messages, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].MessageText)
	assert.Equal(t, "second", messages[1].MessageText)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_ListEmpty(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "messages" ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "message_text"}))

	messages, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, messages)
	assert.NoError(t, mock.ExpectationsWereMet())
}
