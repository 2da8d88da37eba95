package database

import (
	"testing"

	"gallery/internal/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMigrateCreatesTables(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	assert.NoError(t, Migrate(db))

	assert.True(t, db.Migrator().HasTable(&models.Message{}))
	assert.True(t, db.Migrator().HasTable(&models.Post{}))

	// Migration is idempotent.
	assert.NoError(t, Migrate(db))
}

func TestConfigurePool(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	assert.NoError(t, configurePool(db))

	sqlDB, err := db.DB()
	assert.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
}
