package services

import (
	"testing"

	"biblio-backend/internal/adapters/persistence/models"
	"biblio-backend/internal/pkg/password"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database with all tables migrated
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, roles []string, blocked bool) *models.User {
	t.Helper()

	hashed, err := password.Hash("password123")
	require.NoError(t, err)

	user := &models.User{
		Email:     email,
		Password:  hashed,
		FirstName: "Test",
		LastName:  "User",
		Roles:     roles,
		Blocked:   blocked,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestBook(t *testing.T, db *gorm.DB, title string, available bool) *models.Book {
	t.Helper()

	book := &models.Book{
		Title:     title,
		Author:    "Test Author",
		Available: available,
	}
	require.NoError(t, db.Create(book).Error)
	return book
}
