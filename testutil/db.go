// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"testing"

	"celebrato-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB returns an in-memory SQLite database with the application schema
// migrated. It is closed when the test ends.
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Contact{},
		&models.MessageTemplate{},
	))
	return db
}

func CreateUser(t testing.TB, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Name: email, Email: email, Password: "secret123", Phone: "+15550000000"}
	require.NoError(t, db.Create(&user).Error)
	return user
}
