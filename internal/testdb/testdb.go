// Package testdb opens an isolated in-memory SQLite database per test with
// the full schema migrated and installs it as database.DB.
package testdb

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xcursi322/prakt/app/models"
	"github.com/xcursi322/prakt/pkg/cache"
	"github.com/xcursi322/prakt/pkg/database"
	"github.com/xcursi322/prakt/pkg/logger"
)

// Open returns a fresh database named after the running test. The memory
// cache driver is installed too, so sessions and cached lookups never leak
// between tests.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	logger.Discard()
	cache.Use(cache.NewMemory())

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	db, err := database.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
