package profile

import (
	"testing"

	"toski_backend/internal/config"
	"toski_backend/internal/platform/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// newTestDB opens a private in-memory sqlite database with the profile schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{
		DBDriver:      "sqlite",
		DBSource:      "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		DBAutoMigrate: true,
		LogLevel:      "silent",
	}
	logger := zap.NewNop()
	db, err := database.NewGORM(cfg, logger)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(cfg, db, logger, Models()...))
	t.Cleanup(func() { database.Close(db, logger) })
	return db
}

func strPtr(s string) *string { return &s }
