package service

import (
	"testing"
	"time"

	"go_5_lexicard/internal/cache"
	"go_5_lexicard/internal/config"
	"go_5_lexicard/internal/model"
	"go_5_lexicard/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB はテストごとに独立したインメモリ SQLite を開きます
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := openTestDB(t)
	require.NoError(t, repository.Migrate(db))
	return db
}

// newCacheStore はバックエンドとは別のインメモリ SQLite にキャッシュを置きます
func newCacheStore(t *testing.T) cache.Store {
	t.Helper()
	store, err := cache.NewGormStore(openTestDB(t))
	require.NoError(t, err)
	return store
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:             config.AppName,
			FrontendURL:      "http://localhost:3000",
			ExerciseLimit:    config.DefaultExerciseLimit,
			ExercisePoolSize: config.DefaultExercisePoolSize,
			SearchLimit:      config.DefaultSearchLimit,
		},
		JWT: config.JWTConfig{
			SecretKey:      "test-secret",
			AccessTokenTTL: 15 * time.Minute,
		},
		Seed: config.SeedConfig{BatchSize: 2},
	}
}

func newTenant() model.TenantContext {
	return model.TenantContext{OrganizationID: uuid.New(), UserID: uuid.New()}
}

func strPtr(s string) *string { return &s }
