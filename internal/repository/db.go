package repository

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go_5_lexicard/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// pgUniqueViolation は PostgreSQL の一意制約違反コード
const pgUniqueViolation = "23505"

// NewDB は PostgreSQL (単語ストア本体) への接続を作成します
func NewDB(databaseURL string, appLogger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:         newGormLogger(appLogger),
		TranslateError: true,
	})
	if err != nil {
		appLogger.Error("Failed to connect to database with GORM", slog.Any("error", err))
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		appLogger.Error("Error pinging database", slog.Any("error", err))
		sqlDB.Close()
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	appLogger.Info("Database connection established with GORM")
	return db, nil
}

// NewSQLiteDB はローカルキャッシュ用の SQLite ファイルを開きます
func NewSQLiteDB(path string, appLogger *slog.Logger) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000&_journal_mode=WAL"), &gorm.Config{
		Logger:         newGormLogger(appLogger),
		TranslateError: true,
	})
	if err != nil {
		appLogger.Error("Failed to open local cache database", slog.String("path", path), slog.Any("error", err))
		return nil, err
	}
	appLogger.Info("Local cache database opened", slog.String("path", path))
	return db, nil
}

// Migrate は単語ストアのテーブルを作成・更新します
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Organization{},
		&model.User{},
		&model.VerificationToken{},
		&model.PasswordResetToken{},
		&model.GlobalWord{},
		&model.TenantWord{},
		&model.ProgressRecord{},
		&model.FlashcardSession{},
	)
}

func newGormLogger(appLogger *slog.Logger) gormlogger.Interface {
	level := gormlogger.Warn
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		level = gormlogger.Info
	}
	return slogGorm.New(
		slogGorm.WithHandler(appLogger.Handler()),
		slogGorm.WithTraceAll(),
		slogGorm.WithSlowThreshold(500*time.Millisecond),
	).LogMode(level)
}

// isUniqueViolation は一意制約違反かどうかを判定します (pgconn の生エラーと GORM 変換後の両方)
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
