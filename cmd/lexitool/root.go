package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"go_5_lexicard/internal/cache"
	"go_5_lexicard/internal/config"
	"go_5_lexicard/internal/logging"
	"go_5_lexicard/internal/middleware"
	"go_5_lexicard/internal/repository"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// app はサブコマンド間で共有する設定と接続
type app struct {
	configDir string
	cfg       *config.Config
	logger    *slog.Logger
	db        *gorm.DB
	cacheDB   *gorm.DB
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "lexitool",
		Short:         "Lexicard maintenance tool",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}
	root.PersistentFlags().StringVar(&a.configDir, "config", "configs", "directory containing config.yaml")

	root.AddCommand(
		newMigrateCmd(a),
		newSeedCmd(a),
		newBackfillCmd(a),
		newEnrichCmd(a),
		newCreateOrgCmd(a),
		newSetRoleCmd(a),
		newReportCmd(a),
	)
	return root
}

func (a *app) init() error {
	if err := config.LoadConfig(a.configDir); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = &config.Cfg
	a.logger = logging.New(os.Stderr, a.cfg.Log.Level, os.Getenv("APP_ENV"))
	slog.SetDefault(a.logger)
	return nil
}

// openDB は PostgreSQL への接続を一度だけ開きます
func (a *app) openDB() (*gorm.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := repository.NewDB(a.cfg.Database.URL, a.logger)
	if err != nil {
		return nil, err
	}
	a.db = db
	return db, nil
}

// openWordCache はサーバーと同じ SQLite ファイルの単語キャッシュを開きます
func (a *app) openWordCache() (*cache.WordCache, error) {
	if a.cacheDB == nil {
		db, err := repository.NewSQLiteDB(a.cfg.Cache.Path, a.logger)
		if err != nil {
			return nil, err
		}
		a.cacheDB = db
	}
	store, err := cache.NewGormStore(a.cacheDB)
	if err != nil {
		return nil, err
	}
	return cache.NewWordCache(store), nil
}

func (a *app) close() {
	for _, db := range []*gorm.DB{a.db, a.cacheDB} {
		if db == nil {
			continue
		}
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
}

// context はサービスが middleware.GetLogger で拾えるようにロガーを入れます
func (a *app) context(cmd *cobra.Command) context.Context {
	return middleware.WithLogger(cmd.Context(), a.logger)
}
