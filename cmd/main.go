// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go_5_lexicard/internal/cache"
	"go_5_lexicard/internal/config"
	"go_5_lexicard/internal/dictionary"
	"go_5_lexicard/internal/handlers"
	"go_5_lexicard/internal/logging"
	"go_5_lexicard/internal/repository"
	"go_5_lexicard/internal/scheduler"
	"go_5_lexicard/internal/service"
)

func main() {
	//　設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	if err := config.LoadConfig("configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}
	cfg := &config.Cfg

	logger := logging.New(os.Stderr, cfg.Log.Level, os.Getenv("APP_ENV"))
	slog.SetDefault(logger)
	slog.Info("Application starting...", slog.String("version", config.AppVersion))

	// 単語ストア (PostgreSQL)
	db, err := repository.NewDB(cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()
	if cfg.Database.AutoMigrate {
		if err := repository.Migrate(db); err != nil {
			slog.Error("Error migrating database", slog.Any("error", err))
			os.Exit(1)
		}
		slog.Info("Database migrated")
	}

	// ローカルキャッシュ (SQLite)
	cacheDB, err := repository.NewSQLiteDB(cfg.Cache.Path, logger)
	if err != nil {
		slog.Error("Error opening local cache", slog.Any("error", err))
		os.Exit(1)
	}
	store, err := cache.NewGormStore(cacheDB)
	if err != nil {
		slog.Error("Error preparing local cache", slog.Any("error", err))
		os.Exit(1)
	}

	// Dependency Injection
	globalRepo := repository.NewGormGlobalWordRepository()
	wordRepo := repository.NewGormWordRepository()
	progressRepo := repository.NewGormProgressRepository()
	sessionRepo := repository.NewGormSessionRepository()
	orgRepo := repository.NewGormOrganizationRepository()
	userRepo := repository.NewGormUserRepository()
	tokenRepo := repository.NewGormTokenRepository()

	dict := dictionary.NewHTTPClient(cfg.Dictionary)
	mailer := service.NewMailer(cfg)

	authService := service.NewAuthService(db, userRepo, orgRepo, tokenRepo, mailer, cfg)
	orgService := service.NewOrganizationService(db, orgRepo)
	wordCache := cache.NewWordCache(store)
	wordService := service.NewWordService(db, globalRepo, wordRepo, dict, wordCache, cfg)
	progressService := service.NewProgressService(db, progressRepo, sessionRepo, cache.NewProgressCache(store))
	exerciseService := service.NewExerciseService(db, globalRepo, progressRepo, sessionRepo, cfg)
	maintenanceService := service.NewMaintenanceService(db, globalRepo, dict, wordCache, cfg)

	router := handlers.NewRouter(handlers.RouterDeps{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Auth:     authService,
		Org:      orgService,
		Word:     wordService,
		Progress: progressService,
		Exercise: exerciseService,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Enrichment.ScheduleEnabled {
		sched := scheduler.New(maintenanceService, cfg.Enrichment, logger)
		if err := sched.Start(ctx); err != nil {
			slog.Error("Error starting scheduler", slog.Any("error", err))
			os.Exit(1)
		}
		defer sched.Stop()
	}

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 70 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
