package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"go_5_lexicard/internal/config"
	"go_5_lexicard/internal/middleware"
	"go_5_lexicard/internal/model"
	"go_5_lexicard/internal/service"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

// RouterDeps はルーター構築に必要なサービス群
type RouterDeps struct {
	Config   *config.Config
	Logger   *slog.Logger
	DB       *gorm.DB // ヘルスチェック用。nil なら ping しない
	Auth     service.AuthService
	Org      service.OrganizationService
	Word     service.WordService
	Progress service.ProgressService
	Exercise service.ExerciseService
}

// NewRouter は /api/v1 配下のルーティングを組み立てます
func NewRouter(d RouterDeps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	authHandler := NewAuthHandler(d.Auth)
	orgHandler := NewOrganizationHandler(d.Org, logger)
	wordHandler := NewWordHandler(d.Word, logger)
	progressHandler := NewProgressHandler(d.Progress, logger)
	exerciseHandler := NewExerciseHandler(d.Exercise, logger)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   d.Config.CORS.AllowedOrigins,
		AllowedMethods:   d.Config.CORS.AllowedMethods,
		AllowedHeaders:   d.Config.CORS.AllowedHeaders,
		ExposedHeaders:   d.Config.CORS.ExposedHeaders,
		AllowCredentials: d.Config.CORS.AllowCredentials,
		MaxAge:           d.Config.CORS.MaxAge,
		Debug:            false,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		// --- Public routes ---
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.SignUp)
			r.Post("/login", authHandler.Login)
			r.Get("/verify", authHandler.VerifyAccount)
			r.Post("/forgot-password", authHandler.RequestPasswordReset)
			r.Post("/reset-password", authHandler.ResetPassword)
		})
		r.Get("/organizations", orgHandler.ListOrganizations)

		// --- Protected routes ---
		r.Group(func(r chi.Router) {
			if d.Config.Auth.Enabled {
				logger.Info("Applying JWT authentication middleware")
				r.Use(middleware.JWTAuthMiddleware(d.Config))
			} else {
				logger.Warn("Authentication disabled. Using header based tenant context")
				r.Use(middleware.DevTenantContextMiddleware)
			}

			r.Get("/me", authHandler.GetMe)
			r.With(middleware.RequireRole(model.RoleAdmin)).Post("/organizations", orgHandler.CreateOrganization)

			r.Route("/words", func(r chi.Router) {
				r.Get("/", wordHandler.GetWords)
				r.Post("/lookup", wordHandler.LookupWord)
				r.Post("/enrich", wordHandler.EnrichWords)
				r.Post("/cache/sync", wordHandler.SyncCache)
				r.Get("/{word_id}", wordHandler.GetWord)
				r.Patch("/{word_id}", wordHandler.PatchWord)
				r.Delete("/{word_id}", wordHandler.DeleteWord)
			})

			r.Route("/progress", func(r chi.Router) {
				r.Get("/stats", progressHandler.GetStats)
				r.Get("/{word_id}", progressHandler.GetWordProgress)
				r.Post("/{word_id}/correct", progressHandler.RecordCorrect)
				r.Post("/{word_id}/incorrect", progressHandler.RecordIncorrect)
			})

			r.Get("/dashboard", progressHandler.GetDashboard)
			r.Get("/exercises", exerciseHandler.GetExercise)
			r.Get("/exercises/summary", exerciseHandler.GetSummary)
			r.Post("/sessions", exerciseHandler.CompleteSession)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if d.DB != nil {
			sqlDB, err := d.DB.DB()
			if err != nil {
				logger.ErrorContext(ctx, "Health check failed: could not get DB object", slog.Any("error", err))
				http.Error(w, "Health check failed", http.StatusInternalServerError)
				return
			}
			if err := sqlDB.PingContext(ctx); err != nil {
				logger.ErrorContext(ctx, "Health check failed: could not ping DB", slog.Any("error", err))
				http.Error(w, "Health check failed", http.StatusInternalServerError)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
