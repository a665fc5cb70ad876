package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"go_5_lexicard/internal/middleware"
	"go_5_lexicard/internal/model"
	"go_5_lexicard/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// tenantFromRequest は認証ミドルウェアが設定した TenantContext を取り出します。
// 取り出せなければエラーレスポンスを書いて ok=false を返します。
func tenantFromRequest(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (model.TenantContext, *slog.Logger, bool) {
	tc, err := middleware.GetTenantContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return model.TenantContext{}, logger, false
	}
	return tc, logger.With(
		slog.String("organization_id", tc.OrganizationID.String()),
		slog.String("user_id", tc.UserID.String()),
	), true
}

// wordIDParam は URL の {word_id} を UUID として読みます
func wordIDParam(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "word_id")
	wordID, err := uuid.Parse(raw)
	if err != nil || wordID == uuid.Nil {
		logger.Warn("Invalid word ID format in URL", slog.String("word_id_str", raw))
		webutil.HandleError(w, logger, model.NewAppError("INVALID_URL_PARAM", "Formato de word_id inválido.", "word_id", model.ErrInvalidInput))
		return uuid.Nil, false
	}
	return wordID, true
}

// intQuery は省略時 0 を返します。数値でなければ ok=false。
func intQuery(w http.ResponseWriter, r *http.Request, logger *slog.Logger, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		logger.Warn("Invalid query parameter", slog.String("name", name), slog.String("value", raw))
		webutil.HandleError(w, logger, model.NewAppError("INVALID_QUERY_PARAM", "Parâmetro "+name+" inválido.", name, model.ErrInvalidInput))
		return 0, false
	}
	return n, true
}
