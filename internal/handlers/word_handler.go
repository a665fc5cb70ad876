// internal/handlers/word_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"go_5_lexicard/internal/model"
	"go_5_lexicard/internal/service"
	"go_5_lexicard/internal/webutil"
)

type WordHandler struct {
	service service.WordService
	logger  *slog.Logger
}

func NewWordHandler(s service.WordService, logger *slog.Logger) *WordHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WordHandler{
		service: s,
		logger:  logger,
	}
}

// LookupWord は単語をキャッシュ → ストア → 外部辞書の順に探して返します
func (h *WordHandler) LookupWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "LookupWord"))
	tc, logger, ok := tenantFromRequest(w, r, logger)
	if !ok {
		return
	}

	var req model.LookupWordRequest
	if err := webutil.DecodeAndValidate(w, r, &req); err != nil {
		logger.Warn("Invalid lookup request", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	word, err := h.service.FetchWord(r.Context(), tc, req.Word)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Word not found", slog.String("word", req.Word))
		} else {
			logger.Error("Error fetching word in service", slog.Any("error", err), slog.String("word", req.Word))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Word fetched successfully", slog.String("word_id", word.ID.String()), slog.String("source", string(word.Source)))
	webutil.RespondWithJSON(w, http.StatusOK, word, logger)
}

// GetWords は組織の単語一覧を返します。q があれば部分一致検索。
func (h *WordHandler) GetWords(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetWords"))
	tc, logger, ok := tenantFromRequest(w, r, logger)
	if !ok {
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	limit, ok := intQuery(w, r, logger, "limit")
	if !ok {
		return
	}

	var (
		words []*model.Word
		err   error
	)
	if query != "" {
		words, err = h.service.SearchWords(r.Context(), tc, query, limit)
	} else {
		words, err = h.service.GetOrganizationWords(r.Context(), tc)
	}
	if err != nil {
		logger.Error("Error listing words in service", slog.Any("error", err), slog.String("query", query))
		webutil.HandleError(w, logger, err)
		return
	}

	if words == nil {
		words = []*model.Word{}
	}
	logger.Info("Words listed successfully", slog.Int("count", len(words)))
	webutil.RespondWithJSON(w, http.StatusOK, words, logger)
}

func (h *WordHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetWord"))
	tc, logger, ok := tenantFromRequest(w, r, logger)
	if !ok {
		return
	}
	wordID, ok := wordIDParam(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("word_id", wordID.String()))

	word, err := h.service.GetWordByID(r.Context(), tc, wordID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Word not found in service", slog.Any("error", err))
		} else {
			logger.Error("Error getting word from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, word, logger)
}

// PatchWord は組織の単語 (翻訳・定義・音声) を部分更新します
func (h *WordHandler) PatchWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchWord"))
	tc, logger, ok := tenantFromRequest(w, r, logger)
	if !ok {
		return
	}
	wordID, ok := wordIDParam(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("word_id", wordID.String()))

	var req model.UpdateWordRequest
	if err := webutil.DecodeAndValidate(w, r, &req); err != nil {
		logger.Warn("Invalid PatchWord request", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	if req.Translation == nil && req.Definition == nil && req.AudioURL == nil {
		logger.Warn("PatchWord called with no fields provided for update")
		webutil.HandleError(w, logger, model.NewAppError(model.CodeValidation, "Nenhum campo informado para atualização.", "", model.ErrInvalidInput))
		return
	}

	word, err := h.service.UpdateWord(r.Context(), tc, wordID, &req)
	if err != nil {
		logger.Error("Error patching word in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Word patched successfully")
	webutil.RespondWithJSON(w, http.StatusOK, word, logger)
}

func (h *WordHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteWord"))
	tc, logger, ok := tenantFromRequest(w, r, logger)
	if !ok {
		return
	}
	wordID, ok := wordIDParam(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("word_id", wordID.String()))

	if err := h.service.DeleteWord(r.Context(), tc, wordID); err != nil {
		logger.Error("Error deleting word in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Word deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}

// EnrichWords は組織の単語のうち定義・音声が欠けているものを辞書で補完します
func (h *WordHandler) EnrichWords(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "EnrichWords"))
	tc, logger, ok := tenantFromRequest(w, r, logger)
	if !ok {
		return
	}

	report, err := h.service.EnrichWords(r.Context(), tc)
	if err != nil {
		logger.Error("Error enriching words in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, report, logger)
}

func (h *WordHandler) SyncCache(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SyncCache"))
	tc, logger, ok := tenantFromRequest(w, r, logger)
	if !ok {
		return
	}

	pruned, err := h.service.SyncLocalCache(r.Context(), tc)
	if err != nil {
		logger.Error("Error syncing local cache", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, map[string]int{"pruned": pruned}, logger)
}
