package handlers

import (
	"log/slog"
	"net/http"

	"go_5_lexicard/internal/model"
	"go_5_lexicard/internal/service"
	"go_5_lexicard/internal/webutil"

	"github.com/google/uuid"
)

type ProgressHandler struct {
	service service.ProgressService
	logger  *slog.Logger
}

func NewProgressHandler(s service.ProgressService, logger *slog.Logger) *ProgressHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressHandler{
		service: s,
		logger:  logger,
	}
}

type recordFunc func(r *http.Request, tc model.TenantContext, wordID uuid.UUID) (*model.AnswerResult, error)

func (h *ProgressHandler) record(w http.ResponseWriter, r *http.Request, name string, fn recordFunc) {
	logger := h.logger.With(slog.String("handler", name))
	tc, logger, ok := tenantFromRequest(w, r, logger)
	if !ok {
		return
	}
	wordID, ok := wordIDParam(w, r, logger)
	if !ok {
		return
	}

	result, err := fn(r, tc, wordID)
	if err != nil {
		logger.Error("Error recording answer in service", slog.Any("error", err), slog.String("word_id", wordID.String()))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}

func (h *ProgressHandler) RecordCorrect(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, "RecordCorrect", func(r *http.Request, tc model.TenantContext, wordID uuid.UUID) (*model.AnswerResult, error) {
		return h.service.RecordCorrect(r.Context(), tc, wordID)
	})
}

func (h *ProgressHandler) RecordIncorrect(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, "RecordIncorrect", func(r *http.Request, tc model.TenantContext, wordID uuid.UUID) (*model.AnswerResult, error) {
		return h.service.RecordIncorrect(r.Context(), tc, wordID)
	})
}

func (h *ProgressHandler) GetWordProgress(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetWordProgress"))
	tc, logger, ok := tenantFromRequest(w, r, logger)
	if !ok {
		return
	}
	wordID, ok := wordIDParam(w, r, logger)
	if !ok {
		return
	}

	progress, err := h.service.GetWordProgress(r.Context(), tc, wordID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, progress, logger)
}

func (h *ProgressHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetStats"))
	tc, logger, ok := tenantFromRequest(w, r, logger)
	if !ok {
		return
	}

	stats, err := h.service.GetProgressStats(r.Context(), tc)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, stats, logger)
}

func (h *ProgressHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetDashboard"))
	tc, logger, ok := tenantFromRequest(w, r, logger)
	if !ok {
		return
	}

	dashboard, err := h.service.GetDashboard(r.Context(), tc)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if dashboard.RecentSessions == nil {
		dashboard.RecentSessions = []*model.FlashcardSession{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, dashboard, logger)
}
