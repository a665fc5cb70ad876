package handlers

import (
	"log/slog"
	"net/http"

	"go_5_lexicard/internal/model"
	"go_5_lexicard/internal/service"
	"go_5_lexicard/internal/webutil"
)

type ExerciseHandler struct {
	service service.ExerciseService
	logger  *slog.Logger
}

func NewExerciseHandler(s service.ExerciseService, logger *slog.Logger) *ExerciseHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExerciseHandler{
		service: s,
		logger:  logger,
	}
}

// GetExercise は未習得の単語から出題セットを返します
func (h *ExerciseHandler) GetExercise(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetExercise"))
	tc, logger, ok := tenantFromRequest(w, r, logger)
	if !ok {
		return
	}

	session, err := h.service.SelectExercise(r.Context(), tc)
	if err != nil {
		logger.Error("Error selecting exercise", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	if session.Words == nil {
		session.Words = []*model.GlobalWord{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, session, logger)
}

func (h *ExerciseHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetSummary"))
	tc, logger, ok := tenantFromRequest(w, r, logger)
	if !ok {
		return
	}

	summary, err := h.service.GetSummary(r.Context(), tc)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, summary, logger)
}

func (h *ExerciseHandler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CompleteSession"))
	tc, logger, ok := tenantFromRequest(w, r, logger)
	if !ok {
		return
	}

	var req model.CompleteSessionRequest
	if err := webutil.DecodeAndValidate(w, r, &req); err != nil {
		logger.Warn("Invalid complete session request", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	session, err := h.service.CompleteSession(r.Context(), tc, &req)
	if err != nil {
		logger.Error("Error completing session", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, session, logger)
}
