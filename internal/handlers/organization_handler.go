package handlers

import (
	"log/slog"
	"net/http"

	"go_5_lexicard/internal/model"
	"go_5_lexicard/internal/service"
	"go_5_lexicard/internal/webutil"
)

// OrganizationHandler は組織の作成と一覧 (サインアップ画面用) を扱います
type OrganizationHandler struct {
	service service.OrganizationService
	logger  *slog.Logger
}

func NewOrganizationHandler(s service.OrganizationService, logger *slog.Logger) *OrganizationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrganizationHandler{
		service: s,
		logger:  logger,
	}
}

func (h *OrganizationHandler) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateOrganization"))

	var req model.CreateOrganizationRequest
	if err := webutil.DecodeAndValidate(w, r, &req); err != nil {
		logger.Warn("Invalid create organization request", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	org, err := h.service.CreateOrganization(r.Context(), &req)
	if err != nil {
		logger.Error("Failed to create organization in service",
			slog.Any("error", err),
			slog.Int("status_code", webutil.MapErrorToStatusCode(err)),
			slog.String("requested_name", req.Name),
		)
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Organization created", slog.String("organization_id", org.ID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, org, logger)
}

func (h *OrganizationHandler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListOrganizations"))

	orgs, err := h.service.ListOrganizations(r.Context())
	if err != nil {
		logger.Error("Failed to list organizations", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	if orgs == nil {
		orgs = []*model.Organization{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, orgs, logger)
}
