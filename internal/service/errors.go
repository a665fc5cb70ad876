package service

import (
	"errors"
	"fmt"

	"go_5_lexicard/internal/model"

	"github.com/google/uuid"
)

// wrapError は err を code 付きの AppError にします。
// すでに AppError ならそのまま、ErrNotFound は NOT_FOUND として返します。
func wrapError(err error, code, message string) error {
	if err == nil {
		return nil
	}
	var appErr *model.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, model.ErrNotFound) {
		return model.NewAppError(model.CodeNotFound, "Recurso não encontrado.", "", err)
	}
	return model.NewAppError(code, message, "", fmt.Errorf("%w: %w", model.ErrInternalServer, err))
}

// checkOwnership は行の組織と TenantContext の組織を比較します
func checkOwnership(tc model.TenantContext, rowOrganizationID uuid.UUID) error {
	if tc.OrganizationID != rowOrganizationID {
		return model.NewAppError(model.CodeAccessDenied, "Acesso negado a este recurso.", "", model.ErrForbidden)
	}
	return nil
}
