package middleware

import (
	"net/http"

	"go_5_lexicard/internal/model"
	"go_5_lexicard/internal/webutil"
)

const (
	HeaderOrganizationID = "X-Organization-ID"
	HeaderUserID         = "X-User-ID"
	HeaderUserRole       = "X-User-Role"
)

// DevTenantContextMiddleware は開発時用ミドルウェアです。
// X-Organization-ID / X-User-ID ヘッダーから TenantContext を作ります。DBでの存在チェックは行いません。
// X-User-Role があればロールとして使います (省略時は member)。
func DevTenantContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())

		if r.Header.Get(HeaderOrganizationID) == "" && r.Header.Get(HeaderUserID) == "" {
			logger.Warn("[DEV AUTH] Failed: tenant headers missing")
			webutil.HandleError(w, logger, model.TenantContext{}.Validate())
			return
		}

		tc, err := model.NewTenantContext(r.Header.Get(HeaderOrganizationID), r.Header.Get(HeaderUserID))
		if err != nil {
			logger.Warn("[DEV AUTH] Failed: invalid tenant headers",
				"organization_id", r.Header.Get(HeaderOrganizationID),
				"user_id", r.Header.Get(HeaderUserID),
				"error", err,
			)
			webutil.HandleError(w, logger, err)
			return
		}

		logger.Debug("[DEV AUTH] Tenant context set (no validation)", "org_id", tc.OrganizationID, "user_id", tc.UserID)
		role := r.Header.Get(HeaderUserRole)
		if role == "" {
			role = model.RoleMember
		}
		ctx := WithRole(WithTenantContext(r.Context(), tc), role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
