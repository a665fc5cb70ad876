package middleware

import (
	"context"
	"net/http"
	"strings"

	"go_5_lexicard/internal/config"
	"go_5_lexicard/internal/model"
	"go_5_lexicard/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
)

// JWTAuthMiddleware は Authorization ヘッダーの Bearer トークンを検証し、
// sub (ユーザーID) と org_id から TenantContext を組み立ててコンテキストに入れます。
func JWTAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("JWT auth failed: Authorization header missing")
				webutil.HandleError(w, logger, model.NewAppError(model.CodeUnauthorized, "Cabeçalho Authorization é obrigatório.", "", model.ErrUnauthorized))
				return
			}
			scheme, tokenString, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || tokenString == "" {
				logger.Warn("JWT auth failed: Invalid Authorization header format")
				webutil.HandleError(w, logger, model.NewAppError(model.CodeUnauthorized, "Formato do cabeçalho Authorization inválido.", "", model.ErrUnauthorized))
				return
			}

			claims := &model.AccessClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(cfg.JWT.SecretKey), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				logger.Warn("JWT auth failed: Invalid token", "error", err)
				webutil.HandleError(w, logger, model.NewAppError("INVALID_TOKEN", "Token inválido ou expirado.", "", model.ErrUnauthorized))
				return
			}

			tc, err := model.NewTenantContext(claims.OrganizationID, claims.Subject)
			if err != nil {
				logger.Warn("JWT auth failed: invalid tenant claims", "sub", claims.Subject, "org_id", claims.OrganizationID, "error", err)
				webutil.HandleError(w, logger, err)
				return
			}

			ctx := WithTenantContext(r.Context(), tc)
			ctx = WithRole(ctx, claims.Role)
			ctx = WithLogger(ctx, logger.With("org_id", tc.OrganizationID.String(), "user_id", tc.UserID.String()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithTenantContext は TenantContext をコンテキストに格納します。
func WithTenantContext(ctx context.Context, tc model.TenantContext) context.Context {
	return context.WithValue(ctx, model.TenantContextKey, tc)
}

// GetTenantContext はミドルウェアが格納した TenantContext を取り出します。
func GetTenantContext(ctx context.Context) (model.TenantContext, error) {
	tc, ok := ctx.Value(model.TenantContextKey).(model.TenantContext)
	if !ok {
		return model.TenantContext{}, model.TenantContext{}.Validate()
	}
	if err := tc.Validate(); err != nil {
		return model.TenantContext{}, err
	}
	return tc, nil
}

func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, model.RoleContextKey, role)
}

// GetRole は認証済みユーザーのロールを返します (未設定なら空文字)
func GetRole(ctx context.Context) string {
	role, _ := ctx.Value(model.RoleContextKey).(string)
	return role
}

// RequireRole は認証ミドルウェアの後ろに置き、ロールが一致しなければ 403 を返します
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := GetRole(r.Context()); got != role {
				logger := GetLogger(r.Context())
				logger.Warn("Access denied: insufficient role", "required", role, "role", got)
				webutil.HandleError(w, logger, model.NewAppError(model.CodeAccessDenied, "Acesso negado.", "", model.ErrForbidden))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
