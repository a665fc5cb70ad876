package handlers

import (
	"net/http"

	"go_5_lexicard/internal/middleware"
	"go_5_lexicard/internal/model"
	"go_5_lexicard/internal/service"
	"go_5_lexicard/internal/webutil"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

// SignUp は組織に参加するユーザーを登録し、有効化メールの送信をトリガーします
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.SignUpRequest
	if err := webutil.DecodeAndValidate(w, r, &req); err != nil {
		logger.Warn("Invalid sign up request", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	user, err := h.service.SignUp(r.Context(), &req)
	if err != nil {
		logger.Error("Sign up failed in service", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Sign up successful. Verification email sent.", "user_id", user.ID.String())
	webutil.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Enviamos um e-mail de confirmação. Verifique sua caixa de entrada para ativar a conta.",
		"user":    model.NewUserResponse(user),
	}, logger)
}

// VerifyAccount は提供されたトークンでアカウントを有効化します
func (h *AuthHandler) VerifyAccount(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	token := r.URL.Query().Get("token")
	if token == "" {
		logger.Warn("Verification attempt with no token")
		webutil.HandleError(w, logger, model.NewAppError(model.CodeInvalidInput, "O token de ativação é obrigatório.", "token", model.ErrInvalidInput))
		return
	}
	logger = logger.With("token_prefix", token[:min(8, len(token))]) // トークンの先頭だけログに残す

	if err := h.service.VerifyAccount(r.Context(), token); err != nil {
		logger.Error("Account verification failed in service", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Account successfully verified")
	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Conta ativada com sucesso. Faça login para continuar.",
	}, logger)
}

// Login はユーザーを認証し、JWTを返します
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.LoginRequest
	if err := webutil.DecodeAndValidate(w, r, &req); err != nil {
		logger.Warn("Invalid login request", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	loginResponse, err := h.service.Login(r.Context(), &req)
	if err != nil {
		// ログはサービス層で出力済み
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, loginResponse, logger)
}

// GetMe は認証済みユーザー自身の情報を返します
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	tc, err := middleware.GetTenantContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	user, err := h.service.GetUser(r.Context(), tc.UserID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.NewUserResponse(user), logger)
}

func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.ForgotPasswordRequest
	if err := webutil.DecodeAndValidate(w, r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.service.RequestPasswordReset(r.Context(), req.Email); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	// 未登録のメールでも同じメッセージを返す
	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Se o e-mail estiver cadastrado, você receberá um link para redefinir a senha.",
	}, logger)
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.ResetPasswordRequest
	if err := webutil.DecodeAndValidate(w, r, &req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.service.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Senha atualizada com sucesso.",
	}, logger)
}
