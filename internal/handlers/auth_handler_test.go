package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"go_5_lexicard/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, tc model.TenantContext, secret string, ttl time.Duration) string {
	t.Helper()
	return signedTokenWithRole(t, tc, model.RoleMember, secret, ttl)
}

func signedTokenWithRole(t *testing.T, tc model.TenantContext, role, secret string, ttl time.Duration) string {
	t.Helper()
	claims := model.AccessClaims{
		OrganizationID: tc.OrganizationID.String(),
		Role:           role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   tc.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthHandler_SignUp(t *testing.T) {
	orgID := uuid.New()
	validReq := model.SignUpRequest{Email: "ana@example.com", Password: "secret123", OrganizationID: orgID.String()}

	testCases := []struct {
		name         string
		body         interface{}
		setupMock    func(m *serviceMocks)
		expectedCode int
		expectedErr  string
	}{
		{
			name: "正常系: 登録できる",
			body: validReq,
			setupMock: func(m *serviceMocks) {
				m.Auth.On("SignUp", mock.Anything, &validReq).Return(&model.User{
					ID: uuid.New(), Email: validReq.Email, OrganizationID: orgID, Role: model.RoleMember,
				}, nil).Once()
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "異常系: メール形式が不正",
			body:         model.SignUpRequest{Email: "ana", Password: "secret123", OrganizationID: orgID.String()},
			expectedCode: http.StatusBadRequest,
			expectedErr:  model.CodeValidation,
		},
		{
			name:         "異常系: パスワードが短い",
			body:         model.SignUpRequest{Email: "ana@example.com", Password: "123", OrganizationID: orgID.String()},
			expectedCode: http.StatusBadRequest,
			expectedErr:  model.CodeValidation,
		},
		{
			name: "異常系: メールが登録済み",
			body: validReq,
			setupMock: func(m *serviceMocks) {
				m.Auth.On("SignUp", mock.Anything, mock.Anything).
					Return(nil, model.NewAppError(model.CodeAlreadyExists, "E-mail já cadastrado.", "email", model.ErrConflict)).Once()
			},
			expectedCode: http.StatusConflict,
			expectedErr:  model.CodeAlreadyExists,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			server, m := newTestServer(t, true)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}
			body := sendRequest(t, server, httpRequestDetails{
				Method: http.MethodPost,
				Path:   "/api/v1/auth/signup",
				Body:   tt.body,
			}, httpResponseExpectations{ExpectedCode: tt.expectedCode, ExpectedErrorCode: tt.expectedErr})

			if tt.expectedCode == http.StatusCreated {
				got := decodeBody[struct {
					Message string             `json:"message"`
					User    model.UserResponse `json:"user"`
				}](t, body)
				assert.NotEmpty(t, got.Message)
				assert.Equal(t, validReq.Email, got.User.Email)
				assert.NotContains(t, string(body), "password")
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	req := model.LoginRequest{Email: "ana@example.com", Password: "secret123"}

	t.Run("正常系: トークンを返す", func(t *testing.T) {
		server, m := newTestServer(t, true)
		m.Auth.On("Login", mock.Anything, &req).Return(&model.LoginResponse{AccessToken: "tok", UserID: "u", OrganizationID: "o"}, nil).Once()

		body := sendRequest(t, server, httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/auth/login", Body: req},
			httpResponseExpectations{ExpectedCode: http.StatusOK})
		assert.Equal(t, "tok", decodeBody[model.LoginResponse](t, body).AccessToken)
	})

	t.Run("異常系: 認証失敗", func(t *testing.T) {
		server, m := newTestServer(t, true)
		m.Auth.On("Login", mock.Anything, &req).
			Return(nil, model.NewAppError(model.CodeAuthenticationFailed, "E-mail ou senha inválidos.", "", model.ErrUnauthorized)).Once()

		sendRequest(t, server, httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/auth/login", Body: req},
			httpResponseExpectations{ExpectedCode: http.StatusUnauthorized, ExpectedErrorCode: model.CodeAuthenticationFailed})
	})
}

func TestAuthHandler_VerifyAccount(t *testing.T) {
	t.Run("正常系: 有効化できる", func(t *testing.T) {
		server, m := newTestServer(t, true)
		m.Auth.On("VerifyAccount", mock.Anything, "abcdef0123456789").Return(nil).Once()

		sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/auth/verify?token=abcdef0123456789"},
			httpResponseExpectations{ExpectedCode: http.StatusOK})
	})

	t.Run("異常系: トークンなし", func(t *testing.T) {
		server, _ := newTestServer(t, true)
		sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/auth/verify"},
			httpResponseExpectations{ExpectedCode: http.StatusBadRequest, ExpectedErrorCode: model.CodeInvalidInput})
	})
}

func TestAuthHandler_PasswordReset(t *testing.T) {
	t.Run("正常系: 再設定メールの要求", func(t *testing.T) {
		server, m := newTestServer(t, true)
		m.Auth.On("RequestPasswordReset", mock.Anything, "ana@example.com").Return(nil).Once()

		sendRequest(t, server, httpRequestDetails{
			Method: http.MethodPost,
			Path:   "/api/v1/auth/forgot-password",
			Body:   model.ForgotPasswordRequest{Email: "ana@example.com"},
		}, httpResponseExpectations{ExpectedCode: http.StatusOK})
	})

	t.Run("正常系: パスワードを再設定", func(t *testing.T) {
		server, m := newTestServer(t, true)
		m.Auth.On("ResetPassword", mock.Anything, "tok", "newsecret").Return(nil).Once()

		sendRequest(t, server, httpRequestDetails{
			Method: http.MethodPost,
			Path:   "/api/v1/auth/reset-password",
			Body:   model.ResetPasswordRequest{Token: "tok", Password: "newsecret"},
		}, httpResponseExpectations{ExpectedCode: http.StatusOK})
	})

	t.Run("異常系: 無効なトークン", func(t *testing.T) {
		server, m := newTestServer(t, true)
		m.Auth.On("ResetPassword", mock.Anything, "bad", "newsecret").
			Return(model.NewAppError(model.CodeInvalidToken, "Token inválido ou expirado.", "", model.ErrInvalidInput)).Once()

		sendRequest(t, server, httpRequestDetails{
			Method: http.MethodPost,
			Path:   "/api/v1/auth/reset-password",
			Body:   model.ResetPasswordRequest{Token: "bad", Password: "newsecret"},
		}, httpResponseExpectations{ExpectedCode: http.StatusBadRequest, ExpectedErrorCode: model.CodeInvalidToken})
	})
}

func TestAuthHandler_GetMe_JWT(t *testing.T) {
	tc := newTenant()
	secret := testConfig(true).JWT.SecretKey

	testCases := []struct {
		name         string
		headers      map[string]string
		setupMock    func(m *serviceMocks)
		expectedCode int
		expectedErr  string
	}{
		{
			name:    "正常系: 有効なトークン",
			headers: map[string]string{"Authorization": "Bearer " + signedToken(t, tc, secret, time.Minute)},
			setupMock: func(m *serviceMocks) {
				m.Auth.On("GetUser", mock.Anything, tc.UserID).Return(&model.User{
					ID: tc.UserID, Email: "ana@example.com", OrganizationID: tc.OrganizationID, Role: model.RoleMember, IsActive: true,
				}, nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "異常系: ヘッダーなし",
			expectedCode: http.StatusUnauthorized,
			expectedErr:  model.CodeUnauthorized,
		},
		{
			name:         "異常系: Bearer 以外",
			headers:      map[string]string{"Authorization": "Basic abc"},
			expectedCode: http.StatusUnauthorized,
			expectedErr:  model.CodeUnauthorized,
		},
		{
			name:         "異常系: 期限切れ",
			headers:      map[string]string{"Authorization": "Bearer " + signedToken(t, tc, secret, -time.Minute)},
			expectedCode: http.StatusUnauthorized,
			expectedErr:  model.CodeInvalidToken,
		},
		{
			name:         "異常系: 別の鍵で署名",
			headers:      map[string]string{"Authorization": "Bearer " + signedToken(t, tc, "other-secret", time.Minute)},
			expectedCode: http.StatusUnauthorized,
			expectedErr:  model.CodeInvalidToken,
		},
		{
			name:         "異常系: 認証有効時はテナントヘッダーを受け付けない",
			headers:      tenantHeaders(tc),
			expectedCode: http.StatusUnauthorized,
			expectedErr:  model.CodeUnauthorized,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			server, m := newTestServer(t, true)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}
			body := sendRequest(t, server, httpRequestDetails{
				Method:  http.MethodGet,
				Path:    "/api/v1/me",
				Headers: tt.headers,
			}, httpResponseExpectations{ExpectedCode: tt.expectedCode, ExpectedErrorCode: tt.expectedErr})

			if tt.expectedCode == http.StatusOK {
				got := decodeBody[model.UserResponse](t, body)
				assert.Equal(t, tc.UserID, got.ID)
				assert.Equal(t, tc.OrganizationID, got.OrganizationID)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	server, _ := newTestServer(t, true)
	body := sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/health"},
		httpResponseExpectations{ExpectedCode: http.StatusOK})
	assert.Equal(t, "OK", string(body))
}
