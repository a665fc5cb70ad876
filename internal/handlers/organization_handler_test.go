package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"go_5_lexicard/internal/middleware"
	"go_5_lexicard/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestOrganizationHandler_CreateOrganization(t *testing.T) {
	testCases := []struct {
		name         string
		body         interface{}
		setupMock    func(m *serviceMocks)
		expectedCode int
		expectedErr  string
	}{
		{
			name: "正常系: 組織を作成",
			body: model.CreateOrganizationRequest{Name: "Escola Azul", PlanType: model.PlanPro},
			setupMock: func(m *serviceMocks) {
				m.Org.On("CreateOrganization", mock.Anything, &model.CreateOrganizationRequest{Name: "Escola Azul", PlanType: model.PlanPro}).
					Return(&model.Organization{ID: uuid.New(), Name: "Escola Azul", PlanType: model.PlanPro}, nil).Once()
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "異常系: 名前なし",
			body:         model.CreateOrganizationRequest{},
			expectedCode: http.StatusBadRequest,
			expectedErr:  model.CodeValidation,
		},
		{
			name:         "異常系: 不明なプラン",
			body:         model.CreateOrganizationRequest{Name: "X", PlanType: "gold"},
			expectedCode: http.StatusBadRequest,
			expectedErr:  model.CodeValidation,
		},
		{
			name: "異常系: 名前の重複",
			body: model.CreateOrganizationRequest{Name: "Escola Azul"},
			setupMock: func(m *serviceMocks) {
				m.Org.On("CreateOrganization", mock.Anything, mock.Anything).
					Return(nil, model.NewAppError(model.CodeAlreadyExists, "Organização já existe.", "name", model.ErrConflict)).Once()
			},
			expectedCode: http.StatusConflict,
			expectedErr:  model.CodeAlreadyExists,
		},
	}

	admin := tenantHeaders(newTenant())
	admin[middleware.HeaderUserRole] = model.RoleAdmin

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			server, m := newTestServer(t, false)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}
			body := sendRequest(t, server, httpRequestDetails{
				Method:  http.MethodPost,
				Path:    "/api/v1/organizations",
				Headers: admin,
				Body:    tt.body,
			}, httpResponseExpectations{ExpectedCode: tt.expectedCode, ExpectedErrorCode: tt.expectedErr})

			if tt.expectedCode == http.StatusCreated {
				assert.Equal(t, "Escola Azul", decodeBody[model.Organization](t, body).Name)
			}
		})
	}
}

func TestOrganizationHandler_CreateOrganization_RequiresAdmin(t *testing.T) {
	const secret = "handler-test-secret"
	tc := newTenant()
	req := model.CreateOrganizationRequest{Name: "Escola Azul"}

	member := tenantHeaders(tc)
	admin := tenantHeaders(tc)
	admin[middleware.HeaderUserRole] = model.RoleAdmin

	testCases := []struct {
		name         string
		authEnabled  bool
		headers      map[string]string
		expectCreate bool
		expectedCode int
		expectedErr  string
	}{
		{
			name:         "正常系: JWT の admin は作成できる",
			authEnabled:  true,
			headers:      map[string]string{"Authorization": "Bearer " + signedTokenWithRole(t, tc, model.RoleAdmin, secret, time.Minute)},
			expectCreate: true,
			expectedCode: http.StatusCreated,
		},
		{
			name:         "異常系: JWT の member は 403",
			authEnabled:  true,
			headers:      map[string]string{"Authorization": "Bearer " + signedToken(t, tc, secret, time.Minute)},
			expectedCode: http.StatusForbidden,
			expectedErr:  model.CodeAccessDenied,
		},
		{
			name:         "異常系: トークンなしは 401",
			authEnabled:  true,
			expectedCode: http.StatusUnauthorized,
			expectedErr:  model.CodeUnauthorized,
		},
		{
			name:         "正常系: 開発モードでロールヘッダーが admin",
			headers:      admin,
			expectCreate: true,
			expectedCode: http.StatusCreated,
		},
		{
			name:         "異常系: 開発モードでロール省略は member 扱い",
			headers:      member,
			expectedCode: http.StatusForbidden,
			expectedErr:  model.CodeAccessDenied,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			server, m := newTestServer(t, tt.authEnabled)
			if tt.expectCreate {
				m.Org.On("CreateOrganization", mock.Anything, &req).
					Return(&model.Organization{ID: uuid.New(), Name: req.Name, PlanType: model.PlanFree}, nil).Once()
			}
			sendRequest(t, server, httpRequestDetails{
				Method:  http.MethodPost,
				Path:    "/api/v1/organizations",
				Headers: tt.headers,
				Body:    req,
			}, httpResponseExpectations{ExpectedCode: tt.expectedCode, ExpectedErrorCode: tt.expectedErr})
		})
	}
}

func TestOrganizationHandler_ListOrganizations(t *testing.T) {
	t.Run("正常系: 認証なしで一覧を取得", func(t *testing.T) {
		server, m := newTestServer(t, true)
		m.Org.On("ListOrganizations", mock.Anything).Return([]*model.Organization{{ID: uuid.New(), Name: "A"}}, nil).Once()

		body := sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/organizations"},
			httpResponseExpectations{ExpectedCode: http.StatusOK})
		assert.Len(t, decodeBody[[]model.Organization](t, body), 1)
	})

	t.Run("正常系: 0件は空配列", func(t *testing.T) {
		server, m := newTestServer(t, false)
		m.Org.On("ListOrganizations", mock.Anything).Return(nil, nil).Once()

		body := sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/organizations"},
			httpResponseExpectations{ExpectedCode: http.StatusOK})
		assert.JSONEq(t, `[]`, string(body))
	})
}
