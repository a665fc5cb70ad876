// helpers_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go_5_lexicard/internal/config"
	"go_5_lexicard/internal/handlers"
	"go_5_lexicard/internal/middleware"
	"go_5_lexicard/internal/model"
	"go_5_lexicard/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// httpRequestDetails はHTTPリクエストの送信に必要な情報をまとめます。
type httpRequestDetails struct {
	Method  string
	Path    string
	Body    interface{}
	Headers map[string]string
}

// httpResponseExpectations はHTTPレスポンスの検証に必要な期待値をまとめます。
type httpResponseExpectations struct {
	ExpectedCode      int
	ExpectedErrorCode string
}

// serviceMocks はルーターに注入したサービスのモック
type serviceMocks struct {
	Auth     *mocks.AuthService
	Org      *mocks.OrganizationService
	Word     *mocks.WordService
	Progress *mocks.ProgressService
	Exercise *mocks.ExerciseService
}

func testConfig(authEnabled bool) *config.Config {
	cfg := &config.Config{}
	cfg.Auth.Enabled = authEnabled
	cfg.JWT.SecretKey = "handler-test-secret"
	cfg.JWT.AccessTokenTTL = 15 * time.Minute
	cfg.App.Name = config.AppName
	cfg.CORS.AllowedOrigins = []string{"*"}
	cfg.CORS.AllowedMethods = []string{"GET", "POST", "PATCH", "DELETE"}
	return cfg
}

// newTestServer はモックを注入したルーターで httptest サーバーを起動します
func newTestServer(t *testing.T, authEnabled bool) (*httptest.Server, *serviceMocks) {
	t.Helper()
	m := &serviceMocks{
		Auth:     mocks.NewAuthService(t),
		Org:      mocks.NewOrganizationService(t),
		Word:     mocks.NewWordService(t),
		Progress: mocks.NewProgressService(t),
		Exercise: mocks.NewExerciseService(t),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := handlers.NewRouter(handlers.RouterDeps{
		Config:   testConfig(authEnabled),
		Logger:   logger,
		Auth:     m.Auth,
		Org:      m.Org,
		Word:     m.Word,
		Progress: m.Progress,
		Exercise: m.Exercise,
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, m
}

// tenantHeaders は開発用ミドルウェアが読むヘッダーを返します
func tenantHeaders(tc model.TenantContext) map[string]string {
	return map[string]string{
		middleware.HeaderOrganizationID: tc.OrganizationID.String(),
		middleware.HeaderUserID:         tc.UserID.String(),
	}
}

func newTenant() model.TenantContext {
	return model.TenantContext{OrganizationID: uuid.New(), UserID: uuid.New()}
}

// sendRequest はHTTPリクエストを送信し、ステータスコードを検証してボディを返します。
func sendRequest(t *testing.T, server *httptest.Server, details httpRequestDetails, expectations httpResponseExpectations) []byte {
	t.Helper()

	var reqBodyReader io.Reader
	if details.Body != nil {
		if strPayload, ok := details.Body.(string); ok {
			reqBodyReader = strings.NewReader(strPayload)
		} else {
			reqBodyBytes, err := json.Marshal(details.Body)
			require.NoError(t, err, "Failed to marshal request body")
			reqBodyReader = bytes.NewBuffer(reqBodyBytes)
		}
	}

	req, err := http.NewRequest(details.Method, server.URL+details.Path, reqBodyReader)
	require.NoError(t, err, "Failed to create request")

	if reqBodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range details.Headers {
		req.Header.Set(key, value)
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err, "Failed to execute request")
	defer resp.Body.Close()

	respBodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")

	assert.Equal(t, expectations.ExpectedCode, resp.StatusCode, "Status code mismatch: %s", string(respBodyBytes))
	if expectations.ExpectedErrorCode != "" {
		verifyErrorResponse(t, respBodyBytes, expectations.ExpectedErrorCode)
	}
	return respBodyBytes
}

// verifyErrorResponse はエラーレスポンスのコードを検証します。
func verifyErrorResponse(t *testing.T, bodyBytes []byte, expectedCode string) {
	t.Helper()
	var errResp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(bodyBytes, &errResp), "error body is not APIErrorResponse: %s", string(bodyBytes))
	assert.Equal(t, expectedCode, errResp.Error.Code)
	assert.NotEmpty(t, errResp.Error.Message)
}

func decodeBody[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), "failed to decode body: %s", string(body))
	return v
}
