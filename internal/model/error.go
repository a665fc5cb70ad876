package model

import "errors"

// アプリケーション固有のエラー
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("resource conflict") // 重複エラー用
)

// エラーコード (クライアントに返す code フィールド)
const (
	CodeInvalidOrgID         = "INVALID_ORG_ID"
	CodeInvalidUserID        = "INVALID_USER_ID"
	CodeContextNotSet        = "CONTEXT_NOT_SET"
	CodeNotFound             = "NOT_FOUND"
	CodeAccessDenied         = "ACCESS_DENIED"
	CodeOrganizationMismatch = "ORGANIZATION_MISMATCH"
	CodeAlreadyExists        = "ALREADY_EXISTS"
	CodeInvalidInput         = "INVALID_INPUT"
	CodeValidation           = "VALIDATION_ERROR"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeInternal             = "INTERNAL_SERVER_ERROR"

	CodeFetchWord      = "FETCH_WORD_ERROR"
	CodeSaveWord       = "SAVE_WORD_ERROR"
	CodeUpdateWord     = "UPDATE_WORD_ERROR"
	CodeDeleteWord     = "DELETE_WORD_ERROR"
	CodeSearchWords    = "SEARCH_WORDS_ERROR"
	CodeFetchWords     = "FETCH_WORDS_ERROR"
	CodeGetWord        = "GET_WORD_ERROR"
	CodeRecordProgress = "RECORD_PROGRESS_ERROR"
	CodeFetchProgress  = "FETCH_PROGRESS_ERROR"
	CodeExercise       = "EXERCISE_ERROR"

	// 認証まわり
	CodeInvalidToken         = "INVALID_TOKEN"
	CodeAuthenticationFailed = "AUTHENTICATION_FAILED"
	CodeAccountNotActive     = "ACCOUNT_NOT_ACTIVE"
	CodeEmailSendFailed      = "EMAIL_SEND_FAILED"
)

// ErrorDetail はエラーレスポンスの中身
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// AppError はクライアント向けの詳細と、原因となったエラーを保持します。
// Err には上記のセンチネルエラー (またはそれをラップしたエラー) を入れ、
// HTTPステータスの判定に使います。
type AppError struct {
	Detail ErrorDetail
	Err    error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{Code: code, Message: message, Field: field},
		Err:    err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Detail.Code + ": " + e.Detail.Message + ": " + e.Err.Error()
	}
	return e.Detail.Code + ": " + e.Detail.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Code は err チェーン中の最初の AppError のコードを返します。AppError でなければ空文字。
func Code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Detail.Code
	}
	return ""
}
