package model

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

type ContextKey string

const (
	TenantContextKey ContextKey = "tenantContext"
	RoleContextKey   ContextKey = "role"
)

// 組織ID・ユーザーIDとして受け付ける形式 (小文字16進 + ハイフンの36文字)
var idPattern = regexp.MustCompile(`^[a-f0-9-]{36}$`)

// TenantContext は1回の操作がどの組織・どのユーザーとして実行されるかを表します。
// サービスの各メソッドに明示的に渡し、共有インスタンスに状態を持たせません。
type TenantContext struct {
	OrganizationID uuid.UUID
	UserID         uuid.UUID
}

// NewTenantContext は文字列のIDを検証して TenantContext を作ります。
func NewTenantContext(organizationID, userID string) (TenantContext, error) {
	orgID, err := ParseOrganizationID(organizationID)
	if err != nil {
		return TenantContext{}, err
	}
	uid, err := ParseUserID(userID)
	if err != nil {
		return TenantContext{}, err
	}
	return TenantContext{OrganizationID: orgID, UserID: uid}, nil
}

// ParseOrganizationID は INVALID_ORG_ID の AppError を返します
func ParseOrganizationID(s string) (uuid.UUID, error) {
	id, err := parseID(s)
	if err != nil {
		return uuid.Nil, NewAppError(CodeInvalidOrgID, "ID de organização inválido.", "organization_id", ErrInvalidInput)
	}
	return id, nil
}

// ParseUserID は INVALID_USER_ID の AppError を返します
func ParseUserID(s string) (uuid.UUID, error) {
	id, err := parseID(s)
	if err != nil {
		return uuid.Nil, NewAppError(CodeInvalidUserID, "ID de usuário inválido.", "user_id", ErrInvalidInput)
	}
	return id, nil
}

// Validate はコンテキストが設定済みかを確認します。
func (tc TenantContext) Validate() error {
	if tc.OrganizationID == uuid.Nil || tc.UserID == uuid.Nil {
		return NewAppError(CodeContextNotSet, "Contexto de organização/usuário não definido.", "", ErrUnauthorized)
	}
	return nil
}

func parseID(s string) (uuid.UUID, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !idPattern.MatchString(s) {
		return uuid.Nil, ErrInvalidInput
	}
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrInvalidInput
	}
	return id, nil
}
