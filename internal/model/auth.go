package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// SignUpRequest は新規登録APIのリクエストボディ
type SignUpRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6,max=72"`
	OrganizationID string `json:"organization_id" validate:"required"`
}

// LoginRequest はログインAPIのリクエストボディ
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse はログイン成功時のレスポンス
type LoginResponse struct {
	AccessToken    string `json:"access_token"`
	UserID         string `json:"user_id"`
	OrganizationID string `json:"organization_id"`
}

// AccessClaims はアクセストークンのペイロード。sub はユーザーID。
type AccessClaims struct {
	OrganizationID string `json:"org_id"`
	Role           string `json:"role"`
	jwt.RegisteredClaims
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}
