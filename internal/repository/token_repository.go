//go:generate mockery --name TokenRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_5_lexicard/internal/middleware"
	"go_5_lexicard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenRepository はアカウント有効化とパスワード再設定のワンタイムトークンを扱います
type TokenRepository interface {
	CreateVerificationToken(ctx context.Context, db *gorm.DB, token *model.VerificationToken) error
	FindVerificationToken(ctx context.Context, db *gorm.DB, token string) (*model.VerificationToken, error)
	DeleteVerificationToken(ctx context.Context, db *gorm.DB, token string) error
	CreatePasswordResetToken(ctx context.Context, db *gorm.DB, token *model.PasswordResetToken) error
	FindPasswordResetToken(ctx context.Context, db *gorm.DB, token string) (*model.PasswordResetToken, error)
	DeletePasswordResetToken(ctx context.Context, db *gorm.DB, token string) error
	// DeletePasswordResetTokensByUser は再発行前に古いトークンを無効化します
	DeletePasswordResetTokensByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) error
}

type gormTokenRepository struct{}

func NewGormTokenRepository() TokenRepository {
	return &gormTokenRepository{}
}

type oneTimeToken interface {
	model.VerificationToken | model.PasswordResetToken
}

func createToken[T oneTimeToken](ctx context.Context, db *gorm.DB, token *T, op string) error {
	if err := db.WithContext(ctx).Create(token).Error; err != nil {
		middleware.GetLogger(ctx).Error("Failed to create token", "error", err, "op", op)
		return fmt.Errorf("gormTokenRepository.%s: %w", op, err)
	}
	return nil
}

func findToken[T oneTimeToken](ctx context.Context, db *gorm.DB, value, op string) (*T, error) {
	var token T
	if err := db.WithContext(ctx).Where("token = ?", value).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Failed to find token", "error", err, "op", op)
		return nil, fmt.Errorf("gormTokenRepository.%s: %w", op, err)
	}
	return &token, nil
}

func deleteTokens[T oneTimeToken](ctx context.Context, db *gorm.DB, column string, value interface{}, op string) error {
	var zero T
	if err := db.WithContext(ctx).Where(column+" = ?", value).Delete(&zero).Error; err != nil {
		middleware.GetLogger(ctx).Error("Failed to delete token", "error", err, "op", op)
		return fmt.Errorf("gormTokenRepository.%s: %w", op, err)
	}
	return nil
}

func (r *gormTokenRepository) CreateVerificationToken(ctx context.Context, db *gorm.DB, token *model.VerificationToken) error {
	return createToken(ctx, db, token, "CreateVerificationToken")
}

func (r *gormTokenRepository) FindVerificationToken(ctx context.Context, db *gorm.DB, token string) (*model.VerificationToken, error) {
	return findToken[model.VerificationToken](ctx, db, token, "FindVerificationToken")
}

func (r *gormTokenRepository) DeleteVerificationToken(ctx context.Context, db *gorm.DB, token string) error {
	return deleteTokens[model.VerificationToken](ctx, db, "token", token, "DeleteVerificationToken")
}

func (r *gormTokenRepository) CreatePasswordResetToken(ctx context.Context, db *gorm.DB, token *model.PasswordResetToken) error {
	return createToken(ctx, db, token, "CreatePasswordResetToken")
}

func (r *gormTokenRepository) FindPasswordResetToken(ctx context.Context, db *gorm.DB, token string) (*model.PasswordResetToken, error) {
	return findToken[model.PasswordResetToken](ctx, db, token, "FindPasswordResetToken")
}

func (r *gormTokenRepository) DeletePasswordResetToken(ctx context.Context, db *gorm.DB, token string) error {
	return deleteTokens[model.PasswordResetToken](ctx, db, "token", token, "DeletePasswordResetToken")
}

func (r *gormTokenRepository) DeletePasswordResetTokensByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) error {
	return deleteTokens[model.PasswordResetToken](ctx, db, "user_id", userID, "DeletePasswordResetTokensByUser")
}
