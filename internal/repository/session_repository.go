//go:generate mockery --name SessionRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"
	"time"

	"go_5_lexicard/internal/middleware"
	"go_5_lexicard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionRepository は flashcard_sessions を扱います
type SessionRepository interface {
	Create(ctx context.Context, db *gorm.DB, session *model.FlashcardSession) error
	FindRecent(ctx context.Context, db *gorm.DB, tc model.TenantContext, since time.Time, limit int) ([]*model.FlashcardSession, error)
}

type gormSessionRepository struct{}

func NewGormSessionRepository() SessionRepository {
	return &gormSessionRepository{}
}

func (r *gormSessionRepository) Create(ctx context.Context, db *gorm.DB, session *model.FlashcardSession) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	if err := db.WithContext(ctx).Create(session).Error; err != nil {
		middleware.GetLogger(ctx).Error("Error creating flashcard session in DB",
			"error", err,
			"organization_id", session.OrganizationID.String(),
			"user_id", session.UserID.String(),
		)
		return fmt.Errorf("gormSessionRepository.Create: %w", err)
	}
	return nil
}

// FindRecent は since 以降のセッションを新しい順に最大 limit 件返します
func (r *gormSessionRepository) FindRecent(ctx context.Context, db *gorm.DB, tc model.TenantContext, since time.Time, limit int) ([]*model.FlashcardSession, error) {
	sessions := []*model.FlashcardSession{}
	err := db.WithContext(ctx).
		Where("user_id = ? AND organization_id = ? AND data_sessao >= ?", tc.UserID, tc.OrganizationID, since).
		Order("data_sessao DESC").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("gormSessionRepository.FindRecent: %w", err)
	}
	return sessions, nil
}
