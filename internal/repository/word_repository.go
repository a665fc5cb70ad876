//go:generate mockery --name WordRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go_5_lexicard/internal/middleware"
	"go_5_lexicard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WordRepository は組織ごとの words テーブルを扱います
type WordRepository interface {
	Create(ctx context.Context, tx *gorm.DB, word *model.TenantWord) error
	// FindByID は組織で絞り込みません。アクセス判定はサービス層で行います。
	FindByID(ctx context.Context, db *gorm.DB, wordID uuid.UUID) (*model.TenantWord, error)
	FindByGlobalID(ctx context.Context, db *gorm.DB, orgID, globalID uuid.UUID) (*model.TenantWord, error)
	FindLegacyByWord(ctx context.Context, db *gorm.DB, orgID uuid.UUID, word string) (*model.TenantWord, error)
	FindByOrganization(ctx context.Context, db *gorm.DB, orgID uuid.UUID) ([]*model.TenantWord, error)
	Search(ctx context.Context, db *gorm.DB, orgID uuid.UUID, query string, limit int) ([]*model.TenantWord, error)
	Update(ctx context.Context, tx *gorm.DB, orgID, wordID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, orgID, wordID uuid.UUID) error
	ListIDs(ctx context.Context, db *gorm.DB, orgID uuid.UUID) ([]uuid.UUID, error)
}

type gormWordRepository struct{}

func NewGormWordRepository() WordRepository {
	return &gormWordRepository{}
}

func (r *gormWordRepository) Create(ctx context.Context, tx *gorm.DB, word *model.TenantWord) error {
	logger := middleware.GetLogger(ctx)
	if word.ID == uuid.Nil {
		word.ID = uuid.New()
	}
	result := tx.WithContext(ctx).Create(word)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			logger.Warn("Duplicate key error on create word",
				"organization_id", word.OrganizationID.String(),
				"word", word.Word,
			)
			return model.ErrConflict
		}
		logger.Error("Error creating word in DB",
			"error", result.Error,
			"organization_id", word.OrganizationID.String(),
			"word", word.Word,
		)
		return fmt.Errorf("gormWordRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormWordRepository) FindByID(ctx context.Context, db *gorm.DB, wordID uuid.UUID) (*model.TenantWord, error) {
	logger := middleware.GetLogger(ctx)
	var word model.TenantWord
	result := db.WithContext(ctx).Where("id = ?", wordID).First(&word)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding word by ID in DB",
			"error", result.Error,
			"word_id", wordID.String(),
		)
		return nil, fmt.Errorf("gormWordRepository.FindByID: %w", result.Error)
	}
	return &word, nil
}

func (r *gormWordRepository) FindByGlobalID(ctx context.Context, db *gorm.DB, orgID, globalID uuid.UUID) (*model.TenantWord, error) {
	var word model.TenantWord
	result := db.WithContext(ctx).Where("organization_id = ? AND word_global_id = ?", orgID, globalID).First(&word)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Error finding word by global ID in DB",
			"error", result.Error,
			"organization_id", orgID.String(),
			"word_global_id", globalID.String(),
		)
		return nil, fmt.Errorf("gormWordRepository.FindByGlobalID: %w", result.Error)
	}
	return &word, nil
}

// FindLegacyByWord はグローバルに紐付かない (word_global_id IS NULL) 行を単語で探します
func (r *gormWordRepository) FindLegacyByWord(ctx context.Context, db *gorm.DB, orgID uuid.UUID, word string) (*model.TenantWord, error) {
	var tw model.TenantWord
	result := db.WithContext(ctx).
		Where("organization_id = ? AND word = ? AND word_global_id IS NULL", orgID, word).
		First(&tw)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormWordRepository.FindLegacyByWord: %w", result.Error)
	}
	return &tw, nil
}

func (r *gormWordRepository) FindByOrganization(ctx context.Context, db *gorm.DB, orgID uuid.UUID) ([]*model.TenantWord, error) {
	logger := middleware.GetLogger(ctx)
	var words []*model.TenantWord
	result := db.WithContext(ctx).Where("organization_id = ?", orgID).Order("created_at DESC").Find(&words)
	if result.Error != nil {
		logger.Error("Error finding words by organization in DB",
			"error", result.Error,
			"organization_id", orgID.String(),
		)
		return nil, fmt.Errorf("gormWordRepository.FindByOrganization: %w", result.Error)
	}
	return words, nil
}

// Search は word / translation の部分一致 (大文字小文字を区別しない) で検索します
func (r *gormWordRepository) Search(ctx context.Context, db *gorm.DB, orgID uuid.UUID, query string, limit int) ([]*model.TenantWord, error) {
	var words []*model.TenantWord
	// ILIKE は SQLite にないため LOWER + LIKE で揃える
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	result := db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Where("LOWER(word) LIKE ? ESCAPE '\\' OR LOWER(translation) LIKE ? ESCAPE '\\'", pattern, pattern).
		Order("word ASC").
		Limit(limit).
		Find(&words)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error searching words in DB",
			"error", result.Error,
			"organization_id", orgID.String(),
			"query", query,
		)
		return nil, fmt.Errorf("gormWordRepository.Search: %w", result.Error)
	}
	return words, nil
}

func (r *gormWordRepository) Update(ctx context.Context, tx *gorm.DB, orgID, wordID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.TenantWord{}).
		Where("organization_id = ? AND id = ?", orgID, wordID).
		Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating word in DB",
			"error", result.Error,
			"organization_id", orgID.String(),
			"word_id", wordID.String(),
		)
		return fmt.Errorf("gormWordRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormWordRepository) Delete(ctx context.Context, tx *gorm.DB, orgID, wordID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("organization_id = ? AND id = ?", orgID, wordID).Delete(&model.TenantWord{})
	if result.Error != nil {
		logger.Error("Error deleting word in DB",
			"error", result.Error,
			"organization_id", orgID.String(),
			"word_id", wordID.String(),
		)
		return fmt.Errorf("gormWordRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormWordRepository) ListIDs(ctx context.Context, db *gorm.DB, orgID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := db.WithContext(ctx).Model(&model.TenantWord{}).Where("organization_id = ?", orgID).Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("gormWordRepository.ListIDs: %w", err)
	}
	return ids, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
