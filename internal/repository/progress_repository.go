//go:generate mockery --name ProgressRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_5_lexicard/internal/middleware"
	"go_5_lexicard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRepository は user_progress を扱います。
// 書き込みはすべて (user_id, word_id, organization_id) の一意制約に対する UPSERT です。
type ProgressRepository interface {
	// IncrementCorrect は acertos を 1 増やします (行がなければ acertos=1 で作成)
	IncrementCorrect(ctx context.Context, tx *gorm.DB, tc model.TenantContext, wordID uuid.UUID, now time.Time) (*model.ProgressRecord, error)
	// TouchIncorrect は acertos を変えずに回答日時だけ更新します (行がなければ acertos=0 で作成)
	TouchIncorrect(ctx context.Context, tx *gorm.DB, tc model.TenantContext, wordID uuid.UUID, now time.Time) (*model.ProgressRecord, error)
	FindOne(ctx context.Context, db *gorm.DB, tc model.TenantContext, wordID uuid.UUID) (*model.ProgressRecord, error)
	CountLearned(ctx context.Context, db *gorm.DB, tc model.TenantContext) (int64, error)
	CountMastered(ctx context.Context, db *gorm.DB, tc model.TenantContext) (int64, error)
	FindMasteredWordIDs(ctx context.Context, db *gorm.DB, tc model.TenantContext) ([]uuid.UUID, error)
	CountCorrectSince(ctx context.Context, db *gorm.DB, tc model.TenantContext, since time.Time) (int64, error)
}

type gormProgressRepository struct{}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

var progressConflictColumns = []clause.Column{{Name: "user_id"}, {Name: "word_id"}, {Name: "organization_id"}}

func (r *gormProgressRepository) IncrementCorrect(ctx context.Context, tx *gorm.DB, tc model.TenantContext, wordID uuid.UUID, now time.Time) (*model.ProgressRecord, error) {
	record := &model.ProgressRecord{
		ID:               uuid.New(),
		UserID:           tc.UserID,
		WordID:           wordID,
		OrganizationID:   tc.OrganizationID,
		Acertos:          1,
		DataUltimoAcerto: &now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	// 読んでから書くのではなく DB 側で加算する (同時実行でも更新が失われない)
	err := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: progressConflictColumns,
		DoUpdates: clause.Assignments(map[string]interface{}{
			"acertos":            gorm.Expr("user_progress.acertos + 1"),
			"data_ultimo_acerto": now,
			"updated_at":         now,
		}),
	}).Create(record).Error
	if err != nil {
		middleware.GetLogger(ctx).Error("Error incrementing progress in DB",
			"error", err,
			"organization_id", tc.OrganizationID.String(),
			"user_id", tc.UserID.String(),
			"word_id", wordID.String(),
		)
		return nil, fmt.Errorf("gormProgressRepository.IncrementCorrect: %w", err)
	}
	return r.FindOne(ctx, tx, tc, wordID)
}

func (r *gormProgressRepository) TouchIncorrect(ctx context.Context, tx *gorm.DB, tc model.TenantContext, wordID uuid.UUID, now time.Time) (*model.ProgressRecord, error) {
	record := &model.ProgressRecord{
		ID:             uuid.New(),
		UserID:         tc.UserID,
		WordID:         wordID,
		OrganizationID: tc.OrganizationID,
		Acertos:          0,
		DataUltimoAcerto: &now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	err := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: progressConflictColumns,
		DoUpdates: clause.Assignments(map[string]interface{}{
			"data_ultimo_acerto": now,
			"updated_at":         now,
		}),
	}).Create(record).Error
	if err != nil {
		middleware.GetLogger(ctx).Error("Error recording incorrect answer in DB",
			"error", err,
			"organization_id", tc.OrganizationID.String(),
			"user_id", tc.UserID.String(),
			"word_id", wordID.String(),
		)
		return nil, fmt.Errorf("gormProgressRepository.TouchIncorrect: %w", err)
	}
	return r.FindOne(ctx, tx, tc, wordID)
}

func (r *gormProgressRepository) FindOne(ctx context.Context, db *gorm.DB, tc model.TenantContext, wordID uuid.UUID) (*model.ProgressRecord, error) {
	var record model.ProgressRecord
	result := db.WithContext(ctx).
		Where("user_id = ? AND word_id = ? AND organization_id = ?", tc.UserID, wordID, tc.OrganizationID).
		First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormProgressRepository.FindOne: %w", result.Error)
	}
	return &record, nil
}

func (r *gormProgressRepository) scoped(ctx context.Context, db *gorm.DB, tc model.TenantContext) *gorm.DB {
	return db.WithContext(ctx).Model(&model.ProgressRecord{}).
		Where("user_id = ? AND organization_id = ?", tc.UserID, tc.OrganizationID)
}

// CountLearned は acertos > 0 の件数
func (r *gormProgressRepository) CountLearned(ctx context.Context, db *gorm.DB, tc model.TenantContext) (int64, error) {
	var count int64
	if err := r.scoped(ctx, db, tc).Where("acertos > 0").Count(&count).Error; err != nil {
		return 0, fmt.Errorf("gormProgressRepository.CountLearned: %w", err)
	}
	return count, nil
}

// CountMastered は acertos >= 3 の件数
func (r *gormProgressRepository) CountMastered(ctx context.Context, db *gorm.DB, tc model.TenantContext) (int64, error) {
	var count int64
	if err := r.scoped(ctx, db, tc).Where("acertos >= ?", model.MasteryThreshold).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("gormProgressRepository.CountMastered: %w", err)
	}
	return count, nil
}

func (r *gormProgressRepository) FindMasteredWordIDs(ctx context.Context, db *gorm.DB, tc model.TenantContext) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.scoped(ctx, db, tc).Where("acertos >= ?", model.MasteryThreshold).Pluck("word_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("gormProgressRepository.FindMasteredWordIDs: %w", err)
	}
	return ids, nil
}

// CountCorrectSince は since 以降に最後の正解があった単語数
func (r *gormProgressRepository) CountCorrectSince(ctx context.Context, db *gorm.DB, tc model.TenantContext, since time.Time) (int64, error) {
	var count int64
	err := r.scoped(ctx, db, tc).
		Where("acertos > 0 AND data_ultimo_acerto >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("gormProgressRepository.CountCorrectSince: %w", err)
	}
	return count, nil
}
