//go:generate mockery --name GlobalWordRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_5_lexicard/internal/middleware"
	"go_5_lexicard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GlobalWordRepository は全組織共通の words_global を扱います
type GlobalWordRepository interface {
	// Create は一意制約違反のとき model.ErrConflict を返します
	Create(ctx context.Context, tx *gorm.DB, word *model.GlobalWord) error
	FindByWord(ctx context.Context, db *gorm.DB, word string) (*model.GlobalWord, error)
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.GlobalWord, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []uuid.UUID) ([]*model.GlobalWord, error)
	ListOrdered(ctx context.Context, db *gorm.DB, limit int) ([]*model.GlobalWord, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	FindMissingAudio(ctx context.Context, db *gorm.DB, limit int) ([]*model.GlobalWord, error)
	FindExistingWords(ctx context.Context, db *gorm.DB, words []string) ([]string, error)
	InsertIgnoreConflicts(ctx context.Context, tx *gorm.DB, words []*model.GlobalWord) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
}

type gormGlobalWordRepository struct{}

func NewGormGlobalWordRepository() GlobalWordRepository {
	return &gormGlobalWordRepository{}
}

func (r *gormGlobalWordRepository) Create(ctx context.Context, tx *gorm.DB, word *model.GlobalWord) error {
	if word.ID == uuid.Nil {
		word.ID = uuid.New()
	}
	if err := tx.WithContext(ctx).Create(word).Error; err != nil {
		if isUniqueViolation(err) {
			return model.ErrConflict
		}
		middleware.GetLogger(ctx).Error("Error creating global word in DB", "error", err, "word", word.Word)
		return fmt.Errorf("gormGlobalWordRepository.Create: %w", err)
	}
	return nil
}

func (r *gormGlobalWordRepository) FindByWord(ctx context.Context, db *gorm.DB, word string) (*model.GlobalWord, error) {
	var gw model.GlobalWord
	if err := db.WithContext(ctx).Where("word = ?", word).First(&gw).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormGlobalWordRepository.FindByWord: %w", err)
	}
	return &gw, nil
}

func (r *gormGlobalWordRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.GlobalWord, error) {
	var gw model.GlobalWord
	if err := db.WithContext(ctx).Where("id = ?", id).First(&gw).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormGlobalWordRepository.FindByID: %w", err)
	}
	return &gw, nil
}

func (r *gormGlobalWordRepository) FindByIDs(ctx context.Context, db *gorm.DB, ids []uuid.UUID) ([]*model.GlobalWord, error) {
	words := []*model.GlobalWord{}
	if len(ids) == 0 {
		return words, nil
	}
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&words).Error; err != nil {
		return nil, fmt.Errorf("gormGlobalWordRepository.FindByIDs: %w", err)
	}
	return words, nil
}

// ListOrdered は単語のアルファベット順に最大 limit 件を返します
func (r *gormGlobalWordRepository) ListOrdered(ctx context.Context, db *gorm.DB, limit int) ([]*model.GlobalWord, error) {
	words := []*model.GlobalWord{}
	if err := db.WithContext(ctx).Order("word ASC").Limit(limit).Find(&words).Error; err != nil {
		return nil, fmt.Errorf("gormGlobalWordRepository.ListOrdered: %w", err)
	}
	return words, nil
}

func (r *gormGlobalWordRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&model.GlobalWord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("gormGlobalWordRepository.Count: %w", err)
	}
	return count, nil
}

func (r *gormGlobalWordRepository) FindMissingAudio(ctx context.Context, db *gorm.DB, limit int) ([]*model.GlobalWord, error) {
	words := []*model.GlobalWord{}
	err := db.WithContext(ctx).
		Where("audio_url IS NULL OR audio_url = ''").
		Order("word ASC").
		Limit(limit).
		Find(&words).Error
	if err != nil {
		return nil, fmt.Errorf("gormGlobalWordRepository.FindMissingAudio: %w", err)
	}
	return words, nil
}

// FindExistingWords は与えられた単語のうち既に登録済みのものを返します
func (r *gormGlobalWordRepository) FindExistingWords(ctx context.Context, db *gorm.DB, words []string) ([]string, error) {
	existing := []string{}
	if len(words) == 0 {
		return existing, nil
	}
	// IN 句が大きくなりすぎないよう分割する
	const chunk = 1000
	for start := 0; start < len(words); start += chunk {
		end := min(start+chunk, len(words))
		var part []string
		if err := db.WithContext(ctx).Model(&model.GlobalWord{}).Where("word IN ?", words[start:end]).Pluck("word", &part).Error; err != nil {
			return nil, fmt.Errorf("gormGlobalWordRepository.FindExistingWords: %w", err)
		}
		existing = append(existing, part...)
	}
	return existing, nil
}

// InsertIgnoreConflicts は ON CONFLICT (word) DO NOTHING で一括登録し、挿入件数を返します
func (r *gormGlobalWordRepository) InsertIgnoreConflicts(ctx context.Context, tx *gorm.DB, words []*model.GlobalWord) (int64, error) {
	if len(words) == 0 {
		return 0, nil
	}
	for _, w := range words {
		if w.ID == uuid.Nil {
			w.ID = uuid.New()
		}
	}
	result := tx.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "word"}}, DoNothing: true}).
		Create(&words)
	if result.Error != nil {
		return 0, fmt.Errorf("gormGlobalWordRepository.InsertIgnoreConflicts: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *gormGlobalWordRepository) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.GlobalWord{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error updating global word in DB", "error", result.Error, "id", id.String())
		return fmt.Errorf("gormGlobalWordRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
