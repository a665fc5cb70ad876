package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_5_lexicard/internal/cache"
	"go_5_lexicard/internal/middleware"
	"go_5_lexicard/internal/model"
	"go_5_lexicard/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	msgMastered  = "🎉 Parabéns! Você dominou esta palavra!"
	msgIncorrect = "✗ Errou! Tente novamente"

	recentSessionsWindow = 30 * 24 * time.Hour
	recentSessionsLimit  = 10
)

// ProgressService は回答の記録と学習状況の集計を行います
type ProgressService interface {
	RecordCorrect(ctx context.Context, tc model.TenantContext, wordID uuid.UUID) (*model.AnswerResult, error)
	RecordIncorrect(ctx context.Context, tc model.TenantContext, wordID uuid.UUID) (*model.AnswerResult, error)
	GetProgressStats(ctx context.Context, tc model.TenantContext) (*model.ProgressStats, error)
	GetWordProgress(ctx context.Context, tc model.TenantContext, wordID uuid.UUID) (*model.ProgressRecord, error)
	GetDashboard(ctx context.Context, tc model.TenantContext) (*model.Dashboard, error)
}

type progressService struct {
	db          *gorm.DB
	progRepo    repository.ProgressRepository
	sessionRepo repository.SessionRepository
	cache       *cache.ProgressCache
	now         func() time.Time
}

func NewProgressService(db *gorm.DB, progRepo repository.ProgressRepository, sessionRepo repository.SessionRepository, progressCache *cache.ProgressCache) ProgressService {
	return &progressService{
		db:          db,
		progRepo:    progRepo,
		sessionRepo: sessionRepo,
		cache:       progressCache,
		now:         time.Now,
	}
}

func (s *progressService) RecordCorrect(ctx context.Context, tc model.TenantContext, wordID uuid.UUID) (*model.AnswerResult, error) {
	return s.record(ctx, tc, wordID, true)
}

func (s *progressService) RecordIncorrect(ctx context.Context, tc model.TenantContext, wordID uuid.UUID) (*model.AnswerResult, error) {
	return s.record(ctx, tc, wordID, false)
}

func (s *progressService) record(ctx context.Context, tc model.TenantContext, wordID uuid.UUID, correct bool) (*model.AnswerResult, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	if wordID == uuid.Nil {
		return nil, model.NewAppError(model.CodeInvalidInput, "ID de palavra inválido.", "word_id", model.ErrInvalidInput)
	}
	logger := middleware.GetLogger(ctx).With(
		"organization_id", tc.OrganizationID.String(),
		"user_id", tc.UserID.String(),
		"word_id", wordID.String(),
	)

	var (
		progress *model.ProgressRecord
		stats    model.ProgressStats
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		now := s.now()
		if correct {
			progress, err = s.progRepo.IncrementCorrect(ctx, tx, tc, wordID, now)
		} else {
			progress, err = s.progRepo.TouchIncorrect(ctx, tx, tc, wordID, now)
		}
		if err != nil {
			return err
		}
		stats, err = s.computeStats(ctx, tx, tc)
		return err
	})
	if err != nil {
		logger.Error("Failed to record answer", "correct", correct, "error", err)
		return nil, wrapError(err, model.CodeRecordProgress, "Erro ao registrar progresso.")
	}

	s.cache.Put(ctx, tc, progress)

	result := &model.AnswerResult{
		Progress:   progress,
		IsMastered: progress.IsMastered(),
		Stats:      stats,
	}
	switch {
	case !correct:
		result.Message = msgIncorrect
	case result.IsMastered:
		result.Message = msgMastered
	default:
		result.Message = fmt.Sprintf("✓ Acertou! (%d/%d)", progress.Acertos, model.MasteryThreshold)
	}
	logger.Info("Answer recorded", "correct", correct, "acertos", progress.Acertos, "mastered", result.IsMastered)
	return result, nil
}

// computeStats は毎回 DB から数え直します (キャッシュしない)
func (s *progressService) computeStats(ctx context.Context, db *gorm.DB, tc model.TenantContext) (model.ProgressStats, error) {
	learned, err := s.progRepo.CountLearned(ctx, db, tc)
	if err != nil {
		return model.ProgressStats{}, err
	}
	mastered, err := s.progRepo.CountMastered(ctx, db, tc)
	if err != nil {
		return model.ProgressStats{}, err
	}
	return model.ComputeStats(learned, mastered), nil
}

func (s *progressService) GetProgressStats(ctx context.Context, tc model.TenantContext) (*model.ProgressStats, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	stats, err := s.computeStats(ctx, s.db, tc)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to compute progress stats", "error", err)
		return nil, wrapError(err, model.CodeFetchProgress, "Erro ao buscar progresso.")
	}
	return &stats, nil
}

// GetWordProgress はストアの値を返します。キャッシュはストアが読めないときの代替にだけ使います。
// まだ回答していない単語は acertos=0 の空レコードを返します。
func (s *progressService) GetWordProgress(ctx context.Context, tc model.TenantContext, wordID uuid.UUID) (*model.ProgressRecord, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	record, err := s.progRepo.FindOne(ctx, s.db, tc, wordID)
	if errors.Is(err, model.ErrNotFound) {
		return &model.ProgressRecord{UserID: tc.UserID, WordID: wordID, OrganizationID: tc.OrganizationID}, nil
	}
	if err != nil {
		logger := middleware.GetLogger(ctx)
		if cached := s.cache.Get(ctx, tc, wordID); cached != nil {
			logger.Warn("Progress store unavailable, serving cached progress", "word_id", wordID.String(), "error", err)
			return cached, nil
		}
		logger.Error("Failed to fetch word progress", "word_id", wordID.String(), "error", err)
		return nil, wrapError(err, model.CodeFetchProgress, "Erro ao buscar progresso.")
	}
	s.cache.Put(ctx, tc, record)
	return record, nil
}

// GetDashboard は独立した集計を並行に取得してまとめます
func (s *progressService) GetDashboard(ctx context.Context, tc model.TenantContext) (*model.Dashboard, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := now.AddDate(0, 0, -7)

	dashboard := &model.Dashboard{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.progRepo.CountCorrectSince(gctx, s.db, tc, midnight)
		dashboard.TodayCount = n
		return err
	})
	g.Go(func() error {
		n, err := s.progRepo.CountCorrectSince(gctx, s.db, tc, weekAgo)
		dashboard.WeekCount = n
		return err
	})
	g.Go(func() error {
		sessions, err := s.sessionRepo.FindRecent(gctx, s.db, tc, now.Add(-recentSessionsWindow), recentSessionsLimit)
		dashboard.RecentSessions = sessions
		return err
	})
	g.Go(func() error {
		stats, err := s.computeStats(gctx, s.db, tc)
		dashboard.Stats = stats
		return err
	})
	if err := g.Wait(); err != nil {
		middleware.GetLogger(ctx).Error("Failed to build dashboard", "error", err)
		return nil, wrapError(err, model.CodeFetchProgress, "Erro ao carregar o painel.")
	}
	return dashboard, nil
}
