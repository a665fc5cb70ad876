package service

import (
	"context"
	"time"

	"go_5_lexicard/internal/config"
	"go_5_lexicard/internal/middleware"
	"go_5_lexicard/internal/model"
	"go_5_lexicard/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExerciseService は未習得の単語から出題セットを作り、学習セッションを記録します
type ExerciseService interface {
	SelectExercise(ctx context.Context, tc model.TenantContext) (*model.ExerciseSession, error)
	GetSummary(ctx context.Context, tc model.TenantContext) (*model.ExerciseSummary, error)
	CompleteSession(ctx context.Context, tc model.TenantContext, req *model.CompleteSessionRequest) (*model.FlashcardSession, error)
}

type exerciseService struct {
	db          *gorm.DB
	globalRepo  repository.GlobalWordRepository
	progRepo    repository.ProgressRepository
	sessionRepo repository.SessionRepository
	cfg         *config.Config
	now         func() time.Time
}

func NewExerciseService(db *gorm.DB, globalRepo repository.GlobalWordRepository, progRepo repository.ProgressRepository, sessionRepo repository.SessionRepository, cfg *config.Config) ExerciseService {
	return &exerciseService{
		db:          db,
		globalRepo:  globalRepo,
		progRepo:    progRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
		now:         time.Now,
	}
}

// SelectExercise は単語順の先頭 pool 件から習得済みを除き、最大 limit 件を返します。
// 残りがなければエラーではなく Completed=true を返します。
func (s *exerciseService) SelectExercise(ctx context.Context, tc model.TenantContext) (*model.ExerciseSession, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	logger := middleware.GetLogger(ctx).With("organization_id", tc.OrganizationID.String(), "user_id", tc.UserID.String())

	mastered, err := s.progRepo.FindMasteredWordIDs(ctx, s.db, tc)
	if err != nil {
		logger.Error("Failed to load mastered words", "error", err)
		return nil, wrapError(err, model.CodeExercise, "Erro ao carregar exercício.")
	}
	done := make(map[uuid.UUID]struct{}, len(mastered))
	for _, id := range mastered {
		done[id] = struct{}{}
	}

	pool, err := s.globalRepo.ListOrdered(ctx, s.db, s.cfg.App.ExercisePoolSize)
	if err != nil {
		logger.Error("Failed to load word pool", "error", err)
		return nil, wrapError(err, model.CodeExercise, "Erro ao carregar exercício.")
	}

	limit := s.cfg.App.ExerciseLimit
	words := make([]*model.GlobalWord, 0, limit)
	for _, w := range pool {
		if len(words) >= limit {
			break
		}
		if _, ok := done[w.ID]; ok {
			continue
		}
		words = append(words, w)
	}

	if len(words) == 0 {
		logger.Info("All words completed")
		return &model.ExerciseSession{Words: words, Completed: true}, nil
	}
	logger.Debug("Exercise selected", "words", len(words), "mastered", len(mastered))
	return &model.ExerciseSession{Words: words}, nil
}

func (s *exerciseService) GetSummary(ctx context.Context, tc model.TenantContext) (*model.ExerciseSummary, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	total, err := s.globalRepo.Count(ctx, s.db)
	if err != nil {
		return nil, wrapError(err, model.CodeExercise, "Erro ao carregar resumo.")
	}
	completed, err := s.progRepo.CountMastered(ctx, s.db, tc)
	if err != nil {
		return nil, wrapError(err, model.CodeExercise, "Erro ao carregar resumo.")
	}
	return &model.ExerciseSummary{
		TotalWords:     total,
		CompletedWords: completed,
		RemainingWords: max(total-completed, 0),
	}, nil
}

func (s *exerciseService) CompleteSession(ctx context.Context, tc model.TenantContext, req *model.CompleteSessionRequest) (*model.FlashcardSession, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	session := &model.FlashcardSession{
		ID:              uuid.New(),
		UserID:          tc.UserID,
		OrganizationID:  tc.OrganizationID,
		DataSessao:      s.now(),
		TotalAprendidas: req.TotalAprendidas,
		TotalRevisadas:  req.TotalRevisadas,
		DuracaoSegundos: req.DuracaoSegundos,
	}
	if err := s.sessionRepo.Create(ctx, s.db, session); err != nil {
		return nil, wrapError(err, model.CodeExercise, "Erro ao salvar sessão.")
	}
	middleware.GetLogger(ctx).Info("Flashcard session completed",
		"session_id", session.ID.String(),
		"total_revisadas", session.TotalRevisadas,
	)
	return session, nil
}
