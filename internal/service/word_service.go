package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go_5_lexicard/internal/cache"
	"go_5_lexicard/internal/config"
	"go_5_lexicard/internal/dictionary"
	"go_5_lexicard/internal/middleware"
	"go_5_lexicard/internal/model"
	"go_5_lexicard/internal/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// WordService は単語の取得 (キャッシュ → ストア → 外部辞書) と組織の単語管理を行います
type WordService interface {
	FetchWord(ctx context.Context, tc model.TenantContext, word string) (*model.Word, error)
	GetOrganizationWords(ctx context.Context, tc model.TenantContext) ([]*model.Word, error)
	SearchWords(ctx context.Context, tc model.TenantContext, query string, limit int) ([]*model.Word, error)
	GetWordByID(ctx context.Context, tc model.TenantContext, wordID uuid.UUID) (*model.Word, error)
	UpdateWord(ctx context.Context, tc model.TenantContext, wordID uuid.UUID, req *model.UpdateWordRequest) (*model.Word, error)
	DeleteWord(ctx context.Context, tc model.TenantContext, wordID uuid.UUID) error
	EnrichWords(ctx context.Context, tc model.TenantContext) (*model.EnrichmentReport, error)
	SyncLocalCache(ctx context.Context, tc model.TenantContext) (int, error)
}

type wordService struct {
	db         *gorm.DB
	globalRepo repository.GlobalWordRepository
	wordRepo   repository.WordRepository
	dict       dictionary.Client
	cache      *cache.WordCache
	cfg        *config.Config
}

func NewWordService(db *gorm.DB, globalRepo repository.GlobalWordRepository, wordRepo repository.WordRepository, dict dictionary.Client, wordCache *cache.WordCache, cfg *config.Config) WordService {
	return &wordService{
		db:         db,
		globalRepo: globalRepo,
		wordRepo:   wordRepo,
		dict:       dict,
		cache:      wordCache,
		cfg:        cfg,
	}
}

func (s *wordService) FetchWord(ctx context.Context, tc model.TenantContext, word string) (*model.Word, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	normalized := model.NormalizeWord(word)
	if normalized == "" {
		return nil, model.NewAppError(model.CodeInvalidInput, "Informe uma palavra.", "word", model.ErrInvalidInput)
	}
	logger := middleware.GetLogger(ctx).With("word", normalized, "organization_id", tc.OrganizationID.String())

	// 1. ローカルキャッシュ
	if cached := s.cache.Get(ctx, tc.OrganizationID, normalized); cached != nil {
		logger.Debug("Word served from local cache")
		return cached, nil
	}

	// 2. 単語ストア
	stored, err := s.findInStore(ctx, s.db, tc, normalized)
	if err != nil {
		logger.Error("Failed to read word store", "error", err)
		return nil, wrapError(err, model.CodeFetchWord, "Erro ao buscar palavra.")
	}
	if stored != nil {
		if err := sanitizeWord(stored, tc); err != nil {
			logger.Error("Merged word belongs to another organization", "word_organization_id", stored.OrganizationID.String())
			return nil, err
		}
		s.cache.Put(ctx, tc.OrganizationID, stored)
		return stored, nil
	}

	// 3. 外部辞書
	entry, err := s.dict.Lookup(ctx, normalized)
	if err != nil {
		logger.Error("Dictionary lookup failed", "error", err)
		return nil, wrapError(err, model.CodeFetchWord, "Erro ao buscar palavra no dicionário.")
	}
	if entry == nil {
		logger.Info("Word not found in dictionary")
		return nil, model.NewAppError(model.CodeNotFound, "Palavra não encontrada.", "word", model.ErrNotFound)
	}

	saved, err := s.saveWord(ctx, tc, normalized, entry)
	if err != nil {
		logger.Error("Failed to save word", "error", err)
		return nil, wrapError(err, model.CodeSaveWord, "Erro ao salvar palavra no banco.")
	}
	logger.Info("Word fetched from dictionary and saved", "word_id", saved.ID.String())

	s.cache.Put(ctx, tc.OrganizationID, saved)
	return saved, nil
}

// findInStore はグローバル + 組織の上書き、なければレガシー行を探します。見つからなければ (nil, nil)。
func (s *wordService) findInStore(ctx context.Context, db *gorm.DB, tc model.TenantContext, word string) (*model.Word, error) {
	global, err := s.globalRepo.FindByWord(ctx, db, word)
	switch {
	case err == nil:
		tenant, err := s.wordRepo.FindByGlobalID(ctx, db, tc.OrganizationID, global.ID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		merged, _ := MergeWord(global, tenant, tc)
		return merged, nil
	case !errors.Is(err, model.ErrNotFound):
		return nil, err
	}

	legacy, err := s.wordRepo.FindLegacyByWord(ctx, db, tc.OrganizationID, word)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	merged, _ := MergeWord(nil, legacy, tc)
	return merged, nil
}

// saveWord はグローバルに登録 (既存なら再利用) し、組織の行を作成または更新します
func (s *wordService) saveWord(ctx context.Context, tc model.TenantContext, word string, entry *dictionary.Entry) (*model.Word, error) {
	var saved *model.Word

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		global := &model.GlobalWord{
			Word:       word,
			Definition: model.StringPtr(entry.Definition),
			AudioURL:   model.StringPtr(entry.AudioURL),
			Phonetic:   model.StringPtr(entry.Phonetic),
			Examples:   entry.Examples,
		}
		// 一意制約違反でトランザクション全体が中断されないよう SAVEPOINT 内で挿入する
		err := tx.Transaction(func(sp *gorm.DB) error {
			return s.globalRepo.Create(ctx, sp, global)
		})
		if errors.Is(err, model.ErrConflict) {
			global, err = s.globalRepo.FindByWord(ctx, tx, word)
		}
		if err != nil {
			return err
		}

		tenant, err := s.upsertTenantWord(ctx, tx, tc, global)
		if err != nil {
			return err
		}
		saved, _ = MergeWord(global, tenant, tc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *wordService) upsertTenantWord(ctx context.Context, tx *gorm.DB, tc model.TenantContext, global *model.GlobalWord) (*model.TenantWord, error) {
	existing, err := s.wordRepo.FindByGlobalID(ctx, tx, tc.OrganizationID, global.ID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	if existing == nil {
		tenant := &model.TenantWord{
			Word:           global.Word,
			Translation:    global.Word,
			Definition:     global.Definition,
			AudioURL:       global.AudioURL,
			OrganizationID: tc.OrganizationID,
			CreatedBy:      tc.UserID,
			WordGlobalID:   &global.ID,
		}
		err := tx.Transaction(func(sp *gorm.DB) error {
			return s.wordRepo.Create(ctx, sp, tenant)
		})
		if errors.Is(err, model.ErrConflict) {
			// 同じ組織の並行リクエストが先に作成した
			return s.wordRepo.FindByGlobalID(ctx, tx, tc.OrganizationID, global.ID)
		}
		if err != nil {
			return nil, err
		}
		return tenant, nil
	}

	updates := map[string]interface{}{}
	if !model.IsBlank(global.Definition) {
		updates["definition"] = *global.Definition
	}
	if !model.IsBlank(global.AudioURL) {
		updates["audio_url"] = *global.AudioURL
	}
	if strings.TrimSpace(existing.Translation) == "" {
		updates["translation"] = global.Word
	}
	if err := s.wordRepo.Update(ctx, tx, tc.OrganizationID, existing.ID, updates); err != nil {
		return nil, err
	}
	return s.wordRepo.FindByID(ctx, tx, existing.ID)
}

// sanitizeWord は他組織のデータが混ざっていないことを確認します
func sanitizeWord(w *model.Word, tc model.TenantContext) error {
	if w.OrganizationID != tc.OrganizationID {
		return model.NewAppError(model.CodeOrganizationMismatch, "Dados de outra organização.", "", model.ErrForbidden)
	}
	return nil
}

// mergeTenantWords は組織の行にグローバルの値を重ねます
func (s *wordService) mergeTenantWords(ctx context.Context, tc model.TenantContext, rows []*model.TenantWord) ([]*model.Word, error) {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		if r.WordGlobalID != nil {
			ids = append(ids, *r.WordGlobalID)
		}
	}
	globals, err := s.globalRepo.FindByIDs(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*model.GlobalWord, len(globals))
	for _, g := range globals {
		byID[g.ID] = g
	}

	words := make([]*model.Word, 0, len(rows))
	for _, r := range rows {
		var global *model.GlobalWord
		if r.WordGlobalID != nil {
			global = byID[*r.WordGlobalID]
		}
		merged, _ := MergeWord(global, r, tc)
		if err := sanitizeWord(merged, tc); err != nil {
			middleware.GetLogger(ctx).Warn("Skipping word from another organization", "word_id", r.ID.String())
			continue
		}
		words = append(words, merged)
	}
	return words, nil
}

func (s *wordService) GetOrganizationWords(ctx context.Context, tc model.TenantContext) ([]*model.Word, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	rows, err := s.wordRepo.FindByOrganization(ctx, s.db, tc.OrganizationID)
	if err != nil {
		return nil, wrapError(err, model.CodeFetchWords, "Erro ao buscar palavras.")
	}
	words, err := s.mergeTenantWords(ctx, tc, rows)
	if err != nil {
		return nil, wrapError(err, model.CodeFetchWords, "Erro ao buscar palavras.")
	}
	return words, nil
}

func (s *wordService) SearchWords(ctx context.Context, tc model.TenantContext, query string, limit int) ([]*model.Word, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return []*model.Word{}, nil
	}
	if limit <= 0 {
		limit = s.cfg.App.SearchLimit
		if limit <= 0 {
			limit = config.DefaultSearchLimit
		}
	}
	rows, err := s.wordRepo.Search(ctx, s.db, tc.OrganizationID, query, limit)
	if err != nil {
		return nil, wrapError(err, model.CodeSearchWords, "Erro ao pesquisar palavras.")
	}
	words, err := s.mergeTenantWords(ctx, tc, rows)
	if err != nil {
		return nil, wrapError(err, model.CodeSearchWords, "Erro ao pesquisar palavras.")
	}
	return words, nil
}

// loadOwned は行を読み込み、組織の一致を確認します (NOT_FOUND / ACCESS_DENIED)
func (s *wordService) loadOwned(ctx context.Context, db *gorm.DB, tc model.TenantContext, wordID uuid.UUID) (*model.TenantWord, error) {
	row, err := s.wordRepo.FindByID(ctx, db, wordID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError(model.CodeNotFound, "Palavra não encontrada.", "", model.ErrNotFound)
		}
		return nil, err
	}
	if err := checkOwnership(tc, row.OrganizationID); err != nil {
		middleware.GetLogger(ctx).Warn("Cross-organization word access denied",
			"word_id", wordID.String(),
			"organization_id", tc.OrganizationID.String(),
		)
		return nil, err
	}
	return row, nil
}

func (s *wordService) mergeOne(ctx context.Context, db *gorm.DB, tc model.TenantContext, row *model.TenantWord) (*model.Word, error) {
	var global *model.GlobalWord
	if row.WordGlobalID != nil {
		g, err := s.globalRepo.FindByID(ctx, db, *row.WordGlobalID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		global = g
	}
	merged, _ := MergeWord(global, row, tc)
	return merged, nil
}

func (s *wordService) GetWordByID(ctx context.Context, tc model.TenantContext, wordID uuid.UUID) (*model.Word, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	row, err := s.loadOwned(ctx, s.db, tc, wordID)
	if err != nil {
		return nil, wrapError(err, model.CodeGetWord, "Erro ao buscar palavra.")
	}
	word, err := s.mergeOne(ctx, s.db, tc, row)
	if err != nil {
		return nil, wrapError(err, model.CodeGetWord, "Erro ao buscar palavra.")
	}
	return word, nil
}

func (s *wordService) UpdateWord(ctx context.Context, tc model.TenantContext, wordID uuid.UUID, req *model.UpdateWordRequest) (*model.Word, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	var updated *model.Word

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.loadOwned(ctx, tx, tc, wordID); err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if req.Translation != nil {
			translation := strings.TrimSpace(*req.Translation)
			if translation == "" {
				return model.NewAppError(model.CodeInvalidInput, "A tradução não pode ser vazia.", "translation", model.ErrInvalidInput)
			}
			updates["translation"] = translation
		}
		if req.Definition != nil {
			updates["definition"] = model.StringPtr(*req.Definition)
		}
		if req.AudioURL != nil {
			updates["audio_url"] = model.StringPtr(*req.AudioURL)
		}
		if err := s.wordRepo.Update(ctx, tx, tc.OrganizationID, wordID, updates); err != nil {
			return err
		}

		row, err := s.wordRepo.FindByID(ctx, tx, wordID)
		if err != nil {
			return err
		}
		updated, err = s.mergeOne(ctx, tx, tc, row)
		return err
	})
	if err != nil {
		return nil, wrapError(err, model.CodeUpdateWord, "Erro ao atualizar palavra.")
	}

	s.cache.Put(ctx, tc.OrganizationID, updated)
	middleware.GetLogger(ctx).Info("Word updated", "word_id", wordID.String(), "organization_id", tc.OrganizationID.String())
	return updated, nil
}

func (s *wordService) DeleteWord(ctx context.Context, tc model.TenantContext, wordID uuid.UUID) error {
	if err := tc.Validate(); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.loadOwned(ctx, tx, tc, wordID); err != nil {
			return err
		}
		return s.wordRepo.Delete(ctx, tx, tc.OrganizationID, wordID)
	})
	if err != nil {
		return wrapError(err, model.CodeDeleteWord, "Erro ao excluir palavra.")
	}

	s.cache.Remove(ctx, tc.OrganizationID, wordID)
	middleware.GetLogger(ctx).Info("Word deleted", "word_id", wordID.String(), "organization_id", tc.OrganizationID.String())
	return nil
}

// EnrichWords は定義または音声が欠けているグローバル単語を辞書から補完します。
// 埋めるのは空の項目だけで、1件の失敗は記録して次へ進みます。
func (s *wordService) EnrichWords(ctx context.Context, tc model.TenantContext) (*model.EnrichmentReport, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	logger := middleware.GetLogger(ctx).With("organization_id", tc.OrganizationID.String())

	rows, err := s.wordRepo.FindByOrganization(ctx, s.db, tc.OrganizationID)
	if err != nil {
		return nil, wrapError(err, model.CodeFetchWords, "Erro ao buscar palavras.")
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		if r.WordGlobalID != nil {
			ids = append(ids, *r.WordGlobalID)
		}
	}
	globals, err := s.globalRepo.FindByIDs(ctx, s.db, ids)
	if err != nil {
		return nil, wrapError(err, model.CodeFetchWords, "Erro ao buscar palavras.")
	}

	report := &model.EnrichmentReport{}
	first := true
	for _, g := range globals {
		report.Checked++
		if g.HasDefinition() && g.HasAudio() {
			report.Skipped++
			continue
		}
		if !first {
			if err := sleepCtx(ctx, s.cfg.Enrichment.WordDelay); err != nil {
				return report, err
			}
		}
		first = false

		entry, err := s.dict.Lookup(ctx, g.Word)
		if err != nil {
			logger.Warn("Enrichment lookup failed", "word", g.Word, "error", err)
			report.Failed++
			continue
		}
		updates := missingFields(g, entry)
		if len(updates) == 0 {
			report.Skipped++
			continue
		}
		if err := s.globalRepo.Update(ctx, s.db, g.ID, updates); err != nil {
			logger.Warn("Enrichment update failed", "word", g.Word, "error", err)
			report.Failed++
			continue
		}
		report.Updated++
		logger.Info("Word enriched", "word", g.Word, "fields", len(updates))
	}

	if report.Updated > 0 {
		// 古いスナップショットを返さないよう作り直させる
		s.cache.Clear(ctx, tc.OrganizationID)
	}
	logger.Info("Enrichment finished", "checked", report.Checked, "updated", report.Updated, "skipped", report.Skipped, "failed", report.Failed)
	return report, nil
}

// missingFields は現在空の項目だけを辞書の値で埋める更新内容を返します
func missingFields(g *model.GlobalWord, entry *dictionary.Entry) map[string]interface{} {
	updates := map[string]interface{}{}
	if entry == nil {
		return updates
	}
	if model.IsBlank(g.Definition) && entry.Definition != "" {
		updates["definition"] = entry.Definition
	}
	if model.IsBlank(g.AudioURL) && entry.AudioURL != "" {
		updates["audio_url"] = entry.AudioURL
	}
	if model.IsBlank(g.Phonetic) && entry.Phonetic != "" {
		updates["phonetic"] = entry.Phonetic
	}
	if len(g.Examples) == 0 && len(entry.Examples) > 0 {
		updates["examples"] = datatypes.JSONSlice[string](entry.Examples)
	}
	return updates
}

func (s *wordService) SyncLocalCache(ctx context.Context, tc model.TenantContext) (int, error) {
	if err := tc.Validate(); err != nil {
		return 0, err
	}
	ids, err := s.wordRepo.ListIDs(ctx, s.db, tc.OrganizationID)
	if err != nil {
		return 0, wrapError(err, model.CodeFetchWords, "Erro ao sincronizar cache.")
	}
	pruned := s.cache.Prune(ctx, tc.OrganizationID, ids)
	middleware.GetLogger(ctx).Info("Local cache synchronized", "organization_id", tc.OrganizationID.String(), "pruned", pruned)
	return pruned, nil
}

// sleepCtx は d だけ待ちます。ctx が先に終わればそのエラーを返します。
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
