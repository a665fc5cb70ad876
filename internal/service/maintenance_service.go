package service

import (
	"context"
	"errors"
	"fmt"

	"go_5_lexicard/internal/cache"
	"go_5_lexicard/internal/config"
	"go_5_lexicard/internal/dictionary"
	"go_5_lexicard/internal/middleware"
	"go_5_lexicard/internal/model"
	"go_5_lexicard/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaintenanceService はシード投入と音声のバックフィルを行います (CLI とスケジューラから呼ばれる)
type MaintenanceService interface {
	SeedWords(ctx context.Context, entries []model.SeedEntry) (*model.SeedReport, error)
	BackfillMissingAudio(ctx context.Context, limit int) (*model.EnrichmentReport, error)
}

type maintenanceService struct {
	db         *gorm.DB
	globalRepo repository.GlobalWordRepository
	dict       dictionary.Client
	cache      *cache.WordCache
	cfg        *config.Config
}

var errNoDictionary = errors.New("maintenanceService: dictionary client is not configured")

// NewMaintenanceService の dict と wordCache は nil でも構いません。
// シード投入はどちらも使わず、wordCache が nil なら音声の更新後にキャッシュを消しません。
func NewMaintenanceService(db *gorm.DB, globalRepo repository.GlobalWordRepository, dict dictionary.Client, wordCache *cache.WordCache, cfg *config.Config) MaintenanceService {
	return &maintenanceService{
		db:         db,
		globalRepo: globalRepo,
		dict:       dict,
		cache:      wordCache,
		cfg:        cfg,
	}
}

// SeedWords は正規化と重複排除の後、まだ無い単語だけをバッチで投入します。
// 同時に投入された単語とぶつかっても ON CONFLICT DO NOTHING で無視されます。
func (s *maintenanceService) SeedWords(ctx context.Context, entries []model.SeedEntry) (*model.SeedReport, error) {
	logger := middleware.GetLogger(ctx)
	report := &model.SeedReport{Received: len(entries)}

	seen := make(map[string]struct{}, len(entries))
	unique := make([]model.SeedEntry, 0, len(entries))
	for _, e := range entries {
		w := model.NormalizeWord(e.Word)
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		e.Word = w
		unique = append(unique, e)
	}
	report.Unique = len(unique)

	words := make([]string, len(unique))
	for i, e := range unique {
		words[i] = e.Word
	}
	existing, err := s.globalRepo.FindExistingWords(ctx, s.db, words)
	if err != nil {
		return nil, fmt.Errorf("maintenanceService.SeedWords: %w", err)
	}
	report.Existing = len(existing)
	skip := make(map[string]struct{}, len(existing))
	for _, w := range existing {
		skip[w] = struct{}{}
	}

	pending := make([]*model.GlobalWord, 0, len(unique)-len(existing))
	for _, e := range unique {
		if _, ok := skip[e.Word]; ok {
			continue
		}
		pending = append(pending, seedToGlobal(e))
	}

	batchSize := s.cfg.Seed.BatchSize
	if batchSize <= 0 {
		batchSize = config.DefaultSeedBatchSize
	}
	for start := 0; start < len(pending); start += batchSize {
		if start > 0 {
			if err := sleepCtx(ctx, s.cfg.Seed.BatchDelay); err != nil {
				return report, err
			}
		}
		end := min(start+batchSize, len(pending))
		inserted, err := s.globalRepo.InsertIgnoreConflicts(ctx, s.db, pending[start:end])
		if err != nil {
			logger.Error("Seed batch failed", "batch", report.Batches+1, "error", err)
			return report, fmt.Errorf("maintenanceService.SeedWords: %w", err)
		}
		report.Batches++
		report.Inserted += int(inserted)
		logger.Info("Seed batch inserted", "batch", report.Batches, "inserted", inserted)
	}

	logger.Info("Seed finished",
		"received", report.Received,
		"unique", report.Unique,
		"existing", report.Existing,
		"inserted", report.Inserted,
	)
	return report, nil
}

func seedToGlobal(e model.SeedEntry) *model.GlobalWord {
	g := &model.GlobalWord{
		ID:         uuid.New(),
		Word:       e.Word,
		Definition: model.StringPtr(e.Definition),
		CEFR:       model.StringPtr(e.CEFR),
	}
	if e.Frequency > 0 {
		f := e.Frequency
		g.Frequency = &f
	}
	return g
}

// BackfillMissingAudio は音声URLの無いグローバル単語を辞書で引き直します。
// 失敗した単語はログに残して飛ばします。更新した単語は全組織のローカルキャッシュから外します。
func (s *maintenanceService) BackfillMissingAudio(ctx context.Context, limit int) (report *model.EnrichmentReport, err error) {
	logger := middleware.GetLogger(ctx)
	if s.dict == nil {
		return nil, errNoDictionary
	}
	if limit <= 0 {
		limit = s.cfg.Enrichment.BackfillLimit
	}
	if limit <= 0 {
		limit = config.DefaultBackfillLimit
	}

	words, err := s.globalRepo.FindMissingAudio(ctx, s.db, limit)
	if err != nil {
		return nil, fmt.Errorf("maintenanceService.BackfillMissingAudio: %w", err)
	}
	logger.Info("Audio backfill started", "candidates", len(words))

	report = &model.EnrichmentReport{}
	var updated []string
	defer func() {
		if s.cache != nil && len(updated) > 0 {
			n := s.cache.Forget(context.WithoutCancel(ctx), updated...)
			logger.Info("Invalidated cached words after backfill", "words", len(updated), "entries", n)
		}
	}()

	for i, g := range words {
		if i > 0 {
			if err := sleepCtx(ctx, s.cfg.Enrichment.BackfillDelay); err != nil {
				return report, err
			}
		}
		report.Checked++

		entry, err := s.dict.Lookup(ctx, g.Word)
		if err != nil {
			logger.Warn("Backfill lookup failed", "word", g.Word, "error", err)
			report.Failed++
			continue
		}
		if entry == nil || entry.AudioURL == "" {
			report.Skipped++
			continue
		}

		updates := map[string]interface{}{"audio_url": entry.AudioURL}
		if model.IsBlank(g.Phonetic) && entry.Phonetic != "" {
			updates["phonetic"] = entry.Phonetic
		}
		if err := s.globalRepo.Update(ctx, s.db, g.ID, updates); err != nil {
			logger.Warn("Backfill update failed", "word", g.Word, "error", err)
			report.Failed++
			continue
		}
		report.Updated++
		updated = append(updated, g.Word)
	}

	logger.Info("Audio backfill finished", "checked", report.Checked, "updated", report.Updated, "skipped", report.Skipped, "failed", report.Failed)
	return report, nil
}
