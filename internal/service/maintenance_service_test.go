package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go_5_lexicard/internal/cache"
	"go_5_lexicard/internal/dictionary"
	dictmocks "go_5_lexicard/internal/dictionary/mocks"
	"go_5_lexicard/internal/model"
	"go_5_lexicard/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func Test_maintenanceService_SeedWords(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	globals := repository.NewGormGlobalWordRepository()
	require.NoError(t, globals.Create(ctx, db, &model.GlobalWord{Word: "apple"}))

	svc := NewMaintenanceService(db, globals, nil, nil, testConfig())

	entries := []model.SeedEntry{
		{Word: "Apple"},
		{Word: "banana", Definition: "A yellow fruit.", CEFR: "A1", Frequency: 120},
		{Word: " BANANA "},
		{Word: "cherry"},
		{Word: "  "},
		{Word: "date"},
		{Word: "elderberry"},
	}
	report, err := svc.SeedWords(ctx, entries)
	require.NoError(t, err)
	assert.Equal(t, &model.SeedReport{Received: 7, Unique: 5, Existing: 1, Inserted: 4, Batches: 2}, report)

	n, err := globals.Count(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	banana, err := globals.FindByWord(ctx, db, "banana")
	require.NoError(t, err)
	assert.Equal(t, "A yellow fruit.", *banana.Definition)
	assert.Equal(t, "A1", *banana.CEFR)
	assert.Equal(t, 120, *banana.Frequency)

	// 2回目はすべて既存
	report, err = svc.SeedWords(ctx, entries)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Inserted)
	assert.Equal(t, 0, report.Batches)
	assert.Equal(t, 5, report.Existing)
}

func Test_maintenanceService_BackfillMissingAudio(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	globals := repository.NewGormGlobalWordRepository()

	withAudio := &model.GlobalWord{Word: "alpha", AudioURL: strPtr("https://a/alpha.mp3")}
	found := &model.GlobalWord{Word: "bravo"}
	noAudio := &model.GlobalWord{Word: "charlie", AudioURL: strPtr("")}
	failing := &model.GlobalWord{Word: "delta"}
	for _, g := range []*model.GlobalWord{withAudio, found, noAudio, failing} {
		require.NoError(t, globals.Create(ctx, db, g))
	}

	dict := dictmocks.NewClient(t)
	dict.On("Lookup", mock.Anything, "bravo").Return(&dictionary.Entry{Word: "bravo", AudioURL: "https://a/bravo.mp3", Phonetic: "/ˈbrɑːvəʊ/"}, nil).Once()
	dict.On("Lookup", mock.Anything, "charlie").Return(&dictionary.Entry{Word: "charlie"}, nil).Once()
	dict.On("Lookup", mock.Anything, "delta").Return(nil, errors.New("status 500")).Once()

	wordCache := cache.NewWordCache(newCacheStore(t))
	org := uuid.New()
	wordCache.Put(ctx, org, &model.Word{ID: found.ID, Word: "bravo"})
	wordCache.Put(ctx, org, &model.Word{ID: noAudio.ID, Word: "charlie"})

	svc := NewMaintenanceService(db, globals, dict, wordCache, testConfig())
	report, err := svc.BackfillMissingAudio(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, &model.EnrichmentReport{Checked: 3, Updated: 1, Skipped: 1, Failed: 1}, report)

	got, err := globals.FindByID(ctx, db, found.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://a/bravo.mp3", *got.AudioURL)
	assert.Equal(t, "/ˈbrɑːvəʊ/", *got.Phonetic)

	// 音声を更新した単語だけキャッシュから外れ、次の取得でストアから読み直される
	assert.Nil(t, wordCache.Get(ctx, org, "bravo"))
	assert.NotNil(t, wordCache.Get(ctx, org, "charlie"))
}

func Test_maintenanceService_BackfillMissingAudio_NoDictionary(t *testing.T) {
	svc := NewMaintenanceService(setupTestDB(t), repository.NewGormGlobalWordRepository(), nil, nil, testConfig())
	_, err := svc.BackfillMissingAudio(context.Background(), 10)
	assert.ErrorIs(t, err, errNoDictionary)
}

func Test_maintenanceService_BackfillMissingAudio_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	db := setupTestDB(t)
	globals := repository.NewGormGlobalWordRepository()
	require.NoError(t, globals.Create(ctx, db, &model.GlobalWord{Word: "one"}))
	require.NoError(t, globals.Create(ctx, db, &model.GlobalWord{Word: "two"}))

	dict := dictmocks.NewClient(t)
	dict.On("Lookup", mock.Anything, mock.Anything).Run(func(mock.Arguments) { cancel() }).Return(nil, nil).Once()

	cfg := testConfig()
	cfg.Enrichment.BackfillDelay = 50 * time.Millisecond
	report, err := NewMaintenanceService(db, globals, dict, nil, cfg).BackfillMissingAudio(ctx, 10)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, report.Checked)
}
