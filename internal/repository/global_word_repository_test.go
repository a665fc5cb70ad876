package repository

import (
	"context"
	"testing"

	"go_5_lexicard/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_gormGlobalWordRepository_Create(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormGlobalWordRepository()

	require.NoError(t, repo.Create(ctx, db, &model.GlobalWord{Word: "apple", Definition: model.StringPtr("a fruit")}))

	tests := []struct {
		name    string
		word    string
		wantErr error
	}{
		{name: "正常系: 新しい単語を登録", word: "banana", wantErr: nil},
		{name: "異常系: 同じ単語は一意制約違反", word: "apple", wantErr: model.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &model.GlobalWord{Word: tt.word}
			err := repo.Create(ctx, db, gw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, gw.ID)
		})
	}
}

func Test_gormGlobalWordRepository_FindByWord(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormGlobalWordRepository()

	gw := &model.GlobalWord{Word: "apple", Examples: []string{"An apple a day."}}
	require.NoError(t, repo.Create(ctx, db, gw))

	found, err := repo.FindByWord(ctx, db, "apple")
	require.NoError(t, err)
	assert.Equal(t, gw.ID, found.ID)
	assert.Equal(t, []string{"An apple a day."}, []string(found.Examples))

	_, err = repo.FindByWord(ctx, db, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = repo.FindByID(ctx, db, uuid.New())
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func Test_gormGlobalWordRepository_ListOrderedAndMissingAudio(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormGlobalWordRepository()

	for _, w := range []string{"cherry", "apple", "banana"} {
		gw := &model.GlobalWord{Word: w}
		if w == "banana" {
			gw.AudioURL = model.StringPtr("https://audio/banana.mp3")
		}
		require.NoError(t, repo.Create(ctx, db, gw))
	}

	words, err := repo.ListOrdered(ctx, db, 2)
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "apple", words[0].Word)
	assert.Equal(t, "banana", words[1].Word)

	missing, err := repo.FindMissingAudio(ctx, db, 10)
	require.NoError(t, err)
	require.Len(t, missing, 2)
	assert.Equal(t, "apple", missing[0].Word)
	assert.Equal(t, "cherry", missing[1].Word)

	count, err := repo.Count(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func Test_gormGlobalWordRepository_InsertIgnoreConflicts(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormGlobalWordRepository()

	require.NoError(t, repo.Create(ctx, db, &model.GlobalWord{Word: "apple"}))

	existing, err := repo.FindExistingWords(ctx, db, []string{"apple", "banana"})
	require.NoError(t, err)
	assert.Equal(t, []string{"apple"}, existing)

	inserted, err := repo.InsertIgnoreConflicts(ctx, db, []*model.GlobalWord{{Word: "apple"}, {Word: "banana"}, {Word: "cherry"}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), inserted)

	count, err := repo.Count(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func Test_gormGlobalWordRepository_Update(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormGlobalWordRepository()

	gw := &model.GlobalWord{Word: "apple"}
	require.NoError(t, repo.Create(ctx, db, gw))

	require.NoError(t, repo.Update(ctx, db, gw.ID, map[string]interface{}{"audio_url": "https://audio/apple.mp3"}))
	found, err := repo.FindByID(ctx, db, gw.ID)
	require.NoError(t, err)
	require.NotNil(t, found.AudioURL)
	assert.Equal(t, "https://audio/apple.mp3", *found.AudioURL)

	err = repo.Update(ctx, db, uuid.New(), map[string]interface{}{"audio_url": "x"})
	assert.ErrorIs(t, err, model.ErrNotFound)
}
