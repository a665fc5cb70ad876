package repository

import (
	"context"
	"testing"
	"time"

	"go_5_lexicard/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_gormWordRepository_FindByGlobalIDAndLegacy(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	globals := NewGormGlobalWordRepository()
	repo := NewGormWordRepository()
	tc := newTenant()

	gw := &model.GlobalWord{Word: "apple"}
	require.NoError(t, globals.Create(ctx, db, gw))

	linked := &model.TenantWord{Word: "apple", Translation: "maçã", OrganizationID: tc.OrganizationID, CreatedBy: tc.UserID, WordGlobalID: &gw.ID}
	require.NoError(t, repo.Create(ctx, db, linked))
	legacy := &model.TenantWord{Word: "pear", Translation: "pera", OrganizationID: tc.OrganizationID, CreatedBy: tc.UserID}
	require.NoError(t, repo.Create(ctx, db, legacy))

	found, err := repo.FindByGlobalID(ctx, db, tc.OrganizationID, gw.ID)
	require.NoError(t, err)
	assert.Equal(t, linked.ID, found.ID)

	_, err = repo.FindByGlobalID(ctx, db, uuid.New(), gw.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	found, err = repo.FindLegacyByWord(ctx, db, tc.OrganizationID, "pear")
	require.NoError(t, err)
	assert.Equal(t, legacy.ID, found.ID)

	_, err = repo.FindLegacyByWord(ctx, db, tc.OrganizationID, "apple")
	assert.ErrorIs(t, err, model.ErrNotFound, "グローバルに紐付いた行はレガシー扱いしない")

	dup := &model.TenantWord{Word: "apple", Translation: "maçã", OrganizationID: tc.OrganizationID, WordGlobalID: &gw.ID}
	assert.ErrorIs(t, repo.Create(ctx, db, dup), model.ErrConflict)
}

func Test_gormWordRepository_FindByOrganizationAndSearch(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormWordRepository()
	tc := newTenant()
	other := newTenant()

	base := time.Now().Add(-time.Hour)
	entries := []struct {
		word, translation string
		org               uuid.UUID
	}{
		{"apple", "maçã", tc.OrganizationID},
		{"pineapple", "abacaxi", tc.OrganizationID},
		{"house", "casa", tc.OrganizationID},
		{"apple", "maçã", other.OrganizationID},
	}
	for i, e := range entries {
		w := &model.TenantWord{Word: e.word, Translation: e.translation, OrganizationID: e.org, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, repo.Create(ctx, db, w))
	}

	words, err := repo.FindByOrganization(ctx, db, tc.OrganizationID)
	require.NoError(t, err)
	require.Len(t, words, 3)
	assert.Equal(t, "house", words[0].Word, "新しい順")

	tests := []struct {
		name      string
		query     string
		wantWords []string
	}{
		{name: "正常系: 単語の部分一致", query: "APPLE", wantWords: []string{"apple", "pineapple"}},
		{name: "正常系: 翻訳の部分一致", query: "cas", wantWords: []string{"house"}},
		{name: "正常系: ワイルドカード文字はそのまま扱う", query: "%", wantWords: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Search(ctx, db, tc.OrganizationID, tt.query, 10)
			require.NoError(t, err)
			gotWords := []string{}
			for _, w := range got {
				assert.Equal(t, tc.OrganizationID, w.OrganizationID)
				gotWords = append(gotWords, w.Word)
			}
			assert.Equal(t, tt.wantWords, gotWords)
		})
	}
}

func Test_gormWordRepository_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormWordRepository()
	tc := newTenant()

	w := &model.TenantWord{Word: "apple", Translation: "maçã", OrganizationID: tc.OrganizationID}
	require.NoError(t, repo.Create(ctx, db, w))

	assert.ErrorIs(t, repo.Update(ctx, db, uuid.New(), w.ID, map[string]interface{}{"translation": "x"}), model.ErrNotFound, "他組織からは更新できない")
	require.NoError(t, repo.Update(ctx, db, tc.OrganizationID, w.ID, map[string]interface{}{"translation": "a maçã"}))

	found, err := repo.FindByID(ctx, db, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "a maçã", found.Translation)

	ids, err := repo.ListIDs(ctx, db, tc.OrganizationID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{w.ID}, ids)

	assert.ErrorIs(t, repo.Delete(ctx, db, uuid.New(), w.ID), model.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, db, tc.OrganizationID, w.ID))
	_, err = repo.FindByID(ctx, db, w.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}
