package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"go_5_lexicard/internal/middleware"
	"go_5_lexicard/internal/model"

	"github.com/google/uuid"
)

// WordCache は組織ごとに「正規化した単語 → マージ済み Word」のマップを保持します。
// 失敗はログに出すだけで呼び出し元には返しません。
type WordCache struct {
	store Store
	mu    sync.Mutex
}

func NewWordCache(store Store) *WordCache {
	return &WordCache{store: store}
}

const wordsKeyPrefix = "words_cache_"

func wordsKey(orgID uuid.UUID) string {
	return wordsKeyPrefix + orgID.String()
}

// load は壊れたスナップショットを空として扱います
func (c *WordCache) load(ctx context.Context, orgID uuid.UUID) map[string]*model.Word {
	words := map[string]*model.Word{}
	raw, ok, err := c.store.Get(ctx, wordsKey(orgID))
	if err != nil {
		middleware.GetLogger(ctx).Warn("Failed to read word cache", "organization_id", orgID.String(), "error", err)
		return words
	}
	if !ok {
		return words
	}
	if err := json.Unmarshal(raw, &words); err != nil {
		middleware.GetLogger(ctx).Warn("Discarding corrupted word cache", "organization_id", orgID.String(), "error", err)
		return map[string]*model.Word{}
	}
	return words
}

func (c *WordCache) save(ctx context.Context, orgID uuid.UUID, words map[string]*model.Word) {
	raw, err := json.Marshal(words)
	if err != nil {
		middleware.GetLogger(ctx).Warn("Failed to encode word cache", "organization_id", orgID.String(), "error", err)
		return
	}
	if err := c.store.Set(ctx, wordsKey(orgID), raw); err != nil {
		middleware.GetLogger(ctx).Warn("Failed to write word cache", "organization_id", orgID.String(), "error", err)
	}
}

// Get は正規化した単語で検索します
func (c *WordCache) Get(ctx context.Context, orgID uuid.UUID, word string) *model.Word {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx, orgID)[model.NormalizeWord(word)]
}

// Put は同じIDの古いエントリを取り除いてから保存します
func (c *WordCache) Put(ctx context.Context, orgID uuid.UUID, w *model.Word) {
	if w == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	words := c.load(ctx, orgID)
	for key, existing := range words {
		if existing.ID == w.ID {
			delete(words, key)
		}
	}
	words[model.NormalizeWord(w.Word)] = w
	c.save(ctx, orgID, words)
}

func (c *WordCache) Remove(ctx context.Context, orgID uuid.UUID, id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	words := c.load(ctx, orgID)
	removed := false
	for key, w := range words {
		if w.ID == id {
			delete(words, key)
			removed = true
		}
	}
	if removed {
		c.save(ctx, orgID, words)
	}
}

// Prune は keepIDs に含まれないエントリを削除し、削除件数を返します。
// 仮想エントリ (グローバルのみ) は WordGlobalID でも照合します。
func (c *WordCache) Prune(ctx context.Context, orgID uuid.UUID, keepIDs []uuid.UUID) int {
	keep := make(map[uuid.UUID]struct{}, len(keepIDs))
	for _, id := range keepIDs {
		keep[id] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	words := c.load(ctx, orgID)
	pruned := 0
	for key, w := range words {
		if _, ok := keep[w.ID]; ok {
			continue
		}
		if w.WordGlobalID != nil {
			if _, ok := keep[*w.WordGlobalID]; ok {
				continue
			}
		}
		delete(words, key)
		pruned++
	}
	if pruned > 0 {
		c.save(ctx, orgID, words)
	}
	return pruned
}

func (c *WordCache) Clear(ctx context.Context, orgID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.Delete(ctx, wordsKey(orgID)); err != nil {
		middleware.GetLogger(ctx).Warn("Failed to clear word cache", "organization_id", orgID.String(), "error", err)
	}
}

// Forget はすべての組織のスナップショットから指定した単語を取り除き、削除件数を返します。
// グローバル単語を直接更新したあとに呼びます。
func (c *WordCache) Forget(ctx context.Context, words ...string) int {
	if len(words) == 0 {
		return 0
	}
	targets := make(map[string]struct{}, len(words))
	for _, w := range words {
		targets[model.NormalizeWord(w)] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	keys, err := c.store.Keys(ctx, wordsKeyPrefix)
	if err != nil {
		middleware.GetLogger(ctx).Warn("Failed to list word caches", "error", err)
		return 0
	}
	removed := 0
	for _, key := range keys {
		orgID, err := uuid.Parse(strings.TrimPrefix(key, wordsKeyPrefix))
		if err != nil {
			continue
		}
		snapshot := c.load(ctx, orgID)
		n := 0
		for w := range targets {
			if _, ok := snapshot[w]; ok {
				delete(snapshot, w)
				n++
			}
		}
		if n > 0 {
			c.save(ctx, orgID, snapshot)
			removed += n
		}
	}
	return removed
}
