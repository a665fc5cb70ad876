package cache

import (
	"context"
	"encoding/json"
	"sync"

	"go_5_lexicard/internal/middleware"
	"go_5_lexicard/internal/model"

	"github.com/google/uuid"
)

// ProgressCache は (組織, ユーザー) ごとに単語IDをキーとした進捗を保持します
type ProgressCache struct {
	store Store
	mu    sync.Mutex
}

func NewProgressCache(store Store) *ProgressCache {
	return &ProgressCache{store: store}
}

func progressKey(tc model.TenantContext) string {
	return "progress_cache_" + tc.OrganizationID.String() + "_" + tc.UserID.String()
}

func (c *ProgressCache) load(ctx context.Context, tc model.TenantContext) map[uuid.UUID]*model.ProgressRecord {
	records := map[uuid.UUID]*model.ProgressRecord{}
	raw, ok, err := c.store.Get(ctx, progressKey(tc))
	if err != nil || !ok {
		if err != nil {
			middleware.GetLogger(ctx).Warn("Failed to read progress cache", "error", err)
		}
		return records
	}
	if err := json.Unmarshal(raw, &records); err != nil {
		middleware.GetLogger(ctx).Warn("Discarding corrupted progress cache", "error", err)
		return map[uuid.UUID]*model.ProgressRecord{}
	}
	return records
}

func (c *ProgressCache) Get(ctx context.Context, tc model.TenantContext, wordID uuid.UUID) *model.ProgressRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx, tc)[wordID]
}

func (c *ProgressCache) Put(ctx context.Context, tc model.TenantContext, record *model.ProgressRecord) {
	if record == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	records := c.load(ctx, tc)
	// 書き込み順が前後しても古い値で上書きしない
	if current, ok := records[record.WordID]; ok && isNewer(current, record) {
		return
	}
	records[record.WordID] = record
	raw, err := json.Marshal(records)
	if err != nil {
		middleware.GetLogger(ctx).Warn("Failed to encode progress cache", "error", err)
		return
	}
	if err := c.store.Set(ctx, progressKey(tc), raw); err != nil {
		middleware.GetLogger(ctx).Warn("Failed to write progress cache", "error", err)
	}
}

func isNewer(a, b *model.ProgressRecord) bool {
	if a.UpdatedAt.Equal(b.UpdatedAt) {
		return a.Acertos > b.Acertos
	}
	return a.UpdatedAt.After(b.UpdatedAt)
}
