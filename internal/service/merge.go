package service

import (
	"go_5_lexicard/internal/model"
)

// MergeKind は MergeWord がどの組み合わせから結果を作ったかを表します
type MergeKind int

const (
	MergeMiss    MergeKind = iota // どちらもない
	MergeVirtual                  // グローバルのみ。組織側には何も書き込まない
	MergeLegacy                   // 組織の行のみ (word_global_id なし)
	MergeOverlay                  // グローバル + 組織の上書き
)

func (k MergeKind) String() string {
	switch k {
	case MergeVirtual:
		return "virtual"
	case MergeLegacy:
		return "legacy"
	case MergeOverlay:
		return "overlay"
	default:
		return "miss"
	}
}

// MergeWord はグローバル辞書と組織の上書きを1件の Word にまとめます
func MergeWord(global *model.GlobalWord, tenant *model.TenantWord, tc model.TenantContext) (*model.Word, MergeKind) {
	switch {
	case global == nil && tenant == nil:
		return nil, MergeMiss

	case tenant == nil:
		gid := global.ID
		return &model.Word{
			ID:             global.ID,
			Word:           global.Word,
			Translation:    global.Word,
			Definition:     global.Definition,
			AudioURL:       global.AudioURL,
			Phonetic:       global.Phonetic,
			Examples:       examplesOf(global),
			OrganizationID: tc.OrganizationID,
			CreatedBy:      tc.UserID,
			WordGlobalID:   &gid,
			Source:         model.SourceVirtual,
			CreatedAt:      global.CreatedAt,
		}, MergeVirtual

	case global == nil:
		return &model.Word{
			ID:             tenant.ID,
			Word:           tenant.Word,
			Translation:    tenant.Translation,
			Definition:     tenant.Definition,
			AudioURL:       tenant.AudioURL,
			Examples:       []string{},
			OrganizationID: tenant.OrganizationID,
			CreatedBy:      tenant.CreatedBy,
			WordGlobalID:   tenant.WordGlobalID,
			Source:         model.SourceLegacy,
			CreatedAt:      tenant.CreatedAt,
		}, MergeLegacy

	default:
		gid := global.ID
		return &model.Word{
			ID:             tenant.ID,
			Word:           global.Word,
			Translation:    tenant.Translation,
			Definition:     preferTenant(tenant.Definition, global.Definition),
			AudioURL:       preferTenant(tenant.AudioURL, global.AudioURL),
			Phonetic:       global.Phonetic,
			Examples:       examplesOf(global),
			OrganizationID: tenant.OrganizationID,
			CreatedBy:      tenant.CreatedBy,
			WordGlobalID:   &gid,
			Source:         model.SourceOverlay,
			CreatedAt:      tenant.CreatedAt,
		}, MergeOverlay
	}
}

func preferTenant(tenantValue, globalValue *string) *string {
	if !model.IsBlank(tenantValue) {
		return tenantValue
	}
	return globalValue
}

func examplesOf(g *model.GlobalWord) []string {
	if len(g.Examples) == 0 {
		return []string{}
	}
	return append([]string(nil), g.Examples...)
}
