package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// GlobalWord は全組織で共有される辞書エントリです (word はシステム全体で一意)
type GlobalWord struct {
	ID         uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Word       string                      `gorm:"not null;uniqueIndex" json:"word"`
	Definition *string                     `json:"definition"`
	AudioURL   *string                     `gorm:"column:audio_url" json:"audio_url"`
	Phonetic   *string                     `json:"phonetic"`
	Examples   datatypes.JSONSlice[string] `json:"examples"`
	CEFR       *string                     `gorm:"column:cefr" json:"cefr,omitempty"`
	Frequency  *int                        `json:"frequency,omitempty"`
	CreatedAt  time.Time                   `json:"created_at"`
	UpdatedAt  time.Time                   `json:"updated_at"`
}

func (GlobalWord) TableName() string {
	return "words_global"
}

// HasDefinition / HasAudio はエンリッチ対象かどうかの判定に使います
func (g *GlobalWord) HasDefinition() bool { return !IsBlank(g.Definition) }
func (g *GlobalWord) HasAudio() bool      { return !IsBlank(g.AudioURL) }

// TenantWord は組織ごとのカスタマイズ (翻訳、定義・音声の上書き) です
type TenantWord struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Word           string     `gorm:"not null;index" json:"word"`
	Translation    string     `gorm:"not null" json:"translation"`
	Definition     *string    `json:"definition"`
	AudioURL       *string    `gorm:"column:audio_url" json:"audio_url"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:uq_words_org_global" json:"organization_id"`
	CreatedBy      uuid.UUID  `gorm:"type:uuid" json:"created_by"`
	WordGlobalID   *uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_words_org_global" json:"word_global_id"` // レガシー行は NULL
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (TenantWord) TableName() string {
	return "words"
}

// WordSource はマージ結果がどの層から組み立てられたかを示します
type WordSource string

const (
	SourceVirtual WordSource = "virtual" // グローバルのみ (書き込みなし)
	SourceOverlay WordSource = "overlay" // グローバル + 組織の上書き
	SourceLegacy  WordSource = "legacy"  // グローバルに紐付かない組織の行
)

// Word はクライアントに返すマージ済みの単語です
type Word struct {
	ID             uuid.UUID  `json:"id"`
	Word           string     `json:"word"`
	Translation    string     `json:"translation"`
	Definition     *string    `json:"definition"`
	AudioURL       *string    `json:"audio_url"`
	Phonetic       *string    `json:"phonetic"`
	Examples       []string   `json:"examples"`
	OrganizationID uuid.UUID  `json:"organization_id"`
	CreatedBy      uuid.UUID  `json:"created_by"`
	WordGlobalID   *uuid.UUID `json:"word_global_id"`
	Source         WordSource `json:"source"`
	CreatedAt      time.Time  `json:"created_at"`
}

// LookupWordRequest は単語検索 (辞書取得) のリクエストDTO
type LookupWordRequest struct {
	Word string `json:"word" validate:"required,max=100"`
}

// UpdateWordRequest は組織の単語の部分更新DTO
type UpdateWordRequest struct {
	Translation *string `json:"translation,omitempty" validate:"omitempty,min=1,max=255"`
	Definition  *string `json:"definition,omitempty" validate:"omitempty,max=2000"`
	AudioURL    *string `json:"audio_url,omitempty" validate:"omitempty,url"`
}

// EnrichmentReport はエンリッチ/バックフィル処理の集計です
type EnrichmentReport struct {
	Checked int `json:"checked"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// SeedEntry はシード投入用の1単語
type SeedEntry struct {
	Word       string `json:"word"`
	Definition string `json:"definition,omitempty"`
	CEFR       string `json:"cefr,omitempty"`
	Frequency  int    `json:"frequency,omitempty"`
}

// SeedReport はシード投入の集計
type SeedReport struct {
	Received int `json:"received"`
	Unique   int `json:"unique"`
	Existing int `json:"existing"`
	Inserted int `json:"inserted"`
	Batches  int `json:"batches"`
}

// NormalizeWord は検索・保存キーとして使う形 (前後の空白除去 + 小文字) にします
func NormalizeWord(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

func IsBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// StringPtr は空文字なら nil を返します
func StringPtr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
