package model

import (
	"time"

	"github.com/google/uuid"
)

// MasteryThreshold は「習得済み」とみなす正解数
const MasteryThreshold = 3

// ProgressRecord は (ユーザー, 単語, 組織) ごとの学習状況です
type ProgressRecord struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_progress_user_word_org" json:"user_id"`
	WordID           uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_progress_user_word_org" json:"word_id"`
	OrganizationID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_progress_user_word_org;index" json:"organization_id"`
	Acertos          int        `gorm:"column:acertos;not null;default:0" json:"acertos"`
	DataUltimoAcerto *time.Time `gorm:"column:data_ultimo_acerto" json:"data_ultimo_acerto"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (ProgressRecord) TableName() string {
	return "user_progress"
}

func (p *ProgressRecord) IsMastered() bool {
	return p.Acertos >= MasteryThreshold
}

// ProgressStats は集計値と、そこから導出した CEFR レベル
type ProgressStats struct {
	TotalWords    int64  `json:"total_words"`    // acertos > 0
	MasteredWords int64  `json:"mastered_words"` // acertos >= 3
	Level         string `json:"level"`          // "A1" など
	LevelLabel    string `json:"level_label"`    // "A1 - Beginner" など
	SuccessRate   int    `json:"success_rate"`   // 0-100
}

// AnswerResult は回答記録の結果
type AnswerResult struct {
	Progress   *ProgressRecord `json:"progress"`
	IsMastered bool            `json:"is_mastered"`
	Message    string          `json:"message"`
	Stats      ProgressStats   `json:"stats"`
}

// Dashboard はホーム画面用の集計
type Dashboard struct {
	TodayCount     int64               `json:"today_count"`
	WeekCount      int64               `json:"week_count"`
	RecentSessions []*FlashcardSession `json:"recent_sessions"`
	Stats          ProgressStats       `json:"stats"`
}
