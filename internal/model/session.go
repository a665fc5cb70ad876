package model

import (
	"time"

	"github.com/google/uuid"
)

// FlashcardSession は1回の学習セッションの記録
type FlashcardSession struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	OrganizationID  uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	DataSessao      time.Time `gorm:"column:data_sessao;not null;index" json:"data_sessao"`
	TotalAprendidas int       `gorm:"column:total_aprendidas;not null;default:0" json:"total_aprendidas"`
	TotalRevisadas  int       `gorm:"column:total_revisadas;not null;default:0" json:"total_revisadas"`
	DuracaoSegundos int       `gorm:"column:duracao_segundos;not null;default:0" json:"duracao_segundos"`
}

func (FlashcardSession) TableName() string {
	return "flashcard_sessions"
}

// CompleteSessionRequest はセッション終了時のリクエストDTO
type CompleteSessionRequest struct {
	TotalAprendidas int `json:"total_aprendidas" validate:"min=0"`
	TotalRevisadas  int `json:"total_revisadas" validate:"min=0"`
	DuracaoSegundos int `json:"duracao_segundos" validate:"min=0"`
}

// ExerciseSession は出題セット。Completed は全単語を習得済みの状態。
type ExerciseSession struct {
	Words     []*GlobalWord `json:"words"`
	Completed bool          `json:"completed"`
}

// ExerciseSummary はホーム画面の進捗サマリー
type ExerciseSummary struct {
	TotalWords     int64 `json:"total_words"`
	CompletedWords int64 `json:"completed_words"`
	RemainingWords int64 `json:"remaining_words"`
}
