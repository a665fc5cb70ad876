package model

import (
	"math"
)

// CEFRBand は [Lower, Upper) の学習語数に対応するレベル
type CEFRBand struct {
	Lower int64 // 含む
	Upper int64 // 含まない
	Code  string
	Label string
}

// CEFRBands は下限の昇順。先頭から順に判定します。
var CEFRBands = []CEFRBand{
	{Lower: 0, Upper: 50, Code: "A1", Label: "A1 - Beginner"},
	{Lower: 50, Upper: 250, Code: "A2", Label: "A2 - Elementary"},
	{Lower: 250, Upper: 1000, Code: "B1", Label: "B1 - Intermediate"},
	{Lower: 1000, Upper: 3000, Code: "B2", Label: "B2 - Upper-Intermediate"},
	{Lower: 3000, Upper: 8000, Code: "C1", Label: "C1 - Advanced"},
	{Lower: 8000, Upper: math.MaxInt64, Code: "C2", Label: "C2 - Mastery"},
}

// LevelFor は学習語数が属するバンドを返します。負数は先頭バンド扱い。
func LevelFor(totalWords int64) CEFRBand {
	for _, b := range CEFRBands {
		if totalWords >= b.Lower && totalWords < b.Upper {
			return b
		}
	}
	return CEFRBands[0]
}

// ComputeStats は学習済み数 (acertos > 0) と習得済み数 (acertos >= 3) から統計を作ります。
// 毎回ゼロから計算し、キャッシュしません。
func ComputeStats(learned, mastered int64) ProgressStats {
	band := LevelFor(learned)
	rate := 0
	if learned > 0 {
		rate = int(math.Round(float64(mastered) / float64(learned) * 100))
	}
	return ProgressStats{
		TotalWords:    learned,
		MasteredWords: mastered,
		Level:         band.Code,
		LevelLabel:    band.Label,
		SuccessRate:   rate,
	}
}
