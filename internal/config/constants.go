// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "lexicard"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort       = ":8080"
	DefaultLogLevel         = "info"
	DefaultAuthEnabled      = true
	DefaultAccessTokenTTL   = 24 * time.Hour
	DefaultExerciseLimit    = 20
	DefaultExercisePoolSize = 200
	DefaultSearchLimit      = 10
	DefaultCachePath        = "data/local_cache.db"
)

// 外部辞書API
const (
	DefaultDictionaryBaseURL     = "https://api.dictionaryapi.dev/api/v2/entries/en"
	DefaultDictionaryTimeout     = 10 * time.Second
	DefaultDictionaryMaxRetries  = 3
	DefaultDictionaryRetryDelay  = 500 * time.Millisecond
	DefaultDictionaryMaxExamples = 5
)

// メンテナンス処理 (公開APIへの負荷を抑えるための間隔)
const (
	DefaultEnrichWordDelay = 150 * time.Millisecond
	DefaultBackfillDelay   = 120 * time.Millisecond
	DefaultBackfillLimit   = 5000
	DefaultEnrichInterval  = 6 * time.Hour
	DefaultSeedBatchSize   = 500
	DefaultSeedBatchDelay  = 100 * time.Millisecond
)
