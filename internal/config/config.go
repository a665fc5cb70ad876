// internal/config/config.go
package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type JWTConfig struct {
	SecretKey      string        `mapstructure:"secret_key"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

type AppConfig struct {
	Name             string `mapstructure:"name"`
	FrontendURL      string `mapstructure:"frontend_url"`
	ExerciseLimit    int    `mapstructure:"exercise_limit"`
	ExercisePoolSize int    `mapstructure:"exercise_pool_size"`
	SearchLimit      int    `mapstructure:"search_limit"`
}

// DictionaryConfig は外部辞書APIの設定
type DictionaryConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxRetries  int           `mapstructure:"max_retries"`
	RetryDelay  time.Duration `mapstructure:"retry_delay"`
	MaxExamples int           `mapstructure:"max_examples"`
	UserAgent   string        `mapstructure:"user_agent"`
}

// CacheConfig はローカルキャッシュ (SQLiteファイル) の設定
type CacheConfig struct {
	Path string `mapstructure:"path"`
}

type EnrichmentConfig struct {
	WordDelay       time.Duration `mapstructure:"word_delay"`
	BackfillDelay   time.Duration `mapstructure:"backfill_delay"`
	BackfillLimit   int           `mapstructure:"backfill_limit"`
	ScheduleEnabled bool          `mapstructure:"schedule_enabled"`
	Interval        time.Duration `mapstructure:"interval"`
}

type SeedConfig struct {
	BatchSize  int           `mapstructure:"batch_size"`
	BatchDelay time.Duration `mapstructure:"batch_delay"`
}

type MailerConfig struct {
	Type string `mapstructure:"type"` // "log" or "ses"
}

type SESConfig struct {
	Region          string `mapstructure:"region"`
	From            string `mapstructure:"from"`
	AuthType        string `mapstructure:"auth_type"` // "static_credentials" or "iam_role"
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

type Config struct {
	Database struct {
		URL         string `mapstructure:"url"`
		AutoMigrate bool   `mapstructure:"auto_migrate"`
	} `mapstructure:"database"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	Auth struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"auth"`
	CORS       CORSConfig       `mapstructure:"cors"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	App        AppConfig        `mapstructure:"app"`
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Enrichment EnrichmentConfig `mapstructure:"enrichment"`
	Seed       SeedConfig       `mapstructure:"seed"`
	Mailer     MailerConfig     `mapstructure:"mailer"`
	SES        SESConfig        `mapstructure:"ses"`
}

var Cfg Config

func LoadConfig(path string) error {
	// .env があれば先に環境変数へ読み込む (無ければ何もしない)
	if err := godotenv.Load(); err == nil {
		log.Println(".env file loaded")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	// 例: APP_DATABASE_URL, APP_JWT_SECRET_KEY
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("auth.enabled", "AUTH_ENABLED")
	v.BindEnv("database.url", "APP_DATABASE_URL", "DATABASE_URL")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}
	applyFallbacks(&cfg)
	Cfg = cfg

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Exercise Limit: %d (pool %d)", Cfg.App.ExerciseLimit, Cfg.App.ExercisePoolSize)
	log.Printf("Auth Enabled: %t", Cfg.Auth.Enabled)

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("auth.enabled", DefaultAuthEnabled)
	v.SetDefault("jwt.access_token_ttl", DefaultAccessTokenTTL)
	v.SetDefault("app.name", AppName)
	v.SetDefault("app.exercise_limit", DefaultExerciseLimit)
	v.SetDefault("app.exercise_pool_size", DefaultExercisePoolSize)
	v.SetDefault("app.search_limit", DefaultSearchLimit)
	v.SetDefault("dictionary.base_url", DefaultDictionaryBaseURL)
	v.SetDefault("dictionary.timeout", DefaultDictionaryTimeout)
	v.SetDefault("dictionary.max_retries", DefaultDictionaryMaxRetries)
	v.SetDefault("dictionary.retry_delay", DefaultDictionaryRetryDelay)
	v.SetDefault("dictionary.max_examples", DefaultDictionaryMaxExamples)
	v.SetDefault("dictionary.user_agent", AppName+"/"+AppVersion)
	v.SetDefault("cache.path", DefaultCachePath)
	v.SetDefault("enrichment.word_delay", DefaultEnrichWordDelay)
	v.SetDefault("enrichment.backfill_delay", DefaultBackfillDelay)
	v.SetDefault("enrichment.backfill_limit", DefaultBackfillLimit)
	v.SetDefault("enrichment.interval", DefaultEnrichInterval)
	v.SetDefault("seed.batch_size", DefaultSeedBatchSize)
	v.SetDefault("seed.batch_delay", DefaultSeedBatchDelay)
	v.SetDefault("mailer.type", "log")
}

// applyFallbacks は 0 や負数など明らかに不正な値をデフォルトに戻します
func applyFallbacks(cfg *Config) {
	if cfg.Server.Port == "" {
		log.Println("Server port not set, using default ':8080'")
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.App.ExerciseLimit <= 0 {
		log.Printf("App exercise limit not set or invalid, using default '%d'", DefaultExerciseLimit)
		cfg.App.ExerciseLimit = DefaultExerciseLimit
	}
	if cfg.App.ExercisePoolSize < cfg.App.ExerciseLimit {
		cfg.App.ExercisePoolSize = DefaultExercisePoolSize
	}
	if cfg.Dictionary.MaxRetries <= 0 {
		cfg.Dictionary.MaxRetries = DefaultDictionaryMaxRetries
	}
	if cfg.Seed.BatchSize <= 0 {
		cfg.Seed.BatchSize = DefaultSeedBatchSize
	}
	if cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}
	if cfg.Auth.Enabled && cfg.JWT.SecretKey == "" {
		log.Println("Warning: auth is enabled but jwt.secret_key is empty.")
	}
}
