package service

import (
	"context"
	"log/slog"

	"go_5_lexicard/internal/config"
	"go_5_lexicard/internal/middleware"
)

// Mailer はアカウント有効化・パスワード再設定メールの送信先です
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer は送信せずにログへ出力します (開発用)
type LogMailer struct{}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	middleware.GetLogger(ctx).Info("--- Sending Email (LogMailer) ---", "to", to, "subject", subject, "body", body)
	return nil
}

// NewMailer は mailer.type に応じた実装を返します。SES の初期化に失敗した場合は LogMailer に戻します。
func NewMailer(cfg *config.Config) Mailer {
	logger := slog.Default()
	switch cfg.Mailer.Type {
	case "ses":
		logger.Info("Initializing SES mailer...", "region", cfg.SES.Region)
		m, err := NewSESMailer(context.Background(), &cfg.SES)
		if err != nil {
			logger.Error("Failed to initialize SES mailer, falling back to LogMailer", "error", err)
			return &LogMailer{}
		}
		return m
	case "log", "":
		logger.Info("Initializing Log mailer...")
		return &LogMailer{}
	default:
		logger.Warn("Unknown mailer type, defaulting to LogMailer", "type", cfg.Mailer.Type)
		return &LogMailer{}
	}
}
