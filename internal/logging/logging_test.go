package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expected  slog.Level
		wantKnown bool
	}{
		{name: "正常系: debug", input: "debug", expected: slog.LevelDebug, wantKnown: true},
		{name: "正常系: 大文字と空白", input: " WARN ", expected: slog.LevelWarn, wantKnown: true},
		{name: "正常系: warning", input: "warning", expected: slog.LevelWarn, wantKnown: true},
		{name: "正常系: 空は info", input: "", expected: slog.LevelInfo, wantKnown: true},
		{name: "異常系: 不明な値は info", input: "verbose", expected: slog.LevelInfo, wantKnown: false},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got, known := ParseLevel(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.wantKnown, known)
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("正常系: 本番は JSON", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "info", "production")
		logger.Info("hello", slog.String("k", "v"))

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "hello", line["msg"])
		assert.Equal(t, "v", line["k"])
		assert.Contains(t, line, "source")
	})

	t.Run("正常系: dev は tint", func(t *testing.T) {
		var buf bytes.Buffer
		New(&buf, "debug", "dev").Debug("hello")
		assert.Contains(t, buf.String(), "hello")
		assert.False(t, json.Valid(buf.Bytes()))
	})

	t.Run("正常系: レベル未満は出力しない", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "error", "production")
		assert.False(t, logger.Enabled(context.Background(), slog.LevelWarn))
		logger.Info("skip")
		assert.Empty(t, buf.String())
	})

	t.Run("異常系: 不明なレベルは警告を出す", func(t *testing.T) {
		var buf bytes.Buffer
		New(&buf, "loud", "production")
		assert.Contains(t, buf.String(), "Unknown log level")
	})
}
