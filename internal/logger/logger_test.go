package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CustomWriter(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{
		Writer: &buf,
		Format: formatJSON,
		Level:  slog.LevelInfo,
	})

	log.Info("test message")
	assert.Contains(t, buf.String(), "test message")
}

func TestNew_FormatAutoDetection(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		wantJSON    bool
	}{
		{"production uses json", "production", true},
		{"development uses pretty", "development", false},
		{"empty environment uses pretty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(Config{
				Writer:      &buf,
				Environment: tt.environment,
				Level:       slog.LevelInfo,
			})

			log.Info("probe", "key", "value")
			out := buf.String()
			if tt.wantJSON {
				assert.True(t, strings.HasPrefix(out, "{"), "expected JSON output, got %q", out)
			} else {
				assert.Contains(t, out, colorBold, "expected colorized pretty output, got %q", out)
			}
		})
	}
}

func TestNew_ExplicitFormatBeatsEnvironment(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{
		Writer:      &buf,
		Environment: "production",
		Format:      formatPretty,
		Level:       slog.LevelInfo,
	})

	log.Info("probe")
	assert.False(t, strings.HasPrefix(buf.String(), "{"))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestPrettyHandler_Enabled(t *testing.T) {
	level := slog.LevelWarn
	h := NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: level})

	ctx := context.Background()
	assert.False(t, h.Enabled(ctx, slog.LevelDebug))
	assert.False(t, h.Enabled(ctx, slog.LevelInfo))
	assert.True(t, h.Enabled(ctx, slog.LevelWarn))
	assert.True(t, h.Enabled(ctx, slog.LevelError))
}

func TestPrettyHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, nil)

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "hello world", 0)
	r.AddAttrs(slog.String("book", "dune"))

	err := h.Handle(context.Background(), r)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "INF")
	assert.Contains(t, out, "hello world")
	assert.Contains(t, out, "book=dune")
}

func TestPrettyHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, nil).WithAttrs([]slog.Attr{
		slog.String("component", "toggle"),
	})

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "msg", 0)
	require.NoError(t, h.Handle(context.Background(), r))

	assert.Contains(t, buf.String(), "component=toggle")
}

func TestPrettyHandler_WithGroup(t *testing.T) {
	h := NewPrettyHandler(&bytes.Buffer{}, nil)
	assert.Same(t, h, h.WithGroup(""))
	assert.NotSame(t, h, h.WithGroup("catalog"))
}

func TestNewPrettyHandler_NilOptions(t *testing.T) {
	h := NewPrettyHandler(&bytes.Buffer{}, nil)
	require.NotNil(t, h)
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
}

func TestFormatLevel(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelDebug, "DBG"},
		{slog.LevelInfo, "INF"},
		{slog.LevelWarn, "WRN"},
		{slog.LevelError, "ERR"},
	}

	for _, tt := range tests {
		got, _ := formatLevel(tt.level)
		assert.Equal(t, tt.want, got)
	}
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-01T12:00:00Z", formatValue(slog.TimeValue(ts)))
	assert.Equal(t, "1.5s", formatValue(slog.DurationValue(1500*time.Millisecond)))
	assert.Equal(t, "plain", formatValue(slog.StringValue("plain")))
	assert.Equal(t, "42", formatValue(slog.IntValue(42)))
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{
		Writer: &buf,
		Format: formatJSON,
		Level:  slog.LevelWarn,
	})

	log.Debug("dropped debug")
	log.Info("dropped info")
	log.Warn("kept warn")
	log.Error("kept error")

	out := buf.String()
	assert.NotContains(t, out, "dropped debug")
	assert.NotContains(t, out, "dropped info")
	assert.Contains(t, out, "kept warn")
	assert.Contains(t, out, "kept error")
}

func TestNew_AddSourceShortensPath(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{
		Writer:    &buf,
		Format:    formatJSON,
		Level:     slog.LevelInfo,
		AddSource: true,
	})

	log.Info("with source")
	out := buf.String()
	assert.Contains(t, out, "logger_test.go")
	assert.NotContains(t, out, "/internal/logger/")
}
