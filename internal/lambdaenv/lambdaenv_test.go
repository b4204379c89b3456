package lambdaenv

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/jacentio/shelf/store"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"DEBUG", slog.LevelDebug},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")

	var buf bytes.Buffer
	logger := NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown")

	if bytes.Contains(buf.Bytes(), []byte("hidden")) {
		t.Error("info record should be filtered at warn level")
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"msg":"shown"`)) {
		t.Errorf("expected JSON warn record, got %s", buf.String())
	}
}

func TestStoreConfig(t *testing.T) {
	t.Setenv(EnvTableName, "")
	if got := StoreConfig().TableName; got != store.DefaultTableName {
		t.Errorf("TableName = %q, want %q", got, store.DefaultTableName)
	}

	t.Setenv(EnvTableName, "books-dev")
	if got := StoreConfig().TableName; got != "books-dev" {
		t.Errorf("TableName = %q, want books-dev", got)
	}
}

func TestWithEndpoint(t *testing.T) {
	var opts dynamodb.Options
	WithEndpoint("")(&opts)
	if opts.BaseEndpoint != nil {
		t.Errorf("expected no endpoint override, got %q", *opts.BaseEndpoint)
	}

	WithEndpoint("http://localhost:8000")(&opts)
	if opts.BaseEndpoint == nil || *opts.BaseEndpoint != "http://localhost:8000" {
		t.Errorf("expected endpoint override, got %v", opts.BaseEndpoint)
	}
}

func TestTableHealth_ReturnsProbe(t *testing.T) {
	probe := TableHealth(dynamodb.New(dynamodb.Options{Region: "us-east-1"}), "booksTable")
	if probe == nil {
		t.Fatal("expected a probe")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := probe(ctx); err == nil {
		t.Error("expected error from a cancelled probe")
	}
}
