package logger

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"polyrun/pkg/utils/contextkey"
)

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	if _, err := NewLogger(Config{Level: "loud"}); err == nil {
		t.Fatalf("expected invalid level error")
	}
}

func TestContextFieldsWrittenToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")
	l, err := NewLogger(Config{Level: "debug", Format: "json", OutputPath: path})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	ctx := context.WithValue(context.Background(), contextkey.RequestID, "req-1")
	ctx = WithLanguage(ctx, "python")
	l.WithContext(ctx).Info("executed")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	for _, want := range []string{`"request_id":"req-1"`, `"language":"python"`, `"msg":"executed"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("log line %q missing %s", line, want)
		}
	}
}

func TestGlobalHelpersWithoutInit(t *testing.T) {
	globalLogger = nil
	Info(context.Background(), "dropped")
	if err := Sync(); err != nil {
		t.Fatalf("sync without init: %v", err)
	}
}
