package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"batchupload/internal/config"
	"batchupload/internal/services"
)

func TestConsoleLoggerOmitsSourceForInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message without caller", slog.Int("count", 3))

	out := buf.String()
	if strings.Contains(out, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", out)
	}
	if !strings.Contains(out, "INFO") || !strings.Contains(out, "message without caller") || !strings.Contains(out, "count=3") {
		t.Fatalf("unexpected console output %q", out)
	}
}

func TestConsoleLoggerIncludesSourceForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Debug("message with caller", slog.String("pattern", "*.mp3"))

	out := buf.String()
	if !strings.Contains(out, "logger_test.go:") {
		t.Fatalf("expected caller information in debug logs, got %q", out)
	}
	if !strings.Contains(out, "    pattern: *.mp3") {
		t.Fatalf("expected indented debug field, got %q", out)
	}
}

func TestConsoleLoggerShowsComponentAndUploadID(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := services.WithUploadID(services.WithRunID(context.Background(), "run-1"), "a9993e")
	WithContext(ctx, NewComponentLogger(logger, "batch")).Info("uploading", slog.String("path", "/m/a b.mp3"))

	out := buf.String()
	for _, fragment := range []string{"[batch]", "(a9993e)", `path="/m/a b.mp3"`} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in %q", fragment, out)
		}
	}
	if strings.Contains(out, "run-1") {
		t.Fatalf("run id should be hidden at info level: %q", out)
	}
}

func TestConsoleLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestJSONLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Warn("upload rejected", slog.Int("status", 500))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode json log: %v (%q)", err, buf.String())
	}
	if record["level"] != "warn" || record["msg"] != "upload rejected" {
		t.Fatalf("unexpected record %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key in %v", record)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestFileOutputMirrorsConsole(t *testing.T) {
	var console bytes.Buffer
	logPath := filepath.Join(t.TempDir(), "logs", "batch-upload.log")

	logger, err := New(Options{Format: "console", Level: "info", Writer: &console, FilePath: logPath})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("batch complete", slog.Int("succeeded", 2))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), `"succeeded":2`) {
		t.Fatalf("expected json record in log file, got %q", content)
	}
	if !strings.Contains(console.String(), "batch complete") {
		t.Fatalf("expected console output, got %q", console.String())
	}
}

func TestFileOutputKeepsInfoWhenConsoleIsQuiet(t *testing.T) {
	var console bytes.Buffer
	logPath := filepath.Join(t.TempDir(), "batch-upload.log")

	logger, err := New(Options{Format: "console", Level: "warn", Writer: &console, FilePath: logPath})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("upload succeeded", slog.String("trint_id", "T-1"))
	logger.Debug("upload request")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), `"trint_id":"T-1"`) {
		t.Fatalf("expected info record in log file, got %q", content)
	}
	if strings.Contains(string(content), "upload request") {
		t.Fatalf("debug record should not reach the file, got %q", content)
	}
	if console.Len() != 0 {
		t.Fatalf("expected quiet console, got %q", console.String())
	}
}

func TestCloseReleasesLogFile(t *testing.T) {
	var console bytes.Buffer
	logPath := filepath.Join(t.TempDir(), "batch-upload.log")

	logger, err := New(Options{Format: "console", Level: "info", Writer: &console, FilePath: logPath})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	derived := logger.With(slog.String("component", "batch"))
	if err := Close(derived); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	record := slog.NewRecord(time.Now(), slog.LevelInfo, "after close", 0)
	if err := logger.Handler().Handle(context.Background(), record); !errors.Is(err, os.ErrClosed) {
		t.Fatalf("expected closed file error, got %v", err)
	}
	if !strings.Contains(console.String(), "after close") {
		t.Fatalf("console should still receive records, got %q", console.String())
	}
	plain, err := New(Options{Format: "console", Writer: &console})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := Close(plain); err != nil {
		t.Fatalf("Close without a log file returned error: %v", err)
	}
	if err := Close(nil); err != nil {
		t.Fatalf("Close(nil) returned error: %v", err)
	}
}

func TestNewFromConfigDebugOverride(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "warn"

	var buf bytes.Buffer
	logger, err := NewFromConfig(&cfg, &buf, true)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("expected debug output with override, got %q", buf.String())
	}
}

func TestFanoutHandlerRespectsChildLevels(t *testing.T) {
	var infoBuf, debugBuf bytes.Buffer
	infoHandler := slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo})
	debugHandler := slog.NewJSONHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug})

	logger := slog.New(newFanoutHandler(infoHandler, debugHandler).WithAttrs([]slog.Attr{slog.String("key", "value")}))
	logger.Debug("debug only message")

	if infoBuf.Len() != 0 {
		t.Error("info handler should not receive debug messages")
	}
	if !bytes.Contains(debugBuf.Bytes(), []byte(`"key"`)) {
		t.Errorf("debug handler should receive message with attrs, got %q", debugBuf.String())
	}
}

func TestNewFanoutHandlerCollapses(t *testing.T) {
	if _, ok := newFanoutHandler(nil, nil).(NoopHandler); !ok {
		t.Error("expected NoopHandler for all nil handlers")
	}
	inner := slog.NewJSONHandler(&bytes.Buffer{}, nil)
	if h := newFanoutHandler(nil, inner); h != inner {
		t.Error("expected single non-nil handler to be returned unwrapped")
	}
}

func TestMaskSecret(t *testing.T) {
	cases := map[string]string{
		"":             "",
		"abc":          "***",
		"supersecret1": "***ret1",
	}
	for in, want := range cases {
		if got := MaskSecret(in); got != want {
			t.Errorf("MaskSecret(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	WarnWithContext(logger, "language not in supported list", "language_unlisted")

	out := buf.String()
	if !strings.Contains(out, `"event_type":"language_unlisted"`) || !strings.Contains(out, `"error_hint"`) {
		t.Fatalf("expected injected fields, got %q", out)
	}
}

func TestIsTerminalRejectsPlainWriters(t *testing.T) {
	var buf bytes.Buffer
	if IsTerminal(&buf) {
		t.Fatal("buffer reported as terminal")
	}
	file, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatalf("create file: %v", err)
	}
	defer file.Close()
	if IsTerminal(file) {
		t.Fatal("regular file reported as terminal")
	}
}
