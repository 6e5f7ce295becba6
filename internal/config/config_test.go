package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"batchupload/internal/config"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TRINT_API_KEY_ID", "")
	t.Setenv("TRINT_API_KEY_SECRET", "")
	t.Setenv("BATCH_UPLOAD_NTFY_TOPIC", "")
	t.Chdir(t.TempDir())
	return home
}

func TestLoadDefaultConfigUsesEnvCredentials(t *testing.T) {
	home := isolate(t)
	t.Setenv("TRINT_API_KEY_ID", "env-id")
	t.Setenv("TRINT_API_KEY_SECRET", "env-secret")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	want := filepath.Join(home, ".config", "batch-upload", "config.toml")
	if resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	if cfg.Credentials.APIKeyID != "env-id" || cfg.Credentials.APIKeySecret != "env-secret" {
		t.Fatalf("expected env credentials, got %+v", cfg.Credentials)
	}
	if !cfg.HasCredentials() {
		t.Fatal("expected HasCredentials to be true")
	}
	if cfg.Upload.Server != config.Default().Upload.Server {
		t.Fatalf("unexpected server: %q", cfg.Upload.Server)
	}
	if cfg.Upload.Concurrency != 1 {
		t.Fatalf("unexpected concurrency: %d", cfg.Upload.Concurrency)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "warn" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Notifications.RequestTimeout != 10 {
		t.Fatalf("unexpected notification timeout: %d", cfg.Notifications.RequestTimeout)
	}
}

func TestLoadFileOverridesEnv(t *testing.T) {
	isolate(t)
	t.Setenv("TRINT_API_KEY_ID", "env-id")
	t.Setenv("TRINT_API_KEY_SECRET", "env-secret")

	type payload struct {
		Upload struct {
			Server      string `toml:"server"`
			Concurrency int    `toml:"concurrency"`
			Language    string `toml:"language"`
		} `toml:"upload"`
		Credentials struct {
			APIKeyID string `toml:"api_key_id"`
		} `toml:"credentials"`
		Logging struct {
			File string `toml:"file"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Upload.Server = "http://localhost:9000/upload"
	custom.Upload.Concurrency = 4
	custom.Upload.Language = "en-gb"
	custom.Credentials.APIKeyID = "file-id"
	custom.Logging.File = "~/logs/upload.log"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	configPath := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected custom config to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Credentials.APIKeyID != "file-id" {
		t.Fatalf("file value should win over env, got %q", cfg.Credentials.APIKeyID)
	}
	if cfg.Credentials.APIKeySecret != "env-secret" {
		t.Fatalf("missing secret should fall back to env, got %q", cfg.Credentials.APIKeySecret)
	}
	if cfg.Upload.Server != "http://localhost:9000/upload" || cfg.Upload.Concurrency != 4 {
		t.Fatalf("unexpected upload section: %+v", cfg.Upload)
	}
	if cfg.Upload.Language != "en-GB" {
		t.Fatalf("expected canonical language, got %q", cfg.Upload.Language)
	}
	home, _ := os.UserHomeDir()
	if cfg.Logging.File != filepath.Join(home, "logs", "upload.log") {
		t.Fatalf("expected expanded log file path, got %q", cfg.Logging.File)
	}
}

func TestLoadProjectConfigFallback(t *testing.T) {
	isolate(t)
	if err := os.WriteFile("batch-upload.toml", []byte("[upload]\nconcurrency = 3\n"), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}
	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || filepath.Base(resolved) != "batch-upload.toml" {
		t.Fatalf("expected project config, got %q exists=%v", resolved, exists)
	}
	if cfg.Upload.Concurrency != 3 {
		t.Fatalf("unexpected concurrency: %d", cfg.Upload.Concurrency)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"concurrency too high", "[upload]\nconcurrency = 7\n", "upload.concurrency"},
		{"concurrency negative", "[upload]\nconcurrency = -1\n", "upload.concurrency"},
		{"server scheme", "[upload]\nserver = \"ftp://example.com\"\n", "upload.server"},
		{"malformed language", "[upload]\nlanguage = \"not a language\"\n", "upload.language"},
		{"log format", "[logging]\nformat = \"xml\"\n", "logging.format"},
		{"log level", "[logging]\nlevel = \"loud\"\n", "logging.level"},
		{"notify timeout", "[notifications]\nrequest_timeout = -5\n", "notifications.request_timeout"},
		{"unknown key", "[upload]\nthreads = 2\n", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidateConcurrencyBounds(t *testing.T) {
	for n := config.MinConcurrency; n <= config.MaxConcurrency; n++ {
		if err := config.ValidateConcurrency(n); err != nil {
			t.Fatalf("ValidateConcurrency(%d) unexpected error: %v", n, err)
		}
	}
	for _, n := range []int{0, 7, 100} {
		if err := config.ValidateConcurrency(n); err == nil {
			t.Fatalf("ValidateConcurrency(%d) expected error", n)
		}
	}
}

func TestValidateServer(t *testing.T) {
	valid := []string{"https://upload.trint.com/", "http://127.0.0.1:8080/x"}
	for _, v := range valid {
		if err := config.ValidateServer(v); err != nil {
			t.Fatalf("ValidateServer(%q) unexpected error: %v", v, err)
		}
	}
	invalid := []string{"", "upload.trint.com", "ftp://host/", "https://"}
	for _, v := range invalid {
		if err := config.ValidateServer(v); err == nil {
			t.Fatalf("ValidateServer(%q) expected error", v)
		}
	}
}

func TestCreateSampleLoads(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat sample: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("unexpected sample permissions: %v", info.Mode().Perm())
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Upload.Server != config.Default().Upload.Server {
		t.Fatalf("unexpected sample server: %q", cfg.Upload.Server)
	}
	if cfg.HasCredentials() {
		t.Fatal("sample must not carry credentials")
	}
}

func TestExpandPath(t *testing.T) {
	home := isolate(t)
	got, err := config.ExpandPath("~/media")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "media") {
		t.Fatalf("unexpected expansion: %q", got)
	}
	empty, err := config.ExpandPath("")
	if err != nil || empty != "" {
		t.Fatalf("expected empty passthrough, got %q, %v", empty, err)
	}
}
