package config_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/takeoff/internal/config"
)

const baseConfig = `
shutdown_timeout = "30s"
version = "0.3.0"

[server]
host = "0.0.0.0"
port = 8080

[database]
host = "localhost"
name = "takeoff"
user = "takeoff"
password = "takeoff"

[storage]
container_name = "blueprints"
connection_string = "UseDevelopmentStorage=true"

[api]
base_path = "/api"
max_upload_size = "25MB"

[api.pagination]
default_page_size = 25
max_page_size = 50

[resolver]
cutoff = "2025-12-01"
default_waste_percent = 12.5

[logging]
level = "debug"
format = "json"
`

const overlayConfig = `
[server]
port = 9090

[database]
host = "db.staging"

[resolver]
default_waste_percent = 0.0
`

func writeConfig(t *testing.T, dir, filename, content string) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
	return path
}

func TestLoadFrom(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.toml", baseConfig)

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"server port", cfg.Server.Port, 8080},
		{"database host", cfg.Database.Host, "localhost"},
		{"storage container", cfg.Storage.ContainerName, "blueprints"},
		{"api base path", cfg.API.BasePath, "/api"},
		{"max upload", cfg.API.MaxUploadSizeBytes(), int64(25 * 1024 * 1024)},
		{"page size", cfg.API.Pagination.DefaultPageSize, 25},
		{"waste", cfg.Resolver.WastePercent(), 12.5},
		{"cutoff", cfg.Resolver.CutoffTime(), time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)},
		{"concurrency default", cfg.Resolver.Concurrency, 4},
		{"log format", cfg.Logging.Format, "json"},
		{"auth off", cfg.API.Auth.Enabled, false},
		{"openapi title", cfg.API.OpenAPI.Title, "Takeoff API"},
		{"version", cfg.Version, "0.3.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %v, want %v", tt.got, tt.expected)
			}
		})
	}
}

func TestLoadFromWithOverlay(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "config.toml", baseConfig)
	writeConfig(t, dir, "config.staging.toml", overlayConfig)
	t.Setenv(config.EnvTakeoffEnv, "staging")

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port: got %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.staging" {
		t.Errorf("db host: got %s, want db.staging", cfg.Database.Host)
	}
	if cfg.Database.Name != "takeoff" {
		t.Errorf("db name lost in overlay: %s", cfg.Database.Name)
	}
	if cfg.Resolver.WastePercent() != 0 {
		t.Errorf("explicit zero waste overlay not applied: %v", cfg.Resolver.WastePercent())
	}
	if cfg.Env() != "staging" {
		t.Errorf("env: got %s", cfg.Env())
	}
}

func TestLoadFromEnvOnly(t *testing.T) {
	t.Setenv("TAKEOFF_DB_NAME", "takeoff")
	t.Setenv("TAKEOFF_DB_USER", "takeoff")
	t.Setenv("TAKEOFF_STORAGE_SERVICE_URL", "https://acct.blob.core.windows.net")
	t.Setenv("TAKEOFF_SERVER_PORT", "7070")
	t.Setenv(config.EnvResolverCutoff, "2026-01-15")
	t.Setenv(config.EnvLoggingLevel, "warn")

	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("port: got %d", cfg.Server.Port)
	}
	if !cfg.Storage.UsesCredential() {
		t.Error("service url should select the credential path")
	}
	if got := cfg.Resolver.CutoffTime(); !got.Equal(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("cutoff: got %v", got)
	}
	if cfg.Resolver.WastePercent() != 10 {
		t.Errorf("default waste: got %v", cfg.Resolver.WastePercent())
	}
	if cfg.Logging.SlogLevel() != slog.LevelWarn {
		t.Errorf("level: got %v", cfg.Logging.SlogLevel())
	}
}

func TestLoadFromErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"malformed toml", "[server\nport = 1", "parse config"},
		{"missing database", "[storage]\nconnection_string = \"x\"", "database"},
		{"bad cutoff", strings.Replace(baseConfig, `cutoff = "2025-12-01"`, `cutoff = "December"`, 1), "invalid cutoff"},
		{"bad upload size", strings.Replace(baseConfig, `"25MB"`, `"lots"`, 1), "max_upload_size"},
		{"bad log level", strings.Replace(baseConfig, `level = "debug"`, `level = "verbose"`, 1), "logging"},
		{"waste above 100", strings.Replace(baseConfig, "12.5", "150", 1), "default_waste_percent"},
		{"auth incomplete", baseConfig + "\n[api.auth]\nenabled = true\n", "auth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), "config.toml", tt.content)

			_, err := config.LoadFrom(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoggingNewLogger(t *testing.T) {
	tests := []struct {
		format string
		level  string
		want   string
	}{
		{"json", "info", `"msg":"estimate resolved"`},
		{"text", "info", "msg=\"estimate resolved\""},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			cfg := config.LoggingConfig{Format: tt.format, Level: tt.level}
			if err := cfg.Finalize(); err != nil {
				t.Fatalf("finalize: %v", err)
			}

			var buf bytes.Buffer
			logger := cfg.NewLogger(&buf)
			logger.Debug("hidden")
			logger.Info("estimate resolved")

			if strings.Contains(buf.String(), "hidden") {
				t.Error("debug record emitted at info level")
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q missing %q", buf.String(), tt.want)
			}
		})
	}
}

func TestServerConfig(t *testing.T) {
	cfg := config.ServerConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("addr: got %s", cfg.Addr())
	}
	if cfg.ReadTimeoutDuration() != time.Minute {
		t.Errorf("read timeout: got %v", cfg.ReadTimeoutDuration())
	}
	if cfg.ReadHeaderTimeoutDuration() != 10*time.Second {
		t.Errorf("read header timeout: got %v", cfg.ReadHeaderTimeoutDuration())
	}

	merged := config.ServerConfig{}
	merged.Finalize()
	merged.Merge(&config.ServerConfig{WriteTimeout: "2m"})
	if merged.WriteTimeoutDuration() != 2*time.Minute || merged.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("merge: got write %v shutdown %v", merged.WriteTimeoutDuration(), merged.ShutdownTimeoutDuration())
	}

	badTimeout := config.ServerConfig{ReadHeaderTimeout: "soon"}
	if err := badTimeout.Finalize(); err == nil {
		t.Error("expected invalid read_header_timeout error")
	}

	bad := config.ServerConfig{Port: 70000}
	if err := bad.Finalize(); err == nil {
		t.Error("expected invalid port error")
	}
}
