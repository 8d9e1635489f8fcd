package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func envFrom(env map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	_, err := load(nil, func(string) (string, bool) { return "", false })
	if err == nil {
		t.Fatalf("expected error due to missing backend url, got nil")
	}

	cfg, err := load(nil, envFrom(map[string]string{"BACKEND_URL": "http://api.local"}))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}

	if cfg.RunAddress != defaultRunAddress {
		t.Errorf("expected default run address %q, got %q", defaultRunAddress, cfg.RunAddress)
	}
	if cfg.StateDSN != defaultStateDSN {
		t.Errorf("expected default state dsn %q, got %q", defaultStateDSN, cfg.StateDSN)
	}
	if cfg.RequestTimeout != defaultRequestTimeout {
		t.Errorf("expected default request timeout %v, got %v", defaultRequestTimeout, cfg.RequestTimeout)
	}
	if cfg.RefreshWorkers != defaultRefreshWorkers {
		t.Errorf("expected default refresh workers %d, got %d", defaultRefreshWorkers, cfg.RefreshWorkers)
	}
	if cfg.AutoRefreshInterval != 0 {
		t.Errorf("expected auto refresh disabled, got %v", cfg.AutoRefreshInterval)
	}
	if cfg.LogLevel != slog.LevelInfo || cfg.LogFormat != LogFormatJSON {
		t.Errorf("unexpected log settings %v %q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadWithFlagOverrides(t *testing.T) {
	env := map[string]string{
		"BACKEND_URL":           "http://api.local",
		"REFRESH_WORKERS":       "3",
		"REQUEST_TIMEOUT":       "5s",
		"AUTO_REFRESH_INTERVAL": "1m",
		"LOG_LEVEL":             "warn",
	}

	args := []string{
		"-a", ":9090",
		"-b", "https://override.example",
		"-s", "memory",
		"--request-timeout", "7s",
		"--shutdown-timeout", "20s",
		"--refresh-workers", "9",
		"--auto-refresh", "30s",
		"--session-secret", "flag-secret",
		"--log-level", "debug",
		"--log-format", "TEXT",
	}

	cfg, err := load(args, envFrom(env))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}

	if cfg.RunAddress != ":9090" {
		t.Errorf("expected run address :9090, got %q", cfg.RunAddress)
	}
	if cfg.BackendURL != "https://override.example" {
		t.Errorf("expected backend override, got %q", cfg.BackendURL)
	}
	if cfg.StateDSN != "memory" {
		t.Errorf("expected state dsn override, got %q", cfg.StateDSN)
	}
	if cfg.RequestTimeout != 7*time.Second {
		t.Errorf("expected request timeout 7s, got %v", cfg.RequestTimeout)
	}
	if cfg.ShutdownTimeout != 20*time.Second {
		t.Errorf("expected shutdown timeout 20s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.RefreshWorkers != 9 {
		t.Errorf("expected refresh workers 9, got %d", cfg.RefreshWorkers)
	}
	if cfg.AutoRefreshInterval != 30*time.Second {
		t.Errorf("expected auto refresh 30s, got %v", cfg.AutoRefreshInterval)
	}
	if cfg.SessionSecret != "flag-secret" {
		t.Errorf("expected session secret override, got %q", cfg.SessionSecret)
	}
	if cfg.LogLevel != slog.LevelDebug || cfg.LogFormat != LogFormatText {
		t.Errorf("unexpected log settings %v %q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadEnvOverridesWithoutFlags(t *testing.T) {
	cfg, err := load(nil, envFrom(map[string]string{
		"BACKEND_URL":           "http://api.local",
		"REQUEST_TIMEOUT":       "5s",
		"AUTO_REFRESH_INTERVAL": "1m",
		"LOG_LEVEL":             "warn",
	}))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}
	if cfg.RequestTimeout != 5*time.Second || cfg.AutoRefreshInterval != time.Minute || cfg.LogLevel != slog.LevelWarn {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestLoadValidationErrors(t *testing.T) {
	env := envFrom(map[string]string{"BACKEND_URL": "http://api.local"})

	cases := []struct {
		args []string
		want string
	}{
		{[]string{"--request-timeout", "bad"}, "invalid request timeout"},
		{[]string{"--shutdown-timeout", "bad"}, "invalid shutdown timeout"},
		{[]string{"--auto-refresh", "bad"}, "invalid auto refresh interval"},
		{[]string{"--log-level", "loud"}, "invalid log level"},
		{[]string{"--log-format", "xml"}, "unsupported log format"},
		{[]string{"-b", "/relative"}, "backend URL must be absolute"},
		{[]string{"--unknown"}, "parse flags"},
	}

	for _, tc := range cases {
		_, err := load(tc.args, env)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("args %v: expected %q error, got %v", tc.args, tc.want, err)
		}
	}
}

func TestLoadNormalizesNonPositiveValues(t *testing.T) {
	cfg, err := load(nil, envFrom(map[string]string{
		"BACKEND_URL":           "http://api.local",
		"REFRESH_WORKERS":       "-1",
		"REQUEST_TIMEOUT":       "0",
		"AUTO_REFRESH_INTERVAL": "-5s",
		"SHUTDOWN_TIMEOUT":      "0",
	}))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}

	if cfg.RefreshWorkers != defaultRefreshWorkers {
		t.Errorf("expected default refresh workers %d, got %d", defaultRefreshWorkers, cfg.RefreshWorkers)
	}
	if cfg.RequestTimeout != defaultRequestTimeout {
		t.Errorf("expected default request timeout %v, got %v", defaultRequestTimeout, cfg.RequestTimeout)
	}
	if cfg.AutoRefreshInterval != 0 {
		t.Errorf("expected disabled auto refresh, got %v", cfg.AutoRefreshInterval)
	}
	if cfg.ShutdownTimeout != defaultShutdownTimeout {
		t.Errorf("expected default shutdown timeout %v, got %v", defaultShutdownTimeout, cfg.ShutdownTimeout)
	}
}

func TestLoadReadsSecretFromFile(t *testing.T) {
	secretFile := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(secretFile, []byte("file-secret\n"), 0o600); err != nil {
		t.Fatalf("failed to write secret file: %v", err)
	}

	cfg, err := load(nil, envFrom(map[string]string{
		"BACKEND_URL":         "http://api.local",
		"SESSION_SECRET_FILE": secretFile,
	}))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}

	if cfg.SessionSecret != "file-secret" {
		t.Errorf("expected secret from file, got %q", cfg.SessionSecret)
	}
}

func TestLoadConfigFileLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "findash.yaml")
	content := `
run_address: ":7000"
backend_url: "http://file.local"
state_dsn: "memory"
request_timeout: "3s"
refresh_workers: 5
log_level: "error"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := load([]string{"-c", path, "-a", ":7100"}, envFrom(map[string]string{"REFRESH_WORKERS": "6"}))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}
	if cfg.BackendURL != "http://file.local" || cfg.StateDSN != "memory" || cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.LogLevel != slog.LevelError {
		t.Fatalf("expected error level from file, got %v", cfg.LogLevel)
	}
	if cfg.RefreshWorkers != 6 {
		t.Fatalf("expected env to override file, got %d", cfg.RefreshWorkers)
	}
	if cfg.RunAddress != ":7100" {
		t.Fatalf("expected flag to override file, got %q", cfg.RunAddress)
	}

	cfg, err = load(nil, envFrom(map[string]string{"CONFIG_FILE": path}))
	if err != nil {
		t.Fatalf("load via CONFIG_FILE failed: %v", err)
	}
	if cfg.RunAddress != ":7000" {
		t.Fatalf("expected file run address, got %q", cfg.RunAddress)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	_ = os.WriteFile(bad, []byte("request_timeout: soon\nbackend_url: http://x"), 0o600)
	if _, err := load([]string{"-c", bad}, envFrom(nil)); err == nil || !strings.Contains(err.Error(), "request_timeout") {
		t.Fatalf("expected invalid duration error, got %v", err)
	}
	if _, err := load([]string{"-c", filepath.Join(t.TempDir(), "missing.yaml")}, envFrom(nil)); err == nil {
		t.Fatal("expected missing file error")
	}
}
