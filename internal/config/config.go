package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds console configuration loaded from file, environment and flags.
type Config struct {
	RunAddress          string
	BackendURL          string
	StateDSN            string
	SessionSecret       string
	RequestTimeout      time.Duration
	RefreshWorkers      int
	AutoRefreshInterval time.Duration
	ShutdownTimeout     time.Duration
	LogLevel            slog.Level
	LogFormat           string
}

const (
	defaultRunAddress      = "127.0.0.1:8090"
	defaultStateDSN        = "./data/findash.db"
	defaultRequestTimeout  = 15 * time.Second
	defaultRefreshWorkers  = 2
	defaultShutdownTimeout = 10 * time.Second
	defaultLogFormat       = LogFormatJSON
	defaultEnvFile         = ".env"

	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Load parses configuration from the optional .env file, environment and command-line flags.
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}
	return load(os.Args[1:], os.LookupEnv)
}

// Parse is Load for binaries that own os.Args: args use the same flag
// names as Load and override the environment.
func Parse(args []string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}
	return load(args, os.LookupEnv)
}

func loadEnvFile() error {
	path := getString(os.LookupEnv, "ENV_FILE", defaultEnvFile)
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

type envLookup func(string) (string, bool)

// fileConfig mirrors the YAML configuration file.
type fileConfig struct {
	RunAddress          string `yaml:"run_address"`
	BackendURL          string `yaml:"backend_url"`
	StateDSN            string `yaml:"state_dsn"`
	SessionSecret       string `yaml:"session_secret"`
	RequestTimeout      string `yaml:"request_timeout"`
	RefreshWorkers      int    `yaml:"refresh_workers"`
	AutoRefreshInterval string `yaml:"auto_refresh_interval"`
	ShutdownTimeout     string `yaml:"shutdown_timeout"`
	LogLevel            string `yaml:"log_level"`
	LogFormat           string `yaml:"log_format"`
}

type flagValues struct {
	configFile          string
	runAddress          string
	backendURL          string
	stateDSN            string
	sessionSecret       string
	requestTimeout      string
	refreshWorkers      int
	autoRefreshInterval string
	shutdownTimeout     string
	logLevel            string
	logFormat           string
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      defaultRunAddress,
		StateDSN:        defaultStateDSN,
		RequestTimeout:  defaultRequestTimeout,
		RefreshWorkers:  defaultRefreshWorkers,
		ShutdownTimeout: defaultShutdownTimeout,
		LogLevel:        slog.LevelInfo,
		LogFormat:       defaultLogFormat,
	}

	fset := flag.NewFlagSet("findash", flag.ContinueOnError)
	fset.SetOutput(io.Discard)

	var fv flagValues
	fset.StringVar(&fv.configFile, "c", "", "YAML configuration file")
	fset.StringVar(&fv.runAddress, "a", "", "Console HTTP listen address")
	fset.StringVar(&fv.backendURL, "b", "", "Backend API base URL")
	fset.StringVar(&fv.stateDSN, "s", "", "State storage: memory, sqlite path or postgres DSN")
	fset.StringVar(&fv.sessionSecret, "session-secret", "", "Secret sealing the persisted session")
	fset.StringVar(&fv.requestTimeout, "request-timeout", "", "Backend request timeout")
	fset.IntVar(&fv.refreshWorkers, "refresh-workers", 0, "Number of concurrent view refresh workers")
	fset.StringVar(&fv.autoRefreshInterval, "auto-refresh", "", "Interval between automatic view refreshes, 0 disables")
	fset.StringVar(&fv.shutdownTimeout, "shutdown-timeout", "", "Graceful shutdown timeout")
	fset.StringVar(&fv.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fset.StringVar(&fv.logFormat, "log-format", "", "Log format: json or text")

	if err := fset.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	set := make(map[string]bool)
	fset.Visit(func(f *flag.Flag) { set[f.Name] = true })

	configFile := getString(lookup, "CONFIG_FILE", "")
	if set["c"] {
		configFile = fv.configFile
	}
	if configFile != "" {
		if err := applyFile(cfg, configFile); err != nil {
			return nil, err
		}
	}

	logLevel := cfg.LogLevel.String()
	requestTimeout := cfg.RequestTimeout.String()
	autoRefresh := cfg.AutoRefreshInterval.String()
	shutdownTimeout := cfg.ShutdownTimeout.String()

	cfg.RunAddress = getString(lookup, "RUN_ADDRESS", cfg.RunAddress)
	cfg.BackendURL = getString(lookup, "BACKEND_URL", cfg.BackendURL)
	cfg.StateDSN = getString(lookup, "STATE_DSN", cfg.StateDSN)
	cfg.SessionSecret = getString(lookup, "SESSION_SECRET", cfg.SessionSecret)
	cfg.RefreshWorkers = getInt(lookup, "REFRESH_WORKERS", cfg.RefreshWorkers)
	cfg.LogFormat = getString(lookup, "LOG_FORMAT", cfg.LogFormat)
	logLevel = getString(lookup, "LOG_LEVEL", logLevel)
	requestTimeout = getString(lookup, "REQUEST_TIMEOUT", requestTimeout)
	autoRefresh = getString(lookup, "AUTO_REFRESH_INTERVAL", autoRefresh)
	shutdownTimeout = getString(lookup, "SHUTDOWN_TIMEOUT", shutdownTimeout)

	if set["a"] {
		cfg.RunAddress = fv.runAddress
	}
	if set["b"] {
		cfg.BackendURL = fv.backendURL
	}
	if set["s"] {
		cfg.StateDSN = fv.stateDSN
	}
	if set["session-secret"] {
		cfg.SessionSecret = fv.sessionSecret
	}
	if set["refresh-workers"] {
		cfg.RefreshWorkers = fv.refreshWorkers
	}
	if set["log-format"] {
		cfg.LogFormat = fv.logFormat
	}
	if set["log-level"] {
		logLevel = fv.logLevel
	}
	if set["request-timeout"] {
		requestTimeout = fv.requestTimeout
	}
	if set["auto-refresh"] {
		autoRefresh = fv.autoRefreshInterval
	}
	if set["shutdown-timeout"] {
		shutdownTimeout = fv.shutdownTimeout
	}

	var err error

	if cfg.RequestTimeout, err = time.ParseDuration(requestTimeout); err != nil {
		return nil, fmt.Errorf("invalid request timeout: %w", err)
	}
	if cfg.AutoRefreshInterval, err = time.ParseDuration(autoRefresh); err != nil {
		return nil, fmt.Errorf("invalid auto refresh interval: %w", err)
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeout); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	if secretFile, ok := lookup("SESSION_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read session secret file: %w", err)
		}
		cfg.SessionSecret = strings.TrimSpace(string(content))
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	if cfg.RefreshWorkers <= 0 {
		cfg.RefreshWorkers = defaultRefreshWorkers
	}

	if cfg.AutoRefreshInterval < 0 {
		cfg.AutoRefreshInterval = 0
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != LogFormatJSON && cfg.LogFormat != LogFormatText {
		return nil, fmt.Errorf("unsupported log format %q", cfg.LogFormat)
	}

	if cfg.BackendURL == "" {
		return nil, fmt.Errorf("backend URL must be provided")
	}
	if u, err := url.Parse(cfg.BackendURL); err != nil || !u.IsAbs() {
		return nil, fmt.Errorf("backend URL must be absolute: %q", cfg.BackendURL)
	}

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(content, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if fc.RunAddress != "" {
		cfg.RunAddress = fc.RunAddress
	}
	if fc.BackendURL != "" {
		cfg.BackendURL = fc.BackendURL
	}
	if fc.StateDSN != "" {
		cfg.StateDSN = fc.StateDSN
	}
	if fc.SessionSecret != "" {
		cfg.SessionSecret = fc.SessionSecret
	}
	if fc.RefreshWorkers != 0 {
		cfg.RefreshWorkers = fc.RefreshWorkers
	}
	if fc.LogFormat != "" {
		cfg.LogFormat = fc.LogFormat
	}
	if fc.LogLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(fc.LogLevel)); err != nil {
			return fmt.Errorf("invalid log level in config file: %w", err)
		}
	}

	durations := []struct {
		raw    string
		target *time.Duration
		name   string
	}{
		{fc.RequestTimeout, &cfg.RequestTimeout, "request_timeout"},
		{fc.AutoRefreshInterval, &cfg.AutoRefreshInterval, "auto_refresh_interval"},
		{fc.ShutdownTimeout, &cfg.ShutdownTimeout, "shutdown_timeout"},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("invalid %s in config file: %w", d.name, err)
		}
		*d.target = v
	}
	return nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
