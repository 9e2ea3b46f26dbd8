package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the settings cookbook needs at startup.
type Config struct {
	APIURL         string
	LogFile        string
	LogLevel       string
	RequestTimeout time.Duration
	Email          string
	Password       string
}

const (
	defaultConfigPath     = "~/.config/cookbook/config.toml"
	defaultLogFile        = "~/.local/state/cookbook/cookbook.log"
	defaultAPIURL         = "http://127.0.0.1:5555"
	defaultLogLevel       = "info"
	defaultRequestTimeout = 10 * time.Second
)

// Environment variables that override file values.
const (
	EnvAPIURL   = "COOKBOOK_API_URL"
	EnvEmail    = "COOKBOOK_EMAIL"
	EnvPassword = "COOKBOOK_PASSWORD"
	EnvLogLevel = "COOKBOOK_LOG_LEVEL"
)

// LoadDotEnv reads KEY=value pairs from the given files (".env" when none
// are named) into the process environment. Variables already set win, and
// a missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	present := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Load parses the config file at path (the default location when empty),
// falls back to defaults for a missing file or empty fields, and then
// applies environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer func() { _ = file.Close() }()
		if err := decode(file, &cfg); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg, os.LookupEnv)

	if cfg.LogFile, err = ExpandPath(cfg.LogFile); err != nil {
		return Config{}, fmt.Errorf("log file: %w", err)
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		APIURL:         defaultAPIURL,
		LogFile:        defaultLogFile,
		LogLevel:       defaultLogLevel,
		RequestTimeout: defaultRequestTimeout,
	}
}

func decode(r io.Reader, cfg *Config) error {
	bytes, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL                string `toml:"api_url"`
		LogFile               string `toml:"log_file"`
		LogLevel              string `toml:"log_level"`
		RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
		Email                 string `toml:"email"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if raw.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutSeconds) * time.Second
	}
	cfg.Email = strings.TrimSpace(raw.Email)
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAPIURL); ok && strings.TrimSpace(v) != "" {
		cfg.APIURL = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvEmail); ok && strings.TrimSpace(v) != "" {
		cfg.Email = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvPassword); ok && v != "" {
		cfg.Password = v
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
}

// HasCredentials reports whether both an email and password are configured.
func (c Config) HasCredentials() bool {
	return c.Email != "" && c.Password != ""
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

// ExpandPath expands a leading "~" to the home directory and returns an
// absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
