package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Environment variables that override values loaded from config.toml.
const (
	EnvBaseURL     = "SPOTTER_BASE_URL"
	EnvDBPath      = "SPOTTER_DB_PATH"
	EnvUserID      = "SPOTTER_USER_ID"
	EnvLogLevel    = "SPOTTER_LOG_LEVEL"
	EnvRequireAuth = "SPOTTER_REQUIRE_AUTH"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API     APIConfig     `toml:"api"`
	Storage StorageConfig `toml:"storage"`
	Auth    AuthConfig    `toml:"auth"`
	Profile ProfileConfig `toml:"profile"`
	Preview PreviewConfig `toml:"preview"`
	Log     LogConfig     `toml:"log"`
}

// APIConfig contains the backend location and request pacing.
//
// BaseURL is the single source of truth for where the backend lives; endpoint paths are appended to it.
type APIConfig struct {
	BaseURL           string  `toml:"base_url"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// StorageConfig contains local database settings.
type StorageConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// AuthConfig controls session gating for protected commands.
type AuthConfig struct {
	Require   bool   `toml:"require"`
	LoginHint string `toml:"login_hint"`
}

// ProfileConfig identifies whose history the profile command loads.
type ProfileConfig struct {
	UserID string `toml:"user_id"`
}

// PreviewConfig contains the local preview server address.
type PreviewConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overlays SPOTTER_* variables onto the config.
//
// The given dotenv files are loaded first; files that do not exist are skipped and
// variables already present in the process environment win over dotenv values.
func ApplyEnv(config *Config, files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: failed to load %s: %v", ErrInvalidConfig, file, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		config.API.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDBPath)); v != "" {
		config.Storage.Path = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvUserID)); v != "" {
		config.Profile.UserID = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		config.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvRequireAuth)); v != "" {
		require, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s must be a boolean, got %q", ErrInvalidConfig, EnvRequireAuth, v)
		}
		config.Auth.Require = require
	}

	return nil
}

// PreviewAddr returns the host:port the preview server listens on.
func (c *Config) PreviewAddr() string {
	return fmt.Sprintf("%s:%d", c.Preview.Host, c.Preview.Port)
}
