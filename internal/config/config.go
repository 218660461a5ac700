package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config keys as they appear in config.json and, upper-cased with the
// ARMAZEM_ prefix, in the environment.
const (
	KeyBackendURL = "backend_url"
	KeyAPIPrefix  = "api_prefix"
	KeyTimeout    = "timeout"
	KeyLogLevel   = "log_level"
)

// Defaults
const (
	DefaultBackendURL = "http://localhost:8001"
	DefaultAPIPrefix  = "/api"
	DefaultTimeout    = 30 * time.Second
	DefaultLogLevel   = "warn"
)

// LegacyBackendEnv is honoured when ARMAZEM_BACKEND_URL is not set, so the
// same .env file can serve the web frontend and the terminal client.
const LegacyBackendEnv = "REACT_APP_BACKEND_URL"

// Config represents the resolved client configuration
type Config struct {
	BackendURL string        `json:"backend_url"`
	APIPrefix  string        `json:"api_prefix,omitempty"`
	Timeout    time.Duration `json:"-"`
	LogLevel   string        `json:"log_level,omitempty"`
	DataDir    string        `json:"-"`
}

// fileConfig is the on-disk shape of config.json.
type fileConfig struct {
	BackendURL string `json:"backend_url,omitempty"`
	APIPrefix  string `json:"api_prefix,omitempty"`
	Timeout    string `json:"timeout,omitempty"`
	LogLevel   string `json:"log_level,omitempty"`
}

// DataDir returns the directory holding config.json, the local store and the log file.
// ARMAZEM_DATA_DIR overrides the default ~/.armazem.
func DataDir() (string, error) {
	if dir := os.Getenv("ARMAZEM_DATA_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".armazem"), nil
}

// LoadConfig resolves configuration from dir/config.json, a .env file in the
// working directory and ARMAZEM_* environment variables, in increasing priority.
// A missing config.json is not an error.
func LoadConfig(dir string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault(KeyBackendURL, "")
	v.SetDefault(KeyAPIPrefix, DefaultAPIPrefix)
	v.SetDefault(KeyTimeout, DefaultTimeout.String())
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetEnvPrefix("ARMAZEM")
	v.AutomaticEnv()

	path := filepath.Join(dir, "config.json")
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	backend := v.GetString(KeyBackendURL)
	if backend == "" {
		backend = os.Getenv(LegacyBackendEnv)
	}
	if backend == "" {
		backend = DefaultBackendURL
	}

	timeout, err := time.ParseDuration(v.GetString(KeyTimeout))
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", KeyTimeout, v.GetString(KeyTimeout), err)
	}

	cfg := &Config{
		BackendURL: strings.TrimRight(backend, "/"),
		APIPrefix:  normalizePrefix(v.GetString(KeyAPIPrefix)),
		Timeout:    timeout,
		LogLevel:   v.GetString(KeyLogLevel),
		DataDir:    dir,
	}
	return cfg, nil
}

// SaveValue writes a single key into dir/config.json, keeping the other keys.
func SaveValue(dir, key, value string) error {
	fc, err := readFile(dir)
	if err != nil {
		return err
	}

	switch key {
	case KeyBackendURL:
		fc.BackendURL = strings.TrimRight(value, "/")
	case KeyAPIPrefix:
		fc.APIPrefix = normalizePrefix(value)
	case KeyTimeout:
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s %q: %w", KeyTimeout, value, err)
		}
		fc.Timeout = value
	case KeyLogLevel:
		fc.LogLevel = value
	default:
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}

	return writeFile(dir, fc)
}

// Keys lists the settable configuration keys.
func Keys() []string {
	keys := []string{KeyBackendURL, KeyAPIPrefix, KeyTimeout, KeyLogLevel}
	sort.Strings(keys)
	return keys
}

// APIBaseURL returns the origin joined with the API prefix.
func (c *Config) APIBaseURL() string {
	return c.BackendURL + c.APIPrefix
}

func readFile(dir string) (*fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	if os.IsNotExist(err) {
		return &fc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &fc, nil
}

func writeFile(dir string, fc *fileConfig) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "config.json"), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return ""
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix
}
