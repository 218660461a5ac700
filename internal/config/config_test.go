package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ARMAZEM_BACKEND_URL", "ARMAZEM_API_PREFIX", "ARMAZEM_TIMEOUT", "ARMAZEM_LOG_LEVEL", LegacyBackendEnv} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	c := qt.New(t)

	cfg, err := LoadConfig(t.TempDir())
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.BackendURL, qt.Equals, DefaultBackendURL)
	c.Assert(cfg.APIPrefix, qt.Equals, DefaultAPIPrefix)
	c.Assert(cfg.Timeout, qt.Equals, DefaultTimeout)
	c.Assert(cfg.LogLevel, qt.Equals, DefaultLogLevel)
	c.Assert(cfg.APIBaseURL(), qt.Equals, "http://localhost:8001/api")
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	clearEnv(t)
	c := qt.New(t)
	dir := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"backend_url": "https://armazem.example.com/", "timeout": "5s"}`), 0644)
	c.Assert(err, qt.IsNil)

	cfg, err := LoadConfig(dir)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.BackendURL, qt.Equals, "https://armazem.example.com")
	c.Assert(cfg.Timeout, qt.Equals, 5*time.Second)

	t.Setenv("ARMAZEM_BACKEND_URL", "http://override:9000")
	cfg, err = LoadConfig(dir)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.BackendURL, qt.Equals, "http://override:9000")
}

func TestLoadConfig_LegacyBackendEnv(t *testing.T) {
	clearEnv(t)
	c := qt.New(t)
	t.Setenv(LegacyBackendEnv, "https://constructpm.example.com")

	cfg, err := LoadConfig(t.TempDir())
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.BackendURL, qt.Equals, "https://constructpm.example.com")
}

func TestLoadConfig_InvalidTimeout(t *testing.T) {
	clearEnv(t)
	c := qt.New(t)
	dir := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"timeout": "soon"}`), 0644)
	c.Assert(err, qt.IsNil)

	_, err = LoadConfig(dir)
	c.Assert(err, qt.ErrorMatches, `invalid timeout "soon".*`)
}

func TestSaveValue(t *testing.T) {
	clearEnv(t)
	c := qt.New(t)
	dir := filepath.Join(t.TempDir(), "nested")

	c.Assert(SaveValue(dir, KeyBackendURL, "http://10.0.0.5:8001/"), qt.IsNil)
	c.Assert(SaveValue(dir, KeyAPIPrefix, "v2/"), qt.IsNil)

	cfg, err := LoadConfig(dir)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.BackendURL, qt.Equals, "http://10.0.0.5:8001")
	c.Assert(cfg.APIPrefix, qt.Equals, "/v2")
}

func TestSaveValue_Rejects(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()

	c.Assert(SaveValue(dir, "colour", "blue"), qt.ErrorMatches, `unknown config key "colour".*`)
	c.Assert(SaveValue(dir, KeyTimeout, "forever"), qt.ErrorMatches, `invalid timeout "forever".*`)
}

func TestNormalizePrefix(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/api", "/api"},
		{"api", "/api"},
		{"/api/", "/api"},
		{"  ", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			qt.New(t).Assert(normalizePrefix(tt.in), qt.Equals, tt.want)
		})
	}
}

func TestDataDir_Override(t *testing.T) {
	c := qt.New(t)
	t.Setenv("ARMAZEM_DATA_DIR", "/tmp/armazem-test")

	dir, err := DataDir()
	c.Assert(err, qt.IsNil)
	c.Assert(dir, qt.Equals, "/tmp/armazem-test")
}
