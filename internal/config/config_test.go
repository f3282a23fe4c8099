package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Unset all FAIR_EVA_ env vars to test pure defaults
	envVars := []string{
		"FAIR_EVA_HOST", "FAIR_EVA_PORT", "FAIR_EVA_METRICS_PORT",
		"FAIR_EVA_API_URL", "FAIR_EVA_API_PORT", "FAIR_EVA_TITLE",
		"FAIR_EVA_LOGO_URL", "FAIR_EVA_LOGO_IMAGE", "FAIR_EVA_DEV",
		"FAIR_EVA_SAMPLE_FILE", "FAIR_EVA_LANG", "FAIR_EVA_LOG_LEVEL",
	}
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("expected host 127.0.0.1, got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("expected port 8000, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8001 {
		t.Errorf("expected metrics port 8001, got %d", cfg.Server.MetricsPort)
	}
	if cfg.API.URL != "http://localhost" {
		t.Errorf("expected API URL http://localhost, got %s", cfg.API.URL)
	}
	if cfg.API.Port != 9090 {
		t.Errorf("expected API port 9090, got %d", cfg.API.Port)
	}
	if cfg.UI.Title != "FAIR EVA" {
		t.Errorf("expected title 'FAIR EVA', got '%s'", cfg.UI.Title)
	}
	if cfg.UI.LogoURL != "https://digital.csic.es" {
		t.Errorf("expected logo URL, got '%s'", cfg.UI.LogoURL)
	}
	if cfg.UI.LogoImage != "logo_fair_eosc.png" {
		t.Errorf("expected logo image, got '%s'", cfg.UI.LogoImage)
	}
	if len(cfg.UI.Plugins) != 3 {
		t.Fatalf("expected 3 default plugins, got %d", len(cfg.UI.Plugins))
	}
	if cfg.UI.Plugins[0].ID != "signposting" {
		t.Errorf("expected first plugin 'signposting', got '%s'", cfg.UI.Plugins[0].ID)
	}
	if cfg.Evaluation.DevMode {
		t.Error("expected dev mode disabled by default")
	}
	if cfg.Evaluation.SampleFile != "data/sample_evaluation.json" {
		t.Errorf("expected default sample file, got '%s'", cfg.Evaluation.SampleFile)
	}
	if cfg.Evaluation.Language != "en" {
		t.Errorf("expected language 'en', got '%s'", cfg.Evaluation.Language)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got '%s'", cfg.Logging.Format)
	}
	if cfg.APITimeout() != 30*time.Second {
		t.Errorf("expected APITimeout 30s, got %v", cfg.APITimeout())
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FAIR_EVA_HOST", "0.0.0.0")
	t.Setenv("FAIR_EVA_PORT", "9000")
	t.Setenv("FAIR_EVA_METRICS_PORT", "9001")
	t.Setenv("FAIR_EVA_API_URL", "http://fair-eva")
	t.Setenv("FAIR_EVA_API_PORT", "8080")
	t.Setenv("FAIR_EVA_TITLE", "My Repository")
	t.Setenv("FAIR_EVA_LOGO_URL", "https://example.org")
	t.Setenv("FAIR_EVA_LOGO_IMAGE", "logo.svg")
	t.Setenv("FAIR_EVA_DEV", "1")
	t.Setenv("FAIR_EVA_SAMPLE_FILE", "/tmp/sample.json")
	t.Setenv("FAIR_EVA_LANG", "es")
	t.Setenv("FAIR_EVA_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected host 0.0.0.0, got '%s'", cfg.Server.Host)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 9001 {
		t.Errorf("expected metrics port 9001, got %d", cfg.Server.MetricsPort)
	}
	if cfg.API.URL != "http://fair-eva" {
		t.Errorf("expected API URL 'http://fair-eva', got '%s'", cfg.API.URL)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("expected API port 8080, got %d", cfg.API.Port)
	}
	if cfg.UI.Title != "My Repository" {
		t.Errorf("expected title 'My Repository', got '%s'", cfg.UI.Title)
	}
	if cfg.UI.LogoURL != "https://example.org" {
		t.Errorf("expected logo URL, got '%s'", cfg.UI.LogoURL)
	}
	if cfg.UI.LogoImage != "logo.svg" {
		t.Errorf("expected logo image 'logo.svg', got '%s'", cfg.UI.LogoImage)
	}
	if !cfg.Evaluation.DevMode {
		t.Error("expected dev mode enabled")
	}
	if cfg.Evaluation.SampleFile != "/tmp/sample.json" {
		t.Errorf("expected sample file override, got '%s'", cfg.Evaluation.SampleFile)
	}
	if cfg.Evaluation.Language != "es" {
		t.Errorf("expected language 'es', got '%s'", cfg.Evaluation.Language)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got '%s'", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	for _, k := range []string{"FAIR_EVA_PORT", "FAIR_EVA_API_URL", "FAIR_EVA_TITLE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
server:
  port: 8800
api:
  url: http://eva.internal
  port: 9999
ui:
  title: Institutional FAIR Portal
  plugins:
    - id: dspace
      label: DSpace
evaluation:
  dev_mode: true
  sample_file: testdata/sample.json
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8800 {
		t.Errorf("expected port 8800, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8001 {
		t.Errorf("expected default metrics port to survive, got %d", cfg.Server.MetricsPort)
	}
	if cfg.API.URL != "http://eva.internal" {
		t.Errorf("expected API URL from file, got '%s'", cfg.API.URL)
	}
	if cfg.API.Port != 9999 {
		t.Errorf("expected API port 9999, got %d", cfg.API.Port)
	}
	if cfg.UI.Title != "Institutional FAIR Portal" {
		t.Errorf("expected title from file, got '%s'", cfg.UI.Title)
	}
	if len(cfg.UI.Plugins) != 1 || cfg.UI.Plugins[0].ID != "dspace" {
		t.Errorf("expected plugins replaced by file, got %+v", cfg.UI.Plugins)
	}
	if !cfg.Evaluation.DevMode {
		t.Error("expected dev mode from file")
	}
	if cfg.Evaluation.SampleFile != "testdata/sample.json" {
		t.Errorf("expected sample file from file, got '%s'", cfg.Evaluation.SampleFile)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api:\n  port: 9999\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FAIR_EVA_API_PORT", "7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.Port != 7070 {
		t.Errorf("expected env to override file, got %d", cfg.API.Port)
	}
}
