package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	API        APIConfig        `yaml:"api"`
	UI         UIConfig         `yaml:"ui"`
	Evaluation EvaluationConfig `yaml:"evaluation"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type ServerConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
}

// APIConfig points at the FAIR EVA evaluation API. URL carries no port;
// the port is appended when the client is built.
type APIConfig struct {
	URL            string `yaml:"url"`
	Port           int    `yaml:"port"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type UIConfig struct {
	Title     string   `yaml:"title"`
	LogoURL   string   `yaml:"logo_url"`
	LogoImage string   `yaml:"logo_image"`
	StaticDir string   `yaml:"static_dir"`
	Plugins   []Plugin `yaml:"plugins"`
}

// Plugin is one entry of the plugin selector on the identifier form.
type Plugin struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

type EvaluationConfig struct {
	DevMode    bool   `yaml:"dev_mode"`
	SampleFile string `yaml:"sample_file"`
	Language   string `yaml:"language"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:        "127.0.0.1",
			Port:        8000,
			MetricsPort: 8001,
		},
		API: APIConfig{
			URL:            "http://localhost",
			Port:           9090,
			TimeoutSeconds: 30,
		},
		UI: UIConfig{
			Title:     "FAIR EVA",
			LogoURL:   "https://digital.csic.es",
			LogoImage: "logo_fair_eosc.png",
			StaticDir: "static",
			Plugins: []Plugin{
				{ID: "signposting", Label: "Signposting (Zenodo/CSIC)"},
				{ID: "oai_pmh", Label: "OAI-PMH"},
				{ID: "custom_plugin", Label: "Custom Plugin"},
			},
		},
		Evaluation: EvaluationConfig{
			SampleFile: "data/sample_evaluation.json",
			Language:   "en",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FAIR_EVA_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("FAIR_EVA_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("FAIR_EVA_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("FAIR_EVA_API_URL"); v != "" {
		cfg.API.URL = v
	}
	if v := os.Getenv("FAIR_EVA_API_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.API.Port = n
		}
	}
	if v := os.Getenv("FAIR_EVA_TITLE"); v != "" {
		cfg.UI.Title = v
	}
	if v := os.Getenv("FAIR_EVA_LOGO_URL"); v != "" {
		cfg.UI.LogoURL = v
	}
	if v := os.Getenv("FAIR_EVA_LOGO_IMAGE"); v != "" {
		cfg.UI.LogoImage = v
	}
	if v := os.Getenv("FAIR_EVA_DEV"); v != "" {
		cfg.Evaluation.DevMode = v == "1" || v == "true"
	}
	if v := os.Getenv("FAIR_EVA_SAMPLE_FILE"); v != "" {
		cfg.Evaluation.SampleFile = v
	}
	if v := os.Getenv("FAIR_EVA_LANG"); v != "" {
		cfg.Evaluation.Language = v
	}
	if v := os.Getenv("FAIR_EVA_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
