package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type APIConfig struct {
	// Key, when set, puts /kickoff_post behind a bearer token. Empty key
	// leaves the API open.
	Key string `yaml:"key"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type AIConfig struct {
	OpenAIKey       string `yaml:"openai_key"`
	GeminiKey       string `yaml:"gemini_key"`
	GeminiURL       string `yaml:"gemini_url"`
	Model           string `yaml:"model"`
	SerperKey       string `yaml:"serper_key"`
	ConcurrentLimit int    `yaml:"concurrent_limit"` // max concurrent LLM calls
}

type JobsConfig struct {
	Workers         int           `yaml:"workers"`
	Queue           int           `yaml:"queue"`
	Timeout         time.Duration `yaml:"timeout"`          // per-job planning budget
	Retention       time.Duration `yaml:"retention"`        // keep finished jobs this long
	JanitorInterval time.Duration `yaml:"janitor_interval"` // eviction sweep period
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	API    APIConfig    `yaml:"api"`
	Log    LogConfig    `yaml:"log"`
	AI     AIConfig     `yaml:"ai"`
	Jobs   JobsConfig   `yaml:"jobs"`
	Redis  RedisConfig  `yaml:"redis"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Environment overrides for the collaborator credentials, so secrets
	// can stay out of the YAML file.
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.AI.OpenAIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.AI.GeminiKey = v
	}
	if v := os.Getenv("MODEL"); v != "" {
		cfg.AI.Model = v
	}
	if v := os.Getenv("SERPER_API_KEY"); v != "" {
		cfg.AI.SerperKey = v
	}

	cfg.applyDefaults()

	// Minimal validation
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, errors.New("server.port is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gpt-4o-mini"
	}
	if cfg.AI.ConcurrentLimit <= 0 {
		cfg.AI.ConcurrentLimit = 8
	}
	if cfg.Jobs.Workers <= 0 {
		cfg.Jobs.Workers = 4
	}
	if cfg.Jobs.Queue <= 0 {
		cfg.Jobs.Queue = cfg.Jobs.Workers * 4
	}
	if cfg.Jobs.Timeout <= 0 {
		cfg.Jobs.Timeout = 10 * time.Minute
	}
	if cfg.Jobs.Retention <= 0 {
		cfg.Jobs.Retention = 24 * time.Hour
	}
	if cfg.Jobs.JanitorInterval <= 0 {
		cfg.Jobs.JanitorInterval = time.Hour
	}
}
