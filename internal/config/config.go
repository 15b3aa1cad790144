package config

import (
	"errors"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token    string `yaml:"token"`
	Mode     string `yaml:"mode"` // polling | webhook (future)
	Username string `yaml:"username"`
	Workers  int    `yaml:"workers"` // polling workers
}

type LogConfig struct {
	Level  string `yaml:"level"`  // trace|debug|info|warn|error
	Format string `yaml:"format"` // json|console
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type FootballAPIConfig struct {
	BaseURL           string `yaml:"base_url"`
	Key               string `yaml:"key"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
	Season            int    `yaml:"season"`
}

type TranslateConfig struct {
	BaseURL string `yaml:"base_url"`
	Key     string `yaml:"key"`
}

type NotifierConfig struct {
	// DigestInterval must not exceed the digest firing window (10 minutes)
	// or digests can be delivered twice.
	DigestInterval   time.Duration `yaml:"digest_interval"`
	ApproachInterval time.Duration `yaml:"approach_interval"`
	PlayedInterval   time.Duration `yaml:"played_interval"`
	ExcludeStatuses  []string      `yaml:"exclude_statuses"`
}

type OpsConfig struct {
	Port int `yaml:"port"` // /healthz and /metrics
}

type Config struct {
	Bot       BotConfig         `yaml:"bot"`
	Log       LogConfig         `yaml:"log"`
	Database  DatabaseConfig    `yaml:"database"`
	Redis     RedisConfig       `yaml:"redis"`
	Football  FootballAPIConfig `yaml:"football"`
	Translate TranslateConfig   `yaml:"translate"`
	Notifier  NotifierConfig    `yaml:"notifier"`
	Ops       OpsConfig         `yaml:"ops"`
	Runtime   RuntimeConfig     `yaml:"-"`
}

// LoadConfig reads the YAML file, applies defaults and validates the few
// required fields.
func LoadConfig(path string, dev bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Defaults
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Bot.Mode == "" {
		cfg.Bot.Mode = "polling"
	}
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 5
	}
	if cfg.Redis.TTL <= 0 {
		cfg.Redis.TTL = time.Hour
	}
	if cfg.Football.BaseURL == "" {
		cfg.Football.BaseURL = "https://v3.football.api-sports.io"
	}
	if cfg.Football.RequestsPerMinute <= 0 {
		cfg.Football.RequestsPerMinute = 30
	}
	if cfg.Notifier.DigestInterval <= 0 {
		cfg.Notifier.DigestInterval = 10 * time.Minute
	}
	if cfg.Notifier.ApproachInterval <= 0 {
		cfg.Notifier.ApproachInterval = 10 * time.Minute
	}
	if cfg.Notifier.PlayedInterval <= 0 {
		cfg.Notifier.PlayedInterval = 5 * time.Minute
	}
	if len(cfg.Notifier.ExcludeStatuses) == 0 {
		cfg.Notifier.ExcludeStatuses = []string{"Match Postponed", "Match Cancelled"}
	}
	if cfg.Ops.Port == 0 {
		cfg.Ops.Port = 9090
	}

	// Minimal validation
	if cfg.Bot.Token == "" {
		return nil, errors.New("bot.token is required")
	}
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
