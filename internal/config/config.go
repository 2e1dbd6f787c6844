package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	API struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"api"`
	Profiles struct {
		Path string `yaml:"path"`
	} `yaml:"profiles"`
	Schedule struct {
		CycleIntervalHours int      `yaml:"cycle_interval_hours"`
		DailyProjects      []string `yaml:"daily_projects"`
	} `yaml:"schedule"`
	Pacing struct {
		QuestDelayMinMs   int `yaml:"quest_delay_min_ms"`
		QuestDelayMaxMs   int `yaml:"quest_delay_max_ms"`
		AccountDelayMinMs int `yaml:"account_delay_min_ms"`
		AccountDelayMaxMs int `yaml:"account_delay_max_ms"`
	} `yaml:"pacing"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load() // optional
	cfg := defaultConfig()
	if b, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	applyEnvOverrides(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultConfig() Config {
	var cfg Config
	cfg.API.BaseURL = "https://uat-api.sunkong.cloud/v1"
	cfg.API.TimeoutSeconds = 30
	cfg.Profiles.Path = "profiles.yaml"
	cfg.Schedule.CycleIntervalHours = 24
	cfg.Schedule.DailyProjects = []string{"sunkong"}
	cfg.Pacing.QuestDelayMinMs = 1500
	cfg.Pacing.QuestDelayMaxMs = 2500
	cfg.Pacing.AccountDelayMinMs = 4000
	cfg.Pacing.AccountDelayMaxMs = 6000
	cfg.Database.Path = "sunkongbot.db"
	cfg.Logging.Level = "info"
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SUNKONG_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("SUNKONG_PROFILES_PATH"); v != "" {
		cfg.Profiles.Path = v
	}
	if v := os.Getenv("SUNKONG_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("SUNKONG_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SUNKONG_API_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.API.TimeoutSeconds = n
		}
	}
}

func validate(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if cfg.API.TimeoutSeconds <= 0 {
		return errors.New("api.timeout_seconds must be > 0")
	}
	if cfg.Profiles.Path == "" {
		return errors.New("profiles.path is required")
	}
	if cfg.Schedule.CycleIntervalHours <= 0 {
		return errors.New("schedule.cycle_interval_hours must be > 0")
	}
	if cfg.Pacing.QuestDelayMaxMs < cfg.Pacing.QuestDelayMinMs {
		return errors.New("pacing.quest_delay_max_ms must be >= pacing.quest_delay_min_ms")
	}
	if cfg.Pacing.AccountDelayMaxMs < cfg.Pacing.AccountDelayMinMs {
		return errors.New("pacing.account_delay_max_ms must be >= pacing.account_delay_min_ms")
	}
	return nil
}

// RequestTimeout is the bounded per-request deadline for API calls.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// CycleInterval is the pause between full scheduler cycles.
func (c *Config) CycleInterval() time.Duration {
	return time.Duration(c.Schedule.CycleIntervalHours) * time.Hour
}
