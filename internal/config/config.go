package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Log struct {
		Level       string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Environment string `yaml:"environment" default:"production"`
	} `yaml:"log"`
	DataSource struct {
		BaseURL      string `yaml:"base_url" default:"https://api.dexscreener.com" validate:"required,url"`
		ChainID      string `yaml:"chain_id" default:"solana" validate:"required"`
		TokenAddress string `yaml:"token_address" validate:"required"`
	} `yaml:"data_source"`
	Analysis struct {
		ShortWindow     int    `yaml:"short_window" default:"10" validate:"gt=0"`
		LongWindow      int    `yaml:"long_window" default:"30" validate:"gt=0"`
		LookBack        int    `yaml:"look_back" default:"5" validate:"gt=0"`
		HistoryPoints   int    `yaml:"history_points" default:"1000" validate:"gt=0"`
		Fallback        string `yaml:"fallback" default:"simulate" validate:"oneof=simulate none"`
		SimulatedPoints int    `yaml:"simulated_points" default:"60" validate:"gt=1"`
	} `yaml:"analysis"`
	Schedule struct {
		PollCron     string `yaml:"poll_cron" default:"0 */5 * * * *"`
		AnalysisCron string `yaml:"analysis_cron" default:"0 0 * * * *"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id" validate:"required_with=BotToken"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path" default:"data/nex_sentinel.db"`
	} `yaml:"database"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Proxy string `yaml:"proxy"`
}

var validate = validator.New()

// Load reads config from a YAML file, then applies .env and environment
// variable overrides and fills defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		cfg.Log.Environment = v
	}
	if v := os.Getenv("DEXSCREENER_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("CHAIN_ID"); v != "" {
		cfg.DataSource.ChainID = v
	}
	if v := os.Getenv("TOKEN_ADDRESS"); v != "" {
		cfg.DataSource.TokenAddress = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	if v := os.Getenv("CRON_ANALYSIS"); v != "" {
		cfg.Schedule.AnalysisCron = v
	}
	setIntFromEnv("SHORT_WINDOW", &cfg.Analysis.ShortWindow)
	setIntFromEnv("LONG_WINDOW", &cfg.Analysis.LongWindow)
	setIntFromEnv("LOOK_BACK", &cfg.Analysis.LookBack)

	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	return cfg, nil
}

// Validate checks field constraints and that the short window is below the long one.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s: failed %q check", fe.Namespace(), fe.Tag())
		}
		return err
	}
	if c.Analysis.ShortWindow >= c.Analysis.LongWindow {
		return fmt.Errorf("analysis.short_window (%d) must be less than analysis.long_window (%d)",
			c.Analysis.ShortWindow, c.Analysis.LongWindow)
	}
	if c.SimulateHistory() && c.Analysis.SimulatedPoints < c.MinPoints() {
		return fmt.Errorf("analysis.simulated_points (%d) must be at least %d to cover the long window and look-back",
			c.Analysis.SimulatedPoints, c.MinPoints())
	}
	return nil
}

// MinPoints is the shortest series that yields both a crossover scan and a forecast.
func (c *Config) MinPoints() int {
	return max(c.Analysis.LongWindow, c.Analysis.LookBack+1)
}

// SimulateHistory reports whether a short recorded history falls back to a
// series interpolated from the 24h change.
func (c *Config) SimulateHistory() bool {
	return c.Analysis.Fallback == "simulate"
}

// TelegramEnabled reports whether notifications are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

func setIntFromEnv(key string, dst *int) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
	}
}
