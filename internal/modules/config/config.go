package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v2"

	"bot_executor/pkg/logger"
)

const (
	configFilePathENV = "CONFIG_FILE"
	configDirENV      = "CONFIG_DIR"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	chatTelegramENV   = "TELEGRAM_CHAT_ID"
	databaseDSN       = "DATABASE_DSN"
	redisAddrENV      = "REDIS_ADDR"
	bybitBaseURLENV   = "BYBIT_BASE_URL"
)

// Config ...
type Config struct {
	DB string `yaml:"db_dsn"`

	Telegram struct {
		Token   string        `yaml:"token"`
		ChatID  int64         `yaml:"chat_id"`
		Timeout time.Duration `yaml:"timeout"`
		Queue   int           `yaml:"queue"`
	} `yaml:"telegram"`

	Redis struct {
		Addr     string        `yaml:"addr"` // пусто: без кэша свечей
		Password string        `yaml:"password"`
		DB       int           `yaml:"db"`
		KlineTTL time.Duration `yaml:"kline_ttl"`
	} `yaml:"redis"`

	Bybit struct {
		BaseURL    string        `yaml:"base_url"`
		RecvWindow int64         `yaml:"recv_window"` // мс
		Timeout    time.Duration `yaml:"timeout"`
		RatePerSec float64       `yaml:"rate_per_sec"`
		Burst      int           `yaml:"burst"`
		Category   string        `yaml:"category"`
	} `yaml:"bybit"`

	Cycle struct {
		Interval      time.Duration `yaml:"interval"`
		Timeout       time.Duration `yaml:"timeout"`
		Workers       int           `yaml:"workers"`
		KlineInterval string        `yaml:"kline_interval"`
		KlineLimit    int           `yaml:"kline_limit"`
		MinHistory    int           `yaml:"min_history"`
		OrderQty      string        `yaml:"order_qty"`
		Journal       bool          `yaml:"journal"`
	} `yaml:"cycle"`

	Service struct {
		Host      string `yaml:"host"`
		AdminPort int    `yaml:"admin_port"`
	} `yaml:"service"`

	Tracing struct {
		Enabled bool   `yaml:"enabled"`
		Host    string `yaml:"host"`
		Port    int    `yaml:"port"`
	} `yaml:"tracing"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func defaults() Config {
	var c Config

	c.Redis.KlineTTL = 30 * time.Second

	c.Bybit.BaseURL = "https://api.bybit.com"
	c.Bybit.RecvWindow = 5000
	c.Bybit.Timeout = 10 * time.Second
	c.Telegram.Timeout = 5 * time.Second
	c.Telegram.Queue = 64
	c.Bybit.RatePerSec = 10
	c.Bybit.Burst = 10
	c.Bybit.Category = "linear"

	c.Cycle.Interval = 5 * time.Minute
	c.Cycle.Timeout = 4 * time.Minute
	c.Cycle.Workers = 4
	c.Cycle.KlineInterval = "15m"
	c.Cycle.KlineLimit = 200
	c.Cycle.MinHistory = 200
	c.Cycle.OrderQty = "0.001"
	c.Cycle.Journal = true

	c.Service.AdminPort = 8080

	c.Tracing.Host = "localhost"
	c.Tracing.Port = 6831

	c.Log.Level = "info"
	return c
}

func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	config := defaults()

	path := configPath()
	file, err := os.Open(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Warn("config file %s not found, using defaults and env", path)
	case err != nil:
		return nil, fmt.Errorf("open config file: %w", err)
	default:
		defer func() {
			_ = file.Close()
		}()
		if err = yaml.NewDecoder(file).Decode(&config); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode config file %s: %w", path, err)
		}
	}

	applyEnv(&config)

	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func configPath() string {
	name := getenvDefault(configFilePathENV, "values_local.yaml")
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(getenvDefault(configDirENV, "configs"), name)
}

func applyEnv(c *Config) {
	c.DB = getenvDefault(databaseDSN, c.DB)
	c.Telegram.Token = getenvDefault(tokenTelegramENV, c.Telegram.Token)
	c.Telegram.ChatID = int64FromEnv(chatTelegramENV, c.Telegram.ChatID)
	c.Redis.Addr = getenvDefault(redisAddrENV, c.Redis.Addr)
	c.Bybit.BaseURL = getenvDefault(bybitBaseURLENV, c.Bybit.BaseURL)

	c.Cycle.Interval = durationFromEnv("CYCLE_INTERVAL", c.Cycle.Interval)
	c.Cycle.Workers = intFromEnv("CYCLE_WORKERS", c.Cycle.Workers)
	c.Cycle.OrderQty = getenvDefault("ORDER_QTY", c.Cycle.OrderQty)
	c.Cycle.Journal = boolFromEnv("CYCLE_JOURNAL", c.Cycle.Journal)

	c.Service.AdminPort = intFromEnv("ADMIN_PORT", c.Service.AdminPort)
	c.Tracing.Enabled = boolFromEnv("TRACING_ENABLED", c.Tracing.Enabled)
	c.Log.Level = getenvDefault("LOG_LEVEL", c.Log.Level)
}

func (c *Config) Validate() error {
	switch {
	case c.Cycle.Workers <= 0:
		return fmt.Errorf("config: cycle.workers must be positive, got %d", c.Cycle.Workers)
	case c.Cycle.Interval <= 0:
		return fmt.Errorf("config: cycle.interval must be positive")
	case c.Cycle.KlineLimit <= 0:
		return fmt.Errorf("config: cycle.kline_limit must be positive")
	case c.Cycle.KlineLimit < c.Cycle.MinHistory:
		return fmt.Errorf("config: cycle.kline_limit %d is below min_history %d", c.Cycle.KlineLimit, c.Cycle.MinHistory)
	case c.Bybit.RatePerSec <= 0:
		return fmt.Errorf("config: bybit.rate_per_sec must be positive")
	}
	if _, err := strconv.ParseFloat(c.Cycle.OrderQty, 64); err != nil {
		return fmt.Errorf("config: cycle.order_qty %q: %w", c.Cycle.OrderQty, err)
	}
	if c.Log.Level != "" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("config: log.level: %w", err)
		}
	}
	return nil
}

func (c *Config) AdminAddr() string {
	return fmt.Sprintf("%s:%d", c.Service.Host, c.Service.AdminPort)
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func int64FromEnv(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func boolFromEnv(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if v == "1" || v == "true" || v == "TRUE" {
			return true
		}
		if v == "0" || v == "false" || v == "FALSE" {
			return false
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationFromEnv(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
