package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Booking       BookingConfig       `toml:"booking"`
	Demo          DemoConfig          `toml:"demo"`
	Redis         RedisConfig         `toml:"redis"`
	RateLimit     RateLimitConfig     `toml:"rate_limit"`
	Notifications NotificationsConfig `toml:"notifications"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig параметры бронирования
type BookingConfig struct {
	// Часовой пояс бизнеса, в нем вычисляется "сегодня"
	Timezone string `toml:"timezone"`
}

// Location возвращает часовой пояс из конфигурации
func (b BookingConfig) Location() (*time.Location, error) {
	if b.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(b.Timezone)
}

// DemoConfig демо-режим: данные в памяти вместо PostgreSQL
type DemoConfig struct {
	Enabled bool `toml:"enabled"`
	Seed    bool `toml:"seed"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// RateLimitConfig лимит запросов к публичным эндпоинтам (окно в секундах)
// TrustForwardedFor включать только за своим прокси: иначе X-Forwarded-For задает клиент
type RateLimitConfig struct {
	Enabled           bool `toml:"enabled"`
	Requests          int  `toml:"requests"`
	WindowSeconds     int  `toml:"window_seconds"`
	TrustForwardedFor bool `toml:"trust_forwarded_for"`
}

// Window длительность окна лимита
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// NotificationsConfig провайдер уведомлений: log, webhook или kafka
type NotificationsConfig struct {
	Provider string        `toml:"provider"`
	Webhook  WebhookConfig `toml:"webhook"`
	Kafka    KafkaConfig   `toml:"kafka"`
	Rate     RateConfig    `toml:"rate"`
}

type WebhookConfig struct {
	URL     string `toml:"url"`
	Token   string `toml:"token"`
	Timeout int    `toml:"timeout"` // секунды
}

type KafkaConfig struct {
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

// RateConfig ограничение частоты отправки уведомлений провайдеру
type RateConfig struct {
	PerSecond float64 `toml:"per_second"`
	Burst     int     `toml:"burst"`
}

const (
	ProviderLog     = "log"
	ProviderWebhook = "webhook"
	ProviderKafka   = "kafka"
)

// Load загружает конфигурацию из TOML файла
// Перед чтением подгружается .env (если есть), секреты переопределяются переменными окружения
func Load(path string) (*Config, error) {
	// .env опционален
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse разбирает конфигурацию из строки TOML (без .env)
func Parse(data string) (*Config, error) {
	cfg := defaults()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "smb_booking_service",
		},
		Booking: BookingConfig{
			Timezone: "UTC",
		},
		RateLimit: RateLimitConfig{
			Requests:      60,
			WindowSeconds: 60,
		},
		Notifications: NotificationsConfig{
			Provider: ProviderLog,
			Webhook: WebhookConfig{
				Timeout: 5,
			},
			Rate: RateConfig{
				PerSecond: 10,
				Burst:     5,
			},
		},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("NOTIFY_WEBHOOK_TOKEN"); v != "" {
		cfg.Notifications.Webhook.Token = v
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid server.http_port: %d", c.Server.HTTPPort)
	}

	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("invalid booking.timezone %q: %w", c.Booking.Timezone, err)
	}

	if c.RateLimit.Enabled {
		if !c.Redis.Enabled {
			return errors.New("rate_limit requires redis.enabled")
		}
		if c.RateLimit.Requests <= 0 || c.RateLimit.WindowSeconds <= 0 {
			return errors.New("rate_limit.requests and rate_limit.window_seconds must be positive")
		}
	}

	switch strings.ToLower(c.Notifications.Provider) {
	case ProviderLog:
	case ProviderWebhook:
		if c.Notifications.Webhook.URL == "" {
			return errors.New("notifications.webhook.url is required for webhook provider")
		}
	case ProviderKafka:
		if len(c.Notifications.Kafka.Brokers) == 0 || c.Notifications.Kafka.Topic == "" {
			return errors.New("notifications.kafka.brokers and notifications.kafka.topic are required for kafka provider")
		}
	default:
		return fmt.Errorf("unknown notifications.provider %q", c.Notifications.Provider)
	}

	return nil
}
