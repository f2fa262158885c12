package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/barbershop-booking/internal/domain"
)

// EnvPrefix префикс переменных окружения с секретами (BARBER_DATABASE_PASSWORD и т.д.)
const EnvPrefix = "BARBER"

// Драйверы хранилища записей
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Storage   StorageConfig   `toml:"storage"`
	Database  DatabaseConfig  `toml:"database"`
	Redis     RedisConfig     `toml:"redis"`
	Business  BusinessConfig  `toml:"business"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
	Mail      MailConfig      `toml:"mail"`
	Admin     AdminConfig     `toml:"admin"`
	Services  []ServiceConfig `toml:"services"`
}

type ServerConfig struct {
	HTTPPort        int      `toml:"http_port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	IdleTimeout     int      `toml:"idle_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	CORSOrigins     []string `toml:"cors_origins"`
	TrustedProxies  []string `toml:"trusted_proxies"` // адреса или CIDR, чьим заголовкам с IP клиента верим
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type StorageConfig struct {
	Driver          string `toml:"driver"`
	CacheTTLSeconds int    `toml:"cache_ttl_seconds"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   "/" + c.DBName,
	}
	q := u.Query()
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Key      string `toml:"key"`
	PoolSize int    `toml:"pool_size"`
}

type BusinessConfig struct {
	Timezone             string `toml:"timezone"`
	SlotMinutes          int    `toml:"slot_minutes"`
	HorizonDays          int    `toml:"horizon_days"`
	RetentionDays        int    `toml:"retention_days"`
	PurgeIntervalMinutes int    `toml:"purge_interval_minutes"`
	ShopName             string `toml:"shop_name"`
	BaseURL              string `toml:"base_url"`
}

type RateLimitConfig struct {
	Backend              string  `toml:"backend"`
	Prefix               string  `toml:"prefix"`
	BookingLimit         int     `toml:"booking_limit"`
	BookingWindowMinutes int     `toml:"booking_window_minutes"`
	GlobalRPS            float64 `toml:"global_rps"`
	GlobalBurst          int     `toml:"global_burst"`
}

// BookingWindow окно лимита попыток записи
func (c RateLimitConfig) BookingWindow() time.Duration {
	return time.Duration(c.BookingWindowMinutes) * time.Minute
}

type MailConfig struct {
	Host           string `toml:"host"`
	Port           int    `toml:"port"`
	Username       string `toml:"username"`
	Password       string `toml:"password"`
	From           string `toml:"from"`
	FromName       string `toml:"from_name"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Enabled почта включена, если заданы хост и отправитель
func (c MailConfig) Enabled() bool {
	return c.Host != "" && c.From != ""
}

type AdminConfig struct {
	PasswordHash string `toml:"password_hash"`
}

// ServiceConfig услуга каталога из [[services]]
type ServiceConfig struct {
	ID       int64   `toml:"id"`
	Name     string  `toml:"name"`
	Price    float64 `toml:"price"`
	Duration int     `toml:"duration"`
}

// secrets значения из окружения, перекрывают файл, если заданы
type secrets struct {
	DatabasePassword  string `envconfig:"DATABASE_PASSWORD"`
	RedisPassword     string `envconfig:"REDIS_PASSWORD"`
	MailPassword      string `envconfig:"MAIL_PASSWORD"`
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH"`
}

// Default конфигурация без файла: память, Europe/Berlin, 30-минутные слоты
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "barbershop-booking",
		},
		Storage: StorageConfig{
			Driver: StorageMemory,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
			Key:  "appointments",
		},
		Business: BusinessConfig{
			Timezone:             domain.DefaultTimezone,
			SlotMinutes:          domain.DefaultSlotMinutes,
			HorizonDays:          domain.DefaultHorizonDays,
			RetentionDays:        domain.DefaultRetentionDays,
			PurgeIntervalMinutes: 60,
		},
		RateLimit: RateLimitConfig{
			Backend:              StorageMemory,
			Prefix:               "rl:booking",
			BookingLimit:         3,
			BookingWindowMinutes: 15,
		},
		Mail: MailConfig{
			Port:           587,
			TimeoutSeconds: 30,
		},
	}
}

// Load читает TOML файл поверх значений по умолчанию и применяет секреты из окружения
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	return finish(cfg)
}

// Parse как Load, но из строки
func Parse(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var s secrets
	if err := envconfig.Process(EnvPrefix, &s); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	if s.DatabasePassword != "" {
		c.Database.Password = s.DatabasePassword
	}
	if s.RedisPassword != "" {
		c.Redis.Password = s.RedisPassword
	}
	if s.MailPassword != "" {
		c.Mail.Password = s.MailPassword
	}
	if s.AdminPasswordHash != "" {
		c.Admin.PasswordHash = s.AdminPasswordHash
	}
	return nil
}

// Validate отклоняет невозможные значения. Возвращает все найденные проблемы разом.
func (c *Config) Validate() error {
	var problems []string
	add := func(format string, v ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, v...))
	}

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		add("server.http_port must be in 1..65535, got %d", c.Server.HTTPPort)
	}

	switch c.Storage.Driver {
	case StorageMemory, StoragePostgres, StorageRedis:
	default:
		add("storage.driver must be one of memory|postgres|redis, got %q", c.Storage.Driver)
	}
	if c.Storage.CacheTTLSeconds < 0 {
		add("storage.cache_ttl_seconds must not be negative")
	}

	switch c.RateLimit.Backend {
	case StorageMemory, StorageRedis:
	default:
		add("ratelimit.backend must be memory or redis, got %q", c.RateLimit.Backend)
	}
	if c.RateLimit.BookingLimit <= 0 {
		add("ratelimit.booking_limit must be positive")
	}
	if c.RateLimit.BookingWindowMinutes <= 0 {
		add("ratelimit.booking_window_minutes must be positive")
	}
	if c.RateLimit.GlobalRPS < 0 {
		add("ratelimit.global_rps must not be negative")
	}

	if c.Business.SlotMinutes <= 0 || (24*60)%c.Business.SlotMinutes != 0 {
		add("business.slot_minutes must divide a day, got %d", c.Business.SlotMinutes)
	}
	if c.Business.HorizonDays < 0 {
		add("business.horizon_days must not be negative")
	}
	if c.Business.RetentionDays < 0 {
		add("business.retention_days must not be negative")
	}
	if strings.TrimSpace(c.Business.Timezone) == "" {
		add("business.timezone is required")
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		add("metrics.path must start with /")
	}

	seen := make(map[int64]bool, len(c.Services))
	for _, s := range c.Services {
		if seen[s.ID] {
			add("services: duplicate id %d", s.ID)
		}
		seen[s.ID] = true
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// CatalogServices услуги из [[services]] в доменном виде. Пустой список означает каталог по умолчанию.
func (c *Config) CatalogServices() []domain.Service {
	if len(c.Services) == 0 {
		return nil
	}
	out := make([]domain.Service, 0, len(c.Services))
	for _, s := range c.Services {
		duration := s.Duration
		if duration == 0 {
			duration = c.Business.SlotMinutes
		}
		out = append(out, domain.Service{
			ID:              s.ID,
			Name:            s.Name,
			Price:           s.Price,
			DurationMinutes: duration,
		})
	}
	return out
}
