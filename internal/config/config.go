package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
	"github.com/ddduartediego/BelloProject-sub000/pkg/types"
)

// Драйверы хранилища
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Режимы блокировки специалиста
const (
	LockLocal = "local"
	LockRedis = "redis"
)

// ErrInvalidConfig возвращается, когда значения конфигурации некорректны
var ErrInvalidConfig = errors.New("invalid config")

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Storage    StorageConfig    `toml:"storage"`
	Database   DatabaseConfig   `toml:"database"`
	Redis      RedisConfig      `toml:"redis"`
	Locking    LockingConfig    `toml:"locking"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Scheduling SchedulingConfig `toml:"scheduling"`
	Catalog    CatalogSeed      `toml:"catalog"`
}

// ServerConfig HTTP сервер, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// StorageConfig выбор хранилища: postgres или memory (локальный запуск)
type StorageConfig struct {
	Driver string `toml:"driver"`
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// LockingConfig блокировка специалиста на время фиксации записи
type LockingConfig struct {
	Mode            string `toml:"mode"`              // local | redis
	WaitTimeoutMs   int    `toml:"wait_timeout_ms"`   // 0 - ждать, пока жив запрос
	TTLSeconds      int    `toml:"ttl_seconds"`       // только redis
	RetryIntervalMs int    `toml:"retry_interval_ms"` // только redis
}

func (c LockingConfig) WaitTimeout() time.Duration {
	return time.Duration(c.WaitTimeoutMs) * time.Millisecond
}

func (c LockingConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

func (c LockingConfig) RetryInterval() time.Duration {
	return time.Duration(c.RetryIntervalMs) * time.Millisecond
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

// SchedulingConfig правила календаря по умолчанию и часовой пояс салона
type SchedulingConfig struct {
	Timezone                string `toml:"timezone"`
	GranularityMinutes      int    `toml:"granularity_minutes"`
	ProximityMinutes        int    `toml:"proximity_minutes"`
	SuggestionBufferMinutes int    `toml:"suggestion_buffer_minutes"`
	BusinessOpen            string `toml:"business_open"`
	BusinessClose           string `toml:"business_close"`
}

// Location часовой пояс, в котором трактуются даты запросов
func (c SchedulingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Rules правила по умолчанию, когда у арендатора нет своих
func (c SchedulingConfig) Rules() domain.CalendarRules {
	rules := domain.CalendarRules{
		GranularityMinutes:      c.GranularityMinutes,
		ProximityMinutes:        c.ProximityMinutes,
		SuggestionBufferMinutes: c.SuggestionBufferMinutes,
		BusinessOpen:            types.TimeString(c.BusinessOpen),
		BusinessClose:           types.TimeString(c.BusinessClose),
	}
	// Неизвестный пояс отсекается в Validate, здесь он просто не выставляется
	if loc, err := c.Location(); err == nil {
		rules.Location = loc
	}
	return rules
}

// CatalogSeed справочник для storage.driver = "memory".
// В postgres справочник читается из таблиц professionals и services
type CatalogSeed struct {
	Professionals []SeedProfessional `toml:"professionals"`
	Services      []SeedService      `toml:"services"`
}

type SeedProfessional struct {
	ID       int64  `toml:"id"`
	TenantID int64  `toml:"tenant_id"`
	Name     string `toml:"name"`
}

type SeedService struct {
	ID              int64  `toml:"id"`
	TenantID        int64  `toml:"tenant_id"`
	Name            string `toml:"name"`
	DurationMinutes int    `toml:"duration_minutes"`
}

// Default значения, которые действуют, если их нет в файле
func Default() *Config {
	rules := domain.DefaultCalendarRules()

	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Storage: StorageConfig{Driver: StoragePostgres},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "bello",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Locking: LockingConfig{
			Mode:            LockLocal,
			WaitTimeoutMs:   2000,
			TTLSeconds:      10,
			RetryIntervalMs: 25,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "bello-scheduling",
		},
		Scheduling: SchedulingConfig{
			Timezone:                "UTC",
			GranularityMinutes:      rules.GranularityMinutes,
			ProximityMinutes:        rules.ProximityMinutes,
			SuggestionBufferMinutes: rules.SuggestionBufferMinutes,
			BusinessOpen:            rules.BusinessOpen.String(),
			BusinessClose:           rules.BusinessClose.String(),
		},
	}
}

// Load читает config.toml, затем .env (если есть) и переменные окружения.
// Переменные окружения перекрывают значения из файла
func Load(path string) (*Config, error) {
	return load(path, ".env")
}

func load(path, envFile string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("config: load %s: %w", envFile, err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv секреты и часто меняемые параметры из окружения
func (c *Config) applyEnv() {
	overrides := []struct {
		name  string
		field *string
	}{
		{"DB_HOST", &c.Database.Host},
		{"DB_PASSWORD", &c.Database.Password},
		{"REDIS_ADDR", &c.Redis.Addr},
		{"REDIS_PASSWORD", &c.Redis.Password},
		{"LOG_LEVEL", &c.Logs.Level},
		{"STORAGE_DRIVER", &c.Storage.Driver},
		{"LOCK_MODE", &c.Locking.Mode},
	}

	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.name); ok && v != "" {
			*o.field = v
		}
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port %d is out of range", c.Server.HTTPPort))
	}

	switch c.Storage.Driver {
	case StorageMemory:
	case StoragePostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			problems = append(problems, "database.host and database.dbname are required for postgres storage")
		}
	default:
		problems = append(problems, fmt.Sprintf("storage.driver must be %q or %q, got %q", StorageMemory, StoragePostgres, c.Storage.Driver))
	}

	switch c.Locking.Mode {
	case LockLocal:
	case LockRedis:
		if c.Redis.Addr == "" {
			problems = append(problems, "redis.addr is required for redis locking")
		}
	default:
		problems = append(problems, fmt.Sprintf("locking.mode must be %q or %q, got %q", LockLocal, LockRedis, c.Locking.Mode))
	}
	if c.Locking.WaitTimeoutMs < 0 {
		problems = append(problems, "locking.wait_timeout_ms must not be negative")
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		problems = append(problems, fmt.Sprintf("metrics.path %q must start with /", c.Metrics.Path))
	}

	if _, err := c.Scheduling.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("scheduling.timezone: %v", err))
	}
	rules := c.Scheduling.Rules()
	if err := rules.Validate(); err != nil {
		problems = append(problems, fmt.Sprintf("scheduling: %v", err))
	}

	for _, svc := range c.Catalog.Services {
		if svc.DurationMinutes <= 0 {
			problems = append(problems, fmt.Sprintf("catalog service %d: duration_minutes must be positive", svc.ID))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
