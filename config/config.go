package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Ticketing TicketingConfig
	Log       LogConfig
}

type ServerConfig struct {
	Addr    string `envconfig:"SERVER_ADDR" default:":8080"`
	GinMode string `envconfig:"GIN_MODE" default:"release"`
}

type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName   string `envconfig:"DB_NAME" default:"postgres"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	Migrate  bool   `envconfig:"DB_MIGRATE" default:"true"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// StoreBackend 票券儲存後端
type StoreBackend string

const (
	StoreBackendPostgres StoreBackend = "postgres"
	StoreBackendRedis    StoreBackend = "redis"
	StoreBackendMemory   StoreBackend = "memory"
)

// QueueBackend 稽核事件佇列後端
type QueueBackend string

const (
	QueueBackendMemory QueueBackend = "memory"
	QueueBackendRedis  QueueBackend = "redis"
)

type TicketingConfig struct {
	// CodeSecret 兌換碼金鑰，不可為空
	CodeSecret        string        `envconfig:"CODE_SECRET" required:"true"`
	IssueMaxAttempts  int           `envconfig:"ISSUE_MAX_ATTEMPTS" default:"5"`
	DefaultMaxTickets int           `envconfig:"DEFAULT_MAX_TICKETS" default:"5"`
	StoreBackend      StoreBackend  `envconfig:"STORE_BACKEND" default:"postgres"`
	AuditQueue        QueueBackend  `envconfig:"AUDIT_QUEUE" default:"memory"`
	AuditBufferSize   int           `envconfig:"AUDIT_BUFFER_SIZE" default:"256"`
	LockTTL           time.Duration `envconfig:"ISSUER_LOCK_TTL" default:"5s"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

var AppConfig *Config

// LoadConfig 讀取 .env (若存在) 與環境變數
func LoadConfig() (*Config, error) {
	// .env 是選用的，找不到時直接使用環境變數
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	AppConfig = &cfg
	return AppConfig, nil
}

func (c *Config) Validate() error {
	switch c.Ticketing.StoreBackend {
	case StoreBackendPostgres, StoreBackendRedis, StoreBackendMemory:
	default:
		return fmt.Errorf("invalid STORE_BACKEND %q", c.Ticketing.StoreBackend)
	}
	switch c.Ticketing.AuditQueue {
	case QueueBackendMemory, QueueBackendRedis:
	default:
		return fmt.Errorf("invalid AUDIT_QUEUE %q", c.Ticketing.AuditQueue)
	}
	if c.Ticketing.CodeSecret == "" {
		return fmt.Errorf("CODE_SECRET must not be empty")
	}
	if c.Ticketing.IssueMaxAttempts < 1 {
		return fmt.Errorf("ISSUE_MAX_ATTEMPTS must be at least 1")
	}
	if c.Ticketing.DefaultMaxTickets < 1 {
		return fmt.Errorf("DEFAULT_MAX_TICKETS must be at least 1")
	}
	if c.Ticketing.AuditBufferSize < 0 {
		return fmt.Errorf("AUDIT_BUFFER_SIZE must not be negative")
	}
	// 沒有過期時間的鎖在程序崩潰後永遠不會釋放
	if c.Ticketing.LockTTL <= 0 {
		return fmt.Errorf("ISSUER_LOCK_TTL must be positive")
	}
	return nil
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // 測試 DB 用 5433 port
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
		Migrate:  true,
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // 測試 Redis 用 6380 port
		Password: "",
		DB:       1,
	}

	return &Config{
		Server:   ServerConfig{Addr: ":0", GinMode: "test"},
		Database: *testConfig,
		Redis:    testRedisConfig,
		Ticketing: TicketingConfig{
			CodeSecret:        "test-secret",
			IssueMaxAttempts:  5,
			DefaultMaxTickets: 5,
			StoreBackend:      StoreBackendMemory,
			AuditQueue:        QueueBackendMemory,
			AuditBufferSize:   64,
			LockTTL:           5 * time.Second,
		},
		Log: LogConfig{Level: "debug"},
	}
}
