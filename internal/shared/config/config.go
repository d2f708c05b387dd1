package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Env      string         `yaml:"env"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Auth     AuthConfig     `yaml:"auth"`
	Leave    LeaveConfig    `yaml:"leave"`
}

type ServerConfig struct {
	Port         string        `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

type DatabaseConfig struct {
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	Name       string `yaml:"name"`
	SSLMode    string `yaml:"ssl_mode"`
	MaxRetries int    `yaml:"max_retries"`
}

type RedisConfig struct {
	Addr string `yaml:"addr"`
}

type KafkaConfig struct {
	Broker        string        `yaml:"broker"`
	ConsumerGroup string        `yaml:"consumer_group"`
	PollInterval  time.Duration `yaml:"poll_interval"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

type LeaveConfig struct {
	// MaxBalanceChange bounds the magnitude of a single ledger change, in days.
	MaxBalanceChange float64 `yaml:"max_balance_change"`
}

// Default returns the configuration used when neither a file nor the
// environment sets a value.
func Default() Config {
	return Config{
		Env: "development",
		Server: ServerConfig{
			Port:         "3000",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			Host:       "localhost",
			Port:       "5432",
			SSLMode:    "disable",
			MaxRetries: 5,
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Kafka: KafkaConfig{
			ConsumerGroup: "go-leave-membership",
			PollInterval:  3 * time.Second,
		},
		Leave: LeaveConfig{MaxBalanceChange: 365},
	}
}

// Load builds the configuration from defaults, the YAML file named by
// CONFIG_PATH (if any) and finally environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Env, "APP_ENV")
	setString(&c.Server.Port, "PORT")
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.Name, "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSLMODE")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Kafka.Broker, "KAFKA_BROKER")
	setString(&c.Kafka.ConsumerGroup, "KAFKA_CONSUMER_GROUP")
	setString(&c.Auth.JWTSecret, "JWT_SECRET")

	if v := os.Getenv("LEAVE_MAX_BALANCE_CHANGE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: LEAVE_MAX_BALANCE_CHANGE: %w", err)
		}
		c.Leave.MaxBalanceChange = f
	}
	if v := os.Getenv("KAFKA_POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: KAFKA_POLL_INTERVAL: %w", err)
		}
		c.Kafka.PollInterval = d
	}
	return nil
}

func (c *Config) validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("config: server.port must be set")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("config: database.name must be set")
	}
	if c.Database.User == "" {
		return fmt.Errorf("config: database.user must be set")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: auth.jwt_secret must be set")
	}
	if c.Database.MaxRetries <= 0 {
		c.Database.MaxRetries = 1
	}
	if c.Leave.MaxBalanceChange <= 0 {
		return fmt.Errorf("config: leave.max_balance_change must be positive")
	}
	return nil
}

// DSN returns the Postgres connection string understood by gorm.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

// URL returns the Postgres URL form used by golang-migrate.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// IsProduction reports whether production logging should be used.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
