package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the coffee shop bot
type Config struct {
	Bot      BotConfig      `yaml:"bot"`
	Session  SessionConfig  `yaml:"session"`
	Redis    RedisConfig    `yaml:"redis"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Database DatabaseConfig `yaml:"database"`
	Menu     MenuConfig     `yaml:"menu"`
}

// BotConfig holds the Telegram credential and operator identities
type BotConfig struct {
	Token          string `yaml:"token"`
	OperatorChatID int64  `yaml:"operator_chat_id"`
	AdminUsername  string `yaml:"admin_username"`
}

// SessionConfig selects the session store backend
type SessionConfig struct {
	Backend string `yaml:"backend"`
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// RabbitMQConfig holds RabbitMQ connection configuration
type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// DatabaseConfig holds the optional PostgreSQL menu source configuration
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// MenuConfig points at an optional menu file overriding the embedded menu
type MenuConfig struct {
	File string `yaml:"file"`
}

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Load reads and validates configuration from a YAML file
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.Session.Backend == "" {
		config.Session.Backend = BackendMemory
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.Bot.Token == "" {
		return fmt.Errorf("bot.token is required")
	}

	switch c.Session.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Redis.Host == "" {
			return fmt.Errorf("redis.host is required when session.backend is redis")
		}
		if c.Redis.Port == 0 {
			return fmt.Errorf("redis.port is required when session.backend is redis")
		}
	default:
		return fmt.Errorf("session.backend must be %q or %q, got %q", BackendMemory, BackendRedis, c.Session.Backend)
	}

	if c.HasDatabase() && c.Database.Database == "" {
		return fmt.Errorf("database.database is required when database.host is set")
	}

	return nil
}

// HasRabbitMQ reports whether an AMQP notifier/consumer can be configured
func (c *Config) HasRabbitMQ() bool {
	return c.RabbitMQ.Host != ""
}

// HasDatabase reports whether the menu should be loaded from PostgreSQL
func (c *Config) HasDatabase() bool {
	return c.Database.Host != ""
}

// RedisAddr returns the Redis host:port address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// RabbitMQURL returns an AMQP connection URL
func (c *Config) RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/",
		c.RabbitMQ.User, c.RabbitMQ.Password, c.RabbitMQ.Host, c.RabbitMQ.Port)
}

// DatabaseURL returns a PostgreSQL connection URL
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Database)
}
