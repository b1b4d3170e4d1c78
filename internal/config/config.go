package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Logger  LoggerConfig
	Content ContentConfig
	Session SessionConfig
	Redis   RedisConfig
	DB      DBConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	CORSOrigins  string
}

type LoggerConfig struct {
	Level string
	Env   string
}

// ContentConfig selects where the static documents come from.
// Source is one of "embedded", "dir" or "http"; Location is the directory
// or base URL for the latter two.
type ContentConfig struct {
	Source   string
	Location string
	Timeout  time.Duration
}

// SessionConfig selects the session snapshot store ("memory" or "redis").
type SessionConfig struct {
	Store string
	TTL   time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// DBConfig configures the SQLite attempt history. History is disabled when
// Path is empty.
type DBConfig struct {
	Path string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 20)
	v.SetDefault("server.write_timeout", 20)
	v.SetDefault("server.idle_timeout", 20)
	v.SetDefault("server.cors_origins", "*")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
	v.SetDefault("content.source", "embedded")
	v.SetDefault("content.location", "")
	v.SetDefault("content.timeout", 15)
	v.SetDefault("session.store", "memory")
	v.SetDefault("session.ttl", 24*60*60)
	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("db.path", "")
}

// LoadConfig reads config.yaml from the working directory or ./config and
// overlays environment variables (SERVER_PORT, CONTENT_SOURCE, REDIS_ADDRESS,
// DB_PATH, ...). A missing file is not an error; defaults apply.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: v.GetDuration("server.write_timeout") * time.Second,
			IdleTimeout:  v.GetDuration("server.idle_timeout") * time.Second,
			CORSOrigins:  v.GetString("server.cors_origins"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		Content: ContentConfig{
			Source:   strings.ToLower(v.GetString("content.source")),
			Location: v.GetString("content.location"),
			Timeout:  v.GetDuration("content.timeout") * time.Second,
		},
		Session: SessionConfig{
			Store: strings.ToLower(v.GetString("session.store")),
			TTL:   v.GetDuration("session.ttl") * time.Second,
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		DB: DBConfig{
			Path: v.GetString("db.path"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Content.Source {
	case "embedded":
	case "dir", "http":
		if c.Content.Location == "" {
			return fmt.Errorf("content.location is required for content source %q", c.Content.Source)
		}
	default:
		return fmt.Errorf("unsupported content source: %q", c.Content.Source)
	}

	switch c.Session.Store {
	case "memory":
	case "redis":
		if c.Redis.Address == "" {
			return fmt.Errorf("redis.address is required for the redis session store")
		}
	default:
		return fmt.Errorf("unsupported session store: %q", c.Session.Store)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}

// HistoryEnabled reports whether attempts are recorded.
func (c *Config) HistoryEnabled() bool {
	return c.DB.Path != ""
}
