// Package config loads server settings from an optional YAML file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/mcoot/fourinarow/internal/model"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Config holds all server settings
type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTP     HTTP    `yaml:"http"`
	Storage  Storage `yaml:"storage"`
	Redis    Redis   `yaml:"redis"`
	Engine   Engine  `yaml:"engine"`
	MoveLog  MoveLog `yaml:"move-log"`
}

type HTTP struct {
	Host            string        `yaml:"host" env:"HTTP_HOST" env-default:""`
	Port            int           `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read-timeout" env:"HTTP_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write-timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown-timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"30s"`
}

type Storage struct {
	Type string `yaml:"type" env:"STORAGE_TYPE" env-default:"memory"`
}

type Redis struct {
	URL          string        `yaml:"url" env:"REDIS_URL" env-default:"redis://localhost:6379"`
	PoolSize     int           `yaml:"pool-size" env:"REDIS_POOL_SIZE" env-default:"10"`
	MinIdleConns int           `yaml:"min-idle-conns" env:"REDIS_MIN_IDLE_CONNS" env-default:"2"`
	GameTTL      time.Duration `yaml:"game-ttl" env:"REDIS_GAME_TTL" env-default:"24h"`
}

// Engine holds the search defaults applied to seats that do not set their own
type Engine struct {
	XDepth    int    `yaml:"x-depth" env:"ENGINE_X_DEPTH" env-default:"2"`
	ODepth    int    `yaml:"o-depth" env:"ENGINE_O_DEPTH" env-default:"4"`
	Adjacency string `yaml:"adjacency" env:"ENGINE_ADJACENCY" env-default:"same-player"`
	// MaxDepth caps depths requested over HTTP; zero disables the cap
	MaxDepth int `yaml:"max-depth" env:"ENGINE_MAX_DEPTH" env-default:"6"`
}

type MoveLog struct {
	// Dir defaults to the XDG data directory when empty
	Dir      string `yaml:"dir" env:"MOVE_LOG_DIR"`
	Disabled bool   `yaml:"disabled" env:"MOVE_LOG_DISABLED" env-default:"false"`
}

// Load reads path (if non-empty) and then applies environment overrides
func Load(path string) (*Config, error) {
	cfg := &Config{}

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad is Load that panics on error
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Validate checks values cleanenv cannot
func (c *Config) Validate() error {
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.Storage.Type {
	case StorageTypeMemory, StorageTypeRedis:
	default:
		return fmt.Errorf("invalid storage type %q: must be %q or %q", c.Storage.Type, StorageTypeMemory, StorageTypeRedis)
	}
	if c.Engine.XDepth < 0 || c.Engine.ODepth < 0 || c.Engine.MaxDepth < 0 {
		return fmt.Errorf("%w: depths must not be negative", model.ErrInvalidDepth)
	}
	if _, err := model.ParseAdjacencyRule(c.Engine.Adjacency); err != nil {
		return err
	}
	return nil
}

// AdjacencyRule returns the parsed engine adjacency rule
func (c *Config) AdjacencyRule() model.AdjacencyRule {
	rule, err := model.ParseAdjacencyRule(c.Engine.Adjacency)
	if err != nil {
		return model.DefaultAdjacencyRule
	}
	return rule
}

// Level returns the parsed log level
func (c *Config) Level() slog.Level {
	level, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLogLevel accepts debug, info, warn and error
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// Usage describes the environment variables understood by Load
func Usage() string {
	var cfg Config
	desc, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return desc
}

// PathFromEnv returns the config file named by CONFIG_PATH, if it exists
func PathFromEnv() (string, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		return "", nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("config file %s does not exist", path)
	}
	return path, nil
}
