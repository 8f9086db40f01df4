// Package config loads application configuration from an optional YAML file
// and environment variables.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable Load reads.
const EnvPrefix = "PROFESSIONALAIZE_"

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Config holds the validated application configuration.
type Config struct {
	ListenAddr string
	DBPath     string
	// SecretKey is the 32-byte AES-256 key for encrypting stored values, or
	// nil when values are stored unencrypted.
	SecretKey []byte

	Store         string
	RedisAddr     string
	RedisPassword string
	RedisPrefix   string

	GeminiBaseURL     string
	GeminiModel       string
	GenerationTimeout time.Duration

	AMQPURL   string
	AMQPQueue string

	AllowedOrigins []string
	LogLevel       slog.Level
}

// AMQPEnabled reports whether the RabbitMQ RPC surface should be started.
func (c *Config) AMQPEnabled() bool {
	return c.AMQPURL != ""
}

// fileConfig is the YAML file shape. Every field may also be set through the
// matching PROFESSIONALAIZE_ environment variable, which wins.
type fileConfig struct {
	ListenAddr        string   `yaml:"listenAddr"`
	DBPath            string   `yaml:"dbPath"`
	SecretKey         string   `yaml:"secretKey"`
	Store             string   `yaml:"store"`
	RedisAddr         string   `yaml:"redisAddr"`
	RedisPassword     string   `yaml:"redisPassword"`
	RedisPrefix       string   `yaml:"redisPrefix"`
	GeminiBaseURL     string   `yaml:"geminiBaseURL"`
	GeminiModel       string   `yaml:"geminiModel"`
	GenerationTimeout string   `yaml:"generationTimeout"`
	AMQPURL           string   `yaml:"amqpURL"`
	AMQPQueue         string   `yaml:"amqpQueue"`
	AllowedOrigins    []string `yaml:"allowedOrigins"`
	LogLevel          string   `yaml:"logLevel"`
}

func defaults() fileConfig {
	return fileConfig{
		ListenAddr:        "127.0.0.1:8080",
		DBPath:            "professionalaize.db",
		Store:             StoreSQLite,
		RedisPrefix:       "professionalaize",
		GeminiBaseURL:     "https://generativelanguage.googleapis.com/v1beta",
		GeminiModel:       "gemini-2.5-flash",
		GenerationTimeout: "30s",
		AMQPQueue:         "professionalaize.process",
		LogLevel:          "info",
	}
}

// Load reads the YAML file named by PROFESSIONALAIZE_CONFIG (when set), applies
// environment overrides and returns a validated Config.
// Optional variables with defaults: PROFESSIONALAIZE_LISTEN_ADDR (127.0.0.1:8080),
// PROFESSIONALAIZE_DB_PATH (professionalaize.db), PROFESSIONALAIZE_STORE (sqlite),
// PROFESSIONALAIZE_GEMINI_MODEL (gemini-2.5-flash),
// PROFESSIONALAIZE_GENERATION_TIMEOUT (30s), PROFESSIONALAIZE_LOG_LEVEL (info).
func Load() (*Config, error) {
	return LoadFile(os.Getenv(EnvPrefix + "CONFIG"))
}

// LoadFile is Load with an explicit YAML path. An empty path skips the file.
func LoadFile(path string) (*Config, error) {
	fc := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&fc)
	return fc.validate()
}

func applyEnv(fc *fileConfig) {
	override(&fc.ListenAddr, "LISTEN_ADDR")
	override(&fc.DBPath, "DB_PATH")
	override(&fc.SecretKey, "SECRET_KEY")
	override(&fc.Store, "STORE")
	override(&fc.RedisAddr, "REDIS_ADDR")
	override(&fc.RedisPassword, "REDIS_PASSWORD")
	override(&fc.RedisPrefix, "REDIS_PREFIX")
	override(&fc.GeminiBaseURL, "GEMINI_BASE_URL")
	override(&fc.GeminiModel, "GEMINI_MODEL")
	override(&fc.GenerationTimeout, "GENERATION_TIMEOUT")
	override(&fc.AMQPURL, "AMQP_URL")
	override(&fc.AMQPQueue, "AMQP_QUEUE")
	override(&fc.LogLevel, "LOG_LEVEL")

	if v, ok := os.LookupEnv(EnvPrefix + "ALLOWED_ORIGINS"); ok {
		fc.AllowedOrigins = splitCSV(v)
	}
}

// override replaces *dst with the environment value when the variable is set.
func override(dst *string, name string) {
	if v, ok := os.LookupEnv(EnvPrefix + name); ok {
		*dst = strings.TrimSpace(v)
	}
}

func (fc fileConfig) validate() (*Config, error) {
	timeout, err := time.ParseDuration(fc.GenerationTimeout)
	if err != nil {
		return nil, fmt.Errorf("%sGENERATION_TIMEOUT has invalid duration %q: %w", EnvPrefix, fc.GenerationTimeout, err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("%sGENERATION_TIMEOUT must be positive, got %s", EnvPrefix, timeout)
	}

	var secretKey []byte
	if fc.SecretKey != "" {
		secretKey, err = hex.DecodeString(fc.SecretKey)
		if err != nil || len(secretKey) != 32 {
			return nil, fmt.Errorf("%sSECRET_KEY must be 64 hex characters (32 bytes)", EnvPrefix)
		}
	}

	store := strings.ToLower(fc.Store)
	switch store {
	case StoreSQLite:
		if fc.DBPath == "" {
			return nil, fmt.Errorf("%sDB_PATH is required for the sqlite store", EnvPrefix)
		}
	case StoreRedis:
		if fc.RedisAddr == "" {
			return nil, fmt.Errorf("%sREDIS_ADDR is required for the redis store", EnvPrefix)
		}
	default:
		return nil, fmt.Errorf("%sSTORE has unknown backend %q (want %s or %s)", EnvPrefix, fc.Store, StoreSQLite, StoreRedis)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(fc.LogLevel)); err != nil {
		return nil, fmt.Errorf("%sLOG_LEVEL has invalid level %q: %w", EnvPrefix, fc.LogLevel, err)
	}

	if fc.ListenAddr == "" {
		return nil, errors.New(EnvPrefix + "LISTEN_ADDR must not be empty")
	}

	origins := fc.AllowedOrigins
	if origins == nil {
		origins = []string{}
	}

	return &Config{
		ListenAddr:        fc.ListenAddr,
		DBPath:            fc.DBPath,
		SecretKey:         secretKey,
		Store:             store,
		RedisAddr:         fc.RedisAddr,
		RedisPassword:     fc.RedisPassword,
		RedisPrefix:       fc.RedisPrefix,
		GeminiBaseURL:     fc.GeminiBaseURL,
		GeminiModel:       fc.GeminiModel,
		GenerationTimeout: timeout,
		AMQPURL:           fc.AMQPURL,
		AMQPQueue:         fc.AMQPQueue,
		AllowedOrigins:    origins,
		LogLevel:          level,
	}, nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
