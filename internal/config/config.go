// ABOUTME: Layered configuration: flags > env > config file > defaults
// ABOUTME: Loads .env first so INVENTARIO_* variables can live next to the binary

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/basinventario/inventario-cli/internal/client"
	"github.com/basinventario/inventario-cli/internal/format"
	"github.com/basinventario/inventario-cli/internal/storage"
)

// EnvPrefix is the prefix of every environment variable
const EnvPrefix = "INVENTARIO"

// Session storage backends
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config is the resolved client configuration
type Config struct {
	APIURL         string        `mapstructure:"api_url"`
	SessionBackend string        `mapstructure:"session_backend"`
	ConfigDir      string        `mapstructure:"config_dir"`
	RedisAddr      string        `mapstructure:"redis_addr"`
	RedisPassword  string        `mapstructure:"redis_password"`
	RedisDB        int           `mapstructure:"redis_db"`
	RedisPrefix    string        `mapstructure:"redis_prefix"`
	LogLevel       string        `mapstructure:"log_level"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	Locale         string        `mapstructure:"locale"`
}

// Options control where Load reads from
type Options struct {
	// File is an explicit config file; empty searches <config dir>/config.yaml
	File string
	// EnvFile is loaded into the environment if present; empty means ".env"
	EnvFile string
	// Overrides are flag values, applied above every other layer
	Overrides map[string]any
}

// Load resolves the configuration
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	// Legacy name used by the web front end
	if err := v.BindEnv("api_url", EnvPrefix+"_API_URL", "VITE_API_BASE_URL"); err != nil {
		return nil, err
	}

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.AddConfigPath(configDirFromEnv())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is OK, we'll use defaults
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	for key, value := range opts.Overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.APIURL = strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	if cfg.APIURL == "" {
		cfg.APIURL = client.DefaultBaseURL
	}
	if strings.HasPrefix(cfg.ConfigDir, "~") {
		home, _ := os.UserHomeDir()
		cfg.ConfigDir = filepath.Join(home, cfg.ConfigDir[1:])
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	switch c.SessionBackend {
	case BackendFile, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("session_backend must be one of file, redis, memory (got %q)", c.SessionBackend)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative (got %s)", c.RequestTimeout)
	}
	if c.SessionBackend == BackendRedis && c.RedisAddr == "" {
		return errors.New("redis_addr is required when session_backend is redis")
	}
	return nil
}

// RedisConfig returns the Redis backend settings
func (c *Config) RedisConfig() storage.RedisConfig {
	return storage.RedisConfig{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
		Prefix:   c.RedisPrefix,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_url", client.DefaultBaseURL)
	v.SetDefault("session_backend", BackendFile)
	v.SetDefault("config_dir", configDirFromEnv())
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_prefix", "inventario:session:")
	v.SetDefault("log_level", "info")
	v.SetDefault("request_timeout", 0)
	v.SetDefault("locale", format.DefaultLocale)
}

// configDirFromEnv is the config directory before viper is consulted
func configDirFromEnv() string {
	if dir := os.Getenv(EnvPrefix + "_CONFIG_DIR"); dir != "" {
		return dir
	}
	return storage.DefaultConfigDir()
}
