/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: config.go
Description: Configuration for the cryptkit CLI. Values come from defaults, an optional
config file, CRYPTKIT_* environment variables and command-line flags, merged by viper.
*/

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kleascm/cryptkit/pkg/breaker"
	"github.com/kleascm/cryptkit/pkg/codec"
	"github.com/kleascm/cryptkit/pkg/logging"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variable overrides
const EnvPrefix = "CRYPTKIT"

// Config is the complete toolkit configuration
type Config struct {
	Log       logging.LoggerConfig `mapstructure:"log"`
	Frequency FrequencyConfig      `mapstructure:"frequency"`
	Breaker   BreakerConfig        `mapstructure:"breaker"`
	Codec     CodecConfig          `mapstructure:"codec"`
	OutputDir string               `mapstructure:"output_dir"` // JSON results, empty disables
}

// FrequencyConfig selects where the frequency table comes from
type FrequencyConfig struct {
	Builtin  bool          `mapstructure:"builtin"` // built-in English table when no sources are set
	Sources  []string      `mapstructure:"sources"` // corpus files or URLs
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheDir string        `mapstructure:"cache_dir"`
	Redis    RedisConfig   `mapstructure:"redis"`
}

// RedisConfig enables the Redis table cache when Addr is set
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// BreakerConfig tunes key recovery
type BreakerConfig struct {
	Workers  int    `mapstructure:"workers"`
	Top      int    `mapstructure:"top"`
	KeySpace string `mapstructure:"keyspace"`
}

// CodecConfig sets codec defaults
type CodecConfig struct {
	Input      string `mapstructure:"input"`       // default input representation
	TextErrors string `mapstructure:"text_errors"` // strict, replace or ignore
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Log: *logging.DefaultLoggerConfig(),
		Frequency: FrequencyConfig{
			Builtin: true,
			Timeout: 30 * time.Second,
			Redis: RedisConfig{
				Prefix: "cryptkit:freq",
			},
		},
		Breaker: BreakerConfig{
			Workers:  1,
			Top:      5,
			KeySpace: "all",
		},
		Codec: CodecConfig{
			Input:      "hex",
			TextErrors: string(codec.Strict),
		},
	}
}

// SetDefaults registers every default with v so that files and env vars can override them
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log.level", string(d.Log.Level))
	v.SetDefault("log.format", string(d.Log.Format))
	v.SetDefault("log.dir", d.Log.OutputDir)
	v.SetDefault("log.max_files", d.Log.MaxFiles)
	v.SetDefault("log.timestamp", d.Log.Timestamp)
	v.SetDefault("log.caller", d.Log.Caller)
	v.SetDefault("log.colors", d.Log.Colors)
	v.SetDefault("frequency.builtin", d.Frequency.Builtin)
	v.SetDefault("frequency.sources", d.Frequency.Sources)
	v.SetDefault("frequency.timeout", d.Frequency.Timeout)
	v.SetDefault("frequency.cache_dir", d.Frequency.CacheDir)
	v.SetDefault("frequency.redis.addr", d.Frequency.Redis.Addr)
	v.SetDefault("frequency.redis.password", d.Frequency.Redis.Password)
	v.SetDefault("frequency.redis.db", d.Frequency.Redis.DB)
	v.SetDefault("frequency.redis.prefix", d.Frequency.Redis.Prefix)
	v.SetDefault("frequency.redis.ttl", d.Frequency.Redis.TTL)
	v.SetDefault("breaker.workers", d.Breaker.Workers)
	v.SetDefault("breaker.top", d.Breaker.Top)
	v.SetDefault("breaker.keyspace", d.Breaker.KeySpace)
	v.SetDefault("codec.input", d.Codec.Input)
	v.SetDefault("codec.text_errors", d.Codec.TextErrors)
	v.SetDefault("output_dir", d.OutputDir)
}

// Load reads the config file named by "config" (if any), applies environment
// overrides and decodes the result
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	if configFile := v.GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the Config for invalid values
func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if !c.Frequency.Builtin && len(c.Frequency.Sources) == 0 {
		return fmt.Errorf("frequency.sources must not be empty when frequency.builtin is false")
	}
	if c.Frequency.Timeout <= 0 {
		return fmt.Errorf("frequency.timeout must be positive")
	}
	if c.Breaker.Workers < 0 {
		return fmt.Errorf("breaker.workers must not be negative")
	}
	if c.Breaker.Top < 0 {
		return fmt.Errorf("breaker.top must not be negative")
	}
	if _, err := breaker.ParseKeySpace(c.Breaker.KeySpace); err != nil {
		return err
	}
	if _, err := codec.ParseRepresentation(c.Codec.Input); err != nil {
		return err
	}
	if _, err := codec.ParseErrorPolicy(c.Codec.TextErrors); err != nil {
		return err
	}
	return nil
}
