package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds settings shared by every blockidx command
type Config struct {
	Output     string        `mapstructure:"output"`
	NoColor    bool          `mapstructure:"no_color"`
	SyncWrites bool          `mapstructure:"sync_writes"`
	Load       LoadConfig    `mapstructure:"load"`
	Extract    ExtractConfig `mapstructure:"extract"`
}

// LoadConfig controls bulk loading
type LoadConfig struct {
	MaxReportedErrors int `mapstructure:"max_reported_errors"`
}

// ExtractConfig controls exporting
type ExtractConfig struct {
	Compress bool `mapstructure:"compress"`
}

const (
	// ConfigName is the base name searched for in the config paths
	ConfigName = "blockidx-config"

	// EnvPrefix prefixes environment overrides, e.g. BLOCKIDX_SYNC_WRITES
	EnvPrefix = "BLOCKIDX"
)

// SetDefaults registers the default value of every key on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output", "table")
	v.SetDefault("no_color", false)
	v.SetDefault("sync_writes", true)
	v.SetDefault("load.max_reported_errors", 20)
	v.SetDefault("extract.compress", false)
}

// Load reads configuration from configFile, or from the standard search
// paths when configFile is empty. A missing config file in the search paths
// is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.blockidx")
		v.AddConfigPath("/etc/blockidx")
	}

	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	// Defaults always decode
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Validate checks value ranges that viper cannot express
func (c *Config) Validate() error {
	switch c.Output {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("invalid output format %q: must be table, json, or yaml", c.Output)
	}
	if c.Load.MaxReportedErrors < 0 {
		return fmt.Errorf("load.max_reported_errors must not be negative, got %d", c.Load.MaxReportedErrors)
	}
	return nil
}
