// Package config manages the CLI configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

const (
	defaultServer            = "https://hushfile.it"
	defaultPasswordMinLength = 40
	defaultPasswordMaxLength = 50
)

// ConfigDir returns the active configuration directory path.
// The path depends on the build mode (dev/prod) and can be overridden
// with the HUSHFILE_CONFIG_DIR environment variable.
func ConfigDir() (string, error) {
	return configDir()
}

// PasswordConfig bounds the generated share and delete passwords.
type PasswordConfig struct {
	MinLength int `yaml:"min_length" mapstructure:"min_length"`
	MaxLength int `yaml:"max_length" mapstructure:"max_length"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server    string         `yaml:"server" mapstructure:"server"`
	Deletable bool           `yaml:"deletable" mapstructure:"deletable"`
	Password  PasswordConfig `yaml:"password" mapstructure:"password"`
}

// SetDefaults registers the default configuration values in viper.
// Must be called before viper.ReadInConfig so that defaults are applied
// when a key is absent from the config file.
func SetDefaults() {
	viper.SetDefault("server", defaultServer)
	viper.SetDefault("deletable", false)
	viper.SetDefault("password.min_length", defaultPasswordMinLength)
	viper.SetDefault("password.max_length", defaultPasswordMaxLength)
}

// Load reads the active viper configuration and returns a Config struct.
// SetDefaults must have been called before this function. Nonsense values
// fall back to the defaults with a warning; a broken config file should
// never make files unreachable.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if cfg.Server == "" {
		cfg.Server = defaultServer
	}
	if cfg.Password.MinLength < 1 || cfg.Password.MaxLength < cfg.Password.MinLength {
		fmt.Fprintf(os.Stderr, "Warning: invalid password length bounds [%d, %d], using defaults\n",
			cfg.Password.MinLength, cfg.Password.MaxLength)
		cfg.Password.MinLength = defaultPasswordMinLength
		cfg.Password.MaxLength = defaultPasswordMaxLength
	}

	return &cfg, nil
}
