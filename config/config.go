// Package config loads xgetopt's defaults from an optional config file.
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds the defaults the command line can override.
type Config struct {
	Optstring string   `mapstructure:"optstring"`
	Tokens    []string `mapstructure:"tokens"`
	Format    string   `mapstructure:"format"`
	Wide      bool     `mapstructure:"wide"`
	Quiet     bool     `mapstructure:"quiet"`
	LogLevel  string   `mapstructure:"log-level"`

	File string `mapstructure:"-"` // config file read, if any
}

// Load reads path, or when path is empty the first xgetopt.{yaml,toml,json}
// found in $HOME/.config/xgetopt or the working directory. Only an explicit
// path has to exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("optstring", "")
	v.SetDefault("tokens", []string{})
	v.SetDefault("format", "shell")
	v.SetDefault("wide", false)
	v.SetDefault("quiet", false)
	v.SetDefault("log-level", "warn")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("xgetopt")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "xgetopt"))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "failed to read config")
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}
	cfg.File = v.ConfigFileUsed()
	return cfg, nil
}
