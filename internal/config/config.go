// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config loads the hwgen configuration from defaults, an optional YAML
// file, HWGEN_ environment variables and command line flags, in increasing
// order of precedence.
//
package config

import (
	"os"
	"strings"

	"github.com/db47h/hwgen"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "HWGEN"

// DefaultFile is the configuration file looked up in the working directory
// when none is given.
//
const DefaultFile = "hwgen.yaml"

// Config is the resolved configuration.
//
type Config struct {
	// Dialect is the default HDL dialect: vhdl or verilog.
	Dialect string `mapstructure:"dialect"`
	// OutputDir is where generated files are written.
	OutputDir string `mapstructure:"outputDir"`
	// Workers caps the number of concurrent generation jobs. 0 means no limit.
	Workers int `mapstructure:"workers"`
	// Steps is the number of simulation steps per clock cycle.
	Steps int       `mapstructure:"steps"`
	Log   LogConfig `mapstructure:"log"`
}

// LogConfig configures logging.
//
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Timestamps bool   `mapstructure:"timestamps"`
}

// flag names bound to configuration keys.
var flagKeys = map[string]string{
	"dialect":    "dialect",
	"output-dir": "outputDir",
	"workers":    "workers",
	"steps":      "steps",
	"log-level":  "log.level",
	"timestamps": "log.timestamps",
}

func defaults(v *viper.Viper) {
	v.SetDefault("dialect", "vhdl")
	v.SetDefault("outputDir", ".")
	v.SetDefault("workers", 0)
	v.SetDefault("steps", 8)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.timestamps", false)
}

// Load loads the configuration. If file is empty, DefaultFile is used if it
// exists. Flags of fs named after configuration keys override all other
// sources when set. fs may be nil.
//
func Load(file string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	defaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := file != ""
	if !explicit {
		file = DefaultFile
	}
	v.SetConfigFile(file)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if explicit || !(notFound || errors.Is(err, os.ErrNotExist)) {
			return nil, errors.Wrapf(err, "read config file %s", file)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.WithStack(err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if _, err := hwgen.ParseDialect(c.Dialect); err != nil {
		return errors.Wrap(err, "config")
	}
	if c.Workers < 0 {
		return errors.Errorf("config: workers must not be negative, got %d", c.Workers)
	}
	if c.Steps < 2 {
		return errors.Errorf("config: steps must be at least 2, got %d", c.Steps)
	}
	return nil
}

// HDL returns the configured dialect.
//
func (c *Config) HDL() hwgen.Dialect {
	d, _ := hwgen.ParseDialect(c.Dialect)
	return d
}
