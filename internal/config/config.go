// Package config loads settings from defaults, TOML files, the environment
// and flags, in that order of increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/Makepad-fr/tada/internal/model"
)

const (
	ProjectFileName = ".tada.toml"
	EnvPrefix       = "TADA_"
)

type Config struct {
	File      string `toml:"file"`
	Filter    string `toml:"filter"`
	Theme     string `toml:"theme"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	LogFile   string `toml:"log_file"`
	Group     bool   `toml:"group"`
}

func Default() Config {
	return Config{
		Filter:    string(model.StatusAll),
		Theme:     "classic",
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// ParsedFilter returns the configured filter as a model value.
func (c Config) ParsedFilter() (model.Filter, error) {
	return model.ParseFilter(c.Filter)
}

// Flags registers the root flags on fs. Their values are applied by Load
// only when set on the command line.
func Flags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "config file (default: user config, then ./"+ProjectFileName+")")
	fs.StringP("file", "f", "", "todo data file (default ./todos.json)")
	fs.String("filter", "", "filter: all, active or completed")
	fs.String("theme", "", "plain output theme: classic, neon or mono")
	fs.String("log-level", "", "log level: debug, info, warn or error")
	fs.String("log-file", "", "write logs to this file")
	fs.BoolP("group", "g", false, "group plain output by active/completed")
}

// Load layers defaults, the user config file, the project config file (or
// the one named by --config), TADA_* variables and flags.
func Load(fs *pflag.FlagSet) (Config, error) {
	cfg := Default()

	explicit := ""
	if fs != nil {
		explicit, _ = fs.GetString("config")
	}
	if explicit != "" {
		if err := loadFile(&cfg, explicit); err != nil {
			return cfg, fmt.Errorf("loading config file %s: %w", explicit, err)
		}
	} else {
		for _, p := range []string{userConfigFile(), ProjectFileName} {
			if p == "" {
				continue
			}
			if err := loadFile(&cfg, p); err != nil {
				if errors.Is(err, os.ErrNotExist) {
					continue
				}
				return cfg, fmt.Errorf("loading config file %s: %w", p, err)
			}
		}
	}

	loadEnv(&cfg, os.LookupEnv)

	if fs != nil {
		applyFlags(&cfg, fs)
	}

	if _, err := cfg.ParsedFilter(); err != nil {
		return cfg, fmt.Errorf("filter: %w", err)
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	_, err := toml.DecodeFile(path, cfg)
	return err
}

func userConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tada", "config.toml")
}

func loadEnv(cfg *Config, lookup func(string) (string, bool)) {
	set := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set("FILE", &cfg.File)
	set("FILTER", &cfg.Filter)
	set("THEME", &cfg.Theme)
	set("LOG_LEVEL", &cfg.LogLevel)
	set("LOG_FORMAT", &cfg.LogFormat)
	set("LOG_FILE", &cfg.LogFile)
}

func applyFlags(cfg *Config, fs *pflag.FlagSet) {
	str := func(name string, dst *string) {
		if fs.Changed(name) {
			*dst, _ = fs.GetString(name)
		}
	}
	str("file", &cfg.File)
	str("filter", &cfg.Filter)
	str("theme", &cfg.Theme)
	str("log-level", &cfg.LogLevel)
	str("log-file", &cfg.LogFile)
	if fs.Changed("group") {
		cfg.Group, _ = fs.GetBool("group")
	}
}
