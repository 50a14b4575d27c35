// Package config loads settings from defaults, a TOML file, TADA_* env vars
// and finally root flags, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Store    string `mapstructure:"store" toml:"store"`       // file | sqlite | memory
	DataDir  string `mapstructure:"data_dir" toml:"data_dir"` // where slots live
	Key      string `mapstructure:"key" toml:"key"`           // slot key of the list
	IDs      string `mapstructure:"ids" toml:"ids"`           // length | counter
	Theme    string `mapstructure:"theme" toml:"theme"`       // classic | neon | mono
	LogLevel string `mapstructure:"log_level" toml:"log_level"`
	LogFile  string `mapstructure:"log_file" toml:"log_file"` // interactive mode only
}

// Overrides carries root flag values; empty fields leave the loaded value.
type Overrides struct {
	ConfigFile string
	Store      string
	DataDir    string
	Theme      string
	LogLevel   string
}

// DefaultDataDir is ~/.local/share/tada, or the working directory when the
// home directory is unknown.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "tada")
}

func defaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "tada")
}

// Load reads configuration from file and env, then applies flag overrides.
// Env var overrides use prefix TADA_. A missing file in the default location
// is not an error; a missing file named by --config or TADA_CONFIG is.
func Load(o Overrides) (Config, error) {
	v := viper.New()

	v.SetDefault("store", "file")
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("key", "todos")
	v.SetDefault("ids", "length")
	v.SetDefault("theme", "classic")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")

	v.SetConfigType("toml")
	cfgPath := o.ConfigFile
	if cfgPath == "" {
		cfgPath = os.Getenv("TADA_CONFIG")
	}
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(defaultConfigDir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TADA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.apply(o)

	if c.LogFile == "" {
		c.LogFile = filepath.Join(c.DataDir, "tada.log")
	}
	return c, nil
}

func (c *Config) apply(o Overrides) {
	if o.Store != "" {
		c.Store = o.Store
	}
	if o.DataDir != "" {
		c.DataDir = o.DataDir
	}
	if o.Theme != "" {
		c.Theme = o.Theme
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
}

// Write encodes c as TOML, in the same shape Load reads.
func (c Config) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
