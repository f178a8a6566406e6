package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/Gama646/quizdash/internal/store"
)

// EnvPrefix prefixes every environment override, e.g. QUIZDASH_STORE_BACKEND.
const EnvPrefix = "QUIZDASH"

// Config holds the application configuration.
type Config struct {
	Store StoreConfig `mapstructure:"store"`
	// Questions is an optional question bank JSON file replacing the built-in bank.
	Questions string    `mapstructure:"questions"`
	Log       LogConfig `mapstructure:"log"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// StoreConfig selects and locates the results log.
type StoreConfig struct {
	Backend string `mapstructure:"backend"` // csv or sqlite
	Path    string `mapstructure:"path"`    // empty means the XDG default
}

// LogConfig configures the file logger.
type LogConfig struct {
	File       string `mapstructure:"file"` // empty means the XDG default, "off" disables logging
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"backend":   "store.backend",
	"data":      "store.path",
	"questions": "questions",
	"log-file":  "log.file",
	"log-level": "log.level",
}

// Load builds the configuration from defaults, the config file, environment
// and flags, in increasing priority. configFile may be empty, in which case
// quizdash.yaml is looked up in the user config dir and the working dir.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("store.backend", string(store.BackendCSV))
	v.SetDefault("store.path", "")
	v.SetDefault("questions", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// QUIZDASH_DATA predates the store.* keys and is also read by store.DefaultPath.
	if err := v.BindEnv("store.path", "QUIZDASH_STORE_PATH", "QUIZDASH_DATA"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag --%s: %w", name, err)
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("quizdash")
		v.SetConfigType("yaml")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	if _, err := store.ParseBackend(c.Store.Backend); err != nil {
		return fmt.Errorf("store.backend: %w", err)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		return errors.New("log.max_size_mb and log.max_backups must not be negative")
	}
	return nil
}

// StoreOptions converts the store section for store.Open.
func (c *Config) StoreOptions() store.Options {
	// Validate has already accepted the backend name.
	b, _ := store.ParseBackend(c.Store.Backend)
	return store.Options{Backend: b, Path: c.Store.Path}
}

// Dir returns $XDG_CONFIG_HOME/quizdash, falling back to ~/.config/quizdash.
func Dir() (string, error) {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "quizdash"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", "quizdash"), nil
}
