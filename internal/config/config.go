// Package config loads osintex settings from defaults, a YAML file, the
// environment and command-line flags.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/osintex/cli/internal/favorites"
	"github.com/osintex/cli/pkg/util"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix of environment variables read into the config.
const EnvPrefix = "OSINTEX_"

// Favorites backends.
const (
	BackendFile    = "file"
	BackendKeyring = "keyring"
	BackendSQLite  = "sqlite"
	BackendMemory  = "memory"
)

// Backends lists the accepted favorites_backend values.
var Backends = []string{BackendFile, BackendKeyring, BackendSQLite, BackendMemory}

// Config is the resolved configuration.
type Config struct {
	// Catalog is a JSON file or a directory of JSON files. Empty means the
	// catalog embedded in the binary.
	Catalog          string `koanf:"catalog"`
	FavoritesBackend string `koanf:"favorites_backend"`
	// FavoritesPath is the file (file backend) or database (sqlite backend).
	FavoritesPath string `koanf:"favorites_path"`
	FavoritesKey  string `koanf:"favorites_key"`
	LogLevel      string `koanf:"log_level"`
	// LogFile receives logs while the interactive UI owns the terminal.
	LogFile string `koanf:"log_file"`
}

// DefaultDir is where the config file and favorites live by default.
func DefaultDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "osintex")
	}
	return util.ExpandHome("~/.config/osintex")
}

// DefaultConfigFile is the config file read when --config is not given.
func DefaultConfigFile() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"catalog":           "",
		"favorites_backend": BackendFile,
		"favorites_path":    "",
		"favorites_key":     favorites.DefaultKey,
		"log_level":         "warn",
		"log_file":          "",
	}
}

// Load resolves the configuration.
// Precedence (highest to lowest): flags > env vars > .env file > config file > defaults
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// A missing .env is the normal case
	_ = godotenv.Load()

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	explicit := cfgFile != ""
	if !explicit {
		cfgFile = DefaultConfigFile()
	}
	if _, err := os.Stat(cfgFile); err == nil {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config file %s: %w", cfgFile, err)
	}

	// OSINTEX_FAVORITES_BACKEND -> favorites_backend
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if _, known := defaults()[key]; !known {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.FavoritesBackend = strings.ToLower(strings.TrimSpace(c.FavoritesBackend))
	c.Catalog = util.ExpandHome(c.Catalog)
	c.LogFile = util.ExpandHome(c.LogFile)
	if c.FavoritesPath == "" {
		switch c.FavoritesBackend {
		case BackendFile:
			c.FavoritesPath = filepath.Join(DefaultDir(), "favorites.json")
		case BackendSQLite:
			c.FavoritesPath = filepath.Join(DefaultDir(), "osintex.db")
		}
	}
	c.FavoritesPath = util.ExpandHome(c.FavoritesPath)
	if c.FavoritesKey == "" {
		c.FavoritesKey = favorites.DefaultKey
	}
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	valid := false
	for _, b := range Backends {
		if c.FavoritesBackend == b {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown favorites_backend %q (available: %s)", c.FavoritesBackend, strings.Join(Backends, ", "))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q: use debug, info, warn or error", s)
	}
	return level, nil
}

// OpenFavoritesKV opens the configured backend. The returned close function
// is always non-nil.
func (c *Config) OpenFavoritesKV(ctx context.Context) (favorites.KV, func() error, error) {
	noop := func() error { return nil }
	switch c.FavoritesBackend {
	case BackendKeyring:
		return favorites.NewKeyringKV(favorites.DefaultKeyringService), noop, nil
	case BackendSQLite:
		kv, err := favorites.OpenSQLiteKV(ctx, c.FavoritesPath)
		if err != nil {
			return nil, noop, err
		}
		return kv, kv.Close, nil
	case BackendMemory:
		return favorites.NewMemoryKV(), noop, nil
	default:
		return favorites.NewFileKV(c.FavoritesPath), noop, nil
	}
}
