// Package config loads the optional gridkz configuration file.
//
// The file is TOML, searched at $XDG_CONFIG_HOME/gridkz/config.toml and
// falling back to ~/.config/gridkz/config.toml. A missing file is not an
// error: every field has a default, and command-line flags override
// whatever the file sets.
//
// Example:
//
//	[convert]
//	out_dir = "~/kzones"
//	padding = 8
//
//	[variables]
//	Monitor1Width = 100
//
//	[serve]
//	addr = ":8632"
//	cache = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gridkz/pkg/errors"
)

// FileName is the configuration file name inside the config directory.
const FileName = "config.toml"

// appName names the per-user config directory (~/.config/gridkz).
const appName = "gridkz"

// Cache backend names accepted by [serve].cache.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheOff   = "off"
)

// Store backend names accepted by [serve].store.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// ValidCaches lists the accepted serve cache backends.
var ValidCaches = map[string]bool{
	CacheFile:  true,
	CacheRedis: true,
	CacheOff:   true,
}

// ValidStores lists the accepted serve store backends.
var ValidStores = map[string]bool{
	StoreMemory: true,
	StoreMongo:  true,
}

// Config is the root of the configuration file.
type Config struct {
	Convert   ConvertConfig      `toml:"convert"`
	Variables map[string]float64 `toml:"variables"`
	Watch     WatchConfig        `toml:"watch"`
	Serve     ServeConfig        `toml:"serve"`
}

// ConvertConfig configures the convert command.
type ConvertConfig struct {
	// OutDir is where converted documents are written when no explicit
	// output path is given. Empty means next to the input file.
	OutDir string `toml:"out_dir"`

	// Padding is the default zone padding in pixels.
	Padding int `toml:"padding"`
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	// Dir is the directory to watch for template changes.
	Dir string `toml:"dir"`

	// OutDir is where converted documents are written.
	OutDir string `toml:"out_dir"`
}

// ServeConfig configures the HTTP service.
type ServeConfig struct {
	// Addr is the listen address.
	Addr string `toml:"addr"`

	// Cache selects the conversion cache backend: file, redis or off.
	Cache string `toml:"cache"`

	// RedisAddr is the redis host:port when Cache is "redis".
	RedisAddr string `toml:"redis_addr"`

	// Store selects the layout store backend: memory or mongo.
	Store string `toml:"store"`

	// MongoURI is the connection string when Store is "mongo".
	MongoURI string `toml:"mongo_uri"`

	// MongoDB is the database name when Store is "mongo".
	MongoDB string `toml:"mongo_db"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Serve: ServeConfig{
			Addr:      ":8632",
			Cache:     CacheFile,
			RedisAddr: "localhost:6379",
			Store:     StoreMemory,
			MongoURI:  "mongodb://localhost:27017",
			MongoDB:   appName,
		},
	}
}

// DefaultPath returns the standard config file location using XDG
// conventions (~/.config/gridkz/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, FileName), nil
}

// Load reads the configuration at path. An empty path searches the
// standard location, where a missing file simply yields Default(). An
// explicit path that cannot be read is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks enum fields and variable names.
func (c *Config) Validate() error {
	if c.Convert.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "convert.padding must not be negative")
	}
	if !ValidCaches[c.Serve.Cache] {
		return errors.New(errors.ErrCodeInvalidInput, "serve.cache must be one of: file, redis, off (got %q)", c.Serve.Cache)
	}
	if !ValidStores[c.Serve.Store] {
		return errors.New(errors.ErrCodeInvalidInput, "serve.store must be one of: memory, mongo (got %q)", c.Serve.Store)
	}
	for name := range c.Variables {
		if err := errors.ValidateVariableName(name); err != nil {
			return err
		}
	}
	return nil
}
