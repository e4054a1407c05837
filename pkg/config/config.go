// Package config loads boxlay tuning files.
//
// A tuning file is a TOML document that overrides layout defaults and
// configures optional backends. All sections and keys are optional; missing
// values fall back to the package defaults.
//
//	[force]
//	spring_length = 100
//	repulsion = 500000
//
//	[refine]
//	max_steps = 1000
//	workers = 4
//
//	[cache]
//	backend = "file"
//	dir = "~/.cache/boxlay"
//
//	[redis]
//	addr = "localhost:6379"
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/boxlay/boxlay/pkg/cache"
	"github.com/boxlay/boxlay/pkg/layout"
	"github.com/boxlay/boxlay/pkg/layout/force"
	"github.com/boxlay/boxlay/pkg/layout/refine"
	"github.com/boxlay/boxlay/pkg/store"
)

// Cache backends accepted in the [cache] section.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// CacheConfig selects and configures the result cache.
type CacheConfig struct {
	Backend string `toml:"backend" json:"backend"`
	Dir     string `toml:"dir" json:"dir"`
}

// ServerConfig configures the HTTP server started by `boxlay serve`.
type ServerConfig struct {
	Addr  string `toml:"addr" json:"addr"`
	Store string `toml:"store" json:"store"` // "memory" or "mongo"
}

// Config is the root of a boxlay tuning file.
type Config struct {
	Force  force.Config      `toml:"force" json:"force"`
	Refine refine.Config     `toml:"refine" json:"refine"`
	Offset float64           `toml:"offset" json:"offset"`
	Cache  CacheConfig       `toml:"cache" json:"cache"`
	Redis  cache.RedisConfig `toml:"redis" json:"redis"`
	Mongo  store.MongoConfig `toml:"mongo" json:"mongo"`
	Server ServerConfig      `toml:"server" json:"server"`
}

// Default returns the configuration used when no tuning file is given.
func Default() Config {
	return Config{
		Force:  force.Defaults(),
		Refine: refine.Defaults(),
		Offset: layout.DefaultOffset,
		Cache: CacheConfig{
			Backend: CacheBackendFile,
			Dir:     defaultCacheDir(),
		},
		Server: ServerConfig{
			Addr:  ":8080",
			Store: "memory",
		},
	}
}

// Load reads a TOML tuning file and merges it over the defaults.
// An empty path returns Default() unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the layout engine cannot work with.
func (c Config) Validate() error {
	if c.Force.SpringLength <= 0 {
		return fmt.Errorf("force.spring_length must be positive, got %g", c.Force.SpringLength)
	}
	if c.Force.MinSeparation <= 0 {
		return fmt.Errorf("force.min_separation must be positive, got %g", c.Force.MinSeparation)
	}
	if c.Force.Steps < 0 {
		return fmt.Errorf("force.steps must be non-negative, got %d", c.Force.Steps)
	}
	if c.Refine.MaxSteps < 0 {
		return fmt.Errorf("refine.max_steps must be non-negative, got %d", c.Refine.MaxSteps)
	}
	if c.Refine.Workers < 0 {
		return fmt.Errorf("refine.workers must be non-negative, got %d", c.Refine.Workers)
	}
	switch c.Cache.Backend {
	case CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return fmt.Errorf("cache.backend must be one of file, redis, none, got %q", c.Cache.Backend)
	}
	switch c.Server.Store {
	case "memory", "mongo":
	default:
		return fmt.Errorf("server.store must be memory or mongo, got %q", c.Server.Store)
	}
	return nil
}

func defaultCacheDir() string {
	if base, err := os.UserCacheDir(); err == nil {
		return filepath.Join(base, "boxlay")
	}
	return filepath.Join(os.TempDir(), "boxlay-cache")
}
