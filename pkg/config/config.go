// Package config loads the floorplan configuration file.
//
// The file is TOML and every key is optional; missing keys keep their
// defaults. Command-line flags override the file.
//
//	[solver]
//	strategy = "search"
//	max_nodes = 200000
//	timeout = "1m"
//
//	[cache]
//	backend = "redis"
//
//	[redis]
//	addr = "cache.internal:6379"
package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/floorplan/pkg/errors"
	"github.com/matzehuels/floorplan/pkg/pipeline"
)

// Backend names.
const (
	CacheFile   = "file"
	CacheRedis  = "redis"
	CacheNone   = "none"
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// Duration is a time.Duration written as a Go duration string ("30s").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the full configuration.
type Config struct {
	Solver Solver `toml:"solver"`
	Batch  Batch  `toml:"batch"`
	Cache  Cache  `toml:"cache"`
	Redis  Redis  `toml:"redis"`
	Store  Store  `toml:"store"`
	Mongo  Mongo  `toml:"mongo"`
	Server Server `toml:"server"`
}

// Solver configures strategies.
type Solver struct {
	Strategy string   `toml:"strategy"`
	MaxNodes int      `toml:"max_nodes"`
	Timeout  Duration `toml:"timeout"`
}

// Batch configures directory runs.
type Batch struct {
	Workers int    `toml:"workers"`
	Pattern string `toml:"pattern"`
}

// Cache selects the solution cache.
type Cache struct {
	Backend string `toml:"backend"`
	// Dir overrides the file cache directory.
	Dir       string   `toml:"dir"`
	TTL       Duration `toml:"ttl"`
	Namespace string   `toml:"namespace"`
}

// Redis configures the redis cache backend.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Store selects the run history backend.
type Store struct {
	Backend string `toml:"backend"`
}

// Mongo configures the mongo store backend.
type Mongo struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Solver: Solver{
			Strategy: pipeline.DefaultStrategy,
			MaxNodes: pipeline.DefaultMaxNodes,
			Timeout:  Duration{pipeline.DefaultTimeout},
		},
		Batch: Batch{
			Workers: pipeline.DefaultWorkers,
			Pattern: pipeline.DefaultPattern,
		},
		Cache: Cache{
			Backend: CacheFile,
			TTL:     Duration{30 * 24 * time.Hour},
		},
		Redis: Redis{Addr: "localhost:6379"},
		Store: Store{Backend: StoreMemory},
		Mongo: Mongo{
			URI:        "mongodb://localhost:27017",
			Database:   "floorplan",
			Collection: "runs",
		},
		Server: Server{Addr: ":8080"},
	}
}

// Path returns the default config file location:
// $XDG_CONFIG_HOME/floorplan/config.toml, falling back to the user config
// directory.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "floorplan", "config.toml"), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "floorplan", "config.toml"), nil
}

// Load reads the config at path over the defaults. A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if err := pipeline.ValidateStrategy(c.Solver.Strategy); err != nil {
		return err
	}
	if c.Solver.MaxNodes <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "solver.max_nodes must be positive")
	}
	if c.Solver.Timeout.Duration <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "solver.timeout must be positive")
	}
	if c.Batch.Workers <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "batch.workers must be positive")
	}
	switch c.Cache.Backend {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case StoreMemory, StoreMongo:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "store.backend %q (must be one of: memory, mongo)", c.Store.Backend)
	}
	return nil
}

// Options returns the pipeline options the config implies.
func (c *Config) Options() pipeline.Options {
	return pipeline.Options{
		Strategy: c.Solver.Strategy,
		MaxNodes: c.Solver.MaxNodes,
		Timeout:  c.Solver.Timeout.Duration,
		Workers:  c.Batch.Workers,
		Pattern:  c.Batch.Pattern,
	}
}

// Write encodes c as TOML.
func (c *Config) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return nil
}
