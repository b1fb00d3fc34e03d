package cli

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/floorplan/pkg/buildinfo"
	"github.com/matzehuels/floorplan/pkg/cache"
	"github.com/matzehuels/floorplan/pkg/config"
	"github.com/matzehuels/floorplan/pkg/errors"
	"github.com/matzehuels/floorplan/pkg/observability"
	"github.com/matzehuels/floorplan/pkg/pipeline"
	"github.com/matzehuels/floorplan/pkg/store"
)

// appName is used for directories and display.
const appName = "floorplan"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Exit codes returned by ExitCode.
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitBadInput  = 2
	ExitInterrupt = 130
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is set by the --config flag.
	configPath string
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "floorplan places FPGA regions on a device grid",
		Long: `floorplan assigns every region of a floorplanning problem a rectangle of
the FPGA fabric that covers its CLB, BRAM and DSP demand, avoids forbidden
tiles and respects the clock region grid. Problems and solutions use the
contest text formats.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			observability.SetSolveHooks(logHooks{c.Logger})
			observability.SetCacheHooks(logHooks{c.Logger})
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/floorplan/config.toml)")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.scoreCommand())
	root.AddCommand(c.verifyCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.strategiesCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// ExitCode maps a command error to the process exit status: 2 for input
// that could not be read or understood, 130 for interruption, 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case stderrors.Is(err, context.Canceled):
		return ExitInterrupt
	case errors.IsInputError(err), errors.Is(err, errors.ErrCodeFileNotFound):
		return ExitBadInput
	}
	return ExitFailure
}

// loadConfig reads the --config file, or the default path when unset.
func (c *CLI) loadConfig() (*config.Config, error) {
	path := c.configPath
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return config.Default(), nil
		}
		path = p
	}
	return config.Load(path)
}

// runnerOpts selects the backends of a runner.
type runnerOpts struct {
	noCache bool
	// history records runs in the configured store. The CLI only does so
	// for persistent stores; the server always keeps history.
	history bool
}

// newRunner builds a pipeline runner from the config.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config, ro runnerOpts) (*pipeline.Runner, error) {
	logger := loggerFromContext(ctx)

	cch, err := newCache(ctx, cfg, ro.noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if cfg.Cache.Namespace != "" {
		keyer = cache.NewScopedKeyer(nil, cfg.Cache.Namespace)
	}

	var st store.Store
	switch {
	case cfg.Store.Backend == config.StoreMongo:
		st, err = store.NewMongoStore(ctx, store.MongoOptions{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
		if err != nil {
			cch.Close()
			return nil, err
		}
		logger.Debug("recording runs in mongodb", "database", cfg.Mongo.Database)
	case ro.history:
		st = store.NewMemoryStore()
	}

	r := pipeline.NewRunner(cch, keyer, st, logger)
	r.TTL = cfg.Cache.TTL.Duration
	return r, nil
}

func newCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   appName + ":",
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeBackend, err, "connect to redis at %s", cfg.Redis.Addr)
		}
		return rc, nil
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/floorplan/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// solveFlags are the solver flags shared by solve, batch, view and render.
type solveFlags struct {
	strategy string
	maxNodes int
	timeout  time.Duration
	noCache  bool
	refresh  bool
}

func (f *solveFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.strategy, "strategy", "s", "", "placement strategy (see 'floorplan strategies')")
	cmd.Flags().IntVar(&f.maxNodes, "max-nodes", 0, "node budget of the search strategy")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "solve timeout, e.g. 30s")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the solution cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached solutions")
}

// options overlays the flags on the config.
func (f *solveFlags) options(cfg *config.Config) (pipeline.Options, error) {
	opts := cfg.Options()
	opts.Refresh = f.refresh
	if f.strategy != "" {
		opts.Strategy = f.strategy
	}
	if f.maxNodes != 0 {
		opts.MaxNodes = f.maxNodes
	}
	if f.timeout > 0 {
		opts.Timeout = f.timeout
	}
	return opts, opts.ValidateAndSetDefaults()
}
