// Command patrol reads a patrol map and reports how many cells the agent
// visits and how many single obstructions trap it in a loop.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/patrol/internal/config"
	"github.com/katalvlaran/patrol/internal/logging"
	"github.com/katalvlaran/patrol/internal/telemetry"
)

// app carries state shared by all subcommands of one invocation.
type app struct {
	// Global flags
	configPath string
	workers    int
	verbose    bool
	trace      bool

	cfg      *config.Config
	logger   *zap.Logger
	shutdown telemetry.ShutdownFunc
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "patrol",
		Short: "Simulate a grid patrol and find loop-inducing obstructions",
		Long: `patrol reads a rectangular map where '#' marks an obstacle and '^' the
agent's start cell (facing North). The agent walks forward, turns right at
obstacles and stops when it leaves the map.

  visited  counts the distinct cells the agent stands on
  loops    counts the cells where one extra obstacle traps the agent forever
  solve    prints both

Pass a file path or '-' (the default) to read the map from stdin.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file")
	pf.IntVarP(&a.workers, "workers", "w", 0, "concurrent cycle checks (0 = config or GOMAXPROCS)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVar(&a.trace, "trace", false, "export OpenTelemetry spans to stderr")

	root.AddCommand(
		newVisitedCmd(a),
		newLoopsCmd(a),
		newSolveCmd(a),
	)

	return root
}

// setup loads configuration and initialises logging and tracing.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.workers < 0 {
		return fmt.Errorf("--workers must be >= 0, got %d", a.workers)
	}
	if a.workers > 0 {
		cfg.Search.Workers = a.workers
	}
	if a.trace {
		cfg.Tracing.Enabled = true
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Logging, a.verbose)
	if err != nil {
		return err
	}
	a.logger = logger

	shutdown, err := telemetry.Setup(cmd.ErrOrStderr(), cfg.Tracing.Enabled)
	if err != nil {
		return err
	}
	a.shutdown = shutdown

	a.logger.Debug("configuration loaded",
		zap.String("config", a.configPath),
		zap.Int("workers", cfg.Search.Workers),
		zap.Bool("tracing", cfg.Tracing.Enabled))

	return nil
}

func (a *app) teardown(ctx context.Context) {
	if a.shutdown != nil {
		if err := a.shutdown(context.WithoutCancel(ctx)); err != nil {
			a.logger.Warn("trace shutdown failed", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
