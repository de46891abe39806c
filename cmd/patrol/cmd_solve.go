package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/patrol/patrol"
)

func newVisitedCmd(a *app) *cobra.Command {
	var render bool
	cmd := &cobra.Command{
		Use:   "visited [file]",
		Short: "Count the distinct cells visited before the agent leaves the map",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.loadGrid(cmd, args)
			if err != nil {
				return err
			}
			n, err := a.visited(g, render, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), n)
			return err
		},
	}
	cmd.Flags().BoolVar(&render, "render", false, "print the map with visited cells marked 'X' before the answer")

	return cmd
}

func newLoopsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "loops [file]",
		Short: "Count the cells where one added obstacle traps the agent in a loop",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.loadGrid(cmd, args)
			if err != nil {
				return err
			}
			n, err := a.loops(cmd.Context(), g)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), n)
			return err
		},
	}
}

func newSolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "solve [file]",
		Short: "Print both the visited-cell count and the loop-obstruction count",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.loadGrid(cmd, args)
			if err != nil {
				return err
			}
			visited, err := a.visited(g, false, nil)
			if err != nil {
				return err
			}
			loops, err := a.loops(cmd.Context(), g)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "visited: %d\nloops: %d\n", visited, loops)
			return err
		},
	}
}

// loadGrid parses the map named by args[0], or stdin for no argument or "-".
func (a *app) loadGrid(cmd *cobra.Command, args []string) (*patrol.Grid, error) {
	var (
		r    io.Reader = cmd.InOrStdin()
		name           = "stdin"
	)
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to open map: %w", err)
		}
		defer f.Close()
		r, name = f, args[0]
	}

	g, err := patrol.ParseGrid(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	a.logger.Debug("map parsed",
		zap.String("source", name),
		zap.Int("rows", g.Rows()),
		zap.Int("cols", g.Cols()),
		zap.Int("obstacles", len(g.Obstacles())),
		zap.Stringer("start", g.Start()))

	return g, nil
}

// visited counts visited cells; with render set it first draws the path to w.
func (a *app) visited(g *patrol.Grid, render bool, w io.Writer) (int, error) {
	if render {
		cells, err := g.VisitedCells()
		if err != nil {
			return 0, err
		}
		marks := make(map[patrol.Position]rune, len(cells))
		for p := range cells {
			if p != g.Start() {
				marks[p] = patrol.MarkVisited
			}
		}
		if _, err := io.WriteString(w, g.Render(marks)); err != nil {
			return 0, err
		}
	}

	return patrol.CountVisitedCells(g)
}

// loops runs the parallel obstruction search under the configured limits.
func (a *app) loops(ctx context.Context, g *patrol.Grid) (int, error) {
	if d := a.cfg.SearchTimeout(); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	started := time.Now()
	n, err := patrol.CountObstructionCycles(g,
		patrol.WithContext(ctx),
		patrol.WithWorkers(a.cfg.Search.Workers),
		patrol.WithLogger(a.logger))
	if err != nil {
		return 0, err
	}
	a.logger.Debug("loops counted", zap.Int("loops", n), zap.Duration("elapsed", time.Since(started)))

	return n, nil
}
