package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arena2d/internal/config"
	"github.com/vovakirdan/arena2d/internal/core"
	"github.com/vovakirdan/arena2d/internal/trace"
)

var (
	flagTraceAll    bool
	flagTraceOut    string
	flagTraceScript string
	flagTraceDT     float64
	flagTraceSave   bool
)

var traceCmd = &cobra.Command{
	Use:   "trace [arena...]",
	Short: "Replay a scripted run headless and export CSV",
	Long: `Replay a movement script against one or more arenas without a terminal
and record the player's state every frame.

A script is a comma separated list of direction:frames segments. Directions
are idle, left, right, up and down, and can be combined with '+'.

With a single arena and no --out, the CSV is written to stdout. With --out,
each arena is written to <out>/<arena>.csv and arenas run concurrently.

Examples:
  arena trace arena > arena.csv
  arena trace --all --out ./traces
  arena trace corridor --script "right:240,left+up:60" --dt 0.02
  arena trace pillars --save`,
	RunE: runTrace,
}

func init() {
	traceCmd.Flags().BoolVar(&flagTraceAll, "all", false, "Trace every configured arena")
	traceCmd.Flags().StringVar(&flagTraceOut, "out", "", "Directory to write <arena>.csv files to")
	traceCmd.Flags().StringVar(&flagTraceScript, "script", "", "Movement script (default: built-in tour)")
	traceCmd.Flags().Float64Var(&flagTraceDT, "dt", 0, "Seconds per frame (default: 1/fps)")
	traceCmd.Flags().BoolVar(&flagTraceSave, "save", false, "Store each traced run in the runs database")
}

func runTrace(cmd *cobra.Command, args []string) error {
	levels, err := traceLevels(args)
	if err != nil {
		return err
	}

	script := trace.DefaultScript()
	if flagTraceScript != "" {
		if script, err = trace.ParseScript(flagTraceScript); err != nil {
			return err
		}
	}

	dt := flagTraceDT
	if dt == 0 {
		dt = 1.0 / float64(flagFPS)
	}

	runner := trace.Runner{
		Physics: arenaConfig.Physics,
		DT:      dt,
		Script:  script,
		Logger:  logger,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	toStdout := flagTraceOut == "" && len(levels) == 1
	results, err := runner.RunAll(ctx, levels, flagTraceOut)
	if err != nil {
		return err
	}

	report := io.Writer(os.Stdout)
	if toStdout {
		if err := trace.Write(os.Stdout, results[0].Frames); err != nil {
			return err
		}
		report = os.Stderr
	}

	for _, res := range results {
		printSummary(report, res.Summary)
	}
	if flagTraceSave {
		saveTraces(results)
	}
	return nil
}

// traceLevels resolves the arenas named on the command line.
func traceLevels(args []string) ([]config.Level, error) {
	if flagTraceAll {
		if len(args) > 0 {
			return nil, fmt.Errorf("--all does not take arena names")
		}
		return arenaConfig.Levels, nil
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("name at least one arena or pass --all")
	}

	levels := make([]config.Level, 0, len(args))
	for _, id := range args {
		level, err := arenaConfig.Level(id)
		if err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}
	return levels, nil
}

func printSummary(w io.Writer, s core.RunSummary) {
	fmt.Fprintf(w, "%-12s  %s  %5d ticks  %6.2fs  %7.2fm  %4d hits  %3d stops\n",
		s.GameID, s.Fingerprint, s.Ticks, s.Elapsed, s.Distance, s.Contacts, s.Rejections)
}

func saveTraces(results []trace.Result) {
	store := openStore()
	if store == nil {
		return
	}
	defer store.Close()

	for _, res := range results {
		id, err := store.SaveRun(res.Summary)
		if err != nil {
			logger.Warn("could not save traced run", "arena", res.Summary.GameID, "error", err)
			continue
		}
		logger.Debug("traced run saved", "arena", res.Summary.GameID, "run", id)
	}
}
