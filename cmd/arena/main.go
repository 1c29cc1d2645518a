// arena is a terminal playground for swept collision: steer a body through
// walls, pillars and crates and watch it slide along whatever it hits.
//
// Usage:
//
//	arena list               - List available arenas
//	arena play <arena>       - Play an arena
//	arena menu               - Pick arenas interactively
//	arena serve              - Start SSH server for remote play
//	arena runs [arena]       - Show stored runs and totals
//	arena trace [arena...]   - Replay a scripted run headless and export CSV
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--db <path>          - Set database path (default: ~/.arena/runs.db)
//	--config <path>      - Use a custom arena config YAML
//	--speed <preset>     - slow, normal, fast or fixed
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Log file for play and menu
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/arena2d/internal/config"
	"github.com/vovakirdan/arena2d/internal/core"
	"github.com/vovakirdan/arena2d/internal/games/arena"
	"github.com/vovakirdan/arena2d/internal/platform/tui"
	"github.com/vovakirdan/arena2d/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagConfig   string
	flagSpeed    string
	flagLogLevel string
	flagLogFile  string

	// Set up before any subcommand runs
	arenaConfig config.ArenaConfig
	logger      *log.Logger
	gameLogger  *log.Logger // where games and TUI sessions log
	closeLog    = func() {}
)

// interactive marks commands that hand the terminal to Bubble Tea.
var interactive = map[string]string{"interactive": "true"}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arena",
	Short: "Arena - swept collision playground in your terminal",
	Long: `Arena drops a body into a level of walls, pillars and crates and lets
you steer it around. Collisions are swept, so the body slides along
whatever it touches instead of tunnelling through it.

Available commands:
  list     - Show all available arenas
  play     - Play a specific arena directly
  menu     - Interactive arena picker
  serve    - Start SSH server for remote play
  runs     - View stored runs
  trace    - Export a scripted run as CSV

Examples:
  arena list
  arena play pillars
  arena menu --speed fast
  arena serve --ssh :2222
  arena trace --all --out ./traces`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		closeLog()
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arena/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom arena config YAML")
	rootCmd.PersistentFlags().StringVar(&flagSpeed, "speed", "", "Speed preset: slow, normal, fast, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (interactive commands log nowhere otherwise)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(traceCmd)
}

// setup loads the arena config, builds the logger and registers one game
// per configured level.
func setup(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "arena",
		Level:           level,
	})

	cfg, err := config.LoadArena(flagConfig)
	if err != nil {
		return err
	}
	if flagSpeed != "" {
		preset, err := config.ParseSpeedPreset(flagSpeed)
		if err != nil {
			return err
		}
		config.ApplySpeedPreset(&cfg, preset)
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	arenaConfig = cfg

	gameLogger = logger
	if cmd.Annotations["interactive"] == "true" {
		gameLogger, closeLog = interactiveLogger()
	}
	arena.Register(cfg, arena.WithLogger(gameLogger))
	logger.Debug("config loaded", "levels", len(cfg.Levels), "speed", cfg.Physics.Speed, "fixed_step", cfg.Physics.FixedStep)
	return nil
}

// interactiveLogger returns a logger that stays off the terminal while a
// Bubble Tea program owns it. The returned closer releases the log file.
func interactiveLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger.Warn("could not open log file", "path", flagLogFile, "error", err)
		return log.New(io.Discard), func() {}
	}
	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "arena",
		Level:           logger.GetLevel(),
	})
	return l, func() { f.Close() }
}

// runtimeConfig sizes the screen to the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg
}

// openStore opens the runs database. Interactive commands keep going
// without history when it cannot be opened.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		return nil
	}
	return store
}

// playOptions builds the TUI options shared by play and menu.
func playOptions(store *storage.Store) tui.Options {
	return tui.Options{
		Store:     store,
		Logger:    gameLogger,
		FixedStep: arenaConfig.Physics.FixedStep,
	}
}
