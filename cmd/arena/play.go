package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arena2d/internal/platform/tui"
	"github.com/vovakirdan/arena2d/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <arena>",
	Short: "Play an arena",
	Long: `Start playing the specified arena.

Controls:
  WASD/Arrows  - Move (keys stay held briefly after their last repeat)
  P            - Pause
  R            - Respawn
  ` + "`" + `/F3         - Debug overlay
  Ctrl+S       - Screenshot to ~/.arena/screenshots
  Esc/Q        - Quit

Speed options:
  slow    - Gentle acceleration
  normal  - Default acceleration
  fast    - Quick acceleration
  fixed   - Default acceleration, steps by 1/fps instead of measured time

Examples:
  arena play arena
  arena play corridor --speed fast
  arena play pillars --fps 30 --speed fixed
  arena play mine --config ./my-arenas.yaml`,
	Args:        cobra.ExactArgs(1),
	Annotations: interactive,
	Run:         runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	id := args[0]

	if !registry.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown arena %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'arena list' to see available arenas.")
		os.Exit(1)
	}

	game, err := registry.Create(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating arena: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, runtimeConfig(), playOptions(store)); err != nil {
		fmt.Fprintf(os.Stderr, "Error running arena: %v\n", err)
		os.Exit(1)
	}
}
