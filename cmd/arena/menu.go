package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arena2d/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with an arena picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play an arena, Tab to browse
stored runs. Esc in an arena returns to the menu.

Examples:
  arena menu
  arena menu --fps 30
  arena menu --db ./runs.db`,
	Annotations: interactive,
	Run:         runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.RunSession(runtimeConfig(), playOptions(store)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
