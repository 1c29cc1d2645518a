package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arena2d/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available arenas",
	Long:  `Shows every arena defined in the loaded config with its layout fingerprint.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No arenas available.")
		return
	}

	fmt.Println("Available arenas:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	// Print header
	fmt.Printf("  %-*s  %-16s  %-6s  %s\n", maxIDLen, "ID", "Layout", "Bodies", "Title")
	fmt.Printf("  %-*s  %-16s  %-6s  %s\n", maxIDLen, "--", "------", "------", "-----")

	// Print arenas with their layout hash
	for _, g := range games {
		level, err := arenaConfig.Level(g.ID)
		if err != nil {
			continue
		}
		fmt.Printf("  %-*s  %-16s  %-6d  %s\n", maxIDLen, g.ID, level.FingerprintHex(), len(level.Bodies), g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'arena play <id>' to play an arena.")
}
