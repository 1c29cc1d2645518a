package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arena2d/internal/registry"
	"github.com/vovakirdan/arena2d/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [arena]",
	Short: "Show stored runs",
	Long: `Show recent runs and totals from the runs database.

Without an arena, shows totals for every arena with stored runs.

Examples:
  arena runs
  arena runs pillars --limit 20
  arena runs corridor --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of recent runs to show")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the stored runs for the arena")
}

func runRuns(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Without an arena, show totals for all of them
	if len(args) == 0 {
		if flagRunsClear {
			fmt.Fprintln(os.Stderr, "Error: --clear needs an arena")
			os.Exit(1)
		}
		printAllStats(store)
		return
	}

	// Check if arena exists
	id := args[0]
	if !registry.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown arena %q\n", id)
		os.Exit(1)
	}

	if flagRunsClear {
		if err := store.ClearRuns(id); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared runs for %s.\n", id)
		return
	}

	printArenaRuns(store, id)
}

func printAllStats(store *storage.Store) {
	all, err := store.AllArenaStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading stats: %v\n", err)
		os.Exit(1)
	}
	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	// Print header
	fmt.Printf("  %-12s  %5s  %10s  %10s  %8s\n", "Arena", "Runs", "Best (m)", "Avg (m)", "Time (s)")
	fmt.Printf("  %-12s  %5s  %10s  %10s  %8s\n", "-----", "----", "--------", "-------", "--------")
	for _, g := range registry.List() {
		st, ok := all[g.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-12s  %5d  %10.2f  %10.2f  %8.1f\n", g.ID, st.Runs, st.BestDistance, st.AvgDistance(), st.TotalTime)
	}
}

func printArenaRuns(store *storage.Store, id string) {
	runs, err := store.RecentRuns(id, flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading runs: %v\n", err)
		os.Exit(1)
	}
	if len(runs) == 0 {
		fmt.Printf("No runs recorded for %s yet.\n", id)
		return
	}

	// Print runs, newest first
	fmt.Printf("Recent runs for %s:\n\n", id)
	fmt.Printf("  %-3s  %10s  %8s  %6s  %6s  %s\n", "#", "Distance", "Time", "Hits", "Stops", "Date")
	for i, r := range runs {
		fmt.Printf("  %-3d  %9.2fm  %7.1fs  %6d  %6d  %s\n",
			i+1, r.Distance, r.Elapsed, r.Contacts, r.Rejections, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	// Show best run and totals
	if best, err := store.BestRun(id); err == nil && best != nil {
		fmt.Printf("\nBest: %.2fm in %.1fs (%s)\n", best.Distance, best.Elapsed, best.ID)
	}
	if st, err := store.ArenaStats(id); err == nil && st != nil {
		fmt.Printf("Total: %d runs, %.1fs played, %.2fm average\n", st.Runs, st.TotalTime, st.AvgDistance())
	}
}
