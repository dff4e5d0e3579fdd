package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/sweep-arcade/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show recorded bench runs",
	Long: `List recent benchmark runs, or show one run in full.

Examples:
  sweep history
  sweep history --limit 5
  sweep history 3f2b9c1e-...
  sweep history --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete all recorded runs")
}

func runHistory(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearBenchRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Println("Bench history cleared.")
		return
	}

	if len(args) == 1 {
		showRun(store, args[0])
		return
	}

	runs, err := store.RecentBenchRuns(flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	if len(runs) == 0 {
		fmt.Println("No bench runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'sweep bench' to record one.")
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("ID", "Date", "Bodies", "Rounds", "Sweep/rnd", "Speedup", "Pairs", "OK")
	for _, r := range runs {
		t.Row(
			r.ID[:8],
			r.StartedAt.Format("2006-01-02 15:04"),
			fmt.Sprint(r.Bodies),
			fmt.Sprint(r.Rounds),
			perRound(r.Sweep, r.Rounds),
			speedup(r),
			fmt.Sprint(r.Pairs),
			verdict(r),
		)
	}
	fmt.Println(t.String())
}

func showRun(store *storage.Store, id string) {
	r, err := store.BenchRunByID(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if r == nil {
		fmt.Fprintf(os.Stderr, "Error: no bench run %q\n", id)
		os.Exit(1)
	}

	fmt.Printf("Run %s\n\n", r.ID)
	fmt.Printf("  started      %s\n", r.StartedAt.Format(time.RFC3339))
	fmt.Printf("  bodies       %d\n", r.Bodies)
	fmt.Printf("  rounds       %d\n", r.Rounds)
	fmt.Printf("  seed         %d\n", r.Seed)
	fmt.Printf("  parallel     %v\n", r.Parallel)
	fmt.Printf("  sweep/round  %s\n", perRound(r.Sweep, r.Rounds))
	fmt.Printf("  brute/round  %s\n", perRound(r.Brute, r.Rounds))
	fmt.Printf("  speedup      %s\n", speedup(*r))
	fmt.Printf("  x candidates %d\n", r.CandidatesX)
	fmt.Printf("  y candidates %d\n", r.CandidatesY)
	fmt.Printf("  pairs        %d\n", r.Pairs)
	fmt.Printf("  result       %s\n", verdict(*r))
}

func perRound(total time.Duration, rounds int) string {
	if rounds <= 0 || total <= 0 {
		return "-"
	}
	return (total / time.Duration(rounds)).Round(time.Microsecond).String()
}

func speedup(r storage.BenchRun) string {
	if !r.Verified || r.Sweep <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1fx", float64(r.Brute)/float64(r.Sweep))
}

func verdict(r storage.BenchRun) string {
	switch {
	case !r.Verified:
		return "-"
	case r.Mismatches > 0:
		return "NO"
	}
	return "yes"
}
