package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sweep-arcade/internal/registry"
	"github.com/vovakirdan/sweep-arcade/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top 10 high scores for the specified game, or a summary
of every game when no game is given.

Examples:
  sweep scores
  sweep scores shooter`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		printSummary(store)
		return
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'sweep list' to see available games.")
		os.Exit(1)
	}
	printTop(store, gameID)
}

// printSummary shows per-game stats for every registered game.
func printSummary(store *storage.Store) {
	fmt.Println("Score summary")
	fmt.Println()
	fmt.Printf("  %-10s  %-6s  %-6s  %s\n", "Game", "Plays", "Best", "Last played")
	fmt.Printf("  %-10s  %-6s  %-6s  %s\n", "----", "-----", "----", "-----------")

	for _, g := range registry.List() {
		stats, err := store.GetGameStats(g.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving stats for %s: %v\n", g.ID, err)
			continue
		}
		last := "never"
		if stats.GamesCount > 0 {
			last = stats.LastPlayed.Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-10s  %-6d  %-6d  %s\n", g.ID, stats.GamesCount, stats.HighScore, last)
	}
}

// printTop shows the top 10 scores for one game.
func printTop(store *storage.Store, gameID string) {
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'sweep play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", scores[0].Score)
}
