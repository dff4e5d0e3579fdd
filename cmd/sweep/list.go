package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sweep-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all games registered in the arcade.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %-22s  %s\n", maxIDLen, "ID", "Title", "Stream")
	fmt.Printf("  %-*s  %-22s  %s\n", maxIDLen, "--", "-----", "------")

	for _, g := range games {
		streamable := "no"
		if game, err := registry.Create(g.ID); err == nil {
			if _, ok := game.(registry.Observable); ok {
				streamable = "yes"
			}
		}
		fmt.Printf("  %-*s  %-22s  %s\n", maxIDLen, g.ID, g.Title, streamable)
	}

	fmt.Println()
	fmt.Println("Run 'sweep play <id>' to play a game.")
}
