// sweep is a terminal arcade built around a sweep-and-prune broad phase.
//
// Usage:
//
//	sweep list              - List available games
//	sweep play <game>       - Play a game
//	sweep menu              - Start menu to pick games interactively
//	sweep scores [game]     - Show high scores
//	sweep bench             - Time the sweep against brute force
//	sweep history           - Show recorded bench runs
//	sweep matrix            - Show which layers collide
//	sweep serve             - Start SSH server for remote play
//	sweep stream            - Stream a headless game over websocket
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.sweep/scores.db)
//	--physics <path>    - Use a custom physics.yaml
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/sweep-arcade/internal/config"
	"github.com/vovakirdan/sweep-arcade/internal/core"
	"github.com/vovakirdan/sweep-arcade/internal/games/sandbox"
	"github.com/vovakirdan/sweep-arcade/internal/games/shooter"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogLevel   string
	flagPhysics    string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Sweep Arcade - broad-phase collision games in your terminal",
	Long: `Sweep Arcade runs small terminal games on top of a sweep-and-prune
broad phase, and ships tools to benchmark and inspect it.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  scores   - View high scores
  bench    - Benchmark the sweep against brute force
  history  - Show recorded bench runs
  matrix   - Show the layer collision matrix
  serve    - Start SSH server for remote play
  stream   - Stream a headless game to websocket spectators

Examples:
  sweep list
  sweep play shooter
  sweep bench --bodies 5000
  sweep stream --addr :8080 --game sandbox`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.sweep/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagPhysics, "physics", "", "Path to custom physics.yaml")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(matrixCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(streamCmd)
}

// newLogger builds the stderr logger shared by the long-running commands.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadPhysics loads physics.yaml honoring --physics.
func loadPhysics() (config.PhysicsConfig, error) {
	return config.LoadPhysics(flagPhysics)
}

// terminalConfig returns a runtime config sized to the terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// configureGame passes --config and --difficulty to the selected game.
func configureGame(gameID string) {
	switch gameID {
	case "shooter":
		shooter.SetConfigPath(flagConfig)
		shooter.SetDifficultyPreset(flagDifficulty)
	case "sandbox":
		sandbox.SetConfigPath(flagConfig)
	}
}
