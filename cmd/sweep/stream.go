package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sweep-arcade/internal/config"
	"github.com/vovakirdan/sweep-arcade/internal/platform/stream"
)

var (
	flagStreamAddr   string
	flagStreamGame   string
	flagStreamWidth  int
	flagStreamHeight int
	flagStreamTPS    int
	flagStreamWatch  bool
)

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Stream a headless game over websocket",
	Long: `Run a game without a terminal and broadcast a JSON snapshot of its
bodies and colliding pairs to every websocket client on each tick.

Endpoints:
  /ws  - websocket, one snapshot message per tick
  /    - plain-text status

When --watch is set and physics.yaml exists on disk, edits to it swap
the layer matrix and sweep settings between ticks. Invalid edits are logged and ignored.

Examples:
  sweep stream
  sweep stream --addr :9000 --game shooter
  sweep stream --physics ./physics.yaml --watch`,
	Run: runStream,
}

func init() {
	defaults := stream.DefaultConfig()
	streamCmd.Flags().StringVar(&flagStreamAddr, "addr", defaults.Address, "HTTP listen address")
	streamCmd.Flags().StringVar(&flagStreamGame, "game", defaults.GameID, "Game to stream")
	streamCmd.Flags().IntVar(&flagStreamWidth, "width", defaults.World.ScreenW, "World width in cells")
	streamCmd.Flags().IntVar(&flagStreamHeight, "height", defaults.World.ScreenH, "World height in cells")
	streamCmd.Flags().IntVar(&flagStreamTPS, "tps", defaults.World.TickRate, "Ticks per second")
	streamCmd.Flags().BoolVar(&flagStreamWatch, "watch", true, "Reload physics.yaml on change")
}

func runStream(_ *cobra.Command, _ []string) {
	logger := newLogger("sweep-stream")

	physicsCfg, err := loadPhysics()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	matrix, err := physicsCfg.Matrix()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := stream.DefaultConfig()
	cfg.Address = flagStreamAddr
	cfg.GameID = flagStreamGame
	cfg.World.ScreenW = flagStreamWidth
	cfg.World.ScreenH = flagStreamHeight
	cfg.World.TickRate = flagStreamTPS
	if flagSeed != 0 {
		cfg.World.Seed = flagSeed
	}
	cfg.Matrix = matrix
	cfg.Physics = physicsCfg.Options()
	if flagStreamWatch {
		cfg.PhysicsPath = config.Resolve(flagPhysics, config.PhysicsFile)
	}

	configureGame(cfg.GameID)

	server, err := stream.NewServer(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
