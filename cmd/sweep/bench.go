package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/sweep-arcade/internal/bench"
	"github.com/vovakirdan/sweep-arcade/internal/storage"
)

var (
	flagBodies   int
	flagRounds   int
	flagWorld    float64
	flagMaxSize  float64
	flagParallel bool
	flagNoVerify bool
	flagNoSave   bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark the sweep against brute force",
	Long: `Generate random worlds, run the sweep-and-prune broad phase and the
all-pairs reference on each, and check that both report the same pairs.

The layer matrix comes from physics.yaml (see --physics). Results are
saved to the scores database unless --no-save is given.

Examples:
  sweep bench
  sweep bench --bodies 10000 --rounds 5
  sweep bench --parallel --no-verify
  sweep bench --seed 42 --world 200`,
	Run: runBench,
}

func init() {
	defaults := bench.DefaultOptions()
	benchCmd.Flags().IntVar(&flagBodies, "bodies", defaults.Bodies, "Bodies per world")
	benchCmd.Flags().IntVar(&flagRounds, "rounds", defaults.Rounds, "Worlds to generate")
	benchCmd.Flags().Float64Var(&flagWorld, "world", defaults.World, "Side of the square world")
	benchCmd.Flags().Float64Var(&flagMaxSize, "max-size", defaults.MaxSize, "Largest body side")
	benchCmd.Flags().BoolVar(&flagParallel, "parallel", false, "Sweep axes concurrently (default from physics.yaml)")
	benchCmd.Flags().BoolVar(&flagNoVerify, "no-verify", false, "Skip the brute-force comparison")
	benchCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run")
}

func runBench(cmd *cobra.Command, _ []string) {
	logger := newLogger("sweep-bench")

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

	parallel := physicsCfg.ParallelAxes
	if cmd.Flags().Changed("parallel") {
		parallel = flagParallel
	}
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := bench.Options{
		Bodies:    flagBodies,
		Rounds:    flagRounds,
		World:     flagWorld,
		MaxSize:   flagMaxSize,
		Seed:      seed,
		Parallel:  parallel,
		SkipBrute: flagNoVerify,
		Matrix:    matrix,
		Logger:    logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("running benchmark", "bodies", opts.Bodies, "rounds", opts.Rounds, "seed", opts.Seed, "parallel", opts.Parallel)
	res, err := bench.Run(ctx, opts)
	switch {
	case errors.Is(err, context.Canceled):
		logger.Warn("benchmark interrupted", "rounds", res.Rounds)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if res.Rounds == 0 {
		return
	}

	fmt.Println(renderResult(res))

	if !flagNoSave {
		saveResult(res, logger)
	}

	if !res.OK() {
		fmt.Fprintf(os.Stderr, "Error: sweep disagreed with brute force in %d rounds\n", res.Mismatches)
		os.Exit(1)
	}
}

// renderResult formats a result as a two-column table.
func renderResult(res bench.Result) string {
	verdict := "not verified"
	if res.Verified {
		verdict = "agrees with brute force"
		if !res.OK() {
			verdict = fmt.Sprintf("MISMATCH in %d rounds", res.Mismatches)
		}
	}
	speedup := "-"
	if s := res.Speedup(); s > 0 {
		speedup = fmt.Sprintf("%.1fx", s)
	}
	brute := "-"
	if res.Verified && res.Rounds > 0 {
		brute = (res.Brute / time.Duration(res.Rounds)).Round(time.Microsecond).String()
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if col == 0 {
				return style.Foreground(lipgloss.Color("245"))
			}
			return style
		}).
		Headers("bench", res.ID[:8]).
		Row("bodies", fmt.Sprint(res.Bodies)).
		Row("rounds", fmt.Sprint(res.Rounds)).
		Row("seed", fmt.Sprint(res.Seed)).
		Row("parallel axes", fmt.Sprint(res.Parallel)).
		Row("sweep / round", res.PerRound().Round(time.Microsecond).String()).
		Row("brute / round", brute).
		Row("speedup", speedup).
		Row("x candidates", fmt.Sprint(res.CandidatesX)).
		Row("y candidates", fmt.Sprint(res.CandidatesY)).
		Row("pairs", fmt.Sprint(res.Pairs)).
		Row("result", verdict)
	return t.String()
}

// saveResult records res. Failures are logged, not fatal.
func saveResult(res bench.Result, logger *log.Logger) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, run not saved", "error", err)
		return
	}
	defer store.Close()

	_, err = store.SaveBenchRun(storage.BenchRun{
		ID:          res.ID,
		Bodies:      res.Bodies,
		Rounds:      res.Rounds,
		Seed:        res.Seed,
		Parallel:    res.Parallel,
		Sweep:       res.Sweep,
		Brute:       res.Brute,
		Pairs:       res.Pairs,
		CandidatesX: res.CandidatesX,
		CandidatesY: res.CandidatesY,
		Mismatches:  res.Mismatches,
		Verified:    res.Verified,
		StartedAt:   res.StartedAt,
	})
	if err != nil {
		logger.Warn("could not save run", "error", err)
	}
}
