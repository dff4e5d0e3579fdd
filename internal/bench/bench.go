// Package bench measures the sweep-and-prune broad phase against the
// all-pairs reference on random worlds and checks that both agree.
package bench

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/sweep-arcade/internal/core"
	"github.com/vovakirdan/sweep-arcade/internal/physics"
)

// ErrInvalidOptions is returned when Options cannot describe a run.
var ErrInvalidOptions = errors.New("bench: invalid options")

// Options describes a benchmark run.
type Options struct {
	Bodies    int                  // Bodies per world
	Rounds    int                  // Worlds generated and checked
	World     float64              // Side of the square world
	MaxSize   float64              // Largest body side
	Seed      int64                // RNG seed for world generation
	Parallel  bool                 // Sweep axes concurrently
	SkipBrute bool                 // Time the sweep only, no verification
	Matrix    *physics.LayerMatrix // Defaults to physics.DefaultLayerMatrix
	Logger    *log.Logger          // Optional per-round debug output
}

// DefaultOptions returns a medium-sized run.
func DefaultOptions() Options {
	return Options{
		Bodies:  1000,
		Rounds:  10,
		World:   1000,
		MaxSize: 20,
		Seed:    1,
	}
}

// Result summarizes a run.
type Result struct {
	ID          string
	Bodies      int
	Rounds      int
	Seed        int64
	Parallel    bool
	Sweep       time.Duration // Total time in BroadPhase.Detect
	Brute       time.Duration // Total time in BruteForce, 0 if skipped
	Pairs       int           // Pairs reported, summed over rounds
	CandidatesX int           // X-axis records, summed over rounds
	CandidatesY int           // Y-axis records, summed over rounds
	Mismatches  int           // Rounds where sweep and brute force disagreed
	Verified    bool          // Brute force ran on every round
	StartedAt   time.Time
}

// Speedup returns how many times faster the sweep was than brute force.
func (r Result) Speedup() float64 {
	if r.Sweep <= 0 || r.Brute <= 0 {
		return 0
	}
	return float64(r.Brute) / float64(r.Sweep)
}

// PerRound returns the mean sweep time per world.
func (r Result) PerRound() time.Duration {
	if r.Rounds == 0 {
		return 0
	}
	return r.Sweep / time.Duration(r.Rounds)
}

// OK reports whether every verified round agreed.
func (r Result) OK() bool {
	return r.Mismatches == 0
}

func (o Options) validate() error {
	switch {
	case o.Bodies < 0:
		return fmt.Errorf("%w: bodies must be >= 0, got %d", ErrInvalidOptions, o.Bodies)
	case o.Rounds <= 0:
		return fmt.Errorf("%w: rounds must be > 0, got %d", ErrInvalidOptions, o.Rounds)
	case o.World <= 0:
		return fmt.Errorf("%w: world must be > 0, got %g", ErrInvalidOptions, o.World)
	case o.MaxSize < 0:
		return fmt.Errorf("%w: max size must be >= 0, got %g", ErrInvalidOptions, o.MaxSize)
	case o.Bodies > 0 && uint64(o.Bodies) > uint64(physics.MaxEntityID):
		return fmt.Errorf("%w: too many bodies", ErrInvalidOptions)
	}
	return nil
}

// Run executes the benchmark. The context is checked between rounds; a
// cancelled run returns the partial result with the context error.
func Run(ctx context.Context, opts Options) (Result, error) {
	if err := opts.validate(); err != nil {
		return Result{}, err
	}
	m := opts.Matrix
	if m == nil {
		m = physics.DefaultLayerMatrix()
	}

	var bpOpts []physics.Option
	if opts.Parallel {
		bpOpts = append(bpOpts, physics.WithParallelAxes())
	}
	bp := physics.NewBroadPhase(m, bpOpts...)
	rng := rand.New(rand.NewSource(opts.Seed))

	res := Result{
		ID:        uuid.NewString(),
		Bodies:    opts.Bodies,
		Seed:      opts.Seed,
		Parallel:  opts.Parallel,
		Verified:  !opts.SkipBrute,
		StartedAt: time.Now(),
	}

	for round := 0; round < opts.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("bench: cancelled after %d rounds: %w", round, err)
		}

		bodies := World(rng, opts.Bodies, opts.World, opts.MaxSize, m.Size())

		start := time.Now()
		got := bp.Detect(bodies)
		res.Sweep += time.Since(start)

		st := bp.Stats()
		res.Pairs += st.Pairs
		res.CandidatesX += st.CandidatesX
		res.CandidatesY += st.CandidatesY
		res.Rounds++

		if opts.SkipBrute {
			continue
		}

		start = time.Now()
		want := physics.BruteForce(bodies, m)
		res.Brute += time.Since(start)

		if !sameKeys(got, want) {
			res.Mismatches++
			if opts.Logger != nil {
				opts.Logger.Warn("sweep disagrees with brute force", "round", round, "sweep", len(got), "brute", len(want))
			}
		}
		if opts.Logger != nil {
			opts.Logger.Debug("round done", "round", round, "pairs", st.Pairs, "x", st.CandidatesX, "y", st.CandidatesY)
		}
	}
	return res, nil
}

// World generates n random bodies in a square of side world. Layers are
// drawn uniformly from the first layers values.
func World(rng *rand.Rand, n int, world, maxSize float64, layers int) []physics.Body {
	bodies := make([]physics.Body, n)
	for i := range bodies {
		w := rng.Float64() * maxSize
		h := rng.Float64() * maxSize
		bodies[i] = physics.NewBody(
			physics.EntityID(i),
			core.NewAABB(rng.Float64()*world, rng.Float64()*world, w, h),
			physics.Layer(rng.Intn(layers)),
		)
	}
	return bodies
}

func sameKeys(a, b physics.Collisions) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
