package bench

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/sweep-arcade/internal/physics"
)

func TestRunAgreesWithBruteForce(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"sequential", Options{Bodies: 400, Rounds: 3, World: 400, MaxSize: 15, Seed: 1}},
		{"parallel", Options{Bodies: 400, Rounds: 3, World: 400, MaxSize: 15, Seed: 2, Parallel: true}},
		{"dense", Options{Bodies: 200, Rounds: 2, World: 50, MaxSize: 10, Seed: 3}},
		{"empty world", Options{Bodies: 0, Rounds: 1, World: 10, Seed: 4}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Run(context.Background(), tc.opts)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if !res.OK() {
				t.Errorf("Mismatches = %d", res.Mismatches)
			}
			if res.Rounds != tc.opts.Rounds || !res.Verified || res.Parallel != tc.opts.Parallel {
				t.Errorf("result = %+v", res)
			}
			if res.ID == "" {
				t.Error("result has no ID")
			}
		})
	}
}

func TestRunIsDeterministic(t *testing.T) {
	opts := Options{Bodies: 300, Rounds: 2, World: 200, MaxSize: 10, Seed: 9}
	a, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if a.Pairs != b.Pairs || a.CandidatesX != b.CandidatesX || a.CandidatesY != b.CandidatesY {
		t.Errorf("counts differ: %+v vs %+v", a, b)
	}
	if a.ID == b.ID {
		t.Error("runs should get distinct IDs")
	}
}

func TestRunSkipBrute(t *testing.T) {
	res, err := Run(context.Background(), Options{Bodies: 100, Rounds: 2, World: 100, MaxSize: 5, SkipBrute: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Verified || res.Brute != 0 || res.Speedup() != 0 {
		t.Errorf("brute force should not run: %+v", res)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Run(ctx, DefaultOptions())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, expected context.Canceled", err)
	}
	if res.Rounds != 0 {
		t.Errorf("Rounds = %d, expected 0", res.Rounds)
	}
}

func TestRunInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"negative bodies", Options{Bodies: -1, Rounds: 1, World: 1}},
		{"no rounds", Options{Bodies: 1, Rounds: 0, World: 1}},
		{"no world", Options{Bodies: 1, Rounds: 1, World: 0}},
		{"negative size", Options{Bodies: 1, Rounds: 1, World: 1, MaxSize: -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Run(context.Background(), tc.opts); !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("err = %v, expected ErrInvalidOptions", err)
			}
		})
	}
}

func TestWorldRespectsBounds(t *testing.T) {
	bodies := World(rand.New(rand.NewSource(1)), 500, 100, 8, 2)
	for _, b := range bodies {
		if b.Pos.X < 0 || b.Pos.X > 100 || b.Pos.Y < 0 || b.Pos.Y > 100 {
			t.Fatalf("body %d outside world: %+v", b.ID, b.Pos)
		}
		if b.Size.X < 0 || b.Size.X > 8 || b.Size.Y < 0 || b.Size.Y > 8 {
			t.Fatalf("body %d size out of range: %+v", b.ID, b.Size)
		}
		if b.Layer > physics.LayerEnemy {
			t.Fatalf("body %d layer %s outside the first two", b.ID, b.Layer)
		}
	}
}
