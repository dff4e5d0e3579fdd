package physics

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/sweep-arcade/internal/core"
)

func box(id EntityID, x, y, w, h float64, layer Layer) Body {
	return NewBody(id, core.NewAABB(x, y, w, h), layer)
}

func TestBroadPhaseScenarios(t *testing.T) {
	allowAll := NewMatrixBuilder(int(LayerCount))
	for _, a := range Layers() {
		for _, b := range Layers() {
			allowAll.Allow(a, b)
		}
	}

	tests := []struct {
		name     string
		matrix   *LayerMatrix
		bodies   []Body
		expected []PairKey
	}{
		{
			name:   "player and enemy overlap on both axes",
			matrix: DefaultLayerMatrix(),
			bodies: []Body{
				box(1, 0, 0, 10, 10, LayerPlayer),
				box(2, 5, 5, 10, 10, LayerEnemy),
			},
			expected: []PairKey{MakePairKey(1, 2)},
		},
		{
			name:   "far apart",
			matrix: DefaultLayerMatrix(),
			bodies: []Body{
				box(1, 0, 0, 10, 10, LayerPlayer),
				box(2, 20, 20, 10, 10, LayerEnemy),
			},
		},
		{
			name:   "x overlap only",
			matrix: DefaultLayerMatrix(),
			bodies: []Body{
				box(1, 0, 0, 10, 10, LayerPlayer),
				box(2, 5, 20, 10, 10, LayerEnemy),
			},
		},
		{
			name:   "disallowed layers fully overlapping",
			matrix: DefaultLayerMatrix(),
			bodies: []Body{
				box(1, 0, 0, 10, 10, LayerBullet),
				box(2, 0, 0, 10, 10, LayerBullet),
			},
		},
		{
			name:   "empty input",
			matrix: DefaultLayerMatrix(),
		},
		{
			name:   "single body",
			matrix: DefaultLayerMatrix(),
			bodies: []Body{box(1, 0, 0, 10, 10, LayerPlayer)},
		},
		{
			name:   "touching edges collide",
			matrix: DefaultLayerMatrix(),
			bodies: []Body{
				box(1, 0, 0, 10, 10, LayerPlayer),
				box(2, 10, 10, 10, 10, LayerEnemy),
			},
			expected: []PairKey{MakePairKey(1, 2)},
		},
		{
			name:   "zero size bodies at the same point",
			matrix: DefaultLayerMatrix(),
			bodies: []Body{
				box(4, 3, 3, 0, 0, LayerBullet),
				box(9, 3, 3, 0, 0, LayerWall),
			},
			expected: []PairKey{MakePairKey(4, 9)},
		},
		{
			name:   "self layer allowed",
			matrix: allowAll.Build(),
			bodies: []Body{
				box(1, 0, 0, 10, 10, LayerBullet),
				box(2, 0, 0, 10, 10, LayerBullet),
				box(3, 9, 9, 1, 1, LayerBullet),
			},
			expected: []PairKey{MakePairKey(1, 2), MakePairKey(1, 3), MakePairKey(2, 3)},
		},
		{
			name:   "long body spans later ones",
			matrix: DefaultLayerMatrix(),
			bodies: []Body{
				box(10, 0, 0, 100, 2, LayerWall),
				box(11, 20, 1, 2, 2, LayerBullet),
				box(12, 50, 5, 2, 2, LayerBullet),
				box(13, 90, 0, 2, 2, LayerEnemy),
			},
			expected: []PairKey{MakePairKey(10, 11), MakePairKey(10, 13)},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, bp := range []*BroadPhase{
				NewBroadPhase(tc.matrix),
				NewBroadPhase(tc.matrix, WithParallelAxes()),
			} {
				got := bp.Detect(tc.bodies)
				assertKeys(t, got, tc.expected)
				for _, k := range tc.expected {
					c := got[k]
					lo, hi := k.IDs()
					if c.A != lo || c.B != hi {
						t.Errorf("record %v has ids (%d,%d)", k, c.A, c.B)
					}
				}
			}
		})
	}
}

func TestComputeKeepsSingleAxisRecords(t *testing.T) {
	bp := NewBroadPhase(DefaultLayerMatrix())
	bodies := []Body{
		box(1, 0, 0, 10, 10, LayerPlayer),
		box(2, 5, 20, 10, 10, LayerEnemy),
	}

	all := bp.Compute(bodies)
	rec, ok := all[MakePairKey(1, 2)]
	if !ok {
		t.Fatal("Compute should keep the x-only record")
	}
	if !rec.OverlapX || rec.OverlapY {
		t.Errorf("record = %+v, expected x only", rec)
	}

	if len(Filter(all)) != 0 {
		t.Error("Filter should drop single-axis records")
	}

	st := bp.Stats()
	if st.Bodies != 2 || st.CandidatesX != 1 || st.CandidatesY != 0 || st.Records != 1 || st.Pairs != 0 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestComputeDoesNotMutateBodies(t *testing.T) {
	bodies := randomBodies(rand.New(rand.NewSource(3)), 50, 100)
	before := append([]Body(nil), bodies...)

	NewBroadPhase(DefaultLayerMatrix()).Compute(bodies)

	for i := range bodies {
		if bodies[i] != before[i] {
			t.Fatalf("body %d changed: %+v -> %+v", i, before[i], bodies[i])
		}
	}
}

func TestBroadPhaseMatchesBruteForce(t *testing.T) {
	matrices := map[string]*LayerMatrix{
		"default": DefaultLayerMatrix(),
		"dense": NewMatrixBuilder(int(LayerCount)).
			Allow(LayerPlayer, LayerPlayer).
			Allow(LayerEnemy, LayerEnemy).
			Allow(LayerBullet, LayerBullet).
			Allow(LayerPlayer, LayerBullet).
			Allow(LayerEnemy, LayerWall).
			Build(),
	}

	for name, m := range matrices {
		t.Run(name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(42))
			seq := NewBroadPhase(m)
			par := NewBroadPhase(m, WithParallelAxes())

			for round := 0; round < 5; round++ {
				bodies := randomBodies(rng, 1000, 1000)
				want := BruteForce(bodies, m)

				assertKeys(t, seq.Detect(bodies), want.Keys())
				assertKeys(t, par.Detect(bodies), want.Keys())

				if seq.Stats().Pairs != len(want) {
					t.Errorf("Stats().Pairs = %d, expected %d", seq.Stats().Pairs, len(want))
				}
			}
		})
	}
}

func TestBroadPhaseIntegerGrid(t *testing.T) {
	// Integer coordinates make touching edges common, which exercises the
	// inclusive bound on both axes.
	rng := rand.New(rand.NewSource(99))
	m := DefaultLayerMatrix()
	bp := NewBroadPhase(m)

	for round := 0; round < 20; round++ {
		bodies := make([]Body, 200)
		for i := range bodies {
			bodies[i] = box(EntityID(i), float64(rng.Intn(40)), float64(rng.Intn(40)),
				float64(rng.Intn(4)), float64(rng.Intn(4)), Layer(rng.Intn(int(LayerCount))))
		}
		assertKeys(t, bp.Detect(bodies), BruteForce(bodies, m).Keys())
	}
}

func TestBroadPhaseMatchesAABBIntersects(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	allow := NewMatrixBuilder(int(LayerCount))
	for _, a := range Layers() {
		for _, b := range Layers() {
			allow.Allow(a, b)
		}
	}
	bp := NewBroadPhase(allow.Build())

	bodies := randomBodies(rng, 300, 200)
	got := bp.Detect(bodies)
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			want := bodies[i].Bounds().Intersects(bodies[j].Bounds())
			if got.Has(bodies[i].ID, bodies[j].ID) != want {
				t.Fatalf("pair (%d,%d): reported=%v intersects=%v", bodies[i].ID, bodies[j].ID, !want, want)
			}
		}
	}
}

func TestBroadPhaseInvalidInputPanics(t *testing.T) {
	tests := []struct {
		name string
		body Body
	}{
		{"negative width", box(1, 0, 0, -1, 1, LayerPlayer)},
		{"negative height", box(1, 0, 0, 1, -1, LayerPlayer)},
		{"unknown layer", box(1, 0, 0, 1, 1, LayerCount)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			NewBroadPhase(DefaultLayerMatrix()).Compute([]Body{tc.body, box(2, 0, 0, 1, 1, LayerEnemy)})
		})
	}
}

func TestSetMatrix(t *testing.T) {
	bodies := []Body{
		box(1, 0, 0, 10, 10, LayerBullet),
		box(2, 0, 0, 10, 10, LayerBullet),
	}
	bp := NewBroadPhase(DefaultLayerMatrix())
	if len(bp.Detect(bodies)) != 0 {
		t.Fatal("bullets should not collide with the default matrix")
	}

	bp.SetMatrix(NewMatrixBuilder(int(LayerCount)).Allow(LayerBullet, LayerBullet).Build())
	if len(bp.Detect(bodies)) != 1 {
		t.Error("bullets should collide after SetMatrix")
	}
}

func TestCollisionOther(t *testing.T) {
	c := Collision{A: 3, B: 8}
	if id, ok := c.Other(3); !ok || id != 8 {
		t.Errorf("Other(3) = %d, %v", id, ok)
	}
	if id, ok := c.Other(8); !ok || id != 3 {
		t.Errorf("Other(8) = %d, %v", id, ok)
	}
	if _, ok := c.Other(5); ok {
		t.Error("Other(5) should report false")
	}
}

func BenchmarkDetect1000(b *testing.B) {
	bodies := randomBodies(rand.New(rand.NewSource(1)), 1000, 1000)
	bp := NewBroadPhase(DefaultLayerMatrix())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bp.Detect(bodies)
	}
}

func BenchmarkBruteForce1000(b *testing.B) {
	bodies := randomBodies(rand.New(rand.NewSource(1)), 1000, 1000)
	m := DefaultLayerMatrix()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		BruteForce(bodies, m)
	}
}

func randomBodies(rng *rand.Rand, n int, world float64) []Body {
	bodies := make([]Body, n)
	for i := range bodies {
		bodies[i] = box(
			EntityID(i*7+1),
			rng.Float64()*world,
			rng.Float64()*world,
			rng.Float64()*world/50,
			rng.Float64()*world/50,
			Layer(rng.Intn(int(LayerCount))),
		)
	}
	return bodies
}

func assertKeys(t *testing.T, got Collisions, want []PairKey) {
	t.Helper()
	gotKeys := got.Keys()
	if len(gotKeys) != len(want) {
		t.Fatalf("got %d pairs %v, expected %d %v", len(gotKeys), gotKeys, len(want), want)
	}
	wantSet := make(map[PairKey]bool, len(want))
	for _, k := range want {
		wantSet[k] = true
	}
	for _, k := range gotKeys {
		if !wantSet[k] {
			t.Errorf("unexpected pair %v", k)
		}
		if c := got[k]; !c.Both() {
			t.Errorf("pair %v is not flagged on both axes: %+v", k, c)
		}
	}
}
