package physics

import (
	"sort"

	"golang.org/x/sync/errgroup"
)

// Collision is the per-pair record built during one broad-phase call.
// A is always the smaller ID.
type Collision struct {
	A, B     EntityID
	OverlapX bool
	OverlapY bool
}

// Both reports whether the pair overlaps on both axes, i.e. their AABBs intersect.
func (c Collision) Both() bool {
	return c.OverlapX && c.OverlapY
}

// Other returns the ID paired with id, and false if id is not part of the pair.
func (c Collision) Other(id EntityID) (EntityID, bool) {
	switch id {
	case c.A:
		return c.B, true
	case c.B:
		return c.A, true
	}
	return 0, false
}

func (c *Collision) mark(axis Axis) {
	if axis == AxisX {
		c.OverlapX = true
	} else {
		c.OverlapY = true
	}
}

// Collisions maps pair keys to their records.
type Collisions map[PairKey]Collision

// Keys returns the keys in ascending order.
func (c Collisions) Keys() []PairKey {
	keys := make([]PairKey, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Has reports whether the pair (a, b) has a record, in either order.
func (c Collisions) Has(a, b EntityID) bool {
	_, ok := c[MakePairKey(a, b)]
	return ok
}

// Filter returns the records that overlap on both axes.
func Filter(records Collisions) Collisions {
	out := make(Collisions)
	for k, c := range records {
		if c.Both() {
			out[k] = c
		}
	}
	return out
}

// Stats describes the most recent broad-phase call.
type Stats struct {
	Bodies      int // Bodies passed in
	CandidatesX int // Layer-compatible overlaps found on X
	CandidatesY int // Layer-compatible overlaps found on Y
	Records     int // Pairs with at least one axis flag
	Pairs       int // Pairs overlapping on both axes
}

// Option configures a BroadPhase.
type Option func(*BroadPhase)

// WithParallelAxes runs the X and Y sweeps on separate goroutines.
// Each writes its own record map; the maps are merged afterwards, so the
// result is identical to the sequential path.
func WithParallelAxes() Option {
	return func(bp *BroadPhase) {
		bp.parallel = true
	}
}

// BroadPhase finds overlapping, layer-compatible body pairs.
//
// A BroadPhase is not safe for concurrent use; give each simulation its own.
type BroadPhase struct {
	matrix   *LayerMatrix
	parallel bool
	x, y     sweeper
	stats    Stats
}

// NewBroadPhase creates a broad phase that filters pairs through m.
func NewBroadPhase(m *LayerMatrix, opts ...Option) *BroadPhase {
	if m == nil {
		panic("physics: nil layer matrix")
	}
	bp := &BroadPhase{
		matrix: m,
		x:      sweeper{axis: AxisX},
		y:      sweeper{axis: AxisY},
	}
	for _, opt := range opts {
		opt(bp)
	}
	return bp
}

// Matrix returns the layer matrix in use.
func (bp *BroadPhase) Matrix() *LayerMatrix {
	return bp.matrix
}

// SetMatrix replaces the layer matrix for subsequent calls.
func (bp *BroadPhase) SetMatrix(m *LayerMatrix) {
	if m == nil {
		panic("physics: nil layer matrix")
	}
	bp.matrix = m
}

// Parallel reports whether the axis sweeps run concurrently.
func (bp *BroadPhase) Parallel() bool {
	return bp.parallel
}

// Stats returns counters from the most recent Compute or Detect call.
func (bp *BroadPhase) Stats() Stats {
	return bp.stats
}

// Compute sweeps both axes and returns every pair record, including pairs
// that overlap on only one axis. The map is freshly allocated per call and
// owned by the caller. Bodies are only read.
func (bp *BroadPhase) Compute(bodies []Body) Collisions {
	validateBodies(bodies, bp.matrix)

	var records Collisions
	if bp.parallel && len(bodies) > 1 {
		records = bp.computeParallel(bodies)
	} else {
		records = make(Collisions)
		bp.stats.CandidatesX = bp.x.sweep(bodies, bp.matrix, records)
		bp.stats.CandidatesY = bp.y.sweep(bodies, bp.matrix, records)
	}

	bp.stats.Bodies = len(bodies)
	bp.stats.Records = len(records)
	bp.stats.Pairs = 0
	for _, c := range records {
		if c.Both() {
			bp.stats.Pairs++
		}
	}
	return records
}

func (bp *BroadPhase) computeParallel(bodies []Body) Collisions {
	xs := make(Collisions)
	ys := make(Collisions)

	var g errgroup.Group
	g.Go(func() error {
		bp.stats.CandidatesX = bp.x.sweep(bodies, bp.matrix, xs)
		return nil
	})
	g.Go(func() error {
		bp.stats.CandidatesY = bp.y.sweep(bodies, bp.matrix, ys)
		return nil
	})
	_ = g.Wait() // sweeps never fail; bodies were validated above

	for k, yc := range ys {
		if xc, ok := xs[k]; ok {
			xc.OverlapY = true
			xs[k] = xc
		} else {
			xs[k] = yc
		}
	}
	return xs
}

// Detect returns only the pairs whose AABBs intersect: Filter(Compute(bodies)).
func (bp *BroadPhase) Detect(bodies []Body) Collisions {
	return Filter(bp.Compute(bodies))
}

// BruteForce tests every pair directly. It is O(n²) and exists as a
// reference for verifying the sweep; it applies the same layer matrix and
// the same inclusive bounds.
func BruteForce(bodies []Body, m *LayerMatrix) Collisions {
	validateBodies(bodies, m)

	out := make(Collisions)
	for i := range bodies {
		a := &bodies[i]
		for j := i + 1; j < len(bodies); j++ {
			b := &bodies[j]
			if !m.Allowed(a.Layer, b.Layer) {
				continue
			}
			if overlaps(a, b, AxisX) && overlaps(a, b, AxisY) {
				key := MakePairKey(a.ID, b.ID)
				lo, hi := key.IDs()
				out[key] = Collision{A: lo, B: hi, OverlapX: true, OverlapY: true}
			}
		}
	}
	return out
}
