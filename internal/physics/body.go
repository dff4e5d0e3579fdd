package physics

import (
	"fmt"
	"math"

	"github.com/vovakirdan/sweep-arcade/internal/core"
)

// Axis selects which coordinate a sweep projects bodies onto.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

// String returns "x" or "y".
func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// Body is the broad phase's read-only view of a collidable entity.
type Body struct {
	ID    EntityID
	Pos   core.Vec2 // Top-left corner of the AABB
	Size  core.Vec2 // Width and height, both >= 0
	Layer Layer
}

// NewBody creates a body from a bounding box.
func NewBody(id EntityID, box core.AABB, layer Layer) Body {
	return Body{ID: id, Pos: box.Pos, Size: box.Size, Layer: layer}
}

// Bounds returns the body's AABB.
func (b Body) Bounds() core.AABB {
	return core.AABB{Pos: b.Pos, Size: b.Size}
}

// lower returns the interval start on the axis.
func (b *Body) lower(axis Axis) float64 {
	if axis == AxisX {
		return b.Pos.X
	}
	return b.Pos.Y
}

// upper returns the interval end on the axis.
func (b *Body) upper(axis Axis) float64 {
	if axis == AxisX {
		return b.Pos.X + b.Size.X
	}
	return b.Pos.Y + b.Size.Y
}

// overlaps reports whether the projections of a and b on the axis share at
// least one point. Touching intervals overlap, matching the sweep's
// retirement rule (upper < lower).
func overlaps(a, b *Body, axis Axis) bool {
	return a.upper(axis) >= b.lower(axis) && b.upper(axis) >= a.lower(axis)
}

// validateBodies panics on malformed input: a layer the matrix does not
// cover, a negative size or a non-finite coordinate. Such a body means the
// entity was built wrong upstream; there is nothing sensible to do with it here.
func validateBodies(bodies []Body, m *LayerMatrix) {
	for i := range bodies {
		b := &bodies[i]
		if int(b.Layer) >= m.Size() {
			panic(fmt.Sprintf("physics: body %d has layer %v outside a %d-layer matrix", b.ID, b.Layer, m.Size()))
		}
		if !finite(b.Pos.X) || !finite(b.Pos.Y) || !finite(b.Size.X) || !finite(b.Size.Y) {
			panic(fmt.Sprintf("physics: body %d has non-finite bounds %+v %+v", b.ID, b.Pos, b.Size))
		}
		if b.Size.X < 0 || b.Size.Y < 0 {
			panic(fmt.Sprintf("physics: body %d has negative size %+v", b.ID, b.Size))
		}
	}
	verifyUniqueIDs(bodies)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
