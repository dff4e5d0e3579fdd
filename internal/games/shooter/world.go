package shooter

import (
	"math"

	"github.com/vovakirdan/sweep-arcade/internal/core"
	"github.com/vovakirdan/sweep-arcade/internal/physics"
)

// arcDuration is how long an arcing enemy keeps curving before it heads
// straight for the player, in seconds.
const arcDuration = 2.0

// entity is anything in the arena that takes part in collision detection.
type entity struct {
	id    physics.EntityID
	layer physics.Layer
	pos   core.Vec2 // Top-left corner
	size  core.Vec2
	vel   core.Vec2 // Cells per second
	hits  int       // Remaining hits for enemies
	age   float64   // Seconds since spawn
	arc   float64   // Signed curve strength for enemies, 0 = direct
	dead  bool
}

func (e *entity) bounds() core.AABB {
	return core.AABB{Pos: e.pos, Size: e.size}
}

func (e *entity) center() core.Vec2 {
	return e.bounds().Center()
}

func (e *entity) body() physics.Body {
	return physics.NewBody(e.id, e.bounds(), e.layer)
}

// arena is the playable rectangle inside the border walls.
type arena struct {
	minX, minY, maxX, maxY float64
}

// newArena returns the interior for a screen of the given size. Row 0 is
// reserved for the HUD, the border walls are one cell thick.
func newArena(w, h int) arena {
	return arena{minX: 1, minY: 2, maxX: float64(w - 1), maxY: float64(h - 1)}
}

// clamp keeps a box of the given size inside the arena.
func (a arena) clamp(pos, size core.Vec2) core.Vec2 {
	return core.V(
		core.ClampF(pos.X, a.minX, math.Max(a.minX, a.maxX-size.X)),
		core.ClampF(pos.Y, a.minY, math.Max(a.minY, a.maxY-size.Y)),
	)
}

// outside reports whether a box has fully left the walled area.
func (a arena) outside(b core.AABB) bool {
	max := b.Max()
	return max.X < a.minX-1 || b.Pos.X > a.maxX+1 || max.Y < a.minY-1 || b.Pos.Y > a.maxY+1
}

// walls returns the four border boxes: top, bottom, left, right.
func (a arena) walls() []core.AABB {
	w := a.maxX + 1
	h := a.maxY - a.minY + 2
	return []core.AABB{
		core.NewAABB(0, a.minY-1, w, 1),
		core.NewAABB(0, a.maxY, w, 1),
		core.NewAABB(0, a.minY-1, 1, h),
		core.NewAABB(a.maxX, a.minY-1, 1, h),
	}
}

// newEntity allocates an entity with the next free ID.
func (g *Game) newEntity(layer physics.Layer, box core.AABB) *entity {
	g.nextID++
	e := &entity{
		id:    g.nextID,
		layer: layer,
		pos:   box.Pos,
		size:  box.Size,
	}
	g.entities = append(g.entities, e)
	g.byID[e.id] = e
	return e
}

// addEnemy places an enemy at pos. arc is the signed curve strength.
func (g *Game) addEnemy(pos core.Vec2, arc float64) *entity {
	e := g.newEntity(physics.LayerEnemy,
		core.AABB{Pos: pos, Size: core.V(g.cfg.Enemies.Width, g.cfg.Enemies.Height)})
	e.hits = g.cfg.Enemies.Hits
	e.arc = arc
	g.enemies++
	return e
}

// addBullet fires a bullet centered on from, travelling along dir.
func (g *Game) addBullet(from, dir core.Vec2) *entity {
	s := g.cfg.Bullets.Size
	e := g.newEntity(physics.LayerBullet,
		core.NewAABB(from.X-s/2, from.Y-s/2, s, s))
	e.vel = dir.Normalize().Scale(g.cfg.Bullets.Speed)
	return e
}

// spawnEnemy places a new enemy on a random edge of the arena, away
// from the player when possible.
func (g *Game) spawnEnemy() {
	size := core.V(g.cfg.Enemies.Width, g.cfg.Enemies.Height)
	minDist := math.Min(g.arena.maxX-g.arena.minX, g.arena.maxY-g.arena.minY) / 3

	var pos core.Vec2
	for attempt := 0; attempt < 4; attempt++ {
		pos = g.edgePoint(size)
		if pos.Add(size.Scale(0.5)).Sub(g.player.center()).Len() >= minDist {
			break
		}
	}

	arc := 0.0
	if g.rng.Float64() < g.cfg.Enemies.ArcChance {
		arc = 0.5 + g.rng.Float64()
		if g.rng.Intn(2) == 0 {
			arc = -arc
		}
	}
	g.addEnemy(pos, arc)
}

// edgePoint picks a random position along one of the four arena edges.
func (g *Game) edgePoint(size core.Vec2) core.Vec2 {
	a := g.arena
	rx := a.minX + g.rng.Float64()*math.Max(0, a.maxX-a.minX-size.X)
	ry := a.minY + g.rng.Float64()*math.Max(0, a.maxY-a.minY-size.Y)
	switch g.rng.Intn(4) {
	case 0:
		return core.V(rx, a.minY)
	case 1:
		return core.V(rx, a.maxY-size.Y)
	case 2:
		return core.V(a.minX, ry)
	default:
		return core.V(a.maxX-size.X, ry)
	}
}

// steer sets an enemy's velocity toward the player. Arcing enemies add a
// perpendicular component that fades out over arcDuration.
func (g *Game) steer(e *entity, speed float64) {
	to := g.player.center().Sub(e.center())
	if to.IsZero() {
		e.vel = core.Vec2{}
		return
	}
	dir := to.Normalize()
	if e.arc != 0 && e.age < arcDuration {
		fade := 1 - e.age/arcDuration
		perp := core.V(-dir.Y, dir.X).Scale(e.arc * fade)
		dir = dir.Add(perp).Normalize()
	}
	e.vel = dir.Scale(speed)
}

// sweepDead drops entities marked dead, keeping spawn order.
func (g *Game) sweepDead() {
	alive := g.entities[:0]
	for _, e := range g.entities {
		if e.dead {
			delete(g.byID, e.id)
			if e.layer == physics.LayerEnemy {
				g.enemies--
			}
			continue
		}
		alive = append(alive, e)
	}
	for i := len(alive); i < len(g.entities); i++ {
		g.entities[i] = nil
	}
	g.entities = alive
}
