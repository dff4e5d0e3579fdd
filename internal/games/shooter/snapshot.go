package shooter

import (
	"github.com/vovakirdan/sweep-arcade/internal/core"
	"github.com/vovakirdan/sweep-arcade/internal/physics"
	"github.com/vovakirdan/sweep-arcade/internal/registry"
)

var _ registry.Observable = (*Game)(nil)

// collidingIDs returns the living entities in a pair reported on the last tick.
func (g *Game) collidingIDs() map[physics.EntityID]bool {
	ids := make(map[physics.EntityID]bool, 2*len(g.pairs))
	for k := range g.pairs {
		lo, hi := k.IDs()
		if g.byID[lo] == nil || g.byID[hi] == nil {
			continue
		}
		ids[lo] = true
		ids[hi] = true
	}
	return ids
}

// Snapshot returns the arena as of the last Step.
// Pairs involving an entity removed during that Step are left out.
func (g *Game) Snapshot() core.Snapshot {
	colliding := g.collidingIDs()
	snap := core.Snapshot{
		GameID: g.ID(),
		Tick:   g.tickCount,
		Score:  g.score,
		Bodies: make([]core.BodySnapshot, 0, len(g.entities)),
	}
	for _, e := range g.entities {
		snap.Bodies = append(snap.Bodies, core.BodySnapshot{
			ID:        uint32(e.id),
			X:         e.pos.X,
			Y:         e.pos.Y,
			W:         e.size.X,
			H:         e.size.Y,
			Layer:     e.layer.String(),
			Colliding: colliding[e.id],
		})
	}
	for _, k := range g.pairs.Keys() {
		lo, hi := k.IDs()
		if g.byID[lo] != nil && g.byID[hi] != nil {
			snap.Pairs = append(snap.Pairs, [2]uint32{uint32(lo), uint32(hi)})
		}
	}
	return snap
}
