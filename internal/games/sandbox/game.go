// Package sandbox is a visual playground for the broad phase: random boxes
// drift around the screen, and any box in a reported pair is drawn red.
package sandbox

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/sweep-arcade/internal/config"
	"github.com/vovakirdan/sweep-arcade/internal/core"
	"github.com/vovakirdan/sweep-arcade/internal/physics"
	"github.com/vovakirdan/sweep-arcade/internal/registry"
)

// layerGlyphs gives each layer its own fill so overlapping boxes stay readable.
var layerGlyphs = [physics.LayerCount]rune{'▓', '▒', '░', '█'}

var layerColors = [physics.LayerCount]core.Color{
	core.ColorGreen, core.ColorCyan, core.ColorYellow, core.ColorGray,
}

// box is one drifting body.
type box struct {
	id    physics.EntityID
	layer physics.Layer
	pos   core.Vec2
	size  core.Vec2
	vel   core.Vec2
}

// Game implements the sandbox.
type Game struct {
	runtime core.RuntimeConfig
	cfg     config.SandboxConfig
	rng     *rand.Rand
	minY    float64 // First row below the HUD

	bp     *physics.BroadPhase
	matrix *physics.LayerMatrix
	opts   []physics.Option
	bodies []physics.Body
	pairs  physics.Collisions

	boxes  []box
	nextID physics.EntityID

	paused    bool
	tickCount int
}

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// New creates a new sandbox instance.
func New() *Game {
	return &Game{matrix: physics.DefaultLayerMatrix()}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "sandbox"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Broad-Phase Sandbox"
}

// Reset initializes or restarts the sandbox.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadSandbox(configPath)
	if err != nil {
		cfg = config.DefaultSandboxConfig()
	}
	g.reset(runtime, cfg)
}

func (g *Game) reset(runtime core.RuntimeConfig, cfg config.SandboxConfig) {
	g.runtime = runtime
	g.cfg = cfg
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.minY = 1

	if g.bp == nil {
		g.bp = physics.NewBroadPhase(g.matrix, g.opts...)
	}
	g.pairs = nil
	g.boxes = g.boxes[:0]
	g.nextID = 0
	g.paused = false
	g.tickCount = 0
	g.add(cfg.Bodies)
}

// SetPhysics replaces the layer matrix and broad-phase options from the
// next tick on.
func (g *Game) SetPhysics(m *physics.LayerMatrix, opts ...physics.Option) {
	g.matrix = m
	g.opts = opts
	if g.bp != nil {
		g.bp = physics.NewBroadPhase(m, opts...)
	}
}

// Len returns the number of boxes.
func (g *Game) Len() int {
	return len(g.boxes)
}

// Stats returns the broad-phase counters from the last tick.
func (g *Game) Stats() physics.Stats {
	return g.bp.Stats()
}

// add spawns up to n random boxes, respecting MaxBodies.
func (g *Game) add(n int) {
	w, h := float64(g.runtime.ScreenW), float64(g.runtime.ScreenH)
	for i := 0; i < n && len(g.boxes) < g.cfg.MaxBodies; i++ {
		size := core.V(g.between(g.cfg.MinSize, g.cfg.MaxSize), g.between(g.cfg.MinSize, g.cfg.MaxSize)/2)
		pos := core.V(g.between(0, w-size.X), g.between(g.minY, h-size.Y))
		vel := core.V(g.between(-1, 1), g.between(-1, 1)/2).Scale(g.cfg.MaxSpeed)
		g.nextID++
		g.boxes = append(g.boxes, box{
			id:    g.nextID,
			layer: physics.Layer(g.rng.Intn(int(physics.LayerCount))),
			pos:   pos,
			size:  size,
			vel:   vel,
		})
	}
}

// remove drops up to n of the most recently added boxes.
func (g *Game) remove(n int) {
	g.boxes = g.boxes[:core.Max(0, len(g.boxes)-n)]
}

func (g *Game) between(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Float64()*(hi-lo)
}

// Step advances the sandbox by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if in.Has(core.ActionUp) {
		g.add(g.cfg.Step)
	}
	if in.Has(core.ActionDown) {
		g.remove(g.cfg.Step)
	}

	if !g.paused {
		g.tickCount++
		g.move(g.runtime.DeltaTime())
	}

	g.bodies = g.bodies[:0]
	for _, b := range g.boxes {
		g.bodies = append(g.bodies, physics.NewBody(b.id, core.AABB{Pos: b.pos, Size: b.size}, b.layer))
	}
	g.pairs = g.bp.Detect(g.bodies)

	return core.StepResult{State: g.State(), Collisions: len(g.pairs)}
}

// move advances every box and bounces it off the screen edges.
func (g *Game) move(dt float64) {
	w, h := float64(g.runtime.ScreenW), float64(g.runtime.ScreenH)
	for i := range g.boxes {
		b := &g.boxes[i]
		b.pos = b.pos.Add(b.vel.Scale(dt))
		if b.pos.X < 0 || b.pos.X+b.size.X > w {
			b.vel.X = -b.vel.X
			b.pos.X = core.ClampF(b.pos.X, 0, w-b.size.X)
		}
		if b.pos.Y < g.minY || b.pos.Y+b.size.Y > h {
			b.vel.Y = -b.vel.Y
			b.pos.Y = core.ClampF(b.pos.Y, g.minY, h-b.size.Y)
		}
	}
}

// Render draws the boxes and a stats line.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	colliding := g.collidingIDs()
	for _, b := range g.boxes {
		c := layerColors[b.layer]
		if colliding[b.id] {
			c = core.ColorBrightRed
		}
		dst.DrawRectColored(core.AABB{Pos: b.pos, Size: b.size}.Cells(), layerGlyphs[b.layer], c)
	}

	st := g.bp.Stats()
	hud := fmt.Sprintf(" Bodies: %d  X: %d  Y: %d  Pairs: %d ", st.Bodies, st.CandidatesX, st.CandidatesY, st.Pairs)
	dst.DrawText(1, 0, hud)
	help := " ↑/↓ bodies  P pause "
	dst.DrawTextColored(dst.Width()-len([]rune(help))-1, 0, help, core.ColorGray)

	if g.paused {
		dst.DrawTextCentered(dst.Height()/2, " PAUSED ")
	}
}

// State returns the current game state. The sandbox never ends.
func (g *Game) State() core.GameState {
	return core.GameState{Paused: g.paused}
}

func (g *Game) collidingIDs() map[physics.EntityID]bool {
	ids := make(map[physics.EntityID]bool, 2*len(g.pairs))
	for k := range g.pairs {
		lo, hi := k.IDs()
		ids[lo] = true
		ids[hi] = true
	}
	return ids
}

// Snapshot returns the boxes and pairs from the last Step.
func (g *Game) Snapshot() core.Snapshot {
	colliding := g.collidingIDs()
	snap := core.Snapshot{
		GameID: g.ID(),
		Tick:   g.tickCount,
		Bodies: make([]core.BodySnapshot, 0, len(g.boxes)),
	}
	for _, b := range g.boxes {
		snap.Bodies = append(snap.Bodies, core.BodySnapshot{
			ID:        uint32(b.id),
			X:         b.pos.X,
			Y:         b.pos.Y,
			W:         b.size.X,
			H:         b.size.Y,
			Layer:     b.layer.String(),
			Colliding: colliding[b.id],
		})
	}
	for _, k := range g.pairs.Keys() {
		lo, hi := k.IDs()
		snap.Pairs = append(snap.Pairs, [2]uint32{uint32(lo), uint32(hi)})
	}
	return snap
}

var _ registry.Observable = (*Game)(nil)

// Register the game with the registry
func init() {
	registry.Register("sandbox", func() registry.Game {
		return New()
	})
}
