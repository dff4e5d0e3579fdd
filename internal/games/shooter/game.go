// Package shooter implements a top-down arena shooter driven by the
// sweep-and-prune broad phase. Every tick all bodies go through
// physics.BroadPhase.Detect and the contacts that began this tick decide
// what happens: bullets damage enemies, walls absorb bullets and an enemy
// touching the player ends the game.
package shooter

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/sweep-arcade/internal/config"
	"github.com/vovakirdan/sweep-arcade/internal/core"
	"github.com/vovakirdan/sweep-arcade/internal/physics"
	"github.com/vovakirdan/sweep-arcade/internal/registry"
)

// Visual characters for rendering
const (
	EnemyChar  = '◆'
	BulletChar = '•'
)

// playerGlyphs maps the facing direction to the player sprite.
var playerGlyphs = map[core.Vec2]rune{
	core.V(1, 0):  '▶',
	core.V(-1, 0): '◀',
	core.V(0, -1): '▲',
	core.V(0, 1):  '▼',
}

// enemyColors shades enemies by remaining hits.
var enemyColors = []core.Color{core.ColorBrightRed, core.ColorRed, core.ColorOrange, core.ColorMagenta}

// Game implements the shooter game logic.
type Game struct {
	runtime    core.RuntimeConfig
	cfg        config.ShooterConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	arena      arena

	bp      *physics.BroadPhase
	tracker *physics.Tracker
	matrix  *physics.LayerMatrix // Layer matrix kept across resets
	opts    []physics.Option
	bodies  []physics.Body       // Reused per-tick input buffer
	pairs   physics.Collisions   // Pairs reported on the last tick

	entities []*entity // Spawn order, walls and player first
	byID     map[physics.EntityID]*entity
	nextID   physics.EntityID
	player   *entity
	facing   core.Vec2
	enemies  int // Enemies alive

	cooldown   float64 // Seconds until the player may fire again
	spawnTimer float64 // Seconds until the next enemy spawn

	score     int
	gameOver  bool
	paused    bool
	tickCount int
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = "" // Use config default
	}
}

// New creates a new shooter instance.
func New() *Game {
	return &Game{matrix: physics.DefaultLayerMatrix()}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "shooter"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Sweep Shooter"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadShooter(configPath)
	if err != nil {
		cfg = config.DefaultShooterConfig()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyShooterPreset(&cfg, difficultyPreset)
	}

	g.reset(runtime, cfg)
}

// reset starts a new round with an explicit config.
func (g *Game) reset(runtime core.RuntimeConfig, cfg config.ShooterConfig) {
	g.runtime = runtime
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.arena = newArena(runtime.ScreenW, runtime.ScreenH)

	if g.bp == nil {
		g.bp = physics.NewBroadPhase(g.matrix, g.opts...)
		g.tracker = physics.NewTracker()
	}
	g.tracker.Reset()
	g.pairs = nil

	g.entities = g.entities[:0]
	g.byID = make(map[physics.EntityID]*entity)
	g.nextID = 0
	g.enemies = 0
	for _, w := range g.arena.walls() {
		g.newEntity(physics.LayerWall, w)
	}

	size := core.V(cfg.Player.Width, cfg.Player.Height)
	mid := core.V(float64(runtime.ScreenW)/2, float64(runtime.ScreenH)/2)
	g.player = g.newEntity(physics.LayerPlayer, core.AABB{Pos: mid.Sub(size.Scale(0.5)), Size: size})
	g.facing = core.V(1, 0)

	g.cooldown = 0
	g.spawnTimer = cfg.Enemies.SpawnInterval
	g.score = 0
	g.gameOver = false
	g.paused = false
	g.tickCount = 0
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

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++
	dt := g.runtime.DeltaTime()

	g.movePlayer(in, dt)
	g.fire(in, dt)
	g.spawn(dt)
	g.moveEnemies(dt)
	g.moveBullets(dt)

	g.bodies = g.bodies[:0]
	for _, e := range g.entities {
		if !e.dead {
			g.bodies = append(g.bodies, e.body())
		}
	}
	g.pairs = g.bp.Detect(g.bodies)
	ev := g.tracker.Update(g.pairs)
	for _, k := range ev.Began {
		g.react(k)
	}
	g.sweepDead()

	return core.StepResult{State: g.State(), Collisions: len(g.pairs)}
}

func (g *Game) movePlayer(in core.InputFrame, dt float64) {
	dir := in.Direction()
	if dir.IsZero() {
		return
	}
	dir = dir.Normalize()
	if dir.X == 0 || dir.Y == 0 {
		g.facing = dir
	} else if dir.X > 0 {
		g.facing = core.V(1, 0) // Diagonals keep a horizontal sprite
	} else {
		g.facing = core.V(-1, 0)
	}

	speed := g.cfg.Player.Speed
	if in.Has(core.ActionBoost) {
		speed *= g.cfg.Player.BoostMultiplier
	}
	g.player.pos = g.arena.clamp(g.player.pos.Add(dir.Scale(speed*dt)), g.player.size)
}

func (g *Game) fire(in core.InputFrame, dt float64) {
	if g.cooldown > 0 {
		g.cooldown -= dt
	}
	if !in.Has(core.ActionFire) || g.cooldown > 0 {
		return
	}
	g.addBullet(g.player.center(), g.facing)
	g.cooldown = g.cfg.Bullets.Cooldown
}

func (g *Game) spawn(dt float64) {
	g.spawnTimer -= dt
	if g.spawnTimer > 0 {
		return
	}
	if g.enemies < g.cfg.Enemies.MaxAlive {
		g.spawnEnemy()
	}
	g.spawnTimer = g.difficulty.SpawnInterval(g.cfg.Enemies.SpawnInterval, g.score, g.tickCount)
}

func (g *Game) moveEnemies(dt float64) {
	speed := g.difficulty.Speed(g.cfg.Enemies.Speed, g.score, g.tickCount)
	for _, e := range g.entities {
		if e.layer != physics.LayerEnemy {
			continue
		}
		e.age += dt
		g.steer(e, speed)
		e.pos = g.arena.clamp(e.pos.Add(e.vel.Scale(dt)), e.size)
	}
}

func (g *Game) moveBullets(dt float64) {
	for _, e := range g.entities {
		if e.layer != physics.LayerBullet {
			continue
		}
		e.age += dt
		e.pos = e.pos.Add(e.vel.Scale(dt))
		if e.age >= g.cfg.Bullets.Lifetime || g.arena.outside(e.bounds()) {
			e.dead = true
		}
	}
}

// react applies the effect of a contact that began this tick.
func (g *Game) react(k physics.PairKey) {
	lo, hi := k.IDs()
	a, b := g.byID[lo], g.byID[hi]
	if a == nil || b == nil || a.dead || b.dead {
		return
	}
	if a.layer > b.layer {
		a, b = b, a
	}

	switch {
	case a.layer == physics.LayerPlayer && b.layer == physics.LayerEnemy:
		g.gameOver = true
	case a.layer == physics.LayerEnemy && b.layer == physics.LayerBullet:
		b.dead = true
		a.hits--
		if a.hits <= 0 {
			a.dead = true
			g.score++
		}
	case a.layer == physics.LayerBullet && b.layer == physics.LayerWall:
		a.dead = true
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	colliding := g.collidingIDs()
	for _, e := range g.entities {
		cells := e.bounds().Cells()
		switch e.layer {
		case physics.LayerWall:
			dst.DrawRectColored(cells, '█', core.ColorGray)
		case physics.LayerPlayer:
			c := core.ColorBrightGreen
			if colliding[e.id] {
				c = core.ColorYellow
			}
			dst.DrawRectColored(cells, playerGlyphs[g.facing], c)
		case physics.LayerEnemy:
			dst.DrawRectColored(cells, EnemyChar, enemyColors[core.Clamp(e.hits, 0, len(enemyColors)-1)])
		case physics.LayerBullet:
			dst.DrawRectColored(cells, BulletChar, core.ColorBrightYellow)
		}
	}

	// Draw HUD
	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", g.score))
	info := fmt.Sprintf(" Enemies: %d  Pairs: %d ", g.enemies, len(g.pairs))
	if g.difficulty.IsEnabled() {
		info = fmt.Sprintf(" Lvl: %.0f%% ", 100*g.difficulty.Level(g.score, g.tickCount)) + info
	}
	dst.DrawText(dst.Width()-len([]rune(info))-2, 0, info)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if g.gameOver {
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Register the game with the registry
func init() {
	registry.Register("shooter", func() registry.Game {
		return New()
	})
}
