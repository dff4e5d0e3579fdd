package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sweep-arcade/internal/config"
	"github.com/vovakirdan/sweep-arcade/internal/core"
	"github.com/vovakirdan/sweep-arcade/internal/physics"
	"github.com/vovakirdan/sweep-arcade/internal/registry"
)

// Config holds configuration for the stream server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// GameID is the registered game to run headless.
	GameID string

	// World is the screen the game believes it runs on.
	World core.RuntimeConfig

	// PhysicsPath is the physics.yaml to watch. Empty disables reloads.
	PhysicsPath string

	// Matrix overrides the game's layer matrix at start when non-nil.
	Matrix *physics.LayerMatrix

	// Physics holds broad-phase options applied alongside Matrix.
	Physics []physics.Option
}

// DefaultConfig streams the sandbox on :8080.
func DefaultConfig() Config {
	return Config{
		Address: ":8080",
		GameID:  "sandbox",
		World:   core.RuntimeConfig{ScreenW: 120, ScreenH: 40, TickRate: 30, Seed: 1},
	}
}

// physicsSwap is a queued change of broad-phase settings.
type physicsSwap struct {
	matrix *physics.LayerMatrix
	opts   []physics.Option
}

// Server steps a game and broadcasts its snapshots.
type Server struct {
	config Config
	game   registry.Observable
	hub    *Hub
	logger *log.Logger
	input  core.InputFrame

	mu      sync.Mutex
	pending *physicsSwap // applied before the next tick

	tick     atomic.Int64
	restarts atomic.Int64
}

// NewServer creates a server for cfg.GameID.
func NewServer(cfg Config, logger *log.Logger) (*Server, error) {
	if cfg.World.TickRate <= 0 {
		return nil, fmt.Errorf("stream: tick rate must be > 0, got %d", cfg.World.TickRate)
	}
	game, err := registry.CreateObservable(cfg.GameID)
	if err != nil {
		return nil, fmt.Errorf("stream: cannot create game: %w", err)
	}
	if cfg.Matrix != nil {
		game.SetPhysics(cfg.Matrix, cfg.Physics...)
	}
	game.Reset(cfg.World)

	return &Server{
		config: cfg,
		game:   game,
		hub:    NewHub(logger),
		logger: logger,
		input:  core.NewInputFrame(),
	}, nil
}

// Hub returns the server's client hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler returns the HTTP routes: /ws for spectators, / for a status line.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", s.hub)
	mux.HandleFunc("/", s.handleStatus)
	return mux
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "sweep stream: game=%s tick=%d spectators=%d restarts=%d\n",
		s.config.GameID, s.tick.Load(), s.hub.Len(), s.restarts.Load())
}

// SetPhysics queues a matrix and options swap for the next tick.
func (s *Server) SetPhysics(m *physics.LayerMatrix, opts ...physics.Option) {
	s.mu.Lock()
	s.pending = &physicsSwap{matrix: m, opts: opts}
	s.mu.Unlock()
}

// Step advances the game one tick and broadcasts the snapshot.
// It must not be called concurrently with itself.
func (s *Server) Step() (core.Snapshot, error) {
	s.mu.Lock()
	if s.pending != nil {
		s.game.SetPhysics(s.pending.matrix, s.pending.opts...)
		s.logger.Info("physics swapped")
		s.pending = nil
	}
	s.mu.Unlock()

	// A finished round restarts with the next seed so the stream never stalls.
	if s.game.State().GameOver {
		s.restarts.Add(1)
		world := s.config.World
		world.Seed += s.restarts.Load()
		s.game.Reset(world)
	}

	s.game.Step(s.input)
	s.tick.Add(1)

	snap := s.game.Snapshot()
	data, err := json.Marshal(snap)
	if err != nil {
		return snap, fmt.Errorf("stream: cannot encode snapshot: %w", err)
	}
	s.hub.Broadcast(data)
	return snap, nil
}

// Run serves HTTP and steps the game until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting stream server", "address", s.config.Address, "game", s.config.GameID)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if s.config.PhysicsPath != "" {
		stop, err := s.watchPhysics()
		if err != nil {
			s.logger.Warn("physics reload disabled", "error", err)
		} else {
			defer stop()
		}
	}

	runErr := s.loop(ctx, errCh)

	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("stream: shutdown: %w", err)
	}
	return runErr
}

func (s *Server) loop(ctx context.Context, errCh <-chan error) error {
	ticker := time.NewTicker(time.Second / time.Duration(s.config.World.TickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("stream stopping", "ticks", s.tick.Load())
			return nil
		case err := <-errCh:
			return fmt.Errorf("stream: serve: %w", err)
		case <-ticker.C:
			if _, err := s.Step(); err != nil {
				s.logger.Error("tick failed", "error", err)
			}
		}
	}
}

// watchPhysics reloads the matrix whenever the physics file changes.
// The returned func stops watching.
func (s *Server) watchPhysics() (func(), error) {
	w, err := config.NewWatcher(s.config.PhysicsPath)
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case _, ok := <-w.Events:
				if !ok {
					return
				}
				s.reloadPhysics()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.logger.Warn("physics watcher error", "error", err)
			}
		}
	}()

	s.logger.Info("watching physics config", "path", s.config.PhysicsPath)
	return func() {
		_ = w.Close()
		<-done
	}, nil
}

// reloadPhysics keeps the current matrix when the new file is invalid.
func (s *Server) reloadPhysics() {
	cfg, err := config.LoadPhysics(s.config.PhysicsPath)
	if err != nil {
		s.logger.Warn("physics reload failed, keeping current matrix", "error", err)
		return
	}
	m, err := cfg.Matrix()
	if err != nil {
		s.logger.Warn("physics reload failed, keeping current matrix", "error", err)
		return
	}
	s.SetPhysics(m, cfg.Options()...)
}
