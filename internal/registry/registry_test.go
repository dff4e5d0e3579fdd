package registry

import (
	"testing"

	"github.com/vovakirdan/sweep-arcade/internal/core"
	"github.com/vovakirdan/sweep-arcade/internal/physics"
)

type plainGame struct{ id string }

func (g *plainGame) ID() string                           { return g.id }
func (g *plainGame) Title() string                        { return "Plain " + g.id }
func (g *plainGame) Reset(core.RuntimeConfig)             {}
func (g *plainGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *plainGame) Render(*core.Screen)                  {}
func (g *plainGame) State() core.GameState                { return core.GameState{} }

type observableGame struct{ plainGame }

func (g *observableGame) Snapshot() core.Snapshot                            { return core.Snapshot{GameID: g.id} }
func (g *observableGame) SetPhysics(*physics.LayerMatrix, ...physics.Option) {}

func init() {
	Register("test-plain", func() Game { return &plainGame{id: "test-plain"} })
	Register("test-observable", func() Game { return &observableGame{plainGame{id: "test-observable"}} })
}

func TestCreate(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"test-plain", false},
		{"test-observable", false},
		{"missing", true},
	}
	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			g, err := Create(tc.id)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Create(%q) err = %v", tc.id, err)
			}
			if err == nil && g.ID() != tc.id {
				t.Errorf("ID = %q, expected %q", g.ID(), tc.id)
			}
			if Exists(tc.id) == tc.wantErr {
				t.Errorf("Exists(%q) = %v", tc.id, Exists(tc.id))
			}
		})
	}
}

func TestCreateObservable(t *testing.T) {
	if _, err := CreateObservable("test-plain"); err == nil {
		t.Error("plain game should not be observable")
	}
	o, err := CreateObservable("test-observable")
	if err != nil {
		t.Fatal(err)
	}
	if o.Snapshot().GameID != "test-observable" {
		t.Errorf("snapshot game = %q", o.Snapshot().GameID)
	}
	if _, err := CreateObservable("missing"); err == nil {
		t.Error("missing game should fail")
	}
}

func TestListSortedWithTitles(t *testing.T) {
	games := List()
	for i := 1; i < len(games); i++ {
		if games[i-1].ID >= games[i].ID {
			t.Fatalf("List not sorted: %v", games)
		}
	}
	found := false
	for _, g := range games {
		if g.ID == "test-plain" {
			found = g.Title == "Plain test-plain"
		}
	}
	if !found {
		t.Error("test-plain missing or untitled")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("test-plain", func() Game { return &plainGame{} })
}
