package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sweep-arcade/internal/core"
	_ "github.com/vovakirdan/sweep-arcade/internal/games/sandbox"
	_ "github.com/vovakirdan/sweep-arcade/internal/games/shooter"
	"github.com/vovakirdan/sweep-arcade/internal/physics"
)

var menuRuntime = core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 30}

func menuItem(t *testing.T, m MenuModel, id string) MenuItem {
	t.Helper()
	for _, item := range m.items {
		if item.GameID == id {
			return item
		}
	}
	t.Fatalf("menu has no %q", id)
	return MenuItem{}
}

func TestMenuPreviews(t *testing.T) {
	m := NewMenuModel(nil, menuRuntime, nil)

	sb := menuItem(t, m, "sandbox").Preview
	if sb == nil || sb.Total() == 0 {
		t.Fatalf("sandbox preview = %+v, expected bodies", sb)
	}

	sh := menuItem(t, m, "shooter").Preview
	if sh == nil {
		t.Fatal("shooter preview missing")
	}
	if sh.Bodies[physics.LayerPlayer] != 1 {
		t.Errorf("shooter players = %d, expected 1", sh.Bodies[physics.LayerPlayer])
	}
	if sh.Bodies[physics.LayerWall] == 0 {
		t.Error("shooter preview should include arena walls")
	}

	again := menuItem(t, NewMenuModel(nil, menuRuntime, nil), "sandbox").Preview
	if *again != *sb {
		t.Errorf("previews differ between menus: %+v vs %+v", *sb, *again)
	}
}

func TestMenuDetailsFollowMatrix(t *testing.T) {
	tests := []struct {
		name   string
		matrix *physics.LayerMatrix
		want   string
	}{
		{"default", physics.DefaultLayerMatrix(), "player/wall"},
		{"empty", physics.NewMatrixBuilder(int(physics.LayerCount)).Build(), "collides  nothing"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMenuModel(nil, menuRuntime, tc.matrix)
			got := m.details(menuItem(t, m, "shooter"))
			if !strings.Contains(got, tc.want) {
				t.Errorf("details = %q, expected to contain %q", got, tc.want)
			}
		})
	}
}

func TestMenuNavigationWraps(t *testing.T) {
	m := NewMenuModel(nil, menuRuntime, nil)
	last := len(m.items) - 1

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(MenuModel)
	if m.cursor != last {
		t.Fatalf("cursor = %d after up from top, expected %d", m.cursor, last)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	if m.cursor != 0 {
		t.Fatalf("cursor = %d after down from bottom, expected 0", m.cursor)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if cmd == nil || m.Selected() == nil || m.Selected().GameID != m.items[0].GameID {
		t.Errorf("enter should select %q, got %+v", m.items[0].GameID, m.Selected())
	}
}

func TestMenuViewShowsSweepMode(t *testing.T) {
	tests := []struct {
		name string
		opts []physics.Option
		want string
	}{
		{"sequential", nil, "sequential sweeps"},
		{"parallel", []physics.Option{physics.WithParallelAxes()}, "parallel axis sweeps"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			view := NewMenuModel(nil, menuRuntime, nil, tc.opts...).View()
			if !strings.Contains(view, tc.want) {
				t.Errorf("view does not mention %q", tc.want)
			}
		})
	}
}
