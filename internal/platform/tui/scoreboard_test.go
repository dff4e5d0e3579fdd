package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sweep-arcade/internal/storage"
)

func TestBenchRows(t *testing.T) {
	started := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	tests := []struct {
		name    string
		run     storage.BenchRun
		speedup string
		ok      string
	}{
		{
			"verified",
			storage.BenchRun{Bodies: 100, Rounds: 2, Sweep: 2 * time.Millisecond, Brute: 20 * time.Millisecond, Verified: true, StartedAt: started},
			"10.0x", "yes",
		},
		{
			"mismatch",
			storage.BenchRun{Bodies: 100, Rounds: 2, Sweep: time.Millisecond, Brute: time.Millisecond, Verified: true, Mismatches: 1, StartedAt: started},
			"1.0x", "NO",
		},
		{
			"unverified",
			storage.BenchRun{Bodies: 100, Rounds: 1, Sweep: time.Millisecond, StartedAt: started},
			"-", "-",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rows := benchRows([]storage.BenchRun{tc.run})
			if len(rows) != 1 || len(rows[0]) != 6 {
				t.Fatalf("rows = %v", rows)
			}
			if rows[0][3] != tc.speedup || rows[0][5] != tc.ok {
				t.Errorf("speedup/ok = %s/%s, expected %s/%s", rows[0][3], rows[0][5], tc.speedup, tc.ok)
			}
		})
	}
}

func TestScoreboardBenchTab(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if _, err := store.SaveBenchRun(storage.BenchRun{Bodies: 10, Rounds: 1, Sweep: time.Millisecond}); err != nil {
		t.Fatal(err)
	}

	m := NewScoreboardModel(store, 100, 30)
	// The bench tab is always last; shift+tab wraps to it.
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)

	if m.currentID() != benchTab {
		t.Fatalf("current tab = %q, expected %q", m.currentID(), benchTab)
	}
	if len(m.runs) != 1 {
		t.Errorf("runs = %d, expected 1", len(m.runs))
	}
	if len(m.table.Columns()) != 6 || len(m.table.Rows()) != 1 {
		t.Errorf("table = %d columns, %d rows", len(m.table.Columns()), len(m.table.Rows()))
	}
}
