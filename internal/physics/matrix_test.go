package physics

import (
	"errors"
	"testing"
)

func TestRowOffsetMatchesRowLengths(t *testing.T) {
	for n := 1; n <= 64; n++ {
		sum := 0
		for i := 0; i < n; i++ {
			if got := rowOffset(i, n); got != sum {
				t.Fatalf("rowOffset(%d, %d) = %d, expected %d", i, n, got, sum)
			}
			sum += n - i
		}
		if sum != TriangleSize(n) {
			t.Fatalf("TriangleSize(%d) = %d, expected %d", n, TriangleSize(n), sum)
		}
	}
}

func TestMatrixSymmetry(t *testing.T) {
	m := DefaultLayerMatrix()
	for _, a := range Layers() {
		for _, b := range Layers() {
			if m.Allowed(a, b) != m.Allowed(b, a) {
				t.Errorf("Allowed(%v, %v) != Allowed(%v, %v)", a, b, b, a)
			}
		}
	}
}

func TestDefaultLayerMatrix(t *testing.T) {
	m := DefaultLayerMatrix()

	tests := []struct {
		a, b     Layer
		expected bool
	}{
		{LayerPlayer, LayerPlayer, false},
		{LayerPlayer, LayerEnemy, true},
		{LayerPlayer, LayerBullet, false},
		{LayerPlayer, LayerWall, true},
		{LayerEnemy, LayerEnemy, false},
		{LayerEnemy, LayerBullet, true},
		{LayerEnemy, LayerWall, true},
		{LayerBullet, LayerBullet, false},
		{LayerBullet, LayerWall, true},
		{LayerWall, LayerWall, false},
	}

	for _, tc := range tests {
		t.Run(tc.a.String()+"-"+tc.b.String(), func(t *testing.T) {
			if got := m.Allowed(tc.a, tc.b); got != tc.expected {
				t.Errorf("Allowed(%v, %v) = %v, expected %v", tc.a, tc.b, got, tc.expected)
			}
		})
	}

	if got := len(m.AllowedPairs()); got != 5 {
		t.Errorf("AllowedPairs() has %d entries, expected 5", got)
	}
}

func TestNewLayerMatrixFlatLayout(t *testing.T) {
	// 3 layers: (0,0) (0,1) (0,2) (1,1) (1,2) (2,2)
	cells := []bool{true, false, true, false, true, false}
	m, err := NewLayerMatrix(3, cells)
	if err != nil {
		t.Fatalf("NewLayerMatrix() failed: %v", err)
	}

	expect := map[[2]Layer]bool{
		{0, 0}: true, {0, 1}: false, {0, 2}: true,
		{1, 1}: false, {1, 2}: true, {2, 2}: false,
	}
	for pair, want := range expect {
		if got := m.Allowed(pair[0], pair[1]); got != want {
			t.Errorf("Allowed(%d, %d) = %v, expected %v", pair[0], pair[1], got, want)
		}
		if got := m.Allowed(pair[1], pair[0]); got != want {
			t.Errorf("Allowed(%d, %d) = %v, expected %v", pair[1], pair[0], got, want)
		}
	}

	// The matrix keeps its own copy
	cells[0] = false
	if !m.Allowed(0, 0) {
		t.Error("mutating the input slice should not change the matrix")
	}
}

func TestNewLayerMatrixSizeMismatch(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		cells int
	}{
		{"too few", 4, 9},
		{"too many", 4, 16},
		{"zero layers", 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLayerMatrix(tc.n, make([]bool, tc.cells))
			if !errors.Is(err, ErrMatrixSize) {
				t.Errorf("expected ErrMatrixSize, got %v", err)
			}
		})
	}
}

func TestMatrixOutOfRangePanics(t *testing.T) {
	m := DefaultLayerMatrix()
	defer func() {
		if recover() == nil {
			t.Error("Allowed with an out-of-range layer should panic")
		}
	}()
	m.Allowed(LayerPlayer, LayerCount)
}

func TestMatrixBuilder(t *testing.T) {
	b := NewMatrixBuilder(int(LayerCount))
	first := b.Allow(LayerWall, LayerWall).Build()
	second := b.Allow(LayerBullet, LayerPlayer).Build()

	if !first.Allowed(LayerWall, LayerWall) {
		t.Error("wall/wall should be allowed")
	}
	if first.Allowed(LayerPlayer, LayerBullet) {
		t.Error("Build() should snapshot; later Allow calls must not leak into it")
	}
	if !second.Allowed(LayerPlayer, LayerBullet) {
		t.Error("player/bullet should be allowed in the second build")
	}
	if first.Equal(second) {
		t.Error("matrices with different cells should not be Equal")
	}
	if !DefaultLayerMatrix().Equal(DefaultLayerMatrix()) {
		t.Error("default matrices should be Equal")
	}
}

func TestParseLayer(t *testing.T) {
	for _, l := range Layers() {
		got, err := ParseLayer(" " + l.String() + " ")
		if err != nil || got != l {
			t.Errorf("ParseLayer(%q) = %v, %v", l.String(), got, err)
		}
	}

	if got, err := ParseLayer("Enemy"); err != nil || got != LayerEnemy {
		t.Errorf("ParseLayer should be case-insensitive, got %v, %v", got, err)
	}

	if _, err := ParseLayer("ghost"); !errors.Is(err, ErrUnknownLayer) {
		t.Errorf("expected ErrUnknownLayer, got %v", err)
	}
}
