package physics

import (
	"errors"
	"fmt"
)

// ErrMatrixSize is returned when a flat cell list does not match the layer count.
var ErrMatrixSize = errors.New("physics: layer matrix size mismatch")

// LayerMatrix answers whether bodies on two layers may collide at all.
//
// Only the upper triangle (diagonal included) of the symmetric n×n table is
// stored, row by row, so Allowed(a, b) == Allowed(b, a) holds by
// construction. A matrix is immutable once built.
type LayerMatrix struct {
	n     int
	cells []bool
}

// TriangleSize returns the number of cells stored for n layers.
func TriangleSize(n int) int {
	return n * (n + 1) / 2
}

// rowOffset is the flat index of cell (i, i): the sum of the lengths of rows
// 0..i-1, which are n, n-1, ..., n-i+1.
func rowOffset(i, n int) int {
	return i * (2*n - i + 1) / 2
}

// NewLayerMatrix builds a matrix for n layers from the flat upper triangle,
// laid out row-major: (0,0) (0,1) ... (0,n-1) (1,1) ... (n-1,n-1).
func NewLayerMatrix(n int, cells []bool) (*LayerMatrix, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: need at least one layer, got %d", ErrMatrixSize, n)
	}
	if len(cells) != TriangleSize(n) {
		return nil, fmt.Errorf("%w: %d layers need %d cells, got %d",
			ErrMatrixSize, n, TriangleSize(n), len(cells))
	}
	c := make([]bool, len(cells))
	copy(c, cells)
	return &LayerMatrix{n: n, cells: c}, nil
}

// DefaultLayerMatrix returns the built-in design table:
// players hit enemies and walls, enemies hit bullets and walls,
// bullets hit walls, and no layer collides with itself.
func DefaultLayerMatrix() *LayerMatrix {
	return NewMatrixBuilder(int(LayerCount)).
		Allow(LayerPlayer, LayerEnemy).
		Allow(LayerPlayer, LayerWall).
		Allow(LayerEnemy, LayerBullet).
		Allow(LayerEnemy, LayerWall).
		Allow(LayerBullet, LayerWall).
		Build()
}

// Size returns the number of layers the matrix covers.
func (m *LayerMatrix) Size() int {
	return m.n
}

// index maps an unordered layer pair to its flat cell.
// An out-of-range layer is a programming error and panics.
func (m *LayerMatrix) index(a, b Layer) int {
	i, j := int(a), int(b)
	if i > j {
		i, j = j, i
	}
	if j >= m.n {
		panic(fmt.Sprintf("physics: layer pair (%v, %v) out of range for %d layers", a, b, m.n))
	}
	return rowOffset(i, m.n) + (j - i)
}

// Allowed reports whether bodies on layers a and b may collide.
func (m *LayerMatrix) Allowed(a, b Layer) bool {
	return m.cells[m.index(a, b)]
}

// Cells returns a copy of the flat upper triangle.
func (m *LayerMatrix) Cells() []bool {
	c := make([]bool, len(m.cells))
	copy(c, m.cells)
	return c
}

// AllowedPairs lists every allowed unordered pair with a <= b.
func (m *LayerMatrix) AllowedPairs() [][2]Layer {
	var out [][2]Layer
	for i := 0; i < m.n; i++ {
		for j := i; j < m.n; j++ {
			if m.cells[rowOffset(i, m.n)+(j-i)] {
				out = append(out, [2]Layer{Layer(i), Layer(j)})
			}
		}
	}
	return out
}

// Equal reports whether two matrices have the same size and cells.
func (m *LayerMatrix) Equal(o *LayerMatrix) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.n != o.n {
		return false
	}
	for i := range m.cells {
		if m.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// MatrixBuilder assembles a LayerMatrix pair by pair. All pairs start disallowed.
type MatrixBuilder struct {
	m LayerMatrix
}

// NewMatrixBuilder starts an all-false matrix for n layers.
func NewMatrixBuilder(n int) *MatrixBuilder {
	if n <= 0 {
		panic(fmt.Sprintf("physics: matrix builder needs at least one layer, got %d", n))
	}
	return &MatrixBuilder{m: LayerMatrix{n: n, cells: make([]bool, TriangleSize(n))}}
}

// Allow marks the unordered pair (a, b) as colliding.
func (b *MatrixBuilder) Allow(x, y Layer) *MatrixBuilder {
	b.m.cells[b.m.index(x, y)] = true
	return b
}

// Build returns an immutable snapshot of the current table.
// The builder may keep being used afterwards.
func (b *MatrixBuilder) Build() *LayerMatrix {
	return &LayerMatrix{n: b.m.n, cells: b.m.Cells()}
}
