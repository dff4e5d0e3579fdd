// Package core provides fundamental types and utilities for the sweep arcade.
// It contains no external dependencies (especially no Bubble Tea) to keep
// simulation logic pure and testable.
package core

import "math"

// Vec2 is a 2D vector in world units. Terminal games use one unit per cell.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// AABB is an axis-aligned bounding box given by its top-left corner and size.
type AABB struct {
	Pos  Vec2 // Top-left corner
	Size Vec2 // Width and height, both >= 0
}

// NewAABB creates a box at (x, y) with the given width and height.
func NewAABB(x, y, w, h float64) AABB {
	return AABB{Pos: V(x, y), Size: V(w, h)}
}

// Min returns the top-left corner.
func (b AABB) Min() Vec2 {
	return b.Pos
}

// Max returns the bottom-right corner.
func (b AABB) Max() Vec2 {
	return b.Pos.Add(b.Size)
}

// Center returns the center point of the box.
func (b AABB) Center() Vec2 {
	return b.Pos.Add(b.Size.Scale(0.5))
}

// Intersects reports whether two boxes overlap on both axes.
// Edges are inclusive: boxes that only touch count as intersecting.
func (b AABB) Intersects(o AABB) bool {
	bMax, oMax := b.Max(), o.Max()
	return bMax.X >= o.Pos.X && oMax.X >= b.Pos.X &&
		bMax.Y >= o.Pos.Y && oMax.Y >= b.Pos.Y
}

// Translate returns the box moved by d.
func (b AABB) Translate(d Vec2) AABB {
	return AABB{Pos: b.Pos.Add(d), Size: b.Size}
}

// Cells returns the integer cell rectangle covered by the box, for drawing.
// Non-empty boxes always cover at least one cell.
func (b AABB) Cells() Rect {
	x := int(math.Floor(b.Pos.X))
	y := int(math.Floor(b.Pos.Y))
	w := Max(1, int(math.Ceil(b.Pos.X+b.Size.X))-x)
	h := Max(1, int(math.Ceil(b.Pos.Y+b.Size.Y))-y)
	return NewRect(x, y, w, h)
}

// Rect represents an integer cell rectangle used for drawing.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
