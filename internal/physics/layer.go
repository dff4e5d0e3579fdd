// Package physics implements the 2D broad phase: sweep-and-prune over the X
// and Y axes, filtered through a collision-layer compatibility matrix.
//
// Like core, it has no dependencies on the platform layer. Callers hand in
// a flat slice of bodies each tick and get back the set of overlapping
// pairs; nothing survives between calls except reusable buffers.
package physics

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLayer is returned when a layer name cannot be parsed.
var ErrUnknownLayer = errors.New("physics: unknown layer")

// Layer tags a body with the category the layer matrix is indexed by.
type Layer uint8

const (
	LayerPlayer Layer = iota
	LayerEnemy
	LayerBullet
	LayerWall

	// LayerCount is the number of layers. Matrices are sized for it.
	LayerCount
)

var layerNames = [LayerCount]string{
	LayerPlayer: "player",
	LayerEnemy:  "enemy",
	LayerBullet: "bullet",
	LayerWall:   "wall",
}

// String returns the lowercase layer name.
func (l Layer) String() string {
	if l < LayerCount {
		return layerNames[l]
	}
	return fmt.Sprintf("layer(%d)", uint8(l))
}

// Valid reports whether l is one of the defined layers.
func (l Layer) Valid() bool {
	return l < LayerCount
}

// ParseLayer converts a name like "enemy" back into a Layer.
func ParseLayer(name string) (Layer, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range layerNames {
		if s == n {
			return Layer(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownLayer, name)
}

// Layers returns all defined layers in index order.
func Layers() []Layer {
	out := make([]Layer, LayerCount)
	for i := range out {
		out[i] = Layer(i)
	}
	return out
}
