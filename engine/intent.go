package engine

import (
	"github.com/automoto/isodrift/components"
)

// Intent is the host-supplied player input for one tick. The engine never
// reads devices; hosts translate whatever input layer they use into this.
type Intent struct {
	// Move is the desired direction, each axis in [-1, 1].
	Move components.Vector
	// Jump requests a jump; only honored while grounded.
	Jump bool
	// Interact requests an interaction with the entity the player faces.
	Interact bool
	// Pan is a manual camera pan delta in tile coordinates.
	Pan components.Vector
}
