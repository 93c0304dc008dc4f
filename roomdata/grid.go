package roomdata

// LayerKind tags the role a tile layer plays in the 2.5-D stack.
type LayerKind uint8

const (
	LayerGround LayerKind = iota
	LayerOverlay
	LayerForeground
)

// TileRef identifies one tile: the index of its tileset within the room plus
// the tile id inside that set. Nil marks an empty slot.
type TileRef struct {
	Tileset int
	ID      uint32
	Nil     bool
}

// TileLayer is one 2-D sheet of tile references in row-major order.
type TileLayer struct {
	Name  string
	Kind  LayerKind
	Tiles []TileRef
}

// TileGrid is the ordered stack of tile layers for a room. All layers share
// the grid's width and height.
type TileGrid struct {
	width, height int
	layers        []TileLayer
}

// NewTileGrid builds a grid from layers, rejecting any layer whose tile count
// does not match width*height.
func NewTileGrid(width, height int, layers []TileLayer) (*TileGrid, error) {
	for _, l := range layers {
		if len(l.Tiles) != width*height {
			return nil, &RoomDataError{Reason: "layer " + l.Name + " dimensions do not match grid"}
		}
	}
	return &TileGrid{width: width, height: height, layers: layers}, nil
}

// Width returns the grid width in tiles.
func (g *TileGrid) Width() int { return g.width }

// Height returns the grid height in tiles.
func (g *TileGrid) Height() int { return g.height }

// Layers returns the number of layers.
func (g *TileGrid) Layers() int { return len(g.layers) }

// Layer returns the layer at the given index.
func (g *TileGrid) Layer(i int) (TileLayer, error) {
	if i < 0 || i >= len(g.layers) {
		return TileLayer{}, &BoundsError{Layer: i, W: g.width, H: g.height}
	}
	return g.layers[i], nil
}

// TileAt returns the tile reference at (x, y) on the given layer. Out of
// bounds queries fail with a BoundsError, never clamp.
func (g *TileGrid) TileAt(layer, x, y int) (TileRef, error) {
	if layer < 0 || layer >= len(g.layers) {
		return TileRef{}, &BoundsError{X: x, Y: y, Layer: layer, W: g.width, H: g.height}
	}
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return TileRef{}, &BoundsError{X: x, Y: y, Layer: layer, W: g.width, H: g.height}
	}
	return g.layers[layer].Tiles[y*g.width+x], nil
}
