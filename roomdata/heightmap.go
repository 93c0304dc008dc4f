package roomdata

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Walkability classifies a height-map cell.
type Walkability uint8

const (
	// WalkFloor is ground an entity may stand on.
	WalkFloor Walkability = iota
	// WalkBlocked is a wall cell: it has a height but never admits an entity.
	WalkBlocked
	// WalkVoid has no defined height. Entities over void free-fall.
	WalkVoid
)

func (w Walkability) String() string {
	switch w {
	case WalkFloor:
		return "floor"
	case WalkBlocked:
		return "blocked"
	case WalkVoid:
		return "void"
	}
	return "unknown"
}

// Cell is one height-map cell: an elevation in height units and its
// walkability class. Height is meaningless for void cells.
type Cell struct {
	Height int
	Walk   Walkability
}

// Walkable reports whether an entity may legally occupy the cell.
func (c Cell) Walkable() bool { return c.Walk == WalkFloor }

// HeightMap holds per-tile elevation for a room. Same dimensions as the
// room's tile grid; the loader enforces the match.
type HeightMap struct {
	width, height int
	cells         []Cell
}

// NewHeightMap builds a height map from row-major cells. len(cells) must be
// width*height.
func NewHeightMap(width, height int, cells []Cell) (*HeightMap, error) {
	if len(cells) != width*height {
		return nil, fmt.Errorf("height map: %d cells for %dx%d grid", len(cells), width, height)
	}
	for i, c := range cells {
		if c.Walk != WalkVoid && c.Height < 0 {
			return nil, fmt.Errorf("height map: negative height %d at cell %d", c.Height, i)
		}
	}
	return &HeightMap{width: width, height: height, cells: cells}, nil
}

// Width returns the map width in cells.
func (m *HeightMap) Width() int { return m.width }

// Height returns the map height in cells.
func (m *HeightMap) Height() int { return m.height }

// Cell returns the cell at integer coordinates.
func (m *HeightMap) Cell(x, y int) (Cell, error) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return Cell{}, &BoundsError{X: x, Y: y, W: m.width, H: m.height}
	}
	return m.cells[y*m.width+x], nil
}

// HeightAt resolves fractional room coordinates to the containing cell and
// returns its elevation and walkability. The terrain is stepped, not smooth,
// so there is no interpolation across cells. Void cells report height 0.
func (m *HeightMap) HeightAt(x, y float64) (int, Walkability, error) {
	cx, cy := int(math.Floor(x)), int(math.Floor(y))
	c, err := m.Cell(cx, cy)
	if err != nil {
		return 0, WalkVoid, err
	}
	if c.Walk == WalkVoid {
		return 0, WalkVoid, nil
	}
	return c.Height, c.Walk, nil
}

// Height-map cells arrive as 4-hex-digit words, "WHxx": the first nibble is
// the walkability code (< 4 walkable, 0xF void), the second the elevation,
// and the last two are reserved by the asset pipeline.
const voidNibble = 0xF

func parseHeightCells(raw string, width, height int) ([]Cell, error) {
	raw = strings.ReplaceAll(raw, "&#10;", "\n")
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r' || r == ' ' || r == '\t'
	})
	if len(fields) < width*height {
		return nil, fmt.Errorf("height data has %d cells, want %d", len(fields), width*height)
	}

	cells := make([]Cell, width*height)
	for i := range cells {
		word := strings.TrimPrefix(strings.TrimPrefix(fields[i], "0x"), "0X")
		if len(word) != 4 {
			return nil, fmt.Errorf("height cell %d: malformed word %q", i, fields[i])
		}
		v, err := strconv.ParseUint(word, 16, 16)
		if err != nil {
			return nil, fmt.Errorf("height cell %d: %w", i, err)
		}
		walkNibble := int(v >> 12)
		elev := int(v >> 8 & 0xF)
		switch {
		case walkNibble == voidNibble:
			cells[i] = Cell{Walk: WalkVoid}
		case walkNibble < 4:
			cells[i] = Cell{Height: elev, Walk: WalkFloor}
		default:
			cells[i] = Cell{Height: elev, Walk: WalkBlocked}
		}
	}
	return cells, nil
}
