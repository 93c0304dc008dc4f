package roomdata

import (
	"fmt"
	"io/fs"
	"strconv"

	"github.com/lafriks/go-tiled"
)

// Loader resolves a room id to parsed room data. Implementations must return
// ErrRoomNotFound (possibly wrapped) for unknown ids and *RoomDataError for
// structurally invalid resources.
type Loader interface {
	Load(id int) (*RoomData, error)
}

// FSLoader reads Room%03d.tmx files from an fs.FS, so callers can pass
// embed.FS or os.DirFS.
type FSLoader struct {
	FS  fs.FS
	Dir string
}

// roomFallNone is the sentinel the asset pipeline writes for rooms without a
// fall-warp destination.
const roomFallNone = 65535

// Load parses the room resource for id.
func (l *FSLoader) Load(id int) (*RoomData, error) {
	name := fmt.Sprintf("Room%03d.tmx", id)
	if l.Dir != "" {
		name = l.Dir + "/" + name
	}
	if _, err := fs.Stat(l.FS, name); err != nil {
		return nil, fmt.Errorf("room %d (%s): %w", id, name, ErrRoomNotFound)
	}

	m, err := tiled.LoadFile(name, tiled.WithFileSystem(l.FS))
	if err != nil {
		return nil, dataErr(id, "parse TMX", err)
	}

	room := &RoomData{
		ID:         id,
		Width:      m.Width,
		Height:     m.Height,
		TileWidth:  m.TileWidth,
		TileHeight: m.TileHeight,
		FallWarp:   NoFallWarp,
	}

	if err := loadGrid(room, m); err != nil {
		return nil, err
	}
	if err := loadHeights(room, m); err != nil {
		return nil, err
	}
	if err := loadWarps(room, m); err != nil {
		return nil, err
	}
	loadPlacements(room, m)
	loadProperties(room, m)

	return room, nil
}

func loadGrid(room *RoomData, m *tiled.Map) error {
	var layers []TileLayer
	for _, layer := range m.Layers {
		tl := TileLayer{
			Name:  layer.Name,
			Kind:  layerKind(layer.Name),
			Tiles: make([]TileRef, m.Width*m.Height),
		}
		if len(layer.Tiles) != m.Width*m.Height {
			return dataErr(room.ID, "layer "+layer.Name+" dimensions mismatch", nil)
		}
		for i, t := range layer.Tiles {
			if t.IsNil() {
				tl.Tiles[i] = TileRef{Nil: true}
				continue
			}
			tl.Tiles[i] = TileRef{Tileset: tilesetIndex(m, t.Tileset), ID: t.ID}
		}
		layers = append(layers, tl)
	}
	if len(layers) == 0 {
		return dataErr(room.ID, "no tile layers", nil)
	}
	grid, err := NewTileGrid(m.Width, m.Height, layers)
	if err != nil {
		return dataErr(room.ID, "tile grid", err)
	}
	room.Grid = grid
	return nil
}

func layerKind(name string) LayerKind {
	switch name {
	case "Foreground":
		return LayerForeground
	case "Overlay":
		return LayerOverlay
	default:
		return LayerGround
	}
}

func tilesetIndex(m *tiled.Map, ts *tiled.Tileset) int {
	for i, cand := range m.Tilesets {
		if cand == ts {
			return i
		}
	}
	return 0
}

func loadHeights(room *RoomData, m *tiled.Map) error {
	props := mapProps(m)
	raw := props.GetString("heightmap")
	if raw == "" {
		return dataErr(room.ID, "missing height data", nil)
	}
	hmW := propInt(props, "hmwidth", m.Width)
	hmH := propInt(props, "hmheight", m.Height)
	if hmW != m.Width || hmH != m.Height {
		return dataErr(room.ID, fmt.Sprintf("height map %dx%d does not match grid %dx%d", hmW, hmH, m.Width, m.Height), nil)
	}
	cells, err := parseHeightCells(raw, hmW, hmH)
	if err != nil {
		return dataErr(room.ID, "height data", err)
	}
	hm, err := NewHeightMap(hmW, hmH, cells)
	if err != nil {
		return dataErr(room.ID, "height map", err)
	}
	room.Heights = hm
	return nil
}

// Warp records in room files are two-sided: one object describes the passage
// between room1 and room2 and is present in both rooms' files. The loader
// keeps only the directed definitions whose source side is the room being
// loaded.
func loadWarps(room *RoomData, m *tiled.Map) error {
	tw, th := float64(m.TileWidth), float64(m.TileHeight)
	for _, og := range m.ObjectGroups {
		if og.Name != "Warps" {
			continue
		}
		for _, o := range og.Objects {
			room1 := propInt(o.Properties, "room1", -1)
			room2 := propInt(o.Properties, "room2", -1)
			if room1 < 0 || room2 < 0 {
				return dataErr(room.ID, "warp object missing room ids", nil)
			}

			x1, y1 := o.X/tw, o.Y/th
			w, h := o.Width/tw, o.Height/th
			x2 := propFloat(o.Properties, "x2", x1)
			y2 := propFloat(o.Properties, "y2", y1)
			z1 := propFloat(o.Properties, "z", 0)
			z2 := propFloat(o.Properties, "z2", 0)
			zmin := propFloat(o.Properties, "zmin", 0)
			zmax := propFloat(o.Properties, "zmax", 15)

			if room1 == room.ID {
				room.Warps = append(room.Warps, WarpDef{
					X: x1, Y: y1, W: w, H: h,
					MinHeight: zmin, MaxHeight: zmax,
					TargetRoom: room2,
					Target:     SpawnPoint{X: x2, Y: y2, Height: z2},
				})
			}
			if room2 == room.ID {
				room.Warps = append(room.Warps, WarpDef{
					X: x2, Y: y2, W: w, H: h,
					MinHeight: zmin, MaxHeight: zmax,
					TargetRoom: room1,
					Target:     SpawnPoint{X: x1, Y: y1, Height: z1},
				})
			}
		}
	}
	return nil
}

func loadPlacements(room *RoomData, m *tiled.Map) {
	tw, th := float64(m.TileWidth), float64(m.TileHeight)
	for _, og := range m.ObjectGroups {
		if og.Name != "Entities" {
			continue
		}
		for _, o := range og.Objects {
			kind := o.Type
			if kind == "" {
				kind = o.Properties.GetString("class")
			}
			room.Placements = append(room.Placements, Placement{
				Kind:      kind,
				Name:      o.Name,
				X:         o.X / tw,
				Y:         o.Y / th,
				Height:    propFloat(o.Properties, "Z", 0),
				Behaviour: propInt(o.Properties, "Behaviour", 0),
				Event:     o.Properties.GetString("Event"),
				Item:      propInt(o.Properties, "Item", 0),
				Solid:     propBool(o.Properties, "Solid", true),
				Visible:   propBool(o.Properties, "Visible", true),
				Gravity:   propBool(o.Properties, "Gravity", true),
			})
		}
	}
}

func loadProperties(room *RoomData, m *tiled.Map) {
	props := mapProps(m)
	if fall := propInt(props, "WarpFallDestination", roomFallNone); fall != roomFallNone {
		room.FallWarp = fall
	}
	room.Entry = defaultEntry(room, m, props)
}

// defaultEntry picks the spawn used when the host starts a room without a
// position override: an explicit entry property wins, then the side of a warp
// record where arrivals into this room land, then the room center at floor
// height.
func defaultEntry(room *RoomData, m *tiled.Map, props tiled.Properties) SpawnPoint {
	if props.GetString("entryx") != "" {
		return SpawnPoint{
			X:      propFloat(props, "entryx", 0),
			Y:      propFloat(props, "entryy", 0),
			Height: propFloat(props, "entryz", 0),
		}
	}
	if len(room.Warps) > 0 {
		// The warp's target side for the arriving player doubles as the
		// room's natural entry point.
		for _, og := range m.ObjectGroups {
			if og.Name != "Warps" {
				continue
			}
			for _, o := range og.Objects {
				if propInt(o.Properties, "room2", -1) == room.ID {
					return SpawnPoint{
						X:      propFloat(o.Properties, "x2", 0),
						Y:      propFloat(o.Properties, "y2", 0),
						Height: propFloat(o.Properties, "z2", 0),
					}
				}
			}
		}
		// A room appearing only as the room1 side is still a warp target;
		// its arrivals land on the record's own object rect.
		tw, th := float64(m.TileWidth), float64(m.TileHeight)
		for _, og := range m.ObjectGroups {
			if og.Name != "Warps" {
				continue
			}
			for _, o := range og.Objects {
				if propInt(o.Properties, "room1", -1) == room.ID {
					return SpawnPoint{
						X:      o.X / tw,
						Y:      o.Y / th,
						Height: propFloat(o.Properties, "z", 0),
					}
				}
			}
		}
	}
	cx, cy := float64(room.Width)/2, float64(room.Height)/2
	h, _, err := room.Heights.HeightAt(cx, cy)
	if err != nil {
		h = 0
	}
	return SpawnPoint{X: cx, Y: cy, Height: float64(h)}
}

// mapProps unwraps the map-level property bag. go-tiled leaves the pointer
// nil on maps without a properties block.
func mapProps(m *tiled.Map) tiled.Properties {
	if m.Properties == nil {
		return nil
	}
	return *m.Properties
}

// go-tiled's typed getters return zero values for absent properties, which is
// indistinguishable from an explicit zero; these helpers keep defaults intact.
func propInt(p tiled.Properties, name string, def int) int {
	s := p.GetString(name)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func propFloat(p tiled.Properties, name string, def float64) float64 {
	s := p.GetString(name)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

func propBool(p tiled.Properties, name string, def bool) bool {
	switch p.GetString(name) {
	case "true", "1":
		return true
	case "false", "0":
		return false
	}
	return def
}
