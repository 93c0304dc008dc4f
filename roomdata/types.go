// Package roomdata provides room resource parsing shared between the engine
// and any host tooling. It has no dependencies on donburi or resolv, pure
// data only. Rooms are TMX documents produced by an external asset pipeline;
// this package treats their encoding as opaque input and normalizes it into
// the structures the engine consumes.
package roomdata

// SpawnPoint is a position in room-local tile coordinates plus a height in
// height units. Height is carried explicitly because two spawn points may
// share (x, y) on different floors.
type SpawnPoint struct {
	X, Y   float64
	Height float64
}

// WarpDef is one directed warp: a source volume in this room and the target
// room plus spawn position. Room files store two-sided warp records; the
// loader splits each record into the directed definitions relevant to the
// room being loaded.
type WarpDef struct {
	// Source volume, in tile coordinates.
	X, Y, W, H float64
	// Height range the player must be within for the warp to fire.
	MinHeight, MaxHeight float64

	TargetRoom int
	Target     SpawnPoint
}

// Contains reports whether the point (x, y, h) lies inside the warp's source
// volume.
func (w *WarpDef) Contains(x, y, h float64) bool {
	return x >= w.X && x < w.X+w.W &&
		y >= w.Y && y < w.Y+w.H &&
		h >= w.MinHeight && h <= w.MaxHeight
}

// Placement is one entity listed in the room's placement layer.
type Placement struct {
	Kind string
	Name string

	X, Y, Height float64

	// Behaviour selects a scripted behaviour for NPCs (0 = none).
	Behaviour int
	// Event names the event a trigger volume fires.
	Event string
	// Item is the item id a chest grants.
	Item int

	Solid   bool
	Visible bool
	Gravity bool
}

// NoFallWarp marks a room without a fall-warp destination.
const NoFallWarp = -1

// RoomData is one fully parsed room resource. Immutable once loaded; the
// engine builds its mutable entity state from the placement list and never
// writes back.
type RoomData struct {
	ID int

	// Grid dimensions in tiles. All layers and the height map share them.
	Width, Height int
	// Tile size in pixels, kept for hosts that draw the room.
	TileWidth, TileHeight int

	Grid    *TileGrid
	Heights *HeightMap

	Warps      []WarpDef
	Placements []Placement

	// Entry is where the player spawns when no override is given.
	Entry SpawnPoint

	// FallWarp is the room a free-falling player is sent to when it reaches
	// the bottom of a void, or NoFallWarp.
	FallWarp int
}
