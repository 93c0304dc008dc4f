package components

import (
	"github.com/yohamta/donburi"
)

// PositionData is an entity's continuous room-local position and facing.
// Prev holds the position at the start of the current tick; the difference is
// the per-tick delta carried entities inherit.
type PositionData struct {
	Pos    Vec3
	Prev   Vec3
	Facing Direction
}

// Delta returns the movement applied so far this tick.
func (p *PositionData) Delta() Vec3 {
	return Vec3{X: p.Pos.X - p.Prev.X, Y: p.Pos.Y - p.Prev.Y, H: p.Pos.H - p.Prev.H}
}

var Position = donburi.NewComponentType[PositionData]()
