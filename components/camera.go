package components

import (
	"github.com/yohamta/donburi"
)

// CameraData is derived state: recomputed from the player position plus the
// manual pan delta every tick, never authoritative.
type CameraData struct {
	Pos    Vector
	Pan    Vector
	Locked bool
}

var Camera = donburi.NewComponentType[CameraData]()
