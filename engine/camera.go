package engine

import (
	"github.com/automoto/isodrift/components"
)

// cameraLerp is the follow smoothing factor per tick.
const cameraLerp = 0.1

// cameraPass recomputes the camera from the player position. The camera is
// derived state: it smooths toward the player plus the manual pan, clamped
// to the room, and never feeds back into simulation.
func (e *Engine) cameraPass() {
	camEntry, ok := components.Camera.First(e.room.reg.world)
	if !ok {
		return
	}
	cam := components.Camera.Get(camEntry)
	if cam.Locked {
		return
	}

	cam.Pan.X += e.input.Pan.X
	cam.Pan.Y += e.input.Pan.Y

	playerEntry, ok := e.room.reg.Get(e.room.playerID)
	if !ok {
		return
	}
	pos := components.Position.Get(playerEntry).Pos

	target := components.Vector{X: pos.X + cam.Pan.X, Y: pos.Y + cam.Pan.Y}
	cam.Pos.X += (target.X - cam.Pos.X) * cameraLerp
	cam.Pos.Y += (target.Y - cam.Pos.Y) * cameraLerp

	cam.Pos.X = clamp(cam.Pos.X, 0, float64(e.room.data.Width))
	cam.Pos.Y = clamp(cam.Pos.Y, 0, float64(e.room.data.Height))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
