package components

import (
	"github.com/yohamta/donburi"
)

// AnimationData names the animation the host should draw and the current
// frame index within it. The engine never decodes image data; hosts resolve
// (Anim, Frame) against their own pre-decoded sheets.
type AnimationData struct {
	Anim       string
	Frame      int
	FrameCount int
	// Speed is in frames per tick; Timer accumulates fractional progress.
	Speed float64
	Timer float64
}

// Advance steps the animation by one tick.
func (a *AnimationData) Advance() {
	if a.FrameCount <= 1 {
		return
	}
	a.Timer += a.Speed
	for a.Timer >= 1 {
		a.Timer--
		a.Frame = (a.Frame + 1) % a.FrameCount
	}
}

var Animation = donburi.NewComponentType[AnimationData]()
