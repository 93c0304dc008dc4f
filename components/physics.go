package components

import (
	"github.com/yohamta/donburi"
)

// PhysicsData is per-entity vertical state. Horizontal displacement is
// resolved by the engine's collision pass; only height needs carried state.
type PhysicsData struct {
	Grounded bool
	// Gravity disables falling for fixtures such as trigger volumes.
	Gravity bool
	// JumpLeft is the remaining ascent of an active jump, in height units.
	JumpLeft float64
	Jumping  bool
}

var Physics = donburi.NewComponentType[PhysicsData]()
