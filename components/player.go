package components

import (
	"github.com/yohamta/donburi"
)

// PlayerData carries player-only state outside the shared components.
type PlayerData struct {
	// InteractCooldown debounces the interact intent so a held key opens one
	// chest, not one per tick.
	InteractCooldown int
}

var Player = donburi.NewComponentType[PlayerData]()
