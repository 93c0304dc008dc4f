package components

import (
	"github.com/yohamta/donburi"
)

// ChestData holds the item a chest grants and the opening animation timer.
type ChestData struct {
	Item      int
	OpenTicks int
}

var Chest = donburi.NewComponentType[ChestData]()
