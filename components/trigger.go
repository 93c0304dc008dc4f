package components

import (
	"github.com/yohamta/donburi"
)

// TriggerData is a stateless proximity detector: it fires a named event when
// the player's bounding volume enters or leaves it. Inside tracks the edge.
type TriggerData struct {
	Event  string
	Inside bool
}

var Trigger = donburi.NewComponentType[TriggerData]()
