package components

import (
	"github.com/yohamta/donburi"
)

// PushableData drives the crate/boulder state machine. While in StatePushed
// or StateRolling the entity slides toward Target one cell at a time.
type PushableData struct {
	Dir    Direction
	Target Vec3
	// Rolls keeps the entity moving cell to cell after the initiating push
	// until blocked (boulders). Crates stop after one cell.
	Rolls bool
}

var Pushable = donburi.NewComponentType[PushableData]()
