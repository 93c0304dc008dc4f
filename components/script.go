package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/isodrift/roomdata"
)

// ScriptData is an NPC's behaviour program counter state. Ops come from the
// room's behaviour files; Remaining tracks the in-progress op (distance left
// for a move, ticks left for a pause).
type ScriptData struct {
	Ops       []roomdata.ScriptOp
	PC        int
	Remaining float64
	Done      bool
}

var Script = donburi.NewComponentType[ScriptData]()
