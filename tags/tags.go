package tags

import "github.com/yohamta/donburi"

var (
	Player  = donburi.NewTag().SetName("Player")
	Chest   = donburi.NewTag().SetName("Chest")
	Crate   = donburi.NewTag().SetName("Crate")
	Boulder = donburi.NewTag().SetName("Boulder")
	NPC     = donburi.NewTag().SetName("NPC")
	Trigger = donburi.NewTag().SetName("Trigger")
)

// Resolv tags for the XY collision space
const (
	ResolvSolid    = "solid"
	ResolvPlayer   = "player"
	ResolvPushable = "pushable"
	ResolvTrigger  = "trigger"
	ResolvVisible  = "visible"
)
