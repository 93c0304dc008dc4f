package components

import (
	"github.com/yohamta/donburi"
)

// Kind is the closed set of entity kinds. Behavior dispatch is a single
// state-machine table keyed by Kind; the set is statically enumerable.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindChest
	KindCrate
	KindBoulder
	KindNPC
	KindTrigger
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindChest:
		return "chest"
	case KindCrate:
		return "crate"
	case KindBoulder:
		return "boulder"
	case KindNPC:
		return "npc"
	case KindTrigger:
		return "trigger"
	}
	return "unknown"
}

// State is the behavior-state union. Constants are grouped per kind; the
// generic states apply to the player and NPCs.
type State uint8

const (
	StateIdle State = iota
	StateMoving
	StateInteracting
	StateDestroyed

	// Pushable states.
	StatePushed
	StateRolling
	StateSettled

	// Chest states.
	StateClosed
	StateOpening
	StateOpened
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMoving:
		return "moving"
	case StateInteracting:
		return "interacting"
	case StateDestroyed:
		return "destroyed"
	case StatePushed:
		return "pushed"
	case StateRolling:
		return "rolling"
	case StateSettled:
		return "settled"
	case StateClosed:
		return "closed"
	case StateOpening:
		return "opening"
	case StateOpened:
		return "opened"
	}
	return "unknown"
}

// BehaviorData tags an entity with its kind and current behavior state.
type BehaviorData struct {
	Kind  Kind
	State State
}

var Behavior = donburi.NewComponentType[BehaviorData]()
