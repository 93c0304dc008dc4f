package archetypes

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/isodrift/components"
	"github.com/automoto/isodrift/tags"
)

var (
	Player = newArchetype(
		tags.Player,
		components.Player,
		components.Position,
		components.Object,
		components.Physics,
		components.Behavior,
		components.Animation,
	)
	Chest = newArchetype(
		tags.Chest,
		components.Chest,
		components.Position,
		components.Object,
		components.Physics,
		components.Behavior,
		components.Animation,
	)
	Crate = newArchetype(
		tags.Crate,
		components.Pushable,
		components.Position,
		components.Object,
		components.Physics,
		components.Behavior,
		components.Animation,
	)
	Boulder = newArchetype(
		tags.Boulder,
		components.Pushable,
		components.Position,
		components.Object,
		components.Physics,
		components.Behavior,
		components.Animation,
	)
	NPC = newArchetype(
		tags.NPC,
		components.Script,
		components.Position,
		components.Object,
		components.Physics,
		components.Behavior,
		components.Animation,
	)
	Trigger = newArchetype(
		tags.Trigger,
		components.Trigger,
		components.Position,
		components.Object,
		components.Behavior,
	)
	Camera = newArchetype(
		components.Camera,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

// Spawn creates a world entry carrying the archetype's components.
func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	return w.Entry(w.Create(append(a.components, cs...)...))
}

// ForKind returns the archetype matching an entity kind.
func ForKind(k components.Kind) *archetype {
	switch k {
	case components.KindPlayer:
		return Player
	case components.KindChest:
		return Chest
	case components.KindCrate:
		return Crate
	case components.KindBoulder:
		return Boulder
	case components.KindNPC:
		return NPC
	default:
		return Trigger
	}
}
