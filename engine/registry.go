package engine

import (
	"math"

	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"

	"github.com/automoto/isodrift/archetypes"
	"github.com/automoto/isodrift/components"
	"github.com/automoto/isodrift/roomdata"
	"github.com/automoto/isodrift/tags"
)

// ID is a registry-assigned entity handle. IDs are monotonic within a room
// and never reused, so a stale handle fails lookup instead of aliasing a
// newer entity.
type ID uint64

// bboxMargin shrinks every entity's XY footprint on each side so entities
// standing on adjacent cells do not scrape each other.
const bboxMargin = 0.125

// spaceScale is resolv space units per tile. Resolv's cell bookkeeping
// assumes pixel-sized coordinates: a box narrower than one unit lands in no
// cells at all, and Check widens sub-unit deltas to a full unit. The space
// therefore runs at the source assets' 16 pixels per tile, with positions
// converted at the resolv object boundary.
const spaceScale = 16

// SpawnParams describes one entity to create. Positions are tile
// coordinates; Pos is the footprint center at base height Pos.H.
type SpawnParams struct {
	Kind    components.Kind
	Name    string
	Pos     components.Vec3
	Facing  components.Direction
	Hitbox  roomdata.Hitbox
	Solid   bool
	Visible bool
	Gravity bool

	Anim       string
	FrameCount int

	// NPC
	Behaviour *roomdata.Behaviour

	// Trigger
	Event string

	// Chest
	Item      int
	OpenTicks int
}

// Registry owns a room's entities: the donburi world holding their
// components and the resolv space holding their XY footprints.
type Registry struct {
	world   donburi.World
	space   *resolv.Space
	nextID  ID
	entries map[ID]donburi.Entity
	order   []ID
}

// NewRegistry builds an empty registry sized for one room.
func NewRegistry(data *roomdata.RoomData) *Registry {
	return &Registry{
		world:   donburi.NewWorld(),
		space:   resolv.NewSpace(data.Width*spaceScale, data.Height*spaceScale, spaceScale, spaceScale),
		nextID:  1,
		entries: make(map[ID]donburi.Entity),
	}
}

// Spawn creates an entity from params and returns its handle.
func (r *Registry) Spawn(p SpawnParams) (ID, *donburi.Entry) {
	entry := archetypes.ForKind(p.Kind).Spawn(r.world)

	id := r.nextID
	r.nextID++
	r.entries[id] = entry.Entity()
	r.order = append(r.order, id)

	components.Position.SetValue(entry, components.PositionData{
		Pos:    p.Pos,
		Prev:   p.Pos,
		Facing: p.Facing,
	})
	components.Behavior.SetValue(entry, components.BehaviorData{
		Kind:  p.Kind,
		State: components.StateIdle,
	})

	w := p.Hitbox.Width - 2*bboxMargin
	d := p.Hitbox.Depth - 2*bboxMargin
	obj := resolv.NewObject((p.Pos.X-w/2)*spaceScale, (p.Pos.Y-d/2)*spaceScale, w*spaceScale, d*spaceScale)
	obj.Data = id
	if p.Solid {
		obj.AddTags(tags.ResolvSolid)
	}
	if p.Visible {
		obj.AddTags(tags.ResolvVisible)
	}
	switch p.Kind {
	case components.KindPlayer:
		obj.AddTags(tags.ResolvPlayer)
	case components.KindCrate, components.KindBoulder:
		obj.AddTags(tags.ResolvPushable)
	case components.KindTrigger:
		obj.AddTags(tags.ResolvTrigger)
	}
	r.space.Add(obj)
	components.Object.SetValue(entry, components.ObjectData{
		Object: obj,
		Extent: p.Hitbox.Extent,
	})

	if entry.HasComponent(components.Physics) {
		components.Physics.SetValue(entry, components.PhysicsData{
			Grounded: true,
			Gravity:  p.Gravity,
		})
	}
	if entry.HasComponent(components.Animation) {
		components.Animation.SetValue(entry, components.AnimationData{
			Anim:       p.Anim,
			FrameCount: p.FrameCount,
			Speed:      8,
		})
	}
	switch p.Kind {
	case components.KindChest:
		components.Chest.SetValue(entry, components.ChestData{
			Item:      p.Item,
			OpenTicks: p.OpenTicks,
		})
		components.Behavior.Get(entry).State = components.StateClosed
	case components.KindNPC:
		sd := components.ScriptData{Remaining: -1}
		if p.Behaviour != nil {
			sd.Ops = p.Behaviour.Ops
		} else {
			sd.Done = true
		}
		components.Script.SetValue(entry, sd)
	case components.KindTrigger:
		components.Trigger.SetValue(entry, components.TriggerData{Event: p.Event})
	}

	return id, entry
}

// Destroy removes an entity and its collision footprint. Destroying an
// already-removed entity is a no-op.
func (r *Registry) Destroy(id ID) {
	ent, ok := r.entries[id]
	if !ok {
		return
	}
	if r.world.Valid(ent) {
		entry := r.world.Entry(ent)
		if obj := components.Object.Get(entry); obj.Object != nil {
			r.space.Remove(obj.Object)
		}
		r.world.Remove(ent)
	}
	delete(r.entries, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get resolves a handle to its component entry.
func (r *Registry) Get(id ID) (*donburi.Entry, bool) {
	ent, ok := r.entries[id]
	if !ok || !r.world.Valid(ent) {
		return nil, false
	}
	return r.world.Entry(ent), true
}

// Iterate returns a snapshot of live handles in spawn order. Spawns and
// destroys during iteration do not disturb the snapshot; destroyed entities
// simply fail the Get.
func (r *Registry) Iterate() []ID {
	out := make([]ID, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of live entities.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Player returns the player entry, if one is spawned.
func (r *Registry) Player() (*donburi.Entry, bool) {
	return tags.Player.First(r.world)
}

// EntitiesNear returns handles of entities whose XY center lies within
// radius of pos, in spawn order.
func (r *Registry) EntitiesNear(pos components.Vector, radius float64) []ID {
	var out []ID
	for _, id := range r.order {
		entry, ok := r.Get(id)
		if !ok {
			continue
		}
		p := components.Position.Get(entry).Pos
		if math.Hypot(p.X-pos.X, p.Y-pos.Y) <= radius {
			out = append(out, id)
		}
	}
	return out
}

// idOf recovers the registry handle stored on a resolv object.
func idOf(obj *resolv.Object) (ID, bool) {
	id, ok := obj.Data.(ID)
	return id, ok
}
