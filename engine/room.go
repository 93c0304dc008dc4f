package engine

import (
	"github.com/yohamta/donburi"
	"go.uber.org/zap"

	"github.com/automoto/isodrift/components"
	"github.com/automoto/isodrift/config"
	"github.com/automoto/isodrift/roomdata"
)

// room is the live state built from one RoomData: the entity registry, the
// per-warp arming flags, and the player's handle. A room transition discards
// the whole struct and builds a fresh one.
type room struct {
	data       *roomdata.RoomData
	reg        *Registry
	behaviours map[int]*roomdata.Behaviour
	playerID   ID

	// armed[i] is false while warp i is suppressed. A warp arms only after
	// the player has been fully outside its volume for at least one tick.
	armed []bool
}

var placementKinds = map[string]components.Kind{
	"Chest":   components.KindChest,
	"Crate":   components.KindCrate,
	"Boulder": components.KindBoulder,
	"NPC":     components.KindNPC,
	"Trigger": components.KindTrigger,
}

// buildRoom spawns every placement plus the player and camera. The spawn
// point overrides the room's default entry during transitions.
func buildRoom(
	data *roomdata.RoomData,
	catalog *roomdata.Catalog,
	behaviours map[int]*roomdata.Behaviour,
	cfg *config.Config,
	spawn roomdata.SpawnPoint,
	facing components.Direction,
	log *zap.Logger,
) *room {
	rm := &room{
		data:       data,
		reg:        NewRegistry(data),
		behaviours: behaviours,
		armed:      make([]bool, len(data.Warps)),
	}

	for _, p := range data.Placements {
		kind, ok := placementKinds[p.Kind]
		if !ok {
			// Player placements come from the entry point, not the layer.
			log.Warn("skipping placement of unknown kind",
				zap.Int("room", data.ID),
				zap.String("kind", p.Kind),
				zap.String("name", p.Name))
			continue
		}
		props := catalog.Lookup(p.Kind)
		params := SpawnParams{
			Kind:    kind,
			Name:    p.Name,
			Pos:     components.Vec3{X: p.X, Y: p.Y, H: p.Height},
			Hitbox:  props.Hitbox,
			Solid:   p.Solid,
			Visible: p.Visible,
			Gravity: p.Gravity,
			Anim:    props.Anim,

			FrameCount: props.FrameCount,
			Event:      p.Event,
			Item:       p.Item,
			OpenTicks:  cfg.Chest.OpenTicks,
		}
		if kind == components.KindNPC && p.Behaviour != 0 {
			params.Behaviour = behaviours[p.Behaviour]
		}
		rm.reg.Spawn(params)
	}

	playerProps := catalog.Lookup("Player")
	playerID, playerEntry := rm.reg.Spawn(SpawnParams{
		Kind:       components.KindPlayer,
		Name:       "player",
		Pos:        components.Vec3{X: spawn.X, Y: spawn.Y, H: spawn.Height},
		Facing:     facing,
		Hitbox:     playerProps.Hitbox,
		Solid:      true,
		Visible:    true,
		Gravity:    true,
		Anim:       playerProps.Anim,
		FrameCount: playerProps.FrameCount,
	})
	rm.playerID = playerID

	playerPos := components.Position.Get(playerEntry).Pos
	camEntry := rm.reg.world.Entry(rm.reg.world.Create(components.Camera))
	components.Camera.SetValue(camEntry, components.CameraData{
		Pos: components.Vector{X: playerPos.X, Y: playerPos.Y},
	})

	// Warps the player spawns inside stay suppressed until a full exit, so
	// arriving on a two-sided warp does not bounce straight back.
	for i := range data.Warps {
		rm.armed[i] = !data.Warps[i].Contains(playerPos.X, playerPos.Y, playerPos.H)
	}

	return rm
}

// player returns the player entry. The player always exists in a built room.
func (rm *room) player() *donburi.Entry {
	entry, _ := rm.reg.Get(rm.playerID)
	return entry
}
