package engine

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"

	"github.com/automoto/isodrift/components"
	"github.com/automoto/isodrift/roomdata"
)

// fadeTicks is how long the post-transition fade takes to clear.
const fadeTicks = 20

// pendingWarp is a transition committed this tick, applied after all entity
// passes so the room swap never interleaves with movement.
type pendingWarp struct {
	room   int
	target roomdata.SpawnPoint
	// useEntry resolves the spawn point from the destination room's default
	// entry instead of target. Fall warps carry no landing position.
	useEntry bool
}

// warpPass checks the player against the room's warp volumes. A warp only
// fires once armed, and arming requires the player to have been fully
// outside the volume, so arriving on top of a two-sided warp does not
// bounce straight back.
func (e *Engine) warpPass() {
	if e.pendingWarp != nil {
		return
	}
	playerEntry, ok := e.room.reg.Get(e.room.playerID)
	if !ok {
		return
	}
	pos := components.Position.Get(playerEntry).Pos

	best := -1
	bestDist := 0.0
	for i := range e.room.data.Warps {
		w := &e.room.data.Warps[i]
		if !w.Contains(pos.X, pos.Y, pos.H) {
			e.room.armed[i] = true
			continue
		}
		if !e.room.armed[i] {
			continue
		}
		// Stacked volumes disambiguate by height: the warp whose height
		// range centers closest to the player wins. Strict comparison keeps
		// registration order on exact ties.
		dist := math.Abs(pos.H - (w.MinHeight+w.MaxHeight)/2)
		if best == -1 || dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	if best == -1 {
		return
	}

	w := &e.room.data.Warps[best]
	e.pendingWarp = &pendingWarp{room: w.TargetRoom, target: w.Target}
}

// performTransition swaps the active room for the pending warp's target.
// The swap is atomic within the tick: either the new room is fully built
// with the player placed, or the old room stays active untouched.
func (e *Engine) performTransition() {
	pw := e.pendingWarp
	e.pendingWarp = nil

	data, err := e.loader.Load(pw.room)
	if err != nil {
		e.log.Error("room transition failed, staying in current room",
			zap.Int("from", e.room.data.ID),
			zap.Int("to", pw.room),
			zap.Error(err))
		e.emit(Event{Type: EventDiagnostic, Message: "room transition failed"})
		if pw.useEntry {
			// A failed fall warp would refire every tick while the player
			// keeps falling. Treat it like a missing fall warp and put the
			// player back on the entry.
			if playerEntry, ok := e.room.reg.Get(e.room.playerID); ok {
				e.respawnAtEntry(playerEntry)
			}
			return
		}
		// Disarm every warp the player is standing in so the failed warp
		// does not refire every tick.
		if playerEntry, ok := e.room.reg.Get(e.room.playerID); ok {
			pos := components.Position.Get(playerEntry).Pos
			for i := range e.room.data.Warps {
				if e.room.data.Warps[i].Contains(pos.X, pos.Y, pos.H) {
					e.room.armed[i] = false
				}
			}
		}
		return
	}

	spawn := pw.target
	if pw.useEntry {
		spawn = data.Entry
	}
	facing := components.DirDown
	if playerEntry, ok := e.room.reg.Get(e.room.playerID); ok {
		facing = components.Position.Get(playerEntry).Facing
	}

	oldRoom := e.room.data.ID
	behaviours := e.loadBehaviours(data)
	e.setRoom(buildRoom(data, e.catalog, behaviours, e.cfg, spawn, facing, e.log))
	e.fade = gween.New(1, 0, fadeTicks, ease.Linear)
	e.fadeLevel = 1

	e.log.Info("room transition",
		zap.Int("from", oldRoom),
		zap.Int("to", data.ID),
		zap.Float64("x", spawn.X),
		zap.Float64("y", spawn.Y),
		zap.Float64("height", spawn.Height))
	e.emit(Event{Type: EventRoomChanged, OldRoom: oldRoom, NewRoom: data.ID})
}

func (e *Engine) loadBehaviours(data *roomdata.RoomData) map[int]*roomdata.Behaviour {
	if e.behaviourFS == nil {
		return nil
	}
	return roomdata.LoadBehaviours(e.behaviourFS, e.behaviourDir, data.Placements)
}
