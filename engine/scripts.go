package engine

import (
	"math"

	"github.com/yohamta/donburi"
	"go.uber.org/zap"

	"github.com/automoto/isodrift/components"
	"github.com/automoto/isodrift/roomdata"
)

// interactReach is how far in front of the player an interaction lands, as a
// radius around the point one tile ahead.
const interactReach = 0.75

// interactCooldownTicks debounces a held interact intent.
const interactCooldownTicks = 10

type behaviorFunc func(e *Engine, id ID, entry *donburi.Entry)

// behaviorTable dispatches per-tick updates by entity kind. The kind set is
// closed; adding a kind means adding a row here.
var behaviorTable = map[components.Kind]behaviorFunc{
	components.KindPlayer:  (*Engine).updatePlayer,
	components.KindChest:   (*Engine).updateChest,
	components.KindCrate:   (*Engine).updatePushable,
	components.KindBoulder: (*Engine).updatePushable,
	components.KindNPC:     (*Engine).updateNPC,
}

// runBehaviors ticks every live entity through its kind's state machine,
// then sweeps entities that marked themselves destroyed.
func (e *Engine) runBehaviors() {
	var destroyed []ID
	for _, id := range e.room.reg.Iterate() {
		entry, ok := e.room.reg.Get(id)
		if !ok || e.faulted[id] {
			continue
		}
		beh := components.Behavior.Get(entry)
		if beh.State == components.StateDestroyed {
			destroyed = append(destroyed, id)
			continue
		}
		fn, ok := behaviorTable[beh.Kind]
		if !ok {
			continue
		}
		e.runIsolated(id, entry, fn)
		if components.Behavior.Get(entry).State == components.StateDestroyed {
			destroyed = append(destroyed, id)
		}
	}
	for _, id := range destroyed {
		e.room.reg.Destroy(id)
	}
}

// runIsolated confines a behavior fault to its entity. The entity is marked
// inert and skipped on later ticks; the rest of the room keeps running.
func (e *Engine) runIsolated(id ID, entry *donburi.Entry, fn behaviorFunc) {
	defer func() {
		if r := recover(); r != nil {
			e.faulted[id] = true
			e.log.Error("behavior fault, entity disabled",
				zap.Int("room", e.room.data.ID),
				zap.Uint64("entity", uint64(id)),
				zap.String("kind", components.Behavior.Get(entry).Kind.String()),
				zap.Any("panic", r))
			e.emit(Event{Type: EventDiagnostic, Entity: id, Message: "behavior fault"})
		}
	}()
	fn(e, id, entry)
}

func (e *Engine) updatePlayer(id ID, entry *donburi.Entry) {
	pos := components.Position.Get(entry)
	phys := components.Physics.Get(entry)
	beh := components.Behavior.Get(entry)
	player := components.Player.Get(entry)

	move := e.input.Move
	if move.X != 0 || move.Y != 0 {
		pos.Facing = dominantDirection(move.X, move.Y)
	}

	taken := e.moveEntity(entry, move.X*e.cfg.Player.Speed, move.Y*e.cfg.Player.Speed)
	if taken.X != 0 || taken.Y != 0 {
		beh.State = components.StateMoving
		components.Animation.Get(entry).Advance()
	} else if beh.State == components.StateMoving {
		beh.State = components.StateIdle
	}

	if e.input.Jump && phys.Grounded && !phys.Jumping {
		phys.Jumping = true
		phys.JumpLeft = e.cfg.Physics.JumpHeight
	}

	if player.InteractCooldown > 0 {
		player.InteractCooldown--
	}
	if e.input.Interact && player.InteractCooldown == 0 {
		player.InteractCooldown = interactCooldownTicks
		e.interact(entry)
	}
}

// interact resolves the player's interact intent against the entity one
// tile ahead of its facing.
func (e *Engine) interact(playerEntry *donburi.Entry) {
	pos := components.Position.Get(playerEntry)
	fdx, fdy := pos.Facing.Delta()
	point := components.Vector{X: pos.Pos.X + fdx, Y: pos.Pos.Y + fdy}

	for _, id := range e.room.reg.EntitiesNear(point, interactReach) {
		entry, ok := e.room.reg.Get(id)
		if !ok || id == e.room.playerID || !heightOverlap(playerEntry, entry) {
			continue
		}
		beh := components.Behavior.Get(entry)
		switch beh.Kind {
		case components.KindChest:
			if beh.State == components.StateClosed {
				beh.State = components.StateOpening
				return
			}
		case components.KindNPC:
			// Talking to an NPC turns it toward the player.
			npcPos := components.Position.Get(entry)
			npcPos.Facing = dominantDirection(
				pos.Pos.X-npcPos.Pos.X, pos.Pos.Y-npcPos.Pos.Y)
			return
		}
	}
}

func (e *Engine) updateChest(id ID, entry *donburi.Entry) {
	beh := components.Behavior.Get(entry)
	if beh.State != components.StateOpening {
		return
	}
	chest := components.Chest.Get(entry)
	components.Animation.Get(entry).Advance()
	chest.OpenTicks--
	if chest.OpenTicks <= 0 {
		beh.State = components.StateOpened
		e.emit(Event{Type: EventItemGrant, Entity: id, Item: chest.Item})
	}
}

func (e *Engine) updatePushable(id ID, entry *donburi.Entry) {
	beh := components.Behavior.Get(entry)
	push := components.Pushable.Get(entry)

	switch beh.State {
	case components.StatePushed, components.StateRolling:
		e.slidePushable(entry, beh, push)
	}
	// Idle pushables wait for applyPushes; Settled is terminal and ignores
	// further pushes.
}

// applyPushes services the push requests captured during the behavior pass.
// Requests arrive when the player's move is blocked by a pushable; starting
// the push here, after every entity has updated, keeps the outcome
// independent of entity iteration order. A push whose very first slide is
// blocked settles the entity the same tick.
func (e *Engine) applyPushes() {
	for _, req := range e.pushReqs {
		entry, ok := e.room.reg.Get(req.target)
		if !ok || e.faulted[req.target] {
			continue
		}
		beh := components.Behavior.Get(entry)
		if beh.State != components.StateIdle {
			continue
		}
		push := components.Pushable.Get(entry)
		pos := components.Position.Get(entry)

		push.Dir = req.dir
		push.Rolls = beh.Kind == components.KindBoulder
		dx, dy := req.dir.Delta()
		push.Target = components.Vec3{X: pos.Pos.X + dx, Y: pos.Pos.Y + dy, H: pos.Pos.H}
		beh.State = components.StatePushed
		e.slidePushable(entry, beh, push)
	}
	e.pushReqs = e.pushReqs[:0]
}

// slidePushable advances a pushed entity toward its one-cell target. A
// blocked slide settles it the same tick, so a push into a wall never
// leaves the entity mid-cell.
func (e *Engine) slidePushable(entry *donburi.Entry, beh *components.BehaviorData, push *components.PushableData) {
	pos := components.Position.Get(entry)
	dx, dy := push.Dir.Delta()
	remaining := math.Abs(push.Target.X-pos.Pos.X) + math.Abs(push.Target.Y-pos.Pos.Y)
	step := e.cfg.Player.PushSpeed
	if step > remaining {
		step = remaining
	}

	taken := e.moveEntity(entry, dx*step, dy*step)
	if taken.X == 0 && taken.Y == 0 {
		beh.State = components.StateSettled
		return
	}

	remaining -= math.Abs(taken.X) + math.Abs(taken.Y)
	if remaining > 1e-9 {
		return
	}
	if push.Rolls {
		// Boulders keep going cell to cell until something stops them.
		push.Target.X += dx
		push.Target.Y += dy
		beh.State = components.StateRolling
		return
	}
	beh.State = components.StateIdle
}

func (e *Engine) updateNPC(id ID, entry *donburi.Entry) {
	sd := components.Script.Get(entry)
	beh := components.Behavior.Get(entry)
	pos := components.Position.Get(entry)

	if sd.Done || len(sd.Ops) == 0 {
		beh.State = components.StateIdle
		return
	}
	if sd.PC >= len(sd.Ops) {
		sd.Done = true
		beh.State = components.StateIdle
		return
	}

	op := sd.Ops[sd.PC]
	switch op.Op {
	case roomdata.OpMoveRelative:
		if sd.Remaining < 0 {
			sd.Remaining = op.Distance
		}
		dx, dy := pos.Facing.Delta()
		step := e.cfg.Player.Speed
		if step > sd.Remaining {
			step = sd.Remaining
		}
		taken := e.moveEntity(entry, dx*step, dy*step)
		moved := math.Abs(taken.X) + math.Abs(taken.Y)
		if moved == 0 {
			// Blocked mid-walk. Give up on the op rather than shoving at
			// the obstacle forever.
			e.advanceScript(sd)
			beh.State = components.StateIdle
			return
		}
		beh.State = components.StateMoving
		components.Animation.Get(entry).Advance()
		sd.Remaining -= moved
		if sd.Remaining <= 1e-9 {
			e.advanceScript(sd)
		}

	case roomdata.OpTurnCW:
		pos.Facing = pos.Facing.CW()
		e.advanceScript(sd)
		beh.State = components.StateIdle

	case roomdata.OpTurnCCW:
		pos.Facing = pos.Facing.CCW()
		e.advanceScript(sd)
		beh.State = components.StateIdle

	case roomdata.OpTurnToFace:
		if playerEntry, ok := e.room.reg.Get(e.room.playerID); ok {
			pp := components.Position.Get(playerEntry).Pos
			pos.Facing = dominantDirection(pp.X-pos.Pos.X, pp.Y-pos.Pos.Y)
		}
		e.advanceScript(sd)
		beh.State = components.StateIdle

	case roomdata.OpPause:
		if sd.Remaining < 0 {
			sd.Remaining = float64(op.Ticks)
		}
		sd.Remaining--
		if sd.Remaining <= 0 {
			e.advanceScript(sd)
		}
		beh.State = components.StateIdle

	case roomdata.OpLoop:
		sd.PC = 0
		sd.Remaining = -1

	case roomdata.OpEnd:
		sd.Done = true
		beh.State = components.StateIdle
	}
}

func (e *Engine) advanceScript(sd *components.ScriptData) {
	sd.PC++
	sd.Remaining = -1
	if sd.PC >= len(sd.Ops) {
		sd.Done = true
	}
}

// triggerPass runs volume triggers after the movement and height passes, so
// enter and exit events land on the same tick as the movement causing them.
func (e *Engine) triggerPass() {
	for _, id := range e.room.reg.Iterate() {
		entry, ok := e.room.reg.Get(id)
		if !ok || e.faulted[id] {
			continue
		}
		if components.Behavior.Get(entry).Kind != components.KindTrigger {
			continue
		}
		e.runIsolated(id, entry, (*Engine).updateTrigger)
	}
}

func (e *Engine) updateTrigger(id ID, entry *donburi.Entry) {
	trig := components.Trigger.Get(entry)
	playerEntry, ok := e.room.reg.Get(e.room.playerID)
	if !ok {
		return
	}

	inside := footprintsOverlap(entry, playerEntry) && heightOverlap(entry, playerEntry)
	if inside == trig.Inside {
		return
	}
	trig.Inside = inside
	e.emit(Event{
		Type:    EventScriptMessage,
		Entity:  id,
		Message: trig.Event,
		Exit:    !inside,
	})
}

func footprintsOverlap(a, b *donburi.Entry) bool {
	oa := components.Object.Get(a).Object
	ob := components.Object.Get(b).Object
	if oa == nil || ob == nil {
		return false
	}
	return oa.X < ob.X+ob.W && ob.X < oa.X+oa.W &&
		oa.Y < ob.Y+ob.H && ob.Y < oa.Y+oa.H
}

// dominantDirection picks the cardinal facing for a free vector, preferring
// the axis with the larger magnitude. Vertical wins ties so a diagonal walk
// faces up or down, matching the sprite sheets' richer vertical sets.
func dominantDirection(dx, dy float64) components.Direction {
	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			return components.DirRight
		}
		return components.DirLeft
	}
	if dy < 0 {
		return components.DirUp
	}
	return components.DirDown
}
