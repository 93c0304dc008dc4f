package engine

import (
	"errors"
	"fmt"

	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"

	"github.com/automoto/isodrift/components"
	"github.com/automoto/isodrift/roomdata"
	"github.com/automoto/isodrift/tags"
)

// edgeInset pulls corner samples just inside the footprint so a box flush
// against a cell boundary reads its own cell, not the neighbor.
const edgeInset = 1e-6

// voidFallDepth is how far below height zero a free-falling entity drops
// before it is considered lost to the void.
const voidFallDepth = 1.0

// pushRequest records the player shoving a pushable entity this tick. The
// entity's own update decides whether the shove takes.
type pushRequest struct {
	target ID
	dir    components.Direction
}

// moveEntity applies a horizontal displacement with per-axis resolution: the
// full move is split into X and Y, and a blocked axis is dropped while the
// other still applies. Returns the displacement actually taken.
func (e *Engine) moveEntity(entry *donburi.Entry, dx, dy float64) components.Vector {
	var taken components.Vector
	if dx != 0 && e.moveAxis(entry, dx, 0) {
		taken.X = dx
	}
	if dy != 0 && e.moveAxis(entry, 0, dy) {
		taken.Y = dy
	}
	return taken
}

func (e *Engine) moveAxis(entry *donburi.Entry, dx, dy float64) bool {
	obj := components.Object.Get(entry)
	pos := components.Position.Get(entry)
	if obj.Object == nil {
		return false
	}

	if !e.terrainClear(obj.Object, pos.Pos.H, dx, dy) {
		return false
	}

	// Resolv's cell grid is a broadphase; candidates still need the exact
	// box test since a shared cell is coarser than a real overlap.
	sdx, sdy := dx*spaceScale, dy*spaceScale
	if check := obj.Object.Check(sdx, sdy, tags.ResolvSolid); check != nil {
		blocked := false
		for _, other := range check.Objects {
			if !boxesIntersect(obj.Object.X+sdx, obj.Object.Y+sdy, obj.Object.W, obj.Object.H,
				other.X, other.Y, other.W, other.H) {
				continue
			}
			otherEntry, ok := e.entryFor(other)
			if !ok {
				continue
			}
			if !heightOverlap(entry, otherEntry) {
				continue
			}
			blocked = true
			if entry.HasComponent(tags.Player) && other.HasTags(tags.ResolvPushable) {
				if id, ok := idOf(other); ok {
					e.requestPush(id, directionOf(dx, dy))
				}
			}
		}
		if blocked {
			return false
		}
	}

	obj.Object.X += sdx
	obj.Object.Y += sdy
	obj.Object.Update()
	pos.Pos.X = (obj.Object.X + obj.Object.W/2) / spaceScale
	pos.Pos.Y = (obj.Object.Y + obj.Object.H/2) / spaceScale
	return true
}

// terrainClear checks the four corners of the displaced footprint against
// the height map. Blocked cells never admit an entity; floor cells admit one
// only when the rise stays within the step height. Void is passable, the
// fall is gravity's problem.
func (e *Engine) terrainClear(obj *resolv.Object, baseH, dx, dy float64) bool {
	hm := e.room.data.Heights
	x0 := obj.X/spaceScale + dx
	y0 := obj.Y/spaceScale + dy
	x1 := x0 + obj.W/spaceScale - edgeInset
	y1 := y0 + obj.H/spaceScale - edgeInset

	corners := [4][2]float64{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}}
	for _, c := range corners {
		h, walk, err := hm.HeightAt(c[0], c[1])
		if err != nil {
			e.terrainFault(err, c[0], c[1])
			return false
		}
		switch walk {
		case roomdata.WalkBlocked:
			return false
		case roomdata.WalkFloor:
			if float64(h) > baseH+e.cfg.Physics.StepHeight {
				return false
			}
		}
	}
	return true
}

// terrainFault handles a movement query leaving the room bounds. Room edges
// are expected to be walled off by the height map, so this is a data bug.
func (e *Engine) terrainFault(err error, x, y float64) {
	var be *roomdata.BoundsError
	if !errors.As(err, &be) {
		return
	}
	if e.cfg.Strict {
		panic(fmt.Sprintf("terrain query out of bounds at (%.2f, %.2f) in room %d", x, y, e.room.data.ID))
	}
	e.log.Debug("terrain query out of bounds, treating as blocked",
		zap.Int("room", e.room.data.ID),
		zap.Float64("x", x),
		zap.Float64("y", y))
}

func (e *Engine) requestPush(target ID, dir components.Direction) {
	for _, req := range e.pushReqs {
		if req.target == target {
			return
		}
	}
	e.pushReqs = append(e.pushReqs, pushRequest{target: target, dir: dir})
}

func directionOf(dx, dy float64) components.Direction {
	switch {
	case dx > 0:
		return components.DirRight
	case dx < 0:
		return components.DirLeft
	case dy < 0:
		return components.DirUp
	default:
		return components.DirDown
	}
}

// heightOverlap reports whether two entities' occupied height ranges
// intersect. XY overlap alone is not a collision; entities pass freely over
// and under each other.
func heightOverlap(a, b *donburi.Entry) bool {
	pa := components.Position.Get(a).Pos
	pb := components.Position.Get(b).Pos
	ea := components.Object.Get(a).Extent
	eb := components.Object.Get(b).Extent
	return pa.H < pb.H+eb && pb.H < pa.H+ea
}

func (e *Engine) entryFor(obj *resolv.Object) (*donburi.Entry, bool) {
	id, ok := idOf(obj)
	if !ok {
		return nil, false
	}
	return e.room.reg.Get(id)
}

// supportFor returns the highest surface under the entity's footprint: the
// tallest floor cell under its four corners, or the top of a solid entity
// at or below the entity's base, whichever is higher. hasSupport is false
// when every corner hangs over void and nothing solid is underneath.
//
// Terrain corners contribute unconditionally: horizontal resolution already
// bounds any rise to the step height, so a higher corner means the entity
// walked up a step and should snap onto it.
func (e *Engine) supportFor(entry *donburi.Entry) (support float64, hasSupport bool) {
	obj := components.Object.Get(entry)
	pos := components.Position.Get(entry)
	if obj.Object == nil {
		return 0, false
	}
	hm := e.room.data.Heights

	x0 := obj.Object.X / spaceScale
	y0 := obj.Object.Y / spaceScale
	x1 := x0 + obj.Object.W/spaceScale - edgeInset
	y1 := y0 + obj.Object.H/spaceScale - edgeInset
	corners := [4][2]float64{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}}
	for _, c := range corners {
		h, walk, err := hm.HeightAt(c[0], c[1])
		if err != nil || walk != roomdata.WalkFloor {
			continue
		}
		top := float64(h)
		if !hasSupport || top > support {
			support = top
			hasSupport = true
		}
	}

	if check := obj.Object.Check(0, 0, tags.ResolvSolid); check != nil {
		for _, other := range check.Objects {
			if !boxesIntersect(obj.Object.X, obj.Object.Y, obj.Object.W, obj.Object.H,
				other.X, other.Y, other.W, other.H) {
				continue
			}
			otherEntry, ok := e.entryFor(other)
			if !ok {
				continue
			}
			top := components.Position.Get(otherEntry).Pos.H + components.Object.Get(otherEntry).Extent
			if top <= pos.Pos.H+e.cfg.Physics.GroundEpsilon && (!hasSupport || top > support) {
				support = top
				hasSupport = true
			}
		}
	}
	return support, hasSupport
}

func boxesIntersect(x1, y1, w1, h1, x2, y2, w2, h2 float64) bool {
	return x1 < x2+w2 && x2 < x1+w1 && y1 < y2+h2 && y2 < y1+h1
}

// carrierFor returns the solid entity the rider stands on, if any.
func (e *Engine) carrierFor(entry *donburi.Entry) (*donburi.Entry, bool) {
	obj := components.Object.Get(entry)
	pos := components.Position.Get(entry)
	if obj.Object == nil {
		return nil, false
	}
	check := obj.Object.Check(0, 0, tags.ResolvSolid)
	if check == nil {
		return nil, false
	}
	for _, other := range check.Objects {
		if !boxesIntersect(obj.Object.X, obj.Object.Y, obj.Object.W, obj.Object.H,
			other.X, other.Y, other.W, other.H) {
			continue
		}
		otherEntry, ok := e.entryFor(other)
		if !ok {
			continue
		}
		top := components.Position.Get(otherEntry).Pos.H + components.Object.Get(otherEntry).Extent
		if pos.Pos.H >= top-e.cfg.Physics.GroundEpsilon && pos.Pos.H <= top+e.cfg.Physics.GroundEpsilon {
			return otherEntry, true
		}
	}
	return nil, false
}

// heightPass runs the vertical resolution for every entity with physics:
// riders inherit their carrier's horizontal delta, jumps ascend, gravity
// pulls, and grounded entities snap to their support.
func (e *Engine) heightPass() {
	for _, id := range e.room.reg.Iterate() {
		entry, ok := e.room.reg.Get(id)
		if !ok || !entry.HasComponent(components.Physics) {
			continue
		}
		phys := components.Physics.Get(entry)
		if !phys.Gravity {
			continue
		}
		pos := components.Position.Get(entry)

		if phys.Grounded && !phys.Jumping {
			if carrier, ok := e.carrierFor(entry); ok {
				d := components.Position.Get(carrier).Delta()
				if d.X != 0 || d.Y != 0 {
					e.moveEntity(entry, d.X, d.Y)
				}
			}
		}

		if phys.Jumping {
			step := e.cfg.Physics.JumpSpeed
			if step > phys.JumpLeft {
				step = phys.JumpLeft
			}
			pos.Pos.H += step
			phys.JumpLeft -= step
			if phys.JumpLeft <= 0 {
				phys.Jumping = false
				phys.JumpLeft = 0
			}
			phys.Grounded = false
			continue
		}

		support, hasSupport := e.supportFor(entry)
		if hasSupport && pos.Pos.H <= support+e.cfg.Physics.GroundEpsilon {
			pos.Pos.H = support
			phys.Grounded = true
			continue
		}

		pos.Pos.H -= e.cfg.Physics.Gravity
		phys.Grounded = false
		if hasSupport && pos.Pos.H < support {
			pos.Pos.H = support
			phys.Grounded = true
		}

		if !hasSupport && pos.Pos.H <= -voidFallDepth {
			e.fellIntoVoid(id, entry)
		}
	}
}

// fellIntoVoid handles an entity dropping out of the room. The player is
// routed to the room's fall-warp destination; anything else is removed.
func (e *Engine) fellIntoVoid(id ID, entry *donburi.Entry) {
	if !entry.HasComponent(tags.Player) {
		beh := components.Behavior.Get(entry)
		beh.State = components.StateDestroyed
		e.log.Debug("entity fell into void",
			zap.Int("room", e.room.data.ID),
			zap.Uint64("entity", uint64(id)))
		return
	}

	if e.room.data.FallWarp != roomdata.NoFallWarp {
		e.pendingWarp = &pendingWarp{
			room: e.room.data.FallWarp,
			// Target resolved against the destination's default entry.
			useEntry: true,
		}
		return
	}

	// No destination configured. Put the player back on the room entry
	// rather than letting it fall forever.
	e.log.Warn("player fell into void with no fall warp, respawning at entry",
		zap.Int("room", e.room.data.ID))
	e.respawnAtEntry(entry)
}

// respawnAtEntry puts the player back on the room's entry point, grounded.
func (e *Engine) respawnAtEntry(entry *donburi.Entry) {
	pos := components.Position.Get(entry)
	obj := components.Object.Get(entry)
	entryPoint := e.room.data.Entry
	pos.Pos = components.Vec3{X: entryPoint.X, Y: entryPoint.Y, H: entryPoint.Height}
	if obj.Object != nil {
		obj.Object.X = pos.Pos.X*spaceScale - obj.Object.W/2
		obj.Object.Y = pos.Pos.Y*spaceScale - obj.Object.H/2
		obj.Object.Update()
	}
	phys := components.Physics.Get(entry)
	phys.Grounded = true
	phys.Jumping = false
	phys.JumpLeft = 0
}
