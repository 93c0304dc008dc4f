package engine

import (
	"testing"

	"github.com/automoto/isodrift/components"
	"github.com/automoto/isodrift/roomdata"
)

func right() Intent  { return Intent{Move: components.Vector{X: 1}} }
func down() Intent   { return Intent{Move: components.Vector{Y: 1}} }
func noTurn() Intent { return Intent{} }

func TestWallBlocksAxisOtherSlides(t *testing.T) {
	e := newTestEngine(t, makeRoomData(t, 1, []string{
		"000#00",
		"000#00",
		"000#00",
		"000#00",
		"000#00",
		"000#00",
	}))
	if err := e.StartAt(1, roomdata.SpawnPoint{X: 1.5, Y: 2.5}, components.DirRight); err != nil {
		t.Fatalf("start: %v", err)
	}

	// Diagonal into the wall: the X axis stops at the wall face, the Y
	// axis keeps sliding.
	tickN(e, 20, Intent{Move: components.Vector{X: 1, Y: 1}})
	pos := playerPos(t, e)
	if !approx(pos.X, 2.625) {
		t.Fatalf("X = %v, want 2.625 (flush against wall)", pos.X)
	}
	if !approx(pos.Y, 5.0) {
		t.Fatalf("Y = %v, want 5.0 (slide unimpeded)", pos.Y)
	}
}

func TestRoomEdgeBlocks(t *testing.T) {
	e := newTestEngine(t, makeRoomData(t, 1, []string{
		"0000",
		"0000",
		"0000",
	}))

	tickN(e, 50, down())
	pos := playerPos(t, e)
	if !approx(pos.Y, 2.625) {
		t.Fatalf("Y = %v, want clamped at 2.625", pos.Y)
	}
}

func TestIdleTickIsIdempotent(t *testing.T) {
	e := newTestEngine(t, makeRoomData(t, 1, []string{
		"0000",
		"0000",
		"0000",
	}))

	before := playerPos(t, e)
	tickN(e, 5, noTurn())
	after := playerPos(t, e)
	if before != after {
		t.Fatalf("idle ticks moved player: %v -> %v", before, after)
	}
	_, _, grounded, _ := e.PlayerState()
	if !grounded {
		t.Fatal("idle player should stay grounded")
	}
}

func TestWalkUpStepAndOffLedge(t *testing.T) {
	e := newTestEngine(t, makeRoomData(t, 1, []string{
		"0000",
		"0110",
		"0000",
	}))
	if err := e.StartAt(1, roomdata.SpawnPoint{X: 0.5, Y: 1.5}, components.DirRight); err != nil {
		t.Fatalf("start: %v", err)
	}

	// One-unit rise is within the step height: the player walks up and
	// snaps to the new floor.
	tickN(e, 16, right())
	pos := playerPos(t, e)
	if !approx(pos.X, 2.5) || !approx(pos.H, 1) {
		t.Fatalf("after step up: pos = %+v, want X=2.5 H=1", pos)
	}

	// Walking off the far side drops the player back to the low floor.
	tickN(e, 16, right())
	pos = playerPos(t, e)
	if !approx(pos.X, 3.625) {
		t.Fatalf("X = %v, want 3.625", pos.X)
	}
	if !approx(pos.H, 0) {
		t.Fatalf("H = %v, want 0 after dropping off ledge", pos.H)
	}
	_, _, grounded, _ := e.PlayerState()
	if !grounded {
		t.Fatal("player should land after ledge drop")
	}
}

func TestStepAboveStepHeightBlocks(t *testing.T) {
	e := newTestEngine(t, makeRoomData(t, 1, []string{
		"0000",
		"0200",
		"0000",
	}))
	if err := e.StartAt(1, roomdata.SpawnPoint{X: 0.5, Y: 1.5}, components.DirRight); err != nil {
		t.Fatalf("start: %v", err)
	}

	tickN(e, 10, right())
	pos := playerPos(t, e)
	if !approx(pos.X, 0.625) {
		t.Fatalf("X = %v, want 0.625 (blocked by two-unit rise)", pos.X)
	}
	if !approx(pos.H, 0) {
		t.Fatalf("H = %v, want 0", pos.H)
	}
}

func TestJumpArc(t *testing.T) {
	e := newTestEngine(t, makeRoomData(t, 1, []string{
		"0000",
		"0000",
		"0000",
	}))

	e.Tick(Intent{Jump: true})
	peak := 0.0
	airborneSeen := false
	for i := 0; i < 30; i++ {
		e.Tick(noTurn())
		pos, _, grounded, _ := e.PlayerState()
		if pos.H > peak {
			peak = pos.H
		}
		if !grounded {
			airborneSeen = true
		}
	}

	if !airborneSeen {
		t.Fatal("jump never left the ground")
	}
	if !approx(peak, e.cfg.Physics.JumpHeight) {
		t.Fatalf("peak = %v, want %v", peak, e.cfg.Physics.JumpHeight)
	}
	pos, _, grounded, _ := e.PlayerState()
	if !grounded || !approx(pos.H, 0) {
		t.Fatalf("after arc: H = %v grounded = %v, want back on floor", pos.H, grounded)
	}
}

func TestSolidEntityBlocksAtSameHeight(t *testing.T) {
	data := makeRoomData(t, 1, []string{
		"0000",
		"0000",
		"0000",
	})
	data.Placements = []roomdata.Placement{
		{Kind: "Chest", X: 2.5, Y: 1.5, Solid: true, Visible: true, Gravity: true},
	}
	e := newTestEngine(t, data)

	tickN(e, 10, right())
	pos := playerPos(t, e)
	if !approx(pos.X, 1.75) {
		t.Fatalf("X = %v, want 1.75 (stopped at chest)", pos.X)
	}
}

func TestJumpOntoSolidEntity(t *testing.T) {
	data := makeRoomData(t, 1, []string{
		"0000",
		"0000",
		"0000",
	})
	data.Placements = []roomdata.Placement{
		{Kind: "Chest", X: 2.5, Y: 1.5, Solid: true, Visible: true, Gravity: true},
	}
	e := newTestEngine(t, data)

	tickN(e, 2, right())
	e.Tick(Intent{Move: components.Vector{X: 1}, Jump: true})
	tickN(e, 14, right())

	pos, _, grounded, _ := e.PlayerState()
	if !approx(pos.H, 1) || !grounded {
		t.Fatalf("H = %v grounded = %v, want standing on chest top", pos.H, grounded)
	}
	if pos.X < 2.2 || pos.X > 3.2 {
		t.Fatalf("X = %v, want over the chest", pos.X)
	}
}

func TestEntitiesPassAtDisjointHeights(t *testing.T) {
	data := makeRoomData(t, 1, []string{
		"0000",
		"0000",
		"0000",
	})
	data.Placements = []roomdata.Placement{
		{Kind: "Chest", X: 2.5, Y: 1.5, Solid: true, Visible: true, Gravity: true},
	}
	e := newTestEngine(t, data)
	// Drop the player onto the chest from above: at base height 1 the
	// ranges touch but do not overlap, so the move over the chest is free.
	if err := e.StartAt(1, roomdata.SpawnPoint{X: 1.5, Y: 1.5, Height: 1}, components.DirRight); err != nil {
		t.Fatalf("start: %v", err)
	}

	f := e.Tick(right())
	pos := playerPos(t, e)
	if !approx(pos.X, 1.625) {
		t.Fatalf("X = %v, want 1.625 (no collision above chest)", pos.X)
	}
	if f.Room != 1 {
		t.Fatalf("room = %d, want 1", f.Room)
	}
}

func TestVoidFallRespawnsAtEntryWithoutFallWarp(t *testing.T) {
	data := makeRoomData(t, 1, []string{
		"00~0",
		"00~0",
		"00~0",
	})
	data.Entry = roomdata.SpawnPoint{X: 0.5, Y: 1.5}
	e := newTestEngine(t, data)

	// Walk onto the void column, then let gravity take over.
	tickN(e, 16, right())
	tickN(e, 12, noTurn())

	pos, _, grounded, _ := e.PlayerState()
	if !approx(pos.X, 0.5) || !approx(pos.Y, 1.5) || !approx(pos.H, 0) {
		t.Fatalf("pos = %+v, want respawn at entry", pos)
	}
	if !grounded {
		t.Fatal("respawned player should be grounded")
	}
}

func TestVoidFallUsesFallWarp(t *testing.T) {
	pit := makeRoomData(t, 1, []string{
		"00~0",
		"00~0",
		"00~0",
	})
	pit.Entry = roomdata.SpawnPoint{X: 0.5, Y: 1.5}
	pit.FallWarp = 2
	below := makeRoomData(t, 2, []string{
		"0000",
		"0000",
		"0000",
	})
	below.Entry = roomdata.SpawnPoint{X: 2.5, Y: 2.5}
	e := newTestEngine(t, pit, below)

	tickN(e, 16, right())
	var changed bool
	for i := 0; i < 20 && !changed; i++ {
		f := e.Tick(noTurn())
		for _, ev := range f.Events {
			if ev.Type == EventRoomChanged {
				changed = true
				if ev.OldRoom != 1 || ev.NewRoom != 2 {
					t.Fatalf("room change %d -> %d, want 1 -> 2", ev.OldRoom, ev.NewRoom)
				}
			}
		}
	}

	if !changed {
		t.Fatal("fall warp never fired")
	}
	if e.CurrentRoom() != 2 {
		t.Fatalf("room = %d, want 2", e.CurrentRoom())
	}
	pos := playerPos(t, e)
	if !approx(pos.X, 2.5) || !approx(pos.Y, 2.5) {
		t.Fatalf("pos = %+v, want destination entry", pos)
	}
}

func TestCarrierMovesRider(t *testing.T) {
	data := makeRoomData(t, 1, []string{
		"0000",
		"0000",
		"0000",
	})
	data.Placements = []roomdata.Placement{
		{Kind: "Crate", X: 1.5, Y: 1.5, Solid: true, Visible: true, Gravity: true},
	}
	e := newTestEngine(t, data)
	if err := e.StartAt(1, roomdata.SpawnPoint{X: 1.5, Y: 1.5, Height: 1}, components.DirDown); err != nil {
		t.Fatalf("start: %v", err)
	}
	// Settle the player onto the crate top.
	tickN(e, 3, noTurn())
	if pos := playerPos(t, e); !approx(pos.H, 1) {
		t.Fatalf("H = %v, want 1 (standing on crate)", pos.H)
	}

	// Move the crate directly and run the height pass; the rider must
	// inherit the displacement.
	_, _, cratePos := findKind(t, e, components.KindCrate)
	crateID, _, _ := findKind(t, e, components.KindCrate)
	crateEntry, _ := e.room.reg.Get(crateID)

	e.snapshotPrev()
	e.moveEntity(crateEntry, 0.25, 0)
	e.heightPass()

	pos := playerPos(t, e)
	if !approx(pos.X, 1.75) {
		t.Fatalf("rider X = %v, want 1.75 (carried by crate)", pos.X)
	}
	if !approx(cratePos.Pos.X, 1.75) {
		t.Fatalf("crate X = %v, want 1.75", cratePos.Pos.X)
	}
}
