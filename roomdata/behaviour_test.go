package roomdata

import (
	"testing"
	"testing/fstest"
)

const patrolYAML = "Name: patrol\n" +
	"Script:\n" +
	"  - Op: MoveRelative\n" +
	"    Distance: 2.5\n" +
	"  - Op: TurnCCW\n" +
	"  - Op: Pause\n" +
	"    Ticks: 30\n" +
	"  - Op: Loop\n"

func TestLoadBehaviour(t *testing.T) {
	fsys := fstest.MapFS{
		"behaviours/behaviour3.yaml": &fstest.MapFile{Data: []byte(patrolYAML)},
	}

	b, err := LoadBehaviour(fsys, "behaviours", 3)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if b.Name != "patrol" {
		t.Fatalf("name = %q, want patrol", b.Name)
	}
	want := []ScriptOp{
		{Op: OpMoveRelative, Distance: 2.5},
		{Op: OpTurnCCW},
		{Op: OpPause, Ticks: 30},
		{Op: OpLoop},
	}
	if len(b.Ops) != len(want) {
		t.Fatalf("got %d ops, want %d", len(b.Ops), len(want))
	}
	for i := range want {
		if b.Ops[i] != want[i] {
			t.Fatalf("op %d = %+v, want %+v", i, b.Ops[i], want[i])
		}
	}
}

func TestLoadBehaviourUnknownOp(t *testing.T) {
	fsys := fstest.MapFS{
		"behaviours/behaviour1.yaml": &fstest.MapFile{Data: []byte(
			"Name: broken\nScript:\n  - Op: Moonwalk\n")},
	}
	if _, err := LoadBehaviour(fsys, "behaviours", 1); err == nil {
		t.Fatal("unknown op accepted")
	}
}

func TestLoadBehavioursSkipsMissing(t *testing.T) {
	fsys := fstest.MapFS{
		"behaviours/behaviour2.yaml": &fstest.MapFile{Data: []byte(patrolYAML)},
	}
	placements := []Placement{
		{Kind: "NPC", Behaviour: 2},
		{Kind: "NPC", Behaviour: 9}, // no file
		{Kind: "NPC"},               // no behaviour
		{Kind: "NPC", Behaviour: 2}, // duplicate id
	}

	got := LoadBehaviours(fsys, "behaviours", placements)
	if len(got) != 1 {
		t.Fatalf("got %d behaviours, want 1", len(got))
	}
	if got[2] == nil || got[2].Name != "patrol" {
		t.Fatalf("behaviour 2 = %+v", got[2])
	}
}
