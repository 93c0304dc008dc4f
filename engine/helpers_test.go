package engine

import (
	"fmt"
	"testing"

	"github.com/automoto/isodrift/components"
	"github.com/automoto/isodrift/config"
	"github.com/automoto/isodrift/roomdata"
)

// makeRoomData builds a room from an ASCII height map. Each rune is one
// cell: digits are floor at that elevation, '#' a wall, '~' void. The entry
// defaults to the center of cell (1, 1).
func makeRoomData(t *testing.T, id int, rows []string) *roomdata.RoomData {
	t.Helper()
	h := len(rows)
	w := len(rows[0])
	cells := make([]roomdata.Cell, 0, w*h)
	for _, row := range rows {
		if len(row) != w {
			t.Fatalf("ragged row %q, want width %d", row, w)
		}
		for _, r := range row {
			switch {
			case r == '#':
				cells = append(cells, roomdata.Cell{Height: 15, Walk: roomdata.WalkBlocked})
			case r == '~':
				cells = append(cells, roomdata.Cell{Walk: roomdata.WalkVoid})
			case r >= '0' && r <= '9':
				cells = append(cells, roomdata.Cell{Height: int(r - '0'), Walk: roomdata.WalkFloor})
			default:
				t.Fatalf("unknown cell rune %q", r)
			}
		}
	}

	hm, err := roomdata.NewHeightMap(w, h, cells)
	if err != nil {
		t.Fatalf("height map: %v", err)
	}
	grid, err := roomdata.NewTileGrid(w, h, []roomdata.TileLayer{
		{Name: "Ground", Tiles: make([]roomdata.TileRef, w*h)},
	})
	if err != nil {
		t.Fatalf("tile grid: %v", err)
	}

	return &roomdata.RoomData{
		ID:         id,
		Width:      w,
		Height:     h,
		TileWidth:  16,
		TileHeight: 16,
		Grid:       grid,
		Heights:    hm,
		Entry:      roomdata.SpawnPoint{X: 1.5, Y: 1.5},
		FallWarp:   roomdata.NoFallWarp,
	}
}

// stubLoader serves rooms from memory and counts loads for cache tests.
type stubLoader struct {
	rooms map[int]*roomdata.RoomData
	loads int
}

func newStubLoader(rooms ...*roomdata.RoomData) *stubLoader {
	s := &stubLoader{rooms: make(map[int]*roomdata.RoomData)}
	for _, r := range rooms {
		s.rooms[r.ID] = r
	}
	return s
}

func (s *stubLoader) Load(id int) (*roomdata.RoomData, error) {
	s.loads++
	r, ok := s.rooms[id]
	if !ok {
		return nil, fmt.Errorf("room %d: %w", id, roomdata.ErrRoomNotFound)
	}
	return r, nil
}

// newTestEngine starts an engine in the first room's default entry.
func newTestEngine(t *testing.T, rooms ...*roomdata.RoomData) *Engine {
	t.Helper()
	e := New(newStubLoader(rooms...), WithConfig(config.Default()))
	if err := e.Start(rooms[0].ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	return e
}

func tickN(e *Engine, n int, in Intent) Frame {
	var f Frame
	for i := 0; i < n; i++ {
		f = e.Tick(in)
	}
	return f
}

func playerPos(t *testing.T, e *Engine) components.Vec3 {
	t.Helper()
	pos, _, _, ok := e.PlayerState()
	if !ok {
		t.Fatal("no player")
	}
	return pos
}

// findKind returns the first live entity of the given kind.
func findKind(t *testing.T, e *Engine, kind components.Kind) (ID, *components.BehaviorData, *components.PositionData) {
	t.Helper()
	for _, id := range e.room.reg.Iterate() {
		entry, ok := e.room.reg.Get(id)
		if !ok {
			continue
		}
		beh := components.Behavior.Get(entry)
		if beh.Kind == kind {
			return id, beh, components.Position.Get(entry)
		}
	}
	t.Fatalf("no entity of kind %v", kind)
	return 0, nil, nil
}

func approx(a, b float64) bool {
	const tol = 1e-6
	return a-b < tol && b-a < tol
}
