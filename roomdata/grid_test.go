package roomdata

import (
	"errors"
	"testing"
)

func TestNewTileGridRejectsMismatchedLayer(t *testing.T) {
	_, err := NewTileGrid(2, 2, []TileLayer{
		{Name: "Ground", Tiles: make([]TileRef, 3)},
	})
	var re *RoomDataError
	if !errors.As(err, &re) {
		t.Fatalf("err = %v, want RoomDataError", err)
	}
}

func TestTileAt(t *testing.T) {
	tiles := make([]TileRef, 4)
	tiles[3] = TileRef{Tileset: 1, ID: 7}
	g, err := NewTileGrid(2, 2, []TileLayer{
		{Name: "Ground", Kind: LayerGround, Tiles: tiles},
		{Name: "Overlay", Kind: LayerOverlay, Tiles: make([]TileRef, 4)},
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ref, err := g.TileAt(0, 1, 1)
	if err != nil {
		t.Fatalf("TileAt: %v", err)
	}
	if ref.Tileset != 1 || ref.ID != 7 {
		t.Fatalf("ref = %+v, want tileset 1 id 7", ref)
	}

	bad := [][3]int{
		{0, 2, 0}, {0, 0, 2}, {0, -1, 0},
		{2, 0, 0}, {-1, 0, 0},
	}
	for _, q := range bad {
		_, err := g.TileAt(q[0], q[1], q[2])
		var be *BoundsError
		if !errors.As(err, &be) {
			t.Fatalf("TileAt(%v) err = %v, want BoundsError", q, err)
		}
	}
}

func TestLayerAccess(t *testing.T) {
	g, err := NewTileGrid(1, 1, []TileLayer{
		{Name: "Ground", Tiles: make([]TileRef, 1)},
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if g.Layers() != 1 {
		t.Fatalf("layers = %d, want 1", g.Layers())
	}
	if _, err := g.Layer(1); err == nil {
		t.Fatal("Layer(1) succeeded, want error")
	}
}
