package roomdata

import (
	"testing"
	"testing/fstest"
)

func TestCatalogLookupFallsBack(t *testing.T) {
	c := DefaultCatalog()

	p := c.Lookup("Player")
	if p.Hitbox.Extent != 2 {
		t.Fatalf("player extent = %v, want 2", p.Hitbox.Extent)
	}

	unknown := c.Lookup("Gargoyle")
	if unknown.Hitbox != (Hitbox{Width: 1, Depth: 1, Extent: 1}) {
		t.Fatalf("unknown kind hitbox = %+v, want unit box", unknown.Hitbox)
	}
	if unknown.FrameCount != 1 {
		t.Fatalf("unknown kind frames = %d, want 1", unknown.FrameCount)
	}

	var nilCat *Catalog
	if nilCat.Lookup("Player").Hitbox.Width != 1 {
		t.Fatal("nil catalog lookup did not fall back")
	}
}

func TestCatalogLookupFillsPartialEntries(t *testing.T) {
	c := &Catalog{Kinds: map[string]KindProperties{
		"Wisp": {Hitbox: Hitbox{Extent: 3}},
	}}
	p := c.Lookup("Wisp")
	if p.Hitbox.Width != 1 || p.Hitbox.Depth != 1 || p.Hitbox.Extent != 3 {
		t.Fatalf("hitbox = %+v, want 1x1x3", p.Hitbox)
	}
}

func TestLoadCatalog(t *testing.T) {
	fsys := fstest.MapFS{
		"entities.yaml": &fstest.MapFile{Data: []byte(
			"kinds:\n" +
				"  Golem:\n" +
				"    hitbox: {width: 2, depth: 2, extent: 3}\n" +
				"    anim: golem\n" +
				"    frames: 4\n")},
	}
	c, err := LoadCatalog(fsys, "entities.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	p := c.Lookup("Golem")
	if p.Hitbox.Width != 2 || p.Hitbox.Extent != 3 || p.Anim != "golem" || p.FrameCount != 4 {
		t.Fatalf("golem = %+v", p)
	}
}

func TestLoadCatalogErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.yaml": &fstest.MapFile{Data: []byte("kinds: [not, a, map]\n")},
	}
	if _, err := LoadCatalog(fsys, "missing.yaml"); err == nil {
		t.Fatal("missing file accepted")
	}
	if _, err := LoadCatalog(fsys, "bad.yaml"); err == nil {
		t.Fatal("malformed yaml accepted")
	}
}
