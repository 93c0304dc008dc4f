package roomdata

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// Hitbox is an entity's bounding volume: footprint in tiles and vertical
// extent in height units.
type Hitbox struct {
	Width  float64 `yaml:"width"`
	Depth  float64 `yaml:"depth"`
	Extent float64 `yaml:"extent"`
}

// KindProperties are the per-kind defaults the asset pipeline keeps in YAML:
// bounding volume and the animation set the host should request frames from.
type KindProperties struct {
	Hitbox     Hitbox `yaml:"hitbox"`
	Anim       string `yaml:"anim"`
	FrameCount int    `yaml:"frames"`
}

// Catalog maps entity kind names to their properties.
type Catalog struct {
	Kinds map[string]KindProperties `yaml:"kinds"`
}

// Lookup returns the properties for kind, falling back to a 1x1x1 box when
// the catalog has no entry.
func (c *Catalog) Lookup(kind string) KindProperties {
	if c != nil {
		if p, ok := c.Kinds[kind]; ok {
			if p.Hitbox.Width == 0 {
				p.Hitbox.Width = 1
			}
			if p.Hitbox.Depth == 0 {
				p.Hitbox.Depth = 1
			}
			if p.Hitbox.Extent == 0 {
				p.Hitbox.Extent = 1
			}
			if p.FrameCount == 0 {
				p.FrameCount = 1
			}
			return p
		}
	}
	return KindProperties{Hitbox: Hitbox{Width: 1, Depth: 1, Extent: 1}, Anim: "idle", FrameCount: 1}
}

// LoadCatalog reads an entity-kind catalog from a YAML file.
func LoadCatalog(fsys fs.FS, path string) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return &c, nil
}

// DefaultCatalog covers the built-in kinds for hosts that ship no catalog
// file. The player is two height units tall; everything else is one.
func DefaultCatalog() *Catalog {
	return &Catalog{Kinds: map[string]KindProperties{
		"Player":  {Hitbox: Hitbox{Width: 1, Depth: 1, Extent: 2}, Anim: "walk", FrameCount: 8},
		"Chest":   {Hitbox: Hitbox{Width: 1, Depth: 1, Extent: 1}, Anim: "chest", FrameCount: 3},
		"Crate":   {Hitbox: Hitbox{Width: 1, Depth: 1, Extent: 1}, Anim: "crate", FrameCount: 1},
		"Boulder": {Hitbox: Hitbox{Width: 1, Depth: 1, Extent: 1}, Anim: "boulder", FrameCount: 1},
		"NPC":     {Hitbox: Hitbox{Width: 1, Depth: 1, Extent: 2}, Anim: "npc", FrameCount: 2},
	}}
}
