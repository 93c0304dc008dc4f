package engine

import (
	"sort"

	"github.com/automoto/isodrift/components"
	"github.com/automoto/isodrift/roomdata"
	"github.com/automoto/isodrift/tags"
)

// RenderItem is one drawable entity. Hosts resolve (Anim, Frame) against
// their own pre-decoded sprite sheets; the engine never touches image data.
type RenderItem struct {
	ID     ID
	Kind   components.Kind
	Pos    components.Vec3
	Facing components.Direction
	Anim   string
	Frame  int
	// SortKey orders back-to-front for the isometric painter: the top of an
	// object decides its draw order.
	SortKey float64
}

// CameraView is the derived camera state for one frame.
type CameraView struct {
	Pos components.Vector
}

// Frame is the renderable state and side-effect queue produced by one tick.
type Frame struct {
	Room   int
	Tick   uint64
	Camera CameraView
	// Fade is the room-transition fade level, 1 at the swap, easing to 0.
	Fade     float64
	Entities []RenderItem
	Events   []Event
}

func (e *Engine) frame() Frame {
	f := Frame{
		Room: e.CurrentRoom(),
		Tick: e.tick,
		Fade: e.fadeLevel,
	}
	if e.room == nil {
		return f
	}

	for _, id := range e.room.reg.Iterate() {
		entry, ok := e.room.reg.Get(id)
		if !ok {
			continue
		}
		obj := components.Object.Get(entry)
		if obj.Object != nil && !obj.Object.HasTags(tags.ResolvVisible) {
			continue
		}
		pos := components.Position.Get(entry)
		beh := components.Behavior.Get(entry)
		item := RenderItem{
			ID:      id,
			Kind:    beh.Kind,
			Pos:     pos.Pos,
			Facing:  pos.Facing,
			SortKey: pos.Pos.Y + pos.Pos.H + obj.Extent,
		}
		if entry.HasComponent(components.Animation) {
			anim := components.Animation.Get(entry)
			item.Anim = anim.Anim
			item.Frame = anim.Frame
		}
		f.Entities = append(f.Entities, item)
	}
	sort.SliceStable(f.Entities, func(i, j int) bool {
		return f.Entities[i].SortKey < f.Entities[j].SortKey
	})

	if camEntry, ok := components.Camera.First(e.room.reg.world); ok {
		f.Camera = CameraView{Pos: components.Camera.Get(camEntry).Pos}
	}

	f.Events = append(f.Events, e.events...)
	return f
}

// RenderOptions selects the debug overlays a query returns. Explicit
// configuration per call, never ambient engine state.
type RenderOptions struct {
	ShowHeightMap bool
	ShowWarps     bool
	ShowBoxes     bool
}

// DebugCell is one height-map cell for overlay drawing.
type DebugCell struct {
	X, Y   int
	Height int
	Walk   roomdata.Walkability
}

// DebugBox is one entity bounding volume for overlay drawing.
type DebugBox struct {
	ID         ID
	X, Y, W, D float64
	H, Extent  float64
}

// DebugOverlay is the read-only debug state of the active room.
type DebugOverlay struct {
	Cells []DebugCell
	Warps []roomdata.WarpDef
	Boxes []DebugBox
}

// Debug returns the overlays selected by opts for the active room.
func (e *Engine) Debug(opts RenderOptions) DebugOverlay {
	var out DebugOverlay
	if e.room == nil {
		return out
	}

	if opts.ShowHeightMap {
		hm := e.room.data.Heights
		for y := 0; y < hm.Height(); y++ {
			for x := 0; x < hm.Width(); x++ {
				c, err := hm.Cell(x, y)
				if err != nil {
					continue
				}
				out.Cells = append(out.Cells, DebugCell{X: x, Y: y, Height: c.Height, Walk: c.Walk})
			}
		}
	}
	if opts.ShowWarps {
		out.Warps = append(out.Warps, e.room.data.Warps...)
	}
	if opts.ShowBoxes {
		for _, id := range e.room.reg.Iterate() {
			entry, ok := e.room.reg.Get(id)
			if !ok {
				continue
			}
			pos := components.Position.Get(entry)
			obj := components.Object.Get(entry)
			if obj.Object == nil {
				continue
			}
			out.Boxes = append(out.Boxes, DebugBox{
				ID: id,
				X:  obj.Object.X / spaceScale, Y: obj.Object.Y / spaceScale,
				W: obj.Object.W / spaceScale, D: obj.Object.H / spaceScale,
				H: pos.Pos.H, Extent: obj.Extent,
			})
		}
	}
	return out
}
