package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/automoto/isodrift/components"
	"github.com/automoto/isodrift/engine"
	"github.com/automoto/isodrift/roomdata"
)

const (
	windowWidth  = 960
	windowHeight = 720
	// tileSize is the on-screen size of one tile in pixels.
	tileSize = 32
	// heightRise is how far one height unit lifts a drawn box, in pixels.
	heightRise = 8
)

var kindColors = map[components.Kind]color.RGBA{
	components.KindPlayer:  {0x4e, 0x9a, 0xf1, 0xff},
	components.KindChest:   {0xd4, 0xa0, 0x17, 0xff},
	components.KindCrate:   {0x8b, 0x5a, 0x2b, 0xff},
	components.KindBoulder: {0x80, 0x80, 0x88, 0xff},
	components.KindNPC:     {0x3f, 0xb5, 0x50, 0xff},
	components.KindTrigger: {0xb0, 0x40, 0xc0, 0x60},
}

type view struct {
	eng   *engine.Engine
	log   *zap.Logger
	frame engine.Frame

	showHeights bool
	showWarps   bool
	showBoxes   bool
}

func newView(eng *engine.Engine, log *zap.Logger) *view {
	return &view{
		eng:         eng,
		log:         log,
		showHeights: true,
		showBoxes:   true,
	}
}

func (v *view) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		v.showHeights = !v.showHeights
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		v.showWarps = !v.showWarps
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		v.showBoxes = !v.showBoxes
	}

	v.frame = v.eng.Tick(v.readIntent())
	for _, ev := range v.frame.Events {
		v.log.Info("event",
			zap.String("type", ev.Type.String()),
			zap.String("message", ev.Message),
			zap.Int("item", ev.Item),
			zap.Int("old_room", ev.OldRoom),
			zap.Int("new_room", ev.NewRoom))
	}
	return nil
}

func (v *view) readIntent() engine.Intent {
	var in engine.Intent
	if ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		in.Move.X = -1
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		in.Move.X = 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		in.Move.Y = -1
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		in.Move.Y = 1
	}
	in.Jump = ebiten.IsKeyPressed(ebiten.KeySpace)
	in.Interact = ebiten.IsKeyPressed(ebiten.KeyE)
	if ebiten.IsKeyPressed(ebiten.KeyJ) {
		in.Pan.X = -0.25
	}
	if ebiten.IsKeyPressed(ebiten.KeyL) {
		in.Pan.X = 0.25
	}
	if ebiten.IsKeyPressed(ebiten.KeyI) {
		in.Pan.Y = -0.25
	}
	if ebiten.IsKeyPressed(ebiten.KeyK) {
		in.Pan.Y = 0.25
	}
	return in
}

func (v *view) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x18, 0x18, 0x20, 0xff})

	camX := v.frame.Camera.Pos.X*tileSize - windowWidth/2
	camY := v.frame.Camera.Pos.Y*tileSize - windowHeight/2

	overlay := v.eng.Debug(engine.RenderOptions{
		ShowHeightMap: v.showHeights,
		ShowWarps:     v.showWarps,
		ShowBoxes:     v.showBoxes,
	})

	for _, c := range overlay.Cells {
		x := float32(float64(c.X)*tileSize - camX)
		y := float32(float64(c.Y)*tileSize - camY)
		vector.DrawFilledRect(screen, x, y, tileSize-1, tileSize-1, cellColor(c), false)
	}

	for _, w := range overlay.Warps {
		x := float32(w.X*tileSize - camX)
		y := float32(w.Y*tileSize - camY)
		vector.DrawFilledRect(screen, x, y, float32(w.W*tileSize), float32(w.H*tileSize),
			color.RGBA{0x20, 0xc0, 0xe0, 0x50}, false)
	}

	// Entities come back-to-front sorted; draw in order so near boxes
	// cover far ones.
	for _, item := range v.frame.Entities {
		c, ok := kindColors[item.Kind]
		if !ok {
			c = color.RGBA{0xff, 0xff, 0xff, 0xff}
		}
		size := float32(tileSize * 0.8)
		x := float32(item.Pos.X*tileSize-camX) - size/2
		y := float32(item.Pos.Y*tileSize-camY) - size/2 - float32(item.Pos.H*heightRise)
		vector.DrawFilledRect(screen, x, y, size, size, c, false)
	}

	if v.showBoxes {
		for _, b := range overlay.Boxes {
			x := float32(b.X*tileSize - camX)
			y := float32(b.Y*tileSize - camY - b.H*heightRise)
			w := float32(b.W * tileSize)
			d := float32(b.D * tileSize)
			c := color.RGBA{0xff, 0x30, 0x30, 0xff}
			vector.DrawFilledRect(screen, x, y, w, 1, c, false)
			vector.DrawFilledRect(screen, x, y+d-1, w, 1, c, false)
			vector.DrawFilledRect(screen, x, y, 1, d, c, false)
			vector.DrawFilledRect(screen, x+w-1, y, 1, d, c, false)
		}
	}

	if v.frame.Fade > 0 {
		vector.DrawFilledRect(screen, 0, 0, windowWidth, windowHeight,
			color.RGBA{0, 0, 0, uint8(v.frame.Fade * 255)}, false)
	}

	pos, facing, grounded, ok := v.eng.PlayerState()
	if ok {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
			"room %d tick %d\nplayer (%.2f, %.2f) h=%.2f facing=%s grounded=%v\nF1 heights F2 warps F3 boxes",
			v.frame.Room, v.frame.Tick, pos.X, pos.Y, pos.H, facing, grounded), 8, 8)
	}
}

func (v *view) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowWidth, windowHeight
}

// cellColor shades floor cells by elevation, walls red-brown, void dark.
func cellColor(c engine.DebugCell) color.RGBA {
	switch c.Walk {
	case roomdata.WalkBlocked:
		return color.RGBA{0x5a, 0x30, 0x28, 0xff}
	case roomdata.WalkVoid:
		return color.RGBA{0x10, 0x10, 0x14, 0xff}
	}
	shade := uint8(0x40 + c.Height*0x0b)
	return color.RGBA{shade, shade, uint8(0x48 + c.Height*0x08), 0xff}
}
