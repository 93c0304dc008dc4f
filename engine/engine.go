// Package engine runs room simulations: entity behavior, 3-D collision over
// a 2-D tile grid, scripted NPCs, and warp-driven room transitions. The
// engine is single-threaded by design; hosts drive it one Tick at a time and
// render from the returned Frame.
package engine

import (
	"fmt"
	"io/fs"

	"github.com/tanema/gween"
	"go.uber.org/zap"

	"github.com/automoto/isodrift/components"
	"github.com/automoto/isodrift/config"
	"github.com/automoto/isodrift/roomdata"
)

// Engine owns one active room and the machinery to move between rooms. All
// methods must be called from the same goroutine; see Loop for a wall-clock
// driver.
type Engine struct {
	cfg     *config.Config
	log     *zap.Logger
	loader  roomdata.Loader
	catalog *roomdata.Catalog

	behaviourFS  fs.FS
	behaviourDir string

	room        *room
	tick        uint64
	input       Intent
	events      []Event
	pushReqs    []pushRequest
	faulted     map[ID]bool
	pendingWarp *pendingWarp

	fade      *gween.Tween
	fadeLevel float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig overrides the default tuning.
func WithConfig(cfg *config.Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithLogger sets the engine logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithCatalog sets the entity-kind catalog. Defaults to the built-in kinds.
func WithCatalog(c *roomdata.Catalog) Option {
	return func(e *Engine) { e.catalog = c }
}

// WithBehaviours points the engine at NPC behaviour files.
func WithBehaviours(fsys fs.FS, dir string) Option {
	return func(e *Engine) {
		e.behaviourFS = fsys
		e.behaviourDir = dir
	}
}

// New builds an engine reading rooms from loader. The loader is wrapped in
// a keep-last-N cache sized from the config so backtracking is cheap.
func New(loader roomdata.Loader, opts ...Option) *Engine {
	e := &Engine{
		log:     zap.NewNop(),
		catalog: roomdata.DefaultCatalog(),
		faulted: make(map[ID]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.cfg == nil {
		e.cfg = config.Default()
	}
	e.loader = roomdata.NewCachingLoader(loader, e.cfg.Rooms.CacheSize)
	return e
}

// Start loads a room and places the player at its default entry.
func (e *Engine) Start(roomID int) error {
	data, err := e.loader.Load(roomID)
	if err != nil {
		return fmt.Errorf("start room %d: %w", roomID, err)
	}
	e.setRoom(buildRoom(data, e.catalog, e.loadBehaviours(data), e.cfg, data.Entry, components.DirDown, e.log))
	e.log.Info("room started",
		zap.Int("room", data.ID),
		zap.Float64("x", data.Entry.X),
		zap.Float64("y", data.Entry.Y))
	return nil
}

// StartAt loads a room and places the player at an explicit spawn point.
func (e *Engine) StartAt(roomID int, spawn roomdata.SpawnPoint, facing components.Direction) error {
	data, err := e.loader.Load(roomID)
	if err != nil {
		return fmt.Errorf("start room %d: %w", roomID, err)
	}
	e.setRoom(buildRoom(data, e.catalog, e.loadBehaviours(data), e.cfg, spawn, facing, e.log))
	return nil
}

func (e *Engine) setRoom(rm *room) {
	e.room = rm
	e.faulted = make(map[ID]bool)
	e.pendingWarp = nil
}

// CurrentRoom returns the active room id, or -1 before Start.
func (e *Engine) CurrentRoom() int {
	if e.room == nil {
		return -1
	}
	return e.room.data.ID
}

// Tick advances the simulation one step under the given input and returns
// the resulting frame. Pass order is fixed: behaviors move entities, the
// height pass resolves the vertical axis, triggers fire on the settled
// positions, then warps commit at most one room transition before the frame
// is built.
func (e *Engine) Tick(input Intent) Frame {
	if e.room == nil {
		return Frame{Room: -1}
	}

	e.tick++
	e.input = input
	e.events = e.events[:0]

	e.snapshotPrev()
	e.runBehaviors()
	e.applyPushes()
	e.heightPass()
	e.triggerPass()
	e.warpPass()
	if e.pendingWarp != nil {
		e.performTransition()
	}

	if e.fade != nil {
		v, done := e.fade.Update(1)
		e.fadeLevel = float64(v)
		if done {
			e.fade = nil
			e.fadeLevel = 0
		}
	}

	e.cameraPass()
	return e.frame()
}

// snapshotPrev records every entity's position at the start of the tick so
// carried entities can inherit their carrier's displacement.
func (e *Engine) snapshotPrev() {
	for _, id := range e.room.reg.Iterate() {
		entry, ok := e.room.reg.Get(id)
		if !ok {
			continue
		}
		pos := components.Position.Get(entry)
		pos.Prev = pos.Pos
	}
}

// PlayerState reports the player's position and facing for hosts and tests.
func (e *Engine) PlayerState() (pos components.Vec3, facing components.Direction, grounded bool, ok bool) {
	if e.room == nil {
		return components.Vec3{}, components.DirDown, false, false
	}
	entry, found := e.room.reg.Get(e.room.playerID)
	if !found {
		return components.Vec3{}, components.DirDown, false, false
	}
	p := components.Position.Get(entry)
	phys := components.Physics.Get(entry)
	return p.Pos, p.Facing, phys.Grounded, true
}

// Registry exposes the active room's registry for hosts and tests.
func (e *Engine) Registry() *Registry {
	if e.room == nil {
		return nil
	}
	return e.room.reg
}
