// Command roomview is a debug host for the room engine: it loads a room,
// runs the simulation under keyboard input, and draws the height map, warp
// volumes, and entity boxes instead of real art.
package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/automoto/isodrift/components"
	"github.com/automoto/isodrift/config"
	"github.com/automoto/isodrift/engine"
	"github.com/automoto/isodrift/logging"
	"github.com/automoto/isodrift/roomdata"
)

func main() {
	var (
		roomID     = flag.Int("room", 0, "room id to start in")
		spawnX     = flag.Float64("x", -1, "override spawn x in tiles")
		spawnY     = flag.Float64("y", -1, "override spawn y in tiles")
		spawnH     = flag.Float64("height", 0, "override spawn height")
		configPath = flag.String("config", "", "config file path")
		roomsDir   = flag.String("rooms", "", "room resource directory (overrides config)")
		logLevel   = flag.String("log-level", "info", "log level: debug, info, warn, error")
		logFile    = flag.String("log-file", "", "rotated log file path")
	)
	flag.Parse()

	fileCfg := logging.FileConfig{}
	if *logFile != "" {
		fileCfg = logging.DefaultFileConfig(*logFile)
	}
	log := logging.New(*logLevel, fileCfg)
	defer log.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("loading config", zap.Error(err))
	}
	if *roomsDir != "" {
		cfg.Rooms.Dir = *roomsDir
	}

	loader := &roomdata.FSLoader{FS: os.DirFS(cfg.Rooms.Dir)}
	eng := engine.New(loader,
		engine.WithConfig(cfg),
		engine.WithLogger(log.Named("engine")),
		engine.WithBehaviours(os.DirFS(cfg.Rooms.Dir), "behaviours"),
	)

	if *spawnX >= 0 && *spawnY >= 0 {
		err = eng.StartAt(*roomID,
			roomdata.SpawnPoint{X: *spawnX, Y: *spawnY, Height: *spawnH},
			components.DirDown)
	} else {
		err = eng.Start(*roomID)
	}
	if err != nil {
		log.Fatal("starting room", zap.Int("room", *roomID), zap.Error(err))
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("roomview")
	ebiten.SetTPS(cfg.TickRate)

	if err := ebiten.RunGame(newView(eng, log)); err != nil {
		log.Fatal("run", zap.Error(err))
	}
}
