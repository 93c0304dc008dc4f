package engine

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// InputFunc supplies the player intent for a tick.
type InputFunc func() Intent

// FrameFunc receives each tick's frame. Returning false stops the loop.
type FrameFunc func(Frame) bool

// Loop drives an engine at a fixed tick rate on the caller's wall clock.
// Interactive hosts such as the ebiten viewer call Engine.Tick from their
// own frame callback instead; Loop exists for headless hosts.
type Loop struct {
	engine   *Engine
	tickRate int
	log      *zap.Logger
	stopChan chan struct{}
}

// NewLoop builds a loop ticking the engine tickRate times per second.
func NewLoop(engine *Engine, tickRate int, log *zap.Logger) *Loop {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loop{
		engine:   engine,
		tickRate: tickRate,
		log:      log,
		stopChan: make(chan struct{}),
	}
}

// Run ticks until Stop is called, the context is canceled, or onFrame
// returns false. It blocks; run it on a dedicated goroutine when the host
// needs to do anything else.
func (l *Loop) Run(ctx context.Context, input InputFunc, onFrame FrameFunc) {
	ticker := time.NewTicker(time.Second / time.Duration(l.tickRate))
	defer ticker.Stop()

	l.log.Info("engine loop started", zap.Int("tick_rate", l.tickRate))

	for {
		select {
		case <-ctx.Done():
			l.log.Info("engine loop stopped", zap.String("reason", "context"))
			return
		case <-l.stopChan:
			l.log.Info("engine loop stopped", zap.String("reason", "stop"))
			return
		case <-ticker.C:
			frame := l.engine.Tick(input())
			if onFrame != nil && !onFrame(frame) {
				l.log.Info("engine loop stopped", zap.String("reason", "frame callback"))
				return
			}
		}
	}
}

// Stop ends the loop after the current tick. Safe to call once.
func (l *Loop) Stop() {
	close(l.stopChan)
}
