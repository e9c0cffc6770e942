package main

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-scene/internal/config"
	"github.com/Faultbox/midgard-scene/internal/engine"
	"github.com/Faultbox/midgard-scene/internal/engine/gpu"
	"github.com/Faultbox/midgard-scene/internal/engine/window"
	"github.com/Faultbox/midgard-scene/internal/logger"
	"github.com/Faultbox/midgard-scene/internal/scene"
	"github.com/Faultbox/midgard-scene/internal/scene/component"
	"github.com/Faultbox/midgard-scene/pkg/uid"
)

const frameTime = time.Second / 60

type frameLoop struct {
	eng       *engine.Engine
	console   *backlog
	maxFrames int
	stdinDone <-chan struct{}
}

func (l *frameLoop) done() bool {
	return l.maxFrames > 0 && l.eng.Frame() >= uint64(l.maxFrames)
}

// runHeadless steps the engine at a fixed rate. Without a frame limit it
// stops once stdin is closed and every posted command has run.
func (l *frameLoop) runHeadless() error {
	logger.Info("starting headless loop", zap.Int("max_frames", l.maxFrames))
	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	stdinClosed := false
	fps := newFPSCounter()
	for !l.done() {
		<-ticker.C
		if !stdinClosed {
			select {
			case <-l.stdinDone:
				stdinClosed = true
			default:
			}
		}

		stats := l.eng.Step()
		l.console.Pull()
		visible := 0
		if _, viewProj, ok := l.eng.PrimaryCamera(); ok {
			visible = len(l.eng.Visible(viewProj))
		}
		fps.Tick(stats, visible)

		if stdinClosed && l.maxFrames == 0 && stats.Events == 0 {
			break
		}
	}
	return nil
}

// runWindowed steps the engine inside an SDL window and renders the
// primary camera into an offscreen target blitted to the screen.
func (l *frameLoop) runWindowed(cfg *config.Config) error {
	win, err := window.New(cfg.Window, logger.Named("window"))
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer win.Close()

	pools := gpu.NewPools(cfg.Scene.PoolCapacity, logger.Named("gpu"))
	defer pools.Clear()

	var target *gpu.Target
	targetOwner := uid.Invalid
	defer func() {
		if target != nil {
			target.Release()
		}
	}()

	fps := newFPSCounter()
	for !l.done() {
		quit, resized := win.Poll()
		if quit {
			break
		}

		stats := l.eng.Step()
		if bound, released := gpu.SyncTextures(l.eng.Assets(), pools.Textures, gpu.SpecifyTexture); bound+released > 0 {
			logger.Debug("textures synced", zap.Int("bound", bound), zap.Int("released", released))
		}

		w, h := win.Size()
		camID, viewProj, ok := l.eng.PrimaryCamera()
		if ok && camID != targetOwner {
			if target != nil {
				target.Release()
				target = nil
			}
			target, err = gpu.NewTarget(pools, camID, int32(w), int32(h))
			if err != nil {
				return err
			}
			targetOwner = camID
		}
		if ok && resized {
			target.Resize(int32(w), int32(h))
			if cam := scene.GetComponent[component.Camera](l.eng.Entities(), camID); cam != nil && h > 0 {
				cam.Aspect = float32(w) / float32(h)
			}
		}

		visible := 0
		if target != nil {
			target.Bind()
			target.Clear(0.45, 0.6, 0.8, 1)
			if ok {
				visible = len(l.eng.Visible(viewProj))
			}
			target.Unbind()
			target.BlitToScreen(int32(w), int32(h))
		}
		win.SwapBuffers()

		if line, changed := l.console.Pull(); changed {
			win.SetTitle(cfg.Window.Title + " | " + line)
		}
		fps.Tick(stats, visible)
	}
	return nil
}

// backlog keeps the most recent console lines for display.
type backlog struct {
	src   *logger.Console
	lines []string
	limit int
}

func newBacklog(src *logger.Console, limit int) *backlog {
	return &backlog{src: src, limit: max(limit, 1)}
}

// Pull moves pending console lines into the backlog and returns the newest
// one. changed is false when nothing arrived.
func (b *backlog) Pull() (last string, changed bool) {
	n := b.src.Drain(func(line string) {
		b.lines = append(b.lines, line)
	})
	if over := len(b.lines) - b.limit; over > 0 {
		b.lines = append(b.lines[:0], b.lines[over:]...)
	}
	if n == 0 || len(b.lines) == 0 {
		return "", false
	}
	return b.lines[len(b.lines)-1], true
}

type fpsCounter struct {
	frames int
	since  time.Time
}

func newFPSCounter() *fpsCounter {
	return &fpsCounter{since: time.Now()}
}

func (f *fpsCounter) Tick(stats engine.FrameStats, visible int) {
	f.frames++
	if elapsed := time.Since(f.since); elapsed >= time.Second {
		logger.Debug("fps",
			zap.Int("count", f.frames),
			zap.Uint64("frame", stats.Frame),
			zap.Int("propagated", stats.Propagated),
			zap.Int("visible", visible),
		)
		f.frames = 0
		f.since = time.Now()
	}
}
